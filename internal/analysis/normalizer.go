package analysis

import "github.com/yotambraun/football-scout-rag/internal/domain"

// Normalize aggregates a season list into career totals and rate statistics.
// Rates are 0.0 whenever their denominator is zero; an empty list yields the
// zero value. Pure and total.
func Normalize(seasons []domain.SeasonRecord) domain.NormalizedStats {
	var stats domain.NormalizedStats

	for _, s := range seasons {
		stats.TotalGoals += s.Goals
		stats.TotalAssists += s.Assists
		stats.TotalAppearances += s.Appearances
		stats.TotalMinutes += s.MinutesPlayed
	}

	if stats.TotalAppearances > 0 {
		apps := float64(stats.TotalAppearances)
		stats.GoalsPerGame = float64(stats.TotalGoals) / apps
		stats.AssistsPerGame = float64(stats.TotalAssists) / apps
		stats.MinutesPerGame = float64(stats.TotalMinutes) / apps
	}

	if stats.TotalMinutes > 0 {
		minutes := float64(stats.TotalMinutes)
		stats.GoalsPer90 = float64(stats.TotalGoals) / minutes * 90
		stats.AssistsPer90 = float64(stats.TotalAssists) / minutes * 90
	}

	return stats
}
