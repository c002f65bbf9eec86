package analysis

import (
	"fmt"
	"strings"

	"github.com/yotambraun/football-scout-rag/internal/domain"
)

// GenerateReport renders a plain-text scouting report for one player.
func GenerateReport(player *domain.Player) string {
	info := player.Info
	stats := player.NormalizedStats

	orNA := func(s string) string {
		if s == "" || s == domain.NotFound {
			return "Not available"
		}
		return s
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Player Report for %s\n\n", info.Name)

	b.WriteString("1. Player Overview:\n")
	fmt.Fprintf(&b, "   - Position: %s\n", orNA(info.Position))
	fmt.Fprintf(&b, "   - Age: %s\n", orNA(info.Age))
	fmt.Fprintf(&b, "   - Nationality: %s\n", orNA(info.Nationality))
	fmt.Fprintf(&b, "   - Current Club: %s\n", orNA(info.CurrentClub))
	fmt.Fprintf(&b, "   - Market Value: %s\n", orNA(info.MarketValue))

	b.WriteString("\n2. Performance Analysis:\n")
	if stats != nil {
		fmt.Fprintf(&b, "   - Goals per game: %.2f\n", stats.GoalsPerGame)
		fmt.Fprintf(&b, "   - Assists per game: %.2f\n", stats.AssistsPerGame)
		fmt.Fprintf(&b, "   - Minutes per game: %.2f\n", stats.MinutesPerGame)
		fmt.Fprintf(&b, "   - Goals per 90 min: %.2f\n", stats.GoalsPer90)
		fmt.Fprintf(&b, "   - Assists per 90 min: %.2f\n", stats.AssistsPer90)
	} else {
		b.WriteString("   - No normalized statistics available\n")
	}

	b.WriteString("\n3. Career Totals:\n")
	if stats != nil {
		fmt.Fprintf(&b, "   - Total Goals: %d\n", stats.TotalGoals)
		fmt.Fprintf(&b, "   - Total Assists: %d\n", stats.TotalAssists)
		fmt.Fprintf(&b, "   - Total Appearances: %d\n", stats.TotalAppearances)
		fmt.Fprintf(&b, "   - Total Minutes: %d\n", stats.TotalMinutes)
	} else {
		b.WriteString("   - No totals available\n")
	}

	b.WriteString("\n4. Season by Season Breakdown:\n")
	for _, season := range player.Seasons {
		fmt.Fprintf(&b, "\n   %s Season:\n", season.Season)
		fmt.Fprintf(&b, "   - Appearances: %d\n", season.Appearances)
		fmt.Fprintf(&b, "   - Goals: %d\n", season.Goals)
		fmt.Fprintf(&b, "   - Assists: %d\n", season.Assists)
		fmt.Fprintf(&b, "   - Minutes: %d\n", season.MinutesPlayed)
	}

	return b.String()
}
