package analysis

import (
	"regexp"
	"strconv"

	"github.com/yotambraun/football-scout-rag/internal/domain"
)

var firstDigitsPattern = regexp.MustCompile(`\d+`)

// ParseAge extracts the first run of digits from the scraped age text.
// Returns (0, false) when nothing numeric is present.
func ParseAge(text string) (int, bool) {
	if text == "" {
		return 0, false
	}

	match := firstDigitsPattern.FindString(text)
	if match == "" {
		return 0, false
	}

	age, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}

	return age, true
}

// StatsAtAge approximates a player's output at targetAge by walking back
// (current age - target age) positions in the most-recent-first season list.
// One season per year of age is assumed; no birth date is consulted. Returns
// nil when the age is unparseable or the offset falls outside the recorded
// seasons.
func StatsAtAge(player *domain.Player, targetAge int) *domain.AgeSnapshot {
	if player == nil || len(player.Seasons) == 0 {
		return nil
	}

	currentAge, ok := ParseAge(player.Info.Age)
	if !ok {
		return nil
	}

	seasonsBack := currentAge - targetAge
	if seasonsBack < 0 || seasonsBack >= len(player.Seasons) {
		return nil
	}

	season := player.Seasons[seasonsBack]

	goalsPerGame := 0.0
	if season.Appearances > 0 {
		goalsPerGame = float64(season.Goals) / float64(season.Appearances)
	}

	return &domain.AgeSnapshot{
		Season:       season.Season,
		Goals:        season.Goals,
		Assists:      season.Assists,
		Appearances:  season.Appearances,
		Minutes:      season.MinutesPlayed,
		GoalsPerGame: goalsPerGame,
	}
}

// CompareAtAge builds both players' snapshots at the same target age.
func CompareAtAge(player1, player2 *domain.Player, age int) *domain.AgeComparison {
	return &domain.AgeComparison{
		Age:     age,
		Player1: player1.Info.Name,
		Player2: player2.Info.Name,
		Stats1:  StatsAtAge(player1, age),
		Stats2:  StatsAtAge(player2, age),
	}
}
