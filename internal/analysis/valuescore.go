package analysis

import "github.com/yotambraun/football-scout-rag/internal/domain"

// Scoring policy: goals weigh double assists, and the ratio of output to
// market value is rescaled into a human-legible range. The rescale constant
// carries no meaning beyond keeping scores comparable across runs.
const (
	goalWeight   = 10.0
	assistWeight = 5.0
	scoreRescale = 10_000_000.0
)

// ValueScore rates how undervalued a player is: higher = more statistical
// output per euro of market value. Returns 0.0 for players without
// normalized stats or without a positive parseable market value.
func ValueScore(player *domain.Player) float64 {
	if player == nil || player.NormalizedStats == nil {
		return 0.0
	}

	marketValue := ParseMarketValue(player.Info.MarketValue)
	if marketValue <= 0 {
		return 0.0
	}

	stats := player.NormalizedStats
	statScore := stats.GoalsPer90*goalWeight + stats.AssistsPer90*assistWeight

	return statScore / marketValue * scoreRescale
}
