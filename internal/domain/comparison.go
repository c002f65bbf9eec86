package domain

// ComparisonRow is one labelled attribute or metric across every compared
// player, in the same order as Comparison.Players.
type ComparisonRow struct {
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

// Comparison is the structured side-by-side view built by the catalog.
type Comparison struct {
	Players []string        `json:"players"`
	Info    []ComparisonRow `json:"info"`
	Metrics []ComparisonRow `json:"metrics"`
}

// AgeSnapshot is a single-season view of a player at an approximated age.
// The season is picked positionally: index (current age - target age) into
// the most-recent-first season list, one season per year of age assumed.
type AgeSnapshot struct {
	Season       string  `json:"season"`
	Goals        int     `json:"goals"`
	Assists      int     `json:"assists"`
	Appearances  int     `json:"appearances"`
	Minutes      int     `json:"minutes"`
	GoalsPerGame float64 `json:"goals_per_game"`
}

// AgeComparison pairs two players' snapshots at the same target age. Either
// snapshot may be nil when the season list does not reach that age.
type AgeComparison struct {
	Age     int          `json:"age"`
	Player1 string       `json:"player1"`
	Player2 string       `json:"player2"`
	Stats1  *AgeSnapshot `json:"stats1,omitempty"`
	Stats2  *AgeSnapshot `json:"stats2,omitempty"`
}

// Gem is an undervaluation ranking entry.
type Gem struct {
	Player *Player `json:"player"`
	Score  float64 `json:"value_score"`
}
