package domain

import (
	"fmt"
	"strings"
	"time"
)

// NotFound is the sentinel the scraper stores when a profile field is missing
// from the page. Parsers treat it the same as an absent value.
const NotFound = "Not found"

// PlayerInfo holds the biographical attributes scraped from a player profile.
// All fields except ID and Name are best-effort text and may carry NotFound.
type PlayerInfo struct {
	ID                string `json:"player_id"`
	Name              string `json:"name"`
	Position          string `json:"position,omitempty"`
	Age               string `json:"age,omitempty"`
	Nationality       string `json:"nationality,omitempty"`
	Height            string `json:"height,omitempty"`
	PreferredFoot     string `json:"preferred_foot,omitempty"`
	CurrentClub       string `json:"current_club,omitempty"`
	MarketValue       string `json:"market_value,omitempty"`
	JoinedCurrentClub string `json:"joined_current_club,omitempty"`
	ContractExpires   string `json:"contract_expires,omitempty"`
}

// SeasonRecord is one season's raw counting stats. Season lists are ordered
// most-recent-first, as delivered by the source site.
type SeasonRecord struct {
	Season        string `json:"season"`
	Appearances   int    `json:"appearances"`
	Goals         int    `json:"goals"`
	Assists       int    `json:"assists"`
	YellowCards   int    `json:"yellow_cards"`
	RedCards      int    `json:"red_cards"`
	MinutesPlayed int    `json:"minutes_played"`
}

// NormalizedStats is derived wholesale from a season list; rates are 0.0
// whenever their denominator is zero.
type NormalizedStats struct {
	TotalGoals       int     `json:"total_goals"`
	TotalAssists     int     `json:"total_assists"`
	TotalAppearances int     `json:"total_appearances"`
	TotalMinutes     int     `json:"total_minutes"`
	GoalsPerGame     float64 `json:"goals_per_game"`
	AssistsPerGame   float64 `json:"assists_per_game"`
	MinutesPerGame   float64 `json:"minutes_per_game"`
	GoalsPer90       float64 `json:"goals_per_90"`
	AssistsPer90     float64 `json:"assists_per_90"`
}

// Player aggregates everything known about one scouted player.
type Player struct {
	Info            PlayerInfo       `json:"info"`
	Seasons         []SeasonRecord   `json:"seasons"`
	NormalizedStats *NormalizedStats `json:"normalized_stats,omitempty"`
	ScoutedAt       time.Time        `json:"scouted_at"`
}

// ContextText flattens the player into one line of labelled fields for use as
// language-model context.
func (p *Player) ContextText() string {
	orUnknown := func(s string) string {
		if s == "" || s == NotFound {
			return "Unknown"
		}
		return s
	}

	parts := []string{
		fmt.Sprintf("Player: %s", p.Info.Name),
		fmt.Sprintf("Position: %s", orUnknown(p.Info.Position)),
		fmt.Sprintf("Age: %s", orUnknown(p.Info.Age)),
		fmt.Sprintf("Nationality: %s", orUnknown(p.Info.Nationality)),
		fmt.Sprintf("Club: %s", orUnknown(p.Info.CurrentClub)),
		fmt.Sprintf("Market Value: %s", orUnknown(p.Info.MarketValue)),
	}

	if s := p.NormalizedStats; s != nil {
		parts = append(parts,
			fmt.Sprintf("Goals per game: %.2f", s.GoalsPerGame),
			fmt.Sprintf("Assists per game: %.2f", s.AssistsPerGame),
			fmt.Sprintf("Total goals: %d", s.TotalGoals),
			fmt.Sprintf("Total assists: %d", s.TotalAssists),
			fmt.Sprintf("Total appearances: %d", s.TotalAppearances),
		)
	}

	return strings.Join(parts, " | ")
}
