// Package catalog holds the in-memory collection of scouted players that
// every query operation reads from.
package catalog

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/yotambraun/football-scout-rag/internal/analysis"
	"github.com/yotambraun/football-scout-rag/internal/domain"
	"github.com/yotambraun/football-scout-rag/pkg/errors"
)

// Catalog maps lower-cased player names to players. Keys are canonicalized
// on both store and query, so lookups are case-insensitive. Insertion order
// is tracked explicitly so iteration and ranking tie-breaks stay stable.
type Catalog struct {
	mu      sync.RWMutex
	players map[string]*domain.Player
	order   []string
}

func New() *Catalog {
	return &Catalog{
		players: make(map[string]*domain.Player),
	}
}

func canonicalKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Upsert stores a player under the canonicalized name. A repeat scout of the
// same name overwrites the prior entry without changing its position.
func (c *Catalog) Upsert(name string, player *domain.Player) {
	key := canonicalKey(name)
	if key == "" || player == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.players[key]; !exists {
		c.order = append(c.order, key)
	}
	c.players[key] = player
}

// Get returns the player stored under name, or nil when unknown.
func (c *Catalog) Get(name string) *domain.Player {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.players[canonicalKey(name)]
}

// All returns every scouted player in insertion order.
func (c *Catalog) All() []*domain.Player {
	c.mu.RLock()
	defer c.mu.RUnlock()

	players := make([]*domain.Player, 0, len(c.order))
	for _, key := range c.order {
		players = append(players, c.players[key])
	}
	return players
}

// Names returns the canonical keys of every scouted player in insertion
// order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// Len returns the number of scouted players.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.players)
}

// Snapshot returns a serializable view of the catalog keyed by canonical
// name, for use as language-model context.
func (c *Catalog) Snapshot() map[string]*domain.Player {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snapshot := make(map[string]*domain.Player, len(c.players))
	for key, player := range c.players {
		snapshot[key] = player
	}
	return snapshot
}

// infoRows and metricRows enumerate the comparison table explicitly. Adding
// a field to the domain model does not silently appear here; it must be
// listed with a label and accessor.
var infoRows = []struct {
	label  string
	access func(*domain.Player) string
}{
	{"Name", func(p *domain.Player) string { return p.Info.Name }},
	{"Position", func(p *domain.Player) string { return p.Info.Position }},
	{"Age", func(p *domain.Player) string { return p.Info.Age }},
	{"Nationality", func(p *domain.Player) string { return p.Info.Nationality }},
	{"Current Club", func(p *domain.Player) string { return p.Info.CurrentClub }},
	{"Market Value", func(p *domain.Player) string { return p.Info.MarketValue }},
}

var metricRows = []struct {
	label  string
	access func(*domain.NormalizedStats) float64
}{
	{"Goals Per Game", func(s *domain.NormalizedStats) float64 { return s.GoalsPerGame }},
	{"Assists Per Game", func(s *domain.NormalizedStats) float64 { return s.AssistsPerGame }},
	{"Goals Per 90", func(s *domain.NormalizedStats) float64 { return s.GoalsPer90 }},
	{"Assists Per 90", func(s *domain.NormalizedStats) float64 { return s.AssistsPer90 }},
	{"Minutes Per Game", func(s *domain.NormalizedStats) float64 { return s.MinutesPerGame }},
}

// Compare builds a side-by-side comparison of the requested names. Names
// that resolve to no stored player are skipped; fewer than two resolved
// players is reported as InsufficientDataError, never a panic.
func (c *Catalog) Compare(names []string) (*domain.Comparison, error) {
	c.mu.RLock()
	players := make([]*domain.Player, 0, len(names))
	for _, name := range names {
		if p, ok := c.players[canonicalKey(name)]; ok {
			players = append(players, p)
		}
	}
	c.mu.RUnlock()

	if len(players) < 2 {
		return nil, errors.NewInsufficientDataError(
			"need at least 2 scouted players to compare", 2, len(players))
	}

	comparison := &domain.Comparison{
		Players: make([]string, 0, len(players)),
	}
	for _, p := range players {
		comparison.Players = append(comparison.Players, p.Info.Name)
	}

	for _, row := range infoRows {
		values := make([]string, 0, len(players))
		for _, p := range players {
			value := row.access(p)
			if value == "" || value == domain.NotFound {
				value = "N/A"
			}
			values = append(values, value)
		}
		comparison.Info = append(comparison.Info, domain.ComparisonRow{Label: row.label, Values: values})
	}

	for _, row := range metricRows {
		values := make([]string, 0, len(players))
		for _, p := range players {
			if p.NormalizedStats == nil {
				values = append(values, "N/A")
				continue
			}
			values = append(values, fmt.Sprintf("%.2f", row.access(p.NormalizedStats)))
		}
		comparison.Metrics = append(comparison.Metrics, domain.ComparisonRow{Label: row.label, Values: values})
	}

	return comparison, nil
}

// FindUndervalued ranks scouted players by value score, descending. Players
// without normalized stats or below minAppearances are skipped, as are
// non-positive scores. Ties keep insertion order. maxMarketValue does not
// gate the ranking; scoring already divides output by market value.
func (c *Catalog) FindUndervalued(maxMarketValue float64, minAppearances int) []domain.Gem {
	gems := make([]domain.Gem, 0)

	for _, player := range c.All() {
		if player.NormalizedStats == nil {
			continue
		}
		if player.NormalizedStats.TotalAppearances < minAppearances {
			continue
		}

		score := analysis.ValueScore(player)
		if score <= 0 {
			continue
		}

		gems = append(gems, domain.Gem{Player: player, Score: score})
	}

	sort.SliceStable(gems, func(i, j int) bool {
		return gems[i].Score > gems[j].Score
	})

	return gems
}
