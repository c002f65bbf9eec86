// Package agent orchestrates the scouting workflow: fetch, normalize, store,
// report, and answer queries over the catalog.
package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"
	"github.com/yotambraun/football-scout-rag/internal/analysis"
	"github.com/yotambraun/football-scout-rag/internal/catalog"
	"github.com/yotambraun/football-scout-rag/internal/domain"
	"github.com/yotambraun/football-scout-rag/pkg/errors"
	"go.uber.org/zap"
)

// PlayerSource fetches a player's profile and season list from the data
// site.
type PlayerSource interface {
	FetchAllPlayerData(ctx context.Context, playerName string) (domain.PlayerInfo, []domain.SeasonRecord, error)
}

// Assistant is the language-model surface the agent consults. Optional; a
// nil assistant degrades every AI-backed operation to a reported error or a
// plain-data response.
type Assistant interface {
	AnalyzePlayer(ctx context.Context, player *domain.Player) (string, error)
	AnswerQuestion(ctx context.Context, question string, players map[string]*domain.Player) (string, error)
	AnalyzeHiddenGem(ctx context.Context, player *domain.Player, valueScore float64) (string, error)
	AnalyzeAgeComparison(ctx context.Context, comparison *domain.AgeComparison) (string, error)
}

// PlayerStore persists one scouted player as a document.
type PlayerStore interface {
	SavePlayer(player *domain.Player) error
}

// HistoryRecorder appends a completed scout to durable history.
type HistoryRecorder interface {
	Record(ctx context.Context, player *domain.Player) error
}

type Dependencies struct {
	Scraper   PlayerSource
	Catalog   *catalog.Catalog
	Assistant Assistant
	Store     PlayerStore
	History   HistoryRecorder
	Logger    *zap.Logger
}

// Report is the result of scouting one player.
type Report struct {
	Player      *domain.Player `json:"player"`
	Text        string         `json:"report_text"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// ScoutResult pairs a requested name with its outcome in a batch scout.
type ScoutResult struct {
	Name   string
	Report *Report
	Err    error
}

type Agent struct {
	deps *Dependencies
}

func New(deps *Dependencies) (*Agent, error) {
	if deps == nil || deps.Scraper == nil || deps.Catalog == nil {
		return nil, fmt.Errorf("agent requires a scraper and a catalog")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Agent{deps: deps}, nil
}

// ScoutPlayer fetches and analyzes one player, stores it in the catalog,
// and persists it. Persistence failures are logged, not fatal: the scout
// itself succeeded.
func (a *Agent) ScoutPlayer(ctx context.Context, playerName string) (*Report, error) {
	a.deps.Logger.Info("Scouting player", zap.String("player", playerName))

	info, seasons, err := a.deps.Scraper.FetchAllPlayerData(ctx, playerName)
	if err != nil {
		return nil, err
	}

	stats := analysis.Normalize(seasons)
	player := &domain.Player{
		Info:            info,
		Seasons:         seasons,
		NormalizedStats: &stats,
		ScoutedAt:       time.Now(),
	}

	a.deps.Catalog.Upsert(playerName, player)

	if a.deps.Store != nil {
		if err := a.deps.Store.SavePlayer(player); err != nil {
			a.deps.Logger.Warn("Failed to save player data",
				zap.String("player", player.Info.Name), zap.Error(err))
		}
	}

	if a.deps.History != nil {
		if err := a.deps.History.Record(ctx, player); err != nil {
			a.deps.Logger.Warn("Failed to record scout history",
				zap.String("player", player.Info.Name), zap.Error(err))
		}
	}

	return &Report{
		Player:      player,
		Text:        analysis.GenerateReport(player),
		GeneratedAt: time.Now(),
	}, nil
}

// ScoutPlayers scouts several players with bounded concurrency, returning
// one result per requested name in input order.
func (a *Agent) ScoutPlayers(ctx context.Context, playerNames []string, concurrency int) []ScoutResult {
	if concurrency <= 0 {
		concurrency = 3
	}

	results := make([]ScoutResult, len(playerNames))
	p := pool.New().WithMaxGoroutines(concurrency)

	for i, name := range playerNames {
		p.Go(func() {
			report, err := a.ScoutPlayer(ctx, name)
			results[i] = ScoutResult{Name: name, Report: report, Err: err}
		})
	}

	p.Wait()
	return results
}

// GetScoutedPlayer returns a previously scouted player, or nil.
func (a *Agent) GetScoutedPlayer(playerName string) *domain.Player {
	return a.deps.Catalog.Get(playerName)
}

// AllScoutedPlayers returns every scouted player in scout order.
func (a *Agent) AllScoutedPlayers() []*domain.Player {
	return a.deps.Catalog.All()
}

// ComparePlayers builds a side-by-side comparison of previously scouted
// players.
func (a *Agent) ComparePlayers(playerNames []string) (*domain.Comparison, error) {
	return a.deps.Catalog.Compare(playerNames)
}

// CompareAtAge compares two scouted players at the same approximated age and
// renders a text report, appending AI commentary when an assistant is wired.
func (a *Agent) CompareAtAge(ctx context.Context, name1, name2 string, age int) (string, error) {
	player1 := a.deps.Catalog.Get(name1)
	if player1 == nil {
		return "", errors.NewNotFoundError(name1)
	}
	player2 := a.deps.Catalog.Get(name2)
	if player2 == nil {
		return "", errors.NewNotFoundError(name2)
	}

	comparison := analysis.CompareAtAge(player1, player2, age)

	var b strings.Builder
	fmt.Fprintf(&b, "Age-Adjusted Comparison at Age %d\n", age)
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	writeSnapshot := func(name string, snapshot *domain.AgeSnapshot) {
		fmt.Fprintf(&b, "%s:\n", name)
		if snapshot == nil {
			b.WriteString("  No data available for this age\n\n")
			return
		}
		fmt.Fprintf(&b, "  Season: %s\n", snapshot.Season)
		fmt.Fprintf(&b, "  Goals: %d\n", snapshot.Goals)
		fmt.Fprintf(&b, "  Assists: %d\n", snapshot.Assists)
		fmt.Fprintf(&b, "  Appearances: %d\n", snapshot.Appearances)
		fmt.Fprintf(&b, "  Goals/Game: %.2f\n\n", snapshot.GoalsPerGame)
	}

	writeSnapshot(comparison.Player1, comparison.Stats1)
	writeSnapshot(comparison.Player2, comparison.Stats2)

	if a.deps.Assistant != nil {
		commentary, err := a.deps.Assistant.AnalyzeAgeComparison(ctx, comparison)
		if err != nil {
			a.deps.Logger.Warn("Age comparison commentary failed", zap.Error(err))
		} else {
			b.WriteString("AI Analysis:\n")
			b.WriteString(commentary)
		}
	}

	return b.String(), nil
}

// AnalyzePlayer asks the assistant for a scouting analysis of a previously
// scouted player.
func (a *Agent) AnalyzePlayer(ctx context.Context, playerName string) (string, error) {
	player := a.deps.Catalog.Get(playerName)
	if player == nil {
		return "", errors.NewNotFoundError(playerName)
	}
	if a.deps.Assistant == nil {
		return "", errors.NewLLMError("no assistant configured", "none", nil)
	}

	return a.deps.Assistant.AnalyzePlayer(ctx, player)
}

// FindHiddenGems ranks undervalued players among those already scouted.
func (a *Agent) FindHiddenGems(maxMarketValue float64, minAppearances int) []domain.Gem {
	return a.deps.Catalog.FindUndervalued(maxMarketValue, minAppearances)
}

// AnswerQuestion answers a free-form question over the scouted players.
func (a *Agent) AnswerQuestion(ctx context.Context, question string) (string, error) {
	if a.deps.Catalog.Len() == 0 {
		return "", errors.NewInsufficientDataError("no players scouted yet", 1, 0)
	}
	if a.deps.Assistant == nil {
		return "", errors.NewLLMError("no assistant configured", "none", nil)
	}

	return a.deps.Assistant.AnswerQuestion(ctx, question, a.deps.Catalog.Snapshot())
}
