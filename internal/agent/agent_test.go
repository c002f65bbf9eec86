package agent

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"testing"

	"github.com/yotambraun/football-scout-rag/internal/catalog"
	"github.com/yotambraun/football-scout-rag/internal/domain"
	"github.com/yotambraun/football-scout-rag/pkg/errors"
)

type fakeScraper struct {
	mu      sync.Mutex
	calls   []string
	players map[string]fakeScrapeResult
}

type fakeScrapeResult struct {
	info    domain.PlayerInfo
	seasons []domain.SeasonRecord
	err     error
}

func (f *fakeScraper) FetchAllPlayerData(ctx context.Context, playerName string) (domain.PlayerInfo, []domain.SeasonRecord, error) {
	f.mu.Lock()
	f.calls = append(f.calls, playerName)
	f.mu.Unlock()

	result, ok := f.players[strings.ToLower(playerName)]
	if !ok {
		return domain.PlayerInfo{}, nil, errors.NewNotFoundError(playerName)
	}
	return result.info, result.seasons, result.err
}

type fakeAssistant struct {
	answer string
	err    error
	asked  []string
}

func (f *fakeAssistant) AnalyzePlayer(ctx context.Context, player *domain.Player) (string, error) {
	return f.answer, f.err
}

func (f *fakeAssistant) AnswerQuestion(ctx context.Context, question string, players map[string]*domain.Player) (string, error) {
	f.asked = append(f.asked, question)
	return f.answer, f.err
}

func (f *fakeAssistant) AnalyzeHiddenGem(ctx context.Context, player *domain.Player, valueScore float64) (string, error) {
	return f.answer, f.err
}

func (f *fakeAssistant) AnalyzeAgeComparison(ctx context.Context, comparison *domain.AgeComparison) (string, error) {
	return f.answer, f.err
}

type fakeStore struct {
	saved []*domain.Player
	err   error
}

func (f *fakeStore) SavePlayer(player *domain.Player) error {
	f.saved = append(f.saved, player)
	return f.err
}

type fakeHistory struct {
	recorded []*domain.Player
	err      error
}

func (f *fakeHistory) Record(ctx context.Context, player *domain.Player) error {
	f.recorded = append(f.recorded, player)
	return f.err
}

func scraperWith(names ...string) *fakeScraper {
	players := make(map[string]fakeScrapeResult, len(names))
	for _, name := range names {
		players[strings.ToLower(name)] = fakeScrapeResult{
			info: domain.PlayerInfo{
				ID:          "id-" + name,
				Name:        name,
				Age:         "23",
				MarketValue: "€5.00m",
			},
			seasons: []domain.SeasonRecord{
				{Season: "2024", Goals: 10, Assists: 4, Appearances: 30, MinutesPlayed: 2700},
				{Season: "2023", Goals: 6, Assists: 2, Appearances: 25, MinutesPlayed: 2000},
			},
		}
	}
	return &fakeScraper{players: players}
}

func newTestAgent(t *testing.T, deps *Dependencies) *Agent {
	t.Helper()
	if deps.Catalog == nil {
		deps.Catalog = catalog.New()
	}
	agent, err := New(deps)
	if err != nil {
		t.Fatalf("failed to build agent: %v", err)
	}
	return agent
}

func TestNewRequiresScraperAndCatalog(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected an error for nil dependencies")
	}
	if _, err := New(&Dependencies{Catalog: catalog.New()}); err == nil {
		t.Fatal("expected an error without a scraper")
	}
	if _, err := New(&Dependencies{Scraper: scraperWith()}); err == nil {
		t.Fatal("expected an error without a catalog")
	}
}

func TestScoutPlayerNormalizesAndStores(t *testing.T) {
	store := &fakeStore{}
	history := &fakeHistory{}
	cat := catalog.New()
	agent := newTestAgent(t, &Dependencies{
		Scraper: scraperWith("Test Player"),
		Catalog: cat,
		Store:   store,
		History: history,
	})

	report, err := agent.ScoutPlayer(context.Background(), "Test Player")
	if err != nil {
		t.Fatalf("scout failed: %v", err)
	}

	if report.Player.NormalizedStats == nil {
		t.Fatal("expected normalized stats on the scouted player")
	}
	if got := report.Player.NormalizedStats.TotalGoals; got != 16 {
		t.Fatalf("total goals = %d, want 16", got)
	}
	if report.Text == "" {
		t.Fatal("expected a non-empty text report")
	}

	if cat.Get("test player") != report.Player {
		t.Fatal("expected the player stored under a case-insensitive key")
	}
	if len(store.saved) != 1 || store.saved[0] != report.Player {
		t.Fatal("expected the player persisted to the store")
	}
	if len(history.recorded) != 1 {
		t.Fatal("expected one history record")
	}
}

func TestScoutPlayerSurvivesPersistenceFailures(t *testing.T) {
	store := &fakeStore{err: stderrors.New("disk full")}
	history := &fakeHistory{err: stderrors.New("db down")}
	agent := newTestAgent(t, &Dependencies{
		Scraper: scraperWith("Test Player"),
		Store:   store,
		History: history,
	})

	report, err := agent.ScoutPlayer(context.Background(), "Test Player")
	if err != nil {
		t.Fatalf("expected scout to succeed despite persistence errors, got %v", err)
	}
	if report == nil || report.Player == nil {
		t.Fatal("expected a report")
	}
}

func TestScoutPlayerPropagatesScrapeErrors(t *testing.T) {
	agent := newTestAgent(t, &Dependencies{Scraper: scraperWith()})

	_, err := agent.ScoutPlayer(context.Background(), "Ghost")
	if err == nil {
		t.Fatal("expected an error for an unknown player")
	}
	if !errors.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
}

func TestScoutPlayersKeepsInputOrder(t *testing.T) {
	agent := newTestAgent(t, &Dependencies{
		Scraper: scraperWith("Alpha", "Charlie"),
	})

	names := []string{"Alpha", "Bravo", "Charlie"}
	results := agent.ScoutPlayers(context.Background(), names, 2)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, name := range names {
		if results[i].Name != name {
			t.Fatalf("result %d is %q, want %q", i, results[i].Name, name)
		}
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Fatalf("expected Alpha and Charlie to succeed: %v, %v", results[0].Err, results[2].Err)
	}
	if results[1].Err == nil {
		t.Fatal("expected Bravo to fail")
	}
}

func TestAnswerQuestionEmptyCatalog(t *testing.T) {
	agent := newTestAgent(t, &Dependencies{
		Scraper:   scraperWith(),
		Assistant: &fakeAssistant{answer: "unused"},
	})

	_, err := agent.AnswerQuestion(context.Background(), "who is the best?")
	if !errors.IsInsufficientData(err) {
		t.Fatalf("expected InsufficientDataError on empty catalog, got %v", err)
	}
}

func TestAnswerQuestionWithoutAssistant(t *testing.T) {
	agent := newTestAgent(t, &Dependencies{Scraper: scraperWith("Test Player")})
	if _, err := agent.ScoutPlayer(context.Background(), "Test Player"); err != nil {
		t.Fatalf("scout failed: %v", err)
	}

	_, err := agent.AnswerQuestion(context.Background(), "who is the best?")
	if err == nil {
		t.Fatal("expected an error without an assistant")
	}
	var llmErr *errors.LLMError
	if !stderrors.As(err, &llmErr) {
		t.Fatalf("expected an LLM error, got %v", err)
	}
}

func TestAnswerQuestionDelegatesToAssistant(t *testing.T) {
	assistant := &fakeAssistant{answer: "Test Player looks promising."}
	agent := newTestAgent(t, &Dependencies{
		Scraper:   scraperWith("Test Player"),
		Assistant: assistant,
	})
	if _, err := agent.ScoutPlayer(context.Background(), "Test Player"); err != nil {
		t.Fatalf("scout failed: %v", err)
	}

	answer, err := agent.AnswerQuestion(context.Background(), "who is the best?")
	if err != nil {
		t.Fatalf("expected an answer, got %v", err)
	}
	if answer != assistant.answer {
		t.Fatalf("answer = %q, want %q", answer, assistant.answer)
	}
	if len(assistant.asked) != 1 || assistant.asked[0] != "who is the best?" {
		t.Fatalf("unexpected questions forwarded: %v", assistant.asked)
	}
}

func TestAnalyzePlayerRequiresScoutAndAssistant(t *testing.T) {
	assistant := &fakeAssistant{answer: "A composed finisher."}
	agent := newTestAgent(t, &Dependencies{
		Scraper:   scraperWith("Test Player"),
		Assistant: assistant,
	})

	_, err := agent.AnalyzePlayer(context.Background(), "Test Player")
	if !errors.IsNotFound(err) {
		t.Fatalf("expected NotFoundError before scouting, got %v", err)
	}

	if _, err := agent.ScoutPlayer(context.Background(), "Test Player"); err != nil {
		t.Fatalf("scout failed: %v", err)
	}

	analysis, err := agent.AnalyzePlayer(context.Background(), "test player")
	if err != nil {
		t.Fatalf("analysis failed: %v", err)
	}
	if analysis != assistant.answer {
		t.Fatalf("analysis = %q", analysis)
	}
}

func TestCompareAtAgeUnknownPlayer(t *testing.T) {
	agent := newTestAgent(t, &Dependencies{Scraper: scraperWith("Test Player")})
	if _, err := agent.ScoutPlayer(context.Background(), "Test Player"); err != nil {
		t.Fatalf("scout failed: %v", err)
	}

	_, err := agent.CompareAtAge(context.Background(), "Test Player", "Ghost", 21)
	if !errors.IsNotFound(err) {
		t.Fatalf("expected NotFoundError for unscouted player, got %v", err)
	}
}

func TestCompareAtAgeRendersBothPlayers(t *testing.T) {
	agent := newTestAgent(t, &Dependencies{
		Scraper:   scraperWith("First", "Second"),
		Assistant: &fakeAssistant{answer: "Both progressed well."},
	})
	for _, name := range []string{"First", "Second"} {
		if _, err := agent.ScoutPlayer(context.Background(), name); err != nil {
			t.Fatalf("scout %s failed: %v", name, err)
		}
	}

	text, err := agent.CompareAtAge(context.Background(), "First", "Second", 22)
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	for _, want := range []string{"Age-Adjusted Comparison at Age 22", "First:", "Second:", "AI Analysis:"} {
		if !strings.Contains(text, want) {
			t.Fatalf("report missing %q:\n%s", want, text)
		}
	}
}

func TestFindHiddenGemsUsesCatalog(t *testing.T) {
	agent := newTestAgent(t, &Dependencies{Scraper: scraperWith("Test Player")})
	if _, err := agent.ScoutPlayer(context.Background(), "Test Player"); err != nil {
		t.Fatalf("scout failed: %v", err)
	}

	gems := agent.FindHiddenGems(10_000_000, 10)
	if len(gems) != 1 {
		t.Fatalf("expected 1 gem, got %d", len(gems))
	}
	if gems[0].Score <= 0 {
		t.Fatalf("expected a positive score, got %f", gems[0].Score)
	}
}
