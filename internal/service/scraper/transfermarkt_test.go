package scraper

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yotambraun/football-scout-rag/internal/domain"
	"github.com/yotambraun/football-scout-rag/pkg/errors"
	"go.uber.org/zap"
)

const profileHTML = `<html><body>
<h1 class="data-header__headline-wrapper">#9 Test Striker</h1>
<span class="data-header__position">Centre-Forward</span>
<span class="data-header__content" itemprop="birthDate">Jun 17, 2002 (23)</span>
<span class="data-header__content" itemprop="nationality">Brazil</span>
<span class="data-header__content" itemprop="height">1,85 m</span>
<span class="data-header__club">Test FC</span>
<div class="data-header__market-value-wrapper">€25.00m</div>
</body></html>`

const seasonSelectHTML = `<html><body>
<select name="saison">
<option value="ges">All seasons</option>
<option value="2024">24/25</option>
<option value="2023">23/24</option>
</select>
</body></html>`

const seasonDataHTML = `<html><body>
<table>
<tfoot>
<tr>
<td>Total:</td><td></td><td>30</td><td>15</td><td>7</td><td>4</td><td>1</td><td>2.511'</td>
</tr>
</tfoot>
</table>
</body></html>`

func newTestService(t *testing.T, handler http.Handler) (*Service, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewService(Config{
		BaseURL:        server.URL,
		UserAgent:      "scout-test",
		RequestTimeout: 5 * time.Second,
		RequestsPerSec: 1000,
	}, nil, zap.NewNop())

	return svc, server
}

func TestSearchPlayerFindsID(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "schnellsuche") {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `<a href="/test-striker/profil/spieler/418560">Test Striker</a>`)
	}))

	id, err := svc.SearchPlayer(context.Background(), "Test Striker")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if id != "418560" {
		t.Fatalf("player id = %q, want 418560", id)
	}
}

func TestSearchPlayerNoMatch(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<p>No results</p>`)
	}))

	_, err := svc.SearchPlayer(context.Background(), "Nobody")
	if !errors.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestSearchPlayerHTTPError(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := svc.SearchPlayer(context.Background(), "Anyone")
	if err == nil {
		t.Fatal("expected an error for a 503 response")
	}
	var scrapeErr *errors.ScrapeError
	if !stderrors.As(err, &scrapeErr) {
		t.Fatalf("expected ScrapeError, got %T: %v", err, err)
	}
	if scrapeErr.URL == "" {
		t.Fatal("expected the failing URL on the error")
	}
}

func TestFetchPlayerInfoExtractsFields(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, profileHTML)
	}))

	info, err := svc.FetchPlayerInfo(context.Background(), "418560")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if info.Name != "Test Striker" {
		t.Fatalf("name = %q, want jersey number stripped", info.Name)
	}
	if info.Position != "Centre-Forward" {
		t.Fatalf("position = %q", info.Position)
	}
	if info.Age != "Jun 17, 2002 (23)" {
		t.Fatalf("age = %q", info.Age)
	}
	if info.Nationality != "Brazil" {
		t.Fatalf("nationality = %q", info.Nationality)
	}
	if info.CurrentClub != "Test FC" {
		t.Fatalf("club = %q", info.CurrentClub)
	}
	if info.MarketValue != "€25.00m" {
		t.Fatalf("market value = %q", info.MarketValue)
	}
	if info.ID != "418560" {
		t.Fatalf("id = %q", info.ID)
	}
}

func TestFetchPlayerInfoMissingFields(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><h1 class="data-header__headline-wrapper">Bare Player</h1></body></html>`)
	}))

	info, err := svc.FetchPlayerInfo(context.Background(), "1")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if info.Name != "Bare Player" {
		t.Fatalf("name = %q", info.Name)
	}
	for field, value := range map[string]string{
		"position":     info.Position,
		"age":          info.Age,
		"nationality":  info.Nationality,
		"market value": info.MarketValue,
	} {
		if value != domain.NotFound {
			t.Fatalf("expected %s to degrade to %q, got %q", field, domain.NotFound, value)
		}
	}
}

func TestFetchSeasonLabelsSkipsAggregate(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, seasonSelectHTML)
	}))

	labels, err := svc.FetchSeasonLabels(context.Background(), "418560")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	want := []string{"2024", "2023"}
	if len(labels) != len(want) {
		t.Fatalf("labels = %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("labels = %v, want %v", labels, want)
		}
	}
}

func TestFetchSeasonDataParsesSummaryRow(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, seasonDataHTML)
	}))

	record, err := svc.FetchSeasonData(context.Background(), "418560", "2024")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if record.Season != "2024" {
		t.Fatalf("season = %q", record.Season)
	}
	if record.Appearances != 30 || record.Goals != 15 || record.Assists != 7 {
		t.Fatalf("unexpected record: %+v", record)
	}
	if record.YellowCards != 4 || record.RedCards != 1 {
		t.Fatalf("unexpected cards: %+v", record)
	}
	if record.MinutesPlayed != 2511 {
		t.Fatalf("minutes = %d, want 2511", record.MinutesPlayed)
	}
}

func TestFetchSeasonDataWithoutSummaryRow(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><table><tbody><tr><td>1</td></tr></tbody></table></body></html>`)
	}))

	record, err := svc.FetchSeasonData(context.Background(), "418560", "2023")
	if err != nil {
		t.Fatalf("expected a zero record, got error %v", err)
	}
	if record.Season != "2023" || record.Appearances != 0 || record.Goals != 0 {
		t.Fatalf("expected zero record for season 2023, got %+v", record)
	}
}

func TestFetchAllPlayerDataEndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/schnellsuche/ergebnis/schnellsuche", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<a href="/test-striker/profil/spieler/77">Test Striker</a>`)
	})
	mux.HandleFunc("/spieler/profil/spieler/77", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, profileHTML)
	})
	mux.HandleFunc("/spieler/leistungsdaten/spieler/77", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, seasonSelectHTML)
	})
	mux.HandleFunc("/spieler/leistungsdaten/spieler/77/plus/0", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, seasonDataHTML)
	})

	svc, _ := newTestService(t, mux)

	info, seasons, err := svc.FetchAllPlayerData(context.Background(), "Test Striker")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if info.Name != "Test Striker" {
		t.Fatalf("name = %q", info.Name)
	}
	if len(seasons) != 2 {
		t.Fatalf("expected 2 seasons, got %d", len(seasons))
	}
	if seasons[0].Season != "2024" || seasons[1].Season != "2023" {
		t.Fatalf("expected most-recent-first seasons, got %+v", seasons)
	}
	if seasons[0].Goals != 15 {
		t.Fatalf("goals = %d, want 15", seasons[0].Goals)
	}
}

func TestParseCounter(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"30", 30},
		{"-", 0},
		{"2.511'", 2511},
		{"1,5", 1},
		{" 7 ", 7},
		{"", 0},
		{"n/a", 0},
	}

	for _, tc := range cases {
		if got := parseCounter(tc.input); got != tc.want {
			t.Fatalf("parseCounter(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}
