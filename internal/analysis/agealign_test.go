package analysis

import (
	"testing"

	"github.com/yotambraun/football-scout-rag/internal/domain"
)

func agedPlayer(age string, seasons ...domain.SeasonRecord) *domain.Player {
	return &domain.Player{
		Info:    domain.PlayerInfo{ID: "1", Name: "Test Player", Age: age},
		Seasons: seasons,
	}
}

func TestParseAge(t *testing.T) {
	cases := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{"28", 28, true},
		{"Jun 17, 1997 (28)", 17, true}, // first run of digits wins
		{"age 23 years", 23, true},
		{"", 0, false},
		{"unknown", 0, false},
		{domain.NotFound, 0, false},
	}

	for _, tc := range cases {
		got, ok := ParseAge(tc.input)
		if ok != tc.wantOK || got != tc.want {
			t.Fatalf("ParseAge(%q) = (%d, %v), want (%d, %v)", tc.input, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestStatsAtAgePicksSeasonByOffset(t *testing.T) {
	player := agedPlayer("23",
		domain.SeasonRecord{Season: "2024", Goals: 20, Assists: 5, Appearances: 30, MinutesPlayed: 2700},
		domain.SeasonRecord{Season: "2023", Goals: 12, Assists: 4, Appearances: 28, MinutesPlayed: 2400},
		domain.SeasonRecord{Season: "2022", Goals: 6, Assists: 2, Appearances: 20, MinutesPlayed: 1500},
	)

	snapshot := StatsAtAge(player, 21)
	if snapshot == nil {
		t.Fatal("expected a snapshot for age 21")
	}
	if snapshot.Season != "2022" {
		t.Fatalf("expected season 2022 at two seasons back, got %s", snapshot.Season)
	}
	if snapshot.Goals != 6 || snapshot.Appearances != 20 {
		t.Fatalf("unexpected snapshot stats: %+v", snapshot)
	}
	if want := 6.0 / 20.0; snapshot.GoalsPerGame != want {
		t.Fatalf("goals per game = %f, want %f", snapshot.GoalsPerGame, want)
	}
}

func TestStatsAtAgeCurrentAge(t *testing.T) {
	player := agedPlayer("23",
		domain.SeasonRecord{Season: "2024", Goals: 20, Appearances: 30},
	)

	snapshot := StatsAtAge(player, 23)
	if snapshot == nil || snapshot.Season != "2024" {
		t.Fatalf("expected most recent season at current age, got %+v", snapshot)
	}
}

func TestStatsAtAgeOutOfRange(t *testing.T) {
	player := agedPlayer("23",
		domain.SeasonRecord{Season: "2024"},
		domain.SeasonRecord{Season: "2023"},
	)

	if snapshot := StatsAtAge(player, 25); snapshot != nil {
		t.Fatalf("expected no data for a future age, got %+v", snapshot)
	}
	if snapshot := StatsAtAge(player, 20); snapshot != nil {
		t.Fatalf("expected no data beyond recorded history, got %+v", snapshot)
	}
}

func TestStatsAtAgeUnparseableAge(t *testing.T) {
	player := agedPlayer(domain.NotFound,
		domain.SeasonRecord{Season: "2024"},
	)

	if snapshot := StatsAtAge(player, 20); snapshot != nil {
		t.Fatalf("expected no data for unparseable age, got %+v", snapshot)
	}
}

func TestStatsAtAgeZeroAppearances(t *testing.T) {
	player := agedPlayer("22",
		domain.SeasonRecord{Season: "2024", Goals: 0, Appearances: 0},
	)

	snapshot := StatsAtAge(player, 22)
	if snapshot == nil {
		t.Fatal("expected a snapshot")
	}
	if snapshot.GoalsPerGame != 0.0 {
		t.Fatalf("expected 0.0 goals per game with no appearances, got %f", snapshot.GoalsPerGame)
	}
}

func TestCompareAtAgeBothSides(t *testing.T) {
	player1 := agedPlayer("23",
		domain.SeasonRecord{Season: "2024", Goals: 10, Appearances: 20},
		domain.SeasonRecord{Season: "2023", Goals: 8, Appearances: 18},
	)
	player2 := agedPlayer("30",
		domain.SeasonRecord{Season: "2024", Goals: 25, Appearances: 30},
	)

	comparison := CompareAtAge(player1, player2, 22)
	if comparison.Age != 22 {
		t.Fatalf("expected age 22, got %d", comparison.Age)
	}
	if comparison.Stats1 == nil || comparison.Stats1.Season != "2023" {
		t.Fatalf("expected player1 snapshot from 2023, got %+v", comparison.Stats1)
	}
	if comparison.Stats2 != nil {
		t.Fatalf("expected no snapshot for player2 (8 seasons back, 1 recorded), got %+v", comparison.Stats2)
	}
}
