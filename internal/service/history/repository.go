// Package history records completed scouts in Postgres so past scouting
// passes survive process restarts. The in-memory catalog remains the source
// of truth for queries; this is a write-mostly audit trail.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/yotambraun/football-scout-rag/internal/domain"
	"github.com/yotambraun/football-scout-rag/internal/service/database"
	"go.uber.org/zap"
)

type Repository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewRepository(postgres *database.PostgresService, logger *zap.Logger) *Repository {
	return &Repository{
		db:     postgres.GetDB(),
		logger: logger,
	}
}

// EnsureSchema creates the scout_history table when it does not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS scout_history (
			id SERIAL PRIMARY KEY,
			player_id TEXT NOT NULL,
			player_name TEXT NOT NULL,
			current_club TEXT,
			market_value TEXT,
			total_goals INTEGER NOT NULL DEFAULT 0,
			total_assists INTEGER NOT NULL DEFAULT 0,
			total_appearances INTEGER NOT NULL DEFAULT 0,
			total_minutes INTEGER NOT NULL DEFAULT 0,
			scouted_at TIMESTAMPTZ NOT NULL
		)
	`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create scout_history table: %w", err)
	}
	return nil
}

// Record inserts one row for a completed scout.
func (r *Repository) Record(ctx context.Context, player *domain.Player) error {
	query := `
		INSERT INTO scout_history
			(player_id, player_name, current_club, market_value,
			 total_goals, total_assists, total_appearances, total_minutes, scouted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	var goals, assists, apps, minutes int
	if s := player.NormalizedStats; s != nil {
		goals, assists, apps, minutes = s.TotalGoals, s.TotalAssists, s.TotalAppearances, s.TotalMinutes
	}

	_, err := r.db.ExecContext(ctx, query,
		player.Info.ID,
		player.Info.Name,
		nullIfEmpty(player.Info.CurrentClub),
		nullIfEmpty(player.Info.MarketValue),
		goals, assists, apps, minutes,
		player.ScoutedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert scout history: %w", err)
	}

	r.logger.Debug("Scout recorded",
		zap.String("player", player.Info.Name),
		zap.String("player_id", player.Info.ID),
	)
	return nil
}

// HistoryEntry is one past scout of a player.
type HistoryEntry struct {
	PlayerID         string
	PlayerName       string
	CurrentClub      string
	MarketValue      string
	TotalGoals       int
	TotalAssists     int
	TotalAppearances int
	TotalMinutes     int
	ScoutedAt        time.Time
}

// RecentByName returns the most recent scouts of a player, newest first.
func (r *Repository) RecentByName(ctx context.Context, name string, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT player_id, player_name, current_club, market_value,
		       total_goals, total_assists, total_appearances, total_minutes, scouted_at
		FROM scout_history
		WHERE LOWER(player_name) = LOWER($1)
		ORDER BY scouted_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, name, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query scout history: %w", err)
	}
	defer rows.Close()

	entries := make([]HistoryEntry, 0, limit)
	for rows.Next() {
		var (
			entry       HistoryEntry
			club, value sql.NullString
		)
		if err := rows.Scan(
			&entry.PlayerID, &entry.PlayerName, &club, &value,
			&entry.TotalGoals, &entry.TotalAssists, &entry.TotalAppearances,
			&entry.TotalMinutes, &entry.ScoutedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan scout history row: %w", err)
		}
		entry.CurrentClub = club.String
		entry.MarketValue = value.String
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func nullIfEmpty(s string) sql.NullString {
	if s == "" || s == domain.NotFound {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
