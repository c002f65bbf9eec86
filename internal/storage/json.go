// Package storage persists scouted players as JSON documents, one file per
// player. This is a write-only side channel; nothing reads it back.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yotambraun/football-scout-rag/internal/domain"
	"github.com/yotambraun/football-scout-rag/internal/util"
	"github.com/yotambraun/football-scout-rag/pkg/errors"
	"go.uber.org/zap"
)

type JSONStore struct {
	dir    string
	logger *zap.Logger
}

func NewJSONStore(dir string, logger *zap.Logger) *JSONStore {
	return &JSONStore{dir: dir, logger: logger}
}

// PlayerPath derives the document path for a display name: lower-cased,
// spaces replaced with underscores.
func (s *JSONStore) PlayerPath(name string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_data.json", util.FileSlug(name)))
}

// SavePlayer writes the player document, creating the data directory when
// needed.
func (s *JSONStore) SavePlayer(player *domain.Player) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return errors.NewStorageError("failed to create data directory", "mkdir", err)
	}

	data, err := json.MarshalIndent(player, "", "  ")
	if err != nil {
		return errors.NewStorageError("failed to marshal player", "marshal", err)
	}

	path := s.PlayerPath(player.Info.Name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.NewStorageError("failed to write player file", "write", err)
	}

	s.logger.Info("Player data saved", zap.String("path", path))
	return nil
}
