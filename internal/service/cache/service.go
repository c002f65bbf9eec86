// Package cache wraps Redis with the JSON get/set surface the scraper uses
// to avoid re-fetching player pages.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yotambraun/football-scout-rag/pkg/errors"
	"go.uber.org/zap"
)

type Service struct {
	client *redis.Client
	logger *zap.Logger
}

type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func NewService(cfg Config, logger *zap.Logger) (*Service, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.NewStorageError("failed to connect to Redis", "ping", err)
	}

	logger.Info("Redis connected",
		zap.String("addr", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		zap.Int("db", cfg.DB),
	)

	return &Service{client: client, logger: logger}, nil
}

// Get unmarshals the value stored under key into dest. A missing key is not
// an error; found reports whether the key existed.
func (s *Service) Get(ctx context.Context, key string, dest any) (found bool, err error) {
	if s == nil {
		return false, nil
	}

	value, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		s.logger.Error("Cache get failed", zap.String("key", key), zap.Error(err))
		return false, errors.NewStorageError("cache get failed", "get", err)
	}

	if dest != nil {
		if err := json.Unmarshal([]byte(value), dest); err != nil {
			s.logger.Error("Cache unmarshal failed", zap.String("key", key), zap.Error(err))
			return false, errors.NewStorageError("cache unmarshal failed", "get", err)
		}
	}

	return true, nil
}

func (s *Service) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if s == nil {
		return nil
	}

	jsonData, err := json.Marshal(value)
	if err != nil {
		return errors.NewStorageError("cache marshal failed", "set", err)
	}

	if err := s.client.Set(ctx, key, jsonData, ttl).Err(); err != nil {
		s.logger.Error("Cache set failed", zap.String("key", key), zap.Error(err))
		return errors.NewStorageError("cache set failed", "set", err)
	}

	return nil
}

func (s *Service) Del(ctx context.Context, key string) error {
	if s == nil {
		return nil
	}

	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.logger.Error("Cache delete failed", zap.String("key", key), zap.Error(err))
		return errors.NewStorageError("cache delete failed", "del", err)
	}
	return nil
}

func (s *Service) Close() error {
	if s == nil {
		return nil
	}
	return s.client.Close()
}
