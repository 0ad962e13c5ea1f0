package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/surveyhub/config"
	"github.com/lshigami/surveyhub/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RevocationStore remembers logged-out token ids until they expire.
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// NewRevocationStore uses Redis when REDIS_ADDR is configured and the
// database otherwise.
func NewRevocationStore(lc fx.Lifecycle, cfg *config.Config, db *gorm.DB) RevocationStore {
	if cfg.Redis.Addr == "" {
		log.Info().Msg("Redis not configured, token revocation uses the database")
		return NewDBRevocationStore(db)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis ping failed")
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return NewRedisRevocationStore(client)
}

type redisRevocationStore struct {
	client *redis.Client
}

func NewRedisRevocationStore(client *redis.Client) RevocationStore {
	return &redisRevocationStore{client: client}
}

func revokedKey(jti string) string {
	return "auth:revoked:" + jti
}

func (s *redisRevocationStore) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, revokedKey(jti), 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *redisRevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := s.client.Get(ctx, revokedKey(jti)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return true, nil
}

type dbRevocationStore struct {
	db *gorm.DB
}

func NewDBRevocationStore(db *gorm.DB) RevocationStore {
	return &dbRevocationStore{db: db}
}

func (s *dbRevocationStore) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	tx := s.db.WithContext(ctx)
	// Expired rows are useless; prune them while we are writing anyway.
	if err := tx.Where("expires_at < ?", time.Now().UTC()).Delete(&model.RevokedToken{}).Error; err != nil {
		log.Warn().Err(err).Msg("Failed to prune expired revoked tokens")
	}
	err := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.RevokedToken{JTI: jti, ExpiresAt: expiresAt.UTC()}).Error
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *dbRevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.RevokedToken{}).
		Where("jti = ? AND expires_at >= ?", jti, time.Now().UTC()).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return count > 0, nil
}
