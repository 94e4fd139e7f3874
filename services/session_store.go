package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"hotel-ops/clock"
	"hotel-ops/models"
)

type SessionData struct {
	ID          string    `json:"id"`
	SubjectID   string    `json:"subject_id"`
	SubjectKind string    `json:"subject_kind"`
	Role        string    `json:"role"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// SessionStore keeps server-side sessions. Lookup returns ErrSessionExpired
// for unknown or expired ids.
type SessionStore interface {
	Create(ctx context.Context, s SessionData) error
	Lookup(ctx context.Context, id string) (SessionData, error)
	Delete(ctx context.Context, id string) error
}

type RedisSessionStore struct {
	rdb   *redis.Client
	clock clock.Clock
}

func NewRedisSessionStore(rdb *redis.Client, clk clock.Clock) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb, clock: clk}
}

func (s *RedisSessionStore) key(id string) string { return "sess:" + id }

func (s *RedisSessionStore) Create(ctx context.Context, sess SessionData) error {
	ttl := sess.ExpiresAt.Sub(s.clock.Now())
	if ttl <= 0 {
		return fmt.Errorf("create session: %w", ErrSessionExpired)
	}
	val, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key(sess.ID), val, ttl).Err()
}

func (s *RedisSessionStore) Lookup(ctx context.Context, id string) (SessionData, error) {
	v, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return SessionData{}, ErrSessionExpired
	}
	if err != nil {
		return SessionData{}, fmt.Errorf("lookup session: %w", err)
	}
	var sess SessionData
	if err := json.Unmarshal(v, &sess); err != nil {
		return SessionData{}, fmt.Errorf("decode session: %w", err)
	}
	if !sess.ExpiresAt.After(s.clock.Now()) {
		return SessionData{}, ErrSessionExpired
	}
	return sess, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, s.key(id)).Err()
}

// GormSessionStore keeps sessions in the sessions table.
type GormSessionStore struct {
	DB    *gorm.DB
	clock clock.Clock
}

func NewGormSessionStore(db *gorm.DB, clk clock.Clock) *GormSessionStore {
	return &GormSessionStore{DB: db, clock: clk}
}

func (s *GormSessionStore) Create(ctx context.Context, sess SessionData) error {
	row := models.Session{
		ID:          sess.ID,
		SubjectID:   sess.SubjectID,
		SubjectKind: sess.SubjectKind,
		Role:        sess.Role,
		ExpiresAt:   sess.ExpiresAt.UTC(),
	}
	return s.DB.WithContext(ctx).Create(&row).Error
}

func (s *GormSessionStore) Lookup(ctx context.Context, id string) (SessionData, error) {
	var row models.Session
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return SessionData{}, ErrSessionExpired
	}
	if err != nil {
		return SessionData{}, fmt.Errorf("lookup session: %w", err)
	}
	if !row.ExpiresAt.After(s.clock.Now()) {
		s.DB.WithContext(ctx).Delete(&models.Session{}, "id = ?", id)
		return SessionData{}, ErrSessionExpired
	}
	return SessionData{
		ID:          row.ID,
		SubjectID:   row.SubjectID,
		SubjectKind: row.SubjectKind,
		Role:        row.Role,
		ExpiresAt:   row.ExpiresAt,
	}, nil
}

func (s *GormSessionStore) Delete(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Delete(&models.Session{}, "id = ?", id).Error
}

// PurgeExpired removes sessions past their expiry.
func (s *GormSessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	res := s.DB.WithContext(ctx).Where("expires_at <= ?", s.clock.Now()).Delete(&models.Session{})
	return res.RowsAffected, res.Error
}
