package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"recruit/internal/conversation/models"
	"recruit/internal/conversation/validation"
	id "recruit/pkg/domain"
	"recruit/pkg/platform/sentinel"
)

const sessionKeyPrefix = "recruit:session:"

// RedisStore keeps sessions in Redis so a restart does not lose an
// applicant's progress. Every save refreshes the TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(applicant id.UserID) string {
	return sessionKeyPrefix + applicant.String()
}

func (s *RedisStore) Get(ctx context.Context, applicant id.UserID) (*models.Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(applicant)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	var sess models.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if sess.Draft == nil {
		sess.Draft = map[validation.Field]string{}
	}
	return &sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sess *models.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(sess.ApplicantID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, applicant id.UserID) error {
	if err := s.client.Del(ctx, sessionKey(applicant)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
