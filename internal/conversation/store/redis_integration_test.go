//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"recruit/internal/conversation/models"
	"recruit/internal/conversation/store"
	"recruit/internal/conversation/validation"
	"recruit/pkg/platform/sentinel"
	"recruit/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *store.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
	s.store = store.NewRedis(s.redis.Client, time.Hour)
}

func (s *RedisStoreSuite) SetupTest() {
	err := s.redis.FlushAll(context.Background())
	s.Require().NoError(err)
}

func (s *RedisStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)
	sess, err := models.NewSession(42, "ann", now)
	s.Require().NoError(err)
	s.Require().NoError(sess.Record("Ann Lee", now))
	s.Require().NoError(sess.Record("20", now))

	s.Require().NoError(s.store.Save(ctx, sess))

	got, err := s.store.Get(ctx, 42)
	s.Require().NoError(err)
	s.Equal(models.StepBirthDate, got.Step)
	s.Equal("Ann Lee", got.Draft[validation.FieldName])
	s.Equal("20", got.Draft[validation.FieldAge])
	s.Equal("ann", got.ApplicantHandle)
	s.True(now.Equal(got.StartedAt))
	s.NoError(got.CheckPrefix())
}

func (s *RedisStoreSuite) TestTTLApplied() {
	ctx := context.Background()
	sess, _ := models.NewSession(43, "", time.Now())
	s.Require().NoError(s.store.Save(ctx, sess))

	ttl, err := s.redis.Client.TTL(ctx, "recruit:session:43").Result()
	s.Require().NoError(err)
	s.Greater(ttl, 59*time.Minute)
}

func (s *RedisStoreSuite) TestMissingAndDelete() {
	ctx := context.Background()
	_, err := s.store.Get(ctx, 99)
	s.ErrorIs(err, sentinel.ErrNotFound)

	sess, _ := models.NewSession(99, "", time.Now())
	s.Require().NoError(s.store.Save(ctx, sess))
	s.Require().NoError(s.store.Delete(ctx, 99))
	_, err = s.store.Get(ctx, 99)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
