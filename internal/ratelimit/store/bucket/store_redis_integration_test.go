//go:build integration

package bucket_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"standsdir/internal/ratelimit/models"
	"standsdir/internal/ratelimit/store/bucket"
	"standsdir/pkg/testutil/containers"
)

type RedisBucketStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *bucket.RedisStore
}

func TestRedisBucketStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisBucketStoreSuite))
}

func (s *RedisBucketStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = bucket.NewRedisStore(s.redis.Client)
}

func (s *RedisBucketStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisBucketStoreSuite) TestAllowsUpToLimitThenRejects() {
	ctx := context.Background()
	limit := models.Limit{Requests: 2, Window: time.Minute}

	for i := 0; i < 2; i++ {
		res, err := s.store.Allow(ctx, "ip:read:10.0.0.1", limit)
		s.Require().NoError(err)
		s.True(res.Allowed)
		s.Equal(1-i, res.Remaining)
	}

	res, err := s.store.Allow(ctx, "ip:read:10.0.0.1", limit)
	s.Require().NoError(err)
	s.False(res.Allowed)
	s.Equal(0, res.Remaining)
	s.GreaterOrEqual(res.RetryAfter, 1)
	s.LessOrEqual(res.RetryAfter, 60)

	other, err := s.store.Allow(ctx, "ip:read:10.0.0.2", limit)
	s.Require().NoError(err)
	s.True(other.Allowed)
}

func (s *RedisBucketStoreSuite) TestReset() {
	ctx := context.Background()
	limit := models.Limit{Requests: 1, Window: time.Minute}

	_, err := s.store.Allow(ctx, "k", limit)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Reset(ctx, "k"))

	res, err := s.store.Allow(ctx, "k", limit)
	s.Require().NoError(err)
	s.True(res.Allowed)
}
