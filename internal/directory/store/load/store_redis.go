package load

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	id "standsdir/pkg/domain"
)

var countsDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "standsdir_builder_load_counts_duration_ms",
	Help:    "Latency of builder load lookups in Redis in milliseconds",
	Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
})

const loadKeyPrefix = "standsdir:builder_load:"

// incrementFloorZero applies INCRBY and clamps the result at zero atomically.
var incrementFloorZero = redis.NewScript(`
local n = redis.call("INCRBY", KEYS[1], ARGV[1])
if n < 0 then
	redis.call("SET", KEYS[1], 0)
	n = 0
end
return n
`)

// RedisStore shares builder load counters across instances.
type RedisStore struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func key(builderID id.BuilderID) string {
	return loadKeyPrefix + builderID.String()
}

func (s *RedisStore) Increment(ctx context.Context, builderID id.BuilderID, delta int) (int, error) {
	n, err := incrementFloorZero.Run(ctx, s.client, []string{key(builderID)}, delta).Int()
	if err != nil {
		return 0, fmt.Errorf("increment builder load: %w", err)
	}
	return n, nil
}

func (s *RedisStore) Counts(ctx context.Context, builderIDs []id.BuilderID) (map[id.BuilderID]int, error) {
	start := time.Now()
	defer func() {
		countsDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	out := make(map[id.BuilderID]int, len(builderIDs))
	if len(builderIDs) == 0 {
		return out, nil
	}

	keys := make([]string, len(builderIDs))
	for i, builderID := range builderIDs {
		keys[i] = key(builderID)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("get builder loads: %w", err)
	}

	for i, builderID := range builderIDs {
		out[builderID] = 0
		if i >= len(values) || values[i] == nil {
			continue
		}
		raw, ok := values[i].(string)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("parse builder load %s: %w", builderID, err)
		}
		out[builderID] = n
	}
	return out, nil
}

func (s *RedisStore) Set(ctx context.Context, counts map[id.BuilderID]int) error {
	if len(counts) == 0 {
		return nil
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for builderID, n := range counts {
			pipe.Set(ctx, key(builderID), max(n, 0), 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("set builder loads: %w", err)
	}
	return nil
}
