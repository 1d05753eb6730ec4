package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"standsdir/internal/directory/metrics"
	id "standsdir/pkg/domain"
	"standsdir/pkg/platform/circuit"
)

type fakeProducer struct {
	records []*kgo.Record
	err     error
}

func (f *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	results := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		f.records = append(f.records, r)
		results = append(results, kgo.ProduceResult{Record: r, Err: f.err})
	}
	return results
}

type recordingPublisher struct {
	got []Notification
	err error
}

func (r *recordingPublisher) Publish(_ context.Context, n Notification) error {
	if r.err != nil {
		return r.err
	}
	r.got = append(r.got, n)
	return nil
}

func testNotification() Notification {
	return Notification{
		Event:        EventLeadAssigned,
		LeadID:       id.NewLeadID(),
		BuilderID:    id.NewBuilderID(),
		BuilderEmail: "sales@builder.test",
		MatchScore:   90,
		OccurredAt:   time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC),
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestKafkaPublisher(t *testing.T) {
	t.Run("writes a keyed JSON record", func(t *testing.T) {
		producer := &fakeProducer{}
		n := testNotification()

		require.NoError(t, NewKafkaPublisher(producer, "leads").Publish(context.Background(), n))
		require.Len(t, producer.records, 1)

		rec := producer.records[0]
		assert.Equal(t, "leads", rec.Topic)
		assert.Equal(t, n.BuilderID.String(), string(rec.Key))
		assert.Equal(t, []kgo.RecordHeader{
			{Key: "event", Value: []byte(EventLeadAssigned)},
			{Key: "lead_id", Value: []byte(n.LeadID.String())},
		}, rec.Headers)

		var decoded Notification
		require.NoError(t, json.Unmarshal(rec.Value, &decoded))
		assert.Equal(t, n, decoded)
	})

	t.Run("returns produce errors", func(t *testing.T) {
		producer := &fakeProducer{err: errors.New("broker down")}
		err := NewKafkaPublisher(producer, "leads").Publish(context.Background(), testNotification())
		assert.ErrorContains(t, err, "broker down")
	})
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	n := testNotification()

	require.NoError(t, NewLogPublisher(logger).Publish(context.Background(), n))
	assert.Contains(t, buf.String(), `"builder_id":"`+n.BuilderID.String()+`"`)
	assert.Contains(t, buf.String(), `"event":"lead.assigned"`)
}

func TestResilientPublisher(t *testing.T) {
	ctx := context.Background()

	t.Run("uses primary when healthy", func(t *testing.T) {
		primary, fallback := &recordingPublisher{}, &recordingPublisher{}
		p := NewResilientPublisher("kafka", primary, fallback, WithLogger(quietLogger()))

		require.NoError(t, p.Publish(ctx, testNotification()))
		assert.Len(t, primary.got, 1)
		assert.Empty(t, fallback.got)
	})

	t.Run("falls back on failure and stops calling an open primary", func(t *testing.T) {
		primary := &recordingPublisher{err: errors.New("timeout")}
		fallback := &recordingPublisher{}
		m := metrics.New(prometheus.NewRegistry())
		breaker := circuit.New("kafka", circuit.WithFailureThreshold(2), circuit.WithCooldown(time.Hour))
		p := NewResilientPublisher("kafka", primary, fallback,
			WithLogger(quietLogger()), WithMetrics(m), WithBreaker(breaker))

		for range 4 {
			require.NoError(t, p.Publish(ctx, testNotification()))
		}
		assert.Len(t, fallback.got, 4)
		assert.True(t, breaker.IsOpen())
		assert.Equal(t, 2.0, testutil.ToFloat64(m.Notifications.WithLabelValues("kafka", "failed")))
		assert.Equal(t, 4.0, testutil.ToFloat64(m.Notifications.WithLabelValues("fallback", "sent")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.BreakerOpen))
	})

	t.Run("errors when both sinks fail", func(t *testing.T) {
		p := NewResilientPublisher("kafka",
			&recordingPublisher{err: errors.New("primary")},
			&recordingPublisher{err: errors.New("fallback")},
			WithLogger(quietLogger()))
		assert.ErrorContains(t, p.Publish(ctx, testNotification()), "fallback")
	})
}
