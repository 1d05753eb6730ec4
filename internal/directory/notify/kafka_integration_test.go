//go:build integration

package notify_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"standsdir/internal/directory/notify"
	"standsdir/internal/platform/kafka"
	id "standsdir/pkg/domain"
	"standsdir/pkg/testutil/containers"
)

type KafkaPublisherSuite struct {
	suite.Suite
	broker *containers.RedpandaContainer
	client *kgo.Client
	cfg    kafka.Config
}

func TestKafkaPublisherSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaPublisherSuite))
}

func (s *KafkaPublisherSuite) SetupSuite() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.broker = containers.GetManager().GetRedpanda(s.T())
	s.cfg = kafka.Config{
		Brokers:    []string{s.broker.Broker},
		ClientID:   "standsdir-test",
		Topic:      "standsdir.lead-assigned.test",
		Partitions: 1,
	}

	client, err := kafka.NewProducer(ctx, s.cfg)
	s.Require().NoError(err)
	s.Require().NotNil(client)
	s.client = client
	s.Require().NoError(kafka.EnsureTopic(ctx, client, s.cfg))
	// Idempotent.
	s.Require().NoError(kafka.EnsureTopic(ctx, client, s.cfg))
}

func (s *KafkaPublisherSuite) TearDownSuite() {
	if s.client != nil {
		s.client.Close()
	}
}

func (s *KafkaPublisherSuite) TestPublishKeyedByBuilder() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n := notify.Notification{
		Event:        notify.EventLeadAssigned,
		LeadID:       id.NewLeadID(),
		BuilderID:    id.NewBuilderID(),
		BuilderEmail: "sales@builder.example",
		Location:     "Dubai, UAE",
		MatchScore:   95,
		OccurredAt:   time.Now().UTC().Truncate(time.Millisecond),
	}
	s.Require().NoError(notify.NewKafkaPublisher(s.client, s.cfg.Topic).Publish(ctx, n))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.cfg.Brokers...),
		kgo.ConsumeTopics(s.cfg.Topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	s.Require().NoError(fetches.Err())
	records := fetches.Records()
	s.Require().NotEmpty(records)

	rec := records[len(records)-1]
	s.Equal(n.BuilderID.String(), string(rec.Key))

	var got notify.Notification
	s.Require().NoError(json.Unmarshal(rec.Value, &got))
	s.Equal(n.LeadID, got.LeadID)
	s.Equal(95, got.MatchScore)

	headers := map[string]string{}
	for _, h := range rec.Headers {
		headers[h.Key] = string(h.Value)
	}
	s.Equal(notify.EventLeadAssigned, headers["event"])
	s.Equal(n.LeadID.String(), headers["lead_id"])
}
