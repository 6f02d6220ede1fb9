//go:build integration

package kafka_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"facilities/internal/platform/kafka"
	"facilities/pkg/testutil/containers"
)

func TestProducerAgainstRedpanda(t *testing.T) {
	rp := containers.GetManager().GetRedpanda(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	producer, err := kafka.NewProducer(ctx, rp.Brokers)
	require.NoError(t, err)
	defer producer.Close(ctx)

	const topic = "facility-changes-it"
	require.NoError(t, producer.EnsureTopic(ctx, topic, 1, 1))
	require.NoError(t, producer.EnsureTopic(ctx, topic, 1, 1), "ensuring twice is a no-op")

	require.NoError(t, producer.Send(ctx, topic,
		kafka.Message{Key: []byte("vha_A"), Value: []byte(`{"change":"created"}`)},
		kafka.Message{Key: []byte("vha_B"), Value: []byte(`{"change":"missing"}`)},
	))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(rp.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	var keys []string
	for len(keys) < 2 {
		fetches := consumer.PollFetches(ctx)
		require.NoError(t, ctx.Err())
		fetches.EachRecord(func(r *kgo.Record) {
			keys = append(keys, string(r.Key))
		})
	}
	assert.ElementsMatch(t, []string{"vha_A", "vha_B"}, keys)
}
