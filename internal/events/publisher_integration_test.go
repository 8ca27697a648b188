//go:build integration

package events_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"pomen/internal/events"
	id "pomen/pkg/domain"
	"pomen/pkg/testutil/containers"
)

func TestPublisherRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	broker := containers.NewRedpandaContainer(t)

	const topic = "pomen.events.test"
	pub, err := events.New(ctx, []string{broker.Broker}, topic, nil)
	require.NoError(t, err)
	require.NotNil(t, pub)

	personID := id.NewPersonID()
	tributeID := id.NewTributeID()
	pub.PersonCreated(ctx, personID)
	pub.TributeSubmitted(ctx, personID, tributeID)
	pub.Close() // flushes

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker.Broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	var got []events.Envelope
	deadline := time.Now().Add(15 * time.Second)
	for len(got) < 2 && time.Now().Before(deadline) {
		pollCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		fetches := consumer.PollFetches(pollCtx)
		cancel()
		fetches.EachRecord(func(r *kgo.Record) {
			var env events.Envelope
			require.NoError(t, json.Unmarshal(r.Value, &env))
			got = append(got, env)
			assert.Equal(t, personID.String(), string(r.Key), "person id keys the partition")
		})
	}

	require.Len(t, got, 2)
	assert.Equal(t, events.TypePersonCreated, got[0].Type)
	assert.Equal(t, events.TypeTributeSubmitted, got[1].Type)
	assert.Equal(t, tributeID.String(), got[1].TributeID)
}

func TestPublisherNilSafety(t *testing.T) {
	ctx := context.Background()

	pub, err := events.New(ctx, nil, "pomen.events", nil)
	require.NoError(t, err)
	require.Nil(t, pub, "no brokers configured means no publisher")

	// All methods must be safe on the nil publisher.
	pub.PersonCreated(ctx, id.NewPersonID())
	pub.TributeSubmitted(ctx, id.NewPersonID(), id.NewTributeID())
	pub.Close()
}
