package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_StampsEnvelope(t *testing.T) {
	t.Parallel()

	fields := map[string]any{"userId": uint(3)}
	a := New("order_completed", fields)
	b := New("order_completed", fields)

	assert.Equal(t, "order_completed", a.Type())
	assert.Equal(t, uint(3), a["userId"])
	assert.NotEmpty(t, a["event_id"])
	assert.NotEmpty(t, a["occurred_at"])
	assert.NotEqual(t, a["event_id"], b["event_id"])
	assert.NotContains(t, fields, "type")
}

func TestRecorder(t *testing.T) {
	t.Parallel()

	var r Recorder
	ctx := context.Background()
	require.NoError(t, r.Publish(ctx, TopicCart, "1", New("cart_item_added", nil)))
	require.NoError(t, r.Publish(ctx, TopicOrder, "1", New("order_completed", nil)))
	require.NoError(t, r.Publish(ctx, TopicCart, "1", New("cart_item_added", nil)))

	assert.Len(t, r.Messages(), 3)
	added := r.Of("cart_item_added")
	require.Len(t, added, 2)
	assert.Equal(t, TopicCart, added[0].Topic)
	assert.Equal(t, "1", added[0].Key)
}

func TestNop(t *testing.T) {
	t.Parallel()

	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), TopicUser, "k", New("x", nil)))
	assert.NoError(t, p.Close())
}

func TestKafka_EncodeAndConfig(t *testing.T) {
	t.Parallel()

	_, err := NewKafkaProducer(nil)
	require.Error(t, err)

	p, err := NewKafkaProducer([]string{"localhost:9092"})
	require.NoError(t, err)
	assert.Equal(t, "localhost:9092", p.writer.Addr.String())

	msg, err := encode(TopicOrder, "7", New("order_completed", map[string]any{"total": 60.0}))
	require.NoError(t, err)
	assert.Equal(t, TopicOrder, msg.Topic)
	assert.Equal(t, []byte("7"), msg.Key)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "order_completed", decoded["type"])
	assert.InDelta(t, 60.0, decoded["total"], 1e-9)

	_, err = encode(TopicOrder, "7", Event{"bad": make(chan int)})
	assert.Error(t, err)
}
