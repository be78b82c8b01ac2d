package mq

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type mockChannel struct {
	mu         sync.Mutex
	sent       []published
	publishErr error
	closed     bool
}

func (m *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.publishErr != nil {
		return m.publishErr
	}
	m.sent = append(m.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (m *mockChannel) Close() error {
	m.closed = true
	return nil
}

func TestPublishJSON(t *testing.T) {
	ch := &mockChannel{}
	p := NewPublisherWithChannel(ch, "booking.exchange")

	err := p.PublishJSON(context.Background(), "booking.created", map[string]string{"id": "b1"})

	require.NoError(t, err)
	require.Len(t, ch.sent, 1)
	got := ch.sent[0]
	assert.Equal(t, "booking.exchange", got.exchange)
	assert.Equal(t, "booking.created", got.key)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)

	var body map[string]string
	require.NoError(t, json.Unmarshal(got.msg.Body, &body))
	assert.Equal(t, "b1", body["id"])
}

func TestPublishJSON_ChannelError(t *testing.T) {
	brokerErr := errors.New("channel closed")
	p := NewPublisherWithChannel(&mockChannel{publishErr: brokerErr}, "booking.exchange")

	err := p.PublishJSON(context.Background(), "booking.cancelled", struct{}{})

	assert.ErrorIs(t, err, brokerErr)
	assert.Contains(t, err.Error(), "publish booking.cancelled")
}

func TestPublishJSON_EncodeError(t *testing.T) {
	ch := &mockChannel{}
	p := NewPublisherWithChannel(ch, "booking.exchange")

	err := p.PublishJSON(context.Background(), "booking.created", make(chan int))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "encode booking.created event")
	assert.Empty(t, ch.sent)
}

func TestPublishJSON_Concurrent(t *testing.T) {
	ch := &mockChannel{}
	p := NewPublisherWithChannel(ch, "booking.exchange")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, p.PublishJSON(context.Background(), "booking.confirmed", n))
		}(i)
	}
	wg.Wait()

	assert.Len(t, ch.sent, 50)
}

func TestClose_WithoutConnection(t *testing.T) {
	ch := &mockChannel{}
	p := NewPublisherWithChannel(ch, "booking.exchange")

	assert.NoError(t, p.Close())
	assert.True(t, ch.closed)
}
