package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"studiodesk/pkg/logger"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReader serves queued messages, then blocks until ctx ends or it is
// closed.
type fakeReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []kafka.Message
	closed    chan struct{}
	drained   chan struct{}
	once      sync.Once
}

func newFakeReader(msgs ...kafka.Message) *fakeReader {
	return &fakeReader{queue: msgs, closed: make(chan struct{}), drained: make(chan struct{})}
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.queue) > 0 {
		msg := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()
	r.once.Do(func() { close(r.drained) })

	select {
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	case <-r.closed:
		return kafka.Message{}, ErrConsumerClosed
	}
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error {
	close(r.closed)
	return nil
}

func kafkaMessage(eventType string, offset int64) kafka.Message {
	return kafka.Message{
		Topic:  "calendar",
		Offset: offset,
		Key:    []byte("r1"),
		Value:  []byte(`{"reservationId":"r1"}`),
		Headers: []kafka.Header{
			{Key: HeaderEventType, Value: []byte(eventType)},
			{Key: HeaderEventID, Value: []byte("evt")},
		},
	}
}

func TestConsumer_HandlesAndCommits(t *testing.T) {
	reader := newFakeReader(kafkaMessage("reservation.payment_changed", 1), kafkaMessage("availability.created", 2))

	var seen []string
	c := NewConsumerWithReader(reader, "calendar", "g", 0, func(_ context.Context, msg Message) error {
		seen = append(seen, msg.GetEventType())
		return nil
	}, logger.Nop())

	done := make(chan error, 1)
	go func() { done <- c.Start(context.Background()) }()

	<-reader.drained
	require.NoError(t, c.Close())
	assert.ErrorIs(t, <-done, ErrConsumerClosed)

	assert.Equal(t, []string{"reservation.payment_changed", "availability.created"}, seen)
	assert.Len(t, reader.committed, 2)
	assert.ErrorIs(t, c.Start(context.Background()), ErrConsumerClosed)
}

func TestConsumer_RetriesThenDrops(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCalls int
	}{
		{name: "transient error retried", err: errors.New("ledger busy"), wantCalls: 3},
		{name: "permanent error not retried", err: Permanent(errors.New("bad payload")), wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := newFakeReader(kafkaMessage("reservation.payment_changed", 7))

			calls := 0
			c := NewConsumerWithReader(reader, "calendar", "g", 2, func(context.Context, Message) error {
				calls++
				return tt.err
			}, logger.Nop())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			done := make(chan error, 1)
			go func() { done <- c.Start(ctx) }()

			<-reader.drained
			cancel()
			assert.ErrorIs(t, <-done, context.Canceled)

			assert.Equal(t, tt.wantCalls, calls)
			assert.Len(t, reader.committed, 1, "a dropped message is still committed")
		})
	}
}

func TestMessage_ConvertKeepsHeaders(t *testing.T) {
	msg := convertMessage(kafkaMessage("availability.deleted", 3))

	assert.Equal(t, "r1", msg.Key)
	assert.Equal(t, "availability.deleted", msg.GetEventType())
	assert.Equal(t, "evt", msg.GetEventID())
	assert.Equal(t, "calendar", msg.Topic)
}
