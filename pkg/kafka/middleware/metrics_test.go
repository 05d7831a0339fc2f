package kafka_middleware

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"studiodesk/pkg/kafka"
	"studiodesk/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func ok(context.Context, kafka.Message) error { return nil }

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	mw := m.ProducerMiddleware()
	msg := kafka.Message{Key: "k", Value: []byte("{}")}

	assert.NoError(t, mw(context.Background(), msg, ok))
	assert.NoError(t, mw(context.Background(), msg, ok))
	assert.Error(t, mw(context.Background(), msg, func(context.Context, kafka.Message) error {
		return errors.New("boom")
	}))

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Published)
	assert.Equal(t, int64(1), snap.Failed)
	assert.GreaterOrEqual(t, snap.AvgPublishMillis, 0.0)

	m.Reset()
	assert.Equal(t, Snapshot{}, m.Snapshot())
}

func TestLoggingProducerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: logger.DEBUG, Format: logger.JSON, Output: &buf})
	mw := LoggingProducerMiddleware(log)

	msg := kafka.Message{
		Key:     "staff-1",
		Topic:   "calendar",
		Value:   []byte("{}"),
		Headers: map[string]string{kafka.HeaderEventType: "availability.deleted"},
	}
	assert.NoError(t, mw(context.Background(), msg, ok))
	assert.Contains(t, buf.String(), `"event_type":"availability.deleted"`)
	assert.Contains(t, buf.String(), "published message")
}
