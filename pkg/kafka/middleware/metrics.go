package kafka_middleware

import (
	"context"
	"sync/atomic"
	"time"

	"studiodesk/pkg/kafka"
)

// Metrics counts publish outcomes for one producer.
type Metrics struct {
	published     atomic.Int64
	failed        atomic.Int64
	durationTotal atomic.Int64 // Nanoseconds
}

// Snapshot is a point-in-time copy of Metrics, shaped for the health endpoint.
type Snapshot struct {
	Published        int64   `json:"published"`
	Failed           int64   `json:"failed"`
	AvgPublishMillis float64 `json:"avg_publish_ms"`
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) Reset() {
	m.published.Store(0)
	m.failed.Store(0)
	m.durationTotal.Store(0)
}

func (m *Metrics) Snapshot() Snapshot {
	published := m.published.Load()
	failed := m.failed.Load()
	total := published + failed

	s := Snapshot{Published: published, Failed: failed}
	if total > 0 {
		s.AvgPublishMillis = float64(m.durationTotal.Load()) / float64(total) / float64(time.Millisecond)
	}
	return s
}

// ProducerMiddleware records every publish attempt into m.
func (m *Metrics) ProducerMiddleware() kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()
		err := next(ctx, msg)
		m.durationTotal.Add(int64(time.Since(start)))

		if err != nil {
			m.failed.Add(1)
		} else {
			m.published.Add(1)
		}
		return err
	}
}
