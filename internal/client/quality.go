package client

import (
	"context"
	"time"
)

type Quality string

const (
	QualityGood Quality = "good"
	QualityFair Quality = "fair"
	QualityPoor Quality = "poor"
)

const defaultSampleInterval = 10 * time.Second

// QualitySampler probes the gateway on a fixed interval while a meeting is
// active and classifies the round-trip latency. Stop tears the loop down
// when the user leaves.
type QualitySampler struct {
	client   *Client
	interval time.Duration
	onSample func(Quality)
	cancel   context.CancelFunc
}

func NewQualitySampler(c *Client, interval time.Duration, onSample func(Quality)) *QualitySampler {
	if interval <= 0 {
		interval = defaultSampleInterval
	}
	return &QualitySampler{client: c, interval: interval, onSample: onSample}
}

func (s *QualitySampler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.sample(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sample(ctx)
			}
		}
	}()
}

func (s *QualitySampler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *QualitySampler) sample(ctx context.Context) {
	start := time.Now()
	_, err := s.client.Health(ctx)
	if err != nil {
		s.onSample(QualityPoor)
		return
	}
	s.onSample(classify(time.Since(start)))
}

func classify(rtt time.Duration) Quality {
	switch {
	case rtt <= 150*time.Millisecond:
		return QualityGood
	case rtt <= 500*time.Millisecond:
		return QualityFair
	default:
		return QualityPoor
	}
}
