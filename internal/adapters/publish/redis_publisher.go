package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"ga-route-service/internal/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

// Message is the wire form of a progress update.
type Message struct {
	RunID        string    `json:"run_id"`
	Generation   int       `json:"generation"`
	DistanceKm   float64   `json:"distance_km"`
	Fitness      float64   `json:"fitness"`
	Genes        []int     `json:"genes"`
	MeanDistance float64   `json:"mean_distance_km"`
	StdDistance  float64   `json:"std_distance_km"`
	Running      bool      `json:"running"`
	At           time.Time `json:"at"`
}

func NewMessage(p domain.Progress) Message {
	return Message{
		RunID:        p.RunID,
		Generation:   p.Generation,
		DistanceKm:   p.Distance,
		Fitness:      p.Fitness,
		Genes:        p.Genes,
		MeanDistance: p.Stats.MeanDistance,
		StdDistance:  p.Stats.StdDistance,
		Running:      p.Running,
		At:           p.At,
	}
}

// ProgressChannel is the pub/sub channel a run's updates are published on.
func ProgressChannel(runID string) string { return "ga:runs:" + runID + ":progress" }

// LatestKey holds the most recent update of a run for late subscribers.
func LatestKey(runID string) string { return "ga:runs:" + runID + ":latest" }

// RedisPublisher broadcasts progress over Redis pub/sub and keeps the latest
// update under a key that expires once a run goes quiet.
type RedisPublisher struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPublisher(client *redis.Client, ttl time.Duration) (*RedisPublisher, error) {
	if client == nil {
		return nil, errors.New("redis publisher: client is nil")
	}
	return &RedisPublisher{client: client, ttl: ttl}, nil
}

func (p *RedisPublisher) Publish(ctx context.Context, progress domain.Progress) error {
	payload, err := json.Marshal(NewMessage(progress))
	if err != nil {
		return fmt.Errorf("publish progress: encode: %w", err)
	}

	pipe := p.client.TxPipeline()
	pipe.Set(ctx, LatestKey(progress.RunID), payload, p.ttl)
	pipe.Publish(ctx, ProgressChannel(progress.RunID), payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish progress run_id=%s: %w", progress.RunID, err)
	}

	return nil
}

// NopPublisher drops updates; used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.Progress) error { return nil }
