package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/VinayJogani14/KellyBet-Analytics-Platform/pkg/models"
)

// StreamPublisher publishes stake recommendations to Redis Streams for
// downstream consumers (alerting, tracking). It is optional: the
// service runs without it and publish failures never fail a request.
type StreamPublisher struct {
	client *redis.Client
	stream string
	log    *zap.Logger
}

// NewStreamPublisher creates a publisher writing to the given stream.
func NewStreamPublisher(client *redis.Client, stream string, log *zap.Logger) *StreamPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &StreamPublisher{client: client, stream: stream, log: log}
}

// Publish writes a recommendation to the global stream and, when a
// sport is known, to the sport-specific stream as well.
func (p *StreamPublisher) Publish(ctx context.Context, sport string, rec models.StakeRecommendation) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal recommendation: %w", err)
	}

	values := map[string]interface{}{
		"recommendation": string(payload),
		"sport":          sport,
	}

	if err := p.add(ctx, p.stream, values); err != nil {
		return err
	}

	if sport != "" {
		return p.add(ctx, fmt.Sprintf("%s.%s", p.stream, sport), values)
	}
	return nil
}

func (p *StreamPublisher) add(ctx context.Context, stream string, values map[string]interface{}) error {
	_, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: values,
	}).Result()
	if err != nil {
		return fmt.Errorf("publish to stream %s: %w", stream, err)
	}
	return nil
}

// PublishBestEffort logs and swallows publish errors; recommendation
// serving must not depend on Redis availability.
func (p *StreamPublisher) PublishBestEffort(ctx context.Context, sport string, rec models.StakeRecommendation) {
	if err := p.Publish(ctx, sport, rec); err != nil {
		p.log.Warn("failed to publish recommendation", zap.String("sport", sport), zap.Error(err))
	}
}
