package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const DefaultChannel = "servicespot:notifications"

type envelope struct {
	Email   string          `json:"email"`
	Payload json.RawMessage `json:"payload"`
}

// RedisRelay fans pushes out to every instance through Redis pub/sub.
type RedisRelay struct {
	client  *redis.Client
	channel string
}

func NewRedisRelay(client *redis.Client, channel string) *RedisRelay {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisRelay{client: client, channel: channel}
}

func (r *RedisRelay) Publish(ctx context.Context, email string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal push payload: %w", err)
	}
	msg, err := json.Marshal(envelope{Email: email, Payload: raw})
	if err != nil {
		return fmt.Errorf("marshal push envelope: %w", err)
	}
	return r.client.Publish(ctx, r.channel, msg).Err()
}

func (r *RedisRelay) Subscribe(ctx context.Context, deliver func(email string, payload json.RawMessage)) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", r.channel, err)
	}
	slog.Info("notification relay subscribed", "channel", r.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				slog.Warn("discarding malformed relay message", "error", err)
				continue
			}
			deliver(env.Email, env.Payload)
		}
	}
}
