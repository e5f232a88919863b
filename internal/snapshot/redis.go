package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"
)

// DefaultChannel is the Redis pub/sub channel snapshot changes travel on.
const DefaultChannel = "jarda:snapshots"

// RedisBus carries changes across processes over a Redis pub/sub channel.
type RedisBus struct {
	client  *redis.Client
	channel string
	logger  *slog.Logger

	mu      sync.Mutex
	pubsubs []*redis.PubSub
}

// NewRedisBus creates a Redis-backed change bus. An empty channel falls
// back to DefaultChannel.
func NewRedisBus(client *redis.Client, channel string, logger *slog.Logger) *RedisBus {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisBus{client: client, channel: channel, logger: logger}
}

// Publish broadcasts the change to every subscribed process.
func (b *RedisBus) Publish(ctx context.Context, change Change) error {
	data, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("encoding change: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
		return fmt.Errorf("publishing change: %w", err)
	}
	return nil
}

// Subscribe starts a receive loop dispatching remote changes to handler.
func (b *RedisBus) Subscribe(handler func(Change)) func() {
	pubsub := b.client.Subscribe(context.Background(), b.channel)

	b.mu.Lock()
	b.pubsubs = append(b.pubsubs, pubsub)
	b.mu.Unlock()

	go func() {
		for msg := range pubsub.Channel() {
			var change Change
			if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
				if b.logger != nil {
					b.logger.Warn("dropping malformed change notification", "error", err)
				}
				continue
			}
			handler(change)
		}
	}()

	return func() {
		_ = pubsub.Close()
	}
}

// Close shuts down every subscription.
func (b *RedisBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ps := range b.pubsubs {
		_ = ps.Close()
	}
	b.pubsubs = nil
	return nil
}
