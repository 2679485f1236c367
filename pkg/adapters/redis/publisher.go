package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/aretw0/minitap/pkg/record"
	backend "github.com/redis/go-redis/v9"
)

// Publisher implements record.Recorder on Redis. Each record is published on
// <prefix>events:<channel> and counted in the <prefix>counts hash.
type Publisher struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithPrefix sets the key and channel prefix.
func WithPrefix(prefix string) Option {
	return func(p *Publisher) {
		p.prefix = prefix
	}
}

// WithTTL expires the counts hash ttl after its last update.
func WithTTL(ttl time.Duration) Option {
	return func(p *Publisher) {
		p.ttl = ttl
	}
}

// New creates a Publisher with its own client.
func New(address, password string, db int, opts ...Option) *Publisher {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Publisher from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Publisher {
	p := &Publisher{
		client: client,
		prefix: "minitap:",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Topic is the pub/sub channel a hub channel is published on.
func (p *Publisher) Topic(channel string) string {
	return p.prefix + "events:" + channel
}

// CountsKey is the hash holding per-channel delivery counts.
func (p *Publisher) CountsKey() string {
	return p.prefix + "counts"
}

// Record implements record.Recorder.
func (p *Publisher) Record(ctx context.Context, r record.Record) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	_, err = p.client.Pipelined(ctx, func(pipe backend.Pipeliner) error {
		pipe.Publish(ctx, p.Topic(r.Channel), payload)
		pipe.HIncrBy(ctx, p.CountsKey(), r.Channel, 1)
		if p.ttl > 0 {
			pipe.Expire(ctx, p.CountsKey(), p.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis error publishing %s: %w", r.Channel, err)
	}
	return nil
}

// Counts returns the delivery count per hub channel.
func (p *Publisher) Counts(ctx context.Context) (map[string]int64, error) {
	raw, err := p.client.HGetAll(ctx, p.CountsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error reading counts: %w", err)
	}
	out := make(map[string]int64, len(raw))
	for channel, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid count for %s: %w", channel, err)
		}
		out[channel] = n
	}
	return out, nil
}

// Close releases the underlying client.
func (p *Publisher) Close() error {
	return p.client.Close()
}
