// Package publish delivers composed current signals to the configured
// output channel.
package publish

import (
	"context"
	"encoding/json"
	"fmt"

	backend "github.com/redis/go-redis/v9"

	"github.com/seastate/currentsim/internal/current"
)

const defaultChannel = "current_velocity"

// Redis publishes signals on a Redis pub/sub channel as JSON.
type Redis struct {
	client  *backend.Client
	channel string
}

type Option func(*Redis)

// WithChannel sets the pub/sub channel name.
func WithChannel(channel string) Option {
	return func(r *Redis) {
		r.channel = channel
	}
}

// New creates a Redis publisher with its own client.
func New(addr, password string, db int, opts ...Option) *Redis {
	client := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Redis publisher from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Redis {
	r := &Redis{
		client:  client,
		channel: defaultChannel,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Channel returns the configured channel name.
func (r *Redis) Channel() string { return r.channel }

// Publish encodes the signal and publishes it on the channel.
func (r *Redis) Publish(ctx context.Context, s current.Signal) error {
	payload, err := json.Marshal(s)
	if err != nil {
		publishErrors.Inc()
		return fmt.Errorf("encode signal: %w", err)
	}
	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		publishErrors.Inc()
		return fmt.Errorf("publish on %s: %w", r.channel, err)
	}
	published.Inc()
	lastSpeed.Set(s.Speed())
	return nil
}

// Subscribe returns a channel of decoded signals from the output channel.
// The channel closes when ctx is canceled or the subscription drops.
func (r *Redis) Subscribe(ctx context.Context) (<-chan current.Signal, error) {
	sub := r.client.Subscribe(ctx, r.channel)
	if _, err := sub.Receive(ctx); err != nil {
		return nil, fmt.Errorf("subscribe to %s: %w", r.channel, err)
	}

	out := make(chan current.Signal)
	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				var s current.Signal
				if err := json.Unmarshal([]byte(msg.Payload), &s); err != nil {
					continue
				}
				select {
				case out <- s:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Close releases the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}
