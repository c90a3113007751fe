package publish_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"

	"github.com/seastate/currentsim/internal/current"
	"github.com/seastate/currentsim/internal/publish"
)

func newTestPublisher(t *testing.T, opts ...publish.Option) *publish.Redis {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	pub := publish.NewFromClient(client, opts...)
	t.Cleanup(func() { pub.Close() })
	return pub
}

func TestPublishSubscribeRoundtrip(t *testing.T) {
	pub := newTestPublisher(t, publish.WithChannel("sea_state"))
	if pub.Channel() != "sea_state" {
		t.Fatalf("expected channel sea_state, got %s", pub.Channel())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals, err := pub.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	want := current.Signal{
		Time:     time.Unix(100, 0).UTC(),
		Frame:    "world",
		Velocity: current.Vector3{X: 1.0, Y: -0.5, Z: 0},
	}
	if err := pub.Publish(ctx, want); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case got := <-signals:
		if got.Frame != want.Frame || got.Velocity != want.Velocity {
			t.Errorf("received %+v, want %+v", got, want)
		}
		if !got.Time.Equal(want.Time) {
			t.Errorf("timestamp %v, want %v", got.Time, want.Time)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for signal")
	}
}

func TestPublishDefaultChannel(t *testing.T) {
	pub := newTestPublisher(t)
	if pub.Channel() != "current_velocity" {
		t.Errorf("expected default channel current_velocity, got %s", pub.Channel())
	}
	if err := pub.Publish(context.Background(), current.Signal{}); err != nil {
		t.Errorf("publish on default channel failed: %v", err)
	}
}

func TestSubscribeCancel(t *testing.T) {
	pub := newTestPublisher(t)

	ctx, cancel := context.WithCancel(context.Background())
	signals, err := pub.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	cancel()
	select {
	case _, ok := <-signals:
		if ok {
			t.Error("expected closed channel after cancel")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
