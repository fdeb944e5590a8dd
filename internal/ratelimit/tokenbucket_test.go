package ratelimit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yourneighborhoodchef/stocksms/internal/ratelimit"
)

func TestTokenJar_FirstTokenImmediate(t *testing.T) {
	jar := ratelimit.NewTokenJar(time.Hour, 1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	start := time.Now()
	if err := jar.WaitForToken(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if time.Since(start) > 100*time.Millisecond {
		t.Fatal("expected first token without waiting")
	}
}

func TestTokenJar_SecondTokenWaitsForRefill(t *testing.T) {
	interval := 50 * time.Millisecond
	jar := ratelimit.NewTokenJar(interval, 1)
	ctx := context.Background()

	if err := jar.WaitForToken(ctx); err != nil {
		t.Fatalf("first token: %v", err)
	}

	start := time.Now()
	if err := jar.WaitForToken(ctx); err != nil {
		t.Fatalf("second token: %v", err)
	}
	if elapsed := time.Since(start); elapsed < interval/2 {
		t.Fatalf("expected to wait for refill, waited %s", elapsed)
	}
}

func TestTokenJar_CancelledWhileWaiting(t *testing.T) {
	jar := ratelimit.NewTokenJar(time.Hour, 1)
	_ = jar.WaitForToken(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := jar.WaitForToken(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestTokenJar_Stats(t *testing.T) {
	jar := ratelimit.NewTokenJar(20*time.Second, 0)

	tokens, maxTokens, interval := jar.GetStats()
	if maxTokens != 1 {
		t.Fatalf("expected capacity 1, got %d", maxTokens)
	}
	if tokens != 1 {
		t.Fatalf("expected jar to start full, got %v", tokens)
	}
	if interval != 20*time.Second {
		t.Fatalf("unexpected interval %s", interval)
	}
}
