package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestDoSucceedsAfterFailures(t *testing.T) {
	attempts := 0
	got, err := Do(context.Background(), 3, func(context.Context) (string, error) {
		attempts++
		if attempts < 3 {
			return "", errors.New("transient")
		}
		return "ok", nil
	}, nil)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if got != "ok" || attempts != 3 {
		t.Errorf("got %q after %d attempts", got, attempts)
	}
}

func TestDoValidatorRejects(t *testing.T) {
	attempts := 0
	_, err := Do(context.Background(), 3, func(context.Context) (int, error) {
		attempts++
		return attempts, nil
	}, func(v int) error {
		if v < 10 {
			return fmt.Errorf("value %d too small", v)
		}
		return nil
	})
	if err == nil {
		t.Fatal("Do() must fail when validator never accepts")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestDoCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	_, err := Do(ctx, 3, func(context.Context) (string, error) {
		attempts++
		return "never", nil
	}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Do() error = %v, want context.Canceled", err)
	}
	if attempts != 0 {
		t.Errorf("op ran %d times after cancellation", attempts)
	}
}

func TestDoWithFallback(t *testing.T) {
	got, err := DoWithFallback(context.Background(), 2,
		func(context.Context) (string, error) { return "", errors.New("down") },
		nil,
		func() string { return "fallback" },
	)
	if err != nil {
		t.Fatalf("DoWithFallback() error = %v", err)
	}
	if got != "fallback" {
		t.Errorf("got %q, want fallback", got)
	}
}

func TestDoWithFallbackSkipsFallbackOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DoWithFallback(ctx, 2,
		func(context.Context) (string, error) { return "", errors.New("down") },
		nil,
		func() string { return "fallback" },
	)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestDoDefaultsMaxAttempts(t *testing.T) {
	attempts := 0
	_, _ = Do(context.Background(), 0, func(context.Context) (struct{}, error) {
		attempts++
		return struct{}{}, errors.New("always")
	}, nil)
	if attempts != DefaultMaxAttempts {
		t.Errorf("attempts = %d, want %d", attempts, DefaultMaxAttempts)
	}
}
