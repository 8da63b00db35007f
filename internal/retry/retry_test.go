package retry

import (
	"context"
	"errors"
	"testing"
)

func TestDo_FirstAttemptSucceeds(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), DefaultConfig(), func(ctx context.Context) error {
		attempts++
		return nil
	})

	if err != nil {
		t.Errorf("Do() returned error = %v, want nil", err)
	}
	if attempts != 1 {
		t.Errorf("Do() made %d attempts, want 1", attempts)
	}
}

func TestDo_SucceedsAfterFailures(t *testing.T) {
	attempts := 0
	tempErr := errors.New("temporary")

	err := Do(context.Background(), Config{MaxAttempts: 3}, func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return tempErr
		}
		return nil
	})

	if err != nil {
		t.Errorf("Do() returned error = %v, want nil", err)
	}
	if attempts != 3 {
		t.Errorf("Do() made %d attempts, want 3", attempts)
	}
}

func TestDo_AttemptsExhausted(t *testing.T) {
	attempts := 0
	tempErr := errors.New("temporary")

	err := Do(context.Background(), Config{MaxAttempts: 3}, func(ctx context.Context) error {
		attempts++
		return tempErr
	})

	if err == nil {
		t.Fatal("Do() returned nil error, want error")
	}
	if !errors.Is(err, tempErr) {
		t.Errorf("Do() error = %v, want wrapped %v", err, tempErr)
	}
	if attempts != 3 {
		t.Errorf("Do() made %d attempts, want 3", attempts)
	}
}

func TestDo_ContextCanceled(t *testing.T) {
	attempts := 0
	ctx, cancel := context.WithCancel(context.Background())

	err := Do(ctx, Config{MaxAttempts: 5}, func(ctx context.Context) error {
		attempts++
		cancel()
		return errors.New("temporary")
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Do() error = %v, want context.Canceled", err)
	}
	if attempts != 1 {
		t.Errorf("Do() made %d attempts, want 1", attempts)
	}
}

func TestDo_ZeroMaxAttemptsStillCallsOnce(t *testing.T) {
	attempts := 0
	_ = Do(context.Background(), Config{}, func(ctx context.Context) error {
		attempts++
		return errors.New("boom")
	})

	if attempts != 1 {
		t.Errorf("Do() made %d attempts, want 1", attempts)
	}
}
