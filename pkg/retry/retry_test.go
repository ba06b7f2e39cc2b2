package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fretbase/guitar-registry/pkg/retry"
)

func fastConfig() *retry.Config {
	return &retry.Config{
		MaxRetries:   3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), fastConfig(), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDo_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), fastConfig(), func() error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDo_ExhaustsRetries(t *testing.T) {
	calls := 0
	wantErr := errors.New("connection refused")
	err := retry.Do(context.Background(), fastConfig(), func() error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected last error, got %v", err)
	}
	if calls != 4 {
		t.Errorf("expected 4 calls (initial + 3 retries), got %d", calls)
	}
}

func TestDo_RespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := retry.Do(ctx, fastConfig(), func() error {
		return errors.New("timeout")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDoWithResult_ReturnsValue(t *testing.T) {
	calls := 0
	got, err := retry.DoWithResult(context.Background(), fastConfig(), func() (string, error) {
		calls++
		if calls < 2 {
			return "", errors.New("i/o timeout")
		}
		return "connected", nil
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got != "connected" {
		t.Errorf("expected %q, got %q", "connected", got)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"postgres starting up", errors.New("FATAL: the database system is starting up"), true},
		{"deadlock", errors.New("deadlock detected"), true},
		{"i/o timeout", errors.New("read tcp: i/o timeout"), true},
		{"auth failure", errors.New("password authentication failed"), false},
		{"bad sql", errors.New("syntax error at or near SELECT"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := retry.IsRetryable(tt.err); got != tt.expected {
				t.Errorf("IsRetryable(%v) = %v, expected %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestDoIfRetryable_StopsOnPermanentError(t *testing.T) {
	calls := 0
	err := retry.DoIfRetryable(context.Background(), fastConfig(), func() error {
		calls++
		return errors.New("password authentication failed")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("expected 1 call for permanent error, got %d", calls)
	}
}

func TestDoIfRetryable_RetriesTransientError(t *testing.T) {
	calls := 0
	err := retry.DoIfRetryable(context.Background(), fastConfig(), func() error {
		calls++
		if calls < 2 {
			return errors.New("too many connections")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}
