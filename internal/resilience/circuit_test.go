package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func failing(_ context.Context) (int, error) {
	return 0, errors.New("boom")
}

func succeeding(_ context.Context) (int, error) {
	return 1, nil
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, ResetTimeout: time.Minute})

	for i := 0; i < 3; i++ {
		if _, err := ExecuteVal(context.Background(), cb, failing); err == nil {
			t.Fatal("expected error")
		}
	}
	if cb.State() != CircuitOpen {
		t.Errorf("expected open, got %v", cb.State())
	}

	_, err := ExecuteVal(context.Background(), cb, succeeding)
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("expected ErrCircuitOpen, got %v", err)
	}
	if !IsTransient(err) {
		t.Error("open-circuit rejection should read as transient")
	}
}

func TestCircuitBreaker_SuccessResetsCount(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, ResetTimeout: time.Minute})

	ExecuteVal(context.Background(), cb, failing)
	ExecuteVal(context.Background(), cb, succeeding)
	ExecuteVal(context.Background(), cb, failing)

	if cb.State() != CircuitClosed {
		t.Errorf("expected closed after interleaved success, got %v", cb.State())
	}
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, ResetTimeout: 30 * time.Second})

	now := time.Now()
	cb.nowFunc = func() time.Time { return now }

	ExecuteVal(context.Background(), cb, failing)
	if cb.State() != CircuitOpen {
		t.Fatalf("expected open, got %v", cb.State())
	}

	// Advance past the reset timeout; the probe is allowed through.
	now = now.Add(31 * time.Second)
	val, err := ExecuteVal(context.Background(), cb, succeeding)
	if err != nil {
		t.Fatalf("probe should pass: %v", err)
	}
	if val != 1 {
		t.Errorf("expected probe value 1, got %d", val)
	}
	if cb.State() != CircuitClosed {
		t.Errorf("expected closed after successful probe, got %v", cb.State())
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 5, ResetTimeout: 30 * time.Second})

	now := time.Now()
	cb.nowFunc = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		ExecuteVal(context.Background(), cb, failing)
	}
	now = now.Add(31 * time.Second)

	ExecuteVal(context.Background(), cb, failing)
	if cb.State() != CircuitOpen {
		t.Errorf("failed probe should reopen, got %v", cb.State())
	}
}
