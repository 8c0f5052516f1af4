package resilience

import (
	"context"
	"testing"
	"time"
)

func TestBackoff_GrowsPerAttempt(t *testing.T) {
	t.Parallel()

	cfg := DefaultRetryConfig()
	cfg.JitterFraction = 0

	d0 := Backoff(cfg, 0, ClassTransient)
	d1 := Backoff(cfg, 1, ClassTransient)
	d2 := Backoff(cfg, 2, ClassTransient)

	if d0 != 500*time.Millisecond {
		t.Errorf("attempt 0: got %v", d0)
	}
	if d1 != 1*time.Second || d2 != 2*time.Second {
		t.Errorf("expected doubling, got %v then %v", d1, d2)
	}
}

func TestBackoff_RateLimitAlwaysLarger(t *testing.T) {
	t.Parallel()

	cfg := DefaultRetryConfig()

	// With jitter enabled, the rate-limit delay must still strictly exceed
	// the generic transient delay for the same attempt number.
	for attempt := 0; attempt < 3; attempt++ {
		for i := 0; i < 50; i++ {
			transient := Backoff(cfg, attempt, ClassTransient)
			limited := Backoff(cfg, attempt, ClassRateLimit)
			if limited <= transient {
				t.Fatalf("attempt %d: rate-limit backoff %v not larger than transient %v", attempt, limited, transient)
			}
		}
	}
}

func TestBackoff_CappedAtMax(t *testing.T) {
	t.Parallel()

	cfg := DefaultRetryConfig()
	cfg.JitterFraction = 0
	cfg.MaxBackoff = 3 * time.Second

	if got := Backoff(cfg, 10, ClassTransient); got != 3*time.Second {
		t.Errorf("expected cap at 3s, got %v", got)
	}
}

func TestBackoff_JitterStaysInRange(t *testing.T) {
	t.Parallel()

	cfg := DefaultRetryConfig()
	for i := 0; i < 200; i++ {
		d := Backoff(cfg, 0, ClassTransient)
		if d < 375*time.Millisecond || d > 625*time.Millisecond {
			t.Fatalf("jittered delay %v outside ±25%% of 500ms", d)
		}
	}
}

func TestSleep_Completes(t *testing.T) {
	t.Parallel()

	start := time.Now()
	if err := Sleep(context.Background(), 10*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if time.Since(start) < 10*time.Millisecond {
		t.Error("returned before the delay elapsed")
	}
}

func TestSleep_CancelInterruptsBackoff(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := Sleep(ctx, 5*time.Second)
	if err == nil {
		t.Fatal("expected context error")
	}
	if time.Since(start) > time.Second {
		t.Error("cancel did not interrupt the sleep promptly")
	}
}
