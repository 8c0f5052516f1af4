package resilience

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

// RetryConfig controls attempt-capped retry with exponential backoff and
// jitter. The cap is a hard bound: no operation retries indefinitely.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts including the first try.
	// Default: 3.
	MaxAttempts int

	// InitialBackoff is the base delay before the first retry of a generic
	// transient failure. Default: 500ms.
	InitialBackoff time.Duration

	// RateLimitBackoff is the base delay when the provider signalled
	// throttling. Strictly larger than InitialBackoff so rate-limited calls
	// back off harder. Default: 2s.
	RateLimitBackoff time.Duration

	// MaxBackoff caps any single delay. Default: 30s.
	MaxBackoff time.Duration

	// Multiplier scales the delay per attempt. Default: 2.0.
	Multiplier float64

	// JitterFraction adds random jitter as a fraction of the computed delay
	// (0.25 = ±25%). Default: 0.25.
	JitterFraction float64
}

// DefaultRetryConfig returns the standard retry settings for provider calls.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:      3,
		InitialBackoff:   500 * time.Millisecond,
		RateLimitBackoff: 2 * time.Second,
		MaxBackoff:       30 * time.Second,
		Multiplier:       2.0,
		JitterFraction:   0.25,
	}
}

func (cfg RetryConfig) withDefaults() RetryConfig {
	def := DefaultRetryConfig()
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = def.InitialBackoff
	}
	if cfg.RateLimitBackoff <= 0 {
		cfg.RateLimitBackoff = def.RateLimitBackoff
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = def.MaxBackoff
	}
	if cfg.Multiplier <= 0 {
		cfg.Multiplier = def.Multiplier
	}
	if cfg.JitterFraction < 0 {
		cfg.JitterFraction = 0
	}
	return cfg
}

// Backoff computes the delay before retrying after the given zero-based
// attempt failed with the given class. Rate-limit failures use the larger
// backoff base. Jitter keeps concurrent clients from synchronizing; with the
// default bases and ±25% jitter a rate-limit delay never undercuts a generic
// one for the same attempt.
func Backoff(cfg RetryConfig, attempt int, class Class) time.Duration {
	cfg = cfg.withDefaults()

	base := cfg.InitialBackoff
	if class == ClassRateLimit {
		base = cfg.RateLimitBackoff
	}

	delay := float64(base) * math.Pow(cfg.Multiplier, float64(attempt))
	if delay > float64(cfg.MaxBackoff) {
		delay = float64(cfg.MaxBackoff)
	}

	if cfg.JitterFraction > 0 {
		jitterRange := delay * cfg.JitterFraction
		delay += (rand.Float64()*2 - 1) * jitterRange
	}

	if delay < 0 {
		delay = 0
	}
	return time.Duration(delay)
}

// Sleep blocks for d or until ctx is cancelled, whichever comes first. A
// user-initiated cancel must never sit behind a multi-second backoff, so the
// timer is always raced against ctx.Done().
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
