// Package extract orchestrates LLM nugget extraction: it drives a provider
// through retry, backoff, and fallback switching, then validates and anchors
// every returned candidate against the source text.
package extract

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/lumenotes/nugget-cli/internal/anchor"
	"github.com/lumenotes/nugget-cli/internal/model"
	"github.com/lumenotes/nugget-cli/internal/provider"
	"github.com/lumenotes/nugget-cli/internal/resilience"
)

// maxResolveConcurrency bounds parallel candidate resolution. Resolution is
// pure CPU; a handful of workers is enough for typical candidate counts.
const maxResolveConcurrency = 4

// Request is one extraction call.
type Request struct {
	Content     string
	Prompt      string
	Temperature *float64
	Types       []model.NuggetType
}

// Result aggregates the resolved nuggets of one extraction call.
type Result struct {
	Nuggets                []model.ResolvedNugget `json:"nuggets"`
	TotalCount             int                    `json:"total_count"`
	ValidatedCount         int                    `json:"validated_count"`
	AverageValidationScore float64                `json:"average_validation_score"`
	ElapsedMs              int64                  `json:"elapsed_ms"`
	Provider               string                 `json:"provider"`
	Attempts               int                    `json:"attempts"`
	CacheHit               bool                   `json:"cache_hit,omitempty"`
}

// Options configures a Service.
type Options struct {
	Retry    resilience.RetryConfig
	Boundary model.BoundaryMatchOptions

	// RequestsPerSecond throttles provider calls. Zero disables throttling.
	RequestsPerSecond float64

	// Cache is the optional response cache. Nil disables caching.
	Cache *ResponseCache
}

// Service drives extraction against a primary provider with an optional
// fallback.
type Service struct {
	primary  provider.Provider
	fallback provider.Provider
	retry    resilience.RetryConfig
	boundary model.BoundaryMatchOptions
	cache    *ResponseCache
	limiter  *rate.Limiter
}

// NewService creates an extraction service. fallback may be nil.
func NewService(primary, fallback provider.Provider, opts Options) *Service {
	s := &Service{
		primary:  primary,
		fallback: fallback,
		retry:    opts.Retry,
		boundary: opts.Boundary,
		cache:    opts.Cache,
	}
	if opts.RequestsPerSecond > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	return s
}

// retryState tracks one extraction call's progress through the retry loop.
// It is discarded on return; attempts never recurse.
type retryState struct {
	attempt   int
	provider  provider.Provider
	lastErr   error
	lastClass resilience.Class
}

// Extract runs one extraction request to completion: provider call, error
// classification, bounded retry with class-aware backoff, fallback switching,
// then validation and anchoring of every candidate. It fails only when all
// attempts are exhausted or a non-retryable error is detected, and then
// surfaces the last classified error.
func (s *Service) Extract(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	var cacheKey string
	if s.cache != nil {
		cacheKey = CacheKey(req.Content, req.Prompt, s.primary.Name())
		if cached, ok := s.cache.Get(cacheKey); ok {
			zap.L().Debug("extraction cache hit", zap.String("key", cacheKey))
			hit := *cached
			hit.CacheHit = true
			return &hit, nil
		}
	}

	preq := provider.Request{
		Content:     req.Content,
		Prompt:      req.Prompt,
		Temperature: req.Temperature,
		Types:       req.Types,
	}

	maxAttempts := s.retry.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = resilience.DefaultRetryConfig().MaxAttempts
	}

	state := retryState{provider: s.primary}

	for state.attempt = 0; state.attempt < maxAttempts; state.attempt++ {
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return nil, eris.Wrap(err, "extract: rate limit wait")
			}
		}

		candidates, err := state.provider.Extract(ctx, preq)
		if err == nil {
			result := s.resolve(ctx, candidates, req.Content)
			result.ElapsedMs = time.Since(start).Milliseconds()
			result.Provider = state.provider.Name()
			result.Attempts = state.attempt + 1

			zap.L().Info("extraction complete",
				zap.String("provider", result.Provider),
				zap.Int("attempts", result.Attempts),
				zap.Int("total", result.TotalCount),
				zap.Int("validated", result.ValidatedCount),
				zap.Float64("avg_validation_score", result.AverageValidationScore),
				zap.Int64("elapsed_ms", result.ElapsedMs),
			)

			if s.cache != nil {
				s.cache.Put(cacheKey, result)
			}
			return result, nil
		}

		state.lastErr = err
		state.lastClass = resilience.Classify(err)

		if ctx.Err() != nil {
			return nil, s.exhausted(state)
		}

		if !state.lastClass.Retryable() {
			zap.L().Warn("extraction failed, not retryable",
				zap.String("provider", state.provider.Name()),
				zap.String("class", state.lastClass.String()),
				zap.Error(err),
			)
			return nil, s.exhausted(state)
		}

		// A fallback-eligible failure switches providers immediately instead
		// of sleeping out a backoff against a backend that just failed.
		if state.lastClass.FallbackEligible() && s.fallback != nil && state.provider != s.fallback {
			zap.L().Warn("switching to fallback provider",
				zap.String("from", state.provider.Name()),
				zap.String("to", s.fallback.Name()),
				zap.String("class", state.lastClass.String()),
				zap.Error(err),
			)
			state.provider = s.fallback
			continue
		}

		if state.attempt >= maxAttempts-1 {
			break
		}

		delay := resilience.Backoff(s.retry, state.attempt, state.lastClass)
		zap.L().Warn("retrying extraction",
			zap.String("provider", state.provider.Name()),
			zap.String("class", state.lastClass.String()),
			zap.Int("attempt", state.attempt+1),
			zap.Duration("backoff", delay),
			zap.Error(err),
		)
		if err := resilience.Sleep(ctx, delay); err != nil {
			return nil, s.exhausted(state)
		}
	}

	return nil, s.exhausted(state)
}

// exhausted wraps the last classified error with a user-facing message. The
// classification tag stays in the chain so callers can render a specific
// remediation.
func (s *Service) exhausted(state retryState) error {
	switch state.lastClass {
	case resilience.ClassStructural:
		return eris.Wrap(state.lastErr, "extract: provider returned a malformed response; this is an integration bug, not a transient failure")
	case resilience.ClassAuthConfig:
		return eris.Wrap(state.lastErr, "extract: provider rejected the request; check API credentials and request parameters")
	default:
		return eris.Wrapf(state.lastErr, "extract: all %d attempts exhausted (last error class: %s)", state.attempt+1, state.lastClass)
	}
}

// resolve validates and anchors every candidate. Candidates below the
// confidence threshold are kept and tagged unverified rather than dropped;
// display policy belongs to the consumer.
func (s *Service) resolve(ctx context.Context, candidates []model.RawCandidate, content string) *Result {
	nuggets := make([]model.ResolvedNugget, len(candidates))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(maxResolveConcurrency)
	for i, c := range candidates {
		g.Go(func() error {
			nuggets[i] = anchor.Resolve(c, content, s.boundary)
			return nil
		})
	}
	_ = g.Wait()

	result := &Result{
		Nuggets:    nuggets,
		TotalCount: len(nuggets),
	}

	var scoreSum float64
	for _, n := range nuggets {
		scoreSum += n.ValidationScore
		if n.Validated() {
			result.ValidatedCount++
		}
	}
	if len(nuggets) > 0 {
		result.AverageValidationScore = scoreSum / float64(len(nuggets))
	}

	return result
}
