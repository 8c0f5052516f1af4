package main

import (
	"time"

	"github.com/lumenotes/nugget-cli/internal/config"
	"github.com/lumenotes/nugget-cli/internal/extract"
	"github.com/lumenotes/nugget-cli/internal/model"
	"github.com/lumenotes/nugget-cli/internal/provider"
	"github.com/lumenotes/nugget-cli/internal/resilience"
)

// newService wires providers, retry policy, boundary options, and the
// response cache from configuration.
func newService(cfg *config.Config) (*extract.Service, error) {
	primary, fallback, err := provider.New(cfg)
	if err != nil {
		return nil, err
	}

	opts := extract.Options{
		Retry:             retryConfig(cfg.Extract),
		Boundary:          boundaryOptions(cfg.Extract),
		RequestsPerSecond: cfg.Extract.RequestsPerSecond,
	}
	if cfg.Cache.Enabled {
		opts.Cache = extract.NewResponseCache(cfg.Cache.Capacity, time.Duration(cfg.Cache.TTLMinutes)*time.Minute)
	}

	return extract.NewService(primary, fallback, opts), nil
}

func retryConfig(ec config.ExtractConfig) resilience.RetryConfig {
	rc := resilience.DefaultRetryConfig()
	if ec.MaxAttempts > 0 {
		rc.MaxAttempts = ec.MaxAttempts
	}
	if ec.InitialBackoffMS > 0 {
		rc.InitialBackoff = time.Duration(ec.InitialBackoffMS) * time.Millisecond
	}
	if ec.RateLimitBackoffMS > 0 {
		rc.RateLimitBackoff = time.Duration(ec.RateLimitBackoffMS) * time.Millisecond
	}
	if ec.MaxBackoffMS > 0 {
		rc.MaxBackoff = time.Duration(ec.MaxBackoffMS) * time.Millisecond
	}
	return rc
}

func boundaryOptions(ec config.ExtractConfig) model.BoundaryMatchOptions {
	bo := model.DefaultBoundaryMatchOptions()
	if ec.Tolerance > 0 {
		bo.Tolerance = ec.Tolerance
	}
	if ec.MaxStartWords > 0 {
		bo.MaxStartWords = ec.MaxStartWords
	}
	if ec.MaxEndWords > 0 {
		bo.MaxEndWords = ec.MaxEndWords
	}
	if ec.MinConfidenceThreshold > 0 {
		bo.MinConfidenceThreshold = ec.MinConfidenceThreshold
	}
	return bo
}
