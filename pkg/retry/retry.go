// Package retry runs operations with capped exponential backoff.
package retry

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"
)

// Config holds retry strategy configuration.
type Config struct {
	// MaxAttempts counts the initial attempt.
	MaxAttempts int
	// InitialDelay is the wait before the first retry.
	InitialDelay time.Duration
	// MaxDelay caps the wait between attempts.
	MaxDelay time.Duration
	// Multiplier grows the delay after each failed attempt.
	Multiplier float64
	// Jitter is the fraction of the delay randomly added or removed, 0 to 1.
	Jitter float64
	// RetryableErrors lists case-insensitive substrings of retryable error
	// messages. Empty means every error is retried.
	RetryableErrors []string
	// OnRetry, if set, is called before each wait.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// DefaultConfig returns default retry configuration.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  5,
		InitialDelay: time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
		Jitter:       0.1,
	}
}

// Validate checks that cfg describes a usable strategy.
func (c Config) Validate() error {
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("MaxAttempts must be greater than 0")
	}
	if c.InitialDelay < 0 || c.MaxDelay < 0 {
		return fmt.Errorf("delays must be non-negative")
	}
	if c.Multiplier < 1 {
		return fmt.Errorf("Multiplier must be at least 1")
	}
	if c.Jitter < 0 || c.Jitter > 1 {
		return fmt.Errorf("Jitter must be between 0 and 1")
	}
	return nil
}

// Do executes fn until it succeeds, fails with a non-retryable error, the
// attempts run out or ctx is done.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	_, err := DoWithResult(ctx, cfg, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// DoWithResult is Do for functions that produce a value.
func DoWithResult[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var zero T

	if err := cfg.Validate(); err != nil {
		return zero, err
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsRetryable(err, cfg) || attempt == cfg.MaxAttempts {
			break
		}

		delay := withJitter(Backoff(attempt, cfg), cfg.Jitter)
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	return zero, lastErr
}

// Backoff returns the un-jittered delay after the given failed attempt
// (1-based).
func Backoff(attempt int, cfg Config) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := float64(cfg.InitialDelay) * math.Pow(cfg.Multiplier, float64(attempt-1))
	if delay > float64(cfg.MaxDelay) {
		delay = float64(cfg.MaxDelay)
	}
	return time.Duration(delay)
}

func withJitter(delay time.Duration, fraction float64) time.Duration {
	if fraction == 0 || delay == 0 {
		return delay
	}
	//nolint:gosec // jitter has no security requirement
	offset := float64(delay) * fraction * (rand.Float64()*2 - 1)
	return delay + time.Duration(offset)
}

// IsRetryable reports whether err matches cfg.RetryableErrors.
func IsRetryable(err error, cfg Config) bool {
	if err == nil {
		return false
	}
	if len(cfg.RetryableErrors) == 0 {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range cfg.RetryableErrors {
		if strings.Contains(msg, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}

// connectionErrors are transient network failures common to every driver.
var connectionErrors = []string{
	"connection refused",
	"connection reset",
	"i/o timeout",
	"connection timed out",
	"network is unreachable",
	"no such host",
	"dial tcp",
	"broken pipe",
}

// PostgresConfig returns a strategy for opening PostgreSQL connections.
func PostgresConfig() Config {
	cfg := DefaultConfig()
	cfg.RetryableErrors = append(append([]string{}, connectionErrors...),
		"the database system is starting up",
		"server closed the connection",
		"too many connections",
	)
	return cfg
}

// MySQLConfig returns a strategy for opening MySQL connections.
func MySQLConfig() Config {
	cfg := DefaultConfig()
	cfg.RetryableErrors = append(append([]string{}, connectionErrors...),
		"invalid connection",
		"bad connection",
		"too many connections",
		"server has gone away",
	)
	return cfg
}
