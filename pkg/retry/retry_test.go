package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts int) Config {
	cfg := DefaultConfig()
	cfg.MaxAttempts = attempts
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = 5 * time.Millisecond
	cfg.Jitter = 0
	return cfg
}

func TestDo(t *testing.T) {
	t.Run("first attempt succeeds", func(t *testing.T) {
		calls := 0
		err := Do(context.Background(), fastConfig(3), func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := Do(context.Background(), fastConfig(3), func() error {
			calls++
			if calls < 3 {
				return errors.New("dial tcp 127.0.0.1:5432: connection refused")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error when attempts run out", func(t *testing.T) {
		calls := 0
		err := Do(context.Background(), fastConfig(3), func() error {
			calls++
			return errors.New("persistent error")
		})
		require.EqualError(t, err, "persistent error")
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on non-retryable error", func(t *testing.T) {
		cfg := fastConfig(5)
		cfg.RetryableErrors = []string{"connection refused"}
		calls := 0
		err := Do(context.Background(), cfg, func() error {
			calls++
			return errors.New("password authentication failed")
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cfg := fastConfig(10)
		cfg.InitialDelay = time.Hour
		cfg.MaxDelay = time.Hour
		cfg.OnRetry = func(int, error, time.Duration) { cancel() }

		calls := 0
		err := Do(ctx, cfg, func() error {
			calls++
			return errors.New("temporary")
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})

	t.Run("invalid config", func(t *testing.T) {
		err := Do(context.Background(), Config{}, func() error { return nil })
		assert.ErrorContains(t, err, "MaxAttempts")
	})
}

func TestDoWithResult(t *testing.T) {
	calls := 0
	got, err := DoWithResult(context.Background(), fastConfig(3), func() (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("i/o timeout")
		}
		return "connected", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "connected", got)
}

func TestOnRetry(t *testing.T) {
	var attempts []int
	cfg := fastConfig(4)
	cfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		attempts = append(attempts, attempt)
		assert.EqualError(t, err, "boom")
		assert.LessOrEqual(t, delay, cfg.MaxDelay)
	}

	_ = Do(context.Background(), cfg, func() error { return errors.New("boom") })
	assert.Equal(t, []int{1, 2, 3}, attempts)
}

func TestBackoff(t *testing.T) {
	cfg := Config{InitialDelay: 100 * time.Millisecond, MaxDelay: time.Second, Multiplier: 2}

	assert.Equal(t, 100*time.Millisecond, Backoff(1, cfg))
	assert.Equal(t, 200*time.Millisecond, Backoff(2, cfg))
	assert.Equal(t, 400*time.Millisecond, Backoff(3, cfg))
	assert.Equal(t, time.Second, Backoff(10, cfg))
	assert.Equal(t, 100*time.Millisecond, Backoff(0, cfg))
}

func TestWithJitter(t *testing.T) {
	base := time.Second
	for i := 0; i < 100; i++ {
		d := withJitter(base, 0.1)
		assert.GreaterOrEqual(t, d, 900*time.Millisecond)
		assert.LessOrEqual(t, d, 1100*time.Millisecond)
	}
	assert.Equal(t, base, withJitter(base, 0))
}

func TestIsRetryable(t *testing.T) {
	pg := PostgresConfig()
	my := MySQLConfig()

	assert.False(t, IsRetryable(nil, pg))
	assert.True(t, IsRetryable(errors.New("FATAL: the database system is starting up"), pg))
	assert.True(t, IsRetryable(errors.New("Dial TCP: Connection Refused"), pg))
	assert.False(t, IsRetryable(errors.New("relation \"teams\" does not exist"), pg))
	assert.True(t, IsRetryable(errors.New("driver: bad connection"), my))
	assert.True(t, IsRetryable(errors.New("anything"), DefaultConfig()))
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Multiplier = 0.5
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Jitter = 2
	assert.Error(t, cfg.Validate())
}
