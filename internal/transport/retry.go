package transport

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
)

// RetryConfig bounds repeated bind attempts when the port is briefly busy,
// for example while a previous instance is still shutting down.
type RetryConfig struct {
	Attempts     int
	InitialDelay time.Duration
	Multiplier   float64
	MaxDelay     time.Duration
	Jitter       bool
}

// DefaultRetryConfig binds exactly once.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		Attempts:     1,
		InitialDelay: 250 * time.Millisecond,
		Multiplier:   2.0,
		MaxDelay:     5 * time.Second,
	}
}

// retryDelay returns the wait after failed attempt N (1-based).
func retryDelay(cfg RetryConfig, attempt int, rng *rand.Rand) time.Duration {
	if cfg.InitialDelay <= 0 {
		return 0
	}
	if cfg.Multiplier < 1.0 {
		cfg.Multiplier = 1.0
	}
	delay := float64(cfg.InitialDelay) * math.Pow(cfg.Multiplier, float64(attempt-1))
	if cfg.MaxDelay > 0 && delay > float64(cfg.MaxDelay) {
		delay = float64(cfg.MaxDelay)
	}
	if cfg.Jitter {
		f := 0.5
		if rng != nil {
			f = 0.5 + rng.Float64()
		}
		delay *= f
	}
	return time.Duration(delay)
}

// ListenRetry binds addr, retrying with exponential backoff up to
// cfg.Attempts times. The last bind error is returned on exhaustion.
func ListenRetry(ctx context.Context, addr string, cfg RetryConfig) (*Listener, error) {
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	var lastErr error
	for attempt := 1; attempt <= cfg.Attempts; attempt++ {
		ln, err := ListenAddr(addr)
		if err == nil {
			return ln, nil
		}
		lastErr = err
		if attempt == cfg.Attempts {
			break
		}
		delay := retryDelay(cfg, attempt, rng)
		log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", delay).Msg("transport.ListenRetry bind failed")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil, lastErr
}
