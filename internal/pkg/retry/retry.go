package retry

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	defaultAttempts = 3
	defaultDelay    = 200 * time.Millisecond
	defaultMaxDelay = 2 * time.Second
)

type RetryConfig struct {
	Attempts uint          `env:"ATTEMPTS" envDefault:"3"`
	Delay    time.Duration `env:"DELAY" envDefault:"200ms"`
	MaxDelay time.Duration `env:"MAX_DELAY" envDefault:"2s"`
}

// ToRetryOptions builds backoff options bound to ctx; retryIf may be nil to
// retry every error.
func (rc *RetryConfig) ToRetryOptions(ctx context.Context, retryIf func(error) bool) []retry.Option {
	opts := []retry.Option{
		retry.Context(ctx),
		retry.Attempts(rc.Attempts),
		retry.Delay(rc.Delay),
		retry.MaxDelay(rc.MaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	}
	if retryIf != nil {
		opts = append(opts, retry.RetryIf(retryIf))
	}
	return opts
}

func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		Attempts: defaultAttempts,
		Delay:    defaultDelay,
		MaxDelay: defaultMaxDelay,
	}
}
