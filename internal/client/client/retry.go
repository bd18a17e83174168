package client

import (
	"time"

	"github.com/sethvargo/go-retry"
)

// RetryPolicy describes how transient failures are retried.
//
// MaxAttempts is the total number of attempts, the first one included. The
// delay before attempt n (n >= 2) is Initial*2^(n-2), capped at Max when Max
// is positive, with +-JitterPercent randomization.
type RetryPolicy struct {
	MaxAttempts   int
	Initial       time.Duration
	Max           time.Duration
	JitterPercent int

	// OnBackoff, when set, observes every scheduled delay. attempt is the
	// number of the attempt that will follow the delay.
	OnBackoff func(attempt int, delay time.Duration)
}

// DefaultRetryPolicy matches the client defaults.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Initial: time.Second, Max: 30 * time.Second}
}

// CallOption adjusts the retry policy of a single call.
type CallOption func(*RetryPolicy)

// WithMaxAttempts overrides the total attempt count for one call. Values
// below one are ignored.
func WithMaxAttempts(n int) CallOption {
	return func(p *RetryPolicy) {
		if n >= 1 {
			p.MaxAttempts = n
		}
	}
}

func (p RetryPolicy) backoff() retry.Backoff {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	initial := p.Initial
	if initial <= 0 {
		initial = time.Nanosecond
	}

	b := retry.NewExponential(initial)
	if p.JitterPercent > 0 {
		b = retry.WithJitterPercent(uint64(p.JitterPercent), b)
	}
	if p.Max > 0 {
		b = retry.WithCappedDuration(p.Max, b)
	}
	b = retry.WithMaxRetries(uint64(attempts-1), b)

	next := 1
	return retry.BackoffFunc(func() (time.Duration, bool) {
		d, stop := b.Next()
		if stop {
			return 0, true
		}
		next++
		if p.OnBackoff != nil {
			p.OnBackoff(next, d)
		}
		return d, false
	})
}
