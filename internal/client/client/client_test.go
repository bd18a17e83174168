package client

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/docverifier/internal/client/config"
	"github.com/dmitrijs2005/docverifier/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SelectsBackend(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()

	c, err := New(cfg, logging.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &RESTClient{}, c)

	cfg.Backend = config.BackendLegacy
	c, err = New(cfg, logging.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &LegacyClient{}, c)

	cfg.Backend = "soap"
	_, err = New(cfg, logging.NewNop())
	require.Error(t, err)
}

func TestPolicyFromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.BackoffJitterPercent = 10

	p := PolicyFromConfig(cfg)
	assert.Equal(t, 3, p.MaxAttempts)
	assert.Equal(t, time.Second, p.Initial)
	assert.Equal(t, 30*time.Second, p.Max)
	assert.Equal(t, 10, p.JitterPercent)
}

func TestRetryPolicy_BackoffSchedule(t *testing.T) {
	var got []time.Duration
	p := RetryPolicy{
		MaxAttempts: 5,
		Initial:     time.Second,
		Max:         3 * time.Second,
		OnBackoff:   func(_ int, d time.Duration) { got = append(got, d) },
	}

	b := p.backoff()
	for {
		_, stop := b.Next()
		if stop {
			break
		}
	}

	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 3 * time.Second, 3 * time.Second}, got)
}

func TestRetryPolicy_SingleAttempt(t *testing.T) {
	b := RetryPolicy{MaxAttempts: 0}.backoff()
	_, stop := b.Next()
	assert.True(t, stop)
}

func TestRetryPolicy_Jitter(t *testing.T) {
	b := RetryPolicy{MaxAttempts: 2, Initial: time.Second, JitterPercent: 20}.backoff()
	d, stop := b.Next()
	require.False(t, stop)
	assert.GreaterOrEqual(t, d, 800*time.Millisecond)
	assert.LessOrEqual(t, d, 1200*time.Millisecond)
}

func TestTransportError(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := &TransportError{Category: Transient, Message: "Ошибка соединения с сервером", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "refused")
	assert.Equal(t, "x", (&TransportError{Message: "x"}).Error())

	assert.Equal(t, Success, CategoryOf(nil))
	assert.Equal(t, Success, CategoryOf(cause))
	assert.False(t, IsRetryable(&TransportError{Category: Malformed}))
	assert.Equal(t, "not_found", NotFound.String())
}

func TestOutcomeErr(t *testing.T) {
	assert.NoError(t, Outcome{Category: Success}.Err())
	assert.NoError(t, Outcome{Category: NotFound}.Err())
	assert.NoError(t, Outcome{Category: Unauthorized}.Err())
	for _, c := range []Category{Transient, Malformed, Canceled} {
		assert.Equal(t, c, CategoryOf(Outcome{Category: c}.Err()))
	}
}
