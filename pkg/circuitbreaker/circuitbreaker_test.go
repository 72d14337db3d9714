package circuitbreaker

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDown = errors.New("service unavailable")

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newBreaker(t *testing.T, cfg Config) (*CircuitBreaker, *clock) {
	t.Helper()
	c := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := New("mail", cfg)
	cb.now = c.Now
	cb.toNewWindow(c.Now())
	return cb, c
}

func fail() error    { return errDown }
func succeed() error { return nil }

func TestClosedCountsSuccesses(t *testing.T) {
	cb, _ := newBreaker(t, Config{Timeout: 30 * time.Second})

	for i := 0; i < 10; i++ {
		require.NoError(t, cb.Execute(succeed))
	}
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(10), cb.Counts().TotalSuccesses)
}

func TestOpensAfterConsecutiveFailures(t *testing.T) {
	cb, _ := newBreaker(t, Config{Timeout: 30 * time.Second})

	for i := 0; i < 4; i++ {
		assert.ErrorIs(t, cb.Execute(fail), errDown)
	}
	assert.Equal(t, StateClosed, cb.State())
	assert.ErrorIs(t, cb.Execute(fail), errDown)
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpenState)
	assert.False(t, called)
}

func TestSuccessResetsConsecutiveFailures(t *testing.T) {
	cb, _ := newBreaker(t, Config{})

	for i := 0; i < 4; i++ {
		_ = cb.Execute(fail)
	}
	require.NoError(t, cb.Execute(succeed))
	for i := 0; i < 4; i++ {
		_ = cb.Execute(fail)
	}
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, 8.0/9.0, cb.Counts().FailureRate())
}

func TestHalfOpenProbe(t *testing.T) {
	var transitions []string
	cb, clk := newBreaker(t, Config{
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 1 },
		OnStateChange: func(_ string, from, to State) {
			transitions = append(transitions, from.String()+">"+to.String())
		},
	})

	_ = cb.Execute(fail)
	require.Equal(t, StateOpen, cb.State())

	clk.Advance(31 * time.Second)
	assert.Equal(t, StateHalfOpen, cb.State())

	// a failed probe reopens
	_ = cb.Execute(fail)
	assert.Equal(t, StateOpen, cb.State())

	clk.Advance(31 * time.Second)
	require.NoError(t, cb.Execute(succeed))
	assert.Equal(t, StateClosed, cb.State())

	assert.Equal(t, []string{
		"closed>open", "open>half-open", "half-open>open",
		"open>half-open", "half-open>closed",
	}, transitions)
}

func TestHalfOpenLimitsProbes(t *testing.T) {
	cb, clk := newBreaker(t, Config{
		MaxRequests: 1,
		Timeout:     time.Second,
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 1 },
	})
	_ = cb.Execute(fail)
	clk.Advance(2 * time.Second)

	release := make(chan struct{})
	done := make(chan error)
	go func() {
		done <- cb.Execute(func() error {
			<-release
			return nil
		})
	}()

	// wait until the probe holds the only slot
	require.Eventually(t, func() bool { return cb.Counts().Requests == 1 }, time.Second, time.Millisecond)
	assert.ErrorIs(t, cb.Execute(succeed), ErrOpenState)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, StateClosed, cb.State())
}

func TestIntervalResetsClosedCounts(t *testing.T) {
	cb, clk := newBreaker(t, Config{Interval: 10 * time.Second})

	for i := 0; i < 4; i++ {
		_ = cb.Execute(fail)
	}
	clk.Advance(11 * time.Second)
	_ = cb.Execute(fail)

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(1), cb.Counts().ConsecutiveFailures)
}
