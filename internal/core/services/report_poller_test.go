package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/call-audit-gateway/internal/core/services"
)

// scriptedResolver replays a fixed sequence of resolutions, repeating the
// last one once the script runs out.
type scriptedResolver struct {
	mu     sync.Mutex
	script []services.Resolution
	calls  int
}

func (r *scriptedResolver) Resolve(ctx context.Context, meetingID string) services.Resolution {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.calls
	if idx >= len(r.script) {
		idx = len(r.script) - 1
	}
	r.calls++
	return r.script[idx]
}

func fastPollerConfig() services.ReportPollerConfig {
	return services.ReportPollerConfig{
		Interval:        time.Millisecond,
		TransientBudget: 3,
		Timeout:         time.Second,
	}
}

func TestReportPoller_StopsOnReady(t *testing.T) {
	resolver := &scriptedResolver{script: []services.Resolution{
		{Outcome: services.OutcomeNotReady},
		{Outcome: services.OutcomeNotReady},
		{Outcome: services.OutcomeReady},
	}}
	poller := services.NewReportPoller(resolver, fastPollerConfig())

	res, err := poller.Poll(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, services.OutcomeReady, res.Outcome)
	assert.Equal(t, 3, resolver.calls)
}

func TestReportPoller_StopsImmediatelyOnNotFound(t *testing.T) {
	resolver := &scriptedResolver{script: []services.Resolution{
		{Outcome: services.OutcomeNotFound},
	}}
	poller := services.NewReportPoller(resolver, fastPollerConfig())

	res, err := poller.Poll(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, services.OutcomeNotFound, res.Outcome)
	assert.Equal(t, 1, resolver.calls)
}

func TestReportPoller_TransientBudgetExhaustionSurfacesError(t *testing.T) {
	storeErr := errors.New("throttled")
	resolver := &scriptedResolver{script: []services.Resolution{
		{Outcome: services.OutcomeTransient, Err: storeErr},
	}}
	poller := services.NewReportPoller(resolver, fastPollerConfig())

	res, err := poller.Poll(context.Background(), "m1")
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, services.OutcomeTransient, res.Outcome)
	assert.Equal(t, 3, resolver.calls)
}

func TestReportPoller_NotReadyResetsTransientBudget(t *testing.T) {
	resolver := &scriptedResolver{script: []services.Resolution{
		{Outcome: services.OutcomeTransient, Err: errors.New("blip")},
		{Outcome: services.OutcomeTransient, Err: errors.New("blip")},
		{Outcome: services.OutcomeNotReady},
		{Outcome: services.OutcomeTransient, Err: errors.New("blip")},
		{Outcome: services.OutcomeTransient, Err: errors.New("blip")},
		{Outcome: services.OutcomeReady},
	}}
	poller := services.NewReportPoller(resolver, fastPollerConfig())

	res, err := poller.Poll(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, services.OutcomeReady, res.Outcome)
}

// timingResolver records when each resolve happens.
type timingResolver struct {
	inner *scriptedResolver
	mu    sync.Mutex
	times []time.Time
}

func (r *timingResolver) Resolve(ctx context.Context, meetingID string) services.Resolution {
	r.mu.Lock()
	r.times = append(r.times, time.Now())
	r.mu.Unlock()
	return r.inner.Resolve(ctx, meetingID)
}

func TestReportPoller_FirstTransientRetryWaitsBaseInterval(t *testing.T) {
	interval := 100 * time.Millisecond
	resolver := &timingResolver{inner: &scriptedResolver{script: []services.Resolution{
		{Outcome: services.OutcomeTransient, Err: errors.New("blip")},
		{Outcome: services.OutcomeReady},
	}}}
	poller := services.NewReportPoller(resolver, services.ReportPollerConfig{
		Interval:        interval,
		TransientBudget: 3,
		Timeout:         time.Second,
	})

	res, err := poller.Poll(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, services.OutcomeReady, res.Outcome)

	require.Len(t, resolver.times, 2)
	gap := resolver.times[1].Sub(resolver.times[0])
	assert.GreaterOrEqual(t, gap, interval-10*time.Millisecond)
	assert.Less(t, gap, 2*interval-20*time.Millisecond, "first retry must not start at the doubled backoff")
}

func TestReportPoller_CancellationStopsPolling(t *testing.T) {
	resolver := &scriptedResolver{script: []services.Resolution{
		{Outcome: services.OutcomeNotReady},
	}}
	poller := services.NewReportPoller(resolver, services.ReportPollerConfig{
		Interval:        time.Hour, // force the poll to sit in its wait
		TransientBudget: 3,
		Timeout:         time.Hour,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := poller.Poll(ctx, "m1")
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop after cancellation")
	}
}

func TestReportPoller_OverallTimeoutBoundsNotReadyPolling(t *testing.T) {
	resolver := &scriptedResolver{script: []services.Resolution{
		{Outcome: services.OutcomeNotReady},
	}}
	poller := services.NewReportPoller(resolver, services.ReportPollerConfig{
		Interval:        time.Millisecond,
		TransientBudget: 3,
		Timeout:         20 * time.Millisecond,
	})

	res, err := poller.Poll(context.Background(), "m1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, services.OutcomeNotReady, res.Outcome)
}
