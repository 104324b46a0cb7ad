package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/kiteflow/internal/observability"
	"github.com/i474232898/kiteflow/internal/weather"
)

type countingLoader struct {
	calls atomic.Int32
	err   error
}

func (l *countingLoader) Load(ctx context.Context, req weather.LoadRequest) (weather.LoadResult, error) {
	l.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return weather.LoadResult{}, errors.New("refresh must carry a deadline")
	}
	if req.Query != "" || req.Location != nil {
		return weather.LoadResult{}, errors.New("refresh must reload the current location")
	}
	return weather.LoadResult{}, l.err
}

func TestScheduler_RunsImmediatelyOnStart(t *testing.T) {
	loader := &countingLoader{}
	s := New(loader, time.Hour, observability.Discard())

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return loader.calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_FailedRefreshKeepsRunning(t *testing.T) {
	loader := &countingLoader{err: weather.ErrLocationNotFound}
	s := New(loader, time.Hour, observability.Discard())

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return loader.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	assert.True(t, s.scheduler.IsRunning())
}

func TestNew_RaisesShortInterval(t *testing.T) {
	s := New(&countingLoader{}, time.Second, nil)
	assert.Equal(t, 15*time.Minute, s.interval)
}
