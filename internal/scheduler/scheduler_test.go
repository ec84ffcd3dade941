package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/atelier-studio/portfolio-backend/internal/kvstore"
	"github.com/atelier-studio/portfolio-backend/internal/media/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRegenerator struct {
	calls atomic.Int32
	err   error
}

func (r *countingRegenerator) Regenerate(context.Context) (domain.Records, error) {
	r.calls.Add(1)
	return domain.Records{}, r.err
}

func TestScheduler_Start(t *testing.T) {
	t.Run("sweep only without a regenerate schedule", func(t *testing.T) {
		s := NewScheduler(kvstore.NewMemory(), &countingRegenerator{}, Options{})
		require.NoError(t, s.Start(context.Background()))
		defer s.Stop(context.Background())

		assert.Len(t, s.cron.Entries(), 1)
	})

	t.Run("adds regenerate when scheduled", func(t *testing.T) {
		s := NewScheduler(kvstore.NewMemory(), &countingRegenerator{}, Options{RegenerateSpec: "0 */15 * * * *"})
		require.NoError(t, s.Start(context.Background()))
		defer s.Stop(context.Background())

		assert.Len(t, s.cron.Entries(), 2)
	})

	t.Run("rejects a bad schedule", func(t *testing.T) {
		s := NewScheduler(nil, &countingRegenerator{}, Options{RegenerateSpec: "every now and then"})
		err := s.Start(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "schedule regenerate")
	})
}

func TestScheduler_RegenerateRuns(t *testing.T) {
	regen := &countingRegenerator{}
	s := NewScheduler(nil, regen, Options{RegenerateSpec: "* * * * * *"})
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	assert.Eventually(t, func() bool { return regen.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestScheduler_JobsTolerateErrors(t *testing.T) {
	s := NewScheduler(failingSweeper{}, &countingRegenerator{err: errors.New("media host down")}, Options{})

	assert.NotPanics(t, s.sweep)
	assert.NotPanics(t, s.regenerate)
}

func TestScheduler_SweepDropsExpired(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := kvstore.NewMemory().WithClock(func() time.Time { return now })
	require.NoError(t, store.Set(context.Background(), "refresh:1.2.3.4", "1", time.Minute))

	now = now.Add(2 * time.Minute)
	NewScheduler(store, nil, Options{}).sweep()

	assert.Equal(t, 0, store.Len())
}

type failingSweeper struct{}

func (failingSweeper) Sweep(context.Context) (int, error) { return 0, errors.New("boom") }
