package jobs

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSubscriberSweeper struct {
	mock.Mock
	calls atomic.Int32
}

func (m *MockSubscriberSweeper) Sweep(ctx context.Context) int {
	m.calls.Add(1)
	args := m.Called(ctx)
	return args.Int(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSubscriberSweepJob_RunsOnSchedule(t *testing.T) {
	sweeper := &MockSubscriberSweeper{}
	sweeper.On("Sweep", mock.Anything).Return(1)

	job := NewSubscriberSweepJob(sweeper, "* * * * * *", discardLogger())
	require.NoError(t, job.Start())
	defer job.Stop()

	assert.Eventually(t, func() bool { return sweeper.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestSubscriberSweepJob_RunPassesDeadline(t *testing.T) {
	sweeper := &MockSubscriberSweeper{}
	sweeper.On("Sweep", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	})).Return(0).Once()

	NewSubscriberSweepJob(sweeper, "", discardLogger()).run()

	sweeper.AssertExpectations(t)
}

func TestSubscriberSweepJob_DefaultSchedule(t *testing.T) {
	job := NewSubscriberSweepJob(&MockSubscriberSweeper{}, "", discardLogger())

	assert.Equal(t, DefaultSweepSchedule, job.schedule)
}

func TestJobManager_InvalidScheduleFailsStart(t *testing.T) {
	jm := NewJobManager(&MockSubscriberSweeper{}, "every now and then", discardLogger())

	err := jm.StartAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subscriber sweep job")
}

func TestJobManager_StartStop(t *testing.T) {
	sweeper := &MockSubscriberSweeper{}
	sweeper.On("Sweep", mock.Anything).Return(0).Maybe()

	jm := NewJobManager(sweeper, DefaultSweepSchedule, discardLogger())
	require.NoError(t, jm.StartAll())
	jm.StopAll()
}
