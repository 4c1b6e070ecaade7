package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"homework_status_bot/internal/app"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusServiceStub struct {
	polls   atomic.Int32
	block   bool
	done    chan struct{}
	release chan struct{}
}

func (s *statusServiceStub) Poll(ctx context.Context) error {
	s.polls.Add(1)
	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
		}
		return nil
	}
	if s.block {
		<-ctx.Done()
		close(s.done)
		return ctx.Err()
	}
	return nil
}

func (s *statusServiceStub) Snapshot() app.Snapshot { return app.Snapshot{} }

func testLogger() *logrus.Entry {
	log, _ := logtest.NewNullLogger()
	return logrus.NewEntry(log)
}

func TestPollScheduler_PollsImmediately(t *testing.T) {
	svc := &statusServiceStub{}
	s := NewPollScheduler(svc, testLogger(), time.Hour, time.Minute)

	require.NoError(t, s.Start())
	require.Eventually(t, func() bool { return svc.polls.Load() == 1 }, time.Second, 10*time.Millisecond)
	s.Stop()

	assert.Equal(t, int32(1), svc.polls.Load())
}

func TestPollScheduler_StopCancelsRunningPoll(t *testing.T) {
	svc := &statusServiceStub{block: true, done: make(chan struct{})}
	s := NewPollScheduler(svc, testLogger(), time.Hour, time.Hour)

	require.NoError(t, s.Start())
	require.Eventually(t, func() bool { return svc.polls.Load() == 1 }, time.Second, 10*time.Millisecond)

	s.Stop()
	select {
	case <-svc.done:
	default:
		t.Fatal("Stop returned before the running poll finished")
	}
}

func TestPollScheduler_SkipsTicksWhilePollRuns(t *testing.T) {
	svc := &statusServiceStub{release: make(chan struct{})}
	s := NewPollScheduler(svc, testLogger(), time.Second, time.Minute)

	require.NoError(t, s.Start())
	require.Eventually(t, func() bool { return svc.polls.Load() == 1 }, time.Second, 10*time.Millisecond)

	// At least two ticks fire while the first poll holds the job.
	assert.Never(t, func() bool { return svc.polls.Load() > 1 }, 2500*time.Millisecond, 50*time.Millisecond)

	close(svc.release)
	require.Eventually(t, func() bool { return svc.polls.Load() >= 2 }, 3*time.Second, 50*time.Millisecond)
	s.Stop()
}

func TestPollScheduler_InvalidInterval(t *testing.T) {
	s := NewPollScheduler(&statusServiceStub{}, testLogger(), -time.Second, time.Minute)
	assert.Error(t, s.Start())
}
