package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"wallet-balances-reporter/internal/application"

	"github.com/stretchr/testify/require"
)

type countingRunner struct {
	calls atomic.Int32
	errs  []error
}

func (r *countingRunner) Run(context.Context) error {
	n := int(r.calls.Add(1)) - 1
	if n < len(r.errs) {
		return r.errs[n]
	}
	return nil
}

func TestScheduler_RunsImmediatelyAndOnTick(t *testing.T) {
	runner := &countingRunner{errs: []error{errors.New("boom")}}
	s := &Scheduler{Runner: runner, Every: 10 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return runner.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	require.True(t, s.Ready())

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestScheduler_NotReadyUntilSuccess(t *testing.T) {
	runner := &countingRunner{errs: []error{errors.New("boom")}}
	s := &Scheduler{Runner: runner, Every: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return runner.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	require.False(t, s.Ready())
	cancel()
	<-done
}

func TestScheduler_NonPositiveIntervalUsesDefault(t *testing.T) {
	for _, every := range []time.Duration{0, -time.Second} {
		runner := &countingRunner{}
		s := &Scheduler{Runner: runner, Every: every}

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			defer close(done)
			s.Start(ctx)
		}()

		require.Eventually(t, s.Ready, time.Second, 5*time.Millisecond)
		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("scheduler did not stop")
		}
		require.Equal(t, int32(1), runner.calls.Load())
	}
}

func TestScheduler_DuplicateRunIsNotReady(t *testing.T) {
	runner := &countingRunner{errs: []error{application.ErrDuplicateRun}}
	s := &Scheduler{Runner: runner, Every: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return runner.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	require.False(t, s.Ready())
	cancel()
	<-done
}
