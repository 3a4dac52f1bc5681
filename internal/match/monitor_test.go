package match

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arena-engineering/arenactl/internal/errors"
	"github.com/arena-engineering/arenactl/internal/runtime"
)

// fakeClock steps simulated time instead of sleeping so the poll loop
// runs instantly in tests.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time        { return c.now }
func (c *fakeClock) Sleep(d time.Duration) { c.now = c.now.Add(d) }

func (c *fakeClock) Wait(step time.Duration) WaitFunc {
	return func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.now = c.now.Add(step)
		return nil
	}
}

func newTestMonitor(rt runtime.Runtime, clock *fakeClock, step time.Duration, opts ...MonitorOption) *Monitor {
	base := []MonitorOption{
		WithSettleDelay(0),
		WithClock(clock.Now, clock.Sleep),
		WithWaitFunc(clock.Wait(step)),
	}
	return NewMonitor(rt, append(base, opts...)...)
}

func TestMonitorFinished(t *testing.T) {
	rt := runtime.NewMockRuntime()
	rt.SetScript(
		[]string{"m1_0_a", "m1_1_b"},
		[]string{"m1_0_a", "m1_1_b"},
		[]string{"m1_0_a", "m1_1_b"},
		[]string{},
	)
	rt.SetExitCode("m1_0_a", 0)
	rt.SetExitCode("m1_1_b", 2)

	clock := &fakeClock{}
	m := newTestMonitor(rt, clock, time.Second)

	codes, err := m.Run(context.Background(), "m1", []string{"m1_0_a", "m1_1_b"})

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"m1_0_a": 0, "m1_1_b": 2}, codes)
}

func TestMonitorLingeringUnit(t *testing.T) {
	rt := runtime.NewMockRuntime()
	rt.SetScript(
		[]string{"m1_0_a", "m1_1_b"},
		[]string{"m1_0_a", "m1_1_b"},
		[]string{"m1_0_a"},
	)
	rt.SetExitCode("m1_1_b", 1)

	clock := &fakeClock{}
	m := newTestMonitor(rt, clock, 5*time.Second)

	codes, err := m.Run(context.Background(), "m1", []string{"m1_0_a", "m1_1_b"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.KindLingeringUnit))
	assert.Equal(t, errors.ExitLingeringUnit, errors.GetExitCode(err))

	// Codes of the already-terminated units survive the failure.
	assert.Equal(t, map[string]int{"m1_1_b": 1}, codes)
}

func TestMonitorIncompleteLaunch(t *testing.T) {
	rt := runtime.NewMockRuntime()
	rt.SetScript([]string{"m1_0_a"})

	clock := &fakeClock{}
	m := newTestMonitor(rt, clock, time.Second)

	_, err := m.Run(context.Background(), "m1", []string{"m1_0_a", "m1_1_b"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.KindIncompleteLaunch))
}

func TestMonitorRuntimeQueryFailure(t *testing.T) {
	rt := runtime.NewMockRuntime()
	rt.SetError("ListRunning", fmt.Errorf("daemon unreachable"))

	clock := &fakeClock{}
	m := newTestMonitor(rt, clock, time.Second)

	_, err := m.Run(context.Background(), "m1", []string{"m1_0_a"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.KindRuntimeQuery))
}

func TestMonitorContextCancelled(t *testing.T) {
	rt := runtime.NewMockRuntime()
	rt.SetScript([]string{"m1_0_a", "m1_1_b"})

	ctx, cancel := context.WithCancel(context.Background())
	clock := &fakeClock{}
	m := NewMonitor(rt,
		WithSettleDelay(0),
		WithClock(clock.Now, clock.Sleep),
		WithWaitFunc(func(ctx context.Context) error {
			cancel()
			return ctx.Err()
		}),
	)

	_, err := m.Run(ctx, "m1", []string{"m1_0_a", "m1_1_b"})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestMonitorStatusCallback(t *testing.T) {
	rt := runtime.NewMockRuntime()
	rt.SetScript(
		[]string{"m1_0_a", "m1_1_b"},
		[]string{"m1_0_a", "m1_1_b"},
		[]string{},
	)
	rt.SetExitCode("m1_0_a", 0)
	rt.SetExitCode("m1_1_b", 0)

	clock := &fakeClock{}
	var polls [][]string
	m := newTestMonitor(rt, clock, time.Second,
		WithStatusFunc(func(running []string, elapsed time.Duration) {
			polls = append(polls, running)
		}),
	)

	_, err := m.Run(context.Background(), "m1", []string{"m1_0_a", "m1_1_b"})

	require.NoError(t, err)
	require.Len(t, polls, 1)
	assert.Equal(t, []string{"m1_0_a", "m1_1_b"}, polls[0])
}
