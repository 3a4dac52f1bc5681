package match

import (
	"context"
	"time"

	"github.com/arena-engineering/arenactl/internal/errors"
	"github.com/arena-engineering/arenactl/internal/logging"
	"github.com/arena-engineering/arenactl/internal/runtime"
)

// Monitor tuning defaults, observed from long-running tournament use.
const (
	// DefaultSettleDelay is how long to let units settle after launch
	// before confirming they are all running.
	DefaultSettleDelay = time.Second

	// DefaultLingerLimit is how long a single unit may outlive all its
	// peers before the match is declared crashed.
	DefaultLingerLimit = 20 * time.Second

	// DefaultPollInterval is the suspension between poll iterations
	// when no custom wait strategy is installed.
	DefaultPollInterval = 3 * time.Second
)

// WaitFunc is the caller-injectable suspension point of the poll loop.
// A CLI sleeps; an interactive front-end pumps its event loop instead.
type WaitFunc func(ctx context.Context) error

// StatusFunc observes each poll iteration.
type StatusFunc func(running []string, elapsed time.Duration)

// Monitor drives the match lifecycle state machine. The runtime offers
// no cross-platform blocking "wait for all of these to exit" primitive
// that would also let the caller interleave its own logic, so the
// monitor polls the process table and applies an explicit anomaly
// heuristic instead.
type Monitor struct {
	rt          runtime.Runtime
	settleDelay time.Duration
	lingerLimit time.Duration
	wait        WaitFunc
	now         func() time.Time
	sleep       func(time.Duration)
	onPoll      StatusFunc
}

// MonitorOption configures a Monitor.
type MonitorOption func(*Monitor)

// WithSettleDelay overrides the post-launch settle delay.
func WithSettleDelay(d time.Duration) MonitorOption {
	return func(m *Monitor) {
		m.settleDelay = d
	}
}

// WithLingerLimit overrides the lingering-unit threshold.
func WithLingerLimit(d time.Duration) MonitorOption {
	return func(m *Monitor) {
		if d > 0 {
			m.lingerLimit = d
		}
	}
}

// WithWaitFunc installs a custom suspension strategy for the poll loop.
func WithWaitFunc(wait WaitFunc) MonitorOption {
	return func(m *Monitor) {
		m.wait = wait
	}
}

// WithPollInterval installs a sleeping wait strategy with the given
// interval. Zero keeps the default.
func WithPollInterval(d time.Duration) MonitorOption {
	return func(m *Monitor) {
		if d > 0 {
			m.wait = sleepWait(d)
		}
	}
}

// WithClock overrides the monitor's time source and sleeper. Tests use
// this to step simulated time deterministically.
func WithClock(now func() time.Time, sleep func(time.Duration)) MonitorOption {
	return func(m *Monitor) {
		m.now = now
		m.sleep = sleep
	}
}

// WithStatusFunc installs a per-poll observer.
func WithStatusFunc(f StatusFunc) MonitorOption {
	return func(m *Monitor) {
		m.onPoll = f
	}
}

// NewMonitor creates a Monitor on the given runtime.
func NewMonitor(rt runtime.Runtime, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		rt:          rt,
		settleDelay: DefaultSettleDelay,
		lingerLimit: DefaultLingerLimit,
		wait:        sleepWait(DefaultPollInterval),
		now:         time.Now,
		sleep:       time.Sleep,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func sleepWait(d time.Duration) WaitFunc {
	return func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d):
			return nil
		}
	}
}

// Run watches the match named game until it reaches a terminal state
// and returns the exit codes of its terminal unit set, keyed by unit
// name. It must be called after all units in launched have started.
//
// The exit codes are resolved before any cleanup so the inspectable
// status is never destroyed ahead of diagnosis. On a lingering-unit
// failure the codes of already-terminated units are returned alongside
// the error for the same reason.
func (m *Monitor) Run(ctx context.Context, game string, launched []string) (map[string]int, error) {
	m.sleep(m.settleDelay)

	running, err := m.rt.ListRunning(ctx, game)
	if err != nil {
		return nil, errors.RuntimeQueryFailure("list", err)
	}
	if len(running) != len(launched) {
		return nil, errors.IncompleteLaunch(game, len(launched), len(running))
	}

	logging.Info("waiting until game is finished", "game", game, "units", len(launched))

	start := m.now()
	lastMulti := start
	lastObserved := running

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		running, err = m.rt.ListRunning(ctx, game)
		if err != nil {
			return nil, errors.RuntimeQueryFailure("list", err)
		}

		if len(running) == 0 {
			// Finished: the last non-empty observation is the terminal
			// membership whose exit codes get inspected.
			logging.Debug("all units exited", "game", game, "terminal", lastObserved)
			return m.resolveExitCodes(ctx, lastObserved)
		}

		lastObserved = running

		if len(running) >= 2 {
			lastMulti = m.now()
		}

		if len(running) == 1 && m.now().Sub(lastMulti) > m.lingerLimit {
			// One unit has outlived all its peers for too long, almost
			// certainly a crash that left one process orphaned. Codes
			// of the terminated units are still resolved so cleanup
			// cannot destroy the evidence.
			terminated := subtract(launched, running)
			codes, codesErr := m.resolveExitCodes(ctx, terminated)
			if codesErr != nil {
				logging.Warn("could not resolve exit codes of terminated units", "game", game, "error", codesErr)
			}
			return codes, errors.LingeringUnit(game, running, m.lingerLimit)
		}

		if m.onPoll != nil {
			m.onPoll(running, m.now().Sub(start))
		}
		logging.Debug("match still running", "game", game, "units", running)

		if err := m.wait(ctx); err != nil {
			return nil, err
		}
	}
}

// resolveExitCodes inspects the exit code of every named unit.
func (m *Monitor) resolveExitCodes(ctx context.Context, names []string) (map[string]int, error) {
	codes := make(map[string]int, len(names))
	for _, name := range names {
		code, err := m.rt.ExitCode(ctx, name)
		if err != nil {
			return codes, errors.RuntimeQueryFailure("inspect", err)
		}
		codes[name] = code
	}
	return codes, nil
}

// subtract returns the members of all that are not in exclude.
func subtract(all, exclude []string) []string {
	excluded := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excluded[name] = true
	}

	var rest []string
	for _, name := range all {
		if !excluded[name] {
			rest = append(rest, name)
		}
	}
	return rest
}
