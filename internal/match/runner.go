package match

import (
	"context"
	"os"

	"github.com/arena-engineering/arenactl/internal/artifacts"
	"github.com/arena-engineering/arenactl/internal/errors"
	"github.com/arena-engineering/arenactl/internal/logging"
	"github.com/arena-engineering/arenactl/internal/player"
	"github.com/arena-engineering/arenactl/internal/runtime"
	"github.com/arena-engineering/arenactl/internal/viewer"
)

// Runner orchestrates one complete match: artifact sweep, ordered unit
// launches, monitoring, exit-code capture, cleanup, classification,
// and optional bot data sync.
type Runner struct {
	rt       runtime.Runtime
	launcher *Launcher
	monitor  *Monitor

	// launchViewer spawns a display viewer for a headful participant.
	// Injectable for tests; failures never affect the lifecycle.
	launchViewer func(host string, port int)
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithMonitor replaces the default monitor.
func WithMonitor(m *Monitor) RunnerOption {
	return func(r *Runner) {
		r.monitor = m
	}
}

// WithViewerFunc replaces the viewer spawner.
func WithViewerFunc(f func(host string, port int)) RunnerOption {
	return func(r *Runner) {
		r.launchViewer = f
	}
}

// NewRunner creates a Runner on the given runtime.
func NewRunner(rt runtime.Runtime, opts ...RunnerOption) *Runner {
	r := &Runner{
		rt:           rt,
		launcher:     NewLauncher(rt),
		monitor:      NewMonitor(rt),
		launchViewer: viewer.Launch,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunOptions are per-invocation choices outside the match config.
type RunOptions struct {
	// ShowAll opens a viewer for every participant instead of only the
	// first. Headful matches only.
	ShowAll bool

	// ReadOverwrite syncs each bot's write directory onto its read
	// directory after a successful match.
	ReadOverwrite bool
}

// Result is the terminal state of a match.
type Result struct {
	Outcome Outcome

	// Units are the launched units in participant order, with exit
	// codes filled in where they could be resolved.
	Units []*Unit

	// ExitCodes maps terminal unit names to their exit codes.
	ExitCodes map[string]int
}

// Run plays one match to completion. The returned error is nil only
// for a successful match; a classified failure (realtime timeout, unit
// error) returns both the populated result and the matching error.
func (r *Runner) Run(ctx context.Context, players []player.Participant, cfg *MatchConfig, opts RunOptions) (*Result, error) {
	if len(players) == 0 {
		return nil, errors.ValidationError("at least one player must be specified")
	}

	r.sweepArtifacts(cfg)

	// Launch in participant order: ordinal 0 hosts the match, the
	// join-mode units rely on its presence.
	units := make([]*Unit, 0, len(players))
	launched := make([]string, 0, len(players))
	for nth := range players {
		spec := BuildUnitSpec(players[nth], nth, len(players), cfg)
		unit, err := r.launcher.Launch(ctx, spec, &players[nth])
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
		launched = append(launched, unit.Name)
	}

	if !cfg.Headless {
		r.spawnViewers(players, cfg, opts.ShowAll)
	}

	codes, err := r.monitor.Run(ctx, cfg.GameName, launched)
	recordExitCodes(units, codes)

	if err != nil {
		if errors.Is(err, errors.KindLingeringUnit) {
			// Diagnostics are already captured; remove the whole set,
			// lingering unit included.
			logging.Warn("match crashed with a lingering unit", "game", cfg.GameName, "exitCodes", codes)
			Cleanup(ctx, r.rt, launched)
			return &Result{Outcome: OutcomeUnknown, Units: units, ExitCodes: codes}, err
		}
		return nil, err
	}

	// Exit codes are resolved; removal can no longer destroy evidence.
	Cleanup(ctx, r.rt, launched)

	result := &Result{
		Outcome:   Classify(codeValues(units, codes)),
		Units:     units,
		ExitCodes: codes,
	}

	switch result.Outcome {
	case OutcomeRealtimeTimedOut:
		return result, errors.RealtimeOuted(cfg.GameName)
	case OutcomeUnitError:
		return result, errors.UnitExitError(cfg.GameName)
	}

	if opts.ReadOverwrite {
		logging.Info("overwriting bot read directories", "game", cfg.GameName)
		if err := SyncBotData(players, cfg.GameName); err != nil {
			return result, err
		}
	}

	return result, nil
}

// sweepArtifacts removes files left behind by an earlier match with
// the same name.
func (r *Runner) sweepArtifacts(cfg *MatchConfig) {
	for _, file := range artifacts.Find(cfg.LogDir, cfg.MapDir, cfg.GameName) {
		logging.Debug("removing existing file", "file", file)
		if err := os.Remove(file); err != nil {
			logging.Warn("could not remove stale artifact", "file", file, "error", err)
		}
	}
}

// spawnViewers opens display viewers for a headful match, fire and
// forget. In headful mode the game must be started manually from the
// viewer.
func (r *Runner) spawnViewers(players []player.Participant, cfg *MatchConfig, showAll bool) {
	shown := players[:1]
	if showAll {
		shown = players
	}

	for nth, p := range shown {
		port := cfg.VNCBasePort + nth
		logging.UserInfo("Launching viewer for %s on %s:%d", p.Name, cfg.VNCHost, port)
		r.launchViewer(cfg.VNCHost, port)
	}

	logging.UserInfo("In headful mode you must start the game manually: select the map, wait for all players to join, then start.")
}

// recordExitCodes writes resolved codes onto the unit records.
func recordExitCodes(units []*Unit, codes map[string]int) {
	for _, unit := range units {
		if code, ok := codes[unit.Name]; ok {
			c := code
			unit.ExitCode = &c
		}
	}
}

// codeValues lists exit codes in participant order for classification.
func codeValues(units []*Unit, codes map[string]int) []int {
	values := make([]int, 0, len(codes))
	for _, unit := range units {
		if code, ok := codes[unit.Name]; ok {
			values = append(values, code)
		}
	}
	return values
}
