package match

import (
	"context"
	"os"

	"github.com/arena-engineering/arenactl/internal/errors"
	"github.com/arena-engineering/arenactl/internal/logging"
	"github.com/arena-engineering/arenactl/internal/player"
	"github.com/arena-engineering/arenactl/internal/runtime"
)

// Launcher turns unit specs into running units.
type Launcher struct {
	rt runtime.Runtime
}

// NewLauncher creates a Launcher on the given runtime.
func NewLauncher(rt runtime.Runtime) *Launcher {
	return &Launcher{rt: rt}
}

// Launch creates the spec's host directories, runs the unit, and
// resolves the runtime-assigned identifier by a name-filtered lookup.
// A failed run call or an unresolvable identifier is a LaunchFailure.
func (l *Launcher) Launch(ctx context.Context, spec runtime.RunSpec, p *player.Participant) (*Unit, error) {
	for _, dir := range spec.EnsureDirs {
		// World-writable so the unit's user can write regardless of
		// UID mapping.
		if err := os.MkdirAll(dir, 0777); err != nil {
			return nil, errors.LaunchFailure(p.Name, spec.Name, err)
		}
	}

	if err := l.rt.Run(ctx, spec); err != nil {
		return nil, errors.LaunchFailure(p.Name, spec.Name, err)
	}

	id, err := l.rt.LookupID(ctx, spec.Name)
	if err != nil {
		return nil, errors.LaunchFailure(p.Name, spec.Name, err)
	}
	if id == "" {
		return nil, errors.LaunchFailure(p.Name, spec.Name, nil)
	}

	logging.Info("launched unit", "player", p.Name, "unit", spec.Name)
	logging.Debug("unit identifier resolved", "unit", spec.Name, "id", id)

	return &Unit{Name: spec.Name, ID: id, Player: p}, nil
}
