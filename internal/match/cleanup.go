package match

import (
	"context"

	"github.com/arena-engineering/arenactl/internal/logging"
	"github.com/arena-engineering/arenactl/internal/runtime"
)

// Cleanup stops and removes the named units, best-effort. It is a
// no-op on an empty set and never propagates failures: by the time
// cleanup runs the match outcome is already fixed, and a cleanup
// failure must not mask or overwrite it. Exit codes must have been
// inspected before calling this; removal destroys them.
func Cleanup(ctx context.Context, rt runtime.Runtime, names []string) {
	if len(names) == 0 {
		return
	}

	logging.Debug("removing game units", "units", names)

	if err := rt.Stop(ctx, names...); err != nil {
		logging.Warn("failed to stop units", "units", names, "error", err)
	}
	if err := rt.Remove(ctx, names...); err != nil {
		logging.Warn("failed to remove units", "units", names, "error", err)
	}
}
