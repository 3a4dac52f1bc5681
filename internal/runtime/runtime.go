// Package runtime defines the container runtime interface for arenactl.
// This abstraction consolidates every control-plane interaction behind
// one narrow capability surface (run, lookup, list-by-prefix, stop,
// remove, inspect-exit-code) so the match lifecycle is runtime-agnostic
// and can be driven against a mock in tests.
package runtime

import "context"

// EnvVar is one environment entry passed into a unit. Order matters to
// the game image's entrypoint scripts, so env is a slice, not a map.
type EnvVar struct {
	Key   string
	Value string
}

// PortMapping publishes a unit port on the host.
type PortMapping struct {
	HostPort      int
	ContainerPort int
}

// RunSpec is the full launch specification for one unit. It is pure
// data; it has no identity until a runtime runs it.
type RunSpec struct {
	// Name is the unit resource name, unique per match and ordinal.
	Name string

	// Image is the game image identifier.
	Image string

	// Privileged runs the unit with extended privileges.
	Privileged bool

	// Mounts are applied in order.
	Mounts []Mount

	// Env entries are applied in order.
	Env []EnvVar

	// Ports are host-to-unit port mappings.
	Ports []PortMapping

	// Network is the runtime network to join. Empty means the caller
	// supplied its own network option through ExtraArgs.
	Network string

	// ExtraArgs are caller-supplied runtime options, passed verbatim.
	ExtraArgs []string

	// Command is the entrypoint script and its arguments.
	Command []string

	// EnsureDirs are host directories that must exist (world-writable)
	// before the unit starts. The launcher creates them.
	EnsureDirs []string
}

// Runtime is the interface container backends must implement.
// All methods are safe for concurrent use.
type Runtime interface {
	// Name returns the runtime identifier (e.g. "docker", "podman")
	Name() string

	// Run creates and starts a detached unit from the spec.
	Run(ctx context.Context, spec RunSpec) error

	// LookupID resolves the runtime-assigned identifier of a running
	// unit by its resource name. Returns "" when no such unit runs.
	LookupID(ctx context.Context, name string) (string, error)

	// ListRunning returns the names of currently-running units whose
	// name starts with prefix.
	ListRunning(ctx context.Context, prefix string) ([]string, error)

	// ListAll returns the names of all units whose name starts with
	// prefix, stopped ones included.
	ListAll(ctx context.Context, prefix string) ([]string, error)

	// Stop stops the named units. A no-op on an empty list.
	Stop(ctx context.Context, names ...string) error

	// Remove removes the named units. A no-op on an empty list.
	// Removing a unit destroys its inspectable exit status.
	Remove(ctx context.Context, names ...string) error

	// ExitCode inspects the exit code of a terminated unit.
	ExitCode(ctx context.Context, name string) (int, error)
}
