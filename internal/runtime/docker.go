package runtime

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/arena-engineering/arenactl/internal/logging"
)

// DockerRuntime implements the Runtime interface using Docker or Podman.
// It auto-detects which container engine is available.
type DockerRuntime struct {
	// Command is the container command to use (docker or podman)
	Command string
}

// NewDockerRuntime creates a new Docker/Podman runtime.
// It auto-detects which command is available.
func NewDockerRuntime() (*DockerRuntime, error) {
	if _, err := exec.LookPath("docker"); err == nil {
		return &DockerRuntime{Command: "docker"}, nil
	}

	if _, err := exec.LookPath("podman"); err == nil {
		return &DockerRuntime{Command: "podman"}, nil
	}

	return nil, fmt.Errorf("neither docker nor podman found in PATH")
}

// Name returns the runtime identifier
func (r *DockerRuntime) Name() string {
	return r.Command
}

// runCmd executes a docker/podman command
func (r *DockerRuntime) runCmd(ctx context.Context, args ...string) (string, error) {
	logging.Debug("runtime call", "cmd", r.Command+" "+shellquote.Join(args...))

	cmd := exec.CommandContext(ctx, r.Command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s %s failed: %s: %w", r.Command, args[0], strings.TrimSpace(stderr.String()), err)
	}

	return stdout.String(), nil
}

// runArgs assembles the full argument list for a detached run.
func runArgs(spec RunSpec) []string {
	args := []string{"run", "-d"}

	if spec.Privileged {
		args = append(args, "--privileged")
	}

	args = append(args, "--name", spec.Name)

	for _, m := range spec.Mounts {
		args = append(args, "--volume", m.Arg())
	}

	// Caller-supplied options come before the computed network option
	// so an override of the network setting is respected upstream.
	args = append(args, spec.ExtraArgs...)

	if spec.Network != "" {
		args = append(args, "--net", spec.Network)
	}

	for _, p := range spec.Ports {
		args = append(args, "-p", fmt.Sprintf("%d:%d", p.HostPort, p.ContainerPort))
	}

	for _, e := range spec.Env {
		args = append(args, "-e", e.Key+"="+e.Value)
	}

	args = append(args, spec.Image)
	args = append(args, spec.Command...)

	return args
}

// Run creates and starts a detached unit from the spec
func (r *DockerRuntime) Run(ctx context.Context, spec RunSpec) error {
	logging.Debug("running unit", "name", spec.Name, "image", spec.Image, "runtime", r.Command)

	_, err := r.runCmd(ctx, runArgs(spec)...)
	return err
}

// LookupID resolves the runtime-assigned identifier of a running unit
func (r *DockerRuntime) LookupID(ctx context.Context, name string) (string, error) {
	out, err := r.runCmd(ctx, "ps", "-f", "name="+name, "-q")
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "'\"\n \t"), nil
}

// ListRunning returns names of running units filtered by name prefix
func (r *DockerRuntime) ListRunning(ctx context.Context, prefix string) ([]string, error) {
	return r.list(ctx, prefix, false)
}

// ListAll returns names of all units filtered by name prefix
func (r *DockerRuntime) ListAll(ctx context.Context, prefix string) ([]string, error) {
	return r.list(ctx, prefix, true)
}

func (r *DockerRuntime) list(ctx context.Context, prefix string, all bool) ([]string, error) {
	args := []string{"ps"}
	if all {
		args = append(args, "-a")
	}
	args = append(args, "-f", "name="+prefix, "--format", "{{.Names}}")

	out, err := r.runCmd(ctx, args...)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}

// Stop stops the named units
func (r *DockerRuntime) Stop(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return nil
	}
	_, err := r.runCmd(ctx, append([]string{"stop"}, names...)...)
	return err
}

// Remove removes the named units
func (r *DockerRuntime) Remove(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return nil
	}
	_, err := r.runCmd(ctx, append([]string{"rm"}, names...)...)
	return err
}

// ExitCode inspects the exit code of a terminated unit
func (r *DockerRuntime) ExitCode(ctx context.Context, name string) (int, error) {
	out, err := r.runCmd(ctx, "inspect", name, "--format", "{{.State.ExitCode}}")
	if err != nil {
		return 0, err
	}

	code, err := strconv.Atoi(strings.Trim(out, "\n\r\t '\""))
	if err != nil {
		return 0, fmt.Errorf("unparseable exit code for %s: %w", name, err)
	}
	return code, nil
}

// Ensure DockerRuntime implements Runtime
var _ Runtime = (*DockerRuntime)(nil)
