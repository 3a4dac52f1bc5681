// Package viewer spawns a remote-display viewer process for headful
// match units. The spawn is fire and forget: a missing or failing
// viewer never affects the match lifecycle, so failures are only
// logged.
package viewer

import (
	"fmt"
	"os/exec"
	goruntime "runtime"

	"github.com/arena-engineering/arenactl/internal/logging"
)

// Launch starts a VNC viewer pointed at host:port and detaches from it.
func Launch(host string, port int) {
	cmd := viewerCommand(host, port)
	if cmd == nil {
		logging.Warn("no viewer command for this platform", "os", goruntime.GOOS)
		return
	}

	if err := cmd.Start(); err != nil {
		logging.Warn("could not launch viewer", "host", host, "port", port, "error", err)
		return
	}

	// Reap the process in the background so it never turns into a
	// zombie; its exit status is irrelevant.
	go func() {
		_ = cmd.Wait()
	}()

	logging.Debug("viewer launched", "host", host, "port", port)
}

func viewerCommand(host string, port int) *exec.Cmd {
	switch goruntime.GOOS {
	case "darwin":
		return exec.Command("open", fmt.Sprintf("vnc://%s:%d", host, port))
	case "windows":
		return exec.Command("cmd", "/c", "start", fmt.Sprintf("vnc://%s:%d", host, port))
	default:
		return exec.Command("vncviewer", fmt.Sprintf("%s::%d", host, port))
	}
}
