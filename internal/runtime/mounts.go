package runtime

import (
	"regexp"
	"strings"
)

// Mount represents a bind mount from host to unit.
type Mount struct {
	// Source is the host path. It is normalized for the host OS family
	// when rendered to runtime arguments.
	Source string

	// Target is the path inside the unit.
	Target string

	// ReadOnly makes the mount read-only.
	ReadOnly bool
}

// Arg renders the mount in the runtime's volume syntax.
func (m Mount) Arg() string {
	mode := "rw"
	if m.ReadOnly {
		mode = "ro"
	}
	return NormalizeHostPath(m.Source) + ":" + m.Target + ":" + mode
}

var (
	driveLetterRe  = regexp.MustCompile(`^([a-zA-Z]):`)
	leadingLowerRe = regexp.MustCompile(`^[a-z]`)
)

// NormalizeHostPath converts a host filesystem path into the syntax the
// container runtime expects on the host's OS family. Rules, in order: a
// leading drive designator like "C:" is lower-cased (colon dropped), a
// leading lower-case letter is prefixed with "//", and backslashes
// become forward slashes. Idempotent on already-normalized paths.
func NormalizeHostPath(path string) string {
	path = driveLetterRe.ReplaceAllStringFunc(path, func(m string) string {
		return strings.ToLower(m[:1])
	})
	path = leadingLowerRe.ReplaceAllString(path, "//$0")
	path = strings.ReplaceAll(path, `\`, "/")
	return path
}
