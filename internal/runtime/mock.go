package runtime

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockRuntime is a mock implementation of Runtime for testing.
// Besides tracking unit state, it can replay a scripted sequence of
// ListRunning observations so the match monitor's polling state machine
// can be driven deterministically without real processes.
type MockRuntime struct {
	mu sync.RWMutex

	// Units tracks the state of mock units by name
	Units map[string]*MockUnit

	// Script, when non-nil, supplies successive ListRunning results.
	// The last entry is sticky once the script is exhausted.
	Script [][]string

	scriptCalls int

	// ExitCodes overrides the exit code reported for a unit name,
	// regardless of unit state. Useful when the unit is created by the
	// code under test.
	ExitCodes map[string]int

	// Errors allows injecting errors for specific operations
	Errors map[string]error

	// CallLog records all method calls for verification
	CallLog []MockCall
}

// MockUnit is the state of one mock unit
type MockUnit struct {
	Name     string
	ID       string
	Running  bool
	ExitCode int
}

// MockCall represents a recorded method call
type MockCall struct {
	Method string
	Args   []interface{}
}

// NewMockRuntime creates a new mock runtime
func NewMockRuntime() *MockRuntime {
	return &MockRuntime{
		Units:     make(map[string]*MockUnit),
		ExitCodes: make(map[string]int),
		Errors:    make(map[string]error),
		CallLog:   make([]MockCall, 0),
	}
}

func (m *MockRuntime) record(method string, args ...interface{}) {
	m.CallLog = append(m.CallLog, MockCall{Method: method, Args: args})
}

// SetError sets an error to be returned for a specific operation
func (m *MockRuntime) SetError(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[operation] = err
}

// AddUnit adds a unit to the mock
func (m *MockRuntime) AddUnit(name string, running bool, exitCode int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Units[name] = &MockUnit{
		Name:     name,
		ID:       "mock-" + name,
		Running:  running,
		ExitCode: exitCode,
	}
}

// SetExitCode overrides the exit code reported for a unit name
func (m *MockRuntime) SetExitCode(name string, code int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExitCodes[name] = code
}

// SetScript installs a scripted sequence of ListRunning observations
func (m *MockRuntime) SetScript(observations ...[]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Script = observations
	m.scriptCalls = 0
}

// GetCallsFor returns all calls for a specific method
func (m *MockRuntime) GetCallsFor(method string) []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var calls []MockCall
	for _, call := range m.CallLog {
		if call.Method == method {
			calls = append(calls, call)
		}
	}
	return calls
}

// Name returns the runtime identifier
func (m *MockRuntime) Name() string {
	return "mock"
}

// Run creates and starts a unit
func (m *MockRuntime) Run(ctx context.Context, spec RunSpec) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Run", spec)

	if err, ok := m.Errors["Run"]; ok {
		return err
	}

	m.Units[spec.Name] = &MockUnit{
		Name:    spec.Name,
		ID:      "mock-" + spec.Name,
		Running: true,
	}

	return nil
}

// LookupID resolves a running unit's identifier by name
func (m *MockRuntime) LookupID(ctx context.Context, name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.record("LookupID", name)

	if err, ok := m.Errors["LookupID"]; ok {
		return "", err
	}

	if unit, ok := m.Units[name]; ok && unit.Running {
		return unit.ID, nil
	}

	return "", nil
}

// ListRunning returns running unit names filtered by prefix
func (m *MockRuntime) ListRunning(ctx context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("ListRunning", prefix)

	if err, ok := m.Errors["ListRunning"]; ok {
		return nil, err
	}

	if m.Script != nil {
		idx := m.scriptCalls
		if idx >= len(m.Script) {
			idx = len(m.Script) - 1
		}
		m.scriptCalls++

		var names []string
		for _, name := range m.Script[idx] {
			if strings.HasPrefix(name, prefix) {
				names = append(names, name)
			}
		}
		return names, nil
	}

	var names []string
	for name, unit := range m.Units {
		if unit.Running && strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	return names, nil
}

// ListAll returns all unit names filtered by prefix, stopped included
func (m *MockRuntime) ListAll(ctx context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("ListAll", prefix)

	if err, ok := m.Errors["ListAll"]; ok {
		return nil, err
	}

	var names []string
	for name := range m.Units {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	return names, nil
}

// Stop stops the named units
func (m *MockRuntime) Stop(ctx context.Context, names ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Stop", names)

	if err, ok := m.Errors["Stop"]; ok {
		return err
	}

	for _, name := range names {
		if unit, ok := m.Units[name]; ok {
			unit.Running = false
		}
	}
	return nil
}

// Remove removes the named units
func (m *MockRuntime) Remove(ctx context.Context, names ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Remove", names)

	if err, ok := m.Errors["Remove"]; ok {
		return err
	}

	for _, name := range names {
		delete(m.Units, name)
	}
	return nil
}

// ExitCode inspects a unit's exit code
func (m *MockRuntime) ExitCode(ctx context.Context, name string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.record("ExitCode", name)

	if err, ok := m.Errors["ExitCode"]; ok {
		return 0, err
	}

	if code, ok := m.ExitCodes[name]; ok {
		return code, nil
	}

	if unit, ok := m.Units[name]; ok {
		return unit.ExitCode, nil
	}

	return 0, fmt.Errorf("unit not found: %s", name)
}

// Ensure MockRuntime implements Runtime
var _ Runtime = (*MockRuntime)(nil)
