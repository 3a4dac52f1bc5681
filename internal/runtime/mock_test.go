package runtime

import (
	"context"
	"slices"
	"testing"
)

func TestMockRuntime_RunAndLookup(t *testing.T) {
	m := NewMockRuntime()
	ctx := context.Background()

	if err := m.Run(ctx, RunSpec{Name: "m1_0_bot"}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	id, err := m.LookupID(ctx, "m1_0_bot")
	if err != nil {
		t.Fatalf("LookupID failed: %v", err)
	}
	if id != "mock-m1_0_bot" {
		t.Errorf("LookupID = %q", id)
	}

	id, _ = m.LookupID(ctx, "absent")
	if id != "" {
		t.Errorf("LookupID for absent unit = %q, want empty", id)
	}
}

func TestMockRuntime_ListRunningPrefix(t *testing.T) {
	m := NewMockRuntime()
	ctx := context.Background()

	m.AddUnit("m1_0_a", true, 0)
	m.AddUnit("m1_1_b", true, 0)
	m.AddUnit("m2_0_c", true, 0)
	m.AddUnit("m1_2_d", false, 0)

	names, err := m.ListRunning(ctx, "m1")
	if err != nil {
		t.Fatalf("ListRunning failed: %v", err)
	}
	slices.Sort(names)
	if !slices.Equal(names, []string{"m1_0_a", "m1_1_b"}) {
		t.Errorf("ListRunning = %v", names)
	}
}

func TestMockRuntime_Script(t *testing.T) {
	m := NewMockRuntime()
	ctx := context.Background()

	m.SetScript(
		[]string{"m1_0_a", "m1_1_b"},
		[]string{"m1_0_a"},
		[]string{},
	)

	first, _ := m.ListRunning(ctx, "m1")
	if len(first) != 2 {
		t.Errorf("first observation = %v", first)
	}
	second, _ := m.ListRunning(ctx, "m1")
	if len(second) != 1 {
		t.Errorf("second observation = %v", second)
	}
	third, _ := m.ListRunning(ctx, "m1")
	if len(third) != 0 {
		t.Errorf("third observation = %v", third)
	}
	// Script exhausted: last entry is sticky
	fourth, _ := m.ListRunning(ctx, "m1")
	if len(fourth) != 0 {
		t.Errorf("fourth observation = %v", fourth)
	}
}

func TestMockRuntime_StopRemoveExitCode(t *testing.T) {
	m := NewMockRuntime()
	ctx := context.Background()

	m.AddUnit("m1_0_a", true, 2)

	if err := m.Stop(ctx, "m1_0_a"); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	code, err := m.ExitCode(ctx, "m1_0_a")
	if err != nil {
		t.Fatalf("ExitCode failed: %v", err)
	}
	if code != 2 {
		t.Errorf("ExitCode = %d, want 2", code)
	}

	if err := m.Remove(ctx, "m1_0_a"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := m.ExitCode(ctx, "m1_0_a"); err == nil {
		t.Error("ExitCode after Remove should fail, the status is gone")
	}
}

func TestMockRuntime_ErrorInjection(t *testing.T) {
	m := NewMockRuntime()
	ctx := context.Background()

	m.SetError("Run", context.DeadlineExceeded)
	if err := m.Run(ctx, RunSpec{Name: "x"}); err == nil {
		t.Error("Run should return the injected error")
	}
}
