package resolve

import (
	"fmt"
	"testing"
)

// ============================================================================
// State Tests
// ============================================================================

func TestIsTerminal(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{StateChecking, false},
		{StateAwaitingResolution, false},
		{StateAccepted, true},
		{StateRejected, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := IsTerminal(tt.state); got != tt.want {
				t.Errorf("IsTerminal(%s) = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}

func TestIsAccepted(t *testing.T) {
	if !IsAccepted(StateAccepted) {
		t.Error("IsAccepted(StateAccepted) = false, want true")
	}
	for _, s := range []State{StateChecking, StateAwaitingResolution, StateRejected} {
		if IsAccepted(s) {
			t.Errorf("IsAccepted(%s) = true, want false", s)
		}
	}
}

func TestIsAllowedTransition(t *testing.T) {
	tests := []struct {
		from State
		to   State
		want bool
	}{
		{StateChecking, StateAccepted, true},
		{StateChecking, StateAwaitingResolution, true},
		{StateChecking, StateRejected, false},
		{StateAwaitingResolution, StateChecking, true},
		{StateAwaitingResolution, StateRejected, true},
		{StateAwaitingResolution, StateAwaitingResolution, true},
		{StateAwaitingResolution, StateAccepted, false},
		{StateAccepted, StateChecking, false},
		{StateRejected, StateChecking, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_to_%s", tt.from, tt.to), func(t *testing.T) {
			if got := isAllowedTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("isAllowedTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestStep_PanicsOnDisallowedMove(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("step(StateAccepted, StateChecking) did not panic")
		}
	}()
	step(StateAccepted, StateChecking)
}

// ============================================================================
// Resolver Tests
// ============================================================================

// takenSet builds a lookup over a fixed set, reporting every hit as src.
func takenSet(src Source, ids ...string) func(string) (Source, bool) {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return func(id string) (Source, bool) {
		_, ok := set[id]
		return src, ok
	}
}

func TestResolver_Run_UniqueID(t *testing.T) {
	r := New(Func(func(Conflict) Decision {
		t.Fatal("strategy consulted for a unique identifier")
		return Decision{}
	}))

	out := r.Run("S1", 2, takenSet(SourceBatch))

	if out.State != StateAccepted {
		t.Fatalf("state = %s, want %s", out.State, StateAccepted)
	}
	if out.ID != "S1" {
		t.Errorf("ID = %q, want %q", out.ID, "S1")
	}
	if out.Attempts != 0 {
		t.Errorf("Attempts = %d, want 0", out.Attempts)
	}
}

func TestResolver_Run_SkipStrategy(t *testing.T) {
	r := New(Skip{})

	out := r.Run("S1", 2, takenSet(SourceBatch, "S1"))

	if out.State != StateRejected {
		t.Fatalf("state = %s, want %s", out.State, StateRejected)
	}
	if out.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", out.Attempts)
	}
}

func TestResolver_Run_NilStrategySkips(t *testing.T) {
	r := New(nil)

	out := r.Run("S1", 2, takenSet(SourceExisting, "S1"))

	if out.State != StateRejected {
		t.Errorf("state = %s, want %s", out.State, StateRejected)
	}
}

func TestResolver_Run_AutoStrategy(t *testing.T) {
	next := 0
	gen := func() string {
		next++
		return fmt.Sprintf("G%d", next)
	}
	r := New(Auto{Next: gen})

	// G1 is also taken, so the generator has to be asked twice.
	out := r.Run("S1", 2, takenSet(SourceBatch, "S1", "G1"))

	if out.State != StateAccepted {
		t.Fatalf("state = %s, want %s", out.State, StateAccepted)
	}
	if out.ID != "G2" {
		t.Errorf("ID = %q, want %q", out.ID, "G2")
	}
	if out.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", out.Attempts)
	}
}

func TestResolver_Run_ManualReprompt(t *testing.T) {
	var conflicts []Conflict
	strategy := Func(func(c Conflict) Decision {
		conflicts = append(conflicts, c)
		if c.Attempt == 1 {
			return Decision{} // blank answer: ask again
		}
		return Decision{ReplacementID: "S9"}
	})

	out := New(strategy).Run("S1", 4, takenSet(SourceExisting, "S1"))

	if out.State != StateAccepted {
		t.Fatalf("state = %s, want %s", out.State, StateAccepted)
	}
	if out.ID != "S9" {
		t.Errorf("ID = %q, want %q", out.ID, "S9")
	}
	if len(conflicts) != 2 {
		t.Fatalf("strategy consulted %d times, want 2", len(conflicts))
	}
	for i, c := range conflicts {
		if c.ID != "S1" || c.Line != 4 || c.Source != SourceExisting {
			t.Errorf("conflict[%d] = %+v, want ID S1, line 4, source %q", i, c, SourceExisting)
		}
		if c.Attempt != i+1 {
			t.Errorf("conflict[%d].Attempt = %d, want %d", i, c.Attempt, i+1)
		}
	}
}

func TestResolver_Run_ManualAbort(t *testing.T) {
	strategy := Func(func(c Conflict) Decision {
		if c.Attempt == 1 {
			return Decision{ReplacementID: "S1"} // still colliding
		}
		return Decision{Skip: true}
	})

	out := New(strategy).Run("S1", 2, takenSet(SourceBatch, "S1"))

	if out.State != StateRejected {
		t.Fatalf("state = %s, want %s", out.State, StateRejected)
	}
	if out.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", out.Attempts)
	}
}

func TestResolver_Run_ExhaustsAttempts(t *testing.T) {
	// A strategy that keeps proposing the same taken identifier must not
	// loop forever.
	out := New(Func(func(Conflict) Decision {
		return Decision{ReplacementID: "S1"}
	})).Run("S1", 2, takenSet(SourceBatch, "S1"))

	if out.State != StateRejected {
		t.Fatalf("state = %s, want %s", out.State, StateRejected)
	}
	if out.Attempts != maxAttempts {
		t.Errorf("Attempts = %d, want %d", out.Attempts, maxAttempts)
	}
}
