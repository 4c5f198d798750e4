// Package resolve implements the duplicate-identifier resolution protocol
// used while importing records: every candidate identifier is checked
// against the identifiers already accepted in the batch and the ones the
// caller brought in, and collisions are settled by a pluggable Strategy.
package resolve

// Source names the identifier set a collision was found in.
type Source string

const (
	SourceBatch    Source = "import batch"
	SourceExisting Source = "existing records"
)

// Conflict describes one identifier collision presented to a Strategy.
type Conflict struct {
	Line    int    // 1-based line number in the source file
	ID      string // the colliding identifier
	Source  Source // which set it collided with
	Attempt int    // 1 for the first decision on this record
}

// Decision is a Strategy's answer for one Conflict.
//
// A non-empty ReplacementID is re-checked like a freshly parsed identifier.
// An empty ReplacementID with Skip false asks the resolver to present the
// same conflict again; interactive strategies use this to re-prompt.
type Decision struct {
	ReplacementID string
	Skip          bool
}

// Strategy decides what happens to a record whose identifier collides.
type Strategy interface {
	Resolve(Conflict) Decision
}

// Skip drops every colliding record.
type Skip struct{}

func (Skip) Resolve(Conflict) Decision { return Decision{Skip: true} }

// Auto replaces every colliding identifier with a generated one.
type Auto struct {
	Next func() string
}

func (a Auto) Resolve(Conflict) Decision { return Decision{ReplacementID: a.Next()} }

// Func adapts a plain function to a Strategy.
type Func func(Conflict) Decision

func (f Func) Resolve(c Conflict) Decision { return f(c) }

// maxAttempts cuts off a strategy that never yields a fresh identifier,
// turning an endless loop into a rejection.
const maxAttempts = 1000

// Outcome is the terminal result for one record.
type Outcome struct {
	State    State  // StateAccepted or StateRejected
	ID       string // the admitted identifier when accepted
	Attempts int    // strategy decisions consumed
}

// Resolver drives the resolution protocol for one import run.
type Resolver struct {
	strategy Strategy
}

// New returns a Resolver using the given strategy. A nil strategy skips
// every colliding record.
func New(strategy Strategy) *Resolver {
	if strategy == nil {
		strategy = Skip{}
	}
	return &Resolver{strategy: strategy}
}

// Run takes a candidate identifier through the protocol until it reaches a
// terminal state. lookup reports whether an identifier is taken and by
// which set; line is carried into Conflicts for reporting.
//
// Checking moves straight to Accepted when the identifier is free. On a
// collision it moves to AwaitingResolution, where the strategy either
// supplies a replacement (back to Checking), asks to be consulted again,
// or rejects the record.
func (r *Resolver) Run(id string, line int, lookup func(string) (Source, bool)) Outcome {
	state := StateChecking
	attempts := 0
	var source Source

	for {
		switch state {
		case StateChecking:
			src, taken := lookup(id)
			if !taken {
				state = step(state, StateAccepted)
				continue
			}
			source = src
			state = step(state, StateAwaitingResolution)

		case StateAwaitingResolution:
			if attempts >= maxAttempts {
				state = step(state, StateRejected)
				continue
			}
			attempts++
			d := r.strategy.Resolve(Conflict{Line: line, ID: id, Source: source, Attempt: attempts})
			switch {
			case d.Skip:
				state = step(state, StateRejected)
			case d.ReplacementID == "":
				state = step(state, StateAwaitingResolution)
			default:
				id = d.ReplacementID
				state = step(state, StateChecking)
			}

		case StateAccepted:
			return Outcome{State: state, ID: id, Attempts: attempts}
		case StateRejected:
			return Outcome{State: state, Attempts: attempts}
		}
	}
}
