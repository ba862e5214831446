// Package aggregate defines the contract every event-sourced aggregate
// implements and the pure helpers that drive it.
//
// An aggregate owns no state of its own. Callers fold the persisted history
// into a state value with Replay, hand that state and a new command to
// Decide, and on success evolve the state forward through the emitted events
// before appending them to the journal.
package aggregate

// Aggregate is the capability set of one aggregate kind.
//
// Decide receives state by value and must not mutate anything reachable from
// it; Evolve is the only place state changes. Evolve performs no validation:
// events are assumed to be applied exactly once, in production order.
type Aggregate[S, C, E any] interface {
	// InitialState returns the state of a brand-new aggregate instance.
	InitialState() S
	// Decide returns the events a command produces, or the rejection.
	Decide(state S, cmd C) ([]E, error)
	// Evolve applies one event to state.
	Evolve(state *S, evt E)
}

// Replay folds history from the initial state.
func Replay[S, C, E any](agg Aggregate[S, C, E], history []E) S {
	state := agg.InitialState()
	return Fold(agg, state, history)
}

// Fold applies events to state in order and returns the result.
func Fold[S, C, E any](agg Aggregate[S, C, E], state S, events []E) S {
	for _, evt := range events {
		agg.Evolve(&state, evt)
	}
	return state
}

// Execute decides cmd against state and, on acceptance, evolves the state
// through the emitted events. A rejected command returns no events and the
// input state untouched.
func Execute[S, C, E any](agg Aggregate[S, C, E], state S, cmd C) ([]E, S, error) {
	events, err := agg.Decide(state, cmd)
	if err != nil {
		return nil, state, err
	}
	return events, Fold(agg, state, events), nil
}
