package tab

import "github.com/louisbranch/cafe/internal/services/tab/domain/aggregate"

// Tab binds the tab decider and fold to the aggregate contract.
type Tab struct{}

var _ aggregate.Aggregate[State, Command, Event] = Tab{}

// InitialState returns the state of a tab with no history.
func (Tab) InitialState() State { return State{} }

// Decide implements aggregate.Aggregate.
func (Tab) Decide(state State, cmd Command) ([]Event, error) { return Decide(state, cmd) }

// Evolve implements aggregate.Aggregate.
func (Tab) Evolve(state *State, evt Event) { Evolve(state, evt) }

// Replay folds a tab history from the initial state.
func Replay(history []Event) State {
	return aggregate.Replay[State, Command, Event](Tab{}, history)
}
