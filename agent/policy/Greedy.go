// Package policy implements policies over tabular state spaces
package policy

import (
	"fmt"
	"strings"

	"sfneuman.com/frozenlake/environment"
	"sfneuman.com/frozenlake/timestep"
)

// Greedy is a fixed deterministic policy mapping each non-terminal
// state to a single action. Greedy policies are read-only after
// construction and safe to share between concurrent episode runners.
//
// Only non-terminal states carry a meaningful action: an episode ends
// on entering a terminal state, so the policy is never consulted there.
type Greedy struct {
	actions []environment.Action
}

// NewGreedy creates a new Greedy policy from a per-state action table
func NewGreedy(actions []environment.Action) *Greedy {
	return &Greedy{actions}
}

// States returns the number of states the policy covers
func (g *Greedy) States() int {
	return len(g.actions)
}

// Action returns the action the policy takes in a state
func (g *Greedy) Action(state int) environment.Action {
	return g.actions[state]
}

// SelectAction selects the action for the state of the given timestep
func (g *Greedy) SelectAction(t timestep.TimeStep) environment.Action {
	return g.actions[t.State]
}

func (g *Greedy) String() string {
	actions := make([]string, len(g.actions))
	for i, a := range g.actions {
		actions[i] = a.String()
	}
	return fmt.Sprintf("Greedy | [%v]", strings.Join(actions, " "))
}
