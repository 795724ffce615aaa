// Package agent defines an agent interface
package agent

import (
	"sfneuman.com/frozenlake/environment"
	"sfneuman.com/frozenlake/timestep"
)

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select actions in each state. A fixed
// policy, such as one extracted from a planning algorithm, simply looks
// its action up; learning agents may change theirs between episodes.
type Policy interface {
	SelectAction(t timestep.TimeStep) environment.Action
}
