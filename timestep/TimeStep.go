// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"
)

// StepType denotes the type of step that a TimeStep can be, either a first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// TimeStep packages together a single timestep in an environment. For
// discrete tabular environments the observation is the state index
// itself.
type TimeStep struct {
	stepType StepType
	Reward   float64
	Discount float64
	State    int
	Number   int
}

func New(t StepType, r, d float64, state, n int) TimeStep {
	return TimeStep{t, r, d, state, n}
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.stepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.stepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.stepType == Last
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  State:  %v  |  " +
		"Step Number:  %v"

	return fmt.Sprintf(str, t.stepType, t.Reward, t.State, t.Number)
}
