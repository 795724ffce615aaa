// Package environment outlines the interfaces and structs needed to implement
// concrete tabular environments
package environment

import (
	"sfneuman.com/frozenlake/timestep"
)

// Action is one of the four grid movement directions
type Action int

const (
	Up Action = iota
	Down
	Left
	Right
)

// Actions lists every action in its canonical order. Algorithms that
// break ties between equally valued actions do so by taking the first
// maximizer in this order.
var Actions = []Action{Up, Down, Left, Right}

func (a Action) String() string {
	switch a {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	}
	return "Unknown"
}

// Transition describes one possible outcome of taking an action in a
// state: the probability of the outcome, the successor state, the
// immediate reward, and whether the successor ends the episode.
//
// For a fixed (state, action) pair the probabilities of all associated
// Transitions sum to 1 and each successor state appears at most once.
type Transition struct {
	Prob     float64
	Next     int
	Reward   float64
	Terminal bool
}

// Starter provides the starting state for episodes in an environment
type Starter interface {
	Start() int
}

// Task implements the reward scheme for entering states in some
// environment
type Task interface {
	Reward(state int) float64
	AtGoal(state int) bool
}

// Model is an environment whose dynamics can be enumerated exactly.
// Planning algorithms work on the Model interface alone and never need
// to sample.
type Model interface {
	Starter

	// States returns the total number of states
	States() int

	// Terminal returns whether a state ends the episode
	Terminal(state int) bool

	// Transitions enumerates the outcome distribution of taking an
	// action in a state. Terminal states have no outgoing transitions,
	// and querying one is an error.
	Transitions(state int, action Action) ([]Transition, error)
}

// Environment implements a simulated environment which an agent can
// interact with by sampling
type Environment interface {
	Task
	Starter
	Reset() timestep.TimeStep // Resets between episodes
	Step(action Action) (timestep.TimeStep, bool, error)
	LastTimeStep() timestep.TimeStep
}
