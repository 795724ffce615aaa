// Package frozenlake implements the slippery FrozenLake gridworld
//
// The agent walks a frozen grid from a start cell towards a goal cell.
// Stepping into a hole ends the episode with no reward; reaching the
// goal ends it with a reward of 1. The ice is slippery: an attempted
// move succeeds with probability 1/3 and slides to each of the two
// perpendicular directions with probability 1/3. Moves off the edge of
// the grid leave the agent in place.
package frozenlake

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
	env "sfneuman.com/frozenlake/environment"
	ts "sfneuman.com/frozenlake/timestep"
)

// ProbTolerance is the tolerance within which the outcome probabilities
// of every (state, action) pair must sum to 1
const ProbTolerance = 1e-9

// Lake is a FrozenLake environment over a fixed Layout. Lake
// implements both environment.Model, by enumerating its exact
// transition distributions, and environment.Environment, by sampling
// from them with a seeded random source.
//
// The layout and dynamics are immutable after construction; only the
// agent position and the random source mutate between steps.
type Lake struct {
	layout      *Layout
	slippery    bool
	discount    float64
	state       int
	currentStep ts.TimeStep
	source      rand.Source
}

// New creates a new slippery Lake on the given layout with discount
// factor discount, along with the first timestep of the first episode.
// The seed determines the successor sampled on every Step call.
func New(layout *Layout, discount float64, seed uint64) (*Lake, ts.TimeStep, error) {
	return newLake(layout, discount, seed, true)
}

// NewDeterministic creates a Lake without slipping: the intended action
// always succeeds. Useful as a planning sanity check, since optimal
// behaviour then follows the shortest safe path.
func NewDeterministic(layout *Layout, discount float64, seed uint64) (*Lake, ts.TimeStep, error) {
	return newLake(layout, discount, seed, false)
}

func newLake(layout *Layout, discount float64, seed uint64,
	slippery bool) (*Lake, ts.TimeStep, error) {
	if layout == nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newLake: no layout given")
	}
	if discount <= 0 || discount >= 1 {
		return nil, ts.TimeStep{}, fmt.Errorf("newLake: discount must be "+
			"in (0, 1), got %v", discount)
	}

	lake := &Lake{
		layout:   layout,
		slippery: slippery,
		discount: discount,
		state:    layout.start,
		source:   rand.NewSource(seed),
	}
	lake.checkDistributions()

	return lake, lake.Reset(), nil
}

// checkDistributions verifies that the outcome probabilities of every
// non-terminal (state, action) pair sum to 1. A mismatch is a defect
// in model construction and panics rather than being normalized away.
func (l *Lake) checkDistributions() {
	for s := 0; s < l.States(); s++ {
		if l.Terminal(s) {
			continue
		}
		for _, a := range env.Actions {
			transitions, err := l.Transitions(s, a)
			if err != nil {
				panic(fmt.Sprintf("checkDistributions: %v", err))
			}

			probs := make([]float64, len(transitions))
			for i, tr := range transitions {
				probs[i] = tr.Prob
			}
			if sum := floats.Sum(probs); math.Abs(sum-1.0) > ProbTolerance {
				panic(fmt.Sprintf("checkDistributions: probabilities for "+
					"state %d action %v sum to %v", s, a, sum))
			}
		}
	}
}

// States returns the total number of states
func (l *Lake) States() int {
	return l.layout.rows * l.layout.cols
}

// Dims gets the rows and columns of the Lake
func (l *Lake) Dims() (r, c int) {
	return l.layout.Dims()
}

// Layout returns the board the Lake was built from
func (l *Lake) Layout() *Layout {
	return l.layout
}

// Start returns the starting state of every episode
func (l *Lake) Start() int {
	return l.layout.start
}

// Terminal returns whether a state ends the episode
func (l *Lake) Terminal(state int) bool {
	cell := l.layout.cells[state]
	return cell == Hole || cell == Goal
}

// AtGoal returns whether a state is the goal
func (l *Lake) AtGoal(state int) bool {
	return l.layout.cells[state] == Goal
}

// Reward returns the reward for entering a state
func (l *Lake) Reward(state int) float64 {
	if l.AtGoal(state) {
		return 1.0
	}
	return 0.0
}

// Transitions enumerates the outcome distribution of taking action a in
// state. On slippery ice the intended direction and its two
// perpendiculars each occur with probability 1/3; without slipping the
// intended direction is the only outcome. Outcomes that resolve to the
// same successor, which happens against walls and in corners, are
// merged into a single entry with their probabilities summed.
//
// Terminal states have no outgoing transitions; querying one is a
// programming error and returns an error.
func (l *Lake) Transitions(state int, a env.Action) ([]env.Transition, error) {
	if state < 0 || state >= l.States() {
		return nil, fmt.Errorf("transitions: state %d out of range [0, %d)",
			state, l.States())
	}
	if l.Terminal(state) {
		return nil, fmt.Errorf("transitions: state %d is terminal and has "+
			"no outgoing transitions", state)
	}

	candidates := slipCandidates(a)
	if !l.slippery {
		candidates = candidates[:1]
	}
	prob := 1.0 / float64(len(candidates))

	transitions := make([]env.Transition, 0, len(candidates))
	for _, dir := range candidates {
		next := l.move(state, dir)

		// Merge outcomes that land on the same successor
		merged := false
		for i := range transitions {
			if transitions[i].Next == next {
				transitions[i].Prob += prob
				merged = true
				break
			}
		}
		if merged {
			continue
		}

		transitions = append(transitions, env.Transition{
			Prob:     prob,
			Next:     next,
			Reward:   l.Reward(next),
			Terminal: l.Terminal(next),
		})
	}

	return transitions, nil
}

// slipCandidates returns the directions an attempted action can
// resolve to: the intended direction first, then its two
// perpendiculars in canonical action order.
func slipCandidates(a env.Action) []env.Action {
	switch a {
	case env.Up, env.Down:
		return []env.Action{a, env.Left, env.Right}
	default:
		return []env.Action{a, env.Up, env.Down}
	}
}

// move applies a movement direction to a state. Moves off the grid
// edge leave the position unchanged rather than wrapping.
func (l *Lake) move(state int, dir env.Action) int {
	row := state / l.layout.cols
	col := state % l.layout.cols

	switch dir {
	case env.Up:
		if newRow := row - 1; newRow >= 0 {
			row = newRow
		}

	case env.Down:
		if newRow := row + 1; newRow < l.layout.rows {
			row = newRow
		}

	case env.Left:
		if newCol := col - 1; newCol >= 0 {
			col = newCol
		}

	case env.Right:
		if newCol := col + 1; newCol < l.layout.cols {
			col = newCol
		}
	}

	return row*l.layout.cols + col
}

// Reset resets the Lake to the start state between episodes
func (l *Lake) Reset() ts.TimeStep {
	l.state = l.layout.start
	startStep := ts.New(ts.First, 0, l.discount, l.state, 0)
	l.currentStep = startStep
	return startStep
}

// Step takes action a in the current state, sampling the successor
// from the transition distribution with the Lake's random source. The
// returned bool indicates whether the episode has ended; stepping a
// finished episode without a Reset is an error.
func (l *Lake) Step(a env.Action) (ts.TimeStep, bool, error) {
	if l.currentStep.Last() {
		return ts.TimeStep{}, true, fmt.Errorf("step: episode has ended, " +
			"call Reset before stepping again")
	}

	transitions, err := l.Transitions(l.state, a)
	if err != nil {
		return ts.TimeStep{}, false, fmt.Errorf("step: %v", err)
	}

	// Sample a successor from the outcome distribution
	probs := make([]float64, len(transitions))
	for i, tr := range transitions {
		probs[i] = tr.Prob
	}
	dist := distuv.NewCategorical(probs, l.source)
	outcome := transitions[int(dist.Rand())]

	l.state = outcome.Next
	stepType := ts.Mid
	if outcome.Terminal {
		stepType = ts.Last
	}

	step := ts.New(stepType, outcome.Reward, l.discount, outcome.Next,
		l.currentStep.Number+1)
	l.currentStep = step

	return step, stepType == ts.Last, nil
}

// LastTimeStep returns the last TimeStep the Lake produced
func (l *Lake) LastTimeStep() ts.TimeStep {
	return l.currentStep
}

func (l *Lake) String() string {
	str := "FrozenLake | At: %d  |  Bounds: (%d, %d)\n%v"
	return fmt.Sprintf(str, l.state, l.layout.rows, l.layout.cols, l.layout)
}
