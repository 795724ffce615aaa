// Package solver implements exact planning algorithms for tabular
// models
package solver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"sfneuman.com/frozenlake/agent/policy"
	"sfneuman.com/frozenlake/environment"
	"sfneuman.com/frozenlake/utils/floatutils"
)

// ValueIteration computes the optimal state-value function of a
// tabular model by repeated application of the Bellman optimality
// operator. Because the discount factor is below 1 and the model's
// transition distributions are proper, the operator is a contraction
// and the iteration converges to a unique fixed point.
type ValueIteration struct {
	discount      float64
	threshold     float64
	maxIterations int
}

// Result holds the outcome of a single Solve call: the value table,
// the greedy policy extracted from it, and how the iteration ended.
// When the iteration cap is hit before the values converge, Converged
// is false and Values holds the best table obtained so far.
//
// Deltas records the largest single-state value change of each sweep,
// mostly useful for diagnosing convergence behaviour.
type Result struct {
	Values     *mat.VecDense
	Policy     *policy.Greedy
	Converged  bool
	Iterations int
	Deltas     []float64
}

// New creates a new ValueIteration solver with discount factor
// discount, convergence threshold threshold, and an iteration cap of
// maxIterations sweeps.
func New(discount, threshold float64, maxIterations int) (*ValueIteration, error) {
	if discount <= 0 || discount >= 1 {
		return nil, fmt.Errorf("valueIteration: discount must be in "+
			"(0, 1), got %v", discount)
	}
	if threshold <= 0 {
		return nil, fmt.Errorf("valueIteration: threshold must be "+
			"positive, got %v", threshold)
	}
	if maxIterations <= 0 {
		return nil, fmt.Errorf("valueIteration: iteration cap must be "+
			"positive, got %v", maxIterations)
	}

	return &ValueIteration{discount, threshold, maxIterations}, nil
}

// Solve computes the optimal value function of the model and extracts
// its greedy policy.
//
// Each sweep computes every state's new value from the previous
// sweep's table only, the classic synchronous update, so the
// contraction convergence bound applies regardless of state order.
// Terminal states have no outgoing transitions and keep a value of 0
// throughout.
func (v *ValueIteration) Solve(m environment.Model) (*Result, error) {
	states := m.States()
	values := mat.NewVecDense(states, nil)

	converged := false
	iterations := 0
	deltas := make([]float64, 0, v.maxIterations)

	for iterations < v.maxIterations && !converged {
		updated := mat.NewVecDense(states, nil)
		delta := 0.0

		for s := 0; s < states; s++ {
			if m.Terminal(s) {
				continue
			}

			best, err := v.bestActionValue(m, s, values)
			if err != nil {
				return nil, fmt.Errorf("solve: %v", err)
			}

			updated.SetVec(s, best)
			delta = math.Max(delta, math.Abs(best-values.AtVec(s)))
		}

		values = updated
		iterations++
		deltas = append(deltas, delta)
		converged = delta < v.threshold
	}

	greedy, err := v.extractPolicy(m, values)
	if err != nil {
		return nil, fmt.Errorf("solve: %v", err)
	}

	return &Result{
		Values:     values,
		Policy:     greedy,
		Converged:  converged,
		Iterations: iterations,
		Deltas:     deltas,
	}, nil
}

// bestActionValue computes max over actions of the one-step lookahead
// value of a non-terminal state under the value table values.
func (v *ValueIteration) bestActionValue(m environment.Model, state int,
	values *mat.VecDense) (float64, error) {
	qValues, err := v.actionValues(m, state, values)
	if err != nil {
		return 0, err
	}
	return floatutils.Max(qValues...), nil
}

// actionValues computes the one-step lookahead value of every action
// in a state, in canonical action order.
func (v *ValueIteration) actionValues(m environment.Model, state int,
	values *mat.VecDense) ([]float64, error) {
	qValues := make([]float64, len(environment.Actions))

	for i, a := range environment.Actions {
		transitions, err := m.Transitions(state, a)
		if err != nil {
			return nil, err
		}

		q := 0.0
		for _, tr := range transitions {
			// Terminal successors keep a value of 0 in the table, so
			// no special casing is needed here
			q += tr.Prob * (tr.Reward + v.discount*values.AtVec(tr.Next))
		}
		qValues[i] = q
	}

	return qValues, nil
}

// extractPolicy builds the greedy policy of a value table. Ties
// between equally valued actions go to the first one in canonical
// action order, keeping extraction deterministic.
func (v *ValueIteration) extractPolicy(m environment.Model,
	values *mat.VecDense) (*policy.Greedy, error) {
	actions := make([]environment.Action, m.States())

	for s := range actions {
		if m.Terminal(s) {
			continue
		}

		qValues, err := v.actionValues(m, s, values)
		if err != nil {
			return nil, err
		}
		actions[s] = environment.Actions[floatutils.ArgMax(qValues)]
	}

	return policy.NewGreedy(actions), nil
}
