// Package experiment implements functionality for running episodes of
// an agent in an environment
package experiment

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
	"sfneuman.com/frozenlake/agent"
	env "sfneuman.com/frozenlake/environment"
	"sfneuman.com/frozenlake/experiment/trackers"
	ts "sfneuman.com/frozenlake/timestep"
	"sfneuman.com/frozenlake/utils/progressbar"
)

// Evaluation measures the empirical performance of a fixed policy by
// running independent episodes against an environment's true
// stochastic dynamics. Each episode starts from the environment's
// start state and follows the policy until a terminal state is
// reached or the step limit is exceeded; a cut-off episode counts as a
// failure.
//
// Evaluation is deterministic given an environment with a seeded
// random source. Each TimeStep is forwarded to the registered
// Trackers, which decide what data to cache and save.
type Evaluation struct {
	env.Environment
	agent.Policy
	episodes int
	maxSteps int
	trackers []trackers.Tracker
	progress bool
}

// NewEvaluation creates a new Evaluation of a policy in an
// environment. The episodes parameter determines how many independent
// episodes are run, maxSteps bounds the length of each, and t is a
// slice of trackers.Tracker which determine what data is saved.
func NewEvaluation(e env.Environment, p agent.Policy, episodes,
	maxSteps int, t ...trackers.Tracker) (*Evaluation, error) {
	if episodes <= 0 {
		return nil, fmt.Errorf("newEvaluation: episodes must be positive, "+
			"got %d", episodes)
	}
	if maxSteps <= 0 {
		return nil, fmt.Errorf("newEvaluation: maxSteps must be positive, "+
			"got %d", maxSteps)
	}

	return &Evaluation{e, p, episodes, maxSteps, t, false}, nil
}

// Register registers a trackers.Tracker with an Evaluation so that
// data generated during the evaluation can be tracked and saved
func (e *Evaluation) Register(t trackers.Tracker) {
	e.trackers = append(e.trackers, t)
}

// DisplayProgress makes Run display a progress bar over episodes
func (e *Evaluation) DisplayProgress() {
	e.progress = true
}

// RunEpisode runs a single episode and returns its return
func (e *Evaluation) RunEpisode() (float64, error) {
	step := e.Environment.Reset()
	e.track(step)

	episodeReturn := 0.0
	for !step.Last() && step.Number < e.maxSteps {
		action := e.Policy.SelectAction(step)

		var err error
		step, _, err = e.Environment.Step(action)
		if err != nil {
			return 0, fmt.Errorf("runEpisode: %v", err)
		}

		episodeReturn += step.Reward
		e.track(step)
	}

	e.endEpisode()
	return episodeReturn, nil
}

// Run runs all episodes of the Evaluation and returns the mean
// episodic return. For goal-reaching tasks that pay 1 on success and 0
// otherwise this is the empirical success rate.
func (e *Evaluation) Run() (float64, error) {
	var bar *progressbar.ManualProgressBar
	if e.progress {
		bar = progressbar.NewManualProgressBar(40, e.episodes)
	}

	returns := make([]float64, e.episodes)
	for i := range returns {
		episodeReturn, err := e.RunEpisode()
		if err != nil {
			return 0, fmt.Errorf("run: episode %d: %v", i, err)
		}
		returns[i] = episodeReturn

		if bar != nil {
			bar.Increment()
			bar.Display()
		}
	}

	return stat.Mean(returns, nil), nil
}

// Save saves all the data cached by the Trackers to disk
func (e *Evaluation) Save() {
	for _, tracker := range e.trackers {
		tracker.Save()
	}
}

// track tracks the current timestep by caching its data in each
// Tracker
func (e *Evaluation) track(t ts.TimeStep) {
	for _, tracker := range e.trackers {
		tracker.Track(t)
	}
}

// endEpisode notifies each Tracker that the running episode finished
func (e *Evaluation) endEpisode() {
	for _, tracker := range e.trackers {
		tracker.EndEpisode()
	}
}
