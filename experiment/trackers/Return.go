package trackers

import (
	"encoding/gob"
	"log"
	"os"

	ts "sfneuman.com/frozenlake/timestep"
)

// Return tracks and saves the episodic return over a sequence of
// episodes. When an environment returns a TimeStep, this Tracker
// extracts the reward and accumulates the return of the running
// episode; EndEpisode caches the accumulated return and starts a new
// one.
//
// Episodes cut off at a step limit are recorded with whatever return
// they accumulated before the cutoff.
type Return struct {
	currentReturn  float64
	episodeReturns []float64
	filename       string
}

// NewReturn creates and returns a new *Return Tracker
func NewReturn(filename string) Tracker {
	return &Return{filename: filename}
}

// Track accumulates the reward seen on a timestep into the return of
// the running episode
func (r *Return) Track(step ts.TimeStep) {
	r.currentReturn += step.Reward
}

// EndEpisode caches the return of the finished episode and begins
// accumulating the return of the next one
func (r *Return) EndEpisode() {
	r.episodeReturns = append(r.episodeReturns, r.currentReturn)
	r.currentReturn = 0.0
}

// Returns returns the episodic returns cached so far
func (r *Return) Returns() []float64 {
	return r.episodeReturns
}

// Save saves the data tracked by the Return Tracker to disk.
func (r *Return) Save() {
	// Open the file to save to
	file, err := os.Create(r.filename)
	if err != nil {
		log.Fatalf("could not open save file: %v", err)
	}
	defer file.Close()

	// Encode and save the file
	en := gob.NewEncoder(file)
	if err = en.Encode(r.episodeReturns); err != nil {
		log.Fatalf("could not encode episodic return data: %v", err)
	}
}
