// Package trackers implements Trackers, which track and save data
// generated while running episodes
package trackers

import (
	"encoding/gob"
	"log"
	"os"

	ts "sfneuman.com/frozenlake/timestep"
)

// Interface Tracker keeps track of episode data and saves the data
// after all episodes have finished. Track is called once per timestep
// and EndEpisode once per episode, whether the episode reached a
// terminal state or was cut off at the step limit.
type Tracker interface {
	Track(t ts.TimeStep)
	EndEpisode()
	Save()
}

// LoadData loads and returns the data saved by a Tracker
func LoadData(filename string) []float64 {
	// Open file
	file, err := os.Open(filename)
	if err != nil {
		log.Fatalf("could not open data file: %v", err)
	}
	defer file.Close()

	// Create the decoder and the variable to store the data in
	dec := gob.NewDecoder(file)
	var data []float64

	// Decode the data
	if err := dec.Decode(&data); err != nil {
		log.Fatalf("could not decode data: %v", err)
	}

	return data
}
