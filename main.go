package main

import (
	"fmt"
	"log"

	env "sfneuman.com/frozenlake/environment"
	"sfneuman.com/frozenlake/environment/frozenlake"
	"sfneuman.com/frozenlake/experiment"
	"sfneuman.com/frozenlake/experiment/trackers"
	"sfneuman.com/frozenlake/solver"
)

func main() {
	var seed uint64 = 192382

	// Create the environment
	lake, _, err := frozenlake.New(frozenlake.Layout4x4, 0.99, seed)
	if err != nil {
		log.Fatalf("could not create environment: %v", err)
	}

	// Solve it exactly
	vi, err := solver.New(0.99, 1e-8, 1_000)
	if err != nil {
		log.Fatalf("could not create solver: %v", err)
	}

	result, err := vi.Solve(lake)
	if err != nil {
		log.Fatalf("could not solve environment: %v", err)
	}
	fmt.Printf("Converged: %v  |  Iterations: %d\n", result.Converged,
		result.Iterations)
	printBoard(lake, result)

	// Evaluate the greedy policy against the true dynamics
	tracker := trackers.NewReturn("./returns.bin")
	eval, err := experiment.NewEvaluation(lake, result.Policy, 10_000, 250,
		tracker)
	if err != nil {
		log.Fatalf("could not create evaluation: %v", err)
	}
	eval.DisplayProgress()

	successRate, err := eval.Run()
	if err != nil {
		log.Fatalf("could not run evaluation: %v", err)
	}
	eval.Save()
	fmt.Printf("\nSuccess rate: %.3f\n", successRate)

	// Save a heat map of the converged value function
	rows, cols := lake.Dims()
	grid, err := solver.NewValueGrid(result.Values, rows, cols)
	if err != nil {
		log.Fatalf("could not create value grid: %v", err)
	}
	if err := grid.SaveHeatmap("State values", "./values.png"); err != nil {
		log.Fatalf("could not save heat map: %v", err)
	}

	data := trackers.LoadData("./returns.bin")
	fmt.Println(data[len(data)-10:])
}

// printBoard prints the state values and greedy actions over the board
func printBoard(lake *frozenlake.Lake, result *solver.Result) {
	arrows := map[env.Action]string{
		env.Up:    "↑",
		env.Down:  "↓",
		env.Left:  "←",
		env.Right: "→",
	}

	rows, cols := lake.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			state := i*cols + j
			if lake.Terminal(state) {
				fmt.Printf("  %v    ", lake.Layout().At(i, j))
				continue
			}
			fmt.Printf("%v %.3f ", arrows[result.Policy.Action(state)],
				result.Values.AtVec(state))
		}
		fmt.Println()
	}
}
