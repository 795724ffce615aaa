package frozenlake_test

import (
	"math"
	"testing"

	env "sfneuman.com/frozenlake/environment"
	"sfneuman.com/frozenlake/environment/frozenlake"
)

func TestParseLayoutInvalid(t *testing.T) {
	layouts := map[string][]string{
		"no rows":         {},
		"empty first row": {""},
		"ragged rows":     {"SFFF", "FFG"},
		"no start":        {"FFFF", "FFFG"},
		"two starts":      {"SFFF", "SFFG"},
		"no goal":         {"SFFF", "FFFF"},
		"unknown cell":    {"SFXF", "FFFG"},
	}

	for name, rows := range layouts {
		if _, err := frozenlake.ParseLayout(rows); err == nil {
			t.Errorf("%v: expected an error, got none", name)
		}
	}
}

func TestParseLayout(t *testing.T) {
	layout, err := frozenlake.ParseLayout([]string{
		"SFH",
		"FFG",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if r, c := layout.Dims(); r != 2 || c != 3 {
		t.Errorf("dims: expected (2, 3), got (%d, %d)", r, c)
	}
	if cell := layout.At(0, 0); cell != frozenlake.Start {
		t.Errorf("at (0, 0): expected Start, got %v", cell)
	}
	if cell := layout.At(0, 2); cell != frozenlake.Hole {
		t.Errorf("at (0, 2): expected Hole, got %v", cell)
	}
	if cell := layout.At(1, 2); cell != frozenlake.Goal {
		t.Errorf("at (1, 2): expected Goal, got %v", cell)
	}
}

func TestTransitionProbabilitiesSumToOne(t *testing.T) {
	layouts := map[string]*frozenlake.Layout{
		"4x4": frozenlake.Layout4x4,
		"8x8": frozenlake.Layout8x8,
	}

	for name, layout := range layouts {
		lake, _, err := frozenlake.New(layout, 0.99, 13)
		if err != nil {
			t.Fatalf("%v: new: %v", name, err)
		}

		for s := 0; s < lake.States(); s++ {
			if lake.Terminal(s) {
				continue
			}
			for _, a := range env.Actions {
				transitions, err := lake.Transitions(s, a)
				if err != nil {
					t.Fatalf("%v: transitions(%d, %v): %v", name, s, a, err)
				}

				sum := 0.0
				seen := make(map[int]bool)
				for _, tr := range transitions {
					sum += tr.Prob
					if seen[tr.Next] {
						t.Errorf("%v: transitions(%d, %v): successor %d "+
							"appears more than once", name, s, a, tr.Next)
					}
					seen[tr.Next] = true
				}
				if math.Abs(sum-1.0) > frozenlake.ProbTolerance {
					t.Errorf("%v: transitions(%d, %v): probabilities sum "+
						"to %v", name, s, a, sum)
				}
			}
		}
	}
}

func TestTransitionsBoundaryClamp(t *testing.T) {
	lake, _, err := frozenlake.New(frozenlake.Layout4x4, 0.99, 13)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	// Up from state 1 on the top row: the intended branch clamps back
	// to state 1
	transitions, err := lake.Transitions(1, env.Up)
	if err != nil {
		t.Fatalf("transitions: %v", err)
	}

	var self *env.Transition
	for i := range transitions {
		if transitions[i].Next == 1 {
			self = &transitions[i]
		}
	}
	if self == nil {
		t.Fatal("up from the top row should include a self-transition")
	}
	if self.Prob < 1.0/3.0-frozenlake.ProbTolerance {
		t.Errorf("self-transition probability %v below 1/3", self.Prob)
	}
	if self.Terminal || self.Reward != 0 {
		t.Errorf("self-transition should be non-terminal with 0 reward, "+
			"got %+v", *self)
	}
}

func TestTransitionsCornerMerge(t *testing.T) {
	lake, _, err := frozenlake.New(frozenlake.Layout4x4, 0.99, 13)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	// Up in the top-left corner: the intended direction and the Left
	// slip both clamp to state 0 and must be merged into one entry
	transitions, err := lake.Transitions(0, env.Up)
	if err != nil {
		t.Fatalf("transitions: %v", err)
	}

	if len(transitions) != 2 {
		t.Fatalf("expected 2 merged entries, got %d", len(transitions))
	}

	for _, tr := range transitions {
		switch tr.Next {
		case 0:
			if math.Abs(tr.Prob-2.0/3.0) > frozenlake.ProbTolerance {
				t.Errorf("merged self-transition: expected prob 2/3, "+
					"got %v", tr.Prob)
			}
		case 1:
			if math.Abs(tr.Prob-1.0/3.0) > frozenlake.ProbTolerance {
				t.Errorf("slip right: expected prob 1/3, got %v", tr.Prob)
			}
		default:
			t.Errorf("unexpected successor %d", tr.Next)
		}
	}
}

func TestTransitionsIntoTerminals(t *testing.T) {
	lake, _, err := frozenlake.New(frozenlake.Layout4x4, 0.99, 13)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	// Right from state 14 can reach the goal at state 15
	transitions, err := lake.Transitions(14, env.Right)
	if err != nil {
		t.Fatalf("transitions: %v", err)
	}

	foundGoal := false
	for _, tr := range transitions {
		if tr.Next == 15 {
			foundGoal = true
			if !tr.Terminal || tr.Reward != 1.0 {
				t.Errorf("goal entry: expected terminal with reward 1, "+
					"got %+v", tr)
			}
		}
	}
	if !foundGoal {
		t.Error("right from state 14 should reach the goal")
	}

	// Left from state 13 can slide into the hole at state 12
	transitions, err = lake.Transitions(13, env.Left)
	if err != nil {
		t.Fatalf("transitions: %v", err)
	}

	foundHole := false
	for _, tr := range transitions {
		if tr.Next == 12 {
			foundHole = true
			if !tr.Terminal || tr.Reward != 0.0 {
				t.Errorf("hole entry: expected terminal with reward 0, "+
					"got %+v", tr)
			}
		}
	}
	if !foundHole {
		t.Error("left from state 13 should reach the hole")
	}
}

func TestTransitionsTerminalState(t *testing.T) {
	lake, _, err := frozenlake.New(frozenlake.Layout4x4, 0.99, 13)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	// State 5 is a hole in Layout4x4
	if _, err := lake.Transitions(5, env.Down); err == nil {
		t.Error("querying a terminal state should be an error")
	}
	if _, err := lake.Transitions(-1, env.Down); err == nil {
		t.Error("querying a negative state should be an error")
	}
	if _, err := lake.Transitions(lake.States(), env.Down); err == nil {
		t.Error("querying an out-of-range state should be an error")
	}
}

func TestDeterministicTransitions(t *testing.T) {
	lake, _, err := frozenlake.NewDeterministic(frozenlake.Layout4x4, 0.9, 13)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	transitions, err := lake.Transitions(0, env.Right)
	if err != nil {
		t.Fatalf("transitions: %v", err)
	}

	if len(transitions) != 1 {
		t.Fatalf("expected a single outcome, got %d", len(transitions))
	}
	if transitions[0].Next != 1 || transitions[0].Prob != 1.0 {
		t.Errorf("expected a sure move to state 1, got %+v", transitions[0])
	}
}

func TestStepSeededReproducibility(t *testing.T) {
	first, _, err := frozenlake.New(frozenlake.Layout4x4, 0.99, 42)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	second, _, err := frozenlake.New(frozenlake.Layout4x4, 0.99, 42)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	for i := 0; i < 200; i++ {
		action := env.Actions[i%len(env.Actions)]

		stepA, doneA, errA := first.Step(action)
		stepB, doneB, errB := second.Step(action)
		if errA != nil || errB != nil {
			t.Fatalf("step %d: %v, %v", i, errA, errB)
		}

		if stepA.State != stepB.State || doneA != doneB {
			t.Fatalf("step %d: identically seeded lakes diverged: "+
				"%v vs %v", i, stepA, stepB)
		}

		if doneA {
			first.Reset()
			second.Reset()
		}
	}
}

func TestStepAfterEpisodeEnd(t *testing.T) {
	lake, _, err := frozenlake.New(frozenlake.Layout4x4, 0.99, 42)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	done := false
	for !done {
		_, done, err = lake.Step(env.Down)
		if err != nil {
			t.Fatalf("step: %v", err)
		}
	}

	if _, _, err := lake.Step(env.Down); err == nil {
		t.Error("stepping a finished episode should be an error")
	}

	step := lake.Reset()
	if step.State != lake.Start() || !step.First() {
		t.Errorf("reset should restart at the start state, got %v", step)
	}
}
