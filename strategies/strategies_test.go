package strategies

import (
	"errors"
	"testing"

	"github.com/wattsup/stonks/strategies/base"
)

func TestLoadStrategyByName(t *testing.T) {
	t.Parallel()
	_, err := LoadStrategyByName("rocket emoji")
	if !errors.Is(err, ErrStrategyNotFound) {
		t.Errorf("received: %v, expected: %v", err, ErrStrategyNotFound)
	}

	s, err := LoadStrategyByName("CrossOver")
	if err != nil {
		t.Fatalf("received: %v, expected: %v", err, nil)
	}
	if s.Name() != "crossover" {
		t.Errorf("received: %v, expected: %v", s.Name(), "crossover")
	}

	// each load returns a fresh instance with untouched parameters
	if err = s.SetParams(base.Params{"long": 7}); err != nil {
		t.Fatalf("received: %v, expected: %v", err, nil)
	}
	fresh, err := LoadStrategyByName("crossover")
	if err != nil {
		t.Fatalf("received: %v, expected: %v", err, nil)
	}
	if fresh.Params()["long"] != 200 {
		t.Errorf("received: %v, expected: %v", fresh.Params()["long"], 200)
	}
}

func TestGetStrategies(t *testing.T) {
	t.Parallel()
	strats := GetStrategies()
	if len(strats) == 0 {
		t.Fatal("received: none, expected at least one registered strategy")
	}
	for i := range strats {
		if strats[i].Name() == "" {
			t.Error("received an unnamed strategy")
		}
		if strats[i].Description() == "" {
			t.Errorf("received no description for %v", strats[i].Name())
		}
	}
}
