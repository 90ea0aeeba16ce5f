// Package strategies is the registry of polymorphic strategy
// implementations. The variant to run is selected by name at configuration
// time; the crossover reference strategy is the default
package strategies

import (
	"fmt"
	"strings"

	"github.com/wattsup/stonks/strategies/crossover"
)

// LoadStrategyByName returns a fresh instance of the named strategy so
// concurrent simulations never share parameter state
func LoadStrategyByName(name string) (Handler, error) {
	strats := GetStrategies()
	for i := range strats {
		if !strings.EqualFold(name, strats[i].Name()) {
			continue
		}
		return strats[i], nil
	}
	return nil, fmt.Errorf("%w '%v'", ErrStrategyNotFound, name)
}

// GetStrategies returns a new instance of every registered strategy
func GetStrategies() []Handler {
	return []Handler{
		crossover.New(),
	}
}
