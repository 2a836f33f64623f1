// Package routing places items whose kind fixes their destination and sets
// the remaining items aside for the optimizer.
package routing

import (
	"errors"
	"fmt"

	"github.com/eugenenazirov/cargo-planner/internal/cargo"
)

// ErrMandatoryCapacityExceeded is returned when a flammable or ice item does
// not fit into the only container allowed to carry it.
var ErrMandatoryCapacityExceeded = errors.New("mandatory placement exceeds container capacity")

// State is the outcome of routing: the fleet with mandatory items loaded and
// the normal items still waiting for a container, in input order.
type State struct {
	Fleet     *cargo.Fleet
	Pending   []cargo.Item
	Mandatory []cargo.Item
}

// Route loads every flammable item into the protective container and every ice
// item into the refrigerated container. The first item that does not fit
// aborts routing.
func Route(items []cargo.Item, fleet *cargo.Fleet) (State, error) {
	if fleet == nil {
		return State{}, fmt.Errorf("%w: fleet is required", cargo.ErrStructuralInput)
	}

	state := State{
		Fleet:   fleet,
		Pending: make([]cargo.Item, 0, len(items)),
	}

	for _, item := range items {
		dest, fixed := item.Kind.Destination()
		if !fixed {
			state.Pending = append(state.Pending, item)
			continue
		}

		if err := fleet.Container(dest).Put(item); err != nil {
			if errors.Is(err, cargo.ErrCapacityExceeded) {
				return State{}, fmt.Errorf("%w: %w", ErrMandatoryCapacityExceeded, err)
			}
			return State{}, err
		}
		state.Mandatory = append(state.Mandatory, item)
	}

	return state, nil
}
