package optimizer

import (
	"sort"

	"github.com/eugenenazirov/cargo-planner/internal/cargo"
)

// solveSequential fills the bins one at a time in cost order. Each pass solves
// a single-bin subset-sum exactly when its table fits the state budget and
// falls back to first-fit-decreasing otherwise.
func (o *dpOptimizer) solveSequential(items []cargo.Item, bins []Bin, rejected []cargo.Item) ([]Placement, []cargo.Item, Strategy) {
	strategy := StrategySequential
	remaining := items
	placements := make([]Placement, 0, len(items))

	for _, b := range bins {
		eligible := make([]cargo.Item, 0, len(remaining))
		var skipped []cargo.Item
		for _, item := range remaining {
			if b.Role.Accepts(item.Kind) && item.Size <= b.Remaining {
				eligible = append(eligible, item)
			} else {
				skipped = append(skipped, item)
			}
		}

		capacity := acceptedSizeUpTo(eligible, b.Role, b.Remaining)

		var chosen, left []cargo.Item
		if capacity < o.maxStates && len(eligible)+1 <= o.maxStates/(capacity+1) {
			chosen, left = subsetSum(eligible, capacity)
		} else {
			chosen, left = firstFitDecreasing(eligible, capacity)
			strategy = StrategyGreedy
		}

		for _, item := range chosen {
			placements = append(placements, Placement{Item: item, Role: b.Role})
		}
		remaining = append(skipped, left...)
		sort.SliceStable(remaining, func(i, j int) bool {
			return remaining[i].Index < remaining[j].Index
		})
	}

	return placements, append(rejected, remaining...), strategy
}

// subsetSum picks the subset of items with the largest total size not above
// capacity. Earlier items are preferred when several subsets tie.
func subsetSum(items []cargo.Item, capacity int) (chosen, left []cargo.Item) {
	n := len(items)
	layers := make([]bitset, n+1)
	layers[n] = newBitset(capacity + 1)
	layers[n].set(0)

	for i := n - 1; i >= 0; i-- {
		next := layers[i+1]
		cur := next.clone()
		size := items[i].Size
		for load := 0; load <= capacity-size; load++ {
			if next.has(load) {
				cur.set(load + size)
			}
		}
		layers[i] = cur
	}

	target := 0
	for load := capacity; load >= 0; load-- {
		if layers[0].has(load) {
			target = load
			break
		}
	}

	for i, item := range items {
		if item.Size <= target && layers[i+1].has(target-item.Size) {
			chosen = append(chosen, item)
			target -= item.Size
			continue
		}
		left = append(left, item)
	}
	return chosen, left
}

// firstFitDecreasing takes the largest items first while they fit.
func firstFitDecreasing(items []cargo.Item, capacity int) (chosen, left []cargo.Item) {
	sorted := make([]cargo.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Size > sorted[j].Size
	})

	free := capacity
	for _, item := range sorted {
		if item.Size <= free {
			chosen = append(chosen, item)
			free -= item.Size
			continue
		}
		left = append(left, item)
	}
	return chosen, left
}
