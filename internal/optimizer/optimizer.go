package optimizer

import (
	"fmt"
	"math"
	"sort"

	"github.com/eugenenazirov/cargo-planner/internal/cargo"
)

// DefaultMaxStates bounds the reachability tables (in bits) the exact
// strategy may allocate before falling back to sequential passes.
const DefaultMaxStates = 1 << 27

const binCount = len(cargo.Roles)

type dpOptimizer struct {
	maxStates int
}

// Option configures the optimizer.
type Option func(*dpOptimizer)

// WithMaxStates overrides the state budget. Non-positive values keep the default.
func WithMaxStates(n int) Option {
	return func(o *dpOptimizer) {
		if n > 0 {
			o.maxStates = n
		}
	}
}

// New creates an Optimizer based on dynamic programming over the bins'
// remaining capacities.
func New(opts ...Option) Optimizer {
	o := &dpOptimizer{maxStates: DefaultMaxStates}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *dpOptimizer) Optimize(items []cargo.Item, bins []Bin) (Plan, error) {
	ordered, err := normalizeBins(bins)
	if err != nil {
		return Plan{}, err
	}
	for _, item := range items {
		if item.Size <= 0 {
			return Plan{}, fmt.Errorf("%w: item %q has size %d", ErrInvalidItems, item.Name, item.Size)
		}
	}

	candidates := make([]cargo.Item, 0, len(items))
	var rejected []cargo.Item
	for _, item := range items {
		if fitsAnyBin(item, ordered) {
			candidates = append(candidates, item)
		} else {
			rejected = append(rejected, item)
		}
	}

	caps := clampCapacities(ordered, candidates)

	var (
		placements []Placement
		strategy   Strategy
	)
	if cells, ok := latticeCells(caps, len(candidates)+1, o.maxStates); ok {
		placements, rejected, err = solveExact(candidates, ordered, caps, cells, rejected)
		if err != nil {
			return Plan{}, err
		}
		strategy = StrategyExact
	} else {
		placements, rejected, strategy = o.solveSequential(candidates, ordered, rejected)
	}

	return buildPlan(strategy, placements, rejected), nil
}

// normalizeBins validates bins and orders them by ascending cost, then by role.
func normalizeBins(bins []Bin) ([]Bin, error) {
	if len(bins) != binCount {
		return nil, fmt.Errorf("%w: got %d bins", ErrInvalidBins, len(bins))
	}

	var seen [binCount]bool
	for _, b := range bins {
		if b.Remaining < 0 || b.Cost < 0 {
			return nil, fmt.Errorf("%w: %s bin has remaining %d cost %d", ErrInvalidBins, b.Role, b.Remaining, b.Cost)
		}
		if int(b.Role) < 0 || int(b.Role) >= binCount || seen[b.Role] {
			return nil, fmt.Errorf("%w: unexpected role %s", ErrInvalidBins, b.Role)
		}
		seen[b.Role] = true
	}

	ordered := make([]Bin, len(bins))
	copy(ordered, bins)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Cost != ordered[j].Cost {
			return ordered[i].Cost < ordered[j].Cost
		}
		return ordered[i].Role < ordered[j].Role
	})
	return ordered, nil
}

func fitsAnyBin(item cargo.Item, bins []Bin) bool {
	for _, b := range bins {
		if b.Role.Accepts(item.Kind) && item.Size <= b.Remaining {
			return true
		}
	}
	return false
}

// clampCapacities caps each bin at the total size of the candidates it
// accepts; no assignment can use more than that, so reachability is unchanged.
func clampCapacities(bins []Bin, items []cargo.Item) [binCount]int {
	var caps [binCount]int
	for k, b := range bins {
		caps[k] = acceptedSizeUpTo(items, b.Role, b.Remaining)
	}
	return caps
}

// acceptedSizeUpTo sums the sizes of items role accepts, saturating at limit.
func acceptedSizeUpTo(items []cargo.Item, role cargo.Role, limit int) int {
	total := 0
	for _, item := range items {
		if !role.Accepts(item.Kind) {
			continue
		}
		if item.Size >= limit-total {
			return limit
		}
		total += item.Size
	}
	return total
}

// latticeCells returns the number of states per layer when layers*states fits
// within limit.
func latticeCells(caps [binCount]int, layers, limit int) (int, bool) {
	cells := 1
	for _, c := range caps {
		if c < 0 || c >= math.MaxInt/cells {
			return 0, false
		}
		cells *= c + 1
	}
	if layers <= 0 || cells > limit/layers {
		return 0, false
	}
	return cells, true
}

// solveExact computes, for every item suffix, the set of load vectors it can
// produce, picks the best reachable vector for the full set, then walks the
// items forward choosing the cheapest bin consistent with that vector.
func solveExact(items []cargo.Item, bins []Bin, caps [binCount]int, cells int, rejected []cargo.Item) ([]Placement, []cargo.Item, error) {
	n := len(items)
	dims := [binCount]int{caps[0] + 1, caps[1] + 1, caps[2] + 1}
	stride := [binCount]int{dims[1] * dims[2], dims[2], 1}

	accepts := make([][binCount]bool, n)
	for i, item := range items {
		for k, b := range bins {
			accepts[i][k] = b.Role.Accepts(item.Kind)
		}
	}

	layers := make([]bitset, n+1)
	layers[n] = newBitset(cells)
	layers[n].set(0)

	for i := n - 1; i >= 0; i-- {
		next := layers[i+1]
		cur := next.clone()
		size := items[i].Size

		for a := 0; a < dims[0]; a++ {
			for b := 0; b < dims[1]; b++ {
				base := a*stride[0] + b*stride[1]
				for c := 0; c < dims[2]; c++ {
					idx := base + c
					if !next.has(idx) {
						continue
					}
					load := [binCount]int{a, b, c}
					for k := 0; k < binCount; k++ {
						if accepts[i][k] && size <= caps[k]-load[k] {
							cur.set(idx + size*stride[k])
						}
					}
				}
			}
		}
		layers[i] = cur
	}

	target := bestLoad(layers[0], dims, stride, bins)

	placements := make([]Placement, 0, n)
	for i, item := range items {
		next := layers[i+1]
		placed := false
		for k := 0; k < binCount; k++ {
			if !accepts[i][k] || target[k] < item.Size {
				continue
			}
			candidate := target
			candidate[k] -= item.Size
			if next.has(indexOf(candidate, stride)) {
				target = candidate
				placements = append(placements, Placement{Item: item, Role: bins[k].Role})
				placed = true
				break
			}
		}
		if placed {
			continue
		}
		if !next.has(indexOf(target, stride)) {
			return nil, nil, fmt.Errorf("optimizer: inconsistent reachability table at item %d", item.Index)
		}
		rejected = append(rejected, item)
	}

	return placements, rejected, nil
}

// bestLoad selects the reachable load vector with the largest total, then the
// lowest cost-weighted load, then the heaviest use of cheaper bins.
func bestLoad(reach bitset, dims, stride [binCount]int, bins []Bin) [binCount]int {
	var best [binCount]int
	bestTotal, bestCost := 0, 0

	for a := 0; a < dims[0]; a++ {
		for b := 0; b < dims[1]; b++ {
			for c := 0; c < dims[2]; c++ {
				load := [binCount]int{a, b, c}
				if !reach.has(indexOf(load, stride)) {
					continue
				}
				total := a + b + c
				cost := a*bins[0].Cost + b*bins[1].Cost + c*bins[2].Cost
				switch {
				case total > bestTotal,
					total == bestTotal && cost < bestCost,
					total == bestTotal && cost == bestCost && preferLoad(load, best):
					best, bestTotal, bestCost = load, total, cost
				}
			}
		}
	}
	return best
}

func preferLoad(candidate, current [binCount]int) bool {
	for k := 0; k < binCount; k++ {
		if candidate[k] != current[k] {
			return candidate[k] > current[k]
		}
	}
	return false
}

func indexOf(load, stride [binCount]int) int {
	return load[0]*stride[0] + load[1]*stride[1] + load[2]*stride[2]
}

func buildPlan(strategy Strategy, placements []Placement, rejected []cargo.Item) Plan {
	sort.SliceStable(placements, func(i, j int) bool {
		return placements[i].Item.Index < placements[j].Item.Index
	})
	sort.SliceStable(rejected, func(i, j int) bool {
		return rejected[i].Index < rejected[j].Index
	})

	packed := 0
	for _, pl := range placements {
		if pl.Item.Size > math.MaxInt-packed {
			packed = math.MaxInt
			break
		}
		packed += pl.Item.Size
	}
	if placements == nil {
		placements = []Placement{}
	}
	if rejected == nil {
		rejected = []cargo.Item{}
	}

	return Plan{
		Strategy:   strategy,
		Placements: placements,
		Rejected:   rejected,
		PackedSize: packed,
	}
}
