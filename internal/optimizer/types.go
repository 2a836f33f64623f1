package optimizer

import "github.com/eugenenazirov/cargo-planner/internal/cargo"

// Strategy names the algorithm that produced a Plan.
type Strategy string

const (
	// StrategyExact plans are optimal: no valid assignment packs more.
	StrategyExact Strategy = "exact"
	// StrategySequential plans fill bins one at a time in cost order, each
	// pass optimal for its bin. The overall result may be sub-optimal.
	StrategySequential Strategy = "sequential"
	// StrategyGreedy plans used first-fit-decreasing for at least one bin.
	StrategyGreedy Strategy = "greedy"
)

// Bin is the free space left in one container after mandatory placement.
type Bin struct {
	Role      cargo.Role
	Remaining int
	Cost      int
}

// Placement assigns a single item to a container role.
type Placement struct {
	Item cargo.Item
	Role cargo.Role
}

// Plan is the optimizer output. Every input item appears exactly once, either
// in Placements or in Rejected, both ordered by item index.
type Plan struct {
	Strategy   Strategy
	Placements []Placement
	Rejected   []cargo.Item
	PackedSize int
}

// Load returns the total size the plan assigns to role.
func (p Plan) Load(role cargo.Role) int {
	total := 0
	for _, pl := range p.Placements {
		if pl.Role == role {
			total += pl.Item.Size
		}
	}
	return total
}

// Optimizer describes the behaviour required from a free-choice item planner.
type Optimizer interface {
	Optimize(items []cargo.Item, bins []Bin) (Plan, error)
}
