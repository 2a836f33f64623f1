// Package report aggregates a finished loading run into a per-container and
// per-item summary, and renders it as text, JSON or YAML.
package report

import (
	"sort"

	"github.com/eugenenazirov/cargo-planner/internal/cargo"
	"github.com/eugenenazirov/cargo-planner/internal/optimizer"
)

// Unplaced is the assignment recorded for items no container could take.
const Unplaced = "unplaced"

// Report is the final state of a loading run.
type Report struct {
	Containers []ContainerSummary `json:"containers" yaml:"containers"`
	Items      []ItemRecord       `json:"items" yaml:"items"`
	Totals     Totals             `json:"totals" yaml:"totals"`
}

// ContainerSummary describes one container after loading.
type ContainerSummary struct {
	Role      cargo.Role `json:"role" yaml:"role"`
	Capacity  int        `json:"capacity" yaml:"capacity"`
	Used      int        `json:"used" yaml:"used"`
	Remaining int        `json:"remaining" yaml:"remaining"`
	Cost      int        `json:"cost" yaml:"cost"`
	Items     []string   `json:"items" yaml:"items"`
}

// ItemRecord describes where a single item ended up.
type ItemRecord struct {
	Name       string     `json:"name" yaml:"name"`
	Kind       cargo.Kind `json:"kind" yaml:"kind"`
	Size       int        `json:"size" yaml:"size"`
	AssignedTo string     `json:"assignedTo" yaml:"assigned_to"`
}

// Totals aggregates the run.
type Totals struct {
	Items          int                `json:"items" yaml:"items"`
	Placed         int                `json:"placed" yaml:"placed"`
	Unplaced       int                `json:"unplaced" yaml:"unplaced"`
	PackedSize     int                `json:"packedSize" yaml:"packed_size"`
	UnplacedSize   int                `json:"unplacedSize" yaml:"unplaced_size"`
	ContainersUsed int                `json:"containersUsed" yaml:"containers_used"`
	UsageCost      int                `json:"usageCost" yaml:"usage_cost"`
	Strategy       optimizer.Strategy `json:"strategy" yaml:"strategy"`
}

// Build summarises fleet together with the plan's rejected items. Placed
// records come from the containers, which also hold the mandatory items the
// plan never sees, so the plan must be committed to fleet first; uncommitted
// placements are not reported. Items are listed in input order.
func Build(fleet *cargo.Fleet, plan optimizer.Plan) Report {
	rep := Report{
		Containers: make([]ContainerSummary, 0, len(cargo.Roles)),
	}

	var records []indexedRecord
	for _, c := range fleet.Containers() {
		contents := c.Contents()
		names := make([]string, 0, len(contents))
		for _, item := range contents {
			names = append(names, item.Name)
			records = append(records, newRecord(item, c.Role().String()))
			rep.Totals.PackedSize += item.Size
		}

		rep.Containers = append(rep.Containers, ContainerSummary{
			Role:      c.Role(),
			Capacity:  c.Capacity(),
			Used:      c.Used(),
			Remaining: c.Remaining(),
			Cost:      c.Cost(),
			Items:     names,
		})
		if len(contents) > 0 {
			rep.Totals.ContainersUsed++
			rep.Totals.UsageCost += c.Cost()
		}
	}
	rep.Totals.Placed = len(records)

	for _, item := range plan.Rejected {
		records = append(records, newRecord(item, Unplaced))
		rep.Totals.UnplacedSize += item.Size
	}
	rep.Totals.Unplaced = len(plan.Rejected)
	rep.Totals.Items = len(records)
	rep.Totals.Strategy = plan.Strategy

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].index < records[j].index
	})
	rep.Items = make([]ItemRecord, len(records))
	for i, r := range records {
		rep.Items[i] = r.ItemRecord
	}

	return rep
}

type indexedRecord struct {
	ItemRecord
	index int
}

func newRecord(item cargo.Item, assignedTo string) indexedRecord {
	return indexedRecord{
		ItemRecord: ItemRecord{
			Name:       item.Name,
			Kind:       item.Kind,
			Size:       item.Size,
			AssignedTo: assignedTo,
		},
		index: item.Index,
	}
}
