// Package planner runs a complete loading pass: it builds the fleet, routes
// mandatory items, optimizes the rest and reports the final state.
package planner

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/eugenenazirov/cargo-planner/internal/cargo"
	"github.com/eugenenazirov/cargo-planner/internal/optimizer"
	"github.com/eugenenazirov/cargo-planner/internal/report"
	"github.com/eugenenazirov/cargo-planner/internal/routing"
)

// Result bundles the outcome of a run.
type Result struct {
	Fleet  *cargo.Fleet
	Plan   optimizer.Plan
	Report report.Report
}

// Service wires the optimizer and logger used for every run.
type Service struct {
	optimizer optimizer.Optimizer
	logger    *zap.Logger
}

// New constructs a Service. A nil logger disables logging.
func New(opt optimizer.Optimizer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{optimizer: opt, logger: logger}
}

// Plan loads items into a fresh fleet built from specs.
func (s *Service) Plan(items []cargo.Item, specs []cargo.ContainerSpec) (Result, error) {
	fleet, err := cargo.NewFleet(specs)
	if err != nil {
		return Result{}, fmt.Errorf("build fleet: %w", err)
	}

	state, err := routing.Route(items, fleet)
	if err != nil {
		return Result{}, fmt.Errorf("route items: %w", err)
	}

	bins := Bins(fleet)
	s.logger.Debug("mandatory items routed",
		zap.Int("mandatory", len(state.Mandatory)),
		zap.Int("pending", len(state.Pending)),
		zap.Int("normal_remaining", fleet.Container(cargo.RoleNormal).Remaining()),
		zap.Int("protect_remaining", fleet.Container(cargo.RoleProtect).Remaining()),
		zap.Int("cold_remaining", fleet.Container(cargo.RoleCold).Remaining()),
	)

	plan, err := s.optimizer.Optimize(state.Pending, bins)
	if err != nil {
		return Result{}, fmt.Errorf("optimize pending items: %w", err)
	}

	if err := commit(fleet, plan); err != nil {
		return Result{}, err
	}

	rep := report.Build(fleet, plan)
	s.logger.Info("loading plan computed",
		zap.String("strategy", string(plan.Strategy)),
		zap.Int("items", rep.Totals.Items),
		zap.Int("placed", rep.Totals.Placed),
		zap.Int("unplaced", rep.Totals.Unplaced),
		zap.Int("packed_size", rep.Totals.PackedSize),
	)
	if len(plan.Rejected) > 0 {
		names := make([]string, 0, len(plan.Rejected))
		for _, item := range plan.Rejected {
			names = append(names, item.Name)
		}
		s.logger.Warn("items left unplaced", zap.Strings("items", names))
	}

	return Result{Fleet: fleet, Plan: plan, Report: rep}, nil
}

// Bins describes the free space of every container in fleet.
func Bins(fleet *cargo.Fleet) []optimizer.Bin {
	containers := fleet.Containers()
	bins := make([]optimizer.Bin, 0, len(containers))
	for _, c := range containers {
		bins = append(bins, optimizer.Bin{Role: c.Role(), Remaining: c.Remaining(), Cost: c.Cost()})
	}
	return bins
}

// commit applies every placement through Container.Put so the capacity
// invariant is re-checked before the plan is reported.
func commit(fleet *cargo.Fleet, plan optimizer.Plan) error {
	for _, pl := range plan.Placements {
		if err := fleet.Container(pl.Role).Put(pl.Item); err != nil {
			return fmt.Errorf("commit plan: %w", err)
		}
	}
	return nil
}
