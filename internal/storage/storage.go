package storage

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/eugenenazirov/cargo-planner/internal/cargo"
)

var (
	// ErrInvalidContainers indicates the provided container table violates validation rules.
	ErrInvalidContainers = errors.New("containers must describe one normal, one protect and one cold container")
)

var defaultContainers = []cargo.ContainerSpec{
	{Role: cargo.RoleNormal, Capacity: 100, Cost: 1},
	{Role: cargo.RoleProtect, Capacity: 50, Cost: 3},
	{Role: cargo.RoleCold, Capacity: 50, Cost: 2},
}

// Storage provides access to the container table used for planning.
type Storage interface {
	GetContainers() ([]cargo.ContainerSpec, error)
	SetContainers(specs []cargo.ContainerSpec) error
}

// MemoryStorage keeps the container table in-memory and guards access with a RWMutex.
// Nothing is written to disk; the table lives as long as the process.
type MemoryStorage struct {
	mu         sync.RWMutex
	containers []cargo.ContainerSpec
}

// NewMemoryStorage initialises storage with a copy of the default container table.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		containers: cloneAndSort(defaultContainers),
	}
}

// DefaultContainers returns a copy of the default container table.
func DefaultContainers() []cargo.ContainerSpec {
	return cloneAndSort(defaultContainers)
}

// GetContainers returns a copy of the current table in role order.
func (s *MemoryStorage) GetContainers() ([]cargo.ContainerSpec, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneAndSort(s.containers), nil
}

// SetContainers validates and stores the provided container table.
func (s *MemoryStorage) SetContainers(specs []cargo.ContainerSpec) error {
	if err := cargo.ValidateSpecs(specs); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidContainers, err)
	}

	normalized := cloneAndSort(specs)
	s.mu.Lock()
	s.containers = normalized
	s.mu.Unlock()

	return nil
}

func cloneAndSort(src []cargo.ContainerSpec) []cargo.ContainerSpec {
	if len(src) == 0 {
		return []cargo.ContainerSpec{}
	}

	out := make([]cargo.ContainerSpec, len(src))
	copy(out, src)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Role < out[j].Role
	})
	return out
}
