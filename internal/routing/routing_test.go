package routing

import (
	"errors"
	"testing"

	"github.com/eugenenazirov/cargo-planner/internal/cargo"
)

func newFleet(t *testing.T, normal, protect, cold int) *cargo.Fleet {
	t.Helper()

	fleet, err := cargo.NewFleet([]cargo.ContainerSpec{
		{Role: cargo.RoleNormal, Capacity: normal, Cost: 1},
		{Role: cargo.RoleProtect, Capacity: protect, Cost: 2},
		{Role: cargo.RoleCold, Capacity: cold, Cost: 3},
	})
	if err != nil {
		t.Fatalf("NewFleet returned error: %v", err)
	}
	return fleet
}

func TestRoutePlacesMandatoryItems(t *testing.T) {
	t.Parallel()

	fleet := newFleet(t, 10, 5, 5)
	items := []cargo.Item{
		{Index: 0, Name: "n1", Kind: cargo.KindNormal, Size: 6},
		{Index: 1, Name: "fuel", Kind: cargo.KindFlammable, Size: 3},
		{Index: 2, Name: "n2", Kind: cargo.KindNormal, Size: 5},
		{Index: 3, Name: "fish", Kind: cargo.KindIce, Size: 4},
		{Index: 4, Name: "n3", Kind: cargo.KindNormal, Size: 2},
	}

	state, err := Route(items, fleet)
	if err != nil {
		t.Fatalf("Route returned error: %v", err)
	}

	if got := fleet.Container(cargo.RoleProtect).Remaining(); got != 2 {
		t.Fatalf("expected protect remaining 2, got %d", got)
	}
	if got := fleet.Container(cargo.RoleCold).Remaining(); got != 1 {
		t.Fatalf("expected cold remaining 1, got %d", got)
	}
	if got := fleet.Container(cargo.RoleNormal).Remaining(); got != 10 {
		t.Fatalf("expected normal container untouched, remaining %d", got)
	}

	wantPending := []string{"n1", "n2", "n3"}
	if len(state.Pending) != len(wantPending) {
		t.Fatalf("expected %d pending items, got %d", len(wantPending), len(state.Pending))
	}
	for i, name := range wantPending {
		if state.Pending[i].Name != name {
			t.Fatalf("expected pending[%d]=%s, got %s", i, name, state.Pending[i].Name)
		}
	}
	if len(state.Mandatory) != 2 {
		t.Fatalf("expected 2 mandatory placements, got %d", len(state.Mandatory))
	}
}

func TestRouteFailsWhenFlammableDoesNotFit(t *testing.T) {
	t.Parallel()

	fleet := newFleet(t, 10, 5, 5)
	items := []cargo.Item{
		{Index: 0, Name: "drum", Kind: cargo.KindFlammable, Size: 6},
	}

	_, err := Route(items, fleet)
	if !errors.Is(err, ErrMandatoryCapacityExceeded) {
		t.Fatalf("expected ErrMandatoryCapacityExceeded, got %v", err)
	}
	var capErr *cargo.CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected error to name the item and container, got %v", err)
	}
	if capErr.Item.Name != "drum" || capErr.Role != cargo.RoleProtect {
		t.Fatalf("unexpected capacity error: %+v", capErr)
	}
}

func TestRouteFailsWhenIceOverflowsCumulatively(t *testing.T) {
	t.Parallel()

	fleet := newFleet(t, 10, 5, 5)
	items := []cargo.Item{
		{Index: 0, Name: "ice1", Kind: cargo.KindIce, Size: 3},
		{Index: 1, Name: "ice2", Kind: cargo.KindIce, Size: 3},
	}

	if _, err := Route(items, fleet); !errors.Is(err, ErrMandatoryCapacityExceeded) {
		t.Fatalf("expected ErrMandatoryCapacityExceeded, got %v", err)
	}
	if used := fleet.Container(cargo.RoleCold).Used(); used > fleet.Container(cargo.RoleCold).Capacity() {
		t.Fatalf("capacity invariant violated: used %d", used)
	}
}

func TestRouteRequiresFleet(t *testing.T) {
	t.Parallel()

	if _, err := Route(nil, nil); !errors.Is(err, cargo.ErrStructuralInput) {
		t.Fatalf("expected ErrStructuralInput, got %v", err)
	}
}
