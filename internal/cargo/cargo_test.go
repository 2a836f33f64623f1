package cargo

import (
	"errors"
	"testing"
)

func TestParseKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    Kind
		wantErr error
	}{
		{raw: "N", want: KindNormal},
		{raw: "F", want: KindFlammable},
		{raw: "I", want: KindIce},
		{raw: "flammable", want: KindFlammable},
		{raw: " ice ", want: KindIce},
		{raw: "X", wantErr: ErrStructuralInput},
		{raw: "", wantErr: ErrStructuralInput},
		{raw: "n", wantErr: ErrStructuralInput},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParseKind(tc.raw)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
			if tc.wantErr == nil && got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	for _, role := range Roles {
		got, err := ParseRole(role.Code())
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", role.Code(), err)
		}
		if got != role {
			t.Fatalf("expected %s, got %s", role, got)
		}
		if got, err := ParseRole(role.String()); err != nil || got != role {
			t.Fatalf("expected %s from name, got %s (%v)", role, got, err)
		}
	}

	if _, err := ParseRole("F"); !errors.Is(err, ErrStructuralInput) {
		t.Fatalf("expected ErrStructuralInput, got %v", err)
	}
}

func TestNewItemValidatesSize(t *testing.T) {
	t.Parallel()

	if _, err := NewItem(0, "box", KindNormal, 0); !errors.Is(err, ErrStructuralInput) {
		t.Fatalf("expected ErrStructuralInput for zero size, got %v", err)
	}
	if _, err := NewItem(0, "box", KindNormal, MaxQuantity+1); !errors.Is(err, ErrStructuralInput) {
		t.Fatalf("expected ErrStructuralInput for oversized item, got %v", err)
	}
	if _, err := NewItem(0, "box", Kind(7), 1); !errors.Is(err, ErrStructuralInput) {
		t.Fatalf("expected ErrStructuralInput for unknown kind, got %v", err)
	}

	item, err := NewItem(3, "box", KindIce, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Index != 3 || item.Name != "box" || item.Kind != KindIce || item.Size != 4 {
		t.Fatalf("unexpected item: %+v", item)
	}
}

func TestRoleAccepts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role Role
		kind Kind
		want bool
	}{
		{RoleNormal, KindNormal, true},
		{RoleNormal, KindFlammable, false},
		{RoleNormal, KindIce, false},
		{RoleProtect, KindNormal, true},
		{RoleProtect, KindFlammable, true},
		{RoleProtect, KindIce, false},
		{RoleCold, KindNormal, true},
		{RoleCold, KindFlammable, false},
		{RoleCold, KindIce, true},
	}

	for _, tc := range tests {
		if got := tc.role.Accepts(tc.kind); got != tc.want {
			t.Fatalf("%s.Accepts(%s) = %v, want %v", tc.role, tc.kind, got, tc.want)
		}
	}
}

func TestContainerPutEnforcesCapacity(t *testing.T) {
	t.Parallel()

	c, err := NewContainer(RoleProtect, 5, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := c.Put(Item{Name: "a", Kind: KindFlammable, Size: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Remaining() != 2 || c.Used() != 3 {
		t.Fatalf("expected used 3 remaining 2, got used %d remaining %d", c.Used(), c.Remaining())
	}

	err = c.Put(Item{Name: "b", Kind: KindNormal, Size: 3})
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	var capErr *CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected CapacityError, got %T", err)
	}
	if capErr.Item.Name != "b" || capErr.Role != RoleProtect || capErr.Remaining != 2 {
		t.Fatalf("unexpected capacity error: %+v", capErr)
	}
	if c.Remaining() != 2 || len(c.Contents()) != 1 {
		t.Fatalf("container modified by refused put")
	}

	if err := c.Put(Item{Name: "c", Kind: KindNormal, Size: 2}); err != nil {
		t.Fatalf("expected exact fit to succeed, got %v", err)
	}
	if c.Remaining() != 0 {
		t.Fatalf("expected container to be full, remaining %d", c.Remaining())
	}
}

func TestContainerPutRejectsIncompatibleKind(t *testing.T) {
	t.Parallel()

	c, err := NewContainer(RoleNormal, 10, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Put(Item{Name: "gas", Kind: KindFlammable, Size: 1}); !errors.Is(err, ErrStructuralInput) {
		t.Fatalf("expected ErrStructuralInput, got %v", err)
	}
	if c.Used() != 0 {
		t.Fatalf("expected empty container, used %d", c.Used())
	}
}

func TestContainerContentsIsCopy(t *testing.T) {
	t.Parallel()

	c, _ := NewContainer(RoleCold, 10, 1)
	_ = c.Put(Item{Name: "a", Kind: KindIce, Size: 1})

	got := c.Contents()
	got[0].Name = "mutated"
	if c.Contents()[0].Name != "a" {
		t.Fatalf("expected defensive copy of contents")
	}
}

func TestNewContainerValidates(t *testing.T) {
	t.Parallel()

	cases := []ContainerSpec{
		{Role: RoleNormal, Capacity: 0, Cost: 1},
		{Role: RoleNormal, Capacity: 5, Cost: -1},
		{Role: Role(9), Capacity: 5, Cost: 1},
		{Role: RoleNormal, Capacity: MaxQuantity + 1, Cost: 1},
		{Role: RoleNormal, Capacity: 5, Cost: MaxQuantity + 1},
	}
	for _, spec := range cases {
		if _, err := NewContainerFromSpec(spec); !errors.Is(err, ErrStructuralInput) {
			t.Fatalf("expected ErrStructuralInput for %+v, got %v", spec, err)
		}
	}
}

func TestNewFleet(t *testing.T) {
	t.Parallel()

	valid := []ContainerSpec{
		{Role: RoleCold, Capacity: 5, Cost: 3},
		{Role: RoleNormal, Capacity: 10, Cost: 1},
		{Role: RoleProtect, Capacity: 5, Cost: 2},
	}

	fleet, err := NewFleet(valid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, role := range Roles {
		if got := fleet.Container(role).Role(); got != role {
			t.Fatalf("expected %s container, got %s", role, got)
		}
	}
	if specs := fleet.Specs(); specs[0].Role != RoleNormal || specs[2].Role != RoleCold {
		t.Fatalf("expected canonical ordering, got %+v", specs)
	}

	t.Run("missing role", func(t *testing.T) {
		if _, err := NewFleet(valid[:2]); !errors.Is(err, ErrStructuralInput) {
			t.Fatalf("expected ErrStructuralInput, got %v", err)
		}
	})

	t.Run("duplicate role", func(t *testing.T) {
		dup := append([]ContainerSpec{}, valid[:2]...)
		dup = append(dup, ContainerSpec{Role: RoleCold, Capacity: 1, Cost: 1})
		if _, err := NewFleet(dup); !errors.Is(err, ErrStructuralInput) {
			t.Fatalf("expected ErrStructuralInput, got %v", err)
		}
	})
}

func TestKindTextRoundTrip(t *testing.T) {
	t.Parallel()

	var k Kind
	if err := k.UnmarshalText([]byte("F")); err != nil || k != KindFlammable {
		t.Fatalf("expected flammable, got %s (%v)", k, err)
	}
	text, err := k.MarshalText()
	if err != nil || string(text) != "flammable" {
		t.Fatalf("unexpected marshal output %q (%v)", text, err)
	}
}
