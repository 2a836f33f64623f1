package cargo

import "strings"

// Role identifies which kinds of item a container accepts.
type Role int

const (
	// RoleNormal accepts normal items only.
	RoleNormal Role = iota
	// RoleProtect accepts flammable items, and normal items if space remains.
	RoleProtect
	// RoleCold accepts ice items, and normal items if space remains.
	RoleCold
)

// Roles lists every role in canonical order.
var Roles = [...]Role{RoleNormal, RoleProtect, RoleCold}

var roleNames = [...]string{
	RoleNormal:  "normal",
	RoleProtect: "protect",
	RoleCold:    "cold",
}

var roleCodes = [...]string{
	RoleNormal:  "N",
	RoleProtect: "P",
	RoleCold:    "C",
}

func (r Role) String() string {
	if !r.valid() {
		return "unknown"
	}
	return roleNames[r]
}

// Code returns the single-character code used by the delimited input format.
func (r Role) Code() string {
	if !r.valid() {
		return "?"
	}
	return roleCodes[r]
}

// Accepts reports whether items of kind k may be stored in a container of this role.
func (r Role) Accepts(k Kind) bool {
	dest, fixed := k.Destination()
	return !fixed || dest == r
}

func (r Role) valid() bool {
	return r >= RoleNormal && r <= RoleCold
}

// ParseRole accepts either the single-character code (N, P, C) or the
// lowercase name (normal, protect, cold).
func ParseRole(raw string) (Role, error) {
	value := strings.TrimSpace(raw)
	for r := RoleNormal; r <= RoleCold; r++ {
		if value == roleCodes[r] || strings.EqualFold(value, roleNames[r]) {
			return r, nil
		}
	}
	return 0, structuralf("invalid container role %q", raw)
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	if !r.valid() {
		return nil, structuralf("invalid container role %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ContainerSpec describes a container before any item is loaded.
type ContainerSpec struct {
	Role     Role `json:"role" yaml:"role"`
	Capacity int  `json:"capacity" yaml:"capacity"`
	Cost     int  `json:"cost" yaml:"cost"`
}

// Validate checks the spec's role, capacity and cost.
func (s ContainerSpec) Validate() error {
	if !s.Role.valid() {
		return structuralf("invalid container role %d", int(s.Role))
	}
	if s.Capacity <= 0 || s.Capacity > MaxQuantity {
		return structuralf("%s container must have a capacity between 1 and %d, got %d", s.Role, MaxQuantity, s.Capacity)
	}
	if s.Cost < 0 || s.Cost > MaxQuantity {
		return structuralf("%s container must have a cost between 0 and %d, got %d", s.Role, MaxQuantity, s.Cost)
	}
	return nil
}

// Container holds items up to its capacity. Contents can only grow through Put.
type Container struct {
	spec     ContainerSpec
	used     int
	contents []Item
}

// NewContainer validates the parameters and returns an empty container.
func NewContainer(role Role, capacity, cost int) (*Container, error) {
	return NewContainerFromSpec(ContainerSpec{Role: role, Capacity: capacity, Cost: cost})
}

// NewContainerFromSpec returns an empty container described by spec.
func NewContainerFromSpec(spec ContainerSpec) (*Container, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &Container{spec: spec}, nil
}

func (c *Container) Role() Role          { return c.spec.Role }
func (c *Container) Capacity() int       { return c.spec.Capacity }
func (c *Container) Cost() int           { return c.spec.Cost }
func (c *Container) Used() int           { return c.used }
func (c *Container) Remaining() int      { return c.spec.Capacity - c.used }
func (c *Container) Spec() ContainerSpec { return c.spec }

// Contents returns a copy of the loaded items in insertion order.
func (c *Container) Contents() []Item {
	out := make([]Item, len(c.contents))
	copy(out, c.contents)
	return out
}

// Fits reports whether item could be added without exceeding the capacity.
// Kind compatibility is not checked.
func (c *Container) Fits(item Item) bool {
	return item.Size > 0 && item.Size <= c.Remaining()
}

// Put appends item if its kind is accepted and it fits. The container is left
// unchanged on error.
func (c *Container) Put(item Item) error {
	if !c.spec.Role.Accepts(item.Kind) {
		return structuralf("%s item %q cannot be stored in %s container", item.Kind, item.Name, c.spec.Role)
	}
	if !c.Fits(item) {
		return &CapacityError{Item: item, Role: c.spec.Role, Remaining: c.Remaining()}
	}
	c.contents = append(c.contents, item)
	c.used += item.Size
	return nil
}
