package cargo

// Fleet holds exactly one container for each role.
type Fleet struct {
	containers [len(Roles)]*Container
}

// NewFleet builds empty containers from specs. Every role must appear exactly once.
func NewFleet(specs []ContainerSpec) (*Fleet, error) {
	if err := ValidateSpecs(specs); err != nil {
		return nil, err
	}

	f := &Fleet{}
	for _, spec := range specs {
		c, err := NewContainerFromSpec(spec)
		if err != nil {
			return nil, err
		}
		f.containers[spec.Role] = c
	}
	return f, nil
}

// ValidateSpecs checks each spec and that the roles form exactly one of each.
func ValidateSpecs(specs []ContainerSpec) error {
	var seen [len(Roles)]bool
	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return err
		}
		if seen[spec.Role] {
			return structuralf("duplicate %s container", spec.Role)
		}
		seen[spec.Role] = true
	}
	for _, role := range Roles {
		if !seen[role] {
			return structuralf("missing %s container", role)
		}
	}
	return nil
}

// Container returns the container for role.
func (f *Fleet) Container(role Role) *Container {
	if !role.valid() {
		return nil
	}
	return f.containers[role]
}

// Containers returns the containers in canonical role order.
func (f *Fleet) Containers() []*Container {
	out := make([]*Container, 0, len(f.containers))
	for _, c := range f.containers {
		out = append(out, c)
	}
	return out
}

// Specs returns the container descriptions in canonical role order.
func (f *Fleet) Specs() []ContainerSpec {
	out := make([]ContainerSpec, 0, len(f.containers))
	for _, c := range f.containers {
		out = append(out, c.Spec())
	}
	return out
}
