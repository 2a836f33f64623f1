package cargo

import (
	"errors"
	"fmt"
)

var (
	// ErrStructuralInput is returned for input that can never form a valid run:
	// unknown kind or role values, non-positive sizes, missing container roles.
	ErrStructuralInput = errors.New("structural input error")
	// ErrCapacityExceeded is returned when an item does not fit into a container.
	ErrCapacityExceeded = errors.New("container capacity exceeded")
)

// CapacityError names the item and container involved in a refused insertion.
type CapacityError struct {
	Item      Item
	Role      Role
	Remaining int
}

func (e *CapacityError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("item %q (size %d) does not fit into %s container (remaining %d)",
		e.Item.Name, e.Item.Size, e.Role, e.Remaining)
}

func (e *CapacityError) Unwrap() error {
	return ErrCapacityExceeded
}

func structuralf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrStructuralInput, fmt.Sprintf(format, args...))
}
