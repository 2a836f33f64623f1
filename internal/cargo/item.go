package cargo

import (
	"math"
	"strings"
)

// MaxQuantity bounds item sizes, container capacities and costs so that
// totals over a run cannot overflow.
const MaxQuantity = math.MaxInt32

// Kind classifies an item by its handling requirements.
type Kind int

const (
	// KindNormal items may travel in any container.
	KindNormal Kind = iota
	// KindFlammable items must travel in the protective container.
	KindFlammable
	// KindIce items must travel in the refrigerated container.
	KindIce
)

var kindNames = [...]string{
	KindNormal:    "normal",
	KindFlammable: "flammable",
	KindIce:       "ice",
}

var kindCodes = [...]string{
	KindNormal:    "N",
	KindFlammable: "F",
	KindIce:       "I",
}

func (k Kind) String() string {
	if !k.valid() {
		return "unknown"
	}
	return kindNames[k]
}

// Code returns the single-character code used by the delimited input format.
func (k Kind) Code() string {
	if !k.valid() {
		return "?"
	}
	return kindCodes[k]
}

// Destination returns the only role allowed to carry items of this kind.
// The boolean is false for normal items, which have no fixed destination.
func (k Kind) Destination() (Role, bool) {
	switch k {
	case KindFlammable:
		return RoleProtect, true
	case KindIce:
		return RoleCold, true
	default:
		return 0, false
	}
}

func (k Kind) valid() bool {
	return k >= KindNormal && k <= KindIce
}

// ParseKind accepts either the single-character code (N, F, I) or the
// lowercase name (normal, flammable, ice).
func ParseKind(raw string) (Kind, error) {
	value := strings.TrimSpace(raw)
	for k := KindNormal; k <= KindIce; k++ {
		if value == kindCodes[k] || strings.EqualFold(value, kindNames[k]) {
			return k, nil
		}
	}
	return 0, structuralf("invalid item kind %q", raw)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.valid() {
		return nil, structuralf("invalid item kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Item is a single transportable unit. Index is its position in the input and
// serves as identity, names are not required to be unique.
type Item struct {
	Index int
	Name  string
	Kind  Kind
	Size  int
}

// NewItem validates and constructs an Item.
func NewItem(index int, name string, kind Kind, size int) (Item, error) {
	if !kind.valid() {
		return Item{}, structuralf("item %q has invalid kind %d", name, int(kind))
	}
	if size <= 0 || size > MaxQuantity {
		return Item{}, structuralf("item %q must have a size between 1 and %d, got %d", name, MaxQuantity, size)
	}
	return Item{Index: index, Name: name, Kind: kind, Size: size}, nil
}

// TotalSize sums the sizes of the given items.
func TotalSize(items []Item) int {
	total := 0
	for _, item := range items {
		total += item.Size
	}
	return total
}
