// Package manifest reads the list of containers and items for a loading run,
// either from the whitespace-delimited text format or from YAML.
package manifest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/eugenenazirov/cargo-planner/internal/cargo"
)

// containerRecords is the number of container lines the text format carries.
const containerRecords = 3

// maxPreallocItems caps the slice reserved up front for a declared item count.
const maxPreallocItems = 1024

// ErrMalformed is returned when the input cannot be tokenised or decoded.
var ErrMalformed = errors.New("malformed manifest")

// Manifest is a parsed, validated run description.
type Manifest struct {
	Containers []cargo.ContainerSpec
	Items      []cargo.Item
}

// Validate checks the container roles and every item.
func (m Manifest) Validate() error {
	if err := cargo.ValidateSpecs(m.Containers); err != nil {
		return err
	}
	for _, item := range m.Items {
		if _, err := cargo.NewItem(item.Index, item.Name, item.Kind, item.Size); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the manifest at path. Files ending in .yaml or .yml are decoded
// as YAML, everything else as the text format.
func Load(path string) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(f)
	default:
		return ParseText(f)
	}
}

// ParseText reads the delimited format:
//
//	<item count>
//	<capacity> <role N|P|C> <cost>     (three lines)
//	<name> <size> <kind N|F|I>         (item count lines)
//
// Tokens may be separated by any whitespace.
func ParseText(r io.Reader) (Manifest, error) {
	sc := &tokenScanner{sc: bufio.NewScanner(r)}
	sc.sc.Split(bufio.ScanWords)

	count, err := sc.nonNegativeInt("item count")
	if err != nil {
		return Manifest{}, err
	}

	m := Manifest{
		Containers: make([]cargo.ContainerSpec, 0, containerRecords),
		Items:      make([]cargo.Item, 0, min(count, maxPreallocItems)),
	}

	for i := 0; i < containerRecords; i++ {
		field := fmt.Sprintf("container %d", i+1)
		capacity, err := sc.int(field + " capacity")
		if err != nil {
			return Manifest{}, err
		}
		rawRole, err := sc.token(field + " role")
		if err != nil {
			return Manifest{}, err
		}
		role, err := cargo.ParseRole(rawRole)
		if err != nil {
			return Manifest{}, fmt.Errorf("%s: %w", field, err)
		}
		cost, err := sc.int(field + " cost")
		if err != nil {
			return Manifest{}, err
		}
		m.Containers = append(m.Containers, cargo.ContainerSpec{Role: role, Capacity: capacity, Cost: cost})
	}

	for i := 0; i < count; i++ {
		field := fmt.Sprintf("item %d", i+1)
		name, err := sc.token(field + " name")
		if err != nil {
			return Manifest{}, err
		}
		size, err := sc.int(field + " size")
		if err != nil {
			return Manifest{}, err
		}
		rawKind, err := sc.token(field + " kind")
		if err != nil {
			return Manifest{}, err
		}
		kind, err := cargo.ParseKind(rawKind)
		if err != nil {
			return Manifest{}, fmt.Errorf("%s: %w", field, err)
		}
		item, err := cargo.NewItem(i, name, kind, size)
		if err != nil {
			return Manifest{}, err
		}
		m.Items = append(m.Items, item)
	}

	if extra, err := sc.token("trailing data"); err == nil {
		return Manifest{}, fmt.Errorf("%w: unexpected trailing token %q", ErrMalformed, extra)
	} else if !errors.Is(err, io.EOF) {
		return Manifest{}, err
	}

	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

type tokenScanner struct {
	sc *bufio.Scanner
}

// token returns the next token. A clean end of input is reported as an error
// wrapping both ErrMalformed and io.EOF.
func (t *tokenScanner) token(field string) (string, error) {
	if t.sc.Scan() {
		return t.sc.Text(), nil
	}
	if err := t.sc.Err(); err != nil {
		return "", fmt.Errorf("read %s: %w", field, err)
	}
	return "", fmt.Errorf("%w: missing %s: %w", ErrMalformed, field, io.EOF)
}

func (t *tokenScanner) int(field string) (int, error) {
	raw, err := t.token(field)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrMalformed, field, raw)
	}
	return value, nil
}

func (t *tokenScanner) nonNegativeInt(field string) (int, error) {
	value, err := t.int(field)
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, fmt.Errorf("%w: %s must be non-negative, got %d", ErrMalformed, field, value)
	}
	return value, nil
}
