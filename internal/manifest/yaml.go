package manifest

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/cargo-planner/internal/cargo"
)

// yamlManifest represents the YAML manifest structure.
type yamlManifest struct {
	Containers []cargo.ContainerSpec `yaml:"containers"`
	Items      []yamlItem            `yaml:"items"`
}

type yamlItem struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
	Size int    `yaml:"size"`
}

// ParseYAML reads a manifest of the form:
//
//	containers:
//	  - {role: normal, capacity: 10, cost: 1}
//	items:
//	  - {name: fuel, kind: flammable, size: 3}
func ParseYAML(r io.Reader) (Manifest, error) {
	var doc yamlManifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return Manifest{}, fmt.Errorf("%w: parse YAML: %w", ErrMalformed, err)
	}

	m := Manifest{
		Containers: doc.Containers,
		Items:      make([]cargo.Item, 0, len(doc.Items)),
	}
	for i, raw := range doc.Items {
		kind, err := cargo.ParseKind(raw.Kind)
		if err != nil {
			return Manifest{}, fmt.Errorf("item %d: %w", i+1, err)
		}
		item, err := cargo.NewItem(i, raw.Name, kind, raw.Size)
		if err != nil {
			return Manifest{}, err
		}
		m.Items = append(m.Items, item)
	}

	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}
