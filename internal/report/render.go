package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported output encodings.
var Formats = []string{string(FormatText), string(FormatJSON), string(FormatYAML)}

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported report format %q", raw)
	}
}

// Write renders rep to w in the given format.
func Write(w io.Writer, rep Report, format Format) error {
	switch format {
	case FormatText, "":
		return WriteText(w, rep)
	case FormatJSON:
		return WriteJSON(w, rep)
	case FormatYAML:
		return WriteYAML(w, rep)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

// WriteText renders one line per container followed by one line per item:
//
//	normal = { size: 2/10, cost: 1 }
//	box: normal = 6 -> normal
func WriteText(w io.Writer, rep Report) error {
	bw := bufio.NewWriter(w)
	for _, c := range rep.Containers {
		fmt.Fprintf(bw, "%s = { size: %d/%d, cost: %d }\n", c.Role, c.Remaining, c.Capacity, c.Cost)
	}
	for _, item := range rep.Items {
		fmt.Fprintf(bw, "%s: %s = %d -> %s\n", item.Name, item.Kind, item.Size, item.AssignedTo)
	}
	fmt.Fprintf(bw, "packed: %d, unplaced: %d (%s)\n", rep.Totals.PackedSize, rep.Totals.Unplaced, rep.Totals.Strategy)
	return bw.Flush()
}

// WriteJSON renders rep as indented JSON.
func WriteJSON(w io.Writer, rep Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode JSON report: %w", err)
	}
	return nil
}

// WriteYAML renders rep as YAML.
func WriteYAML(w io.Writer, rep Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode YAML report: %w", err)
	}
	return enc.Close()
}
