// Command cargoplan loads a manifest, plans the cargo and writes the report.
//
//	cargoplan input.txt [output.txt] [--format text|json|yaml]
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/cargo-planner/internal/logging"
	"github.com/eugenenazirov/cargo-planner/internal/manifest"
	"github.com/eugenenazirov/cargo-planner/internal/optimizer"
	"github.com/eugenenazirov/cargo-planner/internal/planner"
	"github.com/eugenenazirov/cargo-planner/internal/report"
)

var createFile = func(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	app := kingpin.New("cargoplan", "Loads items into protect, cold and normal containers and reports the result")
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)
	app.Terminate(nil)

	input := app.Arg("input", "Manifest file (.txt delimited format, .yaml or .yml)").Required().String()
	output := app.Arg("output", "Report file; stdout when omitted").String()
	format := app.Flag("format", "Report format").Short('f').Default(string(report.FormatText)).Enum(report.Formats...)
	maxStates := app.Flag("max-states", "State budget of the exact optimizer").Default(fmt.Sprint(optimizer.DefaultMaxStates)).Int()
	logLevel := app.Flag("log-level", "Log level (debug, info, warn, error)").Default("warn").String()

	if _, err := app.Parse(args); err != nil {
		fmt.Fprintf(stderr, "cargoplan: %v\n", err)
		return 2
	}

	logger, err := logging.New(logging.Options{Level: *logLevel, Console: true})
	if err != nil {
		fmt.Fprintf(stderr, "cargoplan: %v\n", err)
		return 2
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := plan(*input, *output, report.Format(*format), *maxStates, stdout, logger); err != nil {
		logger.Error("planning failed", zap.String("input", *input), zap.Error(err))
		fmt.Fprintf(stderr, "cargoplan: %v\n", err)
		return 1
	}
	return 0
}

func plan(input, output string, format report.Format, maxStates int, stdout io.Writer, logger *zap.Logger) (err error) {
	m, err := manifest.Load(input)
	if err != nil {
		return err
	}

	svc := planner.New(optimizer.New(optimizer.WithMaxStates(maxStates)), logger)
	result, err := svc.Plan(m.Items, m.Containers)
	if err != nil {
		return err
	}

	w := stdout
	if output != "" {
		f, createErr := createFile(output)
		if createErr != nil {
			return fmt.Errorf("create report: %w", createErr)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close report: %w", closeErr)
			}
		}()
		w = f
	}

	if err := report.Write(w, result.Report, format); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
