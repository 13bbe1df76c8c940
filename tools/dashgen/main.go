// Command dashgen generates the Grafana dashboard and Prometheus rules for
// the bluegem watch server, validating every PromQL expression against the
// metrics the server exports.
//
//	go run . -output ../../deploy
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/bluegem/tools/dashgen/dashboards"
	"github.com/donaldgifford/bluegem/tools/dashgen/rules"
	"github.com/donaldgifford/bluegem/tools/dashgen/validate"
)

const generatedHeader = "# Code generated by tools/dashgen. DO NOT EDIT.\n"

func main() {
	validateOnly := flag.Bool("validate", false, "validate generated artifacts without writing files")
	outputDir := flag.String("output", "", "override output directory")
	flag.Parse()

	cfg := DefaultConfig()
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := run(os.Stdout, cfg, *validateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// artifact is one generated file, relative to the output directory.
type artifact struct {
	path string
	data []byte
}

func run(out io.Writer, cfg Config, validateOnly bool) error {
	artifacts, res, err := generate(cfg)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	if !res.Ok() {
		return fmt.Errorf("validation failed:\n  %s", strings.Join(res.Errors, "\n  "))
	}

	if validateOnly {
		fmt.Fprintln(out, "validation passed")
		return nil
	}

	for _, a := range artifacts {
		path := filepath.Join(cfg.OutputDir, a.path)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, a.data, 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Fprintf(out, "dashgen: wrote %s\n", path)
	}
	return nil
}

func generate(cfg Config) ([]artifact, *validate.Result, error) {
	var (
		artifacts []artifact
		res       = &validate.Result{}
	)

	if cfg.DashboardEnabled {
		dash, err := dashboards.BuildOverview().Build()
		if err != nil {
			return nil, nil, fmt.Errorf("building dashboard: %w", err)
		}
		data, err := json.MarshalIndent(dash, "", "  ")
		if err != nil {
			return nil, nil, fmt.Errorf("marshaling dashboard: %w", err)
		}
		merge(res, validate.Dashboard(dash, KnownMetrics))
		artifacts = append(artifacts, artifact{
			path: filepath.Join("grafana", "data", "bluegem-overview.json"),
			data: append(data, '\n'),
		})
	}

	if cfg.RulesEnabled {
		for _, cr := range []rules.PrometheusRule{rules.RecordingRules(), rules.AlertRules()} {
			data, err := yaml.Marshal(cr)
			if err != nil {
				return nil, nil, fmt.Errorf("marshaling %s: %w", cr.Metadata.Name, err)
			}
			merge(res, validate.Exprs(cr.Exprs(), KnownMetrics))
			artifacts = append(artifacts, artifact{
				path: filepath.Join("prometheus", cr.Metadata.Name+".yaml"),
				data: append([]byte(generatedHeader), data...),
			})
		}
	}

	if len(artifacts) == 0 {
		return nil, nil, errors.New("nothing to generate")
	}
	return artifacts, res, nil
}

func merge(dst, src *validate.Result) {
	dst.Errors = append(dst.Errors, src.Errors...)
	dst.Warnings = append(dst.Warnings, src.Warnings...)
}
