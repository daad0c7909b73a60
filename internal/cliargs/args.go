// Package cliargs validates the command-line surface: exactly one
// translation direction, the required path pair for that direction, and the
// optional flags layered on top (--validate, --round-trip, -config,
// -o/-output, plus the optional -serve flag's -serve-addr bind address), using
// struct-tag validation (go-playground/validator/v10) instead of hand-rolled
// flag checks.
package cliargs

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Direction is the translation direction selected on the command line.
type Direction string

const (
	// DirectionSdfToMatter is --sdf-to-matter.
	DirectionSdfToMatter Direction = "sdf-to-matter"
	// DirectionMatterToSdf is --matter-to-sdf.
	DirectionMatterToSdf Direction = "matter-to-sdf"
)

// Args is the fully parsed and validated command-line surface.
type Args struct {
	// Direction selects exactly one of sdf-to-matter or matter-to-sdf.
	Direction Direction `validate:"omitempty,oneof=sdf-to-matter matter-to-sdf"`

	// SDFModelPath and SDFMappingPath are required (and mutually required
	// with SDFModelPath) when Direction is sdf-to-matter.
	SDFModelPath   string `validate:"required_if=Direction sdf-to-matter"`
	SDFMappingPath string `validate:"required_if=Direction sdf-to-matter"`

	// DeviceXMLPath is optional even for matter-to-sdf: a cluster library
	// alone (no device type) is a valid input.
	DeviceXMLPath  string
	ClusterXMLPath string `validate:"required_if=Direction matter-to-sdf"`

	// Validate requests pre- and post-translation structural validation.
	Validate bool

	// RoundTrip requests re-running the opposite pipeline on the produced
	// output and writing a second artifact.
	RoundTrip bool

	// Output is the output path (or path prefix, when RoundTrip doubles the
	// artifacts). Empty means write beside the input with a derived name.
	Output string `validate:"omitempty"`

	// ConfigPath optionally names a YAML config file.
	ConfigPath string

	// Serve requests the optional HTTP front-end instead of a
	// one-shot CLI run.
	Serve bool

	// ServeAddr is the bind address used only when Serve is true.
	ServeAddr string `validate:"omitempty,hostname_port"`
}

var validate = validator.New()

// Validate checks a's structural validity beyond what flag parsing alone
// can express: direction exclusivity and the required path pairs per
// direction.
func Validate(a *Args) error {
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("cliargs: %w", err)
	}

	if a.Serve {
		if a.ServeAddr == "" {
			return fmt.Errorf("cliargs: -serve requires -serve-addr")
		}
		return nil
	}

	switch a.Direction {
	case DirectionSdfToMatter:
		if a.SDFModelPath == "" || a.SDFMappingPath == "" {
			return fmt.Errorf("cliargs: --sdf-to-matter requires -sdf-model and -sdf-mapping")
		}
	case DirectionMatterToSdf:
		if a.ClusterXMLPath == "" {
			return fmt.Errorf("cliargs: --matter-to-sdf requires -cluster-xml")
		}
	default:
		return fmt.Errorf("cliargs: exactly one of --matter-to-sdf or --sdf-to-matter is required")
	}

	return nil
}
