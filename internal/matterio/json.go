// Package matterio implements the load/save surface for both document
// formats: reading and writing the SDF JSON documents and the Matter XML
// documents that the translation pipelines consume and produce, built on
// pkg/utils/xml's etree wrapper functions for the XML side and a plain
// encoding/json codec for the SDF side.
package matterio

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/onedm/sdf-matter-translator/internal/model/sdf"
)

// LoadSDFModelFile reads and decodes an SDF model document from path.
func LoadSDFModelFile(path string) (*sdf.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("matterio: read sdf model %s: %w", path, err)
	}
	return LoadSDFModel(data)
}

// LoadSDFModel decodes an SDF model document from raw JSON bytes.
func LoadSDFModel(data []byte) (*sdf.Model, error) {
	model := &sdf.Model{}
	if err := json.Unmarshal(data, model); err != nil {
		return nil, fmt.Errorf("matterio: parse sdf model: %w", err)
	}
	return model, nil
}

// LoadSDFMappingFile reads and decodes an SDF mapping (side-car) document
// from path.
func LoadSDFMappingFile(path string) (*sdf.Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("matterio: read sdf mapping %s: %w", path, err)
	}
	return LoadSDFMapping(data)
}

// LoadSDFMapping decodes an SDF mapping document from raw JSON bytes.
func LoadSDFMapping(data []byte) (*sdf.Mapping, error) {
	mapping := sdf.NewMapping()
	if err := json.Unmarshal(data, mapping); err != nil {
		return nil, fmt.Errorf("matterio: parse sdf mapping: %w", err)
	}
	return mapping, nil
}

// SaveSDFModelFile encodes model as indented JSON and writes it to path.
func SaveSDFModelFile(path string, model *sdf.Model) error {
	data, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return fmt.Errorf("matterio: encode sdf model: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// SaveSDFMappingFile encodes mapping as indented JSON and writes it to path.
func SaveSDFMappingFile(path string, mapping *sdf.Mapping) error {
	data, err := json.MarshalIndent(mapping, "", "  ")
	if err != nil {
		return fmt.Errorf("matterio: encode sdf mapping: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
