package matterio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onedm/sdf-matter-translator/internal/model/matter"
	"github.com/onedm/sdf-matter-translator/internal/model/sdf"
)

func TestSDFModelRoundTripsThroughFile(t *testing.T) {
	model := &sdf.Model{
		Info: sdf.InfoBlock{Title: "Test"},
		Objects: map[string]*sdf.Object{
			"OnOff": {
				Properties: map[string]*sdf.Property{
					"OnOff": {DataQuality: sdf.DataQuality{Type: sdf.TypeBoolean}},
				},
			},
		},
	}
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, SaveSDFModelFile(path, model))

	loaded, err := LoadSDFModelFile(path)
	require.NoError(t, err)
	require.Contains(t, loaded.Objects, "OnOff")
	assert.Equal(t, sdf.TypeBoolean, loaded.Objects["OnOff"].Properties["OnOff"].Type)
}

func TestSDFMappingRoundTripsThroughFile(t *testing.T) {
	mapping := sdf.NewMapping()
	mapping.Set("#/sdfObject/OnOff", "id", float64(6))
	path := filepath.Join(t.TempDir(), "mapping.json")
	require.NoError(t, SaveSDFMappingFile(path, mapping))

	loaded, err := LoadSDFMappingFile(path)
	require.NoError(t, err)
	v, ok := loaded.Get("#/sdfObject/OnOff", "id")
	require.True(t, ok)
	assert.Equal(t, float64(6), v)
}

func TestClusterXMLRoundTripsThroughFile(t *testing.T) {
	minV, maxV := matter.UintValue(0), matter.UintValue(254)
	cluster := matter.Cluster{
		ID:       6,
		Name:     "OnOff",
		Revision: 4,
		Summary:  "Attributes and commands for switching between on/off states.",
		Side:     matter.SideServer,
		Classification: &matter.ClusterClassification{
			Hierarchy: matter.HierarchyBase,
			Role:      "application",
			Scope:     "Endpoint",
		},
		FeatureMap: []matter.Feature{
			{Bit: 0, Code: "LT", Name: "Lighting", Conformance: &matter.Conformance{Kind: matter.ConformanceOptional}},
		},
		Attributes: []matter.Attribute{
			{
				ID:          0,
				Name:        "OnOff",
				Type:        "bool",
				Conformance: &matter.Conformance{Kind: matter.ConformanceMandatory},
				Quality:     &matter.OtherQuality{Reportable: boolPtr(true)},
			},
			{
				ID:   0x4000,
				Name: "GlobalSceneControl",
				Type: "bool",
				Conformance: &matter.Conformance{
					Kind:      matter.ConformanceOptional,
					Condition: map[string]interface{}{"feature": map[string]interface{}{"name": "LT"}},
				},
				Constraint: &matter.Constraint{Type: matter.ConstraintBetween, Min: &minV, Max: &maxV},
			},
		},
		ClientCommands: []matter.Command{
			{ID: 0, Name: "Off", Direction: matter.DirectionCommandToServer, Response: matter.ResponseNone,
				Conformance: &matter.Conformance{Kind: matter.ConformanceMandatory}},
		},
		Enums: map[string][]matter.Item{
			"SomeEnum": {
				{Value: 0, Name: "A", Conformance: &matter.Conformance{Kind: matter.ConformanceMandatory}},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "cluster.xml")
	require.NoError(t, SaveClusterXML(path, []matter.Cluster{cluster}))

	loaded, err := LoadClusterXMLFile(path)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	lc := loaded[0]
	assert.Equal(t, uint32(6), lc.ID)
	assert.Equal(t, "OnOff", lc.Name)
	assert.Equal(t, matter.SideServer, lc.Side)
	require.Len(t, lc.Attributes, 2)
	assert.Equal(t, matter.ConformanceMandatory, lc.Attributes[0].Conformance.Kind)
	require.NotNil(t, lc.Attributes[1].Constraint)
	assert.Equal(t, matter.ConstraintBetween, lc.Attributes[1].Constraint.Type)
	assert.Equal(t, float64(254), lc.Attributes[1].Constraint.Max.Float64())
	require.Contains(t, lc.Enums, "SomeEnum")
	assert.Equal(t, "A", lc.Enums["SomeEnum"][0].Name)
	require.Len(t, lc.ClientCommands, 1)
	assert.Equal(t, "Off", lc.ClientCommands[0].Name)
}

func TestDeviceXMLRoundTripsThroughFile(t *testing.T) {
	device := &matter.Device{
		ID:   0x0100,
		Name: "OnOffLight",
		Classification: &matter.DeviceClassification{
			Superset: "", Class: "simple", Scope: "endpoint",
		},
		Clusters: []matter.Cluster{
			{ID: 6, Side: matter.SideServer, Conformance: &matter.Conformance{Kind: matter.ConformanceMandatory}},
		},
	}
	path := filepath.Join(t.TempDir(), "device.xml")
	require.NoError(t, SaveDeviceXML(path, device))

	loaded, err := LoadDeviceXMLFile(path)
	require.NoError(t, err)
	assert.Equal(t, "OnOffLight", loaded.Name)
	require.Len(t, loaded.Clusters, 1)
	assert.Equal(t, uint32(6), loaded.Clusters[0].ID)
	assert.Equal(t, matter.SideServer, loaded.Clusters[0].Side)
}

func boolPtr(b bool) *bool { return &b }
