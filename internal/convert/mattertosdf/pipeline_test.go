package mattertosdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onedm/sdf-matter-translator/internal/model/matter"
	"github.com/onedm/sdf-matter-translator/internal/model/sdf"
)

func TestConvertBareClusterToObject(t *testing.T) {
	cluster := matter.Cluster{
		ID:   6,
		Name: "OnOff",
		Attributes: []matter.Attribute{
			{ID: 0, Name: "OnOff", Type: "bool", Conformance: &matter.Conformance{Kind: matter.ConformanceMandatory}},
		},
	}

	p := New()
	model, mapping, err := p.Convert(nil, []matter.Cluster{cluster})
	require.NoError(t, err)
	require.Contains(t, model.Objects, "OnOff")
	obj := model.Objects["OnOff"]
	require.Contains(t, obj.Properties, "OnOff")
	assert.Equal(t, sdf.TypeBoolean, obj.Properties["OnOff"].Type)

	_, ok := mapping.Get("#/sdfObject/OnOff", "id")
	assert.True(t, ok)
}

func TestConvertDisallowedAttributeDropped(t *testing.T) {
	cluster := matter.Cluster{
		Name: "Test",
		Attributes: []matter.Attribute{
			{Name: "Visible", Type: "bool", Conformance: &matter.Conformance{Kind: matter.ConformanceMandatory}},
			{Name: "Hidden", Type: "bool", Conformance: &matter.Conformance{Kind: matter.ConformanceDisallowed, Condition: map[string]interface{}{}}},
		},
	}
	p := New()
	model, _, err := p.Convert(nil, []matter.Cluster{cluster})
	require.NoError(t, err)
	obj := model.Objects["Test"]
	assert.Contains(t, obj.Properties, "Visible")
	assert.NotContains(t, obj.Properties, "Hidden")
}

func TestConvertDeviceProducesThingWithSideSuffixedKeys(t *testing.T) {
	cluster := matter.Cluster{
		ID:   6,
		Name: "OnOff",
		Attributes: []matter.Attribute{
			{Name: "OnOff", Type: "bool", Conformance: &matter.Conformance{Kind: matter.ConformanceMandatory}},
		},
	}
	device := &matter.Device{
		Name:     "Light",
		Clusters: []matter.Cluster{{ID: 6, Side: matter.SideServer}},
	}

	p := New()
	model, _, err := p.Convert(device, []matter.Cluster{cluster})
	require.NoError(t, err)
	require.Contains(t, model.Things, "Light")
	thing := model.Things["Light"]
	assert.Contains(t, thing.Objects, "OnOff_Server")
}

func TestConvertFeatureMapSupportedFeaturesGateAttributes(t *testing.T) {
	cluster := matter.Cluster{
		Name: "LevelControl",
		FeatureMap: []matter.Feature{
			{Code: "LT", Conformance: &matter.Conformance{Kind: matter.ConformanceMandatory}},
		},
		Attributes: []matter.Attribute{
			{
				Name: "MinLevel",
				Type: "uint8",
				Conformance: &matter.Conformance{
					Kind:      matter.ConformanceOptional,
					Condition: map[string]interface{}{"feature": map[string]interface{}{"name": "LT"}},
				},
			},
		},
	}
	p := New()
	model, _, err := p.Convert(nil, []matter.Cluster{cluster})
	require.NoError(t, err)
	assert.Contains(t, model.Objects["LevelControl"].Properties, "MinLevel")
}

func TestConvertDeviceAppliesClusterRefOverride(t *testing.T) {
	cluster := matter.Cluster{
		ID:   6,
		Name: "OnOff",
		Attributes: []matter.Attribute{
			{ID: 0, Name: "OnOff", Type: "bool", Access: &matter.Access{}},
		},
	}
	readTrue := true
	device := &matter.Device{
		Name: "Light",
		Clusters: []matter.Cluster{
			{
				ID:   6,
				Side: matter.SideServer,
				Attributes: []matter.Attribute{
					{ID: 0, Access: &matter.Access{Read: &readTrue}},
				},
			},
		},
	}

	p := New()
	_, mapping, err := p.Convert(device, []matter.Cluster{cluster})
	require.NoError(t, err)
	access, ok := mapping.Get("#/sdfThing/Light/sdfObject/OnOff_Server/sdfProperty/OnOff", "access")
	require.True(t, ok)
	accessMap, ok := access.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, accessMap["read"])
}

func TestConvertEnumMaterializesSdfData(t *testing.T) {
	cluster := matter.Cluster{
		Name: "ModeSelect",
		Enums: map[string][]matter.Item{
			"ModeEnum": {
				{Value: 0, Name: "Off", Conformance: &matter.Conformance{Kind: matter.ConformanceMandatory}},
				{Value: 1, Name: "On", Conformance: &matter.Conformance{Kind: matter.ConformanceMandatory}},
			},
		},
		Attributes: []matter.Attribute{
			{Name: "CurrentMode", Type: "ModeEnum", Conformance: &matter.Conformance{Kind: matter.ConformanceMandatory}},
		},
	}
	p := New()
	model, _, err := p.Convert(nil, []matter.Cluster{cluster})
	require.NoError(t, err)
	obj := model.Objects["ModeSelect"]
	assert.Equal(t, "#/sdfObject/ModeSelect/sdfData/ModeEnum", obj.Properties["CurrentMode"].SdfRef)
	require.Contains(t, obj.Data, "ModeEnum")
	assert.Equal(t, sdf.TypeInteger, obj.Data["ModeEnum"].Type)
	assert.Contains(t, obj.Data["ModeEnum"].SdfChoice, "On")
}

func TestConvertConstraintBetweenSetsBounds(t *testing.T) {
	minV, maxV := matter.UintValue(10), matter.UintValue(20)
	cluster := matter.Cluster{
		Name: "Test",
		Attributes: []matter.Attribute{
			{
				Name:        "Bounded",
				Type:        "uint8",
				Conformance: &matter.Conformance{Kind: matter.ConformanceMandatory},
				Constraint:  &matter.Constraint{Type: matter.ConstraintBetween, Min: &minV, Max: &maxV},
			},
		},
	}
	p := New()
	model, _, err := p.Convert(nil, []matter.Cluster{cluster})
	require.NoError(t, err)
	prop := model.Objects["Test"].Properties["Bounded"]
	require.NotNil(t, prop.Minimum)
	require.NotNil(t, prop.Maximum)
	assert.Equal(t, float64(10), *prop.Minimum)
	assert.Equal(t, float64(20), *prop.Maximum)
}
