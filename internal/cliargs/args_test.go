package cliargs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_SdfToMatterRequiresPaths(t *testing.T) {
	a := &Args{Direction: DirectionSdfToMatter}
	err := Validate(a)
	require.Error(t, err)

	a.SDFModelPath = "model.sdf.json"
	a.SDFMappingPath = "mapping.json"
	assert.NoError(t, Validate(a))
}

func TestValidate_MatterToSdfRequiresClusterXML(t *testing.T) {
	a := &Args{Direction: DirectionMatterToSdf}
	err := Validate(a)
	require.Error(t, err)

	a.ClusterXMLPath = "cluster.xml"
	assert.NoError(t, Validate(a))
}

func TestValidate_NoDirectionIsAnError(t *testing.T) {
	err := Validate(&Args{})
	assert.Error(t, err)
}

func TestValidate_ServeRequiresAddr(t *testing.T) {
	err := Validate(&Args{Serve: true})
	assert.Error(t, err)

	assert.NoError(t, Validate(&Args{Serve: true, ServeAddr: "0.0.0.0:8080"}))
}

func TestValidate_DeviceXMLOptionalForMatterToSdf(t *testing.T) {
	a := &Args{Direction: DirectionMatterToSdf, ClusterXMLPath: "cluster.xml"}
	assert.NoError(t, Validate(a))
	a.DeviceXMLPath = "device.xml"
	assert.NoError(t, Validate(a))
}
