package typemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onedm/sdf-matter-translator/internal/model/matter"
	"github.com/onedm/sdf-matter-translator/internal/model/sdf"
)

func TestUintMaxOpenQuestionFix(t *testing.T) {
	// The resolved Open Question: UintMax(64) must be the upper bound, not
	// the lower bound of uint64's range.
	assert.Equal(t, float64(255), UintMax(8))
	assert.Greater(t, UintMax(64), UintMax(56))
}

func TestFitIntegerNativeBoundsNoConstraint(t *testing.T) {
	min, max := 0.0, 255.0
	fit := FitInteger(&min, &max, nil)
	assert.Equal(t, "uint8", fit.TypeName)
	assert.Nil(t, fit.Constraint)
}

func TestFitIntegerBetweenConstraint(t *testing.T) {
	min, max := 10.0, 20.0
	fit := FitInteger(&min, &max, nil)
	assert.Equal(t, "uint8", fit.TypeName)
	require.NotNil(t, fit.Constraint)
	assert.Equal(t, matter.ConstraintBetween, fit.Constraint.Type)
	assert.Equal(t, uint64(10), fit.Constraint.Min.U)
	assert.Equal(t, uint64(20), fit.Constraint.Max.U)
}

func TestFitIntegerMaxOnlyConstraint(t *testing.T) {
	min, max := 0.0, 200.0
	fit := FitInteger(&min, &max, nil)
	assert.Equal(t, "uint8", fit.TypeName)
	require.NotNil(t, fit.Constraint)
	assert.Equal(t, matter.ConstraintMax, fit.Constraint.Type)
}

func TestFitIntegerMinOnlyConstraint(t *testing.T) {
	min, max := 5.0, 255.0
	fit := FitInteger(&min, &max, nil)
	require.NotNil(t, fit.Constraint)
	assert.Equal(t, matter.ConstraintMin, fit.Constraint.Type)
}

func TestFitIntegerSigned(t *testing.T) {
	min, max := -10.0, 10.0
	fit := FitInteger(&min, &max, nil)
	assert.Equal(t, "int8", fit.TypeName)
}

func TestFitIntegerConstValueForcesAllowed(t *testing.T) {
	min, max, cv := 0.0, 255.0, 7.0
	fit := FitInteger(&min, &max, &cv)
	require.NotNil(t, fit.Constraint)
	assert.Equal(t, matter.ConstraintAllowed, fit.Constraint.Type)
}

func TestFitIntegerMonotonicity(t *testing.T) {
	// Widening the range never narrows the chosen type's width.
	widthOf := func(name string) int {
		for _, n := range uintWidths {
			if name == uintTypeName(n) {
				return n
			}
		}
		for _, n := range intWidths {
			if name == intTypeName(n) {
				return n
			}
		}
		return -1
	}
	prevWidth := -1
	for _, max := range []float64{1, 200, 70000, 5_000_000, 5_000_000_000} {
		min := 0.0
		fit := FitInteger(&min, &max, nil)
		w := widthOf(fit.TypeName)
		assert.GreaterOrEqual(t, w, prevWidth)
		prevWidth = w
	}
}

func TestMatterToSDFBool(t *testing.T) {
	dq := MatterToSDF("bool", "/Clusters/OnOff")
	assert.Equal(t, sdf.TypeBoolean, dq.Type)
}

func TestMatterToSDFUintN(t *testing.T) {
	dq := MatterToSDF("uint16", "/Clusters/LevelControl")
	assert.Equal(t, sdf.TypeInteger, dq.Type)
	assert.Equal(t, float64(0), *dq.Minimum)
	assert.Equal(t, UintMax(16), *dq.Maximum)
}

func TestMatterToSDFIntN(t *testing.T) {
	dq := MatterToSDF("int8", "/Clusters/Foo")
	assert.Equal(t, IntMin(8), *dq.Minimum)
	assert.Equal(t, IntMax(8), *dq.Maximum)
}

func TestMatterToSDFPercent(t *testing.T) {
	dq := MatterToSDF("percent", "/x")
	assert.Equal(t, "/100", dq.Unit)
	assert.Equal(t, float64(0), *dq.Minimum)
	assert.Equal(t, float64(100), *dq.Maximum)
}

func TestMatterToSDFUnknownClusterLocalType(t *testing.T) {
	dq := MatterToSDF("ModeTagStruct", "/Clusters/ModeSelect")
	assert.Equal(t, sdf.TypeObject, dq.Type)
	assert.Equal(t, "/Clusters/ModeSelect/ModeTagStruct", dq.SdfRef)
}

func TestMatterToSDFPriorityRoundTrips(t *testing.T) {
	dq := MatterToSDF("priority", "/")
	require.Len(t, dq.SdfChoice, 3)
	assert.Contains(t, dq.SdfChoice, "CRITICAL")
}

func TestDerivedUnitOverride(t *testing.T) {
	name, ok := DerivedUnitOverride("/100", 0, 100)
	assert.True(t, ok)
	assert.Equal(t, "percent", name)

	_, ok = DerivedUnitOverride("/100", 0, 99)
	assert.False(t, ok)
}

// fakeRegistry is an in-memory Registry for exercising the SDF->Matter
// cascade without a real cluster model.
type fakeRegistry struct {
	enums   int
	bitmaps int
	structs int
}

func (f *fakeRegistry) DeclareEnum(hint string, items []matter.Item) string {
	f.enums++
	return hint + "Enum"
}

func (f *fakeRegistry) DeclareBitmap(hint string, bits []matter.Bitfield) string {
	f.bitmaps++
	return hint + "Bitmap"
}

func (f *fakeRegistry) DeclareStruct(hint string, fields []matter.DataField) string {
	f.structs++
	return hint + "Struct"
}

func TestCascadeInteger(t *testing.T) {
	reg := &fakeRegistry{}
	c := NewCascade(reg)
	min, max := 0.0, 255.0
	res, err := c.Map(&sdf.DataQuality{Type: sdf.TypeInteger, Minimum: &min, Maximum: &max}, "Field")
	require.NoError(t, err)
	assert.Equal(t, "uint8", res.TypeName)
	assert.Nil(t, res.Constraint)
}

func TestCascadeChoiceDeclaresEnum(t *testing.T) {
	reg := &fakeRegistry{}
	c := NewCascade(reg)
	dq := &sdf.DataQuality{
		Type: sdf.TypeInteger,
		SdfChoice: map[string]*sdf.DataQuality{
			"Auto":   {Type: sdf.TypeInteger, Const: float64(0)},
			"Manual": {Type: sdf.TypeInteger, Const: float64(1)},
		},
	}
	res, err := c.Map(dq, "Mode")
	require.NoError(t, err)
	assert.Equal(t, "ModeEnum", res.TypeName)
	assert.Equal(t, 1, reg.enums)
}

func TestCascadeObjectDeclaresStruct(t *testing.T) {
	reg := &fakeRegistry{}
	c := NewCascade(reg)
	min, max := 0.0, 255.0
	dq := &sdf.DataQuality{
		Type: sdf.TypeObject,
		Properties: map[string]*sdf.DataQuality{
			"Value": {Type: sdf.TypeInteger, Minimum: &min, Maximum: &max},
		},
		Required: []string{"Value"},
	}
	res, err := c.Map(dq, "Measurement")
	require.NoError(t, err)
	assert.Equal(t, "MeasurementStruct", res.TypeName)
	assert.Equal(t, 1, reg.structs)
}

func TestCascadeUnitOverride(t *testing.T) {
	reg := &fakeRegistry{}
	c := NewCascade(reg)
	min, max := -9223372036854775808.0, 9223372036854775807.0
	dq := &sdf.DataQuality{Type: sdf.TypeInteger, Minimum: &min, Maximum: &max, Unit: "mV"}
	res, err := c.Map(dq, "Voltage")
	require.NoError(t, err)
	assert.Equal(t, "voltage-mV", res.TypeName)
}

func TestCascadeArrayCountConstraint(t *testing.T) {
	reg := &fakeRegistry{}
	c := NewCascade(reg)
	minI, maxI := 1, 8
	dq := &sdf.DataQuality{
		Type:     sdf.TypeArray,
		MinItems: &minI,
		MaxItems: &maxI,
		Items:    &sdf.DataQuality{Type: sdf.TypeInteger},
	}
	res, err := c.Map(dq, "Entries")
	require.NoError(t, err)
	assert.Equal(t, "list", res.TypeName)
	require.NotNil(t, res.Constraint)
	assert.Equal(t, matter.ConstraintCountBetween, res.Constraint.Type)
}

func TestCascadeUniqueChoiceArrayDeclaresBitmap(t *testing.T) {
	reg := &fakeRegistry{}
	c := NewCascade(reg)
	unique := true
	dq := &sdf.DataQuality{
		Type:        sdf.TypeArray,
		UniqueItems: &unique,
		Items: &sdf.DataQuality{
			Type: sdf.TypeString,
			SdfChoice: map[string]*sdf.DataQuality{
				"Heat": {Const: float64(0)},
				"Cool": {Const: float64(1)},
			},
		},
	}
	res, err := c.Map(dq, "Modes")
	require.NoError(t, err)
	assert.Equal(t, "ModesBitmap", res.TypeName)
	assert.Nil(t, res.Constraint)
	assert.Equal(t, 1, reg.bitmaps)
}
