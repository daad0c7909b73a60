// Package typemap implements the closed lookup tables and range-fitting
// logic that translate Matter base/derived types and constraints to and
// from SDF data qualities.
package typemap

import (
	"math"

	"github.com/onedm/sdf-matter-translator/internal/model/matter"
)

// uintWidths and intWidths are the Matter integer widths in ascending order,
// matching the type catalog's rows.
var uintWidths = []int{8, 16, 24, 32, 40, 48, 56, 64}
var intWidths = []int{8, 16, 24, 32, 40, 48, 56, 64}

// UintMax returns 2^n - 1. Per the resolved Open Question, the
// n=64 case is the upper bound, not numeric_limits<uint64_t>::min().
func UintMax(n int) float64 {
	if n >= 64 {
		return math.MaxUint64
	}
	return math.Exp2(float64(n)) - 1
}

// IntMin returns -2^(n-1).
func IntMin(n int) float64 {
	return -math.Exp2(float64(n - 1))
}

// IntMax returns 2^(n-1) - 1.
func IntMax(n int) float64 {
	return math.Exp2(float64(n-1)) - 1
}

// uintTypeName and intTypeName format a width into the Matter type name.
func uintTypeName(n int) string { return "uint" + itoa(n) }
func intTypeName(n int) string  { return "int" + itoa(n) }

func itoa(n int) string {
	// small, fixed alphabet of widths; avoid importing strconv for one call site
	switch n {
	case 8:
		return "8"
	case 16:
		return "16"
	case 24:
		return "24"
	case 32:
		return "32"
	case 40:
		return "40"
	case 48:
		return "48"
	case 56:
		return "56"
	case 64:
		return "64"
	default:
		return "64"
	}
}

// smallestUint returns the narrowest uintN type whose range [0, 2^N-1]
// covers max.
func smallestUint(max float64) (name string, width int) {
	for _, n := range uintWidths {
		if max <= UintMax(n) {
			return uintTypeName(n), n
		}
	}
	n := uintWidths[len(uintWidths)-1]
	return uintTypeName(n), n
}

// smallestInt returns the narrowest intN type whose range covers [min, max].
func smallestInt(min, max float64) (name string, width int) {
	for _, n := range intWidths {
		if min >= IntMin(n) && max <= IntMax(n) {
			return intTypeName(n), n
		}
	}
	n := intWidths[len(intWidths)-1]
	return intTypeName(n), n
}

// FitResult is the outcome of fitting an SDF numeric range to a Matter
// integer type: the chosen type name and the constraint (if any) that must
// accompany it.
type FitResult struct {
	TypeName   string
	Constraint *matter.Constraint
}

// FitInteger is the integer type fitter: narrows an SDF numeric range to the
// smallest Matter uintN/intN that can hold it. minimum and
// maximum are nil when the corresponding SDF bound was absent; constVal is
// non-nil when the data quality carries an SDF `const`.
func FitInteger(minimum, maximum, constVal *float64) FitResult {
	switch {
	case minimum != nil && maximum != nil:
		return fitBothBounds(*minimum, *maximum, constVal)
	case maximum != nil:
		return fitMaxOnly(*maximum)
	case minimum != nil:
		return fitMinOnly(*minimum)
	default:
		return FitResult{TypeName: "int64"}
	}
}

func fitBothBounds(min, max float64, constVal *float64) FitResult {
	var typeName string
	var width int
	var signed bool
	if min >= 0 {
		typeName, width = smallestUint(max)
	} else {
		typeName, width = smallestInt(min, max)
		signed = true
	}

	var nativeMin, nativeMax float64
	if signed {
		nativeMin, nativeMax = IntMin(width), IntMax(width)
	} else {
		nativeMin, nativeMax = 0, UintMax(width)
	}

	minMatches := min == nativeMin
	maxMatches := max == nativeMax

	var c *matter.Constraint
	switch {
	case constVal != nil:
		v := matter.ValueFromFloat64(*constVal)
		c = &matter.Constraint{Type: matter.ConstraintAllowed, Value: &v}
	case minMatches && maxMatches:
		c = nil
	case !minMatches && !maxMatches:
		minV, maxV := matter.ValueFromFloat64(min), matter.ValueFromFloat64(max)
		c = &matter.Constraint{Type: matter.ConstraintBetween, Min: &minV, Max: &maxV}
	case minMatches && !maxMatches:
		maxV := matter.ValueFromFloat64(max)
		c = &matter.Constraint{Type: matter.ConstraintMax, Max: &maxV}
	default: // !minMatches && maxMatches
		minV := matter.ValueFromFloat64(min)
		c = &matter.Constraint{Type: matter.ConstraintMin, Min: &minV}
	}

	return FitResult{TypeName: typeName, Constraint: c}
}

func fitMaxOnly(max float64) FitResult {
	var typeName string
	if max >= 0 {
		typeName, _ = smallestUint(max)
	} else {
		typeName, _ = smallestInt(max, max)
	}
	return FitResult{TypeName: typeName}
}

func fitMinOnly(min float64) FitResult {
	v := matter.ValueFromFloat64(min)
	return FitResult{TypeName: "int64", Constraint: &matter.Constraint{Type: matter.ConstraintMin, Min: &v}}
}
