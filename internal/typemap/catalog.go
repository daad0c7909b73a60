package typemap

import (
	"fmt"
	"math"

	"github.com/onedm/sdf-matter-translator/internal/model/sdf"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
func boolPtr(b bool) *bool        { return &b }

// ErrUnfittableRange is returned when an SDF numeric range cannot be fit
// into any Matter type.
var ErrUnfittableRange = fmt.Errorf("typemap: numeric range does not fit any Matter type")

// MatterToSDF returns the canonical SDF DataQuality skeleton for a Matter
// type name. dataLocation is the current cluster-local
// sdf_data_location, used to build an sdf_ref for unrecognized (cluster
// local) type names.
func MatterToSDF(typeName, dataLocation string) *sdf.DataQuality {
	switch typeName {
	case "bool":
		return &sdf.DataQuality{Type: sdf.TypeBoolean}
	case "map8":
		return bitmapSkeleton(8)
	case "map16":
		return bitmapSkeleton(16)
	case "map32":
		return bitmapSkeleton(32)
	case "map64":
		return bitmapSkeleton(64)
	case "single":
		return &sdf.DataQuality{Type: sdf.TypeNumber, Minimum: floatPtr(-math.MaxFloat32), Maximum: floatPtr(math.MaxFloat32)}
	case "double":
		return &sdf.DataQuality{Type: sdf.TypeNumber, Minimum: floatPtr(-math.MaxFloat64), Maximum: floatPtr(math.MaxFloat64)}
	case "octstr", "ipadr", "ipv6pre":
		return &sdf.DataQuality{Type: sdf.TypeString, SdfType: sdf.SdfTypeByteString}
	case "ipv4adr":
		return &sdf.DataQuality{Type: sdf.TypeString, MinLength: intPtr(8), MaxLength: intPtr(8), SdfType: sdf.SdfTypeByteString}
	case "ipv6adr":
		return &sdf.DataQuality{Type: sdf.TypeString, MinLength: intPtr(32), MaxLength: intPtr(32), SdfType: sdf.SdfTypeByteString}
	case "hwadr":
		return &sdf.DataQuality{Type: sdf.TypeString, MinLength: intPtr(12), MaxLength: intPtr(16)}
	case "list":
		return &sdf.DataQuality{Type: sdf.TypeArray}
	case "struct":
		return &sdf.DataQuality{Type: sdf.TypeObject}
	case "percent":
		return &sdf.DataQuality{Type: sdf.TypeInteger, Minimum: floatPtr(0), Maximum: floatPtr(100), Unit: "/100"}
	case "percent100ths":
		return &sdf.DataQuality{Type: sdf.TypeInteger, Minimum: floatPtr(0), Maximum: floatPtr(10000), Unit: "/10000"}
	case "temperature":
		return &sdf.DataQuality{Type: sdf.TypeInteger, Minimum: floatPtr(-27315), Maximum: floatPtr(32767)}
	case "power-mW":
		return &sdf.DataQuality{Type: sdf.TypeInteger, Minimum: floatPtr(math.MinInt64), Maximum: floatPtr(math.MaxInt64), Unit: "mW"}
	case "amperage-mA":
		return &sdf.DataQuality{Type: sdf.TypeInteger, Minimum: floatPtr(math.MinInt64), Maximum: floatPtr(math.MaxInt64), Unit: "mA"}
	case "voltage-mV":
		return &sdf.DataQuality{Type: sdf.TypeInteger, Minimum: floatPtr(math.MinInt64), Maximum: floatPtr(math.MaxInt64), Unit: "mV"}
	case "energy-mWh":
		return &sdf.DataQuality{Type: sdf.TypeInteger, Minimum: floatPtr(math.MinInt64), Maximum: floatPtr(math.MaxInt64), Unit: "mWh"}
	case "epoch-us":
		return &sdf.DataQuality{Type: sdf.TypeInteger, Minimum: floatPtr(0), Maximum: floatPtr(UintMax(64)), Unit: "us"}
	case "epoch-s":
		return &sdf.DataQuality{Type: sdf.TypeInteger, Minimum: floatPtr(0), Maximum: floatPtr(UintMax(32)), Unit: "s"}
	case "posix-ms":
		return &sdf.DataQuality{Type: sdf.TypeInteger, Minimum: floatPtr(0), Maximum: floatPtr(UintMax(64)), Unit: "ms", SdfType: sdf.SdfTypeUnixTime}
	case "systime-us":
		return &sdf.DataQuality{Type: sdf.TypeInteger, Minimum: floatPtr(0), Maximum: floatPtr(UintMax(64)), Unit: "us"}
	case "systime-ms":
		return &sdf.DataQuality{Type: sdf.TypeInteger, Minimum: floatPtr(0), Maximum: floatPtr(UintMax(64)), Unit: "ms"}
	case "elapsed-s":
		return &sdf.DataQuality{Type: sdf.TypeInteger, Minimum: floatPtr(0), Maximum: floatPtr(UintMax(32)), Unit: "s"}
	case "utc":
		return &sdf.DataQuality{Type: sdf.TypeInteger, Minimum: floatPtr(0), Maximum: floatPtr(UintMax(32)), Unit: "s"}
	case "enum8":
		return &sdf.DataQuality{Type: sdf.TypeInteger, Minimum: floatPtr(0), Maximum: floatPtr(UintMax(8))}
	case "enum16":
		return &sdf.DataQuality{Type: sdf.TypeInteger, Minimum: floatPtr(0), Maximum: floatPtr(UintMax(16))}
	case "status":
		return &sdf.DataQuality{Type: sdf.TypeInteger, Minimum: floatPtr(0), Maximum: floatPtr(UintMax(8))}
	case "action-id":
		return &sdf.DataQuality{Type: sdf.TypeInteger, Minimum: floatPtr(0), Maximum: floatPtr(UintMax(8))}
	case "fabric-idx":
		return &sdf.DataQuality{Type: sdf.TypeInteger, Minimum: floatPtr(0), Maximum: floatPtr(UintMax(8))}
	case "group-id", "endpoint-no", "vendor-id", "entry-idx", "tag", "namespace":
		return &sdf.DataQuality{Type: sdf.TypeInteger, Minimum: floatPtr(0), Maximum: floatPtr(UintMax(16))}
	case "devtype-id", "cluster-id", "attrib-id", "field-id", "event-id", "command-id", "trans-id", "data-ver":
		return &sdf.DataQuality{Type: sdf.TypeInteger, Minimum: floatPtr(0), Maximum: floatPtr(UintMax(32))}
	case "fabric-id", "node-id", "event-no", "EUI64":
		return &sdf.DataQuality{Type: sdf.TypeInteger, Minimum: floatPtr(0), Maximum: floatPtr(UintMax(64))}
	case "priority":
		return priorityDataQuality()
	case "tod":
		return todDataQuality()
	case "date":
		return dateDataQuality()
	case "semtag":
		return semtagDataQuality()
	default:
		if uw, ok := uintWidth(typeName); ok {
			return &sdf.DataQuality{Type: sdf.TypeInteger, Minimum: floatPtr(0), Maximum: floatPtr(UintMax(uw))}
		}
		if iw, ok := intWidth(typeName); ok {
			return &sdf.DataQuality{Type: sdf.TypeInteger, Minimum: floatPtr(IntMin(iw)), Maximum: floatPtr(IntMax(iw))}
		}
		// Unknown, cluster-local type name: object referencing the type by location.
		return &sdf.DataQuality{Type: sdf.TypeObject, SdfRef: dataLocation + "/" + typeName}
	}
}

func uintWidth(typeName string) (int, bool) {
	for _, n := range uintWidths {
		if typeName == uintTypeName(n) {
			return n, true
		}
	}
	return 0, false
}

func intWidth(typeName string) (int, bool) {
	for _, n := range intWidths {
		if typeName == intTypeName(n) {
			return n, true
		}
	}
	return 0, false
}

func bitmapSkeleton(bits int) *sdf.DataQuality {
	return &sdf.DataQuality{
		Type:        sdf.TypeArray,
		UniqueItems: boolPtr(true),
		MaxItems:    intPtr(bits),
	}
}

// PriorityChoices is the fixed sdf_choice table for the Matter "priority"
// type.
var PriorityChoices = []struct {
	Name  string
	Const int
}{
	{"DEBUG", 0},
	{"INFO", 1},
	{"CRITICAL", 2},
}

func priorityDataQuality() *sdf.DataQuality {
	choices := make(map[string]*sdf.DataQuality, len(PriorityChoices))
	for _, c := range PriorityChoices {
		choices[c.Name] = &sdf.DataQuality{Type: sdf.TypeInteger, Const: float64(c.Const)}
	}
	return &sdf.DataQuality{Type: sdf.TypeInteger, SdfChoice: choices}
}

func todDataQuality() *sdf.DataQuality {
	field := func(max int) *sdf.DataQuality {
		return &sdf.DataQuality{Type: sdf.TypeInteger, Minimum: floatPtr(0), Maximum: floatPtr(float64(max)), Nullable: boolPtr(true)}
	}
	return &sdf.DataQuality{
		Type: sdf.TypeObject,
		Properties: map[string]*sdf.DataQuality{
			"Hours":      field(23),
			"Minutes":    field(59),
			"Seconds":    field(59),
			"Hundredths": field(99),
		},
	}
}

func dateDataQuality() *sdf.DataQuality {
	field := func(min, max int) *sdf.DataQuality {
		return &sdf.DataQuality{Type: sdf.TypeInteger, Minimum: floatPtr(float64(min)), Maximum: floatPtr(float64(max)), Nullable: boolPtr(true)}
	}
	return &sdf.DataQuality{
		Type: sdf.TypeObject,
		Properties: map[string]*sdf.DataQuality{
			"Year":      field(0, 255),
			"Month":     field(1, 12),
			"Day":       field(1, 31),
			"DayOfWeek": field(1, 7),
		},
		Required: []string{"Year", "Month", "Day", "DayOfWeek"},
	}
}

func semtagDataQuality() *sdf.DataQuality {
	return &sdf.DataQuality{
		Type: sdf.TypeObject,
		Properties: map[string]*sdf.DataQuality{
			"MfgCode":     {Type: sdf.TypeInteger, Nullable: boolPtr(true)},
			"NamespaceID": {Type: sdf.TypeInteger},
			"Tag":         {Type: sdf.TypeInteger},
			"Label":       {Type: sdf.TypeString, Nullable: boolPtr(true)},
		},
		Required: []string{"MfgCode", "NamespaceID", "Tag", "Label"},
	}
}

// DerivedUnitOverride checks whether (unit, min, max) matches one of the
// derived Matter numeric types' canonical range exactly, per the SDF->Matter
// cascade's unit-override rule. Returns the override type name
// and true if so.
func DerivedUnitOverride(unit string, min, max float64) (string, bool) {
	switch unit {
	case "/100":
		if min == 0 && max == 100 {
			return "percent", true
		}
	case "/10000":
		if min == 0 && max == 10000 {
			return "percent100ths", true
		}
	case "mW":
		if min == math.MinInt64 && max == math.MaxInt64 {
			return "power-mW", true
		}
	case "mA":
		if min == math.MinInt64 && max == math.MaxInt64 {
			return "amperage-mA", true
		}
	case "mV":
		if min == math.MinInt64 && max == math.MaxInt64 {
			return "voltage-mV", true
		}
	case "mWh":
		if min == math.MinInt64 && max == math.MaxInt64 {
			return "energy-mWh", true
		}
	case "ms":
		if min == 0 && max == UintMax(64) {
			return "systime-ms", true
		}
	}
	return "", false
}
