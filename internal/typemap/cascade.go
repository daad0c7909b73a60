package typemap

import (
	"github.com/onedm/sdf-matter-translator/internal/model/matter"
	"github.com/onedm/sdf-matter-translator/internal/model/sdf"
)

// Registry lets the SDF->Matter cascade materialize a cluster-local custom
// type (enum/bitmap/struct) when an sdfChoice or object shape does not match
// any closed Matter type. A Cluster adapter over this interface lives in
// internal/convert/sdftomatter; tests use an in-memory fake.
type Registry interface {
	// DeclareEnum registers a cluster-local enum type built from the
	// sdfChoice branch names (in map iteration order is not guaranteed by
	// Go, so callers must pass a deterministic, pre-sorted name list) and
	// returns the type name to reference from the field/attribute.
	DeclareEnum(hint string, items []matter.Item) string

	// DeclareBitmap registers a cluster-local bitmap type from a set of
	// named bit positions and returns the type name.
	DeclareBitmap(hint string, bits []matter.Bitfield) string

	// DeclareStruct registers a cluster-local struct type from a set of
	// fields and returns the type name.
	DeclareStruct(hint string, fields []matter.DataField) string
}

// Cascade implements the SDF->Matter type/constraint mapping: given an
// sdf.DataQuality and a Registry for materializing cluster-local
// custom types, produce the Matter type name and constraint to assign to the
// attribute/field/event that carries it.
type Cascade struct {
	Registry Registry
}

// NewCascade returns a Cascade bound to reg.
func NewCascade(reg Registry) *Cascade {
	return &Cascade{Registry: reg}
}

// Result is the outcome of mapping one sdf.DataQuality.
type Result struct {
	TypeName   string
	Constraint *matter.Constraint
	Quality    *matter.OtherQuality
}

// Map dispatches dq to the appropriate branch of the cascade based on its SDF
// type tag, in decision order: sdfChoice first (closed
// enumeration wins over raw type), then sdfRef (re-resolve a prior
// cluster-local type by pointer), then the plain JSON type.
func (c *Cascade) Map(dq *sdf.DataQuality, hint string) (Result, error) {
	quality := &matter.OtherQuality{}
	if dq.Nullable != nil {
		quality.Nullable = dq.Nullable
	}

	if len(dq.SdfChoice) > 0 {
		return c.mapChoice(dq, hint, quality)
	}
	if dq.SdfRef != "" {
		return Result{TypeName: refLocalName(dq.SdfRef), Quality: quality}, nil
	}

	switch dq.Type {
	case sdf.TypeBoolean:
		return Result{TypeName: "bool", Quality: quality}, nil
	case sdf.TypeInteger:
		return c.mapInteger(dq, quality)
	case sdf.TypeNumber:
		return c.mapNumber(dq, quality)
	case sdf.TypeString:
		return c.mapString(dq, quality)
	case sdf.TypeArray:
		return c.mapArray(dq, hint, quality)
	case sdf.TypeObject:
		return c.mapObject(dq, hint, quality)
	default:
		return Result{TypeName: "octstr", Quality: quality}, nil
	}
}

func refLocalName(ref string) string {
	for i := len(ref) - 1; i >= 0; i-- {
		if ref[i] == '/' {
			return ref[i+1:]
		}
	}
	return ref
}

func (c *Cascade) mapChoice(dq *sdf.DataQuality, hint string, quality *matter.OtherQuality) (Result, error) {
	names := sortedKeys(dq.SdfChoice)
	allInt := true
	items := make([]matter.Item, 0, len(names))
	for i, name := range names {
		branch := dq.SdfChoice[name]
		v := int64(i)
		if branch.Const != nil {
			if f, ok := branch.Const.(float64); ok {
				v = int64(f)
			} else {
				allInt = false
			}
		}
		items = append(items, matter.Item{Value: v, Name: name})
	}
	if !allInt {
		// Non-integer choice values cannot be represented as a Matter
		// enum; fall back to a struct of mutually exclusive fields is out
		// of scope, so degrade to string and record the choice in the
		// mapping document at the caller.
		return Result{TypeName: "octstr", Quality: quality}, nil
	}
	typeName := c.Registry.DeclareEnum(hint, items)
	return Result{TypeName: typeName, Quality: quality}, nil
}

func sortedKeys(m map[string]*sdf.DataQuality) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

func (c *Cascade) mapInteger(dq *sdf.DataQuality, quality *matter.OtherQuality) (Result, error) {
	if unit, ok := overrideForUnit(dq); ok {
		return Result{TypeName: unit, Quality: quality}, nil
	}
	fit := FitInteger(dq.Minimum, dq.Maximum, constAsFloat(dq.Const))
	return Result{TypeName: fit.TypeName, Constraint: fit.Constraint, Quality: quality}, nil
}

func overrideForUnit(dq *sdf.DataQuality) (string, bool) {
	if dq.Unit == "" || dq.Minimum == nil || dq.Maximum == nil {
		return "", false
	}
	return DerivedUnitOverride(dq.Unit, *dq.Minimum, *dq.Maximum)
}

func constAsFloat(v sdf.JSONValue) *float64 {
	if v == nil {
		return nil
	}
	if f, ok := v.(float64); ok {
		return &f
	}
	return nil
}

func (c *Cascade) mapNumber(dq *sdf.DataQuality, quality *matter.OtherQuality) (Result, error) {
	min, max := float64(0), float64(0)
	if dq.Minimum != nil {
		min = *dq.Minimum
	}
	if dq.Maximum != nil {
		max = *dq.Maximum
	}
	if dq.Minimum != nil && dq.Maximum != nil && min >= -3.40282347e+38 && max <= 3.40282347e+38 {
		return Result{TypeName: "single", Quality: quality}, nil
	}
	return Result{TypeName: "double", Quality: quality}, nil
}

func (c *Cascade) mapString(dq *sdf.DataQuality, quality *matter.OtherQuality) (Result, error) {
	if dq.SdfType == sdf.SdfTypeByteString {
		switch {
		case dq.MinLength != nil && dq.MaxLength != nil && *dq.MinLength == 8 && *dq.MaxLength == 8:
			return Result{TypeName: "ipv4adr", Quality: quality}, nil
		case dq.MinLength != nil && dq.MaxLength != nil && *dq.MinLength == 32 && *dq.MaxLength == 32:
			return Result{TypeName: "ipv6adr", Quality: quality}, nil
		default:
			return Result{TypeName: "octstr", Quality: quality}, nil
		}
	}
	if dq.MinLength != nil && dq.MaxLength != nil && *dq.MinLength == 12 && *dq.MaxLength == 16 {
		return Result{TypeName: "hwadr", Quality: quality}, nil
	}
	var c2 *matter.Constraint
	switch {
	case dq.MinLength != nil && dq.MaxLength != nil:
		minV, maxV := matter.UintValue(uint64(*dq.MinLength)), matter.UintValue(uint64(*dq.MaxLength))
		c2 = &matter.Constraint{Type: matter.ConstraintLengthBetween, Min: &minV, Max: &maxV}
	case dq.MaxLength != nil:
		maxV := matter.UintValue(uint64(*dq.MaxLength))
		c2 = &matter.Constraint{Type: matter.ConstraintMaxLength, Max: &maxV}
	case dq.MinLength != nil:
		minV := matter.UintValue(uint64(*dq.MinLength))
		c2 = &matter.Constraint{Type: matter.ConstraintMinLength, Min: &minV}
	}
	return Result{TypeName: "string", Constraint: c2, Quality: quality}, nil
}

func (c *Cascade) mapArray(dq *sdf.DataQuality, hint string, quality *matter.OtherQuality) (Result, error) {
	if dq.UniqueItems != nil && *dq.UniqueItems && dq.Items != nil && len(dq.Items.SdfChoice) > 0 {
		typeName := c.declareBitmapFromChoice(dq.Items.SdfChoice, hint)
		return Result{TypeName: typeName, Quality: quality}, nil
	}

	var entryType string
	if dq.Items != nil {
		sub, err := c.Map(dq.Items, hint+"Entry")
		if err != nil {
			return Result{}, err
		}
		entryType = sub.TypeName
	} else {
		entryType = "octstr"
	}

	var c2 *matter.Constraint
	switch {
	case dq.MinItems != nil && dq.MaxItems != nil:
		minV, maxV := matter.UintValue(uint64(*dq.MinItems)), matter.UintValue(uint64(*dq.MaxItems))
		c2 = &matter.Constraint{Type: matter.ConstraintCountBetween, Min: &minV, Max: &maxV, EntryType: entryType}
	case dq.MaxItems != nil:
		maxV := matter.UintValue(uint64(*dq.MaxItems))
		c2 = &matter.Constraint{Type: matter.ConstraintMaxCount, Max: &maxV, EntryType: entryType}
	case dq.MinItems != nil:
		minV := matter.UintValue(uint64(*dq.MinItems))
		c2 = &matter.Constraint{Type: matter.ConstraintMinCount, Min: &minV, EntryType: entryType}
	default:
		c2 = &matter.Constraint{Type: matter.ConstraintDesc, EntryType: entryType}
	}
	return Result{TypeName: "list", Constraint: c2, Quality: quality}, nil
}

// declareBitmapFromChoice materializes a global bitmap type from an array's
// unique_items sdf_choice set: each choice entry becomes a mandatory bit,
// in a bit position matching its sorted-name index unless the branch itself
// declares a const value.
func (c *Cascade) declareBitmapFromChoice(choice map[string]*sdf.DataQuality, hint string) string {
	names := sortedKeys(choice)
	bits := make([]matter.Bitfield, 0, len(names))
	mandatory := &matter.Conformance{Kind: matter.ConformanceMandatory}
	for i, name := range names {
		bit := i
		branch := choice[name]
		if branch.Const != nil {
			if f, ok := branch.Const.(float64); ok {
				bit = int(f)
			}
		}
		bits = append(bits, matter.Bitfield{Bit: bit, Name: name, Conformance: mandatory})
	}
	return c.Registry.DeclareBitmap(hint, bits)
}

func (c *Cascade) mapObject(dq *sdf.DataQuality, hint string, quality *matter.OtherQuality) (Result, error) {
	if len(dq.Properties) == 0 {
		return Result{TypeName: "struct", Quality: quality}, nil
	}
	names := sortedKeys(dq.Properties)
	required := make(map[string]bool, len(dq.Required))
	for _, r := range dq.Required {
		required[r] = true
	}
	fields := make([]matter.DataField, 0, len(names))
	for i, name := range names {
		sub, err := c.Map(dq.Properties[name], hint+name)
		if err != nil {
			return Result{}, err
		}
		conf := &matter.Conformance{Kind: matter.ConformanceOptional}
		if required[name] {
			conf = &matter.Conformance{Kind: matter.ConformanceMandatory}
		}
		fields = append(fields, matter.DataField{
			ID:          uint32(i),
			Name:        name,
			Type:        sub.TypeName,
			Conformance: conf,
			Constraint:  sub.Constraint,
			Quality:     sub.Quality,
		})
	}
	typeName := c.Registry.DeclareStruct(hint, fields)
	return Result{TypeName: typeName, Quality: quality}, nil
}
