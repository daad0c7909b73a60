package mattertosdf

import (
	"github.com/onedm/sdf-matter-translator/internal/conformance"
	"github.com/onedm/sdf-matter-translator/internal/model/matter"
	"github.com/onedm/sdf-matter-translator/internal/model/sdf"
	"github.com/onedm/sdf-matter-translator/internal/typemap"
)

// clusterCatalog resolves a Matter type name against a single cluster's
// local enum/bitmap/struct tables before falling back to the closed
// Matter->SDF base-type catalog, together with the enum/bitmap/struct ->
// sdfData conversion rules.
type clusterCatalog struct {
	cluster      *matter.Cluster
	dataLocation string
	ctx          conformance.Context
	data         map[string]*sdf.DataQuality
}

func newClusterCatalog(c *matter.Cluster, dataLocation string, ctx conformance.Context) *clusterCatalog {
	return &clusterCatalog{cluster: c, dataLocation: dataLocation, ctx: ctx, data: make(map[string]*sdf.DataQuality)}
}

// Resolve returns the sdf.DataQuality skeleton for a Matter type name,
// materializing the corresponding sdfData entry as a side effect when the
// type is a cluster-local enum/bitmap/struct.
func (c *clusterCatalog) Resolve(typeName string) *sdf.DataQuality {
	if items, ok := c.cluster.Enums[typeName]; ok {
		if _, done := c.data[typeName]; !done {
			c.data[typeName] = enumToSDF(items, c.ctx)
		}
		return &sdf.DataQuality{Type: sdf.TypeObject, SdfRef: c.dataLocation + "/sdfData/" + typeName}
	}
	if bits, ok := c.cluster.Bitmaps[typeName]; ok {
		if _, done := c.data[typeName]; !done {
			c.data[typeName] = bitmapToSDF(bits, c.ctx)
		}
		return &sdf.DataQuality{Type: sdf.TypeObject, SdfRef: c.dataLocation + "/sdfData/" + typeName}
	}
	if fields, ok := c.cluster.Structs[typeName]; ok {
		if _, done := c.data[typeName]; !done {
			c.data[typeName] = c.structToSDF(fields)
		}
		return &sdf.DataQuality{Type: sdf.TypeObject, SdfRef: c.dataLocation + "/sdfData/" + typeName}
	}
	return typemap.MatterToSDF(typeName, c.dataLocation)
}

// enumToSDF implements .5: "Enum -> sdfData: type = integer,
// sdf_choice[name] = {const = value, description = summary}".
func enumToSDF(items []matter.Item, ctx conformance.Context) *sdf.DataQuality {
	choice := make(map[string]*sdf.DataQuality, len(items))
	for _, item := range items {
		if !conformance.Allowed(item.Conformance, ctx) {
			continue
		}
		choice[item.Name] = &sdf.DataQuality{Const: float64(item.Value), Description: item.Summary}
	}
	return &sdf.DataQuality{Type: sdf.TypeInteger, SdfChoice: choice}
}

// bitmapToSDF implements .5: "Bitmap -> sdfData: type = array,
// unique_items = true, items.sdf_choice[name] = {const = bit, description =
// summary}; individual conformance goes to the side-car."
func bitmapToSDF(bits []matter.Bitfield, ctx conformance.Context) *sdf.DataQuality {
	choice := make(map[string]*sdf.DataQuality, len(bits))
	for _, b := range bits {
		if !conformance.Allowed(b.Conformance, ctx) {
			continue
		}
		choice[b.Name] = &sdf.DataQuality{Const: float64(b.Bit), Description: b.Summary}
	}
	t := true
	return &sdf.DataQuality{
		Type:        sdf.TypeArray,
		UniqueItems: &t,
		Items:       &sdf.DataQuality{Type: sdf.TypeString, SdfChoice: choice},
	}
}

// structToSDF implements .5: "Struct -> sdfData: type = object,
// properties[field] = recursive mapping, required populated from fields
// whose conformance is mandatory and evaluates true."
func (c *clusterCatalog) structToSDF(fields []matter.DataField) *sdf.DataQuality {
	props := make(map[string]*sdf.DataQuality, len(fields))
	var required []string
	for _, f := range fields {
		if !conformance.Allowed(f.Conformance, c.ctx) {
			continue
		}
		dq := c.Resolve(f.Type)
		dq = applyConstraint(dq, f.Constraint, c)
		props[f.Name] = dq
		if f.Conformance.Mandatory() && conformance.EvaluateRaw(f.Conformance.Condition, c.ctx) {
			required = append(required, f.Name)
		}
	}
	return &sdf.DataQuality{Type: sdf.TypeObject, Properties: props, Required: required}
}
