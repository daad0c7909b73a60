package sdftomatter

import (
	"fmt"

	"github.com/onedm/sdf-matter-translator/internal/model/matter"
)

// clusterRegistry adapts a single in-construction matter.Cluster to the
// typemap.Registry interface: each Declare* call materializes a cluster-
// local custom type and returns a stable, collision-free name following the
// "CustomEnum<i> / CustomBitmap<i> / CustomStruct<i>" convention, with a
// preference for the caller's hint when it does not collide.
type clusterRegistry struct {
	cluster   *matter.Cluster
	enumSeq   int
	bitmapSeq int
	structSeq int
}

func newClusterRegistry(c *matter.Cluster) *clusterRegistry {
	if c.Enums == nil {
		c.Enums = make(map[string][]matter.Item)
	}
	if c.Bitmaps == nil {
		c.Bitmaps = make(map[string][]matter.Bitfield)
	}
	if c.Structs == nil {
		c.Structs = make(map[string][]matter.DataField)
	}
	return &clusterRegistry{cluster: c}
}

func (r *clusterRegistry) DeclareEnum(hint string, items []matter.Item) string {
	name := r.uniqueName(hint, func(n string) bool { _, ok := r.cluster.Enums[n]; return ok }, &r.enumSeq, "CustomEnum")
	r.cluster.Enums[name] = items
	return name
}

func (r *clusterRegistry) DeclareBitmap(hint string, bits []matter.Bitfield) string {
	name := r.uniqueName(hint, func(n string) bool { _, ok := r.cluster.Bitmaps[n]; return ok }, &r.bitmapSeq, "CustomBitmap")
	r.cluster.Bitmaps[name] = bits
	return name
}

func (r *clusterRegistry) DeclareStruct(hint string, fields []matter.DataField) string {
	name := r.uniqueName(hint, func(n string) bool { _, ok := r.cluster.Structs[n]; return ok }, &r.structSeq, "CustomStruct")
	r.cluster.Structs[name] = fields
	return name
}

func (r *clusterRegistry) uniqueName(hint string, taken func(string) bool, seq *int, prefix string) string {
	if hint != "" && !taken(hint) {
		return hint
	}
	for {
		name := fmt.Sprintf("%s%d", prefix, *seq)
		*seq++
		if !taken(name) {
			return name
		}
	}
}
