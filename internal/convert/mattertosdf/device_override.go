package mattertosdf

import (
	"github.com/onedm/sdf-matter-translator/internal/convert/merge"
	"github.com/onedm/sdf-matter-translator/internal/model/matter"
)

// deviceOverrideFromRef converts the thin, override-only matter.Cluster a
// <clusterRef> element parses into into the merge.DeviceOverride that
// merge.DeviceCluster applies onto the referenced cluster's full definition.
func deviceOverrideFromRef(ref matter.Cluster) merge.DeviceOverride {
	ov := merge.DeviceOverride{
		ClusterID:   ref.ID,
		Side:        ref.Side,
		Conformance: ref.Conformance,
	}
	if len(ref.FeatureMap) > 0 {
		ov.FeatureOverrides = make(map[string]*matter.Conformance, len(ref.FeatureMap))
		for _, f := range ref.FeatureMap {
			ov.FeatureOverrides[f.Code] = f.Conformance
		}
	}
	if len(ref.Attributes) > 0 {
		ov.AttributeOverrides = make(map[uint32]merge.AttributeOverride, len(ref.Attributes))
		for _, a := range ref.Attributes {
			ov.AttributeOverrides[a.ID] = merge.AttributeOverride{
				Access:      a.Access,
				Constraint:  a.Constraint,
				Conformance: a.Conformance,
				Quality:     a.Quality,
				Default:     a.Default,
				Type:        a.Type,
			}
		}
	}
	if len(ref.ClientCommands) > 0 {
		ov.CommandOverrides = make(map[uint32]merge.CommandOverride, len(ref.ClientCommands))
		for _, c := range ref.ClientCommands {
			ov.CommandOverrides[c.ID] = merge.CommandOverride{
				Access:      c.Access,
				Conformance: c.Conformance,
				Response:    c.Response,
			}
		}
	}
	if len(ref.Events) > 0 {
		ov.EventOverrides = make(map[uint32]merge.EventOverride, len(ref.Events))
		for _, e := range ref.Events {
			ov.EventOverrides[e.ID] = merge.EventOverride{
				Access:      e.Access,
				Conformance: e.Conformance,
				Quality:     e.Quality,
				Priority:    e.Priority,
			}
		}
	}
	return ov
}
