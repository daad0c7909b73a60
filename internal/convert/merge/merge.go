// Package merge implements the two structural merge helpers used before the
// Matter->SDF pipeline runs: folding a derived cluster's base members in, and
// applying a device type's per-member overrides onto its referenced clusters
//. Both operations are pure on the target value: unknown names
// are appended, matching names overwrite field-by-field only where the
// override carries a value, and nothing is ever dropped.
package merge

import (
	"fmt"

	"github.com/onedm/sdf-matter-translator/internal/model/matter"
)

// ErrBaseClusterNotFound is a class-5 merge-conflict error: the
// derived cluster's classification names a base that no cluster_aliases
// entry resolves.
type ErrBaseClusterNotFound struct {
	ClusterName string
	BaseName    string
}

func (e *ErrBaseClusterNotFound) Error() string {
	return fmt.Sprintf("merge: cluster %q: base cluster %q not found among cluster aliases", e.ClusterName, e.BaseName)
}

// ErrDeviceClusterNotFound is a class-5 merge-conflict error: a device type
// references a cluster ID absent from the supplied cluster list.
type ErrDeviceClusterNotFound struct {
	DeviceName string
	ClusterID  uint32
}

func (e *ErrDeviceClusterNotFound) Error() string {
	return fmt.Sprintf("merge: device %q: referenced cluster id %d not found in cluster list", e.DeviceName, e.ClusterID)
}

// DerivedCluster locates cluster's base (by scanning every cluster in list
// for a cluster_aliases entry whose name equals cluster.Classification.BaseCluster)
// and splices the base's feature map, attributes, client/server commands,
// events, enums, bitmaps, and structs into cluster. It returns a new Cluster
// value; the input slice/maps are not mutated in place.
func DerivedCluster(cluster matter.Cluster, list []matter.Cluster) (matter.Cluster, error) {
	if cluster.Classification == nil || cluster.Classification.Hierarchy != matter.HierarchyDerived {
		return cluster, nil
	}
	baseName := cluster.Classification.BaseCluster
	base, ok := findByAlias(list, baseName)
	if !ok {
		return cluster, &ErrBaseClusterNotFound{ClusterName: cluster.Name, BaseName: baseName}
	}

	out := cluster
	out.FeatureMap = appendFeatures(base.FeatureMap, cluster.FeatureMap)
	out.Attributes = appendAttributes(base.Attributes, cluster.Attributes)
	out.ClientCommands = appendCommands(base.ClientCommands, cluster.ClientCommands)
	out.ServerCommands = mergeServerCommands(base.ServerCommands, cluster.ServerCommands)
	out.Events = appendEvents(base.Events, cluster.Events)
	out.Enums = mergeEnums(base.Enums, cluster.Enums)
	out.Bitmaps = mergeBitmaps(base.Bitmaps, cluster.Bitmaps)
	out.Structs = mergeStructs(base.Structs, cluster.Structs)
	return out, nil
}

func findByAlias(list []matter.Cluster, name string) (matter.Cluster, bool) {
	for _, c := range list {
		for _, alias := range c.ClusterAliases {
			if alias.Name == name {
				return c, true
			}
		}
	}
	return matter.Cluster{}, false
}

func appendFeatures(base, derived []matter.Feature) []matter.Feature {
	out := append([]matter.Feature{}, base...)
	seen := make(map[string]bool, len(base))
	for _, f := range base {
		seen[f.Code] = true
	}
	for _, f := range derived {
		if seen[f.Code] {
			continue
		}
		out = append(out, f)
	}
	return out
}

func appendAttributes(base, derived []matter.Attribute) []matter.Attribute {
	out := append([]matter.Attribute{}, base...)
	seen := make(map[uint32]bool, len(base))
	for _, a := range base {
		seen[a.ID] = true
	}
	for _, a := range derived {
		if seen[a.ID] {
			continue
		}
		out = append(out, a)
	}
	return out
}

func appendCommands(base, derived []matter.Command) []matter.Command {
	out := append([]matter.Command{}, base...)
	seen := make(map[uint32]bool, len(base))
	for _, c := range base {
		seen[c.ID] = true
	}
	for _, c := range derived {
		if seen[c.ID] {
			continue
		}
		out = append(out, c)
	}
	return out
}

func mergeServerCommands(base, derived map[string]matter.Command) map[string]matter.Command {
	out := make(map[string]matter.Command, len(base)+len(derived))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range derived {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return out
}

func appendEvents(base, derived []matter.Event) []matter.Event {
	out := append([]matter.Event{}, base...)
	seen := make(map[uint32]bool, len(base))
	for _, e := range base {
		seen[e.ID] = true
	}
	for _, e := range derived {
		if seen[e.ID] {
			continue
		}
		out = append(out, e)
	}
	return out
}

func mergeEnums(base, derived map[string][]matter.Item) map[string][]matter.Item {
	out := make(map[string][]matter.Item, len(base)+len(derived))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range derived {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return out
}

func mergeBitmaps(base, derived map[string][]matter.Bitfield) map[string][]matter.Bitfield {
	out := make(map[string][]matter.Bitfield, len(base)+len(derived))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range derived {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return out
}

func mergeStructs(base, derived map[string][]matter.DataField) map[string][]matter.DataField {
	out := make(map[string][]matter.DataField, len(base)+len(derived))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range derived {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return out
}

// DeviceOverride is the set of per-cluster overrides a device type applies
// on top of a referenced cluster's full definition.
type DeviceOverride struct {
	ClusterID        uint32
	Side             matter.ClusterSide
	Conformance      *matter.Conformance
	FeatureOverrides map[string]*matter.Conformance // by feature code
	AttributeOverrides map[uint32]AttributeOverride
	CommandOverrides   map[uint32]CommandOverride
	EventOverrides     map[uint32]EventOverride
}

// AttributeOverride carries the device-level fields that may replace an
// attribute's corresponding field, each applied only if non-nil.
type AttributeOverride struct {
	Access      *matter.Access
	Constraint  *matter.Constraint
	Conformance *matter.Conformance
	Quality     *matter.OtherQuality
	Default     *matter.Value
	Type        string
}

// CommandOverride carries the device-level fields that may replace a
// command's corresponding field.
type CommandOverride struct {
	Access      *matter.Access
	Conformance *matter.Conformance
	Response    string
}

// EventOverride carries the device-level fields that may replace an event's
// corresponding field.
type EventOverride struct {
	Access      *matter.Access
	Conformance *matter.Conformance
	Quality     *matter.OtherQuality
	Priority    string
}

// DeviceCluster replaces each of device's referenced clusters with the full
// definition found in list (matched by ID), then applies the device's
// per-member overrides. Returns the fully-materialized clusters in device
// reference order.
func DeviceCluster(device matter.Device, overrides map[uint32]DeviceOverride, list []matter.Cluster) ([]matter.Cluster, error) {
	byID := make(map[uint32]matter.Cluster, len(list))
	for _, c := range list {
		byID[c.ID] = c
	}

	out := make([]matter.Cluster, 0, len(device.Clusters))
	for _, ref := range device.Clusters {
		full, ok := byID[ref.ID]
		if !ok {
			return nil, &ErrDeviceClusterNotFound{DeviceName: device.Name, ClusterID: ref.ID}
		}
		ov, hasOv := overrides[ref.ID]
		if hasOv {
			full = applyClusterOverride(full, ov)
		}
		out = append(out, full)
	}
	return out, nil
}

func applyClusterOverride(c matter.Cluster, ov DeviceOverride) matter.Cluster {
	if ov.Conformance != nil {
		c.Conformance = ov.Conformance
	}
	if ov.Side != matter.SideUnspecified {
		c.Side = ov.Side
	}
	if len(ov.FeatureOverrides) > 0 {
		features := make([]matter.Feature, len(c.FeatureMap))
		copy(features, c.FeatureMap)
		for i, f := range features {
			if conf, ok := ov.FeatureOverrides[f.Code]; ok {
				features[i].Conformance = conf
			}
		}
		c.FeatureMap = features
	}
	if len(ov.AttributeOverrides) > 0 {
		attrs := make([]matter.Attribute, len(c.Attributes))
		copy(attrs, c.Attributes)
		for i, a := range attrs {
			o, ok := ov.AttributeOverrides[a.ID]
			if !ok {
				continue
			}
			if o.Access != nil {
				attrs[i].Access = o.Access
			}
			if o.Constraint != nil {
				attrs[i].Constraint = o.Constraint
			}
			if o.Conformance != nil {
				attrs[i].Conformance = o.Conformance
			}
			if o.Quality != nil {
				attrs[i].Quality = o.Quality
			}
			if o.Default != nil {
				attrs[i].Default = o.Default
			}
			if o.Type != "" {
				attrs[i].Type = o.Type
			}
		}
		c.Attributes = attrs
	}
	if len(ov.CommandOverrides) > 0 {
		cmds := make([]matter.Command, len(c.ClientCommands))
		copy(cmds, c.ClientCommands)
		for i, cmd := range cmds {
			o, ok := ov.CommandOverrides[cmd.ID]
			if !ok {
				continue
			}
			if o.Access != nil {
				cmds[i].Access = o.Access
			}
			if o.Conformance != nil {
				cmds[i].Conformance = o.Conformance
			}
			if o.Response != "" {
				cmds[i].Response = o.Response
			}
		}
		c.ClientCommands = cmds
	}
	if len(ov.EventOverrides) > 0 {
		events := make([]matter.Event, len(c.Events))
		copy(events, c.Events)
		for i, e := range events {
			o, ok := ov.EventOverrides[e.ID]
			if !ok {
				continue
			}
			if o.Access != nil {
				events[i].Access = o.Access
			}
			if o.Conformance != nil {
				events[i].Conformance = o.Conformance
			}
			if o.Quality != nil {
				events[i].Quality = o.Quality
			}
			if o.Priority != "" {
				events[i].Priority = o.Priority
			}
		}
		c.Events = events
	}
	return c
}
