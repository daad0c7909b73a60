// Package schemavalidate implements the --validate structural pre/post
// checks: it does not reimplement a full JSON-Schema or XML-Schema engine
// (schema validation against published SDF/Matter schemas is treated as an
// external collaborator, out of scope here). Instead it performs the
// structural presence/type checks a caller can run without one: required
// top-level keys, recognizable type tags, and the cross-reference invariants
// the document formats define, expressed as testable properties.
package schemavalidate

import (
	"fmt"

	"github.com/onedm/sdf-matter-translator/internal/model/matter"
	"github.com/onedm/sdf-matter-translator/internal/model/sdf"
)

// Result carries one structural validation pass's findings. Issues are
// non-fatal observations; Valid is false only when at least one Issue was
// recorded.
type Result struct {
	Valid  bool
	Issues []string
}

func newResult() *Result {
	return &Result{Valid: true}
}

func (r *Result) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Issues = append(r.Issues, fmt.Sprintf(format, args...))
}

// SDFModel performs structural checks on an SDF model document: every
// sdfObject/sdfThing name is non-empty, every sdfRequired pointer is a
// non-empty string, and every DataQuality's declared type is one of the six
// SDF JSON-Schema primitive types named in .
func SDFModel(model *sdf.Model) *Result {
	r := newResult()
	if model == nil {
		r.fail("sdf model is nil")
		return r
	}

	for name, obj := range model.Objects {
		validateObjectName(r, "sdfObject", name)
		validateObject(r, "#/sdfObject/"+name, obj)
	}
	for name, thing := range model.Things {
		validateObjectName(r, "sdfThing", name)
		validateThing(r, "#/sdfThing/"+name, thing)
	}
	return r
}

func validateObjectName(r *Result, kind, name string) {
	if name == "" {
		r.fail("%s has an empty name", kind)
	}
}

func validateThing(r *Result, pointer string, t *sdf.Thing) {
	if t == nil {
		return
	}
	for _, p := range t.Required {
		if p == "" {
			r.fail("%s: sdfRequired contains an empty pointer", pointer)
		}
	}
	for name, obj := range t.Objects {
		validateObjectName(r, "sdfObject", name)
		validateObject(r, pointer+"/sdfObject/"+name, obj)
	}
	for name, prop := range t.Properties {
		validateDataQuality(r, pointer+"/sdfProperty/"+name, &prop.DataQuality)
	}
	for name, dq := range t.Data {
		validateDataQuality(r, pointer+"/sdfData/"+name, dq)
	}
}

func validateObject(r *Result, pointer string, o *sdf.Object) {
	if o == nil {
		return
	}
	for _, p := range o.Required {
		if p == "" {
			r.fail("%s: sdfRequired contains an empty pointer", pointer)
		}
	}
	for name, prop := range o.Properties {
		validateDataQuality(r, pointer+"/sdfProperty/"+name, &prop.DataQuality)
	}
	for name, action := range o.Actions {
		if action.InputData != nil {
			validateDataQuality(r, pointer+"/sdfAction/"+name+"/sdfInputData", action.InputData)
		}
		if action.OutputData != nil {
			validateDataQuality(r, pointer+"/sdfAction/"+name+"/sdfOutputData", action.OutputData)
		}
	}
	for name, ev := range o.Events {
		if ev.OutputData != nil {
			validateDataQuality(r, pointer+"/sdfEvent/"+name+"/sdfOutputData", ev.OutputData)
		}
	}
	for name, dq := range o.Data {
		validateDataQuality(r, pointer+"/sdfData/"+name, dq)
	}
}

var validSDFTypes = map[string]bool{
	"":        true, // absent type is legal when sdf_ref or sdf_choice is used
	"number":  true,
	"integer": true,
	"string":  true,
	"boolean": true,
	"array":   true,
	"object":  true,
}

func validateDataQuality(r *Result, pointer string, dq *sdf.DataQuality) {
	if dq == nil {
		return
	}
	if !validSDFTypes[dq.Type] {
		r.fail("%s: unrecognized sdf type %q", pointer, dq.Type)
	}
	if dq.Type == "" && dq.SdfRef == "" && len(dq.SdfChoice) == 0 {
		r.fail("%s: no type, sdf_ref, or sdf_choice", pointer)
	}
	for name, choice := range dq.SdfChoice {
		validateDataQuality(r, pointer+"/sdfChoice/"+name, choice)
	}
	if dq.Items != nil {
		validateDataQuality(r, pointer+"/items", dq.Items)
	}
	for name, prop := range dq.Properties {
		validateDataQuality(r, pointer+"/properties/"+name, prop)
	}
}

// SDFMapping checks that every key in mapping.Map looks like a JSON Pointer
//.
func SDFMapping(mapping *sdf.Mapping) *Result {
	r := newResult()
	if mapping == nil {
		r.fail("sdf mapping is nil")
		return r
	}
	for pointer := range mapping.Map {
		if pointer != "#" && (len(pointer) < 2 || pointer[0] != '#' || pointer[1] != '/') {
			r.fail("mapping key %q is not a valid JSON Pointer", pointer)
		}
	}
	return r
}

// MatterClusters performs structural checks on a cluster list: unique IDs,
// non-empty names, and (for derived clusters) a resolvable base-cluster
// name among the list's own cluster aliases.
func MatterClusters(clusters []matter.Cluster) *Result {
	r := newResult()
	seenIDs := map[uint32]string{}
	aliasNames := map[string]bool{}
	for _, c := range clusters {
		aliasNames[c.Name] = true
		for _, a := range c.ClusterAliases {
			aliasNames[a.Name] = true
		}
	}

	for _, c := range clusters {
		if c.Name == "" {
			r.fail("cluster id %d has an empty name", c.ID)
		}
		if prev, ok := seenIDs[c.ID]; ok {
			r.fail("duplicate cluster id %d (%q and %q)", c.ID, prev, c.Name)
		} else {
			seenIDs[c.ID] = c.Name
		}
		if c.Classification != nil && c.Classification.Hierarchy == matter.HierarchyDerived {
			if !aliasNames[c.Classification.BaseCluster] {
				r.fail("cluster %q: derived from unresolvable base %q", c.Name, c.Classification.BaseCluster)
			}
		}
		validateMemberIDs(r, c.Name, c)
	}
	return r
}

func validateMemberIDs(r *Result, clusterName string, c matter.Cluster) {
	ids := map[uint32]bool{}
	check := func(kind string, id uint32) {
		if ids[id] {
			r.fail("cluster %q: duplicate %s id %d", clusterName, kind, id)
		}
		ids[id] = true
	}
	for _, a := range c.Attributes {
		check("attribute", a.ID)
	}
	for _, cmd := range c.ClientCommands {
		check("command", cmd.ID)
		if cmd.Response != "N" && cmd.Response != "Y" && cmd.Response != "" {
			if _, ok := c.ServerCommands[cmd.Response]; !ok {
				r.fail("cluster %q: command %q response %q has no matching server command", clusterName, cmd.Name, cmd.Response)
			}
		}
	}
	for _, ev := range c.Events {
		check("event", ev.ID)
	}
}

// MatterDevice checks that every cluster reference in device resolves
// within clusters and that Side is exactly "client" or "server".
func MatterDevice(device *matter.Device, clusters []matter.Cluster) *Result {
	r := newResult()
	if device == nil {
		return r
	}
	byID := map[uint32]bool{}
	for _, c := range clusters {
		byID[c.ID] = true
	}
	for _, ref := range device.Clusters {
		if !byID[ref.ID] {
			r.fail("device %q: references cluster id %d not present in cluster list", device.Name, ref.ID)
		}
		if ref.Side != matter.SideClient && ref.Side != matter.SideServer {
			r.fail("device %q: cluster %q has side %q, must be client or server", device.Name, ref.Name, ref.Side)
		}
	}
	return r
}
