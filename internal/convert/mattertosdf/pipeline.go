// Package mattertosdf implements the matter -> sdf translation pipeline
//: resolving derived-cluster and device-cluster merges first,
// then walking the resulting clusters (and optional device) to build an
// SdfModel plus its side-car SdfMapping.
package mattertosdf

import (
	"github.com/onedm/sdf-matter-translator/internal/conformance"
	"github.com/onedm/sdf-matter-translator/internal/convert/merge"
	"github.com/onedm/sdf-matter-translator/internal/model/matter"
	"github.com/onedm/sdf-matter-translator/internal/model/sdf"
	"github.com/onedm/sdf-matter-translator/internal/reftree"
)

// Pipeline holds the per-run state of one matter->sdf conversion.
type Pipeline struct {
	tree *reftree.Tree
}

// New returns a fresh Pipeline.
func New() *Pipeline {
	return &Pipeline{tree: reftree.New()}
}

// Convert resolves derived clusters against clusterList, applies device
// overrides (if device is non-nil), and produces the resulting SdfModel and
// its SdfMapping side-car.
func (p *Pipeline) Convert(device *matter.Device, clusterList []matter.Cluster) (*sdf.Model, *sdf.Mapping, error) {
	resolved := make([]matter.Cluster, len(clusterList))
	for i, c := range clusterList {
		merged, err := merge.DerivedCluster(c, clusterList)
		if err != nil {
			return nil, nil, err
		}
		resolved[i] = merged
	}

	model := &sdf.Model{Objects: make(map[string]*sdf.Object)}
	root := p.tree.Root()

	if device != nil {
		deviceOverrides := make(map[uint32]merge.DeviceOverride, len(device.Clusters))
		for _, ref := range device.Clusters {
			deviceOverrides[ref.ID] = deviceOverrideFromRef(ref)
		}
		clusters, err := merge.DeviceCluster(*device, deviceOverrides, resolved)
		if err != nil {
			return nil, nil, err
		}

		deviceNode := root.AddChild("sdfThing").AddChild(device.Name)
		p.exportDeviceMeta(deviceNode, device)

		thing := &sdf.Thing{Objects: make(map[string]*sdf.Object)}
		for i, cluster := range clusters {
			side := device.Clusters[i].Side
			key := objectKeyForSide(cluster.Name, side)
			objNode := deviceNode.AddChild("sdfObject").AddChild(key)
			obj, err := p.convertCluster(objNode, cluster)
			if err != nil {
				return nil, nil, err
			}
			thing.Objects[key] = obj
		}
		model.Things = map[string]*sdf.Thing{device.Name: thing}
		return model, buildMapping(p.tree), nil
	}

	for _, cluster := range resolved {
		objNode := root.AddChild("sdfObject").AddChild(cluster.Name)
		obj, err := p.convertCluster(objNode, cluster)
		if err != nil {
			return nil, nil, err
		}
		model.Objects[cluster.Name] = obj
	}
	return model, buildMapping(p.tree), nil
}

func objectKeyForSide(name string, side matter.ClusterSide) string {
	switch side {
	case matter.SideClient:
		return name + "_Client"
	case matter.SideServer:
		return name + "_Server"
	default:
		return name
	}
}

func (p *Pipeline) exportDeviceMeta(node *reftree.Node, device *matter.Device) {
	node.SetAttr("id", float64(device.ID))
	node.SetAttr("revision", float64(device.Revision))
	if len(device.RevisionHistory) > 0 {
		node.SetAttr("revision_history", revisionHistoryJSON(device.RevisionHistory))
	}
	if device.Classification != nil {
		node.SetAttr("classification", map[string]interface{}{
			"superset": device.Classification.Superset,
			"class":    device.Classification.Class,
			"scope":    device.Classification.Scope,
		})
	}
	if device.Conformance != nil {
		for k, v := range exportConformance(device.Conformance) {
			node.SetAttr(k, v)
		}
	}
}

func revisionHistoryJSON(m map[uint8]string) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[itoaU8(k)] = v
	}
	return out
}

func itoaU8(n uint8) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{'0' + byte(n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func (p *Pipeline) convertCluster(node *reftree.Node, cluster matter.Cluster) (*sdf.Object, error) {
	ctx := conformance.NewContext()
	for _, f := range cluster.FeatureMap {
		if f.Conformance.Mandatory() && conformance.EvaluateRaw(f.Conformance.Condition, ctx) {
			ctx.SupportedFeatures[f.Code] = true
		}
	}

	node.SetAttr("id", float64(cluster.ID))
	node.SetAttr("revision", float64(cluster.Revision))
	if len(cluster.RevisionHistory) > 0 {
		node.SetAttr("revision_history", revisionHistoryJSON(cluster.RevisionHistory))
	}
	if cluster.Classification != nil {
		node.SetAttr("classification", map[string]interface{}{
			"hierarchy":    string(cluster.Classification.Hierarchy),
			"role":         cluster.Classification.Role,
			"pics":         cluster.Classification.PICS,
			"scope":        cluster.Classification.Scope,
			"base_cluster": cluster.Classification.BaseCluster,
		})
	}
	if len(cluster.ClusterAliases) > 0 {
		aliases := make([]interface{}, len(cluster.ClusterAliases))
		for i, a := range cluster.ClusterAliases {
			aliases[i] = map[string]interface{}{"id": float64(a.ID), "name": a.Name}
		}
		node.SetAttr("cluster_aliases", aliases)
	}
	node.SetAttr("features", featureMapJSON(cluster.FeatureMap))
	if cluster.Conformance != nil {
		for k, v := range exportConformance(cluster.Conformance) {
			node.SetAttr(k, v)
		}
	}

	dataLocation := node.Pointer()
	cat := newClusterCatalog(&cluster, dataLocation, ctx)

	obj := &sdf.Object{
		Properties: make(map[string]*sdf.Property),
		Actions:    make(map[string]*sdf.Action),
		Events:     make(map[string]*sdf.Event),
	}

	for _, a := range cluster.Attributes {
		if !conformance.Allowed(a.Conformance, ctx) {
			continue
		}
		propNode := node.AddChild("sdfProperty").AddChild(a.Name)
		obj.Properties[a.Name] = p.convertAttribute(propNode, a, cat)
	}

	for _, cmd := range cluster.ClientCommands {
		if !conformance.Allowed(cmd.Conformance, ctx) {
			continue
		}
		actionNode := node.AddChild("sdfAction").AddChild(cmd.Name)
		obj.Actions[cmd.Name] = p.convertCommand(actionNode, cmd, cluster, cat)
	}

	for _, ev := range cluster.Events {
		if !conformance.Allowed(ev.Conformance, ctx) {
			continue
		}
		eventNode := node.AddChild("sdfEvent").AddChild(ev.Name)
		obj.Events[ev.Name] = p.convertEvent(eventNode, ev, cat)
	}

	if len(cat.data) > 0 {
		obj.Data = cat.data
	}

	return obj, nil
}

func featureMapJSON(features []matter.Feature) []interface{} {
	out := make([]interface{}, len(features))
	for i, f := range features {
		out[i] = map[string]interface{}{
			"bit":     float64(f.Bit),
			"code":    f.Code,
			"name":    f.Name,
			"summary": f.Summary,
		}
	}
	return out
}

func (p *Pipeline) convertAttribute(node *reftree.Node, a matter.Attribute, cat *clusterCatalog) *sdf.Property {
	node.SetAttr("id", float64(a.ID))
	if a.Access != nil {
		node.SetAttr("access", accessJSON(a.Access))
	}
	if a.Quality != nil {
		node.SetAttr("quality", qualityJSON(a.Quality))
	}
	for k, v := range exportConformance(a.Conformance) {
		node.SetAttr(k, v)
	}

	dq := cat.Resolve(a.Type)
	dq = applyConstraint(dq, a.Constraint, cat)

	prop := &sdf.Property{DataQuality: *dq}
	if a.Access != nil {
		prop.Readable = a.Access.Read
		prop.Writable = a.Access.Write
	}
	if a.Quality != nil {
		prop.Observable = a.Quality.Reportable
		prop.Nullable = a.Quality.Nullable
	}
	return prop
}

func (p *Pipeline) convertCommand(node *reftree.Node, cmd matter.Command, cluster matter.Cluster, cat *clusterCatalog) *sdf.Action {
	node.SetAttr("id", float64(cmd.ID))
	if cmd.Access != nil {
		node.SetAttr("access", accessJSON(cmd.Access))
	}
	for k, v := range exportConformance(cmd.Conformance) {
		node.SetAttr(k, v)
	}

	action := &sdf.Action{}
	if len(cmd.CommandFields) > 0 {
		action.InputData = dataFieldsToQuality(cmd.CommandFields, cat)
	}

	switch cmd.Response {
	case matter.ResponseNone, "":
		// no output data
	case matter.ResponseYes:
		u16max := float64(65535)
		zero := float64(0)
		action.OutputData = &sdf.DataQuality{Type: sdf.TypeInteger, Minimum: &zero, Maximum: &u16max}
	default:
		if resp, ok := cluster.ServerCommands[cmd.Response]; ok {
			action.OutputData = dataFieldsToQuality(resp.CommandFields, cat)
		}
	}
	return action
}

func (p *Pipeline) convertEvent(node *reftree.Node, ev matter.Event, cat *clusterCatalog) *sdf.Event {
	node.SetAttr("id", float64(ev.ID))
	if ev.Access != nil {
		node.SetAttr("access", accessJSON(ev.Access))
	}
	if ev.Quality != nil {
		node.SetAttr("quality", qualityJSON(ev.Quality))
	}
	if ev.Priority != "" {
		node.SetAttr("priority", ev.Priority)
	}
	for k, v := range exportConformance(ev.Conformance) {
		node.SetAttr(k, v)
	}

	out := &sdf.Event{}
	if len(ev.Fields) > 0 {
		out.OutputData = dataFieldsToQuality(ev.Fields, cat)
	}
	return out
}

func dataFieldsToQuality(fields []matter.DataField, cat *clusterCatalog) *sdf.DataQuality {
	props := make(map[string]*sdf.DataQuality, len(fields))
	var required []string
	for _, f := range fields {
		dq := cat.Resolve(f.Type)
		dq = applyConstraint(dq, f.Constraint, cat)
		props[f.Name] = dq
		if f.Conformance.Mandatory() {
			required = append(required, f.Name)
		}
	}
	return &sdf.DataQuality{Type: sdf.TypeObject, Properties: props, Required: required}
}

func accessJSON(a *matter.Access) map[string]interface{} {
	out := map[string]interface{}{}
	if a.Read != nil {
		out["read"] = *a.Read
	}
	if a.Write != nil {
		out["write"] = *a.Write
	}
	if a.FabricScoped != nil {
		out["fabric_scoped"] = *a.FabricScoped
	}
	if a.FabricSensitive != nil {
		out["fabric_sensitive"] = *a.FabricSensitive
	}
	if a.ReadPrivilege != "" {
		out["read_privilege"] = a.ReadPrivilege
	}
	if a.WritePrivilege != "" {
		out["write_privilege"] = a.WritePrivilege
	}
	if a.InvokePrivilege != "" {
		out["invoke_privilege"] = a.InvokePrivilege
	}
	if a.Timed != nil {
		out["timed"] = *a.Timed
	}
	return out
}

func qualityJSON(q *matter.OtherQuality) map[string]interface{} {
	out := map[string]interface{}{}
	setBool := func(key string, v *bool) {
		if v != nil {
			out[key] = *v
		}
	}
	setBool("nullable", q.Nullable)
	setBool("non_volatile", q.NonVolatile)
	setBool("fixed", q.Fixed)
	setBool("scene", q.Scene)
	setBool("reportable", q.Reportable)
	setBool("change_omitted", q.ChangeOmitted)
	setBool("singleton", q.Singleton)
	setBool("diagnostics", q.Diagnostics)
	setBool("large_message", q.LargeMessage)
	setBool("quieter_reporting", q.QuieterReporting)
	return out
}

func buildMapping(tree *reftree.Tree) *sdf.Mapping {
	m := sdf.NewMapping()
	for pointer, attrs := range tree.ToMapping() {
		for k, v := range attrs {
			m.Set(pointer, k, v)
		}
	}
	return m
}
