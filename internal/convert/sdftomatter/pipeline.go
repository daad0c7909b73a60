// Package sdftomatter implements the sdf -> matter translation pipeline
//: walking an SdfModel, consulting the side-car SdfMapping for
// round-trip data, and producing an optional MatterDevice plus the list of
// MatterClusters it (or the bare model) describes.
package sdftomatter

import (
	"sort"
	"strings"

	"github.com/onedm/sdf-matter-translator/internal/model/matter"
	"github.com/onedm/sdf-matter-translator/internal/model/sdf"
	"github.com/onedm/sdf-matter-translator/internal/reftree"
	"github.com/onedm/sdf-matter-translator/internal/typemap"
)

const (
	clientSuffix = "_Client"
	serverSuffix = "_Server"
)

// Pipeline holds the per-run state of one sdf->matter conversion: the
// reference tree under construction and the mapping it reads side-car data
// from. A Pipeline is single-use; create a fresh one per run.
type Pipeline struct {
	tree *reftree.Tree
	imp  *importer
	mp   *sdf.Mapping
}

// New returns a Pipeline that will read side-car data from mapping (which
// may be nil, meaning every import falls back to its documented default).
func New(mapping *sdf.Mapping) *Pipeline {
	if mapping == nil {
		mapping = sdf.NewMapping()
	}
	return &Pipeline{tree: reftree.New(), imp: newImporter(mapping), mp: mapping}
}

// Convert walks model and returns the optional device (present only if the
// model carries at least one sdfThing) and the full list of clusters
// discovered, both under- and not-under a thing.
func (p *Pipeline) Convert(model *sdf.Model) (*matter.Device, []matter.Cluster, error) {
	root := p.tree.Root()
	var device *matter.Device
	var clusters []matter.Cluster

	for _, name := range sortedKeys(model.Objects) {
		obj := model.Objects[name]
		objNode := root.AddChild("sdfObject").AddChild(name)
		cluster, err := p.convertObject(name, obj, objNode.Pointer(), nil)
		if err != nil {
			return nil, nil, err
		}
		clusters = append(clusters, cluster)
	}

	for _, name := range sortedKeys(model.Things) {
		thing := model.Things[name]
		thingNode := root.AddChild("sdfThing").AddChild(name)
		pointer := thingNode.Pointer()

		d := &matter.Device{
			Name:            name,
			ID:              p.imp.uint32(pointer, "id", 0),
			Revision:        p.imp.uint8(pointer, "revision", 1),
			RevisionHistory: p.imp.revisionHistory(pointer),
			Classification:  p.imp.deviceClassification(pointer),
		}
		d.Conformance = synthesizeConformance(pointer, thing.Required, nil)

		for _, objName := range sortedKeys(thing.Objects) {
			obj := thing.Objects[objName]
			objNode := thingNode.AddChild("sdfObject").AddChild(objName)

			clusterName, side := splitSide(objName)
			cluster, err := p.convertObject(clusterName, obj, objNode.Pointer(), thing.Required)
			if err != nil {
				return nil, nil, err
			}
			cluster.Side = side
			d.Clusters = append(d.Clusters, cluster)
			clusters = append(clusters, cluster)
		}

		// A model with more than one sdfThing is still walked fully; its
		// clusters are already in `clusters` from the loop above. Only the
		// first thing becomes the returned device per the core entry
		// contract's single optional MatterDevice.
		if device == nil {
			device = d
		}
	}

	return device, clusters, nil
}

func splitSide(objectKey string) (string, matter.ClusterSide) {
	if strings.HasSuffix(objectKey, clientSuffix) {
		return strings.TrimSuffix(objectKey, clientSuffix), matter.SideClient
	}
	if strings.HasSuffix(objectKey, serverSuffix) {
		return strings.TrimSuffix(objectKey, serverSuffix), matter.SideServer
	}
	return objectKey, matter.SideUnspecified
}

func (p *Pipeline) convertObject(name string, obj *sdf.Object, pointer string, requiredList []string) (matter.Cluster, error) {
	cluster := matter.Cluster{
		Name:            name,
		ID:              p.imp.uint32(pointer, "id", 0),
		Revision:        p.imp.uint8(pointer, "revision", 1),
		RevisionHistory: p.imp.revisionHistory(pointer),
		ClusterAliases:  p.imp.clusterAliases(pointer),
		Classification:  p.imp.classification(pointer),
		FeatureMap:      p.imp.featureMap(pointer),
	}
	cluster.Conformance = synthesizeConformance(pointer, requiredList, obj.Required)

	reg := newClusterRegistry(&cluster)
	cascade := typemap.NewCascade(reg)

	nextID := uint32(0)
	for _, name := range sortedKeys(obj.Properties) {
		prop := obj.Properties[name]
		propPointer := pointer + "/sdfProperty/" + reftree.EscapeSegment(name)
		attrs, err := p.convertProperty(name, prop, propPointer, requiredList, obj.Required, cascade)
		if err != nil {
			return matter.Cluster{}, err
		}
		for i := range attrs {
			attrs[i].ID = p.imp.uint32(propPointer, "id", nextID)
			nextID++
		}
		cluster.Attributes = append(cluster.Attributes, attrs...)
	}

	if cluster.ServerCommands == nil {
		cluster.ServerCommands = make(map[string]matter.Command)
	}
	for _, name := range sortedKeys(obj.Actions) {
		action := obj.Actions[name]
		actionPointer := pointer + "/sdfAction/" + reftree.EscapeSegment(name)
		client, serverResp, err := p.convertAction(name, action, actionPointer, requiredList, obj.Required, cascade)
		if err != nil {
			return matter.Cluster{}, err
		}
		client.ID = p.imp.uint32(actionPointer, "id", nextID)
		nextID++
		cluster.ClientCommands = append(cluster.ClientCommands, client)
		if serverResp != nil {
			serverResp.ID = p.imp.uint32(actionPointer, "response_id", nextID)
			nextID++
			cluster.ServerCommands[serverResp.Name] = *serverResp
		}
	}

	for _, name := range sortedKeys(obj.Events) {
		event := obj.Events[name]
		eventPointer := pointer + "/sdfEvent/" + reftree.EscapeSegment(name)
		ev, err := p.convertEvent(name, event, eventPointer, requiredList, obj.Required, cascade)
		if err != nil {
			return matter.Cluster{}, err
		}
		ev.ID = p.imp.uint32(eventPointer, "id", nextID)
		nextID++
		cluster.Events = append(cluster.Events, ev)
	}

	return cluster, nil
}

func (p *Pipeline) convertProperty(name string, prop *sdf.Property, pointer string, requiredList, ownRequired []string, cascade *typemap.Cascade) ([]matter.Attribute, error) {
	access := &matter.Access{Read: prop.Readable, Write: prop.Writable}
	baseQuality := &matter.OtherQuality{Reportable: prop.Observable, Nullable: prop.Nullable}
	conf := p.conformanceFor(pointer, requiredList, ownRequired)

	if len(prop.SdfChoice) == 0 {
		res, err := cascade.Map(&prop.DataQuality, name)
		if err != nil {
			return nil, err
		}
		return []matter.Attribute{{
			Name:        name,
			Type:        res.TypeName,
			Constraint:  res.Constraint,
			Access:      access,
			Quality:     mergeQuality(baseQuality, res.Quality),
			Conformance: conf,
		}}, nil
	}

	choiceNames := sortedKeys(prop.SdfChoice)
	attrs := make([]matter.Attribute, 0, len(choiceNames))
	for _, choiceName := range choiceNames {
		merged := mergeDataQuality(&prop.DataQuality, prop.SdfChoice[choiceName])
		res, err := cascade.Map(merged, name+choiceName)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, matter.Attribute{
			Name:       name,
			Type:       res.TypeName,
			Constraint: res.Constraint,
			Access:     access,
			Quality:    mergeQuality(baseQuality, res.Quality),
			Conformance: &matter.Conformance{
				Kind:   matter.ConformanceOptional,
				Choice: choiceName,
			},
		})
	}
	return attrs, nil
}

func (p *Pipeline) convertAction(name string, action *sdf.Action, pointer string, requiredList, ownRequired []string, cascade *typemap.Cascade) (matter.Command, *matter.Command, error) {
	fields, err := dataFieldsFromQuality(action.InputData, pointer+"/sdfInputData", cascade)
	if err != nil {
		return matter.Command{}, nil, err
	}
	client := matter.Command{
		Name:          name,
		Direction:     matter.DirectionCommandToServer,
		CommandFields: fields,
		Conformance:   p.conformanceFor(pointer, requiredList, ownRequired),
	}

	switch {
	case action.OutputData == nil:
		client.Response = matter.ResponseNone
		return client, nil, nil
	case isImplicitStatusResponse(action.OutputData):
		client.Response = matter.ResponseYes
		return client, nil, nil
	default:
		outFields, err := dataFieldsFromQuality(action.OutputData, pointer+"/sdfOutputData", cascade)
		if err != nil {
			return matter.Command{}, nil, err
		}
		respName := name + "Response"
		client.Response = respName
		resp := &matter.Command{
			Name:          respName,
			Direction:     matter.DirectionResponseFromServer,
			CommandFields: outFields,
			Conformance:   &matter.Conformance{Kind: matter.ConformanceMandatory},
		}
		return client, resp, nil
	}
}

func isImplicitStatusResponse(dq *sdf.DataQuality) bool {
	if dq.Minimum == nil || dq.Maximum == nil {
		return false
	}
	return *dq.Minimum == 0 && *dq.Maximum == typemap.UintMax(16)
}

func (p *Pipeline) convertEvent(name string, event *sdf.Event, pointer string, requiredList, ownRequired []string, cascade *typemap.Cascade) (matter.Event, error) {
	fields, err := dataFieldsFromQuality(event.OutputData, pointer+"/sdfOutputData", cascade)
	if err != nil {
		return matter.Event{}, err
	}
	return matter.Event{
		Name:        name,
		Fields:      fields,
		Conformance: p.conformanceFor(pointer, requiredList, ownRequired),
	}, nil
}

func dataFieldsFromQuality(dq *sdf.DataQuality, pointer string, cascade *typemap.Cascade) ([]matter.DataField, error) {
	if dq == nil {
		return nil, nil
	}
	if dq.Type == sdf.TypeObject && len(dq.Properties) > 0 {
		names := sortedKeys(dq.Properties)
		required := make(map[string]bool, len(dq.Required))
		for _, r := range dq.Required {
			required[r] = true
		}
		fields := make([]matter.DataField, 0, len(names))
		for i, name := range names {
			sub := dq.Properties[name]
			res, err := cascade.Map(sub, name)
			if err != nil {
				return nil, err
			}
			conf := &matter.Conformance{Kind: matter.ConformanceOptional}
			if required[name] {
				conf = &matter.Conformance{Kind: matter.ConformanceMandatory}
			}
			fields = append(fields, matter.DataField{
				ID:          uint32(i),
				Name:        name,
				Type:        res.TypeName,
				Constraint:  res.Constraint,
				Quality:     res.Quality,
				Conformance: conf,
			})
		}
		return fields, nil
	}

	res, err := cascade.Map(dq, "Value")
	if err != nil {
		return nil, err
	}
	return []matter.DataField{{
		ID:          0,
		Name:        "Value",
		Type:        res.TypeName,
		Constraint:  res.Constraint,
		Quality:     res.Quality,
		Conformance: &matter.Conformance{Kind: matter.ConformanceMandatory},
	}}, nil
}

func (p *Pipeline) conformanceFor(pointer string, requiredList, ownRequired []string) *matter.Conformance {
	if c := conformanceFromJSON(mapConformanceOverride(p.mp, pointer)); c != nil {
		return c
	}
	return synthesizeConformance(pointer, requiredList, ownRequired)
}

func mapConformanceOverride(m *sdf.Mapping, pointer string) interface{} {
	keys := []string{"mandatoryConform", "optionalConform", "provisionalConform", "deprecateConform", "disallowConform", "otherwiseConform"}
	out := map[string]interface{}{}
	found := false
	for _, k := range keys {
		if v, ok := m.Get(pointer, k); ok {
			out[k] = v
			found = true
		}
	}
	if !found {
		return nil
	}
	return out
}

func mergeQuality(base, overlay *matter.OtherQuality) *matter.OtherQuality {
	if overlay == nil {
		return base
	}
	out := *base
	if overlay.Nullable != nil {
		out.Nullable = overlay.Nullable
	}
	if overlay.NonVolatile != nil {
		out.NonVolatile = overlay.NonVolatile
	}
	if overlay.Fixed != nil {
		out.Fixed = overlay.Fixed
	}
	if overlay.Scene != nil {
		out.Scene = overlay.Scene
	}
	if overlay.Reportable != nil {
		out.Reportable = overlay.Reportable
	}
	if overlay.ChangeOmitted != nil {
		out.ChangeOmitted = overlay.ChangeOmitted
	}
	if overlay.Singleton != nil {
		out.Singleton = overlay.Singleton
	}
	if overlay.Diagnostics != nil {
		out.Diagnostics = overlay.Diagnostics
	}
	if overlay.LargeMessage != nil {
		out.LargeMessage = overlay.LargeMessage
	}
	if overlay.QuieterReporting != nil {
		out.QuieterReporting = overlay.QuieterReporting
	}
	return &out
}

func mergeDataQuality(base *sdf.DataQuality, overlay *sdf.DataQuality) *sdf.DataQuality {
	out := *base
	out.SdfChoice = nil
	if overlay.Type != "" {
		out.Type = overlay.Type
	}
	if overlay.SdfRef != "" {
		out.SdfRef = overlay.SdfRef
	}
	if overlay.Const != nil {
		out.Const = overlay.Const
	}
	if overlay.Default != nil {
		out.Default = overlay.Default
	}
	if overlay.Minimum != nil {
		out.Minimum = overlay.Minimum
	}
	if overlay.Maximum != nil {
		out.Maximum = overlay.Maximum
	}
	if overlay.MinLength != nil {
		out.MinLength = overlay.MinLength
	}
	if overlay.MaxLength != nil {
		out.MaxLength = overlay.MaxLength
	}
	if overlay.MinItems != nil {
		out.MinItems = overlay.MinItems
	}
	if overlay.MaxItems != nil {
		out.MaxItems = overlay.MaxItems
	}
	if overlay.UniqueItems != nil {
		out.UniqueItems = overlay.UniqueItems
	}
	if overlay.Items != nil {
		out.Items = overlay.Items
	}
	if len(overlay.Properties) > 0 {
		out.Properties = overlay.Properties
	}
	if len(overlay.Required) > 0 {
		out.Required = overlay.Required
	}
	if overlay.Unit != "" {
		out.Unit = overlay.Unit
	}
	if overlay.Nullable != nil {
		out.Nullable = overlay.Nullable
	}
	if overlay.SdfType != "" {
		out.SdfType = overlay.SdfType
	}
	return &out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
