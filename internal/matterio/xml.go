package matterio

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/onedm/sdf-matter-translator/internal/model/matter"
	xmlutil "github.com/onedm/sdf-matter-translator/pkg/utils/xml"
)

// LoadClusterXMLFile reads a `<configurator><cluster>...` document and
// returns every cluster it defines, using pkg/utils/xml.LoadXMLDocument
// for the file read.
func LoadClusterXMLFile(path string) ([]matter.Cluster, error) {
	doc, err := xmlutil.LoadXMLDocument(path)
	if err != nil {
		return nil, fmt.Errorf("matterio: read cluster xml %s: %w", path, err)
	}
	return parseClusterDocument(doc)
}

func parseClusterDocument(doc *etree.Document) ([]matter.Cluster, error) {
	root := doc.SelectElement("configurator")
	if root == nil {
		return nil, fmt.Errorf("matterio: missing <configurator> root")
	}
	var clusters []matter.Cluster
	for _, el := range root.SelectElements("cluster") {
		c, err := parseCluster(el)
		if err != nil {
			return nil, err
		}
		clusters = append(clusters, c)
	}
	return clusters, nil
}

func parseCluster(el *etree.Element) (matter.Cluster, error) {
	c := matter.Cluster{
		ID:       parseUint32(el.SelectAttrValue("id", "0")),
		Name:     el.SelectAttrValue("name", ""),
		Revision: uint8(parseUint32(el.SelectAttrValue("revision", "1"))),
		Summary:  el.SelectAttrValue("summary", ""),
		Side:     matter.ClusterSide(el.SelectAttrValue("side", "")),
	}
	if conf := parseConformanceElement(el); conf != nil {
		c.Conformance = conf
	}
	if rh := el.SelectElement("revisionHistory"); rh != nil {
		c.RevisionHistory = parseRevisionHistory(rh)
	}
	if cls := el.SelectElement("classification"); cls != nil {
		c.Classification = &matter.ClusterClassification{
			Hierarchy:   matter.ClusterHierarchy(cls.SelectAttrValue("hierarchy", "")),
			Role:        cls.SelectAttrValue("role", ""),
			PICS:        cls.SelectAttrValue("picsCode", ""),
			Scope:       cls.SelectAttrValue("scope", ""),
			BaseCluster: cls.SelectAttrValue("baseCluster", ""),
		}
	}
	for _, a := range el.SelectElements("clusterAlias") {
		c.ClusterAliases = append(c.ClusterAliases, matter.ClusterAlias{
			ID:   parseUint32(a.SelectAttrValue("id", "0")),
			Name: a.SelectAttrValue("name", ""),
		})
	}
	if fm := el.SelectElement("features"); fm != nil {
		for _, f := range fm.SelectElements("feature") {
			c.FeatureMap = append(c.FeatureMap, matter.Feature{
				Bit:         uint8(parseUint32(f.SelectAttrValue("bit", "0"))),
				Code:        f.SelectAttrValue("code", ""),
				Name:        f.SelectAttrValue("name", ""),
				Summary:     f.SelectAttrValue("summary", ""),
				Conformance: parseConformanceElement(f),
			})
		}
	}
	for _, a := range el.SelectElements("attribute") {
		attr, err := parseAttribute(a)
		if err != nil {
			return c, err
		}
		c.Attributes = append(c.Attributes, attr)
	}
	for _, cmd := range el.SelectElements("command") {
		command, err := parseCommand(cmd)
		if err != nil {
			return c, err
		}
		if command.Direction == matter.DirectionResponseFromServer {
			if c.ServerCommands == nil {
				c.ServerCommands = make(map[string]matter.Command)
			}
			c.ServerCommands[command.Name] = command
		} else {
			c.ClientCommands = append(c.ClientCommands, command)
		}
	}
	for _, ev := range el.SelectElements("event") {
		event, err := parseEvent(ev)
		if err != nil {
			return c, err
		}
		c.Events = append(c.Events, event)
	}
	for _, en := range el.SelectElements("enum") {
		if c.Enums == nil {
			c.Enums = make(map[string][]matter.Item)
		}
		c.Enums[en.SelectAttrValue("name", "")] = parseEnumItems(en)
	}
	for _, bm := range el.SelectElements("bitmap") {
		if c.Bitmaps == nil {
			c.Bitmaps = make(map[string][]matter.Bitfield)
		}
		c.Bitmaps[bm.SelectAttrValue("name", "")] = parseBitfields(bm)
	}
	for _, st := range el.SelectElements("struct") {
		if c.Structs == nil {
			c.Structs = make(map[string][]matter.DataField)
		}
		fields, err := parseFields(st)
		if err != nil {
			return c, err
		}
		c.Structs[st.SelectAttrValue("name", "")] = fields
	}
	return c, nil
}

func parseAttribute(el *etree.Element) (matter.Attribute, error) {
	a := matter.Attribute{
		ID:      parseUint32(el.SelectAttrValue("id", "0")),
		Name:    el.SelectAttrValue("name", ""),
		Type:    el.SelectAttrValue("type", ""),
		Summary: el.SelectAttrValue("summary", ""),
	}
	a.Conformance = parseConformanceElement(el)
	a.Access = parseAccessElement(el)
	a.Quality = parseQualityElement(el)
	c, err := parseConstraintElement(el)
	if err != nil {
		return a, err
	}
	a.Constraint = c
	if def := el.SelectAttrValue("default", ""); def != "" {
		v := parseMatterValue(def)
		a.Default = &v
	}
	return a, nil
}

func parseCommand(el *etree.Element) (matter.Command, error) {
	cmd := matter.Command{
		ID:        parseUint32(el.SelectAttrValue("id", "0")),
		Name:      el.SelectAttrValue("name", ""),
		Summary:   el.SelectAttrValue("summary", ""),
		Direction: matter.CommandDirection(el.SelectAttrValue("direction", string(matter.DirectionCommandToServer))),
		Response:  el.SelectAttrValue("response", matter.ResponseNone),
	}
	cmd.Conformance = parseConformanceElement(el)
	cmd.Access = parseAccessElement(el)
	fields, err := parseFields(el)
	if err != nil {
		return cmd, err
	}
	cmd.CommandFields = fields
	return cmd, nil
}

func parseEvent(el *etree.Element) (matter.Event, error) {
	ev := matter.Event{
		ID:       parseUint32(el.SelectAttrValue("id", "0")),
		Name:     el.SelectAttrValue("name", ""),
		Summary:  el.SelectAttrValue("summary", ""),
		Priority: el.SelectAttrValue("priority", ""),
	}
	ev.Conformance = parseConformanceElement(el)
	ev.Access = parseAccessElement(el)
	ev.Quality = parseQualityElement(el)
	fields, err := parseFields(el)
	if err != nil {
		return ev, err
	}
	ev.Fields = fields
	return ev, nil
}

func parseFields(parent *etree.Element) ([]matter.DataField, error) {
	var out []matter.DataField
	for _, f := range parent.SelectElements("field") {
		df := matter.DataField{
			ID:      parseUint32(f.SelectAttrValue("id", "0")),
			Name:    f.SelectAttrValue("name", ""),
			Type:    f.SelectAttrValue("type", ""),
			Summary: f.SelectAttrValue("summary", ""),
		}
		df.Conformance = parseConformanceElement(f)
		df.Access = parseAccessElement(f)
		df.Quality = parseQualityElement(f)
		c, err := parseConstraintElement(f)
		if err != nil {
			return out, err
		}
		df.Constraint = c
		if def := f.SelectAttrValue("default", ""); def != "" {
			v := parseMatterValue(def)
			df.Default = &v
		}
		out = append(out, df)
	}
	return out, nil
}

func parseEnumItems(parent *etree.Element) []matter.Item {
	var out []matter.Item
	for _, it := range parent.SelectElements("item") {
		v, _ := strconv.ParseInt(it.SelectAttrValue("value", "0"), 10, 64)
		out = append(out, matter.Item{
			Value:       v,
			Name:        it.SelectAttrValue("name", ""),
			Summary:     it.SelectAttrValue("summary", ""),
			Conformance: parseConformanceElement(it),
		})
	}
	return out
}

func parseBitfields(parent *etree.Element) []matter.Bitfield {
	var out []matter.Bitfield
	for _, b := range parent.SelectElements("bitfield") {
		bit, _ := strconv.Atoi(b.SelectAttrValue("bit", "0"))
		out = append(out, matter.Bitfield{
			Bit:         bit,
			Name:        b.SelectAttrValue("name", ""),
			Summary:     b.SelectAttrValue("summary", ""),
			Conformance: parseConformanceElement(b),
		})
	}
	return out
}

var conformTags = []struct {
	tag  string
	kind matter.ConformanceKind
}{
	{"mandatoryConform", matter.ConformanceMandatory},
	{"optionalConform", matter.ConformanceOptional},
	{"provisionalConform", matter.ConformanceProvisional},
	{"deprecateConform", matter.ConformanceDeprecated},
	{"disallowConform", matter.ConformanceDisallowed},
}

func parseConformanceElement(parent *etree.Element) *matter.Conformance {
	if otherwise := parent.SelectElement("otherwiseConform"); otherwise != nil {
		var alts []*matter.Conformance
		for _, tag := range conformTags {
			for _, el := range otherwise.SelectElements(tag.tag) {
				alts = append(alts, &matter.Conformance{Kind: tag.kind, Condition: parseConditionChildren(el)})
			}
		}
		return &matter.Conformance{Kind: matter.ConformanceOtherwise, Otherwise: alts}
	}
	for _, tag := range conformTags {
		el := parent.SelectElement(tag.tag)
		if el == nil {
			continue
		}
		conf := &matter.Conformance{Kind: tag.kind, Condition: parseConditionChildren(el)}
		if choice := el.SelectAttrValue("choice", ""); choice != "" {
			conf.Choice = choice
			if more := el.SelectAttrValue("more", ""); more != "" {
				b := more == "true"
				conf.ChoiceMore = &b
			}
		}
		return conf
	}
	return nil
}

func parseConditionChildren(el *etree.Element) interface{} {
	if len(el.ChildElements()) == 0 {
		return map[string]interface{}{}
	}
	child := el.ChildElements()[0]
	return elementToConditionNode(child)
}

func elementToConditionNode(el *etree.Element) interface{} {
	switch el.Tag {
	case "feature":
		return map[string]interface{}{"feature": map[string]interface{}{"name": el.SelectAttrValue("name", "")}}
	case "condition":
		return map[string]interface{}{"condition": map[string]interface{}{"name": el.SelectAttrValue("name", "")}}
	case "attribute":
		return map[string]interface{}{"attribute": map[string]interface{}{"name": el.SelectAttrValue("name", "")}}
	case "andTerm", "orTerm", "xorTerm":
		children := make([]interface{}, 0, len(el.ChildElements()))
		for _, c := range el.ChildElements() {
			children = append(children, elementToConditionNode(c))
		}
		return map[string]interface{}{el.Tag: children}
	case "notTerm":
		if len(el.ChildElements()) == 0 {
			return map[string]interface{}{"notTerm": map[string]interface{}{}}
		}
		return map[string]interface{}{"notTerm": elementToConditionNode(el.ChildElements()[0])}
	default:
		return map[string]interface{}{}
	}
}

func parseAccessElement(parent *etree.Element) *matter.Access {
	el := parent.SelectElement("access")
	if el == nil {
		return nil
	}
	a := &matter.Access{}
	if v := el.SelectAttrValue("read", ""); v != "" {
		b := v == "true"
		a.Read = &b
	}
	if v := el.SelectAttrValue("write", ""); v != "" {
		b := v == "true"
		a.Write = &b
	}
	if v := el.SelectAttrValue("fabricScoped", ""); v != "" {
		b := v == "true"
		a.FabricScoped = &b
	}
	if v := el.SelectAttrValue("fabricSensitive", ""); v != "" {
		b := v == "true"
		a.FabricSensitive = &b
	}
	a.ReadPrivilege = el.SelectAttrValue("readPrivilege", "")
	a.WritePrivilege = el.SelectAttrValue("writePrivilege", "")
	a.InvokePrivilege = el.SelectAttrValue("invokePrivilege", "")
	if v := el.SelectAttrValue("timed", ""); v != "" {
		b := v == "true"
		a.Timed = &b
	}
	return a
}

func parseQualityElement(parent *etree.Element) *matter.OtherQuality {
	el := parent.SelectElement("quality")
	if el == nil {
		return nil
	}
	q := &matter.OtherQuality{}
	setAttr := func(name string, dst **bool) {
		if v := el.SelectAttrValue(name, ""); v != "" {
			b := v == "true"
			*dst = &b
		}
	}
	setAttr("nullable", &q.Nullable)
	setAttr("nonVolatile", &q.NonVolatile)
	setAttr("fixed", &q.Fixed)
	setAttr("scene", &q.Scene)
	setAttr("reportable", &q.Reportable)
	setAttr("changeOmitted", &q.ChangeOmitted)
	setAttr("singleton", &q.Singleton)
	setAttr("diagnostics", &q.Diagnostics)
	setAttr("largeMessage", &q.LargeMessage)
	setAttr("quieterReporting", &q.QuieterReporting)
	return q
}

func parseConstraintElement(parent *etree.Element) (*matter.Constraint, error) {
	el := parent.SelectElement("constraint")
	if el == nil {
		return nil, nil
	}
	typ := matter.ConstraintType(el.SelectAttrValue("type", ""))
	c := &matter.Constraint{Type: typ}
	if v := el.SelectAttrValue("value", ""); v != "" {
		val := parseMatterValue(v)
		c.Value = &val
	}
	if v := el.SelectAttrValue("min", ""); v != "" {
		val := parseMatterValue(v)
		c.Min = &val
	}
	if v := el.SelectAttrValue("max", ""); v != "" {
		val := parseMatterValue(v)
		c.Max = &val
	}
	c.Desc = el.SelectAttrValue("desc", "")
	c.EntryType = el.SelectAttrValue("entryType", "")
	return c, nil
}

func parseRevisionHistory(el *etree.Element) map[uint8]string {
	out := make(map[uint8]string)
	for _, rev := range el.SelectElements("revision") {
		n := uint8(parseUint32(rev.SelectAttrValue("revision", "0")))
		out[n] = rev.SelectAttrValue("summary", "")
	}
	return out
}

func parseUint32(s string) uint32 {
	v, _ := strconv.ParseUint(s, 10, 32)
	return uint32(v)
}

// parseMatterValue decodes an XML attribute string into the Value arm that
// best represents it: unsigned, signed, float, bool, or string as a last
// resort, so downstream numeric constraint arithmetic (matter.Value.Float64)
// works the same whether the value came from JSON or XML.
func parseMatterValue(s string) matter.Value {
	if s == "true" || s == "false" {
		return matter.BoolValue(s == "true")
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return matter.UintValue(u)
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return matter.IntValue(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return matter.FloatValue(f)
	}
	return matter.StringValue(s)
}

func formatMatterValue(v *matter.Value) string {
	if v == nil {
		return ""
	}
	switch v.Kind {
	case matter.KindUint:
		return strconv.FormatUint(v.U, 10)
	case matter.KindInt:
		return strconv.FormatInt(v.I, 10)
	case matter.KindFloat:
		return strconv.FormatFloat(v.F, 'g', -1, 64)
	case matter.KindBool:
		return strconv.FormatBool(v.B)
	case matter.KindString:
		return v.S
	default:
		return ""
	}
}

// LoadDeviceXMLFile reads a `<configurator><deviceType>...` document and
// returns the single device type it defines.
func LoadDeviceXMLFile(path string) (*matter.Device, error) {
	doc, err := xmlutil.LoadXMLDocument(path)
	if err != nil {
		return nil, fmt.Errorf("matterio: read device xml %s: %w", path, err)
	}
	root := doc.SelectElement("configurator")
	if root == nil {
		return nil, fmt.Errorf("matterio: missing <configurator> root")
	}
	el := root.SelectElement("deviceType")
	if el == nil {
		return nil, fmt.Errorf("matterio: missing <deviceType>")
	}
	return parseDeviceType(el)
}

func parseDeviceType(el *etree.Element) (*matter.Device, error) {
	d := &matter.Device{
		ID:       parseUint32(el.SelectAttrValue("id", "0")),
		Name:     el.SelectAttrValue("name", ""),
		Summary:  el.SelectAttrValue("summary", ""),
		Revision: uint8(parseUint32(el.SelectAttrValue("revision", "1"))),
	}
	d.Conformance = parseConformanceElement(el)
	if rh := el.SelectElement("revisionHistory"); rh != nil {
		d.RevisionHistory = parseRevisionHistory(rh)
	}
	if cls := el.SelectElement("classification"); cls != nil {
		d.Classification = &matter.DeviceClassification{
			Superset: cls.SelectAttrValue("superset", ""),
			Class:    cls.SelectAttrValue("class", ""),
			Scope:    cls.SelectAttrValue("scope", ""),
		}
	}
	for _, cond := range el.SelectElements("condition") {
		d.Conditions = append(d.Conditions, cond.SelectAttrValue("name", ""))
	}
	for _, cr := range el.SelectElements("clusterRef") {
		ref, err := parseClusterRefOverride(cr)
		if err != nil {
			return nil, err
		}
		d.Clusters = append(d.Clusters, ref)
	}
	return d, nil
}

// parseClusterRefOverride parses a <clusterRef> element into a thin
// matter.Cluster carrying only the device-level override data it declares:
// id, side, a top-level conformance, and any <features>/<attribute>/
// <command>/<event> override sub-elements. Fields left zero mean "no
// override" to the caller building a merge.DeviceOverride from it.
func parseClusterRefOverride(cr *etree.Element) (matter.Cluster, error) {
	ref := matter.Cluster{
		ID:          parseUint32(cr.SelectAttrValue("id", "0")),
		Side:        matter.ClusterSide(cr.SelectAttrValue("side", "")),
		Conformance: parseConformanceElement(cr),
	}
	if fm := cr.SelectElement("features"); fm != nil {
		for _, f := range fm.SelectElements("feature") {
			ref.FeatureMap = append(ref.FeatureMap, matter.Feature{
				Code:        f.SelectAttrValue("code", ""),
				Conformance: parseConformanceElement(f),
			})
		}
	}
	for _, a := range cr.SelectElements("attribute") {
		attr := matter.Attribute{
			ID:   parseUint32(a.SelectAttrValue("id", "0")),
			Type: a.SelectAttrValue("type", ""),
		}
		attr.Conformance = parseConformanceElement(a)
		attr.Access = parseAccessElement(a)
		attr.Quality = parseQualityElement(a)
		c, err := parseConstraintElement(a)
		if err != nil {
			return ref, err
		}
		attr.Constraint = c
		if def := a.SelectAttrValue("default", ""); def != "" {
			v := parseMatterValue(def)
			attr.Default = &v
		}
		ref.Attributes = append(ref.Attributes, attr)
	}
	for _, cmd := range cr.SelectElements("command") {
		ref.ClientCommands = append(ref.ClientCommands, matter.Command{
			ID:          parseUint32(cmd.SelectAttrValue("id", "0")),
			Conformance: parseConformanceElement(cmd),
			Access:      parseAccessElement(cmd),
			Response:    cmd.SelectAttrValue("response", ""),
		})
	}
	for _, ev := range cr.SelectElements("event") {
		ref.Events = append(ref.Events, matter.Event{
			ID:          parseUint32(ev.SelectAttrValue("id", "0")),
			Conformance: parseConformanceElement(ev),
			Access:      parseAccessElement(ev),
			Quality:     parseQualityElement(ev),
			Priority:    ev.SelectAttrValue("priority", ""),
		})
	}
	return ref, nil
}

// SaveClusterXML encodes clusters as a `<configurator><cluster>...` document
// and writes it to path.
func SaveClusterXML(path string, clusters []matter.Cluster) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("configurator")
	for _, c := range clusters {
		writeCluster(root.CreateElement("cluster"), c)
	}
	doc.Indent(2)
	if err := xmlutil.SaveXMLDocument(doc, path); err != nil {
		return fmt.Errorf("matterio: write cluster xml %s: %w", path, err)
	}
	return nil
}

func writeCluster(el *etree.Element, c matter.Cluster) {
	el.CreateAttr("id", strconv.FormatUint(uint64(c.ID), 10))
	el.CreateAttr("name", c.Name)
	if c.Revision != 0 {
		el.CreateAttr("revision", strconv.FormatUint(uint64(c.Revision), 10))
	}
	if c.Summary != "" {
		el.CreateAttr("summary", c.Summary)
	}
	if c.Side != matter.SideUnspecified {
		el.CreateAttr("side", string(c.Side))
	}
	writeConformanceElement(el, c.Conformance)
	if len(c.RevisionHistory) > 0 {
		writeRevisionHistory(el.CreateElement("revisionHistory"), c.RevisionHistory)
	}
	if c.Classification != nil {
		cls := el.CreateElement("classification")
		cls.CreateAttr("hierarchy", string(c.Classification.Hierarchy))
		cls.CreateAttr("role", c.Classification.Role)
		cls.CreateAttr("picsCode", c.Classification.PICS)
		cls.CreateAttr("scope", c.Classification.Scope)
		if c.Classification.BaseCluster != "" {
			cls.CreateAttr("baseCluster", c.Classification.BaseCluster)
		}
	}
	for _, alias := range c.ClusterAliases {
		a := el.CreateElement("clusterAlias")
		a.CreateAttr("id", strconv.FormatUint(uint64(alias.ID), 10))
		a.CreateAttr("name", alias.Name)
	}
	if len(c.FeatureMap) > 0 {
		fm := el.CreateElement("features")
		for _, f := range c.FeatureMap {
			fe := fm.CreateElement("feature")
			fe.CreateAttr("bit", strconv.FormatUint(uint64(f.Bit), 10))
			fe.CreateAttr("code", f.Code)
			fe.CreateAttr("name", f.Name)
			if f.Summary != "" {
				fe.CreateAttr("summary", f.Summary)
			}
			writeConformanceElement(fe, f.Conformance)
		}
	}
	for _, a := range c.Attributes {
		writeAttribute(el.CreateElement("attribute"), a)
	}
	for _, cmd := range c.ClientCommands {
		writeCommand(el.CreateElement("command"), cmd)
	}
	names := make([]string, 0, len(c.ServerCommands))
	for name := range c.ServerCommands {
		names = append(names, name)
	}
	sortStrings(names)
	for _, name := range names {
		writeCommand(el.CreateElement("command"), c.ServerCommands[name])
	}
	for _, ev := range c.Events {
		writeEvent(el.CreateElement("event"), ev)
	}
	enumNames := make([]string, 0, len(c.Enums))
	for name := range c.Enums {
		enumNames = append(enumNames, name)
	}
	sortStrings(enumNames)
	for _, name := range enumNames {
		en := el.CreateElement("enum")
		en.CreateAttr("name", name)
		writeEnumItems(en, c.Enums[name])
	}
	bitmapNames := make([]string, 0, len(c.Bitmaps))
	for name := range c.Bitmaps {
		bitmapNames = append(bitmapNames, name)
	}
	sortStrings(bitmapNames)
	for _, name := range bitmapNames {
		bm := el.CreateElement("bitmap")
		bm.CreateAttr("name", name)
		writeBitfields(bm, c.Bitmaps[name])
	}
	structNames := make([]string, 0, len(c.Structs))
	for name := range c.Structs {
		structNames = append(structNames, name)
	}
	sortStrings(structNames)
	for _, name := range structNames {
		st := el.CreateElement("struct")
		st.CreateAttr("name", name)
		writeFields(st, c.Structs[name])
	}
}

func writeAttribute(el *etree.Element, a matter.Attribute) {
	el.CreateAttr("id", strconv.FormatUint(uint64(a.ID), 10))
	el.CreateAttr("name", a.Name)
	el.CreateAttr("type", a.Type)
	if a.Summary != "" {
		el.CreateAttr("summary", a.Summary)
	}
	writeConformanceElement(el, a.Conformance)
	writeAccessElement(el, a.Access)
	writeQualityElement(el, a.Quality)
	writeConstraintElement(el, a.Constraint)
	if a.Default != nil {
		el.CreateAttr("default", formatMatterValue(a.Default))
	}
}

func writeCommand(el *etree.Element, cmd matter.Command) {
	el.CreateAttr("id", strconv.FormatUint(uint64(cmd.ID), 10))
	el.CreateAttr("name", cmd.Name)
	if cmd.Summary != "" {
		el.CreateAttr("summary", cmd.Summary)
	}
	el.CreateAttr("direction", string(cmd.Direction))
	if cmd.Response != "" {
		el.CreateAttr("response", cmd.Response)
	}
	writeConformanceElement(el, cmd.Conformance)
	writeAccessElement(el, cmd.Access)
	writeFields(el, cmd.CommandFields)
}

func writeEvent(el *etree.Element, ev matter.Event) {
	el.CreateAttr("id", strconv.FormatUint(uint64(ev.ID), 10))
	el.CreateAttr("name", ev.Name)
	if ev.Summary != "" {
		el.CreateAttr("summary", ev.Summary)
	}
	if ev.Priority != "" {
		el.CreateAttr("priority", ev.Priority)
	}
	writeConformanceElement(el, ev.Conformance)
	writeAccessElement(el, ev.Access)
	writeQualityElement(el, ev.Quality)
	writeFields(el, ev.Fields)
}

func writeFields(parent *etree.Element, fields []matter.DataField) {
	for _, f := range fields {
		fe := parent.CreateElement("field")
		fe.CreateAttr("id", strconv.FormatUint(uint64(f.ID), 10))
		fe.CreateAttr("name", f.Name)
		fe.CreateAttr("type", f.Type)
		if f.Summary != "" {
			fe.CreateAttr("summary", f.Summary)
		}
		writeConformanceElement(fe, f.Conformance)
		writeAccessElement(fe, f.Access)
		writeQualityElement(fe, f.Quality)
		writeConstraintElement(fe, f.Constraint)
		if f.Default != nil {
			fe.CreateAttr("default", formatMatterValue(f.Default))
		}
	}
}

func writeEnumItems(parent *etree.Element, items []matter.Item) {
	for _, it := range items {
		ie := parent.CreateElement("item")
		ie.CreateAttr("value", strconv.FormatInt(it.Value, 10))
		ie.CreateAttr("name", it.Name)
		if it.Summary != "" {
			ie.CreateAttr("summary", it.Summary)
		}
		writeConformanceElement(ie, it.Conformance)
	}
}

func writeBitfields(parent *etree.Element, bits []matter.Bitfield) {
	for _, b := range bits {
		be := parent.CreateElement("bitfield")
		be.CreateAttr("bit", strconv.Itoa(b.Bit))
		be.CreateAttr("name", b.Name)
		if b.Summary != "" {
			be.CreateAttr("summary", b.Summary)
		}
		writeConformanceElement(be, b.Conformance)
	}
}

func writeRevisionHistory(el *etree.Element, history map[uint8]string) {
	revs := make([]uint8, 0, len(history))
	for rev := range history {
		revs = append(revs, rev)
	}
	for i := 1; i < len(revs); i++ {
		for j := i; j > 0 && revs[j-1] > revs[j]; j-- {
			revs[j-1], revs[j] = revs[j], revs[j-1]
		}
	}
	for _, rev := range revs {
		re := el.CreateElement("revision")
		re.CreateAttr("revision", strconv.FormatUint(uint64(rev), 10))
		re.CreateAttr("summary", history[rev])
	}
}

func writeAccessElement(parent *etree.Element, a *matter.Access) {
	if a == nil {
		return
	}
	el := parent.CreateElement("access")
	writeBoolAttr(el, "read", a.Read)
	writeBoolAttr(el, "write", a.Write)
	writeBoolAttr(el, "fabricScoped", a.FabricScoped)
	writeBoolAttr(el, "fabricSensitive", a.FabricSensitive)
	if a.ReadPrivilege != "" {
		el.CreateAttr("readPrivilege", a.ReadPrivilege)
	}
	if a.WritePrivilege != "" {
		el.CreateAttr("writePrivilege", a.WritePrivilege)
	}
	if a.InvokePrivilege != "" {
		el.CreateAttr("invokePrivilege", a.InvokePrivilege)
	}
	writeBoolAttr(el, "timed", a.Timed)
}

func writeQualityElement(parent *etree.Element, q *matter.OtherQuality) {
	if q == nil {
		return
	}
	el := parent.CreateElement("quality")
	writeBoolAttr(el, "nullable", q.Nullable)
	writeBoolAttr(el, "nonVolatile", q.NonVolatile)
	writeBoolAttr(el, "fixed", q.Fixed)
	writeBoolAttr(el, "scene", q.Scene)
	writeBoolAttr(el, "reportable", q.Reportable)
	writeBoolAttr(el, "changeOmitted", q.ChangeOmitted)
	writeBoolAttr(el, "singleton", q.Singleton)
	writeBoolAttr(el, "diagnostics", q.Diagnostics)
	writeBoolAttr(el, "largeMessage", q.LargeMessage)
	writeBoolAttr(el, "quieterReporting", q.QuieterReporting)
}

func writeBoolAttr(el *etree.Element, name string, v *bool) {
	if v == nil {
		return
	}
	el.CreateAttr(name, strconv.FormatBool(*v))
}

func writeConstraintElement(parent *etree.Element, c *matter.Constraint) {
	if c == nil {
		return
	}
	el := parent.CreateElement("constraint")
	el.CreateAttr("type", string(c.Type))
	if c.Value != nil {
		el.CreateAttr("value", formatMatterValue(c.Value))
	}
	if c.Min != nil {
		el.CreateAttr("min", formatMatterValue(c.Min))
	}
	if c.Max != nil {
		el.CreateAttr("max", formatMatterValue(c.Max))
	}
	if c.Desc != "" {
		el.CreateAttr("desc", c.Desc)
	}
	if c.EntryType != "" {
		el.CreateAttr("entryType", c.EntryType)
	}
}

func writeConformanceElement(parent *etree.Element, c *matter.Conformance) {
	if c == nil {
		return
	}
	if c.Kind == matter.ConformanceOtherwise {
		otherwise := parent.CreateElement("otherwiseConform")
		for _, alt := range c.Otherwise {
			writeConformanceBody(otherwise.CreateElement(conformTag(alt.Kind)), alt)
		}
		return
	}
	writeConformanceBody(parent.CreateElement(conformTag(c.Kind)), c)
}

func conformTag(kind matter.ConformanceKind) string {
	for _, tag := range conformTags {
		if tag.kind == kind {
			return tag.tag
		}
	}
	return "optionalConform"
}

func writeConformanceBody(el *etree.Element, c *matter.Conformance) {
	if c.Choice != "" {
		el.CreateAttr("choice", c.Choice)
		if c.ChoiceMore != nil {
			el.CreateAttr("more", strconv.FormatBool(*c.ChoiceMore))
		}
	}
	if c.Condition != nil {
		if node, ok := c.Condition.(map[string]interface{}); ok && len(node) > 0 {
			el.AddChild(conditionNodeToElement(node))
		}
	}
}

func conditionNodeToElement(node map[string]interface{}) *etree.Element {
	for key, val := range node {
		switch key {
		case "feature", "condition", "attribute":
			el := etree.NewElement(key)
			if m, ok := val.(map[string]interface{}); ok {
				if name, ok := m["name"].(string); ok {
					el.CreateAttr("name", name)
				}
			}
			return el
		case "andTerm", "orTerm", "xorTerm":
			el := etree.NewElement(key)
			if list, ok := val.([]interface{}); ok {
				for _, item := range list {
					if m, ok := item.(map[string]interface{}); ok {
						el.AddChild(conditionNodeToElement(m))
					}
				}
			}
			return el
		case "notTerm":
			el := etree.NewElement(key)
			if m, ok := val.(map[string]interface{}); ok && len(m) > 0 {
				el.AddChild(conditionNodeToElement(m))
			}
			return el
		}
	}
	return etree.NewElement("condition")
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// SaveDeviceXML encodes device as a `<configurator><deviceType>...` document
// and writes it to path.
func SaveDeviceXML(path string, device *matter.Device) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("configurator")
	dt := root.CreateElement("deviceType")
	dt.CreateAttr("id", strconv.FormatUint(uint64(device.ID), 10))
	dt.CreateAttr("name", device.Name)
	if device.Summary != "" {
		dt.CreateAttr("summary", device.Summary)
	}
	if device.Revision != 0 {
		dt.CreateAttr("revision", strconv.FormatUint(uint64(device.Revision), 10))
	}
	writeConformanceElement(dt, device.Conformance)
	if len(device.RevisionHistory) > 0 {
		writeRevisionHistory(dt.CreateElement("revisionHistory"), device.RevisionHistory)
	}
	if device.Classification != nil {
		cls := dt.CreateElement("classification")
		cls.CreateAttr("superset", device.Classification.Superset)
		cls.CreateAttr("class", device.Classification.Class)
		cls.CreateAttr("scope", device.Classification.Scope)
	}
	for _, cond := range device.Conditions {
		dt.CreateElement("condition").CreateAttr("name", cond)
	}
	for _, c := range device.Clusters {
		cr := dt.CreateElement("clusterRef")
		cr.CreateAttr("id", strconv.FormatUint(uint64(c.ID), 10))
		if c.Side != matter.SideUnspecified {
			cr.CreateAttr("side", string(c.Side))
		}
		writeConformanceElement(cr, c.Conformance)
	}
	doc.Indent(2)
	if err := xmlutil.SaveXMLDocument(doc, path); err != nil {
		return fmt.Errorf("matterio: write device xml %s: %w", path, err)
	}
	return nil
}
