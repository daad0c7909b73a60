package sdftomatter

import (
	"github.com/onedm/sdf-matter-translator/internal/model/matter"
	"github.com/onedm/sdf-matter-translator/internal/model/sdf"
	"github.com/onedm/sdf-matter-translator/internal/reftree"
)

// importer resolves the side-car fields a Matter construct carries but SDF
// cannot express, by JSON-Pointer lookup into the mapping. A missing entry always yields the documented default.
type importer struct {
	mapping *sdf.Mapping
}

func newImporter(m *sdf.Mapping) *importer {
	return &importer{mapping: m}
}

func (im *importer) uint32(pointer, field string, def uint32) uint32 {
	v, ok := reftree.ImportFromMapping(im.mapping, pointer, field)
	if !ok {
		return def
	}
	if f, ok := v.(float64); ok {
		return uint32(f)
	}
	return def
}

func (im *importer) uint8(pointer, field string, def uint8) uint8 {
	return uint8(im.uint32(pointer, field, uint32(def)))
}

func (im *importer) str(pointer, field, def string) string {
	v, ok := reftree.ImportFromMapping(im.mapping, pointer, field)
	if !ok {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

func (im *importer) boolPtr(pointer, field string) *bool {
	v, ok := reftree.ImportFromMapping(im.mapping, pointer, field)
	if !ok {
		return nil
	}
	if b, ok := v.(bool); ok {
		return &b
	}
	return nil
}

func (im *importer) clusterAliases(pointer string) []matter.ClusterAlias {
	v, ok := reftree.ImportFromMapping(im.mapping, pointer, "cluster_aliases")
	if !ok {
		return nil
	}
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]matter.ClusterAlias, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		alias := matter.ClusterAlias{}
		if id, ok := obj["id"].(float64); ok {
			alias.ID = uint32(id)
		}
		if name, ok := obj["name"].(string); ok {
			alias.Name = name
		}
		out = append(out, alias)
	}
	return out
}

func (im *importer) revisionHistory(pointer string) map[uint8]string {
	v, ok := reftree.ImportFromMapping(im.mapping, pointer, "revision_history")
	if !ok {
		return nil
	}
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}
	out := make(map[uint8]string, len(obj))
	for k, val := range obj {
		rev := uint8(0)
		for _, c := range k {
			if c < '0' || c > '9' {
				rev = 0
				break
			}
			rev = rev*10 + uint8(c-'0')
		}
		if s, ok := val.(string); ok {
			out[rev] = s
		}
	}
	return out
}

func (im *importer) classification(pointer string) *matter.ClusterClassification {
	v, ok := reftree.ImportFromMapping(im.mapping, pointer, "classification")
	if !ok {
		return nil
	}
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}
	c := &matter.ClusterClassification{}
	if h, ok := obj["hierarchy"].(string); ok {
		c.Hierarchy = matter.ClusterHierarchy(h)
	}
	if r, ok := obj["role"].(string); ok {
		c.Role = r
	}
	if p, ok := obj["pics"].(string); ok {
		c.PICS = p
	}
	if s, ok := obj["scope"].(string); ok {
		c.Scope = s
	}
	if b, ok := obj["base_cluster"].(string); ok {
		c.BaseCluster = b
	}
	return c
}

func (im *importer) deviceClassification(pointer string) *matter.DeviceClassification {
	v, ok := reftree.ImportFromMapping(im.mapping, pointer, "classification")
	if !ok {
		return nil
	}
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}
	c := &matter.DeviceClassification{}
	if s, ok := obj["superset"].(string); ok {
		c.Superset = s
	}
	if cl, ok := obj["class"].(string); ok {
		c.Class = cl
	}
	if sc, ok := obj["scope"].(string); ok {
		c.Scope = sc
	}
	return c
}

func (im *importer) featureMap(pointer string) []matter.Feature {
	v, ok := reftree.ImportFromMapping(im.mapping, pointer, "features")
	if !ok {
		return nil
	}
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]matter.Feature, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		f := matter.Feature{}
		if bit, ok := obj["bit"].(float64); ok {
			f.Bit = uint8(bit)
		}
		if code, ok := obj["code"].(string); ok {
			f.Code = code
		}
		if name, ok := obj["name"].(string); ok {
			f.Name = name
		}
		if sum, ok := obj["summary"].(string); ok {
			f.Summary = sum
		}
		f.Conformance = conformanceFromJSON(obj["conformance"])
		out = append(out, f)
	}
	return out
}

func (im *importer) access(pointer string) *matter.Access {
	v, ok := reftree.ImportFromMapping(im.mapping, pointer, "access")
	if !ok {
		return nil
	}
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}
	a := &matter.Access{}
	if b, ok := obj["read"].(bool); ok {
		a.Read = &b
	}
	if b, ok := obj["write"].(bool); ok {
		a.Write = &b
	}
	if b, ok := obj["fabric_scoped"].(bool); ok {
		a.FabricScoped = &b
	}
	if b, ok := obj["fabric_sensitive"].(bool); ok {
		a.FabricSensitive = &b
	}
	if s, ok := obj["read_privilege"].(string); ok {
		a.ReadPrivilege = s
	}
	if s, ok := obj["write_privilege"].(string); ok {
		a.WritePrivilege = s
	}
	if s, ok := obj["invoke_privilege"].(string); ok {
		a.InvokePrivilege = s
	}
	if b, ok := obj["timed"].(bool); ok {
		a.Timed = &b
	}
	return a
}

func (im *importer) quality(pointer string) *matter.OtherQuality {
	v, ok := reftree.ImportFromMapping(im.mapping, pointer, "quality")
	if !ok {
		return nil
	}
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}
	q := &matter.OtherQuality{}
	setBool := func(key string, dst **bool) {
		if b, ok := obj[key].(bool); ok {
			*dst = &b
		}
	}
	setBool("non_volatile", &q.NonVolatile)
	setBool("fixed", &q.Fixed)
	setBool("scene", &q.Scene)
	setBool("reportable", &q.Reportable)
	setBool("change_omitted", &q.ChangeOmitted)
	setBool("singleton", &q.Singleton)
	setBool("diagnostics", &q.Diagnostics)
	setBool("large_message", &q.LargeMessage)
	setBool("quieter_reporting", &q.QuieterReporting)
	return q
}

// conformanceFromJSON decodes a mapping-stored conformance override
// (mandatoryConform | optionalConform | provisionalConform | deprecateConform
// | disallowConform | otherwiseConform): when the mapping provides one of
// these keys, it is used verbatim as the condition.
func conformanceFromJSON(raw interface{}) *matter.Conformance {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil
	}
	if v, ok := obj["mandatoryConform"]; ok {
		return &matter.Conformance{Kind: matter.ConformanceMandatory, Condition: v}
	}
	if v, ok := obj["optionalConform"]; ok {
		c := &matter.Conformance{Kind: matter.ConformanceOptional, Condition: v}
		if m, ok := v.(map[string]interface{}); ok {
			if choice, ok := m["choice"].(string); ok {
				c.Choice, c.Condition = choice, nil
				if more, ok := m["more"].(bool); ok {
					c.ChoiceMore = &more
				}
				delete(m, "choice")
				delete(m, "more")
				if len(m) > 0 {
					c.Condition = m
				}
			}
		}
		return c
	}
	if v, ok := obj["provisionalConform"]; ok {
		return &matter.Conformance{Kind: matter.ConformanceProvisional, Condition: v}
	}
	if v, ok := obj["deprecateConform"]; ok {
		return &matter.Conformance{Kind: matter.ConformanceDeprecated, Condition: v}
	}
	if v, ok := obj["disallowConform"]; ok {
		return &matter.Conformance{Kind: matter.ConformanceDisallowed, Condition: v}
	}
	if v, ok := obj["otherwiseConform"]; ok {
		list, ok := v.([]interface{})
		if !ok {
			return nil
		}
		alts := make([]*matter.Conformance, 0, len(list))
		for _, item := range list {
			if c := conformanceFromJSON(item); c != nil {
				alts = append(alts, c)
			}
		}
		return &matter.Conformance{Kind: matter.ConformanceOtherwise, Otherwise: alts}
	}
	return nil
}

// synthesizeConformance is the fallback when no explicit conformance
// override is present: mandatory if the pointer is in the required list or
// the element's own sdf_required equals ["true"], else optional.
func synthesizeConformance(pointer string, requiredList []string, ownRequired []string) *matter.Conformance {
	mandatory := reftree.CheckRequired(requiredList, pointer)
	if len(ownRequired) == 1 && ownRequired[0] == "true" {
		mandatory = true
	}
	if mandatory {
		return &matter.Conformance{Kind: matter.ConformanceMandatory}
	}
	return &matter.Conformance{Kind: matter.ConformanceOptional}
}
