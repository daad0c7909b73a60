package mattertosdf

import "github.com/onedm/sdf-matter-translator/internal/model/matter"

// conformKeys maps each simple ConformanceKind to its side-car key.
var conformKeys = map[matter.ConformanceKind]string{
	matter.ConformanceMandatory:   "mandatoryConform",
	matter.ConformanceOptional:    "optionalConform",
	matter.ConformanceProvisional: "provisionalConform",
	matter.ConformanceDeprecated:  "deprecateConform",
	matter.ConformanceDisallowed:  "disallowConform",
}

// exportConformance serializes c into the mapping attribute value that the
// sdf->matter direction's conformanceFromJSON decodes, round-trip symmetric
// with import.go's decoder.
func exportConformance(c *matter.Conformance) map[string]interface{} {
	if c == nil {
		return nil
	}
	if c.Kind == matter.ConformanceOtherwise {
		alts := make([]interface{}, 0, len(c.Otherwise))
		for _, alt := range c.Otherwise {
			key, val := conformEntry(alt)
			alts = append(alts, map[string]interface{}{key: val})
		}
		return map[string]interface{}{"otherwiseConform": alts}
	}
	key, val := conformEntry(c)
	return map[string]interface{}{key: val}
}

func conformEntry(c *matter.Conformance) (string, interface{}) {
	key, ok := conformKeys[c.Kind]
	if !ok {
		key = "optionalConform"
	}
	var val interface{} = c.Condition
	if c.Kind == matter.ConformanceOptional && c.Choice != "" {
		entry := map[string]interface{}{"choice": c.Choice}
		if c.ChoiceMore != nil {
			entry["more"] = *c.ChoiceMore
		}
		if condMap, ok := c.Condition.(map[string]interface{}); ok {
			for k, v := range condMap {
				entry[k] = v
			}
		}
		val = entry
	}
	return key, val
}
