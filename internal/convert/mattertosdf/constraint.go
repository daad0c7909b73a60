package mattertosdf

import (
	"github.com/onedm/sdf-matter-translator/internal/model/matter"
	"github.com/onedm/sdf-matter-translator/internal/model/sdf"
)

// applyConstraint is the Matter constraint -> SDF data-quality dispatch
// table, mutating a copy of the catalog skeleton dq
// with the bounds the constraint carries. A nil constraint returns dq
// unchanged.
func applyConstraint(dq *sdf.DataQuality, c *matter.Constraint, cat *clusterCatalog) *sdf.DataQuality {
	if c == nil || dq == nil {
		return dq
	}
	out := *dq

	switch c.Type {
	case matter.ConstraintAllowed:
		if c.Value != nil {
			out.Const = c.Value.AsJSON()
		}
	case matter.ConstraintBetween:
		setMinMax(&out, c.Min, c.Max)
	case matter.ConstraintMin:
		setMinMax(&out, c.Min, nil)
	case matter.ConstraintMax:
		setMinMax(&out, nil, c.Max)
	case matter.ConstraintLengthBetween:
		setLength(&out, c.Min, c.Max)
	case matter.ConstraintMinLength:
		setLength(&out, c.Min, nil)
	case matter.ConstraintMaxLength:
		setLength(&out, nil, c.Max)
	case matter.ConstraintCountBetween:
		setCount(&out, c.Min, c.Max)
		applyEntry(&out, c, cat)
	case matter.ConstraintMinCount:
		setCount(&out, c.Min, nil)
		applyEntry(&out, c, cat)
	case matter.ConstraintMaxCount:
		setCount(&out, nil, c.Max)
		applyEntry(&out, c, cat)
	case matter.ConstraintDesc:
		applyEntry(&out, c, cat)
	}
	return &out
}

func applyEntry(out *sdf.DataQuality, c *matter.Constraint, cat *clusterCatalog) {
	if c.EntryType == "" {
		return
	}
	items := cat.Resolve(c.EntryType)
	if c.EntryConstraint != nil {
		items = applyConstraint(items, c.EntryConstraint, cat)
	}
	out.Items = items
}

func setMinMax(dq *sdf.DataQuality, min, max *matter.Value) {
	if min != nil {
		v := min.Float64()
		dq.Minimum = &v
	}
	if max != nil {
		v := max.Float64()
		dq.Maximum = &v
	}
}

func setLength(dq *sdf.DataQuality, min, max *matter.Value) {
	if min != nil {
		v := int(min.Float64())
		dq.MinLength = &v
	}
	if max != nil {
		v := int(max.Float64())
		dq.MaxLength = &v
	}
}

func setCount(dq *sdf.DataQuality, min, max *matter.Value) {
	if min != nil {
		v := int(min.Float64())
		dq.MinItems = &v
	}
	if max != nil {
		v := int(max.Float64())
		dq.MaxItems = &v
	}
}
