// Package conformance evaluates the boolean expression language embedded in
// Matter conformance expressions: andTerm/orTerm/xorTerm/notTerm
// trees over feature/condition/attribute leaf predicates, plus the "allowed
// for mapping" gate used by both translation pipelines to silently drop
// elements that are provisional, deprecated, or disallowed in the current
// context.
package conformance

import (
	"fmt"

	"github.com/onedm/sdf-matter-translator/internal/model/matter"
)

// Kind tags which node of the expression tree an Expr is.
type Kind int

// Expression tree node kinds.
const (
	KindTrue Kind = iota
	KindAnd
	KindOr
	KindXor
	KindNot
	KindFeature
	KindCondition
	KindAttribute
)

// Expr is a parsed conformance expression: the grammar is represented as an
// explicit tree of variants rather than raw JSON.
type Expr struct {
	Kind          Kind
	Terms         []*Expr
	Inner         *Expr
	FeatureCode   string
	ConditionName string
}

// ErrUnknownTerm is returned by Parse when a JSON node does not match any
// term of the conformance grammar.
var ErrUnknownTerm = fmt.Errorf("conformance: unknown expression term")

// Parse converts a generic JSON node (as decoded by encoding/json, i.e.
// map[string]interface{}/[]interface{}/nil) into an Expr tree.
func Parse(raw interface{}) (*Expr, error) {
	if raw == nil {
		return &Expr{Kind: KindTrue}, nil
	}
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: expected object, got %T", ErrUnknownTerm, raw)
	}
	if len(obj) == 0 {
		return &Expr{Kind: KindTrue}, nil
	}

	if terms, ok := obj["andTerm"]; ok {
		children, err := parseList(terms)
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: KindAnd, Terms: children}, nil
	}
	if terms, ok := obj["orTerm"]; ok {
		children, err := parseList(terms)
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: KindOr, Terms: children}, nil
	}
	if terms, ok := obj["xorTerm"]; ok {
		children, err := parseList(terms)
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: KindXor, Terms: children}, nil
	}
	if inner, ok := obj["notTerm"]; ok {
		child, err := Parse(inner)
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: KindNot, Inner: child}, nil
	}
	if feature, ok := obj["feature"]; ok {
		code, err := leafName(feature)
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: KindFeature, FeatureCode: code}, nil
	}
	if condition, ok := obj["condition"]; ok {
		name, err := leafName(condition)
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: KindCondition, ConditionName: name}, nil
	}
	if _, ok := obj["attribute"]; ok {
		return &Expr{Kind: KindAttribute}, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrUnknownTerm, obj)
}

func parseList(raw interface{}) ([]*Expr, error) {
	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: expected array, got %T", ErrUnknownTerm, raw)
	}
	out := make([]*Expr, 0, len(items))
	for _, item := range items {
		e, err := Parse(item)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func leafName(raw interface{}) (string, error) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("%w: expected object leaf, got %T", ErrUnknownTerm, raw)
	}
	name, _ := obj["name"].(string)
	return name, nil
}

// Context is the runtime context a conformance expression is evaluated
// against: the set of supported feature short-codes and whether the
// "condition: Matter" predicate holds.
type Context struct {
	SupportedFeatures map[string]bool
	MatterPresent     bool
}

// NewContext returns a Context with Matter presence assumed true (the
// translator always runs in a Matter-aware context) and no features
// supported.
func NewContext() Context {
	return Context{SupportedFeatures: make(map[string]bool), MatterPresent: true}
}

// Evaluate evaluates e against ctx. A nil Expr evaluates to true
// (unconditional), matching the empty-object case.
func Evaluate(e *Expr, ctx Context) bool {
	if e == nil {
		return true
	}
	switch e.Kind {
	case KindTrue:
		return true
	case KindAnd:
		for _, t := range e.Terms {
			if !Evaluate(t, ctx) {
				return false
			}
		}
		return true
	case KindOr:
		for _, t := range e.Terms {
			if Evaluate(t, ctx) {
				return true
			}
		}
		return false
	case KindXor:
		count := 0
		for _, t := range e.Terms {
			if Evaluate(t, ctx) {
				count++
			}
		}
		return count == 1
	case KindNot:
		return !Evaluate(e.Inner, ctx)
	case KindFeature:
		return ctx.SupportedFeatures[e.FeatureCode]
	case KindCondition:
		return e.ConditionName == "Matter" && ctx.MatterPresent
	case KindAttribute:
		return false
	default:
		return false
	}
}

// EvaluateRaw parses raw and evaluates it against ctx. A parse error is
// treated as false.
func EvaluateRaw(raw interface{}, ctx Context) bool {
	expr, err := Parse(raw)
	if err != nil {
		return false
	}
	return Evaluate(expr, ctx)
}

// Allowed implements the "allowed for mapping" gate: a nil
// conformance is always allowed; provisional/deprecated/disallowed
// conformances are allowed only when their condition evaluates false; an
// otherwise chain is allowed only when every alternative is allowed.
func Allowed(c *matter.Conformance, ctx Context) bool {
	if c == nil {
		return true
	}
	switch c.Kind {
	case matter.ConformanceOtherwise:
		for _, alt := range c.Otherwise {
			if !Allowed(alt, ctx) {
				return false
			}
		}
		return true
	case matter.ConformanceProvisional, matter.ConformanceDeprecated, matter.ConformanceDisallowed:
		return !EvaluateRaw(c.Condition, ctx)
	default:
		return true
	}
}
