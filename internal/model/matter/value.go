package matter

// Float64 returns a best-effort float64 view of the value, used when a
// Value needs to participate in numeric bound arithmetic regardless of
// which arm is populated.
func (v Value) Float64() float64 {
	switch v.Kind {
	case KindUint:
		return float64(v.U)
	case KindInt:
		return float64(v.I)
	case KindFloat:
		return v.F
	case KindBool:
		if v.B {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// AsJSON returns a plain-Go-value view of v suitable for JSON encoding or
// for storage in an sdf.DataQuality const/default/enum field.
func (v Value) AsJSON() interface{} {
	switch v.Kind {
	case KindNull:
		return nil
	case KindUint:
		return v.U
	case KindInt:
		return v.I
	case KindFloat:
		return v.F
	case KindString:
		return v.S
	case KindBool:
		return v.B
	case KindList:
		out := make([]interface{}, len(v.List))
		for i, item := range v.List {
			out[i] = item.AsJSON()
		}
		return out
	default:
		return nil
	}
}

// ValueFromJSON builds a Value from a decoded JSON scalar/slice (as produced
// by encoding/json: float64, string, bool, []interface{}, or nil).
func ValueFromJSON(raw interface{}) Value {
	switch t := raw.(type) {
	case nil:
		return NullValue()
	case float64:
		return FloatValue(t)
	case string:
		return StringValue(t)
	case bool:
		return BoolValue(t)
	case []interface{}:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = ValueFromJSON(item)
		}
		return ListValue(items)
	default:
		return NullValue()
	}
}

// ValueFromFloat64 is a convenience constructor for the common case of a
// numeric bound computed as a float64 but logically an integer value.
func ValueFromFloat64(f float64) Value {
	if f == float64(int64(f)) {
		if f >= 0 {
			return UintValue(uint64(f))
		}
		return IntValue(int64(f))
	}
	return FloatValue(f)
}
