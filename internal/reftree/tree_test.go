package reftree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeUnescapeSegment(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"plain", "OnOff"},
		{"tilde", "a~b"},
		{"slash", "a/b"},
		{"space", "a b"},
		{"mixed", "a/b~c d"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			escaped := EscapeSegment(tc.in)
			assert.Equal(t, tc.in, UnescapeSegment(escaped))
		})
	}
}

func TestNodePointer(t *testing.T) {
	tree := New()
	assert.Equal(t, "#", tree.Root().Pointer())

	thing := tree.Root().AddChild("sdfThing")
	assert.Equal(t, "#/sdfThing", thing.Pointer())

	object := thing.AddChild("My Object")
	assert.Equal(t, "#/sdfThing/My%20Object", object.Pointer())

	prop := object.AddChild("On/Off")
	assert.Equal(t, "#/sdfThing/My%20Object/On~1Off", prop.Pointer())
}

func TestToMapping(t *testing.T) {
	tree := New()
	thing := tree.Root().AddChild("sdfThing")
	obj := thing.AddChild("sdfObject")
	obj.SetAttr("id", float64(6))
	leafWithoutAttrs := obj.AddChild("sdfProperty")
	_ = leafWithoutAttrs

	m := tree.ToMapping()
	require.Len(t, m, 1)
	attrs, ok := m["#/sdfThing/sdfObject"]
	require.True(t, ok)
	assert.Equal(t, float64(6), attrs["id"])

	_, ok = m["#/sdfThing/sdfObject/sdfProperty"]
	assert.False(t, ok)
}

func TestCheckRequired(t *testing.T) {
	required := []string{"#/sdfObject/OnOff", "Level"}
	assert.True(t, CheckRequired(required, "#/sdfObject/OnOff"))
	assert.True(t, CheckRequired(required, "#/sdfObject/Level"))
	assert.False(t, CheckRequired(required, "#/sdfObject/Other"))
}
