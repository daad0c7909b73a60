// Package reftree implements the reference tree and JSON-Pointer side-car
// mapping machinery: a rooted tree whose nodes carry
// (name, attributes, children), each generating an RFC 6901 JSON Pointer by
// concatenating escaped ancestor names, root-first. The tree's serialization
// — map<json-pointer, attributes> — is the SDF "mapping" document.
package reftree

import (
	"strings"

	"github.com/onedm/sdf-matter-translator/internal/model/sdf"
)

// Node is one element of the reference tree.
type Node struct {
	name     string
	parent   *Node
	children []*Node
	attrs    map[string]sdf.JSONValue
}

// Tree owns the rooted reference tree for one pipeline run. The root's
// generated pointer is "#", per the documented behavior.
type Tree struct {
	root *Node
}

// New returns a fresh Tree with an empty root.
func New() *Tree {
	return &Tree{root: &Node{name: "#"}}
}

// Root returns the tree's root node.
func (t *Tree) Root() *Node {
	return t.root
}

// AddChild creates and appends a new child node named name, returning it.
func (n *Node) AddChild(name string) *Node {
	c := &Node{name: name, parent: n}
	n.children = append(n.children, c)
	return c
}

// SetAttr sets a key/value attribute on the node.
func (n *Node) SetAttr(key string, value sdf.JSONValue) {
	if n.attrs == nil {
		n.attrs = make(map[string]sdf.JSONValue)
	}
	n.attrs[key] = value
}

// Attrs returns the node's attribute set (nil if none were set).
func (n *Node) Attrs() map[string]sdf.JSONValue {
	return n.attrs
}

// Name returns the node's own (unescaped) name.
func (n *Node) Name() string {
	return n.name
}

// Pointer generates the node's JSON Pointer: escaped ancestor names, root
// first, joined with "/", rooted at "#".
func (n *Node) Pointer() string {
	if n.parent == nil {
		return n.name
	}
	var segments []string
	for cur := n; cur.parent != nil; cur = cur.parent {
		segments = append(segments, EscapeSegment(cur.name))
	}
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return "#/" + strings.Join(segments, "/")
}

// EscapeSegment applies the pointer segment escape rule in order: '~'->"~0",
// '/'->"~1", ' '->"%20".
func EscapeSegment(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '~':
			b.WriteString("~0")
		case '/':
			b.WriteString("~1")
		case ' ':
			b.WriteString("%20")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// UnescapeSegment reverses EscapeSegment, applied in order:
// "~1"->'/', "~0"->'~', "%20"->' '. A name that itself contains the text
// "%20" does not survive the round trip: it comes back with a space.
func UnescapeSegment(s string) string {
	s = strings.ReplaceAll(s, "~1", "/")
	s = strings.ReplaceAll(s, "~0", "~")
	s = strings.ReplaceAll(s, "%20", " ")
	return s
}

// ToMapping serializes the tree into map<json-pointer, attributes>,
// containing every node with at least one attribute. Traversal order does
// not affect the result since it is keyed by pointer.
func (t *Tree) ToMapping() map[string]map[string]sdf.JSONValue {
	result := make(map[string]map[string]sdf.JSONValue)
	var walk func(n *Node)
	walk = func(n *Node) {
		if len(n.attrs) > 0 {
			result[n.Pointer()] = n.attrs
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(t.root)
	return result
}

// ImportFromMapping looks up map[pointer][field] in m, returning the value
// and whether it was present. A nil mapping always reports absence.
func ImportFromMapping(m *sdf.Mapping, pointer, field string) (sdf.JSONValue, bool) {
	return m.Get(pointer, field)
}

// LastSegment returns the final, unescaped path segment of a pointer.
func LastSegment(pointer string) string {
	idx := strings.LastIndex(pointer, "/")
	if idx == -1 {
		return UnescapeSegment(pointer)
	}
	return UnescapeSegment(pointer[idx+1:])
}

// CheckRequired reports whether pointer, or its last path segment, appears
// in requiredList.
func CheckRequired(requiredList []string, pointer string) bool {
	last := LastSegment(pointer)
	for _, r := range requiredList {
		if r == pointer || r == last {
			return true
		}
	}
	return false
}
