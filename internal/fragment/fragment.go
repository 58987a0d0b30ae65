package fragment

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Fragment is a serializable markup node produced by renderer strategies.
// The zero value is an empty fragment that serializes to "".
type Fragment struct {
	node *html.Node
}

// Attr is a single element attribute.
type Attr struct {
	Key string
	Val string
}

// Class builds a class attribute.
func Class(v string) Attr { return Attr{Key: "class", Val: v} }

// ID builds an id attribute.
func ID(v string) Attr { return Attr{Key: "id", Val: v} }

// Style builds an inline style attribute.
func Style(v string) Attr { return Attr{Key: "style", Val: v} }

// El creates an element fragment with the given tag and attributes.
func El(tag string, attrs ...Attr) Fragment {
	node := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, a := range attrs {
		node.Attr = append(node.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	return Fragment{node: node}
}

// Text creates a text fragment. Content is escaped on serialization.
func Text(s string) Fragment {
	return Fragment{node: &html.Node{Type: html.TextNode, Data: s}}
}

// Empty returns an empty div, the conventional "nothing to show" fragment.
func Empty() Fragment { return El("div") }

// With appends children to the fragment and returns it. Zero-value
// children are skipped.
func (f Fragment) With(children ...Fragment) Fragment {
	if f.node == nil {
		return f
	}
	for _, c := range children {
		if c.node != nil {
			f.node.AppendChild(c.node)
		}
	}
	return f
}

// IsZero reports whether the fragment holds no node at all.
func (f Fragment) IsZero() bool { return f.node == nil }

// String serializes the fragment to markup text.
func (f Fragment) String() string {
	if f.node == nil {
		return ""
	}
	var sb strings.Builder
	// Rendering an element or text node into a strings.Builder cannot fail.
	_ = html.Render(&sb, f.node)
	return sb.String()
}
