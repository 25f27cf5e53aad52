package xml

import (
	"encoding/xml"
	"io"
	"sort"
)

// TT represents the element type.
type TT int

const (
	Node TT = iota
	Content
)

// Element is used to form the tree structure of the Document Object Model.
type Element struct {
	Type       TT                // Node or Content
	Name       xml.Name          // Node name
	Attributes map[string]string // Node attributes
	Content    xml.CharData      // CDATA content
	Parent     *Element          // Parent node
	Children   []*Element        // List of child nodes and contents for this node
}

// NewNode creates an empty node element with the given local name.
func NewNode(name string) *Element {
	return &Element{Type: Node, Name: xml.Name{Local: name}, Attributes: make(map[string]string)}
}

// NewContent creates a character data element.
func NewContent(text string) *Element {
	return &Element{Type: Content, Content: xml.CharData(text)}
}

// Copy returns a deep copy of this element and its children.
func (elt *Element) Copy() *Element {
	attrs := make(map[string]string, len(elt.Attributes))
	for k, v := range elt.Attributes {
		attrs[k] = v
	}

	res := &Element{Type: elt.Type, Name: elt.Name, Attributes: attrs, Parent: elt.Parent}
	if elt.Content != nil {
		res.Content = elt.Content.Copy()
	}
	if len(elt.Children) > 0 {
		res.Children = make([]*Element, len(elt.Children))
		for i, c := range elt.Children {
			res.Children[i] = c.Copy()
			res.Children[i].Parent = res
		}
	}
	return res
}

// Attr returns the value of attribute k, or "" when it is not set.
func (elt *Element) Attr(k string) string {
	return elt.Attributes[k]
}

// SetAttr sets attribute k and returns the element for chaining.
func (elt *Element) SetAttr(k, v string) *Element {
	if elt.Attributes == nil {
		elt.Attributes = make(map[string]string)
	}
	elt.Attributes[k] = v
	return elt
}

// AddChild appends c to the element's children and returns the element for chaining.
func (elt *Element) AddChild(c *Element) *Element {
	c.Parent = elt
	elt.Children = append(elt.Children, c)
	return elt
}

// Nodes returns the child elements of type Node.
func (elt *Element) Nodes() []*Element {
	var res []*Element
	for _, c := range elt.Children {
		if c.Type == Node {
			res = append(res, c)
		}
	}
	return res
}

// Walk visits elt and its descendant nodes in document order.
// Returning false from fn skips the children of the visited node.
func (elt *Element) Walk(fn func(*Element) bool) {
	if elt.Type != Node {
		return
	}
	if !fn(elt) {
		return
	}
	for _, c := range elt.Children {
		c.Walk(fn)
	}
}

// Encode writes the element tree to w as indented XML.
// Attributes are written in name order with xmlns declarations first so the output is stable.
func (elt *Element) Encode(w io.Writer) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := elt.encode(enc); err != nil {
		return err
	}
	return enc.Flush()
}

func (elt *Element) encode(enc *xml.Encoder) error {
	if elt.Type == Content {
		return enc.EncodeToken(elt.Content)
	}

	name := xml.Name{Local: elt.Name.Local}
	se := xml.StartElement{Name: name, Attr: make([]xml.Attr, 0, len(elt.Attributes))}
	for _, k := range attrKeys(elt.Attributes) {
		se.Attr = append(se.Attr, xml.Attr{Name: xml.Name{Local: k}, Value: elt.Attributes[k]})
	}
	if err := enc.EncodeToken(se); err != nil {
		return err
	}
	for _, c := range elt.Children {
		if err := c.encode(enc); err != nil {
			return err
		}
	}
	return enc.EncodeToken(se.End())
}

func attrKeys(attrs map[string]string) []string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ni, nj := isNamespace(keys[i]), isNamespace(keys[j])
		if ni != nj {
			return ni
		}
		return keys[i] < keys[j]
	})
	return keys
}

func isNamespace(k string) bool {
	return k == "xmlns" || len(k) > 6 && k[:6] == "xmlns:"
}
