package xml

import (
	"encoding/xml"
	"errors"
	"io"

	"golang.org/x/net/html/charset"
)

// ErrEmptyDocument is returned by BuildDOM when the input holds no element.
var ErrEmptyDocument = errors.New("xml: document has no root element")

// XMLDecoder is a wrapper around xml.Decoder and holds the functions to be called when tokens are encountered.
// Functions that are left as nil are skipped by Process().
type XMLDecoder struct {
	Decoder      *xml.Decoder
	StartElement func(token xml.StartElement) error
	EndElement   func(token xml.EndElement) error
	CharData     func(token xml.CharData) error
	Comment      func(token xml.Comment) error
	ProcInst     func(token xml.ProcInst) error
	Directive    func(token xml.Directive) error
}

// NewXMLDecoder creates a new XMLDecoder that will read from the supplied io.Reader.
// Documents declaring a non UTF-8 encoding are transcoded on the fly.
func NewXMLDecoder(r io.Reader) *XMLDecoder {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	return &XMLDecoder{Decoder: dec}
}

// Process performs the tokenization of the reader data and calls the user supplied functions.
// The first error returned by a callback stops the processing.
func (d *XMLDecoder) Process() error {
	for {
		tok, err := d.Decoder.Token()
		if tok == nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if d.StartElement != nil {
				err = d.StartElement(t.Copy())
			}
		case xml.EndElement:
			if d.EndElement != nil {
				err = d.EndElement(t)
			}
		case xml.CharData:
			if d.CharData != nil {
				err = d.CharData(t.Copy())
			}
		case xml.Comment:
			if d.Comment != nil {
				err = d.Comment(t.Copy())
			}
		case xml.ProcInst:
			if d.ProcInst != nil {
				err = d.ProcInst(t.Copy())
			}
		case xml.Directive:
			if d.Directive != nil {
				err = d.Directive(t.Copy())
			}
		}
		if err != nil {
			return err
		}
	}
}

// BuildDOM inserts its own functions into the decoder in order to build the Domain Object Model.
func (d *XMLDecoder) BuildDOM() (*Element, error) {
	var root, cur *Element

	// Save existing functions
	sef := d.StartElement
	eef := d.EndElement
	cdf := d.CharData

	d.StartElement = func(se xml.StartElement) error {
		elt := &Element{Type: Node, Name: se.Name, Attributes: make(map[string]string, len(se.Attr))}
		for _, attr := range se.Attr {
			// Namespaced attributes (xlink:href, sodipodi:*) are keyed by local name unless taken.
			if _, ok := elt.Attributes[attr.Name.Local]; ok && attr.Name.Space != "" {
				continue
			}
			elt.Attributes[attr.Name.Local] = attr.Value
		}
		if root == nil {
			root = elt
		} else {
			cur.AddChild(elt)
		}
		cur = elt
		return nil
	}
	d.EndElement = func(ee xml.EndElement) error {
		if cur != nil {
			cur = cur.Parent
		}
		return nil
	}
	d.CharData = func(cd xml.CharData) error {
		if cur == nil {
			// Ignore CDATA outside of a Node
			return nil
		}
		cur.AddChild(&Element{Type: Content, Content: cd})
		return nil
	}

	err := d.Process()

	// Restore previous functions
	d.StartElement = sef
	d.EndElement = eef
	d.CharData = cdf

	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, ErrEmptyDocument
	}
	return root, nil
}
