package svg

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	g2d "github.com/jphsd/graphics2d"
	"github.com/jphsd/graphics2d/util"
	"github.com/jphsd/iconic/geom"
	"github.com/jphsd/iconic/xml"
)

// Namespace is the SVG XML namespace.
const Namespace = "http://www.w3.org/2000/svg"

// Document is an SVG document under construction.
type Document struct {
	Width, Height float64
	Title         string
	Defs          []*xml.Element
	Body          []*xml.Element
}

// Element returns the document as a DOM tree.
func (d *Document) Element() *xml.Element {
	root := xml.NewNode("svg").
		SetAttr("xmlns", Namespace).
		SetAttr("version", "1.1").
		SetAttr("width", FormatFloat(d.Width)).
		SetAttr("height", FormatFloat(d.Height)).
		SetAttr("viewBox", fmt.Sprintf("0 0 %s %s", FormatFloat(d.Width), FormatFloat(d.Height)))
	if d.Title != "" {
		root.AddChild(xml.NewNode("title").AddChild(xml.NewContent(d.Title)))
	}
	if len(d.Defs) > 0 {
		defs := xml.NewNode("defs")
		for _, e := range d.Defs {
			defs.AddChild(e)
		}
		root.AddChild(defs)
	}
	for _, e := range d.Body {
		root.AddChild(e)
	}
	return root
}

// Encode writes the document, preceded by an XML declaration.
func (d *Document) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>`+"\n"); err != nil {
		return err
	}
	if err := d.Element().Encode(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// PathElement builds a path element drawing the contours of item with the given fill.
func PathElement(item PathItem, fill color.Color) *xml.Element {
	e := xml.NewNode("path").SetAttr("d", PathData(item.Contours()))
	setFill(e, fill)
	if cp, ok := item.(*CompoundPath); ok && cp.FillRule == geom.EvenOdd {
		e.SetAttr("fill-rule", "evenodd")
	}
	return e
}

// CircleElement builds a circle element.
func CircleElement(c geom.Point, r float64, fill color.Color) *xml.Element {
	e := xml.NewNode("circle").
		SetAttr("cx", FormatFloat(c.X)).
		SetAttr("cy", FormatFloat(c.Y)).
		SetAttr("r", FormatFloat(r))
	setFill(e, fill)
	return e
}

func setFill(e *xml.Element, fill color.Color) {
	e.SetAttr("fill", FormatColor(fill))
	if a := Alpha(fill); a < 1 && fill != nil {
		e.SetAttr("fill-opacity", FormatFloat(a))
	}
}

// FormatColor returns c as #rrggbb, or "none" for nil. Alpha is dropped; see Alpha.
func FormatColor(c color.Color) string {
	if c == nil {
		return "none"
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

// Alpha returns the opacity of c in [0, 1]. A nil color is transparent.
func Alpha(c color.Color) float64 {
	if c == nil {
		return 0
	}
	_, _, _, a := c.RGBA()
	return float64(a) / 0xffff
}

// PathData formats paths as an SVG path description using absolute commands.
// The closing line of a closed path is left to Z.
func PathData(ps []*g2d.Path) string {
	var sb strings.Builder
	pts := func(cmd string, pts ...[]float64) {
		sb.WriteString(cmd)
		for i, p := range pts {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(FormatFloat(p[0]))
			sb.WriteByte(' ')
			sb.WriteString(FormatFloat(p[1]))
		}
	}
	for _, p := range ps {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		steps := p.Steps()
		start := steps[0][0]
		pts("M", start)
		if n := len(steps); p.Closed() && n > 1 && len(steps[n-1]) == 1 && util.EqualsP(steps[n-1][0], start) {
			steps = steps[:n-1]
		}
		cur := start
		for _, s := range steps[1:] {
			switch len(s) {
			case 1:
				pts("L", s...)
			case 2:
				pts("Q", s...)
			case 3:
				pts("C", s...)
			default:
				// Higher order curves are written flattened
				for _, l := range g2d.FlattenPart(geom.Flatness, append([][]float64{cur}, s...)) {
					pts("L", l[1])
				}
			}
			cur = s[len(s)-1]
		}
		if p.Closed() {
			sb.WriteString("Z")
		}
	}
	return sb.String()
}
