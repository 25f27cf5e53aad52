// Package svg imports SVG documents into a scene tree of groups, paths and compound paths, and
// exports compositions back to SVG.
//
// Import bakes transforms into coordinates and expands basic shapes into paths, so every
// path-like item of the resulting tree is expressed in the document's outer coordinate space.
package svg

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	g2d "github.com/jphsd/graphics2d"
	"github.com/jphsd/iconic/geom"
	"github.com/jphsd/iconic/xml"
)

// ErrNotSVG is returned when the document root is not an svg element.
var ErrNotSVG = errors.New("svg: root element is not <svg>")

// Importer converts SVG documents into scene trees.
// The zero value is ready to use and logs nothing.
type Importer struct {
	Logger *slog.Logger
}

// Import reads an SVG document from r using the zero Importer.
func Import(r io.Reader) (*Group, error) {
	return Importer{}.Import(r)
}

// ImportDOM converts an already decoded document using the zero Importer.
func ImportDOM(dom *xml.Element) (*Group, error) {
	return Importer{}.ImportDOM(dom)
}

// Import reads an SVG document from r.
func (im Importer) Import(r io.Reader) (*Group, error) {
	dom, err := xml.NewXMLDecoder(r).BuildDOM()
	if err != nil {
		return nil, fmt.Errorf("svg: %w", err)
	}
	return im.ImportDOM(dom)
}

// ImportDOM converts the document rooted at dom into a scene tree.
func (im Importer) ImportDOM(dom *xml.Element) (*Group, error) {
	if dom.Type != xml.Node || dom.Name.Local != "svg" {
		return nil, ErrNotSVG
	}
	logger := im.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	w := &walker{log: logger}
	g, err := w.SVGElt(dom, defaultState(), true)
	if err != nil {
		return nil, err
	}
	g.Title = Title(dom)
	return g, nil
}

// Title returns the trimmed text of the first title element in the document, or "".
func Title(dom *xml.Element) string {
	var res string
	found := false
	dom.Walk(func(elt *xml.Element) bool {
		if found {
			return false
		}
		if elt.Name.Local != "title" {
			return true
		}
		found = true
		var sb strings.Builder
		for _, c := range elt.Children {
			if c.Type == xml.Content {
				sb.Write(c.Content)
			}
		}
		res = strings.TrimSpace(sb.String())
		return false
	})
	return res
}

// state is the graphics state inherited down the document tree.
type state struct {
	xfm         *g2d.Aff3
	fill        color.Color // nil means none
	fillOpacity float64
	opacity     float64
	stroke      color.Color
	strokeWidth float64
	current     color.Color // value of currentColor
	fillRule    geom.FillRule
}

func defaultState() state {
	// SVG default for fill is black, and for stroke is none
	return state{
		xfm:         g2d.NewAff3(),
		fill:        color.Black,
		fillOpacity: 1,
		opacity:     1,
		strokeWidth: 1,
		current:     color.Black,
	}
}

// skipped lists elements whose subtrees never contribute visible geometry directly.
var skipped = map[string]bool{
	"defs": true, "clipPath": true, "mask": true, "symbol": true, "marker": true, "pattern": true,
	"linearGradient": true, "radialGradient": true, "filter": true, "title": true, "desc": true,
	"metadata": true, "style": true, "script": true, "text": true, "foreignObject": true,
	"namedview": true,
}

type walker struct {
	log *slog.Logger
}

// Process converts elt and its subtree. It returns nil for elements with no geometry.
func (w *walker) Process(elt *xml.Element, st state) (Item, error) {
	if elt.Type != xml.Node {
		return nil, nil
	}

	name := elt.Name.Local
	if skipped[name] {
		return nil, nil
	}
	st, visible, err := w.resolve(elt, st)
	if err != nil || !visible {
		return nil, err
	}

	var item Item
	switch name {
	case "svg":
		item, err = w.SVGElt(elt, st, false)
	case "g", "a", "switch":
		item, err = w.GroupElt(elt, st)
	case "path":
		item, err = w.PathElt(elt, st)
	case "rect":
		item, err = w.RectElt(elt, st)
	case "circle":
		item, err = w.CircleElt(elt, st)
	case "ellipse":
		item, err = w.EllipseElt(elt, st)
	case "line":
		item, err = w.LineElt(elt, st)
	case "polyline":
		item, err = w.PolyElt(elt, st, false)
	case "polygon":
		item, err = w.PolyElt(elt, st, true)
	default:
		w.log.Debug("svg element not implemented", "element", name)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("svg: <%s>: %w", name, err)
	}
	return item, nil
}

// SVGElt handles the root element and nested viewports.
func (w *walker) SVGElt(elt *xml.Element, st state, root bool) (*Group, error) {
	if root {
		var (
			visible bool
			err     error
		)
		st, visible, err = w.resolve(elt, st)
		if err != nil {
			return nil, fmt.Errorf("svg: <svg>: %w", err)
		}
		if !visible {
			return &Group{ID: elt.Attr("id")}, nil
		}
	} else {
		x, err := ParseValue(elt.Attr("x"))
		if err != nil {
			return nil, err
		}
		y, err := ParseValue(elt.Attr("y"))
		if err != nil {
			return nil, err
		}
		st.xfm = st.xfm.Copy().Translate(x, y)
	}

	vbx, err := viewBoxTransform(elt)
	if err != nil {
		return nil, fmt.Errorf("svg: <svg>: %w", err)
	}
	st.xfm = st.xfm.Copy().Concatenate(*vbx)
	return w.children(elt, st)
}

func (w *walker) GroupElt(elt *xml.Element, st state) (*Group, error) {
	return w.children(elt, st)
}

func (w *walker) children(elt *xml.Element, st state) (*Group, error) {
	g := &Group{ID: elt.Attr("id")}
	for _, c := range elt.Nodes() {
		item, err := w.Process(c, st)
		if err != nil {
			return nil, err
		}
		if item != nil {
			g.Children = append(g.Children, item)
		}
	}
	return g, nil
}

// PathElt imports a path element. A single subpath yields a *Path, several a *CompoundPath.
func (w *walker) PathElt(elt *xml.Element, st state) (Item, error) {
	contours, err := ParseContours(elt.Attr("d"))
	if err != nil {
		return nil, err
	}
	switch len(contours) {
	case 0:
		return nil, nil
	case 1:
		return w.newPath(elt, st, contours[0]), nil
	}
	cp := &CompoundPath{ID: elt.Attr("id"), Fill: effectiveFill(st), FillRule: st.fillRule}
	for _, c := range contours {
		p := w.newPath(elt, st, c)
		p.ID = ""
		cp.Children = append(cp.Children, p)
	}
	return cp, nil
}

func (w *walker) RectElt(elt *xml.Element, st state) (Item, error) {
	v, err := values(elt, "x", "y", "width", "height", "rx", "ry")
	if err != nil {
		return nil, err
	}
	if v[2] <= 0 || v[3] <= 0 {
		return nil, nil
	}
	rx, ry := v[4], v[5]
	// A single radius applies to both axes
	if _, ok := elt.Attributes["rx"]; !ok {
		rx = ry
	}
	if _, ok := elt.Attributes["ry"]; !ok {
		ry = rx
	}
	return w.newPath(elt, st, geom.RoundedRect(v[0], v[1], v[2], v[3], rx, ry)), nil
}

func (w *walker) CircleElt(elt *xml.Element, st state) (Item, error) {
	v, err := values(elt, "cx", "cy", "r")
	if err != nil {
		return nil, err
	}
	if v[2] <= 0 {
		return nil, nil
	}
	return w.newPath(elt, st, g2d.Circle(v[:2], v[2])), nil
}

func (w *walker) EllipseElt(elt *xml.Element, st state) (Item, error) {
	v, err := values(elt, "cx", "cy", "rx", "ry")
	if err != nil {
		return nil, err
	}
	if v[2] <= 0 || v[3] <= 0 {
		return nil, nil
	}
	return w.newPath(elt, st, g2d.Ellipse(v[:2], v[2], v[3], 0)), nil
}

func (w *walker) LineElt(elt *xml.Element, st state) (Item, error) {
	v, err := values(elt, "x1", "y1", "x2", "y2")
	if err != nil {
		return nil, err
	}
	return w.newPath(elt, st, g2d.Line(v[:2], v[2:])), nil
}

// PolyElt imports polyline and polygon elements; polygons are closed.
func (w *walker) PolyElt(elt *xml.Element, st state, closed bool) (Item, error) {
	coords, err := ParseNumbers(elt.Attr("points"))
	if err != nil {
		return nil, err
	}
	if len(coords) < 4 {
		return nil, nil
	}
	pts := make([][]float64, len(coords)/2)
	for i := range pts {
		pts[i] = coords[2*i : 2*i+2]
	}
	if closed {
		return w.newPath(elt, st, g2d.Polygon(pts...)), nil
	}
	return w.newPath(elt, st, g2d.PolyLine(pts...)), nil
}

func (w *walker) newPath(elt *xml.Element, st state, c *g2d.Path) *Path {
	p := &Path{
		ID:          elt.Attr("id"),
		Contour:     c,
		Fill:        effectiveFill(st),
		Stroke:      st.stroke,
		StrokeWidth: st.strokeWidth,
	}
	p.Transform(st.xfm)
	return p
}

// resolve applies the element's transform and presentation attributes to st.
// Style declarations stomp on presentation attributes. It reports false for hidden elements.
func (w *walker) resolve(elt *xml.Element, st state) (state, bool, error) {
	attrs := make(map[string]string, len(elt.Attributes))
	for k, v := range elt.Attributes {
		attrs[k] = v
	}
	if s := attrs["style"]; s != "" {
		ParseStyle(s, attrs)
	}
	if attrs["display"] == "none" || attrs["visibility"] == "hidden" {
		return st, false, nil
	}

	if t := attrs["transform"]; t != "" {
		m, err := ParseTransform(t)
		if err != nil {
			return st, false, err
		}
		st.xfm = st.xfm.Copy().Concatenate(*m)
	}

	if v := attrs["color"]; v != "" && v != "inherit" {
		if c, err := ParseColor(v); err == nil && c != nil {
			st.current = c
		}
	}
	if v := attrs["fill"]; v != "" && v != "inherit" {
		st.fill = w.paint(v, st.fill, st.current)
	}
	if v := attrs["stroke"]; v != "" && v != "inherit" {
		st.stroke = w.paint(v, st.stroke, st.current)
	}
	if v := attrs["stroke-width"]; v != "" && v != "inherit" {
		sw, err := ParseValue(v)
		if err != nil {
			return st, false, err
		}
		st.strokeWidth = sw
	}
	if v := attrs["fill-opacity"]; v != "" && v != "inherit" {
		f, err := parseOpacity(v)
		if err != nil {
			return st, false, err
		}
		st.fillOpacity = f
	}
	if v := attrs["opacity"]; v != "" {
		f, err := parseOpacity(v)
		if err != nil {
			return st, false, err
		}
		st.opacity *= f
	}
	switch attrs["fill-rule"] {
	case "evenodd":
		st.fillRule = geom.EvenOdd
	case "nonzero":
		st.fillRule = geom.NonZero
	}
	return st, true, nil
}

// paint resolves a fill or stroke value, keeping prev when the value cannot be parsed.
func (w *walker) paint(v string, prev, current color.Color) color.Color {
	if v == "currentColor" {
		return current
	}
	c, err := ParseColor(v)
	if err != nil {
		w.log.Warn("ignoring paint", "value", v, "error", err)
		return prev
	}
	return c
}

// effectiveFill folds fill-opacity and opacity into the fill's alpha.
func effectiveFill(st state) color.Color {
	if st.fill == nil {
		return nil
	}
	a := st.fillOpacity * st.opacity
	if a >= 1 {
		return st.fill
	}
	c := color.NRGBAModel.Convert(st.fill).(color.NRGBA)
	c.A = uint8(math.Round(float64(c.A) * math.Max(0, a)))
	return c
}

func parseOpacity(v string) (float64, error) {
	f, u, err := ParseValueUnit(v)
	if err != nil {
		return 0, err
	}
	if u == "%" {
		f /= 100
	}
	return math.Max(0, math.Min(1, f)), nil
}

// values parses the named length attributes of elt; missing attributes are zero.
func values(elt *xml.Element, names ...string) ([]float64, error) {
	res := make([]float64, len(names))
	for i, n := range names {
		v, err := ParseValue(elt.Attr(n))
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", n, err)
		}
		res[i] = v
	}
	return res, nil
}

// viewBoxTransform maps the viewBox of a viewport element onto its width and height.
// preserveAspectRatio is honored for "none"; everything else is treated as xMidYMid meet.
func viewBoxTransform(elt *xml.Element) (*g2d.Aff3, error) {
	m := g2d.NewAff3()
	vbs := elt.Attr("viewBox")
	if vbs == "" {
		return m, nil
	}
	vb, err := ParseNumbers(vbs)
	if err != nil || len(vb) != 4 {
		return nil, fmt.Errorf("bad viewBox %q", vbs)
	}
	if vb[2] <= 0 || vb[3] <= 0 {
		return nil, fmt.Errorf("bad viewBox %q", vbs)
	}

	width, height := vb[2], vb[3]
	if v, u, err := ParseValueUnit(elt.Attr("width")); err == nil && v > 0 && u != "%" {
		width, _ = ParseValue(elt.Attr("width"))
	}
	if v, u, err := ParseValueUnit(elt.Attr("height")); err == nil && v > 0 && u != "%" {
		height, _ = ParseValue(elt.Attr("height"))
	}

	sx, sy := width/vb[2], height/vb[3]
	if elt.Attr("preserveAspectRatio") == "none" {
		return m.Scale(sx, sy).Translate(-vb[0], -vb[1]), nil
	}
	s := math.Min(sx, sy)
	tx := (width - vb[2]*s) / 2
	ty := (height - vb[3]*s) / 2
	return m.Translate(tx, ty).Scale(s, s).Translate(-vb[0], -vb[1]), nil
}

// Size returns the outer width and height of an svg root element, falling back to the
// viewBox dimensions when width or height are missing or relative.
func Size(dom *xml.Element) (float64, float64) {
	var width, height float64
	if vb, err := ParseNumbers(dom.Attr("viewBox")); err == nil && len(vb) == 4 {
		width, height = vb[2], vb[3]
	}
	if v, u, err := ParseValueUnit(dom.Attr("width")); err == nil && v > 0 && u != "%" {
		width, _ = ParseValue(dom.Attr("width"))
	}
	if v, u, err := ParseValueUnit(dom.Attr("height")); err == nil && v > 0 && u != "%" {
		height, _ = ParseValue(dom.Attr("height"))
	}
	return width, height
}

// FormatFloat formats v compactly for SVG output.
func FormatFloat(v float64) string {
	v = math.Round(v*1e4) / 1e4
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
