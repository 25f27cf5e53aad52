package svg

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	g2d "github.com/jphsd/graphics2d"
	g2dcol "github.com/jphsd/graphics2d/color"
	"golang.org/x/image/colornames"
)

// ErrPathData is wrapped by errors returned from ParseContours.
var ErrPathData = errors.New("svg: bad path data")

// pathScanner tokenizes SVG path data.
type pathScanner struct {
	s string
	i int
}

func isCommand(c byte) bool {
	return strings.IndexByte("MmLlHhVvCcSsQqTtAaZz", c) >= 0
}

// skip moves past whitespace and at most one comma.
func (ps *pathScanner) skip() {
	comma := false
	for ps.i < len(ps.s) {
		switch ps.s[ps.i] {
		case ' ', '\t', '\n', '\r', '\f':
		case ',':
			if comma {
				return
			}
			comma = true
		default:
			return
		}
		ps.i++
	}
}

func (ps *pathScanner) done() bool {
	ps.skip()
	return ps.i >= len(ps.s)
}

// command returns the next command letter, if the next token is one.
func (ps *pathScanner) command() (byte, bool) {
	ps.skip()
	if ps.i < len(ps.s) && isCommand(ps.s[ps.i]) {
		c := ps.s[ps.i]
		ps.i++
		return c, true
	}
	return 0, false
}

// number reads a number. Compact forms such as ".5.5" and "1-2" end at the second sign or dot.
func (ps *pathScanner) number() (float64, error) {
	ps.skip()
	start := ps.i
	if ps.i < len(ps.s) && (ps.s[ps.i] == '-' || ps.s[ps.i] == '+') {
		ps.i++
	}
	digits, dot := 0, false
	for ps.i < len(ps.s) {
		c := ps.s[ps.i]
		if c >= '0' && c <= '9' {
			digits++
		} else if c == '.' && !dot {
			dot = true
		} else {
			break
		}
		ps.i++
	}
	if digits == 0 {
		return 0, fmt.Errorf("%w: expected number at offset %d", ErrPathData, start)
	}
	if ps.i < len(ps.s) && (ps.s[ps.i] == 'e' || ps.s[ps.i] == 'E') {
		j := ps.i + 1
		if j < len(ps.s) && (ps.s[j] == '-' || ps.s[j] == '+') {
			j++
		}
		if j < len(ps.s) && ps.s[j] >= '0' && ps.s[j] <= '9' {
			for j < len(ps.s) && ps.s[j] >= '0' && ps.s[j] <= '9' {
				j++
			}
			ps.i = j
		}
	}
	v, err := strconv.ParseFloat(ps.s[start:ps.i], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPathData, err)
	}
	return v, nil
}

// flag reads an arc flag, which may be packed without separators ("a1 1 0 00 1 1").
func (ps *pathScanner) flag() (bool, error) {
	ps.skip()
	if ps.i < len(ps.s) {
		switch ps.s[ps.i] {
		case '0':
			ps.i++
			return false, nil
		case '1':
			ps.i++
			return true, nil
		}
	}
	return false, fmt.Errorf("%w: expected arc flag at offset %d", ErrPathData, ps.i)
}

func (ps *pathScanner) numbers(n int) ([]float64, error) {
	res := make([]float64, n)
	for i := range res {
		v, err := ps.number()
		if err != nil {
			return nil, err
		}
		res[i] = v
	}
	return res, nil
}

// ParseContours converts an SVG path description into paths, one per subpath.
func ParseContours(desc string) ([]*g2d.Path, error) {
	ps := &pathScanner{s: desc}
	var (
		res      []*g2d.Path
		path     *g2d.Path
		cur      []float64 // current point
		start    []float64 // start of the current subpath
		cp, qp   []float64
		lastCmd  byte
		haveMove bool
	)

	// ensure starts a new subpath at the current point after a closepath.
	ensure := func() {
		if path == nil {
			path = g2d.NewPath(cur)
			res = append(res, path)
		}
	}
	// abs resolves the coordinate pairs in v, relative to cur if rel is set.
	abs := func(rel bool, v ...float64) [][]float64 {
		pts := make([][]float64, len(v)/2)
		for i := range pts {
			pts[i] = []float64{v[2*i], v[2*i+1]}
			if rel {
				pts[i][0] += cur[0]
				pts[i][1] += cur[1]
			}
		}
		return pts
	}
	// reflect mirrors p about the current point.
	reflect := func(p []float64) []float64 {
		if p == nil {
			return cur
		}
		return []float64{2*cur[0] - p[0], 2*cur[1] - p[1]}
	}

	for !ps.done() {
		c, ok := ps.command()
		if !ok {
			// Implicit repetition of the previous command
			if lastCmd == 0 || lastCmd == 'Z' || lastCmd == 'z' {
				return nil, fmt.Errorf("%w: expected command at offset %d", ErrPathData, ps.i)
			}
			c = lastCmd
			switch c {
			case 'M':
				c = 'L'
			case 'm':
				c = 'l'
			}
		}
		if !haveMove && c != 'M' && c != 'm' {
			return nil, fmt.Errorf("%w: path must start with moveto", ErrPathData)
		}
		rel := c >= 'a'

		switch c {
		case 'M', 'm': // MoveTo
			v, err := ps.numbers(2)
			if err != nil {
				return nil, err
			}
			p := abs(rel && haveMove, v...)[0]
			haveMove = true
			cur, start = p, p
			path = g2d.NewPath(p)
			res = append(res, path)
			cp, qp = nil, nil
		case 'L', 'l': // LineTo
			v, err := ps.numbers(2)
			if err != nil {
				return nil, err
			}
			ensure()
			cur = abs(rel, v...)[0]
			path.AddStep(cur)
			cp, qp = nil, nil
		case 'H', 'h': // HorizontalTo
			v, err := ps.number()
			if err != nil {
				return nil, err
			}
			ensure()
			if rel {
				v += cur[0]
			}
			cur = []float64{v, cur[1]}
			path.AddStep(cur)
			cp, qp = nil, nil
		case 'V', 'v': // VerticalTo
			v, err := ps.number()
			if err != nil {
				return nil, err
			}
			ensure()
			if rel {
				v += cur[1]
			}
			cur = []float64{cur[0], v}
			path.AddStep(cur)
			cp, qp = nil, nil
		case 'C', 'c': // CubicTo
			v, err := ps.numbers(6)
			if err != nil {
				return nil, err
			}
			ensure()
			pts := abs(rel, v...)
			path.AddStep(pts...)
			cur, cp, qp = pts[2], pts[1], nil
		case 'S', 's': // SmoothCubicTo
			v, err := ps.numbers(4)
			if err != nil {
				return nil, err
			}
			ensure()
			// Infer p1 from the reflected penultimate point of the previous C/S step, else use current
			pts := abs(rel, v...)
			path.AddStep(reflect(cp), pts[0], pts[1])
			cur, cp, qp = pts[1], pts[0], nil
		case 'Q', 'q': // QuadTo
			v, err := ps.numbers(4)
			if err != nil {
				return nil, err
			}
			ensure()
			pts := abs(rel, v...)
			path.AddStep(pts...)
			cur, qp, cp = pts[1], pts[0], nil
		case 'T', 't': // SmoothQuadTo
			v, err := ps.numbers(2)
			if err != nil {
				return nil, err
			}
			ensure()
			p1 := reflect(qp)
			p2 := abs(rel, v...)[0]
			path.AddStep(p1, p2)
			cur, qp, cp = p2, p1, nil
		case 'A', 'a': // ArcTo
			r, err := ps.numbers(3)
			if err != nil {
				return nil, err
			}
			la, err := ps.flag()
			if err != nil {
				return nil, err
			}
			swp, err := ps.flag()
			if err != nil {
				return nil, err
			}
			v, err := ps.numbers(2)
			if err != nil {
				return nil, err
			}
			ensure()
			p := abs(rel, v...)[0]
			xang := r[2] / 180 * math.Pi // value is in degrees
			path.Concatenate(g2d.EllipticalArcFromPoints2(cur, p, r[0], r[1], xang, la, swp, g2d.ArcOpen))
			cur = p
			cp, qp = nil, nil
		case 'Z', 'z':
			if path != nil {
				path.Close()
			}
			path = nil
			cur = start
			cp, qp = nil, nil
		}
		lastCmd = c
	}
	return res, nil
}

// ParseValue parses a number with an optional unit and returns it in user units (CSS pixels).
// Percentages are returned as their plain value.
func ParseValue(str string) (float64, error) {
	v, u, err := ParseValueUnit(str)
	if err != nil {
		return 0, err
	}
	switch u {
	case "pt":
		v *= 96.0 / 72
	case "pc":
		v *= 16
	case "in":
		v *= 96
	case "cm":
		v *= 96 / 2.54
	case "mm":
		v *= 96 / 25.4
	}
	return v, nil
}

// ParseValueUnit splits a value such as "12.5px" into its number and unit.
// An empty string is zero.
func ParseValueUnit(str string) (float64, string, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return 0, "", nil
	}
	ps := &pathScanner{s: str}
	v, err := ps.number()
	if err != nil {
		return 0, "", fmt.Errorf("svg: bad value %q", str)
	}
	return v, strings.ToLower(strings.TrimSpace(str[ps.i:])), nil
}

// ParseNumbers parses a list of numbers separated by whitespace and/or commas, as used by
// points, viewBox and transform arguments.
func ParseNumbers(str string) ([]float64, error) {
	ps := &pathScanner{s: str}
	var res []float64
	for !ps.done() {
		v, err := ps.number()
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

// ParseColor parses an SVG paint color. "none" and "transparent" yield a nil color.
// Besides the SVG color keywords, the names of the graphics2d color list ("24 Karat",
// "Bright Ube", ...) are accepted, which lets colors be given by name on the command line.
func ParseColor(str string) (color.Color, error) {
	str = strings.TrimSpace(str)
	lstr := strings.ToLower(str)
	switch {
	case lstr == "none" || lstr == "transparent":
		return nil, nil
	case strings.HasPrefix(lstr, "#"):
		return parseHex(lstr[1:])
	case strings.HasPrefix(lstr, "rgb"):
		return parseRGB(lstr)
	case strings.HasPrefix(lstr, "url("):
		// Gradients and patterns are reduced to black, which keeps the shape visible.
		return color.Black, nil
	}
	// SVG keyword, then the wider graphics2d list
	if col, ok := colornames.Map[lstr]; ok {
		return col, nil
	}
	col, err := g2dcol.ByName(lstr)
	if err != nil {
		return nil, fmt.Errorf("svg: unknown color %q", str)
	}
	return col.Color, nil
}

func parseHex(str string) (color.Color, error) {
	v, err := strconv.ParseUint(str, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("svg: bad color #%s", str)
	}
	switch len(str) {
	case 3:
		return color.NRGBA{R: uint8(v>>8&0xf) * 0x11, G: uint8(v>>4&0xf) * 0x11, B: uint8(v&0xf) * 0x11, A: 0xff}, nil
	case 4:
		return color.NRGBA{R: uint8(v>>12&0xf) * 0x11, G: uint8(v>>8&0xf) * 0x11, B: uint8(v>>4&0xf) * 0x11, A: uint8(v&0xf) * 0x11}, nil
	case 6:
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
	case 8:
		return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
	}
	return nil, fmt.Errorf("svg: bad color #%s", str)
}

func parseRGB(str string) (color.Color, error) {
	open, end := strings.IndexByte(str, '('), strings.LastIndexByte(str, ')')
	if open < 0 || end < open {
		return nil, fmt.Errorf("svg: bad color %q", str)
	}
	parts := strings.FieldsFunc(str[open+1:end], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(parts) != 3 && len(parts) != 4 {
		return nil, fmt.Errorf("svg: bad color %q", str)
	}
	var ch [4]uint8
	ch[3] = 0xff
	for i, p := range parts {
		v, u, err := ParseValueUnit(p)
		if err != nil {
			return nil, fmt.Errorf("svg: bad color %q", str)
		}
		switch {
		case u == "%":
			v = v / 100 * 255
		case i == 3:
			v *= 255
		}
		ch[i] = uint8(math.Round(math.Max(0, math.Min(255, v))))
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

// ParseStyle copies the declarations of a style attribute into attrs.
// Style declarations take precedence over presentation attributes.
func ParseStyle(str string, attrs map[string]string) {
	for _, decl := range strings.Split(str, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "!important"))
		if k != "" {
			attrs[k] = v
		}
	}
}

// ParseTransform parses an SVG transform list into a single matrix.
func ParseTransform(str string) (*g2d.Aff3, error) {
	m := g2d.NewAff3()
	for _, t := range strings.Split(str, ")") {
		t = strings.TrimSpace(strings.TrimLeft(t, " ,\t\n\r"))
		if t == "" {
			continue
		}
		name, args, ok := strings.Cut(t, "(")
		if !ok {
			return nil, fmt.Errorf("svg: bad transform %q", str)
		}
		v, err := ParseNumbers(args)
		if err != nil {
			return nil, fmt.Errorf("svg: bad transform %q: %w", str, err)
		}
		ln := len(v)
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "matrix":
			if ln != 6 {
				return nil, fmt.Errorf("svg: matrix needs 6 values in %q", str)
			}
			m.Concatenate(g2d.Aff3{v[0], v[2], v[4], v[1], v[3], v[5]})
		case "translate":
			switch ln {
			case 1:
				m.Translate(v[0], 0)
			case 2:
				m.Translate(v[0], v[1])
			default:
				return nil, fmt.Errorf("svg: translate needs 1 or 2 values in %q", str)
			}
		case "scale":
			switch ln {
			case 1:
				m.Scale(v[0], v[0])
			case 2:
				m.Scale(v[0], v[1])
			default:
				return nil, fmt.Errorf("svg: scale needs 1 or 2 values in %q", str)
			}
		case "rotate":
			switch ln {
			case 1:
				m.Rotate(v[0] * math.Pi / 180)
			case 3:
				m.Translate(v[1], v[2]).Rotate(v[0]*math.Pi/180).Translate(-v[1], -v[2])
			default:
				return nil, fmt.Errorf("svg: rotate needs 1 or 3 values in %q", str)
			}
		case "skewx":
			if ln != 1 {
				return nil, fmt.Errorf("svg: skewX needs 1 value in %q", str)
			}
			m.Shear(math.Tan(v[0]*math.Pi/180), 0)
		case "skewy":
			if ln != 1 {
				return nil, fmt.Errorf("svg: skewY needs 1 value in %q", str)
			}
			m.Shear(0, math.Tan(v[0]*math.Pi/180))
		default:
			return nil, fmt.Errorf("svg: unknown transform %q", name)
		}
	}
	return m, nil
}
