package iconic

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"math"
	"path"

	"github.com/disintegration/imaging"
	"github.com/jphsd/iconic/geom"
	"github.com/jphsd/iconic/svg"
	"github.com/jphsd/iconic/xml"
)

// DefaultPNGSize is the side of the exported icon.png in pixels.
const DefaultPNGSize = 192

// Density is an Android screen density bucket and its launcher icon size.
type Density struct {
	Name string
	Size int
}

// Densities lists the launcher icon sizes per density.
var Densities = []Density{
	{"mdpi", 48},
	{"hdpi", 72},
	{"xhdpi", 96},
	{"xxhdpi", 144},
	{"xxxhdpi", 192},
}

// ExportOptions controls the archive written by Export.
type ExportOptions struct {
	// PNGSize is the side of icons/icon.png; zero means DefaultPNGSize.
	PNGSize int
	// Densities adds icons/mipmap-<density>/icon.png for every entry of Densities.
	Densities bool
}

// Archive entry names.
const (
	zipRoot  = "icons"
	pngEntry = "icon.png"
	svgEntry = "icon.svg"
)

// shadowStep is the spacing of the icon copies making up the vector shadow, in canvas units.
const shadowStep = 0.5

// Export writes a zip archive holding icons/icon.png and icons/icon.svg.
func (e *Editor) Export(w io.Writer, opts ExportOptions) error {
	if err := e.check(); err != nil {
		return err
	}
	size := opts.PNGSize
	if size == 0 {
		size = DefaultPNGSize
	}

	zw := zip.NewWriter(w)
	if err := e.writePNG(zw, path.Join(zipRoot, pngEntry), size); err != nil {
		return err
	}
	f, err := zw.Create(path.Join(zipRoot, svgEntry))
	if err != nil {
		return fmt.Errorf("zip %s: %w", svgEntry, err)
	}
	if err := e.SVG(f); err != nil {
		return err
	}
	if opts.Densities {
		for _, d := range Densities {
			if err := e.writePNG(zw, path.Join(zipRoot, "mipmap-"+d.Name, pngEntry), d.Size); err != nil {
				return err
			}
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("zip: %w", err)
	}
	e.log.Debug("exported archive", "png", size, "densities", opts.Densities)
	return nil
}

func (e *Editor) writePNG(zw *zip.Writer, name string, px int) error {
	img, err := e.Render(px)
	if err != nil {
		return err
	}
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("zip %s: %w", name, err)
	}
	if err := imaging.Encode(f, img, imaging.PNG); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return nil
}

// DataURI returns the exported archive as a data URI, suitable for a download link.
func (e *Editor) DataURI(opts ExportOptions) (string, error) {
	var buf bytes.Buffer
	if err := e.Export(&buf, opts); err != nil {
		return "", err
	}
	return "data:application/zip;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// SVG writes the composition as an SVG document on the 48 unit canvas.
func (e *Editor) SVG(w io.Writer) error {
	if err := e.check(); err != nil {
		return err
	}
	if err := e.document().Encode(w); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

// Element ids used by the exported document.
const (
	idBaseClip   = "base-clip"
	idIconShape  = "icon-shape"
	idShadowFade = "shadow-fade"
	idShadowMask = "shadow-mask"
)

func ref(id string) string {
	return "url(#" + id + ")"
}

func (e *Editor) document() *svg.Document {
	doc := &svg.Document{Width: CanvasSize, Height: CanvasSize, Title: e.title}
	b, ic := e.base, e.icon
	item := ic.Path().Clone().(svg.PathItem)
	item.Transform(ic.Transform())
	cs := item.Contours()

	doc.Body = append(doc.Body, svg.CircleElement(b.Center, b.Radius, b.Color))

	if sh := ic.Shadow; sh.Visible() {
		shape := xml.NewNode("path").SetAttr("id", idIconShape).SetAttr("d", svg.PathData(cs))
		if ic.FillRule() == geom.EvenOdd {
			shape.SetAttr("fill-rule", "evenodd")
		}
		clip := xml.NewNode("clipPath").SetAttr("id", idBaseClip).
			AddChild(svg.CircleElement(b.Center, b.Radius, nil).SetAttr("fill", "#000000"))
		doc.Defs = append(doc.Defs, clip, shape)

		g := xml.NewNode("g").
			SetAttr("fill", "#000000").
			SetAttr("clip-path", ref(idBaseClip))
		if sh.Fading > 0 {
			doc.Defs = append(doc.Defs, shadowFade(ic.Bounds(), sh)...)
			g.SetAttr("mask", ref(idShadowMask))
		} else {
			g.SetAttr("opacity", svg.FormatFloat(sh.Intensity))
		}
		n := int(math.Ceil(sh.Length / shadowStep))
		for i := 1; i <= n; i++ {
			d := math.Min(float64(i)*shadowStep, sh.Length)
			g.AddChild(xml.NewNode("use").
				SetAttr("href", "#"+idIconShape).
				SetAttr("x", svg.FormatFloat(d)).
				SetAttr("y", svg.FormatFloat(d)))
		}
		doc.Body = append(doc.Body, g)
	}

	doc.Body = append(doc.Body, svg.PathElement(item, ic.Color))
	return doc
}

// shadowFade builds a gradient mask fading the shadow along the diagonal, from its opacity at
// the icon to its opacity at the far end.
func shadowFade(r geom.Rect, sh Shadow) []*xml.Element {
	from := r.Center()
	to := from.Add(geom.Pt(sh.Length, sh.Length))
	grad := xml.NewNode("linearGradient").
		SetAttr("id", idShadowFade).
		SetAttr("gradientUnits", "userSpaceOnUse").
		SetAttr("x1", svg.FormatFloat(from.X)).
		SetAttr("y1", svg.FormatFloat(from.Y)).
		SetAttr("x2", svg.FormatFloat(to.X)).
		SetAttr("y2", svg.FormatFloat(to.Y)).
		AddChild(xml.NewNode("stop").
			SetAttr("offset", "0").
			SetAttr("stop-color", "#ffffff").
			SetAttr("stop-opacity", svg.FormatFloat(sh.Opacity(0)))).
		AddChild(xml.NewNode("stop").
			SetAttr("offset", "1").
			SetAttr("stop-color", "#ffffff").
			SetAttr("stop-opacity", svg.FormatFloat(sh.Opacity(sh.Length))))
	mask := xml.NewNode("mask").
		SetAttr("id", idShadowMask).
		SetAttr("maskUnits", "userSpaceOnUse").
		SetAttr("x", "0").
		SetAttr("y", "0").
		SetAttr("width", svg.FormatFloat(CanvasSize)).
		SetAttr("height", svg.FormatFloat(CanvasSize)).
		AddChild(xml.NewNode("rect").
			SetAttr("width", svg.FormatFloat(CanvasSize)).
			SetAttr("height", svg.FormatFloat(CanvasSize)).
			SetAttr("fill", ref(idShadowFade)))
	return []*xml.Element{grad, mask}
}
