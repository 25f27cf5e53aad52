// Command svgdump prints how an SVG document is imported: its DOM, the scene tree built from it
// and the path the icon editor would select. It can also save a preview of the selected path.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	g2d "github.com/jphsd/graphics2d"
	g2dcol "github.com/jphsd/graphics2d/color"
	g2dimg "github.com/jphsd/graphics2d/image"
	"github.com/jphsd/iconic"
	"github.com/jphsd/iconic/geom"
	"github.com/jphsd/iconic/render"
	"github.com/jphsd/iconic/svg"
	"github.com/jphsd/iconic/xml"
)

// Read in a SVG file and describe it
func main() {
	domf := flag.Bool("dom", false, "dump the XML DOM instead of the scene tree")
	preview := flag.String("png", "", "save a preview of the selected path under this name")
	size := flag.Int("size", 256, "preview size in pixels")
	verbose := flag.Bool("v", false, "log importer diagnostics")
	flag.Parse()

	// Get the file name from the command line or read stdin
	args := flag.Args()
	fn := "/dev/stdin"
	if len(args) > 0 {
		fn = args[0]
	}

	f, err := os.Open(fn)
	if err != nil {
		fatal(err)
	}
	defer f.Close()

	// Convert it to a domain object model
	dom, err := xml.NewXMLDecoder(bufio.NewReader(f)).BuildDOM()
	if err != nil {
		fatal(err)
	}
	if *domf {
		dump(os.Stdout, dom, 0)
		return
	}

	im := svg.Importer{}
	if *verbose {
		im.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	g, err := im.ImportDOM(dom)
	if err != nil {
		fatal(err)
	}
	w, h := svg.Size(dom)
	fmt.Printf("size %sx%s\n", svg.FormatFloat(w), svg.FormatFloat(h))
	if g.Title != "" {
		fmt.Printf("title %q\n", g.Title)
	}
	tree(os.Stdout, g, 0)

	path, err := iconic.SelectPath(g)
	if err != nil {
		fatal(err)
	}
	fmt.Print("selected: ")
	tree(os.Stdout, path, 0)

	if *preview != "" {
		if err := save(*preview, path, *size); err != nil {
			fatal(err)
		}
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

// dump prints the DOM, one element per line.
func dump(w io.Writer, dom *xml.Element, indent int) {
	switch dom.Type {
	case xml.Node:
		res := makeInd(indent) + dom.Name.Local + ":"
		for _, k := range slices.Sorted(maps.Keys(dom.Attributes)) {
			res += " " + k + "=" + dom.Attributes[k]
		}
		fmt.Fprintln(w, res)
		for _, c := range dom.Children {
			dump(w, c, indent+1)
		}
	case xml.Content:
		txt := strings.Trim(string(dom.Content), " \t\n")
		if len(txt) != 0 {
			fmt.Fprintln(w, makeInd(indent)+txt)
		}
	}
}

// tree prints the scene tree with bounds and fills.
func tree(w io.Writer, item svg.Item, indent int) {
	b := item.Bounds()
	ext := fmt.Sprintf("[%s,%s %sx%s]", svg.FormatFloat(b.Min.X), svg.FormatFloat(b.Min.Y),
		svg.FormatFloat(b.W()), svg.FormatFloat(b.H()))
	switch it := item.(type) {
	case *svg.Group:
		fmt.Fprintf(w, "%sgroup %s %s\n", makeInd(indent), it.ID, ext)
		for _, c := range it.Children {
			tree(w, c, indent+1)
		}
	case *svg.CompoundPath:
		fmt.Fprintf(w, "%scompound %s %s fill=%s rule=%s\n", makeInd(indent), it.ID, ext, fillOf(it.Fill), it.FillRule)
		for _, c := range it.Children {
			tree(w, c, indent+1)
		}
	case *svg.Path:
		fmt.Fprintf(w, "%spath %s %s fill=%s area=%s steps=%d\n", makeInd(indent), it.ID, ext, fillOf(it.Fill),
			svg.FormatFloat(it.Area()), len(it.Contour.Steps())-1)
	}
}

func fillOf(c color.Color) string {
	if c == nil {
		return "none"
	}
	return fmt.Sprintf("%s/%s", svg.FormatColor(c), svg.FormatFloat(svg.Alpha(c)))
}

// save renders the selected path in black on white, fitted to the preview.
func save(name string, path svg.PathItem, px int) error {
	cs := path.Contours()
	b := geom.Bounds(cs)
	k := 0.9 * float64(px) / max(b.W(), b.H(), geom.Epsilon)
	c := b.Center()
	xfm := g2d.Translate(float64(px)/2, float64(px)/2).Scale(k, k).Translate(-c.X, -c.Y)

	rule := geom.NonZero
	if cp, ok := path.(*svg.CompoundPath); ok {
		rule = cp.FillRule
	}
	mask, err := render.Default().Mask(px, px, cs, xfm, rule)
	if err != nil {
		return err
	}
	img := g2dimg.NewRGBA(px, px, g2dcol.White)
	draw.DrawMask(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, mask, image.Point{}, draw.Over)
	return g2dimg.SaveImage(img, name)
}

func makeInd(i int) string {
	return strings.Repeat("  ", i)
}
