// Package iconic builds launcher icons from SVG glyphs.
//
// An Editor imports an SVG document, picks the glyph's path out of the imported scene tree
// (see SelectPath), and places it over a colored disc, the base, on a 48 unit canvas. The icon
// can be recolored, resized, moved and given a long shadow cast toward the bottom right. The
// composition renders to an image, to SVG, or to a zip archive holding both:
//
//	ed := iconic.NewEditor()
//	if err := ed.Import(f); err != nil {
//		return err
//	}
//	ed.SetShadowLength(24)
//	return ed.Export(out, iconic.ExportOptions{Densities: true})
package iconic
