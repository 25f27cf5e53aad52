package iconic

import (
	"cmp"
	"errors"
	"image/color"
	"math"
	"slices"

	"github.com/jphsd/iconic/geom"
	"github.com/jphsd/iconic/svg"
)

// ErrNoPath is returned when an imported document holds nothing usable as an icon.
var ErrNoPath = errors.New("no path found in SVG file")

// SelectPath picks the geometry to use as the icon out of an imported scene tree.
//
// An item that is itself a path is returned as is, as is the only path found below a group.
// When several paths are found, those without a fill are dropped (Material icons carry an
// invisible bounding path), compound paths are split into their sub-paths, and the sub-paths
// are recombined into a new compound path ordered by ascending area. The first sub-path is
// then made to run clockwise and every later one counter-clockwise, so that under the nonzero
// rule the smallest sub-paths become holes in the larger ones whatever winding the source used.
//
// The items of the tree are not modified; the combined path holds copies.
func SelectPath(item svg.Item) (svg.PathItem, error) {
	if p, ok := item.(svg.PathItem); ok {
		return p, nil
	}

	var candidates []svg.PathItem
	svg.Walk(item, func(it svg.Item) bool {
		if p, ok := it.(svg.PathItem); ok {
			candidates = append(candidates, p)
			return false
		}
		return true
	})
	switch len(candidates) {
	case 0:
		return nil, ErrNoPath
	case 1:
		return candidates[0], nil
	}

	var (
		subs []*svg.Path
		fill color.Color
	)
	for _, c := range candidates {
		if c.FillColor() == nil {
			continue
		}
		if fill == nil {
			fill = c.FillColor()
		}
		switch p := c.(type) {
		case *svg.Path:
			subs = append(subs, p.Clone().(*svg.Path))
		case *svg.CompoundPath:
			for _, s := range p.Children {
				subs = append(subs, s.Clone().(*svg.Path))
			}
		}
	}
	if len(subs) == 0 {
		return nil, ErrNoPath
	}

	for _, s := range subs {
		s.Fill = color.NRGBA{}
	}
	slices.SortStableFunc(subs, func(a, b *svg.Path) int {
		return cmp.Compare(math.Abs(a.Area()), math.Abs(b.Area()))
	})
	for i, s := range subs {
		s.Contour = geom.Orient(s.Contour, i == 0)
	}
	return &svg.CompoundPath{Children: subs, Fill: fill, FillRule: geom.NonZero}, nil
}
