package geom

import g2d "github.com/jphsd/graphics2d"

// Flatness is the curve flattening tolerance used for areas and bounds, in user units.
const Flatness = 0.01

// flat flattens a copy of p so that p's own flattening cache, used when rendering, is untouched.
func flat(p *g2d.Path) *g2d.Path {
	return p.Copy().Flatten(Flatness)
}

// Empty reports whether p has no step beyond its start point.
func Empty(p *g2d.Path) bool {
	return len(p.Steps()) < 2
}

// Area returns the signed area enclosed by p, treating it as closed.
// The area is positive when the path runs clockwise on a y-down canvas.
func Area(p *g2d.Path) float64 {
	steps := flat(p).Steps()
	sum := 0.0
	for i, s := range steps {
		a, b := s[len(s)-1], steps[(i+1)%len(steps)]
		b0 := b[len(b)-1]
		sum += a[0]*b0[1] - b0[0]*a[1]
	}
	return sum / 2
}

// Orient returns p, or p reversed, so that it runs clockwise when cw is set and
// counter-clockwise otherwise.
func Orient(p *g2d.Path, cw bool) *g2d.Path {
	if (Area(p) > 0) == cw {
		return p
	}
	return p.Reverse()
}

// PathBounds returns the bounding rectangle of the flattened path.
func PathBounds(p *g2d.Path) Rect {
	return RectOf(flat(p).BoundingBox())
}

// Bounds returns the union of the bounds of ps.
func Bounds(ps []*g2d.Path) Rect {
	var r Rect
	for _, p := range ps {
		r = r.Union(PathBounds(p))
	}
	return r
}

// TransformAll applies xfm to each path of ps.
func TransformAll(ps []*g2d.Path, xfm *g2d.Aff3) []*g2d.Path {
	res := make([]*g2d.Path, len(ps))
	for i, p := range ps {
		res[i] = p.Transform(xfm)
	}
	return res
}
