package overlay

import (
	"math"

	"github.com/ctessum/geom"
)

const discSegs = 24

// Buffer expands pg outward by radius r. ctessum/geom carries no native
// offset operation, so the buffer is composed from the library's union: a
// rectangle per ring edge plus a disc per vertex. Discs are circumscribed
// (radius r/cos(π/n)) so the composite never falls inside the true offset.
func Buffer(pg geom.Polygonal, r float64) geom.Polygonal {
	if pg == nil || r <= 0 {
		return pg
	}
	out := pg
	for _, p := range pg.Polygons() {
		for _, ring := range p {
			n := len(ring)
			if n < 2 {
				continue
			}
			for i := 0; i < n; i++ {
				a, b := ring[i], ring[(i+1)%n]
				if rect := edgeRect(a, b, r); rect != nil {
					out = out.Union(rect)
				}
				out = out.Union(disc(a, r))
			}
		}
	}
	return out
}

func edgeRect(a, b geom.Point, r float64) geom.Polygon {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return nil
	}
	nx, ny := -dy/l*r, dx/l*r
	return geom.Polygon{{
		{X: a.X + nx, Y: a.Y + ny},
		{X: b.X + nx, Y: b.Y + ny},
		{X: b.X - nx, Y: b.Y - ny},
		{X: a.X - nx, Y: a.Y - ny},
	}}
}

func disc(c geom.Point, r float64) geom.Polygon {
	rc := r / math.Cos(math.Pi/discSegs) // circumscribe
	ring := make([]geom.Point, discSegs)
	for i := 0; i < discSegs; i++ {
		th := 2. * math.Pi * float64(i) / discSegs
		ring[i] = geom.Point{X: c.X + rc*math.Cos(th), Y: c.Y + rc*math.Sin(th)}
	}
	return geom.Polygon{ring}
}
