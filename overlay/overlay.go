// Package overlay supplies the geometry and raster overlay primitives shared
// by every benefit module: spatial selection, clip, dissolve, buffer, point
// counts, zonal sums and percent cover. Geometry is ctessum/geom, planar, in
// a consistent projected metric unit.
package overlay

import "github.com/ctessum/geom"

// Clip returns the portion of subject inside mask, nil when disjoint.
func Clip(subject, mask geom.Polygonal) geom.Polygonal {
	if subject == nil || mask == nil {
		return nil
	}
	c := subject.Intersection(mask)
	if c == nil || c.Area() == 0 {
		return nil
	}
	return c
}

// Dissolve merges polygons into one, removing interior seams. Nil inputs are
// skipped; nil is returned when nothing remains.
func Dissolve(polys []geom.Polygonal) geom.Polygonal {
	var out geom.Polygonal
	for _, p := range polys {
		if p == nil {
			continue
		}
		if out == nil {
			out = p
			continue
		}
		out = out.Union(p)
	}
	return out
}

// Area returns planar area, zero for nil.
func Area(p geom.Polygonal) float64 {
	if p == nil {
		return 0
	}
	return p.Area()
}

// PercentCover returns Σ area(subject ∩ container) / area(container) × 100.
// Intersection areas are summed over all subject parts, so overlapping or
// multi-part subjects measure coverage density rather than binary
// occurrence; the result can exceed what a presence count would suggest.
// Order of subjects is irrelevant.
func PercentCover(subjects []geom.Polygonal, container geom.Polygonal) float64 {
	ca := Area(container)
	if ca == 0 {
		return 0
	}
	sum := 0.
	for _, s := range subjects {
		if s == nil {
			continue
		}
		if x := s.Intersection(container); x != nil {
			sum += x.Area()
		}
	}
	return sum / ca * 100.
}

// CountIntersecting counts the polygons that overlap container with
// non-zero area.
func CountIntersecting(polys []geom.Polygonal, container geom.Polygonal) int {
	n := 0
	for _, p := range polys {
		if p == nil {
			continue
		}
		if x := p.Intersection(container); x != nil && x.Area() > 0 {
			n++
		}
	}
	return n
}
