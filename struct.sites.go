package rbi

import (
	"fmt"

	"github.com/ctessum/geom"
	"github.com/jbousquin/rbi/overlay"
)

// Site is a candidate restoration polygon with its stable carried id. The
// explicit id field is preferred over any engine-assigned row number, which
// is not stable across feature-class copies.
type Site struct {
	ID   int
	Poly geom.Polygonal
}

// Buffer returns the site geometry expanded by the fixed assessment radius.
func (s *Site) Buffer() geom.Polygonal {
	return overlay.Buffer(s.Poly, benchRadius)
}

// LoadSites reads the site layer keyed by idField.
func LoadSites(fp, idField string) ([]Site, error) {
	ips, err := overlay.LoadIDPolygons(fp, idField)
	if err != nil {
		return nil, err
	}
	if len(ips) == 0 {
		return nil, fmt.Errorf("site layer %s is empty", fp)
	}
	sites := make([]Site, len(ips))
	seen := make(map[int]bool, len(ips))
	for i, ip := range ips {
		if seen[ip.ID] {
			return nil, fmt.Errorf("site layer %s: duplicate site id %d in field %s", fp, ip.ID, idField)
		}
		seen[ip.ID] = true
		sites[i] = Site{ID: ip.ID, Poly: ip.Poly}
	}
	return sites, nil
}
