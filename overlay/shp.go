package overlay

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
)

// IDPoly is a polygon feature carrying its explicit id-field value. Engine
// row numbers are not stable across feature-class copies, so joins are made
// on this id only.
type IDPoly struct {
	ID   int
	Poly geom.Polygonal
}

// fieldKind is the resolved storage type of an id field: decided once
// against the first row of the layer, then applied per row without
// re-inspection.
type fieldKind int

const (
	intField fieldKind = iota
	floatField
)

type fieldKey struct {
	name string
	kind fieldKind
}

func resolveFieldKey(name, sample string) (fieldKey, error) {
	s := strings.Trim(sample, "\x00* ")
	if _, err := strconv.Atoi(s); err == nil {
		return fieldKey{name, intField}, nil
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return fieldKey{name, floatField}, nil
	}
	return fieldKey{}, fmt.Errorf("overlay: field %s value %q is not numeric", name, sample)
}

func (k fieldKey) parse(raw string) (int, error) {
	s := strings.Trim(raw, "\x00* ")
	switch k.kind {
	case floatField:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("overlay: field %s value %q: %v", k.name, raw, err)
		}
		return int(f), nil
	default:
		i, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("overlay: field %s value %q: %v", k.name, raw, err)
		}
		return i, nil
	}
}

// LoadIDPolygons reads a polygon shapefile keyed by the named id field.
func LoadIDPolygons(fp, idField string) ([]IDPoly, error) {
	d, err := shp.NewDecoder(fp)
	if err != nil {
		return nil, fmt.Errorf("overlay.LoadIDPolygons %s: %v", fp, err)
	}
	defer d.Close()

	var (
		out []IDPoly
		key fieldKey
	)
	frst := true
	for {
		g, fields, more := d.DecodeRowFields(idField)
		if !more {
			break
		}
		raw, ok := fields[idField]
		if !ok {
			return nil, fmt.Errorf("overlay.LoadIDPolygons %s: missing attribute column %s", fp, idField)
		}
		if frst {
			if key, err = resolveFieldKey(idField, raw); err != nil {
				return nil, fmt.Errorf("overlay.LoadIDPolygons %s: %v", fp, err)
			}
			frst = false
		}
		id, err := key.parse(raw)
		if err != nil {
			return nil, fmt.Errorf("overlay.LoadIDPolygons %s: %v", fp, err)
		}
		pg, ok := g.(geom.Polygonal)
		if !ok {
			return nil, fmt.Errorf("overlay.LoadIDPolygons %s: shapes need to be polygons", fp)
		}
		out = append(out, IDPoly{ID: id, Poly: pg})
	}
	if err := d.Error(); err != nil {
		return nil, fmt.Errorf("overlay.LoadIDPolygons %s: %v", fp, err)
	}
	return out, nil
}

// LoadPolygons reads a polygon shapefile, geometry only.
func LoadPolygons(fp string) ([]geom.Polygonal, error) {
	d, err := shp.NewDecoder(fp)
	if err != nil {
		return nil, fmt.Errorf("overlay.LoadPolygons %s: %v", fp, err)
	}
	defer d.Close()

	var out []geom.Polygonal
	for {
		g, _, more := d.DecodeRowFields()
		if !more {
			break
		}
		pg, ok := g.(geom.Polygonal)
		if !ok {
			return nil, fmt.Errorf("overlay.LoadPolygons %s: shapes need to be polygons", fp)
		}
		out = append(out, pg)
	}
	if err := d.Error(); err != nil {
		return nil, fmt.Errorf("overlay.LoadPolygons %s: %v", fp, err)
	}
	return out, nil
}
