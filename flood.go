package rbi

import (
	"encoding/gob"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/ctessum/geom"
	"github.com/gosuri/uiprogress"
	"github.com/jbousquin/rbi/overlay"
)

// The ten flood-benefit result columns, joined to sites by id.
const (
	ColBeneCnt    = "BeneCnt"    // beneficiaries in the downstream flood fragment
	ColFldZonPct  = "FldZonPct"  // hazard percent cover within the assessment radius
	ColDsFldArea  = "DsFldArea"  // downstream flood area, m²
	ColDsFldPct   = "DsFldPct"   // downstream flood area as percent of the buffer
	ColSiteArea   = "SiteArea"   // site polygon area, m²
	ColFldBene    = "FldBene"    // site has downstream flood beneficiaries
	ColSubsCnt    = "SubsCnt"    // flood-mitigation substitutes within the radius
	ColSubsScarce = "SubsScarce" // no substitutes nearby
	ColWetDens    = "WetDens"    // existing-wetland percent cover within the radius
	ColWetScarce  = "WetScarce"  // wetland cover below scarcity threshold
)

// FloodInputs are the layers the flood-benefit module consumes. Either
// Beneficiaries or PopRaster must be present; the rest of the hydrologic
// inputs disable the module (not the run) when missing.
type FloodInputs struct {
	Sites         []Site
	Beneficiaries *overlay.PointSet // address points, planar
	PopRaster     *overlay.Raster   // population density raster
	Hazard        []geom.Polygonal  // flood-hazard zones
	Wetlands      []geom.Polygonal  // existing wetlands
	Substitutes   []geom.Polygonal  // existing flood-mitigation features
	Catchments    *Catchments
	Net           *FlowNetwork
	Scratch       *Arena // optional; nil skips intermediate dumps
}

// FloodFragment is one site's dissolved downstream flood polygon. At most
// one per site; a site with no downstream hazard overlap has none, which
// joins as zero area, not as an error.
type FloodFragment struct {
	SiteID int
	Poly   geom.Polygonal
}

// AppendFloodBenefits runs the downstream flood-benefit delineation over
// all sites and appends the ten result columns to tbl, joined by site id.
//
// Sites are processed strictly sequentially: intermediate geometries live in
// per-site scratch namespaces and the fragment collection is mutated by
// ordered appends. The flow network is immutable once built. A single
// site's geometry failure skips that site's fragment and processing
// continues; earlier sites' columns are never rolled back.
func AppendFloodBenefits(in FloodInputs, tbl *ResultsTable) error {
	if in.Catchments == nil || in.Net == nil {
		return fmt.Errorf("%w: flow network or catchment layer absent", ErrConfig)
	}
	if len(in.Hazard) == 0 {
		return fmt.Errorf("%w: flood hazard layer absent or empty", ErrConfig)
	}
	if in.Beneficiaries == nil && in.PopRaster == nil {
		return ErrNoBeneficiarySource
	}

	// beneficiary presence in the hazard zone gates the whole module:
	// downstream computation is meaningless without anyone to protect.
	nhaz, err := beneficiaryCount(overlay.Dissolve(in.Hazard), &in)
	if err != nil {
		return err
	}
	if nhaz == 0 {
		return ErrNoBeneficiaries
	}

	hz := overlay.NewPolySet(in.Hazard)

	// per site: select catchments, traverse, clip, dissolve, append.
	frags := make([]FloodFragment, 0, len(in.Sites))
	bufs := make(map[int]geom.Polygonal, len(in.Sites))

	uiprogress.Start()
	bar := uiprogress.AddBar(len(in.Sites)).AppendCompleted().PrependElapsed()
	for i := range in.Sites {
		s := &in.Sites[i]
		sel := selectCatchments(s, in.Catchments, in.Net)
		bufs[s.ID] = sel.buf
		if frag := reduceFloodZone(s.ID, hz, in.Catchments.Geoms(sel.cids), in.Scratch); frag != nil {
			frags = append(frags, FloodFragment{SiteID: s.ID, Poly: frag})
		}
		bar.Incr()
	}
	uiprogress.Stop()

	// join fragments back by explicit site id; row positions in the
	// accumulated collection carry no meaning.
	fx := make(map[int]geom.Polygonal, len(frags))
	for _, f := range frags {
		fx[f.SiteID] = f.Poly
	}

	tbl.AddColumns(ColBeneCnt, ColFldZonPct, ColDsFldArea, ColDsFldPct, ColSiteArea,
		ColFldBene, ColSubsCnt, ColSubsScarce, ColWetDens, ColWetScarce)

	for i := range in.Sites {
		s := &in.Sites[i]
		buf := bufs[s.ID]
		frag := fx[s.ID] // nil means zero downstream flood area

		barea := overlay.Area(buf)
		farea := overlay.Area(frag)

		nb := 0
		if frag != nil {
			if nb, err = beneficiaryCount(frag, &in); err != nil {
				return err
			}
		}

		tbl.SetInt(s.ID, ColBeneCnt, nb)
		tbl.SetFloat(s.ID, ColFldZonPct, overlay.PercentCover(in.Hazard, buf))
		tbl.SetFloat(s.ID, ColDsFldArea, farea)
		if barea > 0 {
			tbl.SetFloat(s.ID, ColDsFldPct, farea/barea*100.)
		}
		tbl.SetFloat(s.ID, ColSiteArea, overlay.Area(s.Poly))
		tbl.SetBool(s.ID, ColFldBene, nb > 0)

		nsub := overlay.CountIntersecting(in.Substitutes, buf)
		tbl.SetInt(s.ID, ColSubsCnt, nsub)
		tbl.SetBool(s.ID, ColSubsScarce, nsub == 0)

		wd := overlay.PercentCover(in.Wetlands, buf)
		tbl.SetFloat(s.ID, ColWetDens, wd)
		tbl.SetBool(s.ID, ColWetScarce, wd < wetScarceThresh)
	}
	return nil
}

// reduceFloodZone cuts one site's flood fragment: select hazard geometry
// against the selected catchments, clip to their dissolved boundary,
// dissolve to a single polygon. Returns nil when nothing overlaps or when a
// geometry operation fails (the site is skipped, the run continues).
func reduceFloodZone(sid int, hz *overlay.PolySet, selGeoms []geom.Polygonal, scratch *Arena) (frag geom.Polygonal) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf(" reduceFloodZone: site %d geometry failure, fragment dropped: %v", sid, r)
			frag = nil
		}
	}()
	if len(selGeoms) == 0 {
		return nil
	}
	mask := overlay.Dissolve(selGeoms)
	if mask == nil {
		return nil
	}

	var ss *SiteScratch
	if scratch != nil {
		var err error
		if ss, err = scratch.Site(sid); err != nil {
			log.Printf(" reduceFloodZone: site %d scratch unavailable: %v", sid, err)
			ss = nil
		}
	}
	defer ss.Release()

	var clips []geom.Polygonal
	for _, h := range hz.Intersecting(mask) {
		if c := overlay.Clip(h, mask); c != nil {
			clips = append(clips, c)
		}
	}
	if len(clips) == 0 {
		return nil
	}
	if ss != nil {
		dumpClips(ss.Path("hazclip.gob"), clips)
	}
	return overlay.Dissolve(clips)
}

// dumpClips writes the pre-dissolve clipped hazard pieces to site scratch
// for inspection. Best effort.
func dumpClips(fp string, clips []geom.Polygonal) {
	pgs := make([]geom.Polygon, 0, len(clips))
	for _, c := range clips {
		pgs = append(pgs, c.Polygons()...)
	}
	f, err := os.Create(fp)
	if err != nil {
		return
	}
	gob.NewEncoder(f).Encode(pgs)
	f.Close()
}

// beneficiaryCount counts beneficiaries within pg: address points when
// given, otherwise the population raster zonal sum. Raster capability being
// unavailable is non-fatal while points exist; with no points it means no
// usable beneficiary source.
func beneficiaryCount(pg geom.Polygonal, in *FloodInputs) (int, error) {
	if in.Beneficiaries != nil {
		return overlay.CountPointsIn(pg, in.Beneficiaries), nil
	}
	v, err := overlay.SumRasterIn(pg, in.PopRaster)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNoBeneficiarySource, err)
	}
	return int(math.Round(v)), nil
}
