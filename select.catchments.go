package rbi

import (
	"sort"

	"github.com/ctessum/geom"
)

// siteSelection is one site's share of the drainage network: the buffer
// polygon and the catchments both downstream of the site and inside the
// buffer. Ephemeral; discarded once the flood fragment is cut.
type siteSelection struct {
	buf  geom.Polygonal
	cids []int
}

// selectCatchments bounds the traversal per site: unrestricted downstream
// walks run to a terminal outlet far outside the area of interest, and the
// buffer is the only spatial extent relevant to scoring, so the graph is
// pruned to buffer catchments before traversal. Cost stays proportional to
// catchments-in-buffer, not basin size.
//
//	bufferCatchments = catchments ∩ buffer(site)
//	seeds            = catchments ∩ site
//	closure          = downstream(seeds) on the graph restricted to bufferCatchments
//	selection        = closure ∩ bufferCatchments
func selectCatchments(s *Site, ct *Catchments, net *FlowNetwork) siteSelection {
	buf := s.Buffer()

	inbuf := make(map[int]bool)
	for _, c := range ct.Intersecting(buf) {
		inbuf[c] = true
	}
	seeds := ct.Intersecting(s.Poly)

	closure := net.Restrict(inbuf).Downstream(seeds)

	var sel []int
	for c := range closure {
		if inbuf[c] {
			sel = append(sel, c)
		}
	}
	sort.Ints(sel)
	return siteSelection{buf: buf, cids: sel}
}
