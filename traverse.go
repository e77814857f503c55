package rbi

// Downstream returns the set of catchment ids reachable from the seeds by
// following drainage direction, seeds included. Drainage networks can carry
// confluence/diversion loops, so the visited set is the termination guard:
// each node expands at most once. A seed or edge target absent from the
// index is a leaf with no downstream neighbours. No ordering guarantee.
func (n *FlowNetwork) Downstream(seeds []int) map[int]bool {
	vis := make(map[int]bool, len(seeds))
	que := make([]int, 0, len(seeds))
	for _, s := range seeds {
		if !vis[s] {
			vis[s] = true
			que = append(que, s)
		}
	}
	for len(que) > 0 {
		c := que[0]
		que = que[1:]
		for _, d := range n.Down[c] {
			if !vis[d] {
				vis[d] = true
				que = append(que, d)
			}
		}
	}
	return vis
}
