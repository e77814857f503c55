// Package rbi scores candidate land-restoration sites on ecological and
// social benefit indicators by overlaying them with ancillary layers
// (population, hazard zones, land use, hydrology). The flood-benefit module
// delineates the portion of a flood-hazard layer hydrologically downstream
// of each site within a fixed radius, using a catchment-connectivity graph
// built from a flow-routing table.
package rbi

const (
	// benchRadius is the fixed benefit-assessment radius: 2.5 miles in metres.
	// All planar math is done in a projected metric coordinate system.
	benchRadius = 4023.36

	// wetScarceThresh flags wetland scarcity when existing-wetland cover
	// within the assessment radius falls below this percentage.
	wetScarceThresh = 10.0
)
