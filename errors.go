package rbi

import "errors"

// Module error kinds, checked with errors.Is.
var (
	// ErrConfig marks a missing or malformed hydrologic input (flow table,
	// catchment layer). The flood module is disabled for the run; other
	// benefit stages proceed.
	ErrConfig = errors.New("rbi: required hydrologic input missing or malformed")

	// ErrNoBeneficiarySource marks the absence of both beneficiary inputs
	// (address points and population raster). Fatal for the flood module.
	ErrNoBeneficiarySource = errors.New("rbi: no beneficiary source given")

	// ErrNoBeneficiaries marks zero beneficiaries found within the flood
	// hazard zone. Fatal for the flood module.
	ErrNoBeneficiaries = errors.New("rbi: no beneficiaries found in hazard zone")
)
