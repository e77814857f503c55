package rbi

import (
	"errors"
	"fmt"
	"log"

	"github.com/ctessum/geom"
	"github.com/jbousquin/rbi/overlay"
	"github.com/maseology/mmio"
)

// Run executes the enabled benefit stages over one batch of sites. Stage
// failures are contained: a disabled or failed flood module never stops the
// remaining stages, and the results written so far are kept (no rollback).
// The returned error, if any, is the first module-level failure.
func Run(cfg *RunConfig) error {
	if cfg.OutFP == "" {
		return fmt.Errorf("%w: outfp not set", ErrConfig)
	}
	if cfg.Flood == nil {
		return fmt.Errorf("%w: no benefit stages enabled", ErrConfig)
	}

	// prior output artifacts occupy fixed names; re-running is only
	// idempotent because they are deleted here first.
	mmio.DeleteFile(cfg.OutFP)

	sites, err := LoadSites(cfg.Flood.SitesFP, cfg.Flood.SiteField)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	ids := make([]int, len(sites))
	for i, s := range sites {
		ids[i] = s.ID
	}
	fmt.Printf(" %s sites loaded\n", mmio.Thousands(int64(len(sites))))

	tbl := NewResultsTable(ids)

	moduleErr := runFloodStage(cfg, sites, tbl)
	if moduleErr != nil {
		log.Printf(" flood module failed: %v", moduleErr)
	}
	// further benefit stages (scenic, education, recreation, ...) would run
	// here against the same table; they do not depend on the flood module.

	if err := tbl.WriteCSV(cfg.OutFP); err != nil {
		return err
	}
	fmt.Printf(" results written to %s\n", cfg.OutFP)
	return moduleErr
}

// runFloodStage loads the flood-module inputs and appends its columns.
// ConfigurationError (missing/malformed hydrologic inputs) disables the
// module and returns nil so the batch proceeds; beneficiary errors are
// module-fatal and returned.
func runFloodStage(cfg *RunConfig, sites []Site, tbl *ResultsTable) error {
	stage := cfg.Flood
	disable := func(err error) error {
		log.Printf(" flood module disabled: %v", err)
		return nil
	}

	if err := stage.validate(); err != nil {
		if errors.Is(err, ErrConfig) {
			return disable(err)
		}
		return err
	}

	ct, err := LoadCatchments(stage.CatchFP, stage.JoinField)
	if err != nil {
		return disable(err)
	}
	net, err := FlowNetworkFromTable(stage.FlowFP)
	if err != nil {
		return disable(err)
	}
	hazard, err := overlay.LoadPolygons(stage.HazardFP)
	if err != nil {
		return disable(fmt.Errorf("%w: hazard layer: %v", ErrConfig, err))
	}

	optional := func(fp, name string) []geom.Polygonal {
		if fp == "" {
			return nil
		}
		ps, err := overlay.LoadPolygons(fp)
		if err != nil {
			log.Printf(" flood module: %s layer skipped: %v", name, err)
			return nil
		}
		return ps
	}
	wetlands := optional(stage.WetlandsFP, "wetlands")
	substitutes := optional(stage.SubstitutesFP, "substitutes")

	var pts *overlay.PointSet
	if stage.BeneFP != "" {
		if pts, err = overlay.LoadPoints(stage.BeneFP, stage.BeneGeographic); err != nil {
			log.Printf(" flood module: address points unavailable: %v", err)
			pts = nil
		}
	}
	var ras *overlay.Raster
	if stage.PopGdefFP != "" && stage.PopRmapFP != "" {
		if ras, err = overlay.LoadRaster(stage.PopGdefFP, stage.PopRmapFP); err != nil {
			// raster capability absent: population counts are skipped,
			// non-fatal while address points remain.
			log.Printf(" flood module: %v: %v", overlay.ErrRasterUnavailable, err)
			ras = nil
		}
	}

	// in check mode the scratch root lives under CheckDir and its artifacts
	// survive the run for inspection; otherwise scratch is transient.
	var scratch *Arena
	if stage.Check {
		if cfg.CheckDir != "" {
			mmio.MakeDir(cfg.CheckDir)
			scratch, err = NewKeepArena(cfg.CheckDir)
		} else {
			scratch, err = NewArena("")
		}
		if err != nil {
			log.Printf(" flood module: scratch arena unavailable: %v", err)
			scratch = nil
		} else {
			defer scratch.Close()
		}
	}

	in := FloodInputs{
		Sites:         sites,
		Beneficiaries: pts,
		PopRaster:     ras,
		Hazard:        hazard,
		Wetlands:      wetlands,
		Substitutes:   substitutes,
		Catchments:    ct,
		Net:           net,
		Scratch:       scratch,
	}
	if err := AppendFloodBenefits(in, tbl); err != nil {
		if errors.Is(err, ErrConfig) {
			return disable(err)
		}
		return err
	}

	if cfg.CheckDir != "" {
		mmio.MakeDir(cfg.CheckDir)
		net.checkandprint(cfg.CheckDir)
		checkandprintFlood(cfg.CheckDir, sites, tbl)
	}
	return nil
}
