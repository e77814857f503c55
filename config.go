package rbi

import (
	"fmt"
	"strings"

	"github.com/maseology/mmio"
)

// FloodStage names the inputs of the flood-benefit module. Every enabled
// stage declares its required inputs here and is validated before any stage
// executes; no boolean flags select behaviour at run time.
type FloodStage struct {
	SitesFP, SiteField  string // site polygons + stable id field
	CatchFP, JoinField  string // catchment polygons + hydrologic id field
	FlowFP              string // flow-routing table csv (from,to)
	HazardFP            string // flood-hazard polygons
	WetlandsFP          string // existing wetlands (optional)
	SubstitutesFP       string // existing mitigation features (optional)
	BeneFP              string // beneficiary address points
	BeneGeographic      bool   // address points are lat/lon
	PopGdefFP, PopRmapFP string // population raster (gdef + rmap)
	Check               bool   // dump per-site diagnostics and scratch
}

func (f *FloodStage) validate() error {
	req := func(v, name string) error {
		if v == "" {
			return fmt.Errorf("%w: flood stage: %s not set", ErrConfig, name)
		}
		if _, ok := mmio.FileExists(v); !ok {
			return fmt.Errorf("%w: flood stage: %s %s not found", ErrConfig, name, v)
		}
		return nil
	}
	for _, in := range []struct{ v, name string }{
		{f.SitesFP, "sitesfp"}, {f.CatchFP, "catchfp"}, {f.FlowFP, "flowfp"}, {f.HazardFP, "hazfp"},
	} {
		if err := req(in.v, in.name); err != nil {
			return err
		}
	}
	if f.SiteField == "" || f.JoinField == "" {
		return fmt.Errorf("%w: flood stage: sitefld and joinfld must be set", ErrConfig)
	}
	if f.BeneFP == "" && (f.PopGdefFP == "" || f.PopRmapFP == "") {
		return ErrNoBeneficiarySource
	}
	return nil
}

// RunConfig enumerates the enabled benefit stages for one batch run. A nil
// stage is simply not run.
type RunConfig struct {
	OutFP    string
	CheckDir string
	Flood    *FloodStage
}

// Validate checks every enabled stage's declared inputs before anything
// executes, so a misconfigured later stage never wastes an earlier one.
func (c *RunConfig) Validate() error {
	if c.OutFP == "" {
		return fmt.Errorf("%w: outfp not set", ErrConfig)
	}
	if c.Flood != nil {
		if err := c.Flood.validate(); err != nil {
			return err
		}
	}
	return nil
}

// LoadRunConfig reads a .rbi control file (instruct format: "key value"
// lines).
func LoadRunConfig(fp string) (*RunConfig, error) {
	if _, ok := mmio.FileExists(fp); !ok {
		return nil, fmt.Errorf("%w: control file %s not found", ErrConfig, fp)
	}
	ins := mmio.NewInstruct(fp)
	one := func(k string) string {
		if v, ok := ins.Param[k]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}
	cfg := &RunConfig{
		OutFP:    one("outfp"),
		CheckDir: one("chkdir"),
	}
	if one("sitesfp") != "" {
		cfg.Flood = &FloodStage{
			SitesFP:        one("sitesfp"),
			SiteField:      one("sitefld"),
			CatchFP:        one("catchfp"),
			JoinField:      one("joinfld"),
			FlowFP:         one("flowfp"),
			HazardFP:       one("hazfp"),
			WetlandsFP:     one("wetfp"),
			SubstitutesFP:  one("subsfp"),
			BeneFP:         one("benefp"),
			BeneGeographic: strings.EqualFold(one("benegeo"), "true"),
			PopGdefFP:      one("popgdeffp"),
			PopRmapFP:      one("poprmapfp"),
			Check:          cfg.CheckDir != "",
		}
	}
	return cfg, nil
}
