package rbi

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	fp := filepath.Join(dir, name)
	if err := os.WriteFile(fp, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	return fp
}

func validFloodStage(t *testing.T) *FloodStage {
	d := t.TempDir()
	return &FloodStage{
		SitesFP:   touch(t, d, "sites.shp"),
		SiteField: "siteid",
		CatchFP:   touch(t, d, "catch.shp"),
		JoinField: "COMID",
		FlowFP:    touch(t, d, "flow.csv"),
		HazardFP:  touch(t, d, "haz.shp"),
		BeneFP:    touch(t, d, "addr.shp"),
	}
}

func TestRunConfig_Validate(t *testing.T) {
	cfg := &RunConfig{OutFP: "out.csv", Flood: validFloodStage(t)}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if err := (&RunConfig{Flood: cfg.Flood}).Validate(); !errors.Is(err, ErrConfig) {
		t.Errorf("missing outfp: err = %v, want ErrConfig", err)
	}
}

func TestFloodStage_Validate(t *testing.T) {
	f := validFloodStage(t)
	f.FlowFP = "no/such/flow.csv"
	if err := f.validate(); !errors.Is(err, ErrConfig) {
		t.Errorf("missing routing table: err = %v, want ErrConfig", err)
	}

	f = validFloodStage(t)
	f.JoinField = ""
	if err := f.validate(); !errors.Is(err, ErrConfig) {
		t.Errorf("unset join field: err = %v, want ErrConfig", err)
	}

	// a stage with no beneficiary source at all is caught before it runs
	f = validFloodStage(t)
	f.BeneFP, f.PopGdefFP, f.PopRmapFP = "", "", ""
	if err := f.validate(); !errors.Is(err, ErrNoBeneficiarySource) {
		t.Errorf("err = %v, want ErrNoBeneficiarySource", err)
	}
}
