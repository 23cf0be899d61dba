package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gitrdm/lsysmcts/pkg/lsysmcts"
)

func TestLoadWithNoPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Defaults()
	if cfg != want {
		t.Fatalf("Load(\"\") = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadFromYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lsysmcts.yaml")
	yaml := []byte("rng_seed: 99\nmax_derivation_steps: 7\nreward_form: distance_map_exp\n")
	if err := os.WriteFile(path, yaml, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.RNGSeed != 99 {
		t.Fatalf("RNGSeed = %d, want 99", cfg.RNGSeed)
	}
	if cfg.MaxDerivationSteps != 7 {
		t.Fatalf("MaxDerivationSteps = %d, want 7", cfg.MaxDerivationSteps)
	}
	if cfg.RewardForm != "distance_map_exp" {
		t.Fatalf("RewardForm = %q, want distance_map_exp", cfg.RewardForm)
	}
	// Fields the override left untouched should still carry their defaults.
	if cfg.GridSize != Defaults().GridSize {
		t.Fatalf("GridSize = %d, want default %d", cfg.GridSize, Defaults().GridSize)
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestParseRewardFormRejectsUnknown(t *testing.T) {
	if _, err := ParseRewardForm("not-a-form"); err == nil {
		t.Fatal("expected an error for an unknown reward form")
	}
}

func TestFileConfigOptionsBuildsAConsistentConfig(t *testing.T) {
	cfg := Defaults()
	cfg.RewardForm = "distance_map_exp"
	opts, err := cfg.Options()
	if err != nil {
		t.Fatalf("Options returned error: %v", err)
	}

	built := lsysmcts.NewConfig(nil, opts...)
	if built.RewardForm != lsysmcts.DistanceMapExp {
		t.Fatalf("RewardForm = %v, want DistanceMapExp", built.RewardForm)
	}
	if built.RNGSeed != cfg.RNGSeed {
		t.Fatalf("RNGSeed = %d, want %d", built.RNGSeed, cfg.RNGSeed)
	}
}
