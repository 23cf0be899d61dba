// Package config loads the CLI's FileConfig from a YAML file and/or
// environment variables via spf13/viper, the same loader
// _examples/lookatitude-beluga-ai's pkg/config.ViperProvider wraps for its
// own configuration surface. FileConfig mirrors pkg/lsysmcts.Config field
// for field so a library caller building a Config with options and a CLI
// user editing lsysmcts.yaml are configuring the same thing.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/gitrdm/lsysmcts/pkg/lsysmcts"
)

// FileConfig is the mapstructure-tagged, YAML/env-friendly mirror of
// lsysmcts.Config's value fields. Collaborator fields (Rasterizer, Logger,
// the On* hooks) have no file representation and are wired up by the CLI
// after loading.
type FileConfig struct {
	Grammar string `mapstructure:"grammar"`

	MaxDerivationSteps int `mapstructure:"max_derivation_steps"`
	MaxMCTSIterations  int `mapstructure:"max_mcts_iterations"`
	MaxRolloutDepth    int `mapstructure:"max_rollout_depth"`

	ExplorationConstant       float64 `mapstructure:"exploration_constant"`
	ExplorationVarianceWeight float64 `mapstructure:"exploration_variance_weight"`
	ProgressiveWidening       bool    `mapstructure:"progressive_widening"`

	RewardForm  string  `mapstructure:"reward_form"`
	RewardAlpha float64 `mapstructure:"reward_alpha"`
	RewardBeta  float64 `mapstructure:"reward_beta"`

	GridSize    int     `mapstructure:"grid_size"`
	RenderScale float64 `mapstructure:"render_scale"`

	RNGSeed int64 `mapstructure:"rng_seed"`

	TimeLimit time.Duration `mapstructure:"time_limit"`
}

// Defaults returns the FileConfig equivalent of lsysmcts.NewConfig's
// built-in defaults, so a CLI run with no config file at all still behaves
// like a library caller who passed no options.
func Defaults() FileConfig {
	base := lsysmcts.NewConfig(nil)
	return FileConfig{
		Grammar:                   "default",
		MaxDerivationSteps:        base.MaxDerivationSteps,
		MaxMCTSIterations:         base.MaxMCTSIterations,
		MaxRolloutDepth:           base.MaxRolloutDepth,
		ExplorationConstant:       base.ExplorationConstant,
		ExplorationVarianceWeight: base.ExplorationVarianceWeight,
		ProgressiveWidening:       base.ProgressiveWidening,
		RewardForm:                "pixel_pair",
		RewardAlpha:               base.RewardAlpha,
		RewardBeta:                base.RewardBeta,
		GridSize:                  base.GridSize,
		RenderScale:               base.RenderScale,
		RNGSeed:                   base.RNGSeed,
	}
}

// Load reads FileConfig from path (if non-empty) layered under an
// LSYSMCTS_-prefixed environment variable override, following
// ViperProvider's AutomaticEnv/SetEnvKeyReplacer pattern so e.g.
// LSYSMCTS_RNG_SEED=7 overrides rng_seed without a config file at all.
func Load(path string) (FileConfig, error) {
	cfg := Defaults()

	v := viper.New()
	v.SetEnvPrefix("LSYSMCTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for key, val := range defaultsAsMap(cfg) {
		v.SetDefault(key, val)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return FileConfig{}, fmt.Errorf("config: reading %q: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return FileConfig{}, fmt.Errorf("config: unmarshaling: %w", err)
	}
	return cfg, nil
}

func defaultsAsMap(cfg FileConfig) map[string]interface{} {
	return map[string]interface{}{
		"grammar":                     cfg.Grammar,
		"max_derivation_steps":        cfg.MaxDerivationSteps,
		"max_mcts_iterations":         cfg.MaxMCTSIterations,
		"max_rollout_depth":           cfg.MaxRolloutDepth,
		"exploration_constant":        cfg.ExplorationConstant,
		"exploration_variance_weight": cfg.ExplorationVarianceWeight,
		"progressive_widening":        cfg.ProgressiveWidening,
		"reward_form":                 cfg.RewardForm,
		"reward_alpha":                cfg.RewardAlpha,
		"reward_beta":                 cfg.RewardBeta,
		"grid_size":                   cfg.GridSize,
		"render_scale":                cfg.RenderScale,
		"rng_seed":                    cfg.RNGSeed,
	}
}
