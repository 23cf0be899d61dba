package config

import (
	"fmt"

	"github.com/gitrdm/lsysmcts/pkg/lsysmcts"
)

// ParseRewardForm maps a config file's reward_form string to the
// lsysmcts.RewardForm enum Solve actually consumes.
func ParseRewardForm(s string) (lsysmcts.RewardForm, error) {
	switch s {
	case "", "pixel_pair":
		return lsysmcts.PixelPair, nil
	case "distance_map_exp":
		return lsysmcts.DistanceMapExp, nil
	default:
		return 0, fmt.Errorf("config: unknown reward_form %q (want \"pixel_pair\" or \"distance_map_exp\")", s)
	}
}

// Options converts cfg into the lsysmcts.Option values NewConfig expects,
// leaving collaborator wiring (Rasterizer, DistanceTransform, Logger, hooks)
// to the caller - those have no file representation.
func (cfg FileConfig) Options() ([]lsysmcts.Option, error) {
	form, err := ParseRewardForm(cfg.RewardForm)
	if err != nil {
		return nil, err
	}

	opts := []lsysmcts.Option{
		lsysmcts.WithMaxDerivationSteps(cfg.MaxDerivationSteps),
		lsysmcts.WithMaxMCTSIterations(cfg.MaxMCTSIterations),
		lsysmcts.WithMaxRolloutDepth(cfg.MaxRolloutDepth),
		lsysmcts.WithExplorationConstant(cfg.ExplorationConstant),
		lsysmcts.WithExplorationVarianceWeight(cfg.ExplorationVarianceWeight),
		lsysmcts.WithProgressiveWidening(cfg.ProgressiveWidening),
		lsysmcts.WithRewardForm(form),
		lsysmcts.WithRewardAlphaBeta(cfg.RewardAlpha, cfg.RewardBeta),
		lsysmcts.WithGridSize(cfg.GridSize),
		lsysmcts.WithRenderScale(cfg.RenderScale),
		lsysmcts.WithRNGSeed(cfg.RNGSeed),
	}
	if cfg.TimeLimit > 0 {
		opts = append(opts, lsysmcts.WithTimeLimit(cfg.TimeLimit))
	}
	return opts, nil
}
