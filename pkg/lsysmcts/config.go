package lsysmcts

import (
	"time"

	"go.uber.org/zap"

	"github.com/gitrdm/lsysmcts/pkg/lsystem"
	"github.com/gitrdm/lsysmcts/pkg/reward"
)

// RewardForm selects which reward.Evaluator implementation Solve builds
// (spec.md §4.5, §9): the two forms are never mixed within one solve.
type RewardForm int

const (
	// PixelPair selects reward.PixelPairEvaluator.
	PixelPair RewardForm = iota
	// DistanceMapExp selects reward.DistanceMapEvaluator.
	DistanceMapExp
)

// ChildDiagnostic is one entry of a per-root diagnostic dump: the action
// index of a child, its visit count, and its best reward (spec.md §6).
type ChildDiagnostic struct {
	ActionIndex int
	Visits      int
	BestReward  float64
}

// Option configures a Config, following the same functional-option pattern
// pkg/minikanren/optimize.go uses for SolveOptimalWithOptions: construct a
// Config with NewConfig(defaults...) then pass Option values to override
// just the fields a given solve call cares about.
type Option func(*Config)

// Config is the single configuration record Solve consumes (spec.md §6).
// Build one with NewConfig and Option values; the zero Config is not valid
// on its own since Grammar and Rasterizer have no sensible zero value.
type Config struct {
	Grammar *lsystem.GrammarSpec

	MaxDerivationSteps int
	MaxMCTSIterations  int
	MaxRolloutDepth    int

	ExplorationConstant       float64
	ExplorationVarianceWeight float64
	ProgressiveWidening       bool

	RewardForm  RewardForm
	RewardAlpha float64
	RewardBeta  float64

	GridSize    int
	RenderScale float64

	RNGSeed int64

	Rasterizer        reward.Rasterizer
	DistanceTransform reward.DistanceTransform

	TimeLimit time.Duration

	Logger *zap.Logger

	// OnIterationBestReward, when set, is called after every MCTS iteration
	// with the 0-based iteration index and the current root's best reward
	// (spec.md §6 inspection hook).
	OnIterationBestReward func(iteration int, bestReward float64)

	// OnRootDump, when set, is called once per root advancement with a
	// per-child (action_index, visits, best_reward) snapshot just before
	// the next root is chosen (spec.md §6 inspection hook).
	OnRootDump func(advancement int, children []ChildDiagnostic)

	// OnImprovement, when set, is called whenever a rollout achieves a new
	// best reward anywhere in the search so far, with the derivation step
	// and rendered indicator image that produced it - the hook the
	// original source used to dump its best-so-far image to disk, kept
	// here as a callback so file I/O stays an external-collaborator
	// concern.
	OnImprovement func(step int, bestReward float64, img reward.Image2D)
}

// NewConfig returns a Config for grammar with the spec's suggested
// defaults, then applies opts in order.
func NewConfig(grammar *lsystem.GrammarSpec, opts ...Option) Config {
	cfg := Config{
		Grammar:                   grammar,
		MaxDerivationSteps:        100,
		MaxMCTSIterations:         300,
		MaxRolloutDepth:           20,
		ExplorationConstant:       1.4,
		ExplorationVarianceWeight: 0.0,
		RewardForm:                PixelPair,
		RewardAlpha:               reward.DefaultAlpha,
		RewardBeta:                reward.DefaultBeta,
		GridSize:                  64,
		RenderScale:               1.0,
		RNGSeed:                   1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func WithMaxDerivationSteps(n int) Option {
	return func(c *Config) { c.MaxDerivationSteps = n }
}

func WithMaxMCTSIterations(n int) Option {
	return func(c *Config) { c.MaxMCTSIterations = n }
}

func WithMaxRolloutDepth(n int) Option {
	return func(c *Config) { c.MaxRolloutDepth = n }
}

func WithExplorationConstant(c float64) Option {
	return func(cfg *Config) { cfg.ExplorationConstant = c }
}

func WithExplorationVarianceWeight(d float64) Option {
	return func(cfg *Config) { cfg.ExplorationVarianceWeight = d }
}

func WithProgressiveWidening(enabled bool) Option {
	return func(c *Config) { c.ProgressiveWidening = enabled }
}

func WithRewardForm(form RewardForm) Option {
	return func(c *Config) { c.RewardForm = form }
}

func WithRewardAlphaBeta(alpha, beta float64) Option {
	return func(c *Config) { c.RewardAlpha, c.RewardBeta = alpha, beta }
}

func WithGridSize(gridSize int) Option {
	return func(c *Config) { c.GridSize = gridSize }
}

func WithRenderScale(scale float64) Option {
	return func(c *Config) { c.RenderScale = scale }
}

func WithRNGSeed(seed int64) Option {
	return func(c *Config) { c.RNGSeed = seed }
}

func WithRasterizer(r reward.Rasterizer) Option {
	return func(c *Config) { c.Rasterizer = r }
}

func WithDistanceTransform(dt reward.DistanceTransform) Option {
	return func(c *Config) { c.DistanceTransform = dt }
}

func WithTimeLimit(d time.Duration) Option {
	return func(c *Config) { c.TimeLimit = d }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

func WithOnIterationBestReward(fn func(iteration int, bestReward float64)) Option {
	return func(c *Config) { c.OnIterationBestReward = fn }
}

func WithOnRootDump(fn func(advancement int, children []ChildDiagnostic)) Option {
	return func(c *Config) { c.OnRootDump = fn }
}

func WithOnImprovement(fn func(step int, bestReward float64, img reward.Image2D)) Option {
	return func(c *Config) { c.OnImprovement = fn }
}
