// Package lsysmcts is the top-level inverse L-system search driver: it
// wires pkg/lsystem (grammar/derivation), pkg/mcts (search tree/UCT), and
// pkg/reward (scoring) together into the repeated root-advancement loop of
// spec.md §4.4, exposed both as a library entry point (Solve) and, via
// cmd/lsysmcts, a CLI.
package lsysmcts

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gitrdm/lsysmcts/internal/logging"
	"github.com/gitrdm/lsysmcts/pkg/lsystem"
	"github.com/gitrdm/lsysmcts/pkg/mcts"
	"github.com/gitrdm/lsysmcts/pkg/reward"
)

// Stats summarizes one Solve run (spec.md §9's supplemented num_nodes
// counter, generalized to the other bookkeeping a complete driver needs).
type Stats struct {
	RunID            string
	RootAdvancements int
	TotalIterations  int
	NodesCreated     int
}

// Solve searches for a derivation of cfg.Grammar whose rendering best
// matches target, running up to cfg.MaxDerivationSteps root advancements
// of up to cfg.MaxMCTSIterations MCTS cycles each (spec.md §4.4). It
// returns the best derivation found even when it returns a non-nil error:
// per spec.md §7, an aborted solve still yields its best-so-far result.
func Solve(ctx context.Context, target reward.Image2D, cfg Config) (lsystem.Derivation, Stats, error) {
	runID := uuid.New().String()
	stats := Stats{RunID: runID}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(logging.RunFields(runID, "lsystem")...)

	if err := cfg.Grammar.Validate(); err != nil {
		return lsystem.Derivation{}, stats, err
	}
	if cfg.Rasterizer == nil {
		return lsystem.Derivation{}, stats, ErrMissingRasterizer
	}

	evaluator, err := buildEvaluator(cfg, target)
	if err != nil {
		return lsystem.Derivation{}, stats, err
	}

	rng := rand.New(rand.NewSource(cfg.RNGSeed))
	enumerator := lsystem.NewGrammarActionEnumerator(cfg.Grammar)
	policy := mcts.Policy{
		ExplorationConstant:       cfg.ExplorationConstant,
		ExplorationVarianceWeight: cfg.ExplorationVarianceWeight,
		ProgressiveWidening:       cfg.ProgressiveWidening,
	}

	var deadline time.Time
	if cfg.TimeLimit > 0 {
		deadline = time.Now().Add(cfg.TimeLimit)
	}

	root := mcts.NewRootNode(lsystem.NewState(cfg.Grammar), enumerator)

	var solveErr error
	bestReward := -1.0

	rollout := func(state *lsystem.State, rng *rand.Rand) (float64, []int) {
		history := lsystem.RandomDerive(state, enumerator, rng, cfg.MaxRolloutDepth)
		derivation := lsystem.DerivationOf(state)
		r, evalErr := evaluator.Evaluate(derivation)
		if evalErr != nil {
			if solveErr == nil {
				solveErr = evalErr
			}
			return 0, history
		}
		if cfg.OnImprovement != nil && r > bestReward {
			bestReward = r
			if img, imgErr := cfg.Rasterizer.RenderIndicator(derivation, cfg.GridSize, cfg.RenderScale); imgErr == nil {
				cfg.OnImprovement(stats.RootAdvancements, r, img)
			}
		}
		return r, history
	}

	for step := 0; step < cfg.MaxDerivationSteps; step++ {
		if root.State.Complete() {
			break
		}
		if err := ctx.Err(); err != nil {
			solveErr = fmt.Errorf("lsysmcts: %w", err)
			break
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			solveErr = ErrBudgetExceeded
			break
		}

		next, err := runRootAdvancement(ctx, root, enumerator, policy, cfg, rollout, rng, deadline, &stats, logger)
		if err != nil {
			solveErr = err
			break
		}
		if next == nil {
			break
		}

		stats.NodesCreated += mcts.CountNodes(root) - mcts.CountNodes(next)
		root = next
		root.Parent = nil
		stats.RootAdvancements++

		if solveErr != nil {
			break
		}
	}
	stats.NodesCreated += mcts.CountNodes(root)

	derivation := lsystem.DerivationOf(root.State)
	logger.Info("solve finished",
		zap.Int("root_advancements", stats.RootAdvancements),
		zap.Int("total_iterations", stats.TotalIterations),
		zap.Int("nodes_created", stats.NodesCreated),
	)
	return derivation, stats, solveErr
}

// runRootAdvancement runs up to cfg.MaxMCTSIterations MCTS cycles from
// root, then selects the child with the largest best reward (ties to the
// first scanned) as the next root (spec.md §4.4). If root has no untried
// actions and exactly one child - nothing to choose - it returns that child
// without running any MCTS cycle. It returns nil, nil when root's state is
// complete with nothing to expand, or when the cycles it ran (possibly
// none) left root without children, ending the outer loop without error.
// If root has neither untried actions
// nor children and its state is not yet complete, the enumerator found
// nothing to do for an unresolved derivation - spec.md §7's EmptyActionSet
// case - and runRootAdvancement returns lsystem.ErrEmptyActionSet so Solve
// ends the current derivation early and reports its best-so-far result.
func runRootAdvancement(
	ctx context.Context,
	root *mcts.SearchNode,
	enumerator lsystem.ActionEnumerator,
	policy mcts.Policy,
	cfg Config,
	rollout mcts.RolloutFunc,
	rng *rand.Rand,
	deadline time.Time,
	stats *Stats,
	logger *zap.Logger,
) (*mcts.SearchNode, error) {
	if len(root.Untried) == 0 && len(root.Children) <= 1 {
		if len(root.Children) == 1 {
			if cfg.OnRootDump != nil {
				cfg.OnRootDump(stats.RootAdvancements, childDiagnostics(root))
			}
			return root.Children[0], nil
		}
		if !root.State.Complete() {
			return nil, fmt.Errorf("lsysmcts: %w", lsystem.ErrEmptyActionSet)
		}
		return nil, nil
	}

	for iter := 0; iter < cfg.MaxMCTSIterations; iter++ {
		if root.Fixed {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("lsysmcts: %w", err)
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}

		mcts.Iterate(root, enumerator, policy, rollout, rng)
		stats.TotalIterations++

		if cfg.OnIterationBestReward != nil {
			cfg.OnIterationBestReward(iter, root.BestReward())
		}
	}

	if cfg.OnRootDump != nil {
		cfg.OnRootDump(stats.RootAdvancements, childDiagnostics(root))
	}

	if len(root.Children) == 0 {
		return nil, nil
	}
	best := root.Children[0]
	for _, c := range root.Children[1:] {
		if c.BestReward() > best.BestReward() {
			best = c
		}
	}
	logger.Debug("root advanced",
		zap.Int("chosen_action_index", best.Action.Index),
		zap.Float64("best_reward", best.BestReward()),
	)
	return best, nil
}

func childDiagnostics(n *mcts.SearchNode) []ChildDiagnostic {
	out := make([]ChildDiagnostic, len(n.Children))
	for i, c := range n.Children {
		out[i] = ChildDiagnostic{ActionIndex: c.Action.Index, Visits: c.Visits(), BestReward: c.BestReward()}
	}
	return out
}

func buildEvaluator(cfg Config, target reward.Image2D) (reward.Evaluator, error) {
	switch cfg.RewardForm {
	case DistanceMapExp:
		if cfg.DistanceTransform == nil {
			return nil, ErrMissingDistanceTransform
		}
		return reward.NewDistanceMapEvaluator(cfg.Rasterizer, target, cfg.DistanceTransform, cfg.RewardAlpha, cfg.RewardBeta, cfg.GridSize, cfg.RenderScale)
	default:
		return reward.NewPixelPairEvaluator(cfg.Rasterizer, target, cfg.GridSize, cfg.RenderScale), nil
	}
}
