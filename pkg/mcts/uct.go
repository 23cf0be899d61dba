package mcts

import (
	"math"
	"math/rand"

	"github.com/gitrdm/lsysmcts/pkg/lsystem"
)

// Policy bundles the tunables that shape selection and expansion (spec.md
// §4.3, §6). The zero value is not meaningful; use NewPolicy.
type Policy struct {
	// ExplorationConstant weights the visit-count exploration term of the
	// UCT score (the classic "C" in UCB1).
	ExplorationConstant float64

	// ExplorationVarianceWeight weights a child's own reward variance into
	// its UCT score, favoring children whose outcomes are still uncertain
	// over children that have converged to a narrow reward range, even at
	// equal visit counts.
	ExplorationVarianceWeight float64

	// ProgressiveWidening, when true, caps how many children a node may
	// expand as a function of its visit count rather than expanding every
	// enumerated action immediately - useful when an action set is large
	// and most of the benefit comes from a handful of promising children.
	ProgressiveWidening bool
}

// NewPolicy returns a Policy with the given exploration weights and
// progressive widening disabled.
func NewPolicy(explorationConstant, explorationVarianceWeight float64) Policy {
	return Policy{
		ExplorationConstant:       explorationConstant,
		ExplorationVarianceWeight: explorationVarianceWeight,
	}
}

// widthLimit returns the maximum number of expanded children a node may
// have after the node itself has been visited visits times, under progressive
// widening: ⌊√(2·ln(visits+1))⌋+1, a slowly-growing cap that still allows
// the very first expansion at visits == 0.
func widthLimit(visits int) int {
	return int(math.Sqrt(2*math.Log(float64(visits+1)))) + 1
}

// selectableChildren returns n's non-Fixed children, the only ones eligible
// for selection.
func selectableChildren(n *SearchNode) []*SearchNode {
	out := make([]*SearchNode, 0, len(n.Children))
	for _, c := range n.Children {
		if !c.Fixed {
			out = append(out, c)
		}
	}
	return out
}

// uctScore computes child's UCT score under parent's visit count and
// policy: best_reward(child) + C·√(2·ln(visits(parent))/visits(child)) +
// D·√(variance_reward(child)). A child with zero visits has never been
// sampled and so is given a pseudo-infinite score - 10000 plus a small
// random jitter - so every child is tried at least once before any
// visited child is revisited, with the jitter only breaking ties among
// multiple unvisited children (spec.md §4.3).
func uctScore(parent *SearchNode, child *SearchNode, policy Policy, rng *rand.Rand) float64 {
	if child.Visits() == 0 {
		return 10000 + rng.Float64()*1000
	}
	exploration := policy.ExplorationConstant *
		math.Sqrt(2*math.Log(float64(parent.Visits()))/float64(child.Visits()))
	varianceBonus := policy.ExplorationVarianceWeight * math.Sqrt(child.VarianceReward())
	return child.BestReward() + exploration + varianceBonus
}

// SelectChild picks the child of n with the highest UCT score among its
// non-Fixed children, breaking ties in favor of whichever child was
// scanned first. It returns ErrNoSelectableChild if n has no non-Fixed
// children at all.
func SelectChild(n *SearchNode, policy Policy, rng *rand.Rand) (*SearchNode, error) {
	candidates := selectableChildren(n)
	if len(candidates) == 0 {
		return nil, ErrNoSelectableChild
	}
	best := candidates[0]
	bestScore := uctScore(n, best, policy, rng)
	for _, c := range candidates[1:] {
		score := uctScore(n, c, policy, rng)
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, nil
}

// canExpand reports whether n still has an action available to expand into
// a new child, honoring progressive widening when policy enables it.
func canExpand(n *SearchNode, policy Policy) bool {
	if len(n.Untried) == 0 {
		return false
	}
	if !policy.ProgressiveWidening {
		return true
	}
	return len(n.Children) < widthLimit(n.Visits())
}

// Expand pops one untried action from n uniformly at random, clones n's
// state, applies the action to the clone, and appends a new child node for
// it, returning the new child. Callers must ensure canExpand(n, policy) was
// true; Expand panics if Untried is empty.
func Expand(n *SearchNode, enumerator lsystem.ActionEnumerator, rng *rand.Rand) *SearchNode {
	i := rng.Intn(len(n.Untried))
	action := n.Untried[i]
	n.Untried[i] = n.Untried[len(n.Untried)-1]
	n.Untried = n.Untried[:len(n.Untried)-1]

	childState := n.State.Clone()
	lsystem.ApplyAction(childState, action)

	child := &SearchNode{
		State:  childState,
		Parent: n,
		Action: action,
		stats:  newRewardStats(),
	}
	child.Untried = enumerator.Enumerate(childState)
	child.refreshFixed()

	n.Children = append(n.Children, child)
	n.refreshFixed()
	return child
}

// Backpropagate folds reward into n and every one of its ancestors up to
// and including the root, then refreshes the Fixed flag along the same
// path - a node only becomes Fixed once backpropagation has had a chance to
// observe that all of its children are.
func Backpropagate(n *SearchNode, reward float64) {
	for p := n; p != nil; p = p.Parent {
		p.stats.observe(reward)
	}
	propagateFixed(n)
}

// RolloutFunc runs a random rollout to completion (or to a depth/step
// limit) from state, mutating it in place, and returns the reward assigned
// to the resulting derivation together with the sequence of action indices
// applied - the information RematerializeBestRollout needs to promote a
// winning trajectory into persistent tree nodes.
type RolloutFunc func(state *lsystem.State, rng *rand.Rand) (reward float64, history []int)

// Iterate runs one full select/expand/simulate/backpropagate cycle starting
// at root (spec.md §4.3): it descends via SelectChild while nodes are fully
// expanded and non-Fixed, expands one new child as soon as it finds a node
// with an untried action (or reaches a Fixed leaf), rolls out from the new
// child's (or leaf's) state via rollout, re-materializes the rollout's
// history via RematerializeBestRollout when it improved on the node's prior
// best, and backpropagates the resulting reward. It returns the node the
// rollout was simulated from and the reward obtained.
func Iterate(root *SearchNode, enumerator lsystem.ActionEnumerator, policy Policy, rollout RolloutFunc, rng *rand.Rand) (*SearchNode, float64) {
	node := root
	for !node.Fixed && node.fullyExpanded() && len(node.Children) > 0 {
		next, err := SelectChild(node, policy, rng)
		if err != nil {
			break
		}
		node = next
	}

	if !node.Fixed && canExpand(node, policy) {
		node = Expand(node, enumerator, rng)
	}

	simState := node.State.Clone()
	reward, history := rollout(simState, rng)
	RematerializeBestRollout(node, enumerator, history, reward)

	Backpropagate(node, reward)
	return node, reward
}
