package mcts

import "github.com/gitrdm/lsysmcts/pkg/lsystem"

// RematerializeBestRollout promotes a rollout's action history into
// persistent tree nodes descending from node, but only when reward improves
// on the best reward node has seen so far: a rollout's trajectory is pure
// playout state the tree would otherwise discard, so without this step the
// single best derivation the search has found could vanish the moment its
// playout ends, forcing later iterations to rediscover it from scratch
// (spec.md §4.3). Non-improving rollouts are left undiscovered, matching the
// original source's behavior of only ever saving the incumbent-best path.
//
// It must run before Backpropagate folds reward into node's own stats,
// since the comparison is against the best reward observed prior to this
// rollout.
func RematerializeBestRollout(node *SearchNode, enumerator lsystem.ActionEnumerator, history []int, reward float64) {
	if reward <= node.BestReward() {
		return
	}

	cur := node
	state := node.State.Clone()
	for _, idx := range history {
		actions := enumerator.Enumerate(state)
		action, ok := findAction(actions, idx)
		if !ok {
			return
		}
		lsystem.ApplyAction(state, action)

		if child, ok := findChildByAction(cur, idx); ok {
			child.stats.observe(reward)
			cur = child
			continue
		}
		cur = attachChild(cur, enumerator, action, state.Clone(), reward)
	}
}

// findAction returns the action in actions whose Index equals idx.
func findAction(actions []lsystem.Action, idx int) (lsystem.Action, bool) {
	for _, a := range actions {
		if a.Index == idx {
			return a, true
		}
	}
	return lsystem.Action{}, false
}

// findChildByAction returns an already-expanded child of n reached by the
// action with the given index, if one exists.
func findChildByAction(n *SearchNode, actionIndex int) (*SearchNode, bool) {
	for _, c := range n.Children {
		if c.Action.Index == actionIndex {
			return c, true
		}
	}
	return nil, false
}

// attachChild appends a new persistent child of parent reached by action,
// whose resulting state is childState, removing action from parent's
// Untried set if it was still there. The promoted child is seeded with the
// rollout's reward immediately, so BestReward() reflects the rollout without
// waiting for the tree policy to visit it again.
func attachChild(parent *SearchNode, enumerator lsystem.ActionEnumerator, action lsystem.Action, childState *lsystem.State, reward float64) *SearchNode {
	for i, a := range parent.Untried {
		if a.Index == action.Index {
			parent.Untried[i] = parent.Untried[len(parent.Untried)-1]
			parent.Untried = parent.Untried[:len(parent.Untried)-1]
			break
		}
	}

	stats := newRewardStats()
	stats.observe(reward)
	child := &SearchNode{
		State:   childState,
		Parent:  parent,
		Action:  action,
		Untried: enumerator.Enumerate(childState),
		stats:   stats,
	}
	child.refreshFixed()
	parent.Children = append(parent.Children, child)
	parent.refreshFixed()
	return child
}
