// Package mcts implements the search tree and UCT selection engine driving
// inverse L-system search: a tree of SearchNodes, one per partially-derived
// lsystem.State, grown by repeated select/expand/simulate/backpropagate
// iterations and periodically re-rooted as the driver commits to a best
// child (spec.md §4.3-§4.4). Node ownership follows the teacher's
// SolverState parent-chain shape (pkg/minikanren/solver.go): children are
// owned by their parent, the parent link is a non-owning raw back-pointer,
// and discarding a subtree is just dropping a slice element - no reference
// cycle ever needs explicit breaking.
package mcts

import "github.com/gitrdm/lsysmcts/pkg/lsystem"

// SearchNode is one node of the search tree: a derivation State, the
// actions available from it that have not yet been expanded into children,
// the children already expanded, and this node's accumulated reward
// statistics.
type SearchNode struct {
	// State is this node's derivation snapshot. Owned by the node: no other
	// node shares it.
	State *lsystem.State

	// Parent is a non-owning back-pointer to the node this one was expanded
	// from, nil at the tree root.
	Parent *SearchNode

	// Action is the action that was applied to Parent.State to produce
	// State, meaningless at the root.
	Action lsystem.Action

	// Children holds every node expanded from this one so far, owned.
	Children []*SearchNode

	// Untried holds the actions enumerated for State that have not yet been
	// expanded into a child, in enumeration order. Expansion removes one
	// element at a time.
	Untried []lsystem.Action

	// Fixed marks a node whose subtree is fully explored (Untried is empty
	// and every child is itself Fixed, or State is already complete) and so
	// can never improve: selection skips Fixed children entirely, and once
	// every child of a node is Fixed, that node becomes Fixed too
	// (spec.md §4.3's fixed-flag propagation).
	Fixed bool

	stats rewardStats
}

// NewRootNode builds the root of a fresh search tree for state, enumerating
// its initial action set.
func NewRootNode(state *lsystem.State, enumerator lsystem.ActionEnumerator) *SearchNode {
	n := &SearchNode{
		State:   state,
		Untried: enumerator.Enumerate(state),
		stats:   newRewardStats(),
	}
	n.refreshFixed()
	return n
}

// Visits returns the number of reward samples backpropagated through this
// node.
func (n *SearchNode) Visits() int { return n.stats.visits }

// BestReward returns the best reward observed anywhere in this node's
// subtree.
func (n *SearchNode) BestReward() float64 { return n.stats.best }

// MeanReward returns the running mean of rewards observed in this node's
// subtree.
func (n *SearchNode) MeanReward() float64 { return n.stats.mean }

// VarianceReward returns the running sample variance of rewards observed in
// this node's subtree, 0 until at least two samples have been seen.
func (n *SearchNode) VarianceReward() float64 { return n.stats.variance() }

// fullyExpanded reports whether every action enumerated for this node's
// state has already been turned into a child.
func (n *SearchNode) fullyExpanded() bool { return len(n.Untried) == 0 }

// refreshFixed recomputes Fixed from this node's current children and
// completion status, without recursing into the parent: callers that change
// a node's Fixed status are responsible for calling propagateFixed on its
// parent afterward.
func (n *SearchNode) refreshFixed() {
	if n.State.Complete() {
		n.Fixed = true
		return
	}
	if !n.fullyExpanded() {
		n.Fixed = false
		return
	}
	for _, c := range n.Children {
		if !c.Fixed {
			n.Fixed = false
			return
		}
	}
	n.Fixed = true
}

// propagateFixed walks up from n re-deriving Fixed at each ancestor,
// stopping as soon as an ancestor's Fixed status does not change (a parent
// with another non-Fixed child is unaffected, and neither are its
// ancestors).
func propagateFixed(n *SearchNode) {
	for p := n; p != nil; p = p.Parent {
		before := p.Fixed
		p.refreshFixed()
		if p.Fixed == before && p != n {
			return
		}
	}
}
