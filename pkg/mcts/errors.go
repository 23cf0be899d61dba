package mcts

import "errors"

// ErrNoSelectableChild is returned by SelectChild when every child of a node
// is Fixed (fully explored) and so none can be selected; Iterate treats this
// as the end of its descent and simulates from that node rather than as a
// fault.
var ErrNoSelectableChild = errors.New("mcts: no selectable child")
