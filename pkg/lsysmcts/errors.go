package lsysmcts

import "errors"

// ErrBudgetExceeded is returned alongside the best derivation found so far
// when a configured wall-clock time limit elapses before the search would
// otherwise have finished (spec.md §7). It is optional: Solve only ever
// returns it when Config.TimeLimit is set.
var ErrBudgetExceeded = errors.New("lsysmcts: wall-clock budget exceeded")

// ErrMissingRasterizer is returned by Solve when Config carries no
// Rasterizer; unlike the grammar and reward-form validation below this
// cannot be checked by GrammarSpec.Validate, since the rasterizer is an
// external collaborator rather than part of the grammar.
var ErrMissingRasterizer = errors.New("lsysmcts: config has no Rasterizer")

// ErrMissingDistanceTransform is returned by Solve when RewardForm is
// DistanceMapExp but Config carries no DistanceTransform.
var ErrMissingDistanceTransform = errors.New("lsysmcts: distance_map_exp reward form requires a DistanceTransform")
