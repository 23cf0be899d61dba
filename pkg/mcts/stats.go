package mcts

import "math"

// rewardStats accumulates the visit count, best reward seen, and running
// mean/variance of a node's reward samples using Welford's online algorithm.
// The original source accumulated sum and sum-of-squares directly and
// derived variance as E[X^2] - E[X]^2, which loses precision catastrophically
// once many similar rewards accumulate (the classic cancellation bug); this
// type replaces that with Welford's numerically stable update so
// variance_reward never goes negative from floating-point error.
type rewardStats struct {
	visits int
	best   float64
	mean   float64
	m2     float64
}

// newRewardStats returns a stats accumulator ready for its first sample.
// best starts at negative infinity so the very first sample always wins.
func newRewardStats() rewardStats {
	return rewardStats{best: math.Inf(-1)}
}

// observe folds one more reward sample into the accumulator.
func (s *rewardStats) observe(reward float64) {
	s.visits++
	if reward > s.best {
		s.best = reward
	}
	delta := reward - s.mean
	s.mean += delta / float64(s.visits)
	delta2 := reward - s.mean
	s.m2 += delta * delta2
}

// variance returns the sample variance of the observed rewards, 0 if fewer
// than two samples have been observed.
func (s *rewardStats) variance() float64 {
	if s.visits < 2 {
		return 0
	}
	return s.m2 / float64(s.visits-1)
}
