package montecarlo

import "math"

// Statistic is a running mean/variance accumulator (Welford's
// algorithm), used per action for the rollout score distribution.
type Statistic struct {
	totalIterations int

	oldM float64
	newM float64
	oldS float64
	newS float64
}

func (s *Statistic) Push(val float64) {
	s.totalIterations++
	if s.totalIterations == 1 {
		s.oldM = val
		s.newM = val
		s.oldS = 0
	} else {
		s.newM = s.oldM + (val-s.oldM)/float64(s.totalIterations)
		s.newS = s.oldS + (val-s.oldM)*(val-s.newM)
		s.oldM = s.newM
		s.oldS = s.newS
	}
}

// Merge folds another statistic into this one. Used to combine
// per-worker accumulators after a parallel search.
func (s *Statistic) Merge(o *Statistic) {
	if o.totalIterations == 0 {
		return
	}
	if s.totalIterations == 0 {
		*s = *o
		return
	}
	n1 := float64(s.totalIterations)
	n2 := float64(o.totalIterations)
	delta := o.newM - s.newM
	n := n1 + n2
	s.newM = s.newM + delta*n2/n
	s.newS = s.newS + o.newS + delta*delta*n1*n2/n
	s.oldM = s.newM
	s.oldS = s.newS
	s.totalIterations = int(n)
}

func (s *Statistic) Iterations() int {
	return s.totalIterations
}

func (s *Statistic) Mean() float64 {
	if s.totalIterations > 0 {
		return s.newM
	}
	return 0.0
}

func (s *Statistic) Variance() float64 {
	if s.totalIterations <= 1 {
		return 0.0
	}
	return s.newS / float64(s.totalIterations-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}
