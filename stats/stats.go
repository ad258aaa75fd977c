// Package stats keeps running statistics over game results.
package stats

import "math"

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Running is a streaming mean and variance (Welford's algorithm).
type Running struct {
	n    int
	mean float64
	m2   float64
}

func (s *Running) Push(val float64) {
	s.n++
	delta := val - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (val - s.mean)
}

func (s *Running) N() int {
	return s.n
}

func (s *Running) Mean() float64 {
	return s.mean
}

// Variance is the sample variance; zero until there are two values.
func (s *Running) Variance() float64 {
	if s.n <= 1 {
		return 0.0
	}
	return s.m2 / float64(s.n-1)
}

func (s *Running) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

func (s *Running) StandardError() float64 {
	if s.n == 0 {
		return 0.0
	}
	return math.Sqrt(s.Variance() / float64(s.n))
}

// ConfidenceInterval returns the half-width of the two-tailed interval
// around the mean, for a confidence level given in percent.
func (s *Running) ConfidenceInterval(pct float64) float64 {
	return ZVal(pct) * s.StandardError()
}
