package stats

import (
	"testing"

	"github.com/matryer/is"
)

func TestRunning(t *testing.T) {
	is := is.New(t)
	type tc struct {
		results []float64
		mean    float64
		stdev   float64
	}
	cases := []tc{
		// a win is 1, a draw 0.5 and a loss 0.
		{[]float64{1, 1, 0, 0.5, 1, 0, 1, 1}, 0.6875, 0.45806269},
		{[]float64{0.5, 0.5, 0.5}, 0.5, 0},
		{[]float64{1}, 1, 0},
		{[]float64{}, 0, 0},
	}
	for _, c := range cases {
		s := &Running{}
		for _, r := range c.results {
			s.Push(r)
		}
		is.Equal(s.N(), len(c.results))
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
	}
}

func TestZVal(t *testing.T) {
	is := is.New(t)
	is.True(FuzzyEqual(ZVal(95), 1.959963985))
	is.True(FuzzyEqual(ZVal(99), 2.575829304))
}

func TestConfidenceInterval(t *testing.T) {
	is := is.New(t)
	s := &Running{}
	for _, r := range []float64{1, 0, 1, 0} {
		s.Push(r)
	}
	// stdev 0.57735, standard error 0.288675
	is.True(FuzzyEqual(s.ConfidenceInterval(95), 1.959963985*0.288675135))
	is.True(FuzzyEqual((&Running{}).ConfidenceInterval(95), 0))
}
