package types

import "math"

const (
	// PositionLong is a held long exposure.
	PositionLong = 1.0
	// PositionShort is a held short exposure.
	PositionShort = -1.0
)

// PositionSeries holds one position per bar: PositionLong, PositionShort or NaN
// while no signal has fired yet.
type PositionSeries []float64

// IsDefined reports whether a position is held at index i.
func (p PositionSeries) IsDefined(i int) bool {
	return i >= 0 && i < len(p) && !math.IsNaN(p[i])
}

// FirstDefined returns the index of the first held position, or -1 when none is ever held.
func (p PositionSeries) FirstDefined() int {
	for i := range p {
		if p.IsDefined(i) {
			return i
		}
	}

	return -1
}

// Changes counts how often the held position flips between long and short.
// Entering the first position is not a change.
func (p PositionSeries) Changes() int {
	changes := 0
	prev := math.NaN()

	for _, v := range p {
		if math.IsNaN(v) {
			continue
		}

		if !math.IsNaN(prev) && v != prev {
			changes++
		}

		prev = v
	}

	return changes
}

// Exposure counts the bars spent long, short and without a position.
func (p PositionSeries) Exposure() (long int, short int, undefined int) {
	for _, v := range p {
		switch {
		case math.IsNaN(v):
			undefined++
		case v > 0:
			long++
		default:
			short++
		}
	}

	return long, short, undefined
}

// ReturnSeries holds the per-period and cumulative returns of one strategy run.
// Period returns are NaN where no position was held or no prior close exists.
type ReturnSeries struct {
	Period     []float64
	Cumulative []float64
}

// Final returns the last cumulative return, or 0 for an empty series.
func (r ReturnSeries) Final() float64 {
	if len(r.Cumulative) == 0 {
		return 0
	}

	return r.Cumulative[len(r.Cumulative)-1]
}
