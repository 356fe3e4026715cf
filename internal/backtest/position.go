package backtest

import (
	"math"

	"github.com/rxtech-lab/argo-research/internal/types"
)

// ResolvePositions maps signals to a held position per bar.
//
// A buy enters long, a sell enters short and a bar without either carries the
// previous position forward. Bars before the first signal stay NaN. When both
// signals fire on the same bar, buy wins.
func ResolvePositions(signals types.SignalPair) types.PositionSeries {
	positions := make(types.PositionSeries, signals.Len())
	current := math.NaN()

	for i := range positions {
		switch signals.At(i) {
		case types.SignalTypeBuy:
			current = types.PositionLong
		case types.SignalTypeSell:
			current = types.PositionShort
		case types.SignalTypeNoAction:
			// carry forward
		}

		positions[i] = current
	}

	return positions
}
