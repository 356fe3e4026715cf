package types

type SignalType string

const (
	// SignalTypeBuy tells the position resolver to enter long
	SignalTypeBuy SignalType = "buy"
	// SignalTypeSell tells the position resolver to enter short
	SignalTypeSell SignalType = "sell"
	// SignalTypeNoAction tells the position resolver to carry the previous position
	SignalTypeNoAction SignalType = "no_action"
)

// SignalPair holds the buy and sell signal sequences a strategy derives from a price series.
// Both sequences are aligned to the series index.
type SignalPair struct {
	Buy  []bool
	Sell []bool
}

// NewSignalPair allocates a pair of all-false signal sequences of length n.
func NewSignalPair(n int) SignalPair {
	return SignalPair{
		Buy:  make([]bool, n),
		Sell: make([]bool, n),
	}
}

// Len returns the length of the buy sequence.
func (s SignalPair) Len() int {
	return len(s.Buy)
}

// At returns the signal at index i. Buy is checked first, so a bar that is
// both a buy and a sell resolves to SignalTypeBuy.
func (s SignalPair) At(i int) SignalType {
	if i < len(s.Buy) && s.Buy[i] {
		return SignalTypeBuy
	}

	if i < len(s.Sell) && s.Sell[i] {
		return SignalTypeSell
	}

	return SignalTypeNoAction
}

// Count returns the number of buy and sell signals in the pair.
func (s SignalPair) Count() (buys int, sells int) {
	for _, b := range s.Buy {
		if b {
			buys++
		}
	}

	for _, v := range s.Sell {
		if v {
			sells++
		}
	}

	return buys, sells
}
