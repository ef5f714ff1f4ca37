package price

import (
	"fmt"

	"github.com/evdnx/gokand/indicator/core"
)

// WCLPriceLookback is always zero: the weighted close of a bar depends on that
// bar alone.
func WCLPriceLookback() int { return 0 }

// WCLPrice computes the weighted close price (2*close + high + low) / 4 of
// every bar.
func WCLPrice[T core.Float](high, low, close []T, out []T) error {
	if err := core.ValidateSeries(0, [][]T{high, low, close}, [][]T{out}); err != nil {
		return fmt.Errorf("WCLPRICE: %w", err)
	}
	for i := range high {
		out[i] = WCLPriceInc(high[i], low[i], close[i])
	}
	return nil
}

// WCLPriceInc is the weighted close of a single bar. It carries no state.
func WCLPriceInc[T core.Float](high, low, close T) T {
	return (2*close + high + low) / 4
}
