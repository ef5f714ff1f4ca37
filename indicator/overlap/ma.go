package overlap

import (
	"fmt"

	"github.com/evdnx/gokand/indicator/core"
)

// MALookback returns the warm-up length of the moving average selected by
// maType.
func MALookback(period int, maType core.MAType) (int, error) {
	switch maType {
	case core.MATypeSMA:
		return SMALookback(period)
	case core.MATypeEMA:
		return EMALookback(period)
	case core.MATypeRMA:
		return RMALookback(period)
	case core.MATypeWMA:
		return WMALookback(period)
	case core.MATypeDEMA:
		return DEMALookback(period)
	case core.MATypeTEMA:
		return TEMALookback(period)
	case core.MATypeKAMA, core.MATypeMAMA, core.MATypeT3, core.MATypeTRIMA:
		return 0, fmt.Errorf("%w: moving average %s is not supported", core.ErrInvalidParameter, maType)
	default:
		return 0, fmt.Errorf("%w: unknown moving average %s", core.ErrInvalidParameter, maType)
	}
}

// MA dispatches to the moving average selected by maType. DEMA and TEMA need
// scratch series for their inner EMAs; those are allocated here and dropped.
func MA[T core.Float](input []T, period int, maType core.MAType, out []T) error {
	lookback, err := MALookback(period, maType)
	if err != nil {
		return err
	}
	if err := core.ValidateSeries(lookback, [][]T{input}, [][]T{out}, period); err != nil {
		return fmt.Errorf("MA(%s): %w", maType, err)
	}

	switch maType {
	case core.MATypeSMA:
		return SMA(input, period, out)
	case core.MATypeEMA:
		return EMA(input, period, out)
	case core.MATypeRMA:
		return RMA(input, period, out)
	case core.MATypeWMA:
		return WMA(input, period, out)
	case core.MATypeDEMA:
		n := len(input)
		return DEMA(input, period, out, make([]T, n), make([]T, n))
	default: // TEMA; everything else was rejected by MALookback
		n := len(input)
		return TEMA(input, period, out, make([]T, n), make([]T, n), make([]T, n))
	}
}
