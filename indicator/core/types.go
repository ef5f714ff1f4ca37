package core

import (
	"fmt"
	"strings"
)

// -----------------------------------------------------------------------------
// MAType – moving-average kind
// -----------------------------------------------------------------------------

// MAType selects an averaging strategy. The integer values are stable and
// match the codes used by other TA libraries in the same family.
type MAType int32

const (
	MATypeDEMA  MAType = 0
	MATypeEMA   MAType = 1
	MATypeKAMA  MAType = 2
	MATypeMAMA  MAType = 3
	MATypeRMA   MAType = 4
	MATypeSMA   MAType = 5
	MATypeT3    MAType = 6
	MATypeTEMA  MAType = 7
	MATypeTRIMA MAType = 8
	MATypeWMA   MAType = 9
)

// DefaultMAType is the kind used when none is given.
const DefaultMAType = MATypeSMA

var maTypeNames = [...]string{
	MATypeDEMA:  "DEMA",
	MATypeEMA:   "EMA",
	MATypeKAMA:  "KAMA",
	MATypeMAMA:  "MAMA",
	MATypeRMA:   "RMA",
	MATypeSMA:   "SMA",
	MATypeT3:    "T3",
	MATypeTEMA:  "TEMA",
	MATypeTRIMA: "TRIMA",
	MATypeWMA:   "WMA",
}

// MATypes lists every kind in code order.
func MATypes() []MAType {
	out := make([]MAType, len(maTypeNames))
	for i := range maTypeNames {
		out[i] = MAType(i)
	}
	return out
}

// Valid reports whether t is one of the declared kinds.
func (t MAType) Valid() bool {
	return t >= 0 && int(t) < len(maTypeNames)
}

func (t MAType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("MAType(%d)", int32(t))
	}
	return maTypeNames[t]
}

// MATypeFromInt maps an integer code back to its kind.
func MATypeFromInt(code int) (MAType, error) {
	t := MAType(code)
	if code < 0 || !t.Valid() {
		return 0, fmt.Errorf("%w: unknown moving average code %d", ErrInvalidParameter, code)
	}
	return t, nil
}

// ParseMAType maps a case-insensitive name ("ema", "SMA") to its kind. An
// empty name yields DefaultMAType.
func ParseMAType(name string) (MAType, error) {
	if strings.TrimSpace(name) == "" {
		return DefaultMAType, nil
	}
	for i, n := range maTypeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return MAType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown moving average %q", ErrInvalidParameter, name)
}

// -----------------------------------------------------------------------------
// Signal – categorical indicator output
// -----------------------------------------------------------------------------

// Signal is the code pattern indicators emit instead of a price value.
type Signal int32

const (
	SignalBullish Signal = 100
	SignalBalance Signal = 50
	SignalBearish Signal = -100
	SignalNeutral Signal = 0
	SignalPattern Signal = 1
	SignalInvalid Signal = -1
)

var signalNames = map[Signal]string{
	SignalBullish: "Bullish",
	SignalBalance: "Balance",
	SignalBearish: "Bearish",
	SignalNeutral: "Neutral",
	SignalPattern: "Pattern",
	SignalInvalid: "Invalid",
}

func (s Signal) String() string {
	if n, ok := signalNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Signal(%d)", int32(s))
}

// Valid reports whether s is one of the declared codes.
func (s Signal) Valid() bool {
	_, ok := signalNames[s]
	return ok
}

// SignalFromInt maps an integer code back to its Signal.
func SignalFromInt(code int) (Signal, error) {
	s := Signal(code)
	if int(s) != code || !s.Valid() {
		return 0, fmt.Errorf("%w: unknown signal code %d", ErrInvalidParameter, code)
	}
	return s, nil
}
