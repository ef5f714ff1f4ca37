package core

import "fmt"

// -----------------------------------------------------------------------------
// Validation guards
//
// These are pure predicates over sizes and parameters. Engines call them
// before touching any output buffer, so a non-nil error means nothing was
// written.
// -----------------------------------------------------------------------------

// CheckPeriod rejects periods below min. min is clamped to 1 so a zero or
// negative period is always rejected.
func CheckPeriod(name string, period, min int) error {
	if min < 1 {
		min = 1
	}
	if period < min {
		return fmt.Errorf("%w: %s must be >= %d, got %d", ErrInvalidPeriod, name, min, period)
	}
	return nil
}

// CheckPeriodOrder rejects a fast period that is not strictly shorter than
// the slow one.
func CheckPeriodOrder(fast, slow int) error {
	if fast >= slow {
		return fmt.Errorf("%w: fast period %d must be less than slow period %d", ErrInvalidPeriod, fast, slow)
	}
	return nil
}

// CheckSameLength requires every series to have length n.
func CheckSameLength[T any](n int, series ...[]T) error {
	for i, s := range series {
		if len(s) != n {
			return fmt.Errorf("%w: series %d has length %d, want %d", ErrLengthMismatch, i, len(s), n)
		}
	}
	return nil
}

// CheckDataLength requires the input to be strictly longer than the lookback.
func CheckDataLength(n, lookback int) error {
	if n <= lookback {
		return fmt.Errorf("%w: need more than %d samples, have %d", ErrInsufficientData, lookback, n)
	}
	return nil
}

// CheckWindow requires an explicitly supplied trailing window to span exactly
// one period.
func CheckWindow(n, period int) error {
	if n != period {
		return fmt.Errorf("%w: window has %d samples, want %d", ErrLengthMismatch, n, period)
	}
	return nil
}

// CheckRange requires lo < v < hi for a non-period parameter.
func CheckRange(name string, v, lo, hi float64) error {
	if !(v > lo && v < hi) {
		return fmt.Errorf("%w: %s must be in (%g, %g), got %g", ErrInvalidParameter, name, lo, hi, v)
	}
	return nil
}

// CheckPositive requires v > 0 for a non-period parameter.
func CheckPositive(name string, v float64) error {
	if !(v > 0) {
		return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidParameter, name, v)
	}
	return nil
}

// CheckPeriodLength requires every period to be strictly less than the input
// length n.
func CheckPeriodLength(n int, periods ...int) error {
	for _, p := range periods {
		if p >= n {
			return fmt.Errorf("%w: period %d must be less than input length %d", ErrInsufficientData, p, n)
		}
	}
	return nil
}

// ValidateSeries runs the checks shared by every batch engine: all inputs and
// outputs have the length of the first input, that length exceeds the
// lookback, and every period passed is strictly less than it. It does not
// check period minimums; call the indicator's Lookback first.
func ValidateSeries[T any](lookback int, inputs [][]T, outputs [][]T, periods ...int) error {
	if len(inputs) == 0 {
		return fmt.Errorf("%w: no input series", ErrInsufficientData)
	}
	n := len(inputs[0])
	if err := CheckSameLength(n, inputs...); err != nil {
		return fmt.Errorf("inputs: %w", err)
	}
	if err := CheckSameLength(n, outputs...); err != nil {
		return fmt.Errorf("outputs: %w", err)
	}
	if err := CheckDataLength(n, lookback); err != nil {
		return err
	}
	return CheckPeriodLength(n, periods...)
}
