// Package statistic implements least-squares regression over a trailing
// window.
//
// All four variants share one engine. The window is indexed 0 (oldest) to
// period-1 (newest); only sum(y) and sum(x*y) are carried between bars, so
// each variant is O(1) per bar once seeded.
package statistic

import (
	"fmt"

	"github.com/evdnx/gokand/indicator/core"
)

// LinRegState is the pair of running sums carried between incremental calls.
type LinRegState[T core.Float] struct {
	SumY  T
	SumXY T
}

type linRegProject[T core.Float] func(slope, intercept T, period int) T

func projectValue[T core.Float](slope, intercept T, period int) T {
	return intercept + slope*T(period-1)
}

func projectSlope[T core.Float](slope, _ T, _ int) T { return slope }

func projectIntercept[T core.Float](_, intercept T, _ int) T { return intercept }

func projectAngle[T core.Float](slope, _ T, _ int) T { return core.Degrees(slope) }

// LinearRegLookback is shared by every regression variant.
func LinearRegLookback(period int) (int, error) {
	if err := core.CheckPeriod("LINEARREG period", period, 2); err != nil {
		return 0, err
	}
	return period - 1, nil
}

// LinearRegSeed returns the sums over one full window of period samples.
func LinearRegSeed[T core.Float](window []T, period int) (LinRegState[T], error) {
	if err := core.CheckPeriod("LINEARREG period", period, 2); err != nil {
		return LinRegState[T]{}, err
	}
	if err := core.CheckWindow(len(window), period); err != nil {
		return LinRegState[T]{}, fmt.Errorf("LINEARREG seed: %w", err)
	}
	var st LinRegState[T]
	st.SumY, st.SumXY = core.LinRegSums(window)
	return st, nil
}

func linearReg[T core.Float](name string, project linRegProject[T], input []T, period int, out, outSumY, outSumXY []T) error {
	lookback, err := LinearRegLookback(period)
	if err != nil {
		return err
	}
	if err := core.ValidateSeries(lookback, [][]T{input}, [][]T{out, outSumY, outSumXY}, period); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	core.FillNaN(lookback, out, outSumY, outSumXY)
	var st LinRegState[T]
	st.SumY, st.SumXY = core.LinRegSums(input[:period])
	for i := lookback; i < len(input); i++ {
		if i > lookback {
			st.SumY, st.SumXY = core.LinRegSumsStep(st.SumY, st.SumXY, input[i], input[i-period], period)
		}
		slope, intercept := core.LinRegFit(st.SumY, st.SumXY, period)
		out[i], outSumY[i], outSumXY[i] = project(slope, intercept, period), st.SumY, st.SumXY
	}
	return nil
}

func linearRegInc[T core.Float](project linRegProject[T], newest, oldest T, prev LinRegState[T], period int) (T, LinRegState[T], error) {
	if err := core.CheckPeriod("LINEARREG period", period, 2); err != nil {
		return 0, LinRegState[T]{}, err
	}
	var st LinRegState[T]
	st.SumY, st.SumXY = core.LinRegSumsStep(prev.SumY, prev.SumXY, newest, oldest, period)
	slope, intercept := core.LinRegFit(st.SumY, st.SumXY, period)
	return project(slope, intercept, period), st, nil
}

// LinearReg writes the end point of the fitted line, intercept +
// slope*(period-1), for every trailing window.
func LinearReg[T core.Float](input []T, period int, out, outSumY, outSumXY []T) error {
	return linearReg("LINEARREG", projectValue[T], input, period, out, outSumY, outSumXY)
}

// LinearRegInc slides the window by one sample. oldest is the sample leaving
// the window (input[i-period] for bar i).
func LinearRegInc[T core.Float](newest, oldest T, prev LinRegState[T], period int) (T, LinRegState[T], error) {
	return linearRegInc(projectValue[T], newest, oldest, prev, period)
}

// LinearRegSlope writes the slope of the fitted line.
func LinearRegSlope[T core.Float](input []T, period int, out, outSumY, outSumXY []T) error {
	return linearReg("LINEARREG_SLOPE", projectSlope[T], input, period, out, outSumY, outSumXY)
}

func LinearRegSlopeInc[T core.Float](newest, oldest T, prev LinRegState[T], period int) (T, LinRegState[T], error) {
	return linearRegInc(projectSlope[T], newest, oldest, prev, period)
}

// LinearRegIntercept writes the value of the fitted line at the oldest bar of
// the window.
func LinearRegIntercept[T core.Float](input []T, period int, out, outSumY, outSumXY []T) error {
	return linearReg("LINEARREG_INTERCEPT", projectIntercept[T], input, period, out, outSumY, outSumXY)
}

func LinearRegInterceptInc[T core.Float](newest, oldest T, prev LinRegState[T], period int) (T, LinRegState[T], error) {
	return linearRegInc(projectIntercept[T], newest, oldest, prev, period)
}

// LinearRegAngle writes the slope as an angle in degrees.
func LinearRegAngle[T core.Float](input []T, period int, out, outSumY, outSumXY []T) error {
	return linearReg("LINEARREG_ANGLE", projectAngle[T], input, period, out, outSumY, outSumXY)
}

func LinearRegAngleInc[T core.Float](newest, oldest T, prev LinRegState[T], period int) (T, LinRegState[T], error) {
	return linearRegInc(projectAngle[T], newest, oldest, prev, period)
}
