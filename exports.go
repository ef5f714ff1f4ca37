// Package gokand is the top-level entry point of the module. It re-exports the
// shared types, the catalogue and the four headline indicators (DX, MACD,
// MIDPRICE, WCLPRICE) so simple callers need a single import. Everything
// else lives in the indicator sub-packages.
package gokand

import (
	"github.com/evdnx/gokand/config"
	"github.com/evdnx/gokand/indicator"
	"github.com/evdnx/gokand/indicator/core"
	"github.com/evdnx/gokand/indicator/momentum"
	"github.com/evdnx/gokand/indicator/price"
	"github.com/evdnx/gokand/suite"
)

// ---- Shared types ----
type (
	Float   = core.Float
	TAFloat = core.TAFloat
	Signal  = core.Signal
	MAType  = core.MAType
)

const (
	SignalBullish = core.SignalBullish
	SignalBalance = core.SignalBalance
	SignalBearish = core.SignalBearish
	SignalNeutral = core.SignalNeutral
	SignalPattern = core.SignalPattern
	SignalInvalid = core.SignalInvalid
)

var (
	ErrInvalidPeriod    = core.ErrInvalidPeriod
	ErrLengthMismatch   = core.ErrLengthMismatch
	ErrInsufficientData = core.ErrInsufficientData
	ErrInvalidParameter = core.ErrInvalidParameter
)

// ---- Catalogue ----
type (
	Bars       = indicator.Bars
	Params     = indicator.Params
	Definition = indicator.Definition
)

func Catalogue() []indicator.Definition { return indicator.Catalogue() }

func Lookup(name string) (indicator.Definition, bool) { return indicator.Lookup(name) }

// ---- Suite ----
type (
	IndicatorSuite = suite.IndicatorSuite
	Result         = suite.Result
)

func NewIndicatorSuite() (*suite.IndicatorSuite, error) { return suite.NewIndicatorSuite() }

func NewIndicatorSuiteWithConfig(cfg *config.Config) (*suite.IndicatorSuite, error) {
	return suite.NewIndicatorSuiteWithConfig(cfg)
}

// ---- DX ----
type DXState[T core.Float] = momentum.DXState[T]

func DXLookback(period int) (int, error) { return momentum.DXLookback(period) }

func DX[T core.Float](high, low, close []T, period int, outDX, outPlusDM, outMinusDM, outTR []T) error {
	return momentum.DX(high, low, close, period, outDX, outPlusDM, outMinusDM, outTR)
}

func DXInc[T core.Float](high, low, prevHigh, prevLow, prevClose T, prev DXState[T], period int) (T, DXState[T], error) {
	return momentum.DXInc(high, low, prevHigh, prevLow, prevClose, prev, period)
}

// ---- MACD ----
type (
	MACDState[T core.Float] = momentum.MACDState[T]
	MACDValue[T core.Float] = momentum.MACDValue[T]
)

func MACDLookback(fastPeriod, slowPeriod, signalPeriod int) (int, error) {
	return momentum.MACDLookback(fastPeriod, slowPeriod, signalPeriod)
}

func MACD[T core.Float](input []T, fastPeriod, slowPeriod, signalPeriod int, outMACD, outSignal, outHist, outFastEMA, outSlowEMA []T) error {
	return momentum.MACD(input, fastPeriod, slowPeriod, signalPeriod, outMACD, outSignal, outHist, outFastEMA, outSlowEMA)
}

func MACDInc[T core.Float](sample T, prev MACDState[T], fastPeriod, slowPeriod, signalPeriod int) (MACDValue[T], MACDState[T], error) {
	return momentum.MACDInc(sample, prev, fastPeriod, slowPeriod, signalPeriod)
}

// ---- MIDPRICE ----
type MidpriceState[T core.Float] = price.MidpriceState[T]

func MidpriceLookback(period int) (int, error) { return price.MidpriceLookback(period) }

func Midprice[T core.Float](high, low []T, period int, outMid, outHighest, outLowest []T) error {
	return price.Midprice(high, low, period, outMid, outHighest, outLowest)
}

func MidpriceInc[T core.Float](high, low T, prev MidpriceState[T], period int) (T, MidpriceState[T], error) {
	return price.MidpriceInc(high, low, prev, period)
}

func MidpriceIncExact[T core.Float](highWindow, lowWindow []T, period int) (T, MidpriceState[T], error) {
	return price.MidpriceIncExact(highWindow, lowWindow, period)
}

// ---- WCLPRICE ----
func WCLPriceLookback() int { return price.WCLPriceLookback() }

func WCLPrice[T core.Float](high, low, close, out []T) error {
	return price.WCLPrice(high, low, close, out)
}

func WCLPriceInc[T core.Float](high, low, close T) T { return price.WCLPriceInc(high, low, close) }
