package math

import (
	"math"
)

// TradingDaysPerYear is the session count used to annualise daily figures
const TradingDaysPerYear = 252

// ArithmeticAverage is the basic form of calculating an average.
// Divide the sum of all values by the length of values
func ArithmeticAverage(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sumOfValues float64
	for x := range values {
		sumOfValues += values[x]
	}
	return sumOfValues / float64(len(values))
}

// PopulationStandardDeviation calculates standard deviation using population
// based calculation
func PopulationStandardDeviation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	avg := ArithmeticAverage(values)
	diffs := make([]float64, len(values))
	for x := range values {
		diffs[x] = math.Pow(values[x]-avg, 2)
	}
	return math.Sqrt(ArithmeticAverage(diffs))
}

// DownsideDeviation is the downside semideviation of values. Non-negative
// entries are clamped to zero before squaring and the sum is divided by the
// total observation count, not the downside count
func DownsideDeviation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var totalNegativeResultsSquared float64
	for x := range values {
		if values[x] < 0 {
			totalNegativeResultsSquared += math.Pow(values[x], 2)
		}
	}
	return math.Sqrt(totalNegativeResultsSquared / float64(len(values)))
}

// CalculateSharpeRatio returns the annualised sharpe ratio of a daily return
// series. A zero-variance series resolves to 0 rather than dividing by zero
func CalculateSharpeRatio(dailyReturns []float64) float64 {
	standardDeviation := PopulationStandardDeviation(dailyReturns)
	if standardDeviation == 0 {
		return 0
	}
	return ArithmeticAverage(dailyReturns) / standardDeviation * math.Sqrt(TradingDaysPerYear)
}

// CalculateSortinoRatio returns the annualised sortino ratio of a daily
// return series, penalising downside volatility only. A series without
// downside resolves to 0
func CalculateSortinoRatio(dailyReturns []float64) float64 {
	downsideDeviation := DownsideDeviation(dailyReturns)
	if downsideDeviation == 0 {
		return 0
	}
	return ArithmeticAverage(dailyReturns) / downsideDeviation * math.Sqrt(TradingDaysPerYear)
}

// CalculateAnnualisedReturn compounds a whole-period fractional return over
// the number of sessions it was earned in.
// (1 + periodReturn)^(252 / sessions) - 1
func CalculateAnnualisedReturn(periodReturn float64, sessions int) float64 {
	if sessions == 0 {
		return 0
	}
	return math.Pow(1+periodReturn, TradingDaysPerYear/float64(sessions)) - 1
}

// CalculatePercentageGainOrLoss returns the percentage rise over a certain
// period
func CalculatePercentageGainOrLoss(priceNow, priceThen float64) float64 {
	return (priceNow - priceThen) / priceThen * 100
}

// RoundFloat rounds your floating point number to the desired decimal place
func RoundFloat(x float64, prec int) float64 {
	pow := math.Pow(10, float64(prec))
	return math.Round(x*pow) / pow
}
