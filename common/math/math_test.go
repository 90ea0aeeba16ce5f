package math

import (
	"math"
	"testing"
)

func TestArithmeticAverage(t *testing.T) {
	t.Parallel()
	if avg := ArithmeticAverage(nil); avg != 0 {
		t.Errorf("received: %v, expected: %v", avg, 0)
	}
	if avg := ArithmeticAverage([]float64{2, 4, 6, 8}); avg != 5 {
		t.Errorf("received: %v, expected: %v", avg, 5)
	}
}

func TestPopulationStandardDeviation(t *testing.T) {
	t.Parallel()
	if sd := PopulationStandardDeviation(nil); sd != 0 {
		t.Errorf("received: %v, expected: %v", sd, 0)
	}
	if sd := PopulationStandardDeviation([]float64{5, 5, 5}); sd != 0 {
		t.Errorf("received: %v, expected: %v", sd, 0)
	}
	sd := PopulationStandardDeviation([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if RoundFloat(sd, 9) != 2 {
		t.Errorf("received: %v, expected: %v", sd, 2)
	}
}

func TestDownsideDeviation(t *testing.T) {
	t.Parallel()
	if dd := DownsideDeviation([]float64{0.01, 0.02, 0.03}); dd != 0 {
		t.Errorf("received: %v, expected: %v", dd, 0)
	}
	// only the -0.03 contributes, divided by total count of 3
	dd := DownsideDeviation([]float64{0.01, -0.03, 0.02})
	expected := math.Sqrt(0.03 * 0.03 / 3)
	if RoundFloat(dd, 12) != RoundFloat(expected, 12) {
		t.Errorf("received: %v, expected: %v", dd, expected)
	}
}

func TestCalculateSharpeRatio(t *testing.T) {
	t.Parallel()
	if sharpe := CalculateSharpeRatio(nil); sharpe != 0 {
		t.Errorf("received: %v, expected: %v", sharpe, 0)
	}
	if sharpe := CalculateSharpeRatio([]float64{0.01, 0.01, 0.01}); sharpe != 0 {
		t.Errorf("received: %v, expected: %v", sharpe, 0)
	}
	returns := []float64{0.01, -0.02, 0.03}
	expected := ArithmeticAverage(returns) / PopulationStandardDeviation(returns) * math.Sqrt(TradingDaysPerYear)
	if sharpe := CalculateSharpeRatio(returns); sharpe != expected {
		t.Errorf("received: %v, expected: %v", sharpe, expected)
	}
}

func TestCalculateSortinoRatio(t *testing.T) {
	t.Parallel()
	if sortino := CalculateSortinoRatio([]float64{0.01, 0.02}); sortino != 0 {
		t.Errorf("received: %v, expected: %v", sortino, 0)
	}
	returns := []float64{0.01, -0.02, 0.03}
	expected := ArithmeticAverage(returns) / DownsideDeviation(returns) * math.Sqrt(TradingDaysPerYear)
	if sortino := CalculateSortinoRatio(returns); sortino != expected {
		t.Errorf("received: %v, expected: %v", sortino, expected)
	}
}

func TestCalculateAnnualisedReturn(t *testing.T) {
	t.Parallel()
	if annual := CalculateAnnualisedReturn(0.5, 0); annual != 0 {
		t.Errorf("received: %v, expected: %v", annual, 0)
	}
	// a full year of sessions compounds to itself
	if annual := CalculateAnnualisedReturn(0.1, TradingDaysPerYear); RoundFloat(annual, 12) != 0.1 {
		t.Errorf("received: %v, expected: %v", annual, 0.1)
	}
	// half a year doubles the compounding exponent
	expected := math.Pow(1.1, 2) - 1
	if annual := CalculateAnnualisedReturn(0.1, TradingDaysPerYear/2); RoundFloat(annual, 12) != RoundFloat(expected, 12) {
		t.Errorf("received: %v, expected: %v", annual, expected)
	}
}

func TestCalculatePercentageGainOrLoss(t *testing.T) {
	t.Parallel()
	if pct := CalculatePercentageGainOrLoss(11, 10); RoundFloat(pct, 9) != 10 {
		t.Errorf("received: %v, expected: %v", pct, 10)
	}
	if pct := CalculatePercentageGainOrLoss(9, 10); RoundFloat(pct, 9) != -10 {
		t.Errorf("received: %v, expected: %v", pct, -10)
	}
}

func TestRoundFloat(t *testing.T) {
	t.Parallel()
	if r := RoundFloat(1.23456, 2); r != 1.23 {
		t.Errorf("received: %v, expected: %v", r, 1.23)
	}
	if r := RoundFloat(1.235, 2); r != 1.24 {
		t.Errorf("received: %v, expected: %v", r, 1.24)
	}
}
