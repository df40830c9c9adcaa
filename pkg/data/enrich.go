package data

import (
	"math"

	"github.com/tlindeberg/signalscreen/pkg/types"
)

// Window lengths for the derived market inputs.
const (
	atrWindow    = 14
	volumeWindow = 20
)

// EnrichCandidate fills a candidate's market inputs from a historical
// series: current price, ATR percent, daily and trailing returns, and the
// average daily traded value. Fields already set on the candidate are kept.
// Candidates with too little history are returned unchanged; the cost guard
// treats the missing volume as a warning, not a failure.
func EnrichCandidate(candidate types.Candidate, series []types.OHLCV) types.Candidate {
	if len(series) < 2 {
		return candidate
	}

	last := series[len(series)-1]
	if candidate.Price <= 0 {
		candidate.Price = last.Close
	}
	if candidate.ATRPct <= 0 {
		candidate.ATRPct = atrPercent(series)
	}

	returns := dailyReturns(series)
	if len(candidate.DailyReturns) == 0 {
		candidate.DailyReturns = returns
	}
	if len(candidate.TrailingReturns) == 0 {
		candidate.TrailingReturns = returns
	}
	if candidate.AvgDailyVolume <= 0 {
		candidate.AvgDailyVolume = avgDailyValue(series)
	}
	return candidate
}

// dailyReturns converts a series into close-to-close percentage returns.
func dailyReturns(series []types.OHLCV) []float64 {
	returns := make([]float64, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		prev := series[i-1].Close
		if prev <= 0 {
			continue
		}
		returns = append(returns, (series[i].Close/prev-1)*100)
	}
	return returns
}

// atrPercent is the average true range over the trailing window, as a
// percentage of the last close.
func atrPercent(series []types.OHLCV) float64 {
	window := series
	if len(series) > atrWindow+1 {
		window = series[len(series)-atrWindow-1:]
	}

	sum := 0.0
	count := 0
	for i := 1; i < len(window); i++ {
		prevClose := window[i-1].Close
		tr := math.Max(window[i].High-window[i].Low,
			math.Max(math.Abs(window[i].High-prevClose), math.Abs(window[i].Low-prevClose)))
		sum += tr
		count++
	}

	lastClose := series[len(series)-1].Close
	if count == 0 || lastClose <= 0 {
		return 0
	}
	return sum / float64(count) / lastClose * 100
}

// avgDailyValue is the mean traded value (volume times close) over the
// trailing window.
func avgDailyValue(series []types.OHLCV) float64 {
	window := series
	if len(series) > volumeWindow {
		window = series[len(series)-volumeWindow:]
	}

	sum := 0.0
	for _, bar := range window {
		sum += bar.Volume * bar.Close
	}
	return sum / float64(len(window))
}
