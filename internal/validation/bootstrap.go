package validation

import (
	"math/rand"

	"github.com/tlindeberg/signalscreen/internal/stats"
)

// BootstrapSummary holds the resampled expected-value distribution for one
// forward-return sample.
type BootstrapSummary struct {
	PassRate float64 // fraction of resamples with EV > 0
	MeanEV   float64
	StdDev   float64
	Low      float64 // 2.5th percentile
	High     float64 // 97.5th percentile
}

// runBootstrap resamples the forward-return sample with replacement and
// computes the expected value EV = winRate*avgWin - (1-winRate)*avgLoss for
// each resample. The RNG is seeded per call so identical inputs reproduce
// identical results bit for bit.
func runBootstrap(returns []float64, iters int, seed int64) BootstrapSummary {
	n := len(returns)
	if n == 0 || iters <= 0 {
		return BootstrapSummary{}
	}

	rng := rand.New(rand.NewSource(seed))
	evs := make([]float64, iters)
	positive := 0

	for i := 0; i < iters; i++ {
		var winSum, lossSum float64
		var winCount, lossCount int
		for j := 0; j < n; j++ {
			r := returns[rng.Intn(n)]
			if r > 0 {
				winSum += r
				winCount++
			} else if r < 0 {
				lossSum += r
				lossCount++
			}
		}

		winRate := float64(winCount) / float64(n)
		avgWin := 0.0
		if winCount > 0 {
			avgWin = winSum / float64(winCount)
		}
		avgLoss := 0.0
		if lossCount > 0 {
			avgLoss = -lossSum / float64(lossCount)
		}

		ev := winRate*avgWin - (1-winRate)*avgLoss
		evs[i] = ev
		if ev > 0 {
			positive++
		}
	}

	return BootstrapSummary{
		PassRate: float64(positive) / float64(iters),
		MeanEV:   stats.Mean(evs),
		StdDev:   stats.StdDev(evs),
		Low:      stats.Percentile(evs, 2.5),
		High:     stats.Percentile(evs, 97.5),
	}
}
