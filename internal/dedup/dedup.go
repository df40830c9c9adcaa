// Package dedup removes near-duplicate bets among highly correlated
// surviving candidates. Candidates whose trailing returns correlate above
// the threshold are grouped transitively; only the best-scoring member of
// each cluster survives. Because grouping is transitive, survivors are
// pairwise below the threshold and the operation is idempotent.
package dedup

import (
	"github.com/rs/zerolog"

	"github.com/tlindeberg/signalscreen/internal/config"
	"github.com/tlindeberg/signalscreen/internal/stats"
)

// Member is one surviving candidate entering deduplication.
type Member struct {
	Symbol  string
	Score   float64
	Returns []float64
}

// Redundancy names the kept instrument a removed member duplicated.
type Redundancy struct {
	Symbol     string
	KeptSymbol string
}

// Result partitions the input into kept members and redundancies. The kept
// slice preserves the input order.
type Result struct {
	Kept      []Member
	Redundant []Redundancy
}

// Deduplicator clusters candidates by trailing-return correlation.
// Stateless and safe for concurrent use.
type Deduplicator struct {
	cfg config.DedupConfig
	log zerolog.Logger
}

// NewDeduplicator creates a deduplicator with the given lookback and
// threshold.
func NewDeduplicator(cfg config.DedupConfig, log zerolog.Logger) *Deduplicator {
	return &Deduplicator{
		cfg: cfg,
		log: log.With().Str("component", "dedup").Logger(),
	}
}

// Deduplicate groups the members into correlation clusters and keeps the
// highest-scoring member of each. Members without usable return series never
// cluster and are always kept.
func (d *Deduplicator) Deduplicate(members []Member) Result {
	n := len(members)
	if n == 0 {
		return Result{}
	}

	// Greedy union over the threshold graph.
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	union := func(a, b int) {
		parent[find(a)] = find(b)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if d.correlated(members[i].Returns, members[j].Returns) {
				union(i, j)
			}
		}
	}

	// Pick the best score per cluster.
	bestInCluster := make(map[int]int)
	for i := 0; i < n; i++ {
		root := find(i)
		best, seen := bestInCluster[root]
		if !seen || members[i].Score > members[best].Score {
			bestInCluster[root] = i
		}
	}

	result := Result{Kept: make([]Member, 0, n)}
	for i := 0; i < n; i++ {
		best := bestInCluster[find(i)]
		if best == i {
			result.Kept = append(result.Kept, members[i])
			continue
		}
		result.Redundant = append(result.Redundant, Redundancy{
			Symbol:     members[i].Symbol,
			KeptSymbol: members[best].Symbol,
		})
		d.log.Debug().
			Str("symbol", members[i].Symbol).
			Str("kept", members[best].Symbol).
			Msg("candidate removed as correlated duplicate")
	}
	return result
}

// correlated computes the Pearson correlation of the two series over the
// trailing lookback window and compares it against the threshold. Series
// shorter than two shared observations cannot correlate.
func (d *Deduplicator) correlated(a, b []float64) bool {
	window := d.cfg.Lookback
	if len(a) < window {
		window = len(a)
	}
	if len(b) < window {
		window = len(b)
	}
	if window < 2 {
		return false
	}
	corr := stats.Correlation(a[len(a)-window:], b[len(b)-window:])
	return corr > d.cfg.Threshold
}
