package reporting

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tlindeberg/signalscreen/pkg/types"
)

// DefaultCSVReporter writes decision lists as CSV.
type DefaultCSVReporter struct{}

// NewDefaultCSVReporter creates a new CSV reporter.
func NewDefaultCSVReporter() *DefaultCSVReporter {
	return &DefaultCSVReporter{}
}

// WriteDecisionsCSV writes the ranked decision list to path, creating parent
// directories as needed.
func (r *DefaultCSVReporter) WriteDecisionsCSV(run *types.ScreeningRun, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create CSV file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{
		"rank", "symbol", "pattern", "outcome", "reason", "score",
		"adjusted_win_rate", "pass_rate", "quality_significant",
		"stop_pct", "rrr", "alloc_pct", "alloc_amount",
		"gross_edge_pct", "total_cost_pct", "net_edge_pct",
		"stop_out_probability", "warnings",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for i, d := range run.Decisions {
		row := decisionRow(i+1, d)
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write CSV row %d: %w", i+1, err)
		}
	}
	return nil
}

func decisionRow(rank int, d types.Decision) []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }

	row := []string{
		strconv.Itoa(rank), d.Symbol, d.Pattern, string(d.Outcome), d.Reason, f(d.Score),
	}
	if d.Edge != nil {
		row = append(row, f(d.Edge.AdjustedWinRate), f(d.Edge.PassRate), strconv.FormatBool(d.Edge.Significant))
	} else {
		row = append(row, "", "", "")
	}
	if d.Stop != nil {
		row = append(row, f(d.Stop.StopDistancePct), f(d.Stop.RRR))
	} else {
		row = append(row, "", "")
	}
	if d.Sizing != nil {
		row = append(row, f(d.Sizing.FinalPct), f(d.Sizing.FinalAmount))
	} else {
		row = append(row, "", "")
	}
	if d.Costs != nil {
		row = append(row, f(d.Costs.GrossEdgePct), f(d.Costs.TotalCostPct), f(d.Costs.NetEdgePct))
	} else {
		row = append(row, "", "", "")
	}
	if d.Simulation != nil {
		row = append(row, f(d.Simulation.StopOutProbability))
	} else {
		row = append(row, "")
	}
	row = append(row, joinWarnings(d.Warnings))
	return row
}

func joinWarnings(warnings []string) string {
	out := ""
	for i, w := range warnings {
		if i > 0 {
			out += "; "
		}
		out += w
	}
	return out
}

// ensureDir creates the parent directory of path if needed.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}
