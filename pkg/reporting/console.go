package reporting

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/tlindeberg/signalscreen/pkg/types"
)

// DefaultConsoleReporter renders screening runs as terminal tables.
type DefaultConsoleReporter struct{}

// NewDefaultConsoleReporter creates a new console reporter.
func NewDefaultConsoleReporter() *DefaultConsoleReporter {
	return &DefaultConsoleReporter{}
}

// OutputRun prints the regime summary and the ranked decision list.
func (r *DefaultConsoleReporter) OutputRun(run *types.ScreeningRun) {
	r.printRegime(run)
	r.printDecisions(run)

	if run.Regime.HaltRecommended {
		fmt.Println("🛑 Market stress index at crisis level: portfolio-wide halt recommended")
	}
	fmt.Printf("Run %s finished in %s (%d candidates, %d rejected)\n\n",
		run.RunID, run.FinishedAt.Sub(run.StartedAt).Round(1e6), len(run.Decisions), len(run.Audit))
}

func (r *DefaultConsoleReporter) printRegime(run *types.ScreeningRun) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("MARKET REGIME")
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"📊 Regime", string(run.Regime.Label)},
		{"🔥 Stress Index", fmt.Sprintf("%.1f", run.Regime.StressIndex)},
		{"📉 Size Multiplier", fmt.Sprintf("%.2fx", run.Regime.SizeMultiplier)},
		{"🔗 Implied Correlation", fmt.Sprintf("%.2f", run.Regime.ImpliedCorrelation)},
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 22, Align: text.AlignLeft},
		{Number: 2, WidthMin: 12, Align: text.AlignLeft},
	})
	t.Render()
	fmt.Println()
}

func (r *DefaultConsoleReporter) printDecisions(run *types.ScreeningRun) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("SCREENING DECISIONS")
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"#", "Symbol", "Outcome", "Score", "Alloc %", "Net Edge %", "Stop %", "Reason"})

	for i, d := range run.Decisions {
		alloc := "-"
		if d.Sizing != nil {
			alloc = fmt.Sprintf("%.2f", d.Sizing.FinalPct)
		}
		netEdge := "-"
		if d.Costs != nil {
			netEdge = fmt.Sprintf("%.2f", d.Costs.NetEdgePct)
		}
		stop := "-"
		if d.Stop != nil {
			stop = fmt.Sprintf("%.2f", d.Stop.StopDistancePct)
		}
		t.AppendRow(table.Row{
			i + 1, d.Symbol, outcomeBadge(d.Outcome), fmt.Sprintf("%.1f", d.Score),
			alloc, netEdge, stop, d.Reason,
		})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 8, WidthMax: 48, Align: text.AlignLeft},
	})
	t.Render()
	fmt.Println()
}

func outcomeBadge(outcome types.Outcome) string {
	switch outcome {
	case types.OutcomeEnter:
		return "✅ ENTER"
	case types.OutcomeDefer:
		return "⏸ DEFER"
	default:
		return "❌ REJECT"
	}
}
