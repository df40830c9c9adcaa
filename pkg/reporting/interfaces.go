package reporting

import (
	"github.com/tlindeberg/signalscreen/pkg/types"
)

// ConsoleReporter renders a screening run to the terminal.
type ConsoleReporter interface {
	// OutputRun prints the ranked decision list and the regime summary.
	OutputRun(run *types.ScreeningRun)
}

// FileReporter persists a screening run for downstream tooling.
type FileReporter interface {
	// WriteDecisionsCSV writes the ranked decision list as CSV.
	WriteDecisionsCSV(run *types.ScreeningRun, path string) error

	// WriteRunJSON writes the full run, audit trail included, as JSON.
	WriteRunJSON(run *types.ScreeningRun, path string) error

	// WriteRunXLSX writes a decision + audit workbook.
	WriteRunXLSX(run *types.ScreeningRun, path string) error
}

// Reporter combines console and file output.
type Reporter interface {
	ConsoleReporter
	FileReporter
}
