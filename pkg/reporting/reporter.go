package reporting

import (
	"github.com/tlindeberg/signalscreen/pkg/types"
)

// DefaultReporter implements the complete Reporter interface.
type DefaultReporter struct {
	console *DefaultConsoleReporter
	csv     *DefaultCSVReporter
	json    *DefaultJSONFormatter
	excel   *DefaultExcelReporter
}

// NewDefaultReporter creates a reporter with all output formats.
func NewDefaultReporter() *DefaultReporter {
	return &DefaultReporter{
		console: NewDefaultConsoleReporter(),
		csv:     NewDefaultCSVReporter(),
		json:    NewDefaultJSONFormatter(),
		excel:   NewDefaultExcelReporter(),
	}
}

// OutputRun prints the ranked decision list and the regime summary.
func (r *DefaultReporter) OutputRun(run *types.ScreeningRun) {
	r.console.OutputRun(run)
}

// WriteDecisionsCSV writes the ranked decision list as CSV.
func (r *DefaultReporter) WriteDecisionsCSV(run *types.ScreeningRun, path string) error {
	return r.csv.WriteDecisionsCSV(run, path)
}

// WriteRunJSON writes the full run, audit trail included, as JSON.
func (r *DefaultReporter) WriteRunJSON(run *types.ScreeningRun, path string) error {
	return r.json.WriteRunJSON(run, path)
}

// WriteRunXLSX writes a decision + audit workbook.
func (r *DefaultReporter) WriteRunXLSX(run *types.ScreeningRun, path string) error {
	return r.excel.WriteRunXLSX(run, path)
}
