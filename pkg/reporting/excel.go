package reporting

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tlindeberg/signalscreen/pkg/types"
)

// DefaultExcelReporter writes a decision + audit workbook.
type DefaultExcelReporter struct{}

// NewDefaultExcelReporter creates a new Excel reporter.
func NewDefaultExcelReporter() *DefaultExcelReporter {
	return &DefaultExcelReporter{}
}

// WriteRunXLSX writes the run to an Excel workbook with a Decisions sheet
// for the ranked list and an Audit sheet for the rejected candidates.
func (r *DefaultExcelReporter) WriteRunXLSX(run *types.ScreeningRun, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const decisionsSheet = "Decisions"
	const auditSheet = "Audit"

	fx.SetSheetName(fx.GetSheetName(0), decisionsSheet)
	if _, err := fx.NewSheet(auditSheet); err != nil {
		return fmt.Errorf("create audit sheet: %w", err)
	}

	headerStyle, err := fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := r.writeDecisionSheet(fx, decisionsSheet, run.Decisions, headerStyle); err != nil {
		return err
	}
	if err := r.writeDecisionSheet(fx, auditSheet, run.Audit, headerStyle); err != nil {
		return err
	}

	if err := fx.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func (r *DefaultExcelReporter) writeDecisionSheet(fx *excelize.File, sheet string, decisions []types.Decision, headerStyle int) error {
	headers := []string{
		"Rank", "Symbol", "Pattern", "Outcome", "Reason", "Score",
		"Adj Win Rate", "Pass Rate", "Stop %", "RRR",
		"Alloc %", "Alloc Amount", "Net Edge %", "Stop-Out Prob", "Warnings",
	}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := fx.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	endCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := fx.SetCellStyle(sheet, "A1", endCell, headerStyle); err != nil {
		return err
	}

	for i, d := range decisions {
		values := []interface{}{
			i + 1, d.Symbol, d.Pattern, string(d.Outcome), d.Reason, d.Score,
		}
		if d.Edge != nil {
			values = append(values, d.Edge.AdjustedWinRate, d.Edge.PassRate)
		} else {
			values = append(values, nil, nil)
		}
		if d.Stop != nil {
			values = append(values, d.Stop.StopDistancePct, d.Stop.RRR)
		} else {
			values = append(values, nil, nil)
		}
		if d.Sizing != nil {
			values = append(values, d.Sizing.FinalPct, d.Sizing.FinalAmount)
		} else {
			values = append(values, nil, nil)
		}
		if d.Costs != nil {
			values = append(values, d.Costs.NetEdgePct)
		} else {
			values = append(values, nil)
		}
		if d.Simulation != nil {
			values = append(values, d.Simulation.StopOutProbability)
		} else {
			values = append(values, nil)
		}
		values = append(values, joinWarnings(d.Warnings))

		startCell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := fx.SetSheetRow(sheet, startCell, &values); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}
