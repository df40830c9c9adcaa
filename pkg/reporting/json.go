package reporting

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tlindeberg/signalscreen/pkg/types"
)

// DefaultJSONFormatter writes the full run as indented JSON.
type DefaultJSONFormatter struct{}

// NewDefaultJSONFormatter creates a new JSON formatter.
func NewDefaultJSONFormatter() *DefaultJSONFormatter {
	return &DefaultJSONFormatter{}
}

// WriteRunJSON writes the complete run, audit trail included.
func (r *DefaultJSONFormatter) WriteRunJSON(run *types.ScreeningRun, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("write JSON file: %w", err)
	}
	return nil
}
