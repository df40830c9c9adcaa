package data

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tlindeberg/signalscreen/internal/refdata"
	"github.com/tlindeberg/signalscreen/pkg/types"
)

// InstrumentRecord is the on-disk shape of one reference-table entry.
type InstrumentRecord struct {
	Symbol    string `json:"symbol"`
	Sector    string `json:"sector"`
	Currency  string `json:"currency"`
	Liquidity string `json:"liquidity"`
	Product   string `json:"product"`
}

// Universe is one detector export: the candidates of a scan plus the
// reference data for the instruments involved.
type Universe struct {
	Candidates  []types.Candidate  `json:"candidates"`
	Instruments []InstrumentRecord `json:"instruments"`
}

// Tables converts the embedded instrument records into lookup tables.
func (u *Universe) Tables(homeCurrency string) refdata.Tables {
	records := make([]refdata.InstrumentInfo, len(u.Instruments))
	for i, r := range u.Instruments {
		records[i] = refdata.InstrumentInfo{
			Symbol:    r.Symbol,
			Sector:    r.Sector,
			Currency:  r.Currency,
			Liquidity: refdata.LiquidityClass(r.Liquidity),
			Product:   refdata.ProductClass(r.Product),
		}
	}
	return refdata.NewStaticTables(records, homeCurrency)
}

// JSONUniverseProvider loads universes from detector JSON exports.
type JSONUniverseProvider struct{}

// NewJSONUniverseProvider creates a new JSON universe provider.
func NewJSONUniverseProvider() *JSONUniverseProvider {
	return &JSONUniverseProvider{}
}

// GetName returns the name of the provider.
func (p *JSONUniverseProvider) GetName() string {
	return "JSON Universe Provider"
}

// LoadUniverse loads a universe from a JSON file.
func (p *JSONUniverseProvider) LoadUniverse(source string) (*Universe, error) {
	raw, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("read universe file: %w", err)
	}

	var universe Universe
	if err := json.Unmarshal(raw, &universe); err != nil {
		return nil, fmt.Errorf("parse universe file %s: %w", source, err)
	}
	if len(universe.Candidates) == 0 {
		return nil, fmt.Errorf("universe file %s contains no candidates", source)
	}
	return &universe, nil
}
