package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/tlindeberg/signalscreen/pkg/types"
)

// CSVColumnMapping describes where each OHLCV field lives in a CSV row.
type CSVColumnMapping struct {
	TimestampCol int
	OpenCol      int
	HighCol      int
	LowCol       int
	CloseCol     int
	VolumeCol    int
	MinColumns   int
	DateFormat   string
}

// DefaultCSVFormat matches the common "timestamp,open,high,low,close,volume"
// export layout.
var DefaultCSVFormat = CSVColumnMapping{
	TimestampCol: 0,
	OpenCol:      1,
	HighCol:      2,
	LowCol:       3,
	CloseCol:     4,
	VolumeCol:    5,
	MinColumns:   6,
	DateFormat:   "2006-01-02",
}

// CSVProvider loads OHLCV series from CSV files.
type CSVProvider struct {
	format CSVColumnMapping
}

// NewCSVProvider creates a CSV series provider with the default format.
func NewCSVProvider() *CSVProvider {
	return &CSVProvider{format: DefaultCSVFormat}
}

// NewCSVProviderWithFormat creates a CSV series provider with a custom
// column mapping.
func NewCSVProviderWithFormat(format CSVColumnMapping) *CSVProvider {
	return &CSVProvider{format: format}
}

// GetName returns the name of the provider.
func (p *CSVProvider) GetName() string {
	return "CSV Provider"
}

// LoadSeries loads a historical series from a CSV file. The first row is
// treated as a header. Rows that fail to parse are reported, not skipped:
// series data is assumed pre-validated upstream, so a malformed row means
// the wrong file.
func (p *CSVProvider) LoadSeries(source string) ([]types.OHLCV, error) {
	file, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open series file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	var series []types.OHLCV
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV line %d: %w", line, err)
		}
		line++

		if len(record) < p.format.MinColumns {
			return nil, fmt.Errorf("CSV line %d has %d columns, expected %d", line, len(record), p.format.MinColumns)
		}

		bar, err := p.parseBar(record)
		if err != nil {
			return nil, fmt.Errorf("CSV line %d: %w", line, err)
		}
		series = append(series, bar)
	}

	if len(series) == 0 {
		return nil, fmt.Errorf("series file %s contains no rows", source)
	}
	return series, nil
}

func (p *CSVProvider) parseBar(record []string) (types.OHLCV, error) {
	timestamp, err := time.Parse(p.format.DateFormat, record[p.format.TimestampCol])
	if err != nil {
		return types.OHLCV{}, fmt.Errorf("invalid timestamp %q: %w", record[p.format.TimestampCol], err)
	}

	fields := [5]float64{}
	cols := [5]int{p.format.OpenCol, p.format.HighCol, p.format.LowCol, p.format.CloseCol, p.format.VolumeCol}
	for i, col := range cols {
		v, err := strconv.ParseFloat(record[col], 64)
		if err != nil {
			return types.OHLCV{}, fmt.Errorf("invalid value %q in column %d: %w", record[col], col, err)
		}
		fields[i] = v
	}

	return types.OHLCV{
		Timestamp: timestamp,
		Open:      fields[0],
		High:      fields[1],
		Low:       fields[2],
		Close:     fields[3],
		Volume:    fields[4],
	}, nil
}
