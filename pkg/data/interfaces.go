package data

import (
	"github.com/tlindeberg/signalscreen/pkg/types"
)

// UniverseProvider loads the candidates of one screening universe, as
// produced by the external pattern detector.
type UniverseProvider interface {
	// LoadUniverse loads candidate records from the specified source.
	LoadUniverse(source string) (*Universe, error)

	// GetName returns the name of the provider.
	GetName() string
}

// SeriesProvider loads historical OHLCV series used to enrich candidates
// with market inputs (volatility proxy, trailing returns, volume).
type SeriesProvider interface {
	// LoadSeries loads a historical series from the specified source.
	LoadSeries(source string) ([]types.OHLCV, error)

	// GetName returns the name of the provider.
	GetName() string
}

// SeriesCache caches loaded series keyed by source.
type SeriesCache interface {
	// Get retrieves a series from cache if available.
	Get(key string) ([]types.OHLCV, bool)

	// Set stores a series in cache.
	Set(key string, series []types.OHLCV)

	// Clear removes all cached entries.
	Clear()

	// Size returns the number of cached entries.
	Size() int
}
