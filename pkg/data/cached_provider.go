package data

import (
	"sync"

	"github.com/tlindeberg/signalscreen/pkg/types"
)

// MemoryCache implements SeriesCache using in-memory storage.
type MemoryCache struct {
	cache map[string][]types.OHLCV
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory series cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{cache: make(map[string][]types.OHLCV)}
}

// Get retrieves a series from cache if available. A copy is returned so
// callers cannot mutate the cached data.
func (c *MemoryCache) Get(key string) ([]types.OHLCV, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	series, exists := c.cache[key]
	if !exists {
		return nil, false
	}
	result := make([]types.OHLCV, len(series))
	copy(result, series)
	return result, true
}

// Set stores a series in cache.
func (c *MemoryCache) Set(key string, series []types.OHLCV) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	stored := make([]types.OHLCV, len(series))
	copy(stored, series)
	c.cache[key] = stored
}

// Clear removes all cached entries.
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.cache = make(map[string][]types.OHLCV)
}

// Size returns the number of cached entries.
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.cache)
}

// CachedSeriesProvider wraps a SeriesProvider with an in-memory cache so a
// series shared by several candidates is only read once per process.
type CachedSeriesProvider struct {
	provider SeriesProvider
	cache    SeriesCache
}

// NewCachedSeriesProvider wraps the given provider with a memory cache.
func NewCachedSeriesProvider(provider SeriesProvider) *CachedSeriesProvider {
	return &CachedSeriesProvider{
		provider: provider,
		cache:    NewMemoryCache(),
	}
}

// GetName returns the name of the underlying provider.
func (p *CachedSeriesProvider) GetName() string {
	return p.provider.GetName() + " (cached)"
}

// LoadSeries loads a series through the cache.
func (p *CachedSeriesProvider) LoadSeries(source string) ([]types.OHLCV, error) {
	if series, ok := p.cache.Get(source); ok {
		return series, nil
	}
	series, err := p.provider.LoadSeries(source)
	if err != nil {
		return nil, err
	}
	p.cache.Set(source, series)
	return series, nil
}
