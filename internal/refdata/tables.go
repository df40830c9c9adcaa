// Package refdata provides the static instrument lookups the screening
// pipeline consumes: sector, trading currency, liquidity class and product
// classification. Unknown symbols resolve to conservative defaults so a gap
// in the tables degrades cost estimates instead of failing a candidate.
package refdata

// LiquidityClass keys the spread-cost table.
type LiquidityClass string

const (
	LiquidityLargeCap  LiquidityClass = "LARGE_CAP"
	LiquiditySmallCap  LiquidityClass = "SMALL_CAP"
	LiquidityLeveraged LiquidityClass = "LEVERAGED"
)

// ProductClass distinguishes plain instruments from products with
// structural daily-reset decay.
type ProductClass string

const (
	ProductEquity    ProductClass = "EQUITY"
	ProductFund      ProductClass = "FUND"
	ProductLeveraged ProductClass = "LEVERAGED"
)

// InstrumentInfo is the resolved reference record for one symbol.
type InstrumentInfo struct {
	Symbol    string
	Sector    string
	Currency  string
	Liquidity LiquidityClass
	Product   ProductClass
}

// Tables resolves instrument reference data.
type Tables interface {
	Lookup(symbol string) InstrumentInfo
}

// StaticTables is a map-backed Tables implementation.
type StaticTables struct {
	instruments  map[string]InstrumentInfo
	homeCurrency string
}

// NewStaticTables creates lookup tables over the given records.
// homeCurrency is used as the default for unknown symbols.
func NewStaticTables(records []InstrumentInfo, homeCurrency string) *StaticTables {
	m := make(map[string]InstrumentInfo, len(records))
	for _, r := range records {
		m[r.Symbol] = r
	}
	return &StaticTables{instruments: m, homeCurrency: homeCurrency}
}

// Lookup resolves one symbol. Unknown symbols get the conservative default:
// small-cap spread, unknown sector, home currency, plain equity.
func (t *StaticTables) Lookup(symbol string) InstrumentInfo {
	if info, ok := t.instruments[symbol]; ok {
		if info.Sector == "" {
			info.Sector = "UNKNOWN"
		}
		if info.Currency == "" {
			info.Currency = t.homeCurrency
		}
		if info.Liquidity == "" {
			info.Liquidity = LiquiditySmallCap
		}
		if info.Product == "" {
			info.Product = ProductEquity
		}
		return info
	}
	return InstrumentInfo{
		Symbol:    symbol,
		Sector:    "UNKNOWN",
		Currency:  t.homeCurrency,
		Liquidity: LiquiditySmallCap,
		Product:   ProductEquity,
	}
}
