package types

import "time"

type OHLCV struct {
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	Timestamp time.Time
}

// DailyReturnStats summarizes a daily-return sample for simulation purposes.
type DailyReturnStats struct {
	Mean   float64
	StdDev float64
	Count  int
}
