package model

// PrintStats tracks lifetime and per-day print counts. TodayPrints resets
// whenever LastPrintDate differs from the current calendar date.
type PrintStats struct {
	TotalPrints   int64  `json:"totalPrints"`
	TodayPrints   int64  `json:"todayPrints"`
	LastPrintDate string `json:"lastPrintDate"` // YYYY-MM-DD, empty before the first check
}
