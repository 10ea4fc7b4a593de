package testdata

// ReferenceCase is a frozen valuation with independently published values.
// Zero expected fields are not checked.
type ReferenceCase struct {
	Name  string
	Call  bool
	S     float64
	K     float64
	R     float64
	Q     float64
	Sigma float64
	T     float64

	ExpectedPrice float64
	ExpectedDelta float64
}

// EuropeanReferenceCases are textbook Black-Scholes values
var EuropeanReferenceCases = []ReferenceCase{
	// Hull, S=K=100, r=5%, sigma=20%, one year
	{Name: "atm_call_1y", Call: true, S: 100, K: 100, R: 0.05, Q: 0, Sigma: 0.2, T: 1, ExpectedPrice: 10.450583572185565, ExpectedDelta: 0.6368306511756191},
	{Name: "atm_put_1y", Call: false, S: 100, K: 100, R: 0.05, Q: 0, Sigma: 0.2, T: 1, ExpectedPrice: 5.573526022256971, ExpectedDelta: -0.3631693488243809},
	// Hull example 15.6: S=42, K=40, r=10%, sigma=20%, six months
	{Name: "hull_call_6m", Call: true, S: 42, K: 40, R: 0.10, Q: 0, Sigma: 0.2, T: 0.5, ExpectedPrice: 4.759422392871535},
	{Name: "hull_put_6m", Call: false, S: 42, K: 40, R: 0.10, Q: 0, Sigma: 0.2, T: 0.5, ExpectedPrice: 0.8085993729000958},
}

// MarketSnapshot is a small frozen AAPL chain used for batch runs.
// Captured 2025-12-16 for the 2026-01-16 expiry.
var MarketSnapshot = struct {
	Symbol           string
	StockPrice       float64
	ExpirationDate   string
	TimeToExpiration float64
	RiskFreeRate     float64
	Volatility       float64
	Strikes          []float64
}{
	Symbol:           "AAPL",
	StockPrice:       272.225,
	ExpirationDate:   "2026-01-16",
	TimeToExpiration: 0.0849, // 31 days / 365
	RiskFreeRate:     0.05,
	Volatility:       0.25,
	Strikes:          []float64{250, 255, 260, 265, 270, 275, 280, 285, 290, 295, 300},
}
