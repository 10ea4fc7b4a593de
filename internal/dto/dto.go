package dto

// PricingRequest represents a single valuation request
type PricingRequest struct {
	Symbol           string   `json:"symbol"`
	Style            string   `json:"style"`       // european (default), binary, american
	OptionType       string   `json:"option_type"` // call or put; ignored by the pair endpoint
	Spot             float64  `json:"spot"`
	Strike           float64  `json:"strike"`
	Rate             float64  `json:"rate"`
	DividendYield    float64  `json:"dividend_yield"`
	Volatility       float64  `json:"volatility"`
	TimeToExpiration float64  `json:"time_to_expiration"`
	Payout           *float64 `json:"payout,omitempty"`
	Steps            *int     `json:"steps,omitempty"`
}

// BatchRequest represents several valuations priced by the engine in one call
type BatchRequest struct {
	Contracts []PricingRequest `json:"contracts"`
}
