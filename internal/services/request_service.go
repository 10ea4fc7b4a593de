package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	greeks "github.com/jwaldner/greeks/greeks_lib"
	"github.com/jwaldner/greeks/internal/config"
	"github.com/jwaldner/greeks/internal/dto"
)

// ErrBadRequest marks requests rejected before pricing
var ErrBadRequest = errors.New("bad request")

// RequestService handles HTTP request parsing
type RequestService struct {
	defaultSteps  int
	defaultPayout float64
	maxBatch      int
}

// NewRequestService creates a request service using the engine defaults
func NewRequestService(cfg config.EngineConfig) *RequestService {
	return &RequestService{
		defaultSteps:  cfg.DefaultSteps,
		defaultPayout: cfg.DefaultPayout,
		maxBatch:      cfg.BatchSize,
	}
}

// ParsePricingRequest decodes a single valuation request
func (s *RequestService) ParsePricingRequest(r *http.Request) (*dto.PricingRequest, error) {
	if r.Method != http.MethodPost {
		return nil, fmt.Errorf("%w: method not allowed: %s", ErrBadRequest, r.Method)
	}

	var req dto.PricingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: failed to decode request: %v", ErrBadRequest, err)
	}
	return &req, nil
}

// ParseBatchRequest decodes a batch request and enforces the batch size limit
func (s *RequestService) ParseBatchRequest(r *http.Request) (*dto.BatchRequest, error) {
	if r.Method != http.MethodPost {
		return nil, fmt.Errorf("%w: method not allowed: %s", ErrBadRequest, r.Method)
	}

	var req dto.BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: failed to decode request: %v", ErrBadRequest, err)
	}

	if len(req.Contracts) == 0 {
		return nil, fmt.Errorf("%w: contracts are required", ErrBadRequest)
	}
	if s.maxBatch > 0 && len(req.Contracts) > s.maxBatch {
		return nil, fmt.Errorf("%w: %d contracts exceeds batch size %d", ErrBadRequest, len(req.Contracts), s.maxBatch)
	}
	return &req, nil
}

// ToContract converts a request into an engine contract, applying defaults.
// Domain checks on the numbers are left to the engine so that invalid values
// come back as the NaN sentinel rather than a transport error.
func (s *RequestService) ToContract(req dto.PricingRequest) (greeks.OptionContract, error) {
	style, err := greeks.ParseStyle(req.Style)
	if err != nil {
		return greeks.OptionContract{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	typ, err := greeks.ParseType(req.OptionType)
	if err != nil {
		return greeks.OptionContract{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	c := greeks.OptionContract{
		Symbol:           strings.TrimSpace(strings.ToUpper(req.Symbol)),
		Style:            style,
		OptionType:       typ,
		UnderlyingPrice:  req.Spot,
		StrikePrice:      req.Strike,
		RiskFreeRate:     req.Rate,
		DividendYield:    req.DividendYield,
		Volatility:       req.Volatility,
		TimeToExpiration: req.TimeToExpiration,
		Payout:           s.defaultPayout,
		Steps:            s.defaultSteps,
	}

	if req.Payout != nil {
		// the engine reads 0 as "use the default"
		if !(*req.Payout > 0) {
			return greeks.OptionContract{}, fmt.Errorf("%w: payout must be positive, got %v", ErrBadRequest, *req.Payout)
		}
		c.Payout = *req.Payout
	}
	if req.Steps != nil {
		if *req.Steps < 1 {
			return greeks.OptionContract{}, fmt.Errorf("%w: steps must be at least 1, got %d", ErrBadRequest, *req.Steps)
		}
		c.Steps = *req.Steps
	}
	return c, nil
}

// ToPair builds call and put contracts from the same inputs
func (s *RequestService) ToPair(req dto.PricingRequest) (call, put greeks.OptionContract, err error) {
	req.OptionType = "call"
	if call, err = s.ToContract(req); err != nil {
		return
	}
	put = call
	put.OptionType = greeks.Put
	return
}
