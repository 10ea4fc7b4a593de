package services

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	greeks "github.com/jwaldner/greeks/greeks_lib"
	"github.com/jwaldner/greeks/internal/config"
	"github.com/jwaldner/greeks/internal/dto"
)

func newService() *RequestService {
	return NewRequestService(config.EngineConfig{BatchSize: 2, DefaultSteps: 150, DefaultPayout: 5})
}

func TestToContractDefaults(t *testing.T) {
	s := newService()
	c, err := s.ToContract(dto.PricingRequest{Symbol: " aapl ", Style: "American", OptionType: "P", Spot: 100, Strike: 90, Volatility: 0.3, TimeToExpiration: 0.5})
	if err != nil {
		t.Fatalf("ToContract: %v", err)
	}
	if c.Symbol != "AAPL" || c.Style != greeks.StyleAmerican || c.OptionType != greeks.Put {
		t.Errorf("unexpected contract header %+v", c)
	}
	if c.Steps != 150 || c.Payout != 5 {
		t.Errorf("expected config defaults, got steps=%d payout=%v", c.Steps, c.Payout)
	}

	steps, payout := 40, 2.5
	c, err = s.ToContract(dto.PricingRequest{OptionType: "call", Steps: &steps, Payout: &payout})
	if err != nil {
		t.Fatalf("ToContract: %v", err)
	}
	if c.Steps != 40 || c.Payout != 2.5 || c.Style != greeks.StyleEuropean {
		t.Errorf("explicit values not applied: %+v", c)
	}
}

func TestToContractRejects(t *testing.T) {
	s := newService()
	zero := 0
	zeroPayout, negativePayout := 0.0, -2.0
	for name, req := range map[string]dto.PricingRequest{
		"style":           {Style: "asian", OptionType: "call"},
		"type":            {OptionType: "forward"},
		"steps":           {OptionType: "call", Steps: &zero},
		"zero payout":     {Style: "binary", OptionType: "call", Payout: &zeroPayout},
		"negative payout": {Style: "binary", OptionType: "put", Payout: &negativePayout},
	} {
		if _, err := s.ToContract(req); !errors.Is(err, ErrBadRequest) {
			t.Errorf("%s: expected ErrBadRequest, got %v", name, err)
		}
	}
}

func TestToPair(t *testing.T) {
	call, put, err := newService().ToPair(dto.PricingRequest{OptionType: "put", Spot: 100, Strike: 100, Volatility: 0.2, TimeToExpiration: 1})
	if err != nil {
		t.Fatalf("ToPair: %v", err)
	}
	if call.OptionType != greeks.Call || put.OptionType != greeks.Put {
		t.Errorf("unexpected legs %v/%v", call.OptionType, put.OptionType)
	}
	if call.StrikePrice != put.StrikePrice || call.Volatility != put.Volatility {
		t.Errorf("legs should share inputs")
	}
}

func TestParseBatchRequest(t *testing.T) {
	s := newService()

	r := httptest.NewRequest("POST", "/api/price/batch", strings.NewReader(`{"contracts":[{"option_type":"call"},{"option_type":"put"}]}`))
	req, err := s.ParseBatchRequest(r)
	if err != nil || len(req.Contracts) != 2 {
		t.Fatalf("expected 2 contracts, got %v / %v", req, err)
	}

	r = httptest.NewRequest("POST", "/api/price/batch", strings.NewReader(`{"contracts":[{},{},{}]}`))
	if _, err := s.ParseBatchRequest(r); !errors.Is(err, ErrBadRequest) {
		t.Errorf("oversized batch: expected ErrBadRequest, got %v", err)
	}

	r = httptest.NewRequest("GET", "/api/price/batch", nil)
	if _, err := s.ParseBatchRequest(r); !errors.Is(err, ErrBadRequest) {
		t.Errorf("GET: expected ErrBadRequest, got %v", err)
	}
}
