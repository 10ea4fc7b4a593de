package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	greeks "github.com/jwaldner/greeks/greeks_lib"
	"github.com/jwaldner/greeks/internal/audit"
	"github.com/jwaldner/greeks/internal/config"
	"github.com/jwaldner/greeks/internal/dto"
	"github.com/jwaldner/greeks/internal/logger"
	"github.com/jwaldner/greeks/internal/models"
	"github.com/jwaldner/greeks/internal/services"
)

// Calculator prices batches of contracts. Satisfied by *greeks.Engine and
// *perf.PerformanceWrapper.
type Calculator interface {
	Calculate(contracts []greeks.OptionContract) ([]greeks.OptionContract, error)
	ActiveMode(n int) greeks.ExecutionMode
}

// PricingHandler handles valuation requests - HTTP layer only
type PricingHandler struct {
	config         *config.Config
	engine         Calculator
	requestService *services.RequestService
	auditor        audit.ValuationAuditor // nil when auditing is disabled
}

// NewPricingHandler creates a pricing handler. auditor may be nil.
func NewPricingHandler(cfg *config.Config, engine Calculator, auditor audit.ValuationAuditor) *PricingHandler {
	return &PricingHandler{
		config:         cfg,
		engine:         engine,
		requestService: services.NewRequestService(cfg.Engine),
		auditor:        auditor,
	}
}

// Register mounts the pricing routes on r
func (h *PricingHandler) Register(r *mux.Router) {
	r.HandleFunc("/api/price", h.PriceHandler).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/price/pair", h.PairHandler).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/price/batch", h.BatchHandler).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/health", h.HealthHandler).Methods("GET")
}

// PriceHandler values a single contract. Domain-invalid inputs are not an
// HTTP error: they come back with valid=false and every field null.
func (h *PricingHandler) PriceHandler(w http.ResponseWriter, r *http.Request) {
	if h.preflight(w, r) {
		return
	}
	start := time.Now()

	req, err := h.requestService.ParsePricingRequest(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	contract, err := h.requestService.ToContract(*req)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	priced, err := h.engine.Calculate([]greeks.OptionContract{contract})
	if err != nil {
		h.writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	result := models.NewValuationResult(priced[0], h.config.Display.Precision)
	h.audit("/api/price", *req, result)

	logger.Debug.Printf("💲 PRICE: %s %s S=%v K=%v -> valid=%v", contract.Style, contract.OptionType, contract.UnderlyingPrice, contract.StrikePrice, result.Valid)

	h.writeJSON(w, http.StatusOK, models.ValuationResponse{
		Success: true,
		Data:    []models.ValuationResult{result},
		Meta:    h.meta(start, priced),
	})
}

// PairHandler values the call and the put for the same inputs
func (h *PricingHandler) PairHandler(w http.ResponseWriter, r *http.Request) {
	if h.preflight(w, r) {
		return
	}
	start := time.Now()

	req, err := h.requestService.ParsePricingRequest(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	call, put, err := h.requestService.ToPair(*req)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	priced, err := h.engine.Calculate([]greeks.OptionContract{call, put})
	if err != nil {
		h.writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	precision := h.config.Display.Precision
	pair := models.PairResult{
		Call:      models.NewValuationResult(priced[0], precision),
		Put:       models.NewValuationResult(priced[1], precision),
		ParityGap: models.FormatValue(parityGap(priced[0], priced[1]), precision, "currency"),
	}
	callReq, putReq := *req, *req
	callReq.OptionType, putReq.OptionType = greeks.Call.String(), greeks.Put.String()
	h.audit("/api/price/pair", callReq, pair.Call)
	h.audit("/api/price/pair", putReq, pair.Put)

	h.writeJSON(w, http.StatusOK, models.PairResponse{
		Success: true,
		Data:    pair,
		Meta:    h.meta(start, priced),
	})
}

// BatchHandler values many contracts through the engine in one call
func (h *PricingHandler) BatchHandler(w http.ResponseWriter, r *http.Request) {
	if h.preflight(w, r) {
		return
	}
	start := time.Now()

	req, err := h.requestService.ParseBatchRequest(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	contracts := make([]greeks.OptionContract, 0, len(req.Contracts))
	for _, item := range req.Contracts {
		c, err := h.requestService.ToContract(item)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, err)
			return
		}
		contracts = append(contracts, c)
	}

	priced, err := h.engine.Calculate(contracts)
	if err != nil {
		h.writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	results := make([]models.ValuationResult, len(priced))
	for i, c := range priced {
		results[i] = models.NewValuationResult(c, h.config.Display.Precision)
		h.audit("/api/price/batch", req.Contracts[i], results[i])
	}

	meta := h.meta(start, priced)
	logger.Info.Printf("📦 BATCH: priced %d contracts (%d invalid) in %.2fms [%s]", meta.ContractCount, meta.InvalidCount, meta.ProcessingTime, meta.ExecutionMode)

	h.writeJSON(w, http.StatusOK, models.ValuationResponse{
		Success: true,
		Data:    results,
		Meta:    meta,
	})
}

// HealthHandler reports that the server is up and how the engine is configured
func (h *PricingHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"execution_mode": h.config.Engine.ExecutionMode,
		"default_steps":  h.config.Engine.DefaultSteps,
		"audit_enabled":  h.auditor != nil,
		"timestamp":      time.Now().Unix(),
	})
}

// parityGap is (C - P) - (S*e^-qT - K*e^-rT) for European pairs, NaN otherwise
func parityGap(call, put greeks.OptionContract) float64 {
	if call.Style != greeks.StyleEuropean || call.Err != nil || put.Err != nil {
		return math.NaN()
	}
	S, K, r, q, T := call.UnderlyingPrice, call.StrikePrice, call.RiskFreeRate, call.DividendYield, call.TimeToExpiration
	forward := S*math.Exp(-q*T) - K*math.Exp(-r*T)
	return (call.Result.Price - put.Result.Price) - forward
}

func (h *PricingHandler) meta(start time.Time, priced []greeks.OptionContract) models.ResponseMetadata {
	invalid := 0
	for _, c := range priced {
		if c.Err != nil || c.Result.IsNaN() {
			invalid++
		}
	}
	return models.ResponseMetadata{
		Timestamp:      time.Now().Format(time.RFC3339),
		ProcessingTime: float64(time.Since(start).Microseconds()) / 1000.0,
		ExecutionMode:  string(h.engine.ActiveMode(len(priced))),
		ContractCount:  len(priced),
		InvalidCount:   invalid,
	}
}

func (h *PricingHandler) audit(endpoint string, req dto.PricingRequest, outcome models.ValuationResult) {
	if h.auditor == nil {
		return
	}
	entry := audit.Entry{
		Timestamp: time.Now(),
		Endpoint:  endpoint,
		Inputs:    requestInputs(req),
		Outcome:   outcome,
	}
	if err := h.auditor.Record(entry); err != nil {
		logger.Warn.Printf("⚠️ AUDIT: dropped %s entry: %v", endpoint, err)
	}
}

func requestInputs(req dto.PricingRequest) map[string]interface{} {
	inputs := map[string]interface{}{
		"symbol":             req.Symbol,
		"style":              req.Style,
		"option_type":        req.OptionType,
		"spot":               req.Spot,
		"strike":             req.Strike,
		"rate":               req.Rate,
		"dividend_yield":     req.DividendYield,
		"volatility":         req.Volatility,
		"time_to_expiration": req.TimeToExpiration,
	}
	if req.Payout != nil {
		inputs["payout"] = *req.Payout
	}
	if req.Steps != nil {
		inputs["steps"] = *req.Steps
	}
	return inputs
}

// preflight sets the CORS headers and answers OPTIONS requests
func (h *PricingHandler) preflight(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

func (h *PricingHandler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error.Printf("❌ JSON encoding failed: %v", err)
	}
}

func (h *PricingHandler) writeError(w http.ResponseWriter, status int, err error) {
	if !errors.Is(err, services.ErrBadRequest) {
		logger.Error.Printf("❌ Pricing request failed: %v", err)
	}
	h.writeJSON(w, status, models.ErrorResponse{Success: false, Error: err.Error()})
}
