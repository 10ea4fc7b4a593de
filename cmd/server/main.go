package main

import (
	"fmt"
	"log"
	"net/http"

	greeks "github.com/jwaldner/greeks/greeks_lib"
	"github.com/jwaldner/greeks/internal/audit"
	"github.com/jwaldner/greeks/internal/config"
	"github.com/jwaldner/greeks/internal/handlers"
	"github.com/jwaldner/greeks/internal/logger"
	"github.com/jwaldner/greeks/internal/perf"

	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load()

	// Initialize proper logging with config level and file path
	if err := logger.InitWithConfig(cfg.Logging.LogLevel, cfg.Logging.LogFile); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logger.Close()
	logger.Always.Printf("🚀 Greeks pricing server starting - Port: %s", cfg.Port)

	if cfg.Logging.LogLevel == "verbose" {
		fmt.Printf("⚠️  VERBOSE LOGGING ENABLED - per-request pricing details will be logged to %s\n", cfg.Logging.LogFile)
	}

	// Initialize engine based on configuration
	executionMode := cfg.Engine.ExecutionMode
	if executionMode == "" {
		executionMode = "auto" // fallback to auto if not set
	}
	engine := greeks.NewEngineForced(executionMode, cfg.Engine.Workers)
	logger.Always.Printf("🔧 EXECUTION MODE: %s (%d workers)", engine.Mode(), engine.Workers())

	calculator := perf.NewPerformanceWrapper(engine)
	defer calculator.Close()

	var auditor audit.ValuationAuditor
	if cfg.Audit.Enabled {
		fa, err := audit.NewFileAuditor(cfg.Audit.File, 1000)
		if err != nil {
			log.Fatalf("Failed to open audit file: %v", err)
		}
		defer fa.Close()
		auditor = fa
		logger.Always.Printf("📋 AUDIT: recording valuations to %s", cfg.Audit.File)
	}

	pricingHandler := handlers.NewPricingHandler(cfg, calculator, auditor)

	// Setup router
	r := mux.NewRouter()
	pricingHandler.Register(r)

	// Start server
	fmt.Printf("🌐 Server starting on http://localhost:%s\n", cfg.Port)
	logger.Always.Printf("🌐 Server starting on http://localhost:%s", cfg.Port)

	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		logger.Error.Printf("Server failed to start: %v", err)
	}
}
