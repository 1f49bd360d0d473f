package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	profileservice "soundmint/contexts/artist-identity/profile-service"
	workregistry "soundmint/contexts/catalog/work-registry"
	royaltyledger "soundmint/contexts/finance-core/royalty-ledger"
	treasuryservice "soundmint/contexts/platform-treasury/treasury-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "soundmint/internal/platform/httpserver/docs"
)

// callerHeader carries the authenticated identity resolved by the edge proxy.
const callerHeader = "X-Caller-Id"

type Server struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	addr     string
	treasury treasuryservice.Module
	profiles profileservice.Module
	registry workregistry.Module
	royalty  royaltyledger.Module
}

func New(
	treasury treasuryservice.Module,
	profiles profileservice.Module,
	registry workregistry.Module,
	royalty royaltyledger.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		treasury: treasury,
		profiles: profiles,
		registry: registry,
		royalty:  royalty,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /v1/treasury", s.handleTreasuryInitialize)
	s.mux.HandleFunc("GET /v1/treasury", s.handleTreasuryGet)
	s.mux.HandleFunc("PATCH /v1/treasury/config", s.handleTreasuryUpdateConfig)
	s.mux.HandleFunc("PUT /v1/treasury/streaming-provider", s.handleTreasuryUpdateStreamingProvider)
	s.mux.HandleFunc("POST /v1/treasury/withdrawals", s.handleTreasuryWithdraw)

	s.mux.HandleFunc("POST /v1/artists", s.handleProfileCreate)
	s.mux.HandleFunc("GET /v1/artists/{authority}", s.handleProfileGet)
	s.mux.HandleFunc("PATCH /v1/artists/{authority}", s.handleProfileUpdate)
	s.mux.HandleFunc("POST /v1/artists/{authority}/verification", s.handleProfileVerify)

	s.mux.HandleFunc("POST /v1/artists/{authority}/works", s.handleWorkMint)
	s.mux.HandleFunc("GET /v1/artists/{authority}/works", s.handleWorkListByArtist)
	s.mux.HandleFunc("GET /v1/works/{work_id}", s.handleWorkGet)
	s.mux.HandleFunc("PATCH /v1/works/{work_id}", s.handleWorkUpdate)
	s.mux.HandleFunc("POST /v1/collections", s.handleCollectionCreate)
	s.mux.HandleFunc("GET /v1/collections/{collection_id}", s.handleCollectionGet)
	s.mux.HandleFunc("POST /v1/collections/{collection_id}/works", s.handleCollectionAddWork)

	s.mux.HandleFunc("POST /v1/works/{work_id}/split", s.handleSplitCreate)
	s.mux.HandleFunc("GET /v1/works/{work_id}/split", s.handleSplitGet)
	s.mux.HandleFunc("POST /v1/works/{work_id}/distributions", s.handleRevenueDistribute)
	s.mux.HandleFunc("POST /v1/works/{work_id}/revenue", s.handleRevenueTrack)
	s.mux.HandleFunc("GET /v1/works/{work_id}/revenue", s.handleRevenueTrackerGet)
	s.mux.HandleFunc("POST /v1/works/{work_id}/claims", s.handleRevenueClaim)
	s.mux.HandleFunc("POST /v1/streaming/batches", s.handleStreamingBatch)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
