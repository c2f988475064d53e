package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	contractlifecycle "steward/contexts/vendor-management/contract-lifecycle"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "steward/internal/platform/httpserver/docs"
)

type Server struct {
	mux       *http.ServeMux
	logger    *slog.Logger
	addr      string
	contracts contractlifecycle.Module
}

func New(
	contracts contractlifecycle.Module,
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
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		contracts: contracts,
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

// Handler exposes the mux for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /contracts", s.handleCreateContract)
	s.mux.HandleFunc("GET /contracts", s.handleListContracts)
	s.mux.HandleFunc("GET /contracts/{contract_id}", s.handleGetContract)
	s.mux.HandleFunc("PATCH /contracts/{contract_id}", s.handleUpdateContract)
	s.mux.HandleFunc("DELETE /contracts/{contract_id}", s.handleDeleteContract)
	s.mux.HandleFunc("POST /contracts/{contract_id}/document", s.handleAttachDocument)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
