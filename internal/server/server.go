package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ChaseWoodhams/SPNKr/internal/config"
	"github.com/ChaseWoodhams/SPNKr/internal/service"
	"github.com/rs/zerolog"
)

const healthMessage = "Halo Infinite Service Record API is running"

// RecordGetter is the retrieval core as the HTTP layer sees it.
type RecordGetter interface {
	GetServiceRecord(ctx context.Context, gamertag string) (*service.ServiceRecordResult, error)
}

type RecordServer struct {
	records RecordGetter
	webDir  string
	logger  zerolog.Logger
}

func NewRecordServer(records RecordGetter, cfg *config.Config, logger zerolog.Logger) *RecordServer {
	return &RecordServer{records: records, webDir: cfg.WebDir, logger: logger}
}

// Handler builds the route table. Unmatched paths fall through to the
// static handler, which answers with a JSON 404.
func (s *RecordServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/service-record", s.handleServiceRecord)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/favicon.ico", s.handleFavicon)
	mux.HandleFunc("/", s.handleStatic)
	return mux
}

type serviceRecordRequest struct {
	Gamertag string `json:"gamertag"`
}

func (s *RecordServer) handleServiceRecord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req serviceRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.Gamertag == "" {
		s.writeError(w, http.StatusBadRequest, "gamertag is required")
		return
	}

	gamertag := strings.TrimSpace(req.Gamertag)
	if gamertag == "" {
		s.writeError(w, http.StatusBadRequest, "gamertag cannot be empty")
		return
	}

	result, err := s.records.GetServiceRecord(r.Context(), gamertag)
	if err != nil {
		s.logger.Error().Err(err).Str("gamertag", gamertag).Msg("service record retrieval failed")
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *RecordServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": healthMessage,
	})
}

func (s *RecordServer) handleFavicon(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// handleStatic serves the bundled page and its assets. Anything that
// escapes the web directory or does not exist gets a JSON 404.
func (s *RecordServer) handleStatic(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/")
	if name == "" {
		name = "index.html"
	}

	path := filepath.Join(s.webDir, filepath.FromSlash(name))
	rel, err := filepath.Rel(s.webDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		s.writeError(w, http.StatusNotFound, "endpoint not found")
		return
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		s.writeError(w, http.StatusNotFound, "endpoint not found")
		return
	}

	http.ServeFile(w, r, path)
}

func (s *RecordServer) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *RecordServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
