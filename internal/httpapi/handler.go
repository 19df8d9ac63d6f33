// Package httpapi is the phase-view surface: JSON collaborators for the five
// presentation stages. Rendering is a client concern; intake validation and
// phase legality are not, so both are enforced here and below.
package httpapi

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/uschan/reflecting-light/internal/catalog"
	"github.com/uschan/reflecting-light/internal/domain"
	"github.com/uschan/reflecting-light/internal/session"
)

// fatalNotice is the single alert-level message in the whole product, shown
// only when the mandatory text analysis fails.
const fatalNotice = "尘缘未了，连接中断。请重试。"

// burnHoldMillis is the press-and-hold threshold of the visualize ritual.
// Served to clients so every view paces the gesture identically.
const burnHoldMillis = 1500

type Server struct {
	orch *session.Orchestrator
	log  *zap.Logger
}

func NewServer(orch *session.Orchestrator, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{orch: orch, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/api/catalog", s.handleCatalog)
	mux.HandleFunc("/api/session", s.handleSession)
	mux.HandleFunc("/api/intent", s.handleIntent)

	// /api/archive           → GET: full archive
	// /api/archive/{id}/image → GET: image download
	mux.HandleFunc("/api/archive", s.handleArchive)
	mux.HandleFunc("/api/archive/", s.handleArchiveItem)

	return withRequestID(withAccessLog(log, mux))
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type stateResponse struct {
	Phase       session.Phase       `json:"phase"`
	Busy        bool                `json:"busy"`
	Current     *domain.ArchiveItem `json:"current,omitempty"`
	ArchiveSize int                 `json:"archiveSize"`
}

type catalogResponse struct {
	Cards            []domain.MoodCard         `json:"cards"`
	SufferingOptions []catalog.SufferingOption `json:"sufferingOptions"`
	Quotes           []string                  `json:"quotes"`
	BurnHoldMillis   int                       `json:"burnHoldMillis"`
}

type intentRequest struct {
	Intent session.Intent `json:"intent"`
}

type phaseResponse struct {
	Phase session.Phase `json:"phase"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ─────────────────────────────────────────────
// Handlers
// ─────────────────────────────────────────────

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, stateResponse{
		Phase:       s.orch.Phase(),
		Busy:        s.orch.Busy(),
		Current:     s.orch.Current(),
		ArchiveSize: len(s.orch.Archive()),
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, catalogResponse{
		Cards:            catalog.MoodCards,
		SufferingOptions: catalog.SufferingOptions,
		Quotes:           catalog.PreloadedQuotes,
		BurnHoldMillis:   burnHoldMillis,
	})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var input domain.UserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	item, err := s.orch.Submit(r.Context(), input)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, item)
	case errors.Is(err, domain.ErrInvalidInput):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrSessionInFlight):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrIllegalTransition):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		// Fatal session failure: the one generic user-facing notice. The
		// underlying cause stays in the logs.
		s.log.Error("analysis pipeline failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: fatalNotice})
	}
}

func (s *Server) handleIntent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req intentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.Intent == "" {
		badRequest(w, "intent is required")
		return
	}

	phase, err := s.orch.Apply(req.Intent)
	if err != nil {
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, phaseResponse{Phase: phase})
}

func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, s.orch.Archive())
}

func (s *Server) handleArchiveItem(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/archive/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "image" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	item, ok := s.orch.Item(parts[0])
	if !ok || item.GeneratedImage == "" {
		http.NotFound(w, r)
		return
	}

	raw, err := decodeDataURI(item.GeneratedImage)
	if err != nil {
		s.log.Error("stored image undecodable", zap.String("id", item.ID), zap.Error(err))
		internalError(w)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("reflecting-light-%d.png", item.Timestamp)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// decodeDataURI strips a base64 data-URI prefix and decodes the payload.
func decodeDataURI(uri string) ([]byte, error) {
	_, b64, ok := strings.Cut(uri, ";base64,")
	if !ok {
		return nil, errors.New("not a base64 data URI")
	}
	return base64.StdEncoding.DecodeString(b64)
}

// ─────────────────────────────────────────────
// Response helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}

func internalError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}
