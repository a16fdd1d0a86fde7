package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/cardtrack/presence-server/internal/presence/service"
	"github.com/cardtrack/presence-server/internal/presence/types"
)

type Dependencies struct {
	Logger           *log.Logger
	Addr             string
	ScanService      *service.ScanService
	Registration     *service.RegistrationService
	Directory        *service.DirectoryService
	HeartbeatService *service.HeartbeatService
}

type Server struct {
	httpServer   *http.Server
	logger       *log.Logger
	mux          *http.ServeMux
	scans        *service.ScanService
	registration *service.RegistrationService
	directory    *service.DirectoryService
	heartbeats   *service.HeartbeatService
}

func NewServer(d Dependencies) *Server {
	mux := http.NewServeMux()

	s := &Server{
		logger:       d.Logger,
		mux:          mux,
		scans:        d.ScanService,
		registration: d.Registration,
		directory:    d.Directory,
		heartbeats:   d.HeartbeatService,
	}

	// Scanner-facing: GET keeps the firmware side trivial.
	mux.HandleFunc("GET /scan/{card_uid}", s.handleScan)
	mux.HandleFunc("POST /v1/heartbeat", s.handleHeartbeat)

	// Admin-facing JSON API.
	mux.HandleFunc("POST /v1/people", s.handleRegister)
	mux.HandleFunc("GET /v1/people", s.handleListPeople)
	mux.HandleFunc("GET /v1/people/{id}", s.handleProfile)
	mux.HandleFunc("GET /v1/logs", s.handleRecentLogs)

	handler := loggingMiddleware(d.Logger, mux)

	s.httpServer = &http.Server{
		Addr:              d.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// handleScan maps the engine's outcome onto the status codes the scanner
// firmware keys off: 403 unknown card, 429 cooldown, 200 accepted.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	res, err := s.scans.ProcessScan(r.Context(), r.PathValue("card_uid"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCardID) {
			writeError(w, http.StatusBadRequest, "invalid_card_uid", err.Error())
			return
		}
		s.logger.Printf("scan error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}

	switch res.Status {
	case types.ScanCardUnknown:
		writeJSON(w, http.StatusForbidden, types.ScanUnknownResponse{
			Message: "card is not registered",
			CardUID: res.CardID,
		})
	case types.ScanCooldown:
		writeJSON(w, http.StatusTooManyRequests, types.ScanCooldownResponse{
			Message:          fmt.Sprintf("scanning too fast, wait %ds", res.RemainingSeconds),
			Status:           res.Status,
			RemainingSeconds: res.RemainingSeconds,
		})
	default:
		writeJSON(w, http.StatusOK, types.ScanSuccessResponse{
			Message:  fmt.Sprintf("scan OK: %s %s", res.Action, res.DisplayName),
			Status:   res.Status,
			PersonID: res.PersonID,
			Action:   res.Action,
		})
	}
}

func (s *Server) handleHeartbeat(w http.ResponseWriter, r *http.Request) {
	var req types.HeartbeatRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.heartbeats.Record(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidScannerID) {
			writeError(w, http.StatusBadRequest, "invalid_scanner_id", err.Error())
			return
		}
		s.logger.Printf("heartbeat error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// decodeJSON parses a size-capped JSON body into dst, writing a 400 and
// returning false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return false
	}
	return true
}
