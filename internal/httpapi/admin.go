package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/cardtrack/presence-server/internal/presence/service"
	"github.com/cardtrack/presence-server/internal/presence/session"
	"github.com/cardtrack/presence-server/internal/presence/store"
	"github.com/cardtrack/presence-server/internal/presence/types"
)

type registerRequest struct {
	CardUID   string `json:"card_uid"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	person, err := s.registration.Register(r.Context(), req.CardUID, req.FirstName, req.LastName)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusBadRequest, struct {
				Error  string            `json:"error"`
				Fields map[string]string `json:"fields"`
			}{Error: "validation_failed", Fields: verr.FieldErrors})
		case errors.Is(err, store.ErrDuplicateCard):
			writeError(w, http.StatusConflict, "duplicate_card", "card UID is already registered")
		default:
			s.logger.Printf("register error: %v", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, person)
}

func (s *Server) handleListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := s.directory.ListPeople(r.Context())
	if err != nil {
		s.logger.Printf("list people error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}
	if people == nil {
		people = []types.Person{}
	}
	writeJSON(w, http.StatusOK, people)
}

func (s *Server) handleRecentLogs(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	logs, err := s.directory.RecentLogs(r.Context(), limit)
	if err != nil {
		s.logger.Printf("recent logs error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}
	if logs == nil {
		logs = []store.PersonLogEntry{}
	}
	writeJSON(w, http.StatusOK, logs)
}

type sessionJSON struct {
	Start     time.Time  `json:"start"`
	End       *time.Time `json:"end,omitempty"`
	Duration  string     `json:"duration"`
	IsCurrent bool       `json:"is_current,omitempty"`
}

type summaryJSON struct {
	FinalizedSessions        int    `json:"finalized_sessions"`
	TotalDuration            string `json:"total_duration"`
	TotalDurationWithCurrent string `json:"total_duration_with_current"`
}

type profileJSON struct {
	Person   types.Person  `json:"person"`
	Sessions []sessionJSON `json:"sessions"`
	Summary  summaryJSON   `json:"summary"`
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	view, err := s.directory.Profile(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "person_not_found", "no person with that id")
			return
		}
		s.logger.Printf("profile error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}

	writeJSON(w, http.StatusOK, profileToJSON(view))
}

func profileToJSON(view service.ProfileView) profileJSON {
	sessions := make([]sessionJSON, 0, len(view.Sessions))
	for _, sess := range view.Sessions {
		sessions = append(sessions, sessionJSON{
			Start:     sess.Start,
			End:       sess.End,
			Duration:  session.FormatDuration(sess.Duration),
			IsCurrent: sess.IsCurrent,
		})
	}

	return profileJSON{
		Person:   view.Person,
		Sessions: sessions,
		Summary: summaryJSON{
			FinalizedSessions:        view.Summary.FinalizedSessions,
			TotalDuration:            session.FormatDuration(view.Summary.Total),
			TotalDurationWithCurrent: session.FormatDuration(view.Summary.TotalWithCurrent),
		},
	}
}
