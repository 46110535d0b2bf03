package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/dmitrijs2005/signbook/internal/models"
)

// ErrorPayload is the body of every failed JSON API response.
type ErrorPayload struct {
	Message string `json:"message"`
}

type recordJSON struct {
	ID        int64  `json:"id"`
	FullName  string `json:"fullname"`
	Address   string `json:"address"`
	Signature []byte `json:"signature"`
}

type createdJSON struct {
	ID int64 `json:"id"`
}

type healthJSON struct {
	Status  string `json:"status"`
	Records int64  `json:"records"`
}

func toJSON(r models.Record) recordJSON {
	return recordJSON{ID: r.ID, FullName: r.FullName, Address: r.Address, Signature: r.Signature}
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn(r.Context(), "failed to write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, action string, err error) {
	s.logFailure(r.Context(), action, err)
	status := statusFor(err)

	msg := http.StatusText(status)
	if status != http.StatusInternalServerError {
		msg = err.Error()
	}
	s.writeJSON(w, r, status, ErrorPayload{Message: msg})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	n, err := s.records.Count(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "health check failed", "error", err)
		s.writeJSON(w, r, http.StatusServiceUnavailable, ErrorPayload{Message: "store unavailable"})
		return
	}
	s.writeJSON(w, r, http.StatusOK, healthJSON{Status: "ok", Records: n})
}

func (s *Server) apiList(w http.ResponseWriter, r *http.Request) {
	rows, err := s.records.List(r.Context())
	if err != nil {
		s.writeError(w, r, "list", err)
		return
	}

	out := make([]recordJSON, 0, len(rows))
	for _, row := range rows {
		out = append(out, toJSON(row))
	}
	s.writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) apiGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, "get", err)
		return
	}

	rec, err := s.records.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, "get", err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toJSON(*rec))
}

func (s *Server) apiCreate(w http.ResponseWriter, r *http.Request) {
	in, err := s.readRecordForm(w, r)
	if err != nil {
		s.writeError(w, r, "create", err)
		return
	}

	id, err := s.records.Create(r.Context(), in)
	if err != nil {
		s.writeError(w, r, "create", err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, createdJSON{ID: id})
}

func (s *Server) apiUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, "update", err)
		return
	}

	in, err := s.readRecordForm(w, r)
	if err != nil {
		s.writeError(w, r, "update", err)
		return
	}

	if err := s.records.Update(r.Context(), id, in); err != nil {
		s.writeError(w, r, "update", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apiDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, "delete", err)
		return
	}

	if err := s.records.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, "delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
