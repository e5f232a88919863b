// Package transport exposes the inventory services as a JSON HTTP API for
// the admin and supervisor clients.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jarda-app/jarda/internal/domain/item"
	"github.com/jarda-app/jarda/internal/domain/session"
	"github.com/jarda-app/jarda/internal/domain/site"
	"github.com/jarda-app/jarda/internal/export"
)

// Services bundles the domain services the API fronts.
type Services struct {
	Sites    *site.Service
	Sessions *session.Service
	Template *item.Service
}

// Server wires HTTP handlers.
type Server struct {
	svc    Services
	logger *slog.Logger
}

// NewRouter creates the API router.
func NewRouter(svc Services, logger *slog.Logger) *chi.Mux {
	srv := &Server{svc: svc, logger: logger}

	r := chi.NewRouter()
	r.Use(requestLogger(logger))

	r.Get("/health", srv.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/sites", func(r chi.Router) {
			r.Get("/", srv.listSites)
			r.Post("/", srv.createSite)
			r.Post("/{id}/rename", srv.renameSite)
			r.Delete("/{id}", srv.deleteSite)
		})

		r.Route("/template-items", func(r chi.Router) {
			r.Get("/", srv.listTemplateItems)
			r.Post("/", srv.addTemplateItem)
			r.Delete("/{id}", srv.deleteTemplateItem)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", srv.listSessions)
			r.Post("/", srv.createSession)
			r.Get("/{id}", srv.getSession)
			r.Get("/{id}/progress", srv.sessionProgress)
			r.Get("/{id}/export", srv.exportSession)
			r.Put("/{id}/items", srv.updateSessionItems)
			r.Put("/{id}/entries", srv.replaceEntries)
			r.Put("/{id}/entries/{itemID}", srv.recordEntry)
			r.Post("/{id}/entries/{itemID}/check", srv.checkAdvance)
			r.Post("/{id}/entries/{itemID}/override", srv.overrideAdvance)
			r.Post("/{id}/submit", srv.submitSession)
			r.Post("/{id}/approve", srv.approveSession)
			r.Post("/{id}/unapprove", srv.unapproveSession)
			r.Post("/{id}/request-modification", srv.requestModification)
		})
	})

	return r
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			if logger != nil {
				logger.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
			}
		})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// --- sites ---

func (s *Server) listSites(w http.ResponseWriter, r *http.Request) {
	sites, err := s.svc.Sites.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sites)
}

type siteRequest struct {
	Name string `json:"name"`
}

func (s *Server) createSite(w http.ResponseWriter, r *http.Request) {
	var req siteRequest
	if !s.decode(w, r, &req) {
		return
	}
	st, err := s.svc.Sites.Create(r.Context(), req.Name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

func (s *Server) renameSite(w http.ResponseWriter, r *http.Request) {
	var req siteRequest
	if !s.decode(w, r, &req) {
		return
	}
	st, err := s.svc.Sites.Rename(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) deleteSite(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Sites.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- template items ---

func (s *Server) listTemplateItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.Template.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) addTemplateItem(w http.ResponseWriter, r *http.Request) {
	var req item.AddRequest
	if !s.decode(w, r, &req) {
		return
	}
	it, err := s.svc.Template.Add(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

func (s *Server) deleteTemplateItem(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Template.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- sessions ---

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	var (
		sessions []session.Session
		err      error
	)
	if siteID := r.URL.Query().Get("site_id"); siteID != "" {
		sessions, err = s.svc.Sessions.ListBySite(r.Context(), siteID)
	} else {
		sessions, err = s.svc.Sessions.List(r.Context())
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

type createSessionRequest struct {
	SiteID    string `json:"siteId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if !s.decode(w, r, &req) {
		return
	}
	sess, err := s.svc.Sessions.Create(r.Context(), session.CreateRequest{
		SiteID:    req.SiteID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.svc.Sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) sessionProgress(w http.ResponseWriter, r *http.Request) {
	sess, err := s.svc.Sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Progress())
}

func (s *Server) exportSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.svc.Sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	file, err := export.Session(sess)
	if err != nil {
		s.writeError(w, err)
		return
	}

	// FormatMediaType percent-encodes the non-ASCII site name into a
	// filename* parameter.
	disposition := mime.FormatMediaType("attachment", map[string]string{
		"filename": export.Filename(sess),
	})
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", disposition)
	if err := file.Write(w); err != nil && s.logger != nil {
		s.logger.Warn("failed to stream export", "session_id", sess.ID, "error", err)
	}
}

type updateItemsRequest struct {
	Items []item.Item `json:"items"`
}

func (s *Server) updateSessionItems(w http.ResponseWriter, r *http.Request) {
	var req updateItemsRequest
	if !s.decode(w, r, &req) {
		return
	}
	sess, err := s.svc.Sessions.UpdateItems(r.Context(), chi.URLParam(r, "id"), req.Items)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

type entriesRequest struct {
	Entries map[string]session.Entry `json:"entries"`
}

func (s *Server) replaceEntries(w http.ResponseWriter, r *http.Request) {
	var req entriesRequest
	if !s.decode(w, r, &req) {
		return
	}
	sess, err := s.svc.Sessions.ReplaceEntries(r.Context(), chi.URLParam(r, "id"), req.Entries)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

type entryRequest struct {
	Quantity *float64 `json:"quantity"`
	Notes    string   `json:"notes"`
}

func (s *Server) recordEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if !s.decode(w, r, &req) {
		return
	}
	sess, err := s.svc.Sessions.RecordEntry(r.Context(),
		chi.URLParam(r, "id"), chi.URLParam(r, "itemID"), req.Quantity, req.Notes)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

type checkRequest struct {
	Quantity *float64 `json:"quantity"`
}

func (s *Server) checkAdvance(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if !s.decode(w, r, &req) {
		return
	}
	result, err := s.svc.Sessions.CheckAdvance(r.Context(),
		chi.URLParam(r, "id"), chi.URLParam(r, "itemID"), req.Quantity)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) overrideAdvance(w http.ResponseWriter, r *http.Request) {
	result := s.svc.Sessions.OverrideAdvance(chi.URLParam(r, "id"), chi.URLParam(r, "itemID"))
	writeJSON(w, http.StatusOK, result)
}

type submitRequest struct {
	Entries map[string]session.Entry `json:"entries"`
}

func (s *Server) submitSession(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if r.ContentLength != 0 && !s.decode(w, r, &req) {
		return
	}
	sess, err := s.svc.Sessions.Submit(r.Context(), chi.URLParam(r, "id"), req.Entries)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) approveSession(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.svc.Sessions.Approve)
}

func (s *Server) unapproveSession(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.svc.Sessions.Unapprove)
}

func (s *Server) requestModification(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.svc.Sessions.RequestModification)
}

func (s *Server) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id string) (*session.Session, error)) {
	sess, err := fn(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// --- helpers ---

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, site.ErrSiteNotFound),
		errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, session.ErrSiteNotFound),
		errors.Is(err, session.ErrItemNotFound):
		status = http.StatusNotFound
	case errors.Is(err, site.ErrInvalidInput),
		errors.Is(err, item.ErrInvalidInput),
		errors.Is(err, session.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, session.ErrInvalidTransition),
		errors.Is(err, session.ErrSessionLocked):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError && s.logger != nil {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
