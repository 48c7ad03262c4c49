// Package handler provides HTTP handlers for the API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/nurture-ai/network-agent/internal/middleware"
	"github.com/nurture-ai/network-agent/internal/model"
	"github.com/nurture-ai/network-agent/internal/service"
	"github.com/nurture-ai/network-agent/internal/session"
	"github.com/nurture-ai/network-agent/pkg/logger"
	"github.com/nurture-ai/network-agent/pkg/metrics"
)

// SessionHandler handles session and draft endpoints.
type SessionHandler struct {
	sessions *session.Store
	contacts *service.ContactService
	logger   *logger.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessions *session.Store, contacts *service.ContactService, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		contacts: contacts,
		logger:   log,
	}
}

// userID extracts and authorizes the path user id. A token may only act on
// its own session unless it carries the admin scope.
func (h *SessionHandler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := chi.URLParam(r, "userID")
	if err := middleware.ValidateUserID(userID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}

	if auth := middleware.GetUserID(r.Context()); auth != "" && auth != userID &&
		!middleware.HasScope(r.Context(), "admin") {
		writeError(w, http.StatusForbidden, "token not valid for this user")
		return "", false
	}

	return userID, true
}

// StartDraft handles POST /api/v1/sessions/{userID}/draft
func (h *SessionHandler) StartDraft(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req model.StartDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateContactName(req.Name); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess := h.sessions.GetOrCreate(userID)
	draft := sess.StartNewContact(req.Name, req.Fields)

	writeJSON(w, http.StatusCreated, draft.View())
}

// GetDraft handles GET /api/v1/sessions/{userID}/draft
func (h *SessionHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	sess, ok := h.sessions.Get(userID)
	if !ok || sess.Draft == nil {
		writeError(w, http.StatusNotFound, "no active draft")
		return
	}

	writeJSON(w, http.StatusOK, sess.Draft.View())
}

// UpdateDraft handles PATCH /api/v1/sessions/{userID}/draft
func (h *SessionHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req model.UpdateDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Fields) == 0 {
		writeError(w, http.StatusBadRequest, "no fields provided")
		return
	}

	sess, ok := h.sessions.Get(userID)
	if !ok || sess.Draft == nil {
		writeError(w, http.StatusNotFound, "no active draft")
		return
	}

	accepted, rejected := sess.ApplyFields(req.Fields)
	for _, f := range accepted {
		metrics.RecordFieldUpdate(string(f), true)
	}
	for _, f := range rejected {
		metrics.RecordFieldUpdate(string(f), false)
	}
	sortFields(accepted)
	sortFields(rejected)

	writeJSON(w, http.StatusOK, model.UpdateDraftResponse{
		Accepted: emptyIfNil(accepted),
		Rejected: emptyIfNil(rejected),
		Draft:    sess.Draft.View(),
	})
}

// AppendNotes handles POST /api/v1/sessions/{userID}/draft/notes
func (h *SessionHandler) AppendNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req model.AppendNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := middleware.ValidateNote(req.Text); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, ok := h.sessions.Get(userID)
	if !ok || sess.Draft == nil {
		writeError(w, http.StatusNotFound, "no active draft")
		return
	}

	sess.AppendResearch(req.Text)
	metrics.NotesAppendedTotal.Inc()

	w.WriteHeader(http.StatusNoContent)
}

// SetSummary handles POST /api/v1/sessions/{userID}/draft/summary
func (h *SessionHandler) SetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req model.SetSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := middleware.ValidateSummary(req.Summary); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, ok := h.sessions.Get(userID)
	if !ok || sess.Draft == nil {
		writeError(w, http.StatusNotFound, "no active draft")
		return
	}

	sess.SetResearchSummary(req.Summary)

	w.WriteHeader(http.StatusNoContent)
}

// MarkReady handles POST /api/v1/sessions/{userID}/draft/ready
func (h *SessionHandler) MarkReady(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	sess, ok := h.sessions.Get(userID)
	if !ok || !sess.HasDraft() {
		writeError(w, http.StatusNotFound, "no active draft")
		return
	}

	sess.MarkReadyToSave()

	writeJSON(w, http.StatusOK, sess.Draft.View())
}

// SaveDraft handles POST /api/v1/sessions/{userID}/draft/save
func (h *SessionHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	record, err := h.contacts.SaveDraft(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoDraft):
			writeError(w, http.StatusNotFound, "no active draft")
		case errors.Is(err, service.ErrIncomplete):
			writeError(w, http.StatusConflict, "draft has no name yet")
		default:
			h.logger.Error("failed to save draft",
				zap.String("user_id", userID),
				zap.Error(err),
			)
			writeError(w, http.StatusInternalServerError, "failed to save contact")
		}
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// StoreSearch handles POST /api/v1/sessions/{userID}/search
func (h *SessionHandler) StoreSearch(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req model.StoreSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := middleware.ValidateSearchQuery(req.Query); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess := h.sessions.GetOrCreate(userID)
	sess.StoreSearchResults(req.Query, req.Results)

	w.WriteHeader(http.StatusNoContent)
}

// GetContext handles GET /api/v1/sessions/{userID}
func (h *SessionHandler) GetContext(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	sess, ok := h.sessions.Get(userID)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":       sess.UserID,
		"summary":       sess.ContextSummary(),
		"last_action":   sess.LastAction,
		"has_draft":     sess.HasDraft(),
		"created_at":    sess.CreatedAt,
		"last_activity": sess.LastActivity,
	})
}

// ClearSession handles DELETE /api/v1/sessions/{userID}
func (h *SessionHandler) ClearSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	// Safe to call for unknown users.
	h.sessions.Clear(userID)

	w.WriteHeader(http.StatusNoContent)
}

// ListSessions handles GET /api/v1/sessions (admin scope)
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count": h.sessions.Len(),
		"users": h.sessions.Users(),
	})
}

func sortFields(fields []model.Field) {
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
}

func emptyIfNil(fields []model.Field) []model.Field {
	if fields == nil {
		return []model.Field{}
	}
	return fields
}
