// Package session implements per-user draft accumulation state: one session
// per Telegram user, each owning at most one contact draft plus short-lived
// conversational context.
package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/nurture-ai/network-agent/internal/model"
)

// Action tags the most recent session operation. Diagnostics and context
// display only; nothing branches on it.
type Action string

const (
	ActionIdle     Action = "idle"
	ActionAdd      Action = "add"
	ActionUpdate   Action = "update"
	ActionResearch Action = "research"
	ActionReady    Action = "ready"
	ActionSaved    Action = "saved"
	ActionCleared  Action = "cleared"
)

// UserSession holds one user's draft and conversation context. A session is
// not safe for concurrent use: the calling layer serializes turns per user,
// typically by single-threaded per-chat dispatch.
type UserSession struct {
	UserID              string
	Draft               *model.ContactDraft
	LastAction          Action
	LastSearchQuery     string
	LastSearchResults   []model.SearchResult
	PendingConfirmation string
	CreatedAt           time.Time
	LastActivity        time.Time
}

// NewUserSession creates an idle session for the given user.
func NewUserSession(userID string) *UserSession {
	now := time.Now()
	return &UserSession{
		UserID:       userID,
		LastAction:   ActionIdle,
		CreatedAt:    now,
		LastActivity: now,
	}
}

// StartNewContact replaces any existing draft with a fresh one. Prior
// unsaved draft state is discarded without warning; callers confirm intent
// first. Seed fields go through the usual validation and invalid values are
// dropped.
func (s *UserSession) StartNewContact(name string, fields map[model.Field]string) *model.ContactDraft {
	draft := model.NewContactDraft(name)
	for field, value := range fields {
		draft.UpdateField(field, value)
	}
	s.Draft = draft
	s.LastAction = ActionAdd
	s.LastActivity = time.Now()
	return draft
}

// GetOrCreateDraft returns the active draft, creating one when absent. A
// name is only backfilled onto a draft that has none; an already-set name is
// never overwritten.
func (s *UserSession) GetOrCreateDraft(name string) *model.ContactDraft {
	if s.Draft == nil {
		s.Draft = model.NewContactDraft(name)
	} else if name != "" && s.Draft.Name == "" {
		s.Draft.Name = strings.TrimSpace(name)
	}
	return s.Draft
}

// UpdateDraft routes the provided fields through draft validation and
// reports whether at least one was accepted. Returns false when there is no
// active draft.
func (s *UserSession) UpdateDraft(fields map[model.Field]string) bool {
	accepted, _ := s.ApplyFields(fields)
	return len(accepted) > 0
}

// ApplyFields updates each provided non-empty field and reports which were
// accepted and which were rejected by validation. Both lists are nil when
// no draft exists.
func (s *UserSession) ApplyFields(fields map[model.Field]string) (accepted, rejected []model.Field) {
	if s.Draft == nil {
		return nil, nil
	}

	for field, value := range fields {
		if strings.TrimSpace(value) == "" {
			continue
		}
		if s.Draft.UpdateField(field, value) {
			accepted = append(accepted, field)
		} else {
			rejected = append(rejected, field)
		}
	}

	if len(accepted) > 0 {
		s.LastAction = ActionUpdate
		s.LastActivity = time.Now()
	}
	return accepted, rejected
}

// AppendResearch appends findings to the draft notes. No-op without a
// draft; callers check HasDraft first when failure visibility matters.
func (s *UserSession) AppendResearch(text string) {
	if s.Draft == nil {
		return
	}
	s.Draft.AppendNotes(text)
	s.LastAction = ActionResearch
	s.LastActivity = time.Now()
}

// SetResearchSummary replaces the draft's research summary. No-op without a
// draft or with blank text; a no-op does not count as activity.
func (s *UserSession) SetResearchSummary(summary string) {
	if s.Draft == nil || strings.TrimSpace(summary) == "" {
		return
	}
	s.Draft.SetResearchSummary(summary)
	s.LastActivity = time.Now()
}

// StoreSearchResults replaces the last-search cache wholesale, whether or
// not a draft exists.
func (s *UserSession) StoreSearchResults(query string, results []model.SearchResult) {
	s.LastSearchQuery = query
	s.LastSearchResults = results
	s.LastActivity = time.Now()
}

// MarkReadyToSave flags the draft as user-confirmed. No-op without a draft.
func (s *UserSession) MarkReadyToSave() {
	if s.Draft == nil {
		return
	}
	s.Draft.Status = model.StatusReady
	s.LastAction = ActionReady
	s.LastActivity = time.Now()
}

// MarkSaved detaches and returns the draft, clearing the search cache and
// any pending confirmation. The caller is expected to have persisted the
// draft already. Returns nil when there was nothing to save; that is a
// normal condition, not an error.
func (s *UserSession) MarkSaved() *model.ContactDraft {
	saved := s.Draft
	if saved != nil {
		saved.Status = model.StatusSaved
	}
	s.Draft = nil
	s.LastAction = ActionSaved
	s.LastSearchQuery = ""
	s.LastSearchResults = nil
	s.PendingConfirmation = ""
	s.LastActivity = time.Now()
	return saved
}

// Clear abandons the draft and resets conversational context without
// returning the discarded draft. This is the abandon/restart path; MarkSaved
// is the commit path.
func (s *UserSession) Clear() {
	s.Draft = nil
	s.LastAction = ActionCleared
	s.LastSearchQuery = ""
	s.LastSearchResults = nil
	s.PendingConfirmation = ""
	s.LastActivity = time.Now()
}

// HasDraft reports whether an active, named draft exists. An unnamed
// placeholder created by GetOrCreateDraft does not count as active.
func (s *UserSession) HasDraft() bool {
	return s.Draft != nil && s.Draft.Name != ""
}

// ContextSummary is a one-line session description for diagnostics and
// prompt context.
func (s *UserSession) ContextSummary() string {
	if s.Draft == nil {
		return "No active contact draft."
	}
	return fmt.Sprintf("Working on: %s | Status: %s | Last action: %s",
		s.Draft.Name, s.Draft.Status, s.LastAction)
}
