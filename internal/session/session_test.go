package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurture-ai/network-agent/internal/model"
)

func TestStartNewContactReplacesDraft(t *testing.T) {
	s := NewUserSession("u1")

	first := s.StartNewContact("Jane Doe", map[model.Field]string{
		model.FieldTitle: "CEO",
	})
	require.Equal(t, "Jane Doe", first.Name)
	require.Equal(t, "CEO", first.Title)
	require.True(t, s.HasDraft())

	second := s.StartNewContact("John Smith", nil)
	assert.Equal(t, "John Smith", s.Draft.Name)
	assert.NotSame(t, first, second)
	assert.Equal(t, ActionAdd, s.LastAction)
}

func TestStartNewContactDropsInvalidSeeds(t *testing.T) {
	s := NewUserSession("u1")
	draft := s.StartNewContact("Jane Doe", map[model.Field]string{
		model.FieldEmail:   "not-an-email",
		model.FieldCompany: "Acme",
	})
	assert.Empty(t, draft.Email)
	assert.Equal(t, "Acme", draft.Company)
}

func TestGetOrCreateDraftBackfillsName(t *testing.T) {
	s := NewUserSession("u1")

	draft := s.GetOrCreateDraft("")
	require.NotNil(t, draft)
	assert.Empty(t, draft.Name)

	// Backfill a name onto the unnamed placeholder
	same := s.GetOrCreateDraft("Jane Doe")
	assert.Same(t, draft, same)
	assert.Equal(t, "Jane Doe", draft.Name)

	// An already-set name is never overwritten
	s.GetOrCreateDraft("Someone Else")
	assert.Equal(t, "Jane Doe", draft.Name)
}

func TestUpdateDraft(t *testing.T) {
	s := NewUserSession("u1")

	// No active draft
	assert.False(t, s.UpdateDraft(map[model.Field]string{model.FieldCompany: "Acme"}))

	s.StartNewContact("Jane Doe", nil)

	// At least one accepted field makes the whole call true
	assert.True(t, s.UpdateDraft(map[model.Field]string{
		model.FieldEmail:       "jane@example.com",
		model.FieldLinkedInURL: "https://twitter.com/jane",
	}))
	assert.Equal(t, "jane@example.com", s.Draft.Email)
	assert.Empty(t, s.Draft.LinkedInURL)
	assert.Equal(t, ActionUpdate, s.LastAction)

	// All rejected
	assert.False(t, s.UpdateDraft(map[model.Field]string{
		model.FieldEmail: "still-not-an-email",
	}))
}

func TestApplyFieldsReportsOutcomes(t *testing.T) {
	s := NewUserSession("u1")
	s.StartNewContact("Jane Doe", nil)

	accepted, rejected := s.ApplyFields(map[model.Field]string{
		model.FieldEmail:       "jane@example.com",
		model.FieldPhone:       "123",
		model.FieldCompany:     "Acme",
		model.FieldLinkedInURL: "https://twitter.com/jane",
	})

	assert.ElementsMatch(t, []model.Field{model.FieldEmail, model.FieldCompany}, accepted)
	assert.ElementsMatch(t, []model.Field{model.FieldPhone, model.FieldLinkedInURL}, rejected)
}

func TestAppendResearch(t *testing.T) {
	s := NewUserSession("u1")

	// Silent no-op without a draft
	s.AppendResearch("Met at conference")
	assert.Nil(t, s.Draft)

	s.StartNewContact("Jane Doe", nil)
	s.AppendResearch("Met at conference")
	assert.Contains(t, s.Draft.Notes, "Met at conference")
	assert.Equal(t, ActionResearch, s.LastAction)
}

func TestSetResearchSummaryDelegates(t *testing.T) {
	s := NewUserSession("u1")
	s.SetResearchSummary("ignored, no draft")
	assert.Nil(t, s.Draft)

	s.StartNewContact("Jane Doe", nil)
	s.SetResearchSummary("Runs a payments startup")
	assert.Equal(t, "Runs a payments startup", s.Draft.ResearchSummary)
}

func TestSetResearchSummaryBlankIsNotActivity(t *testing.T) {
	s := NewUserSession("u1")
	s.StartNewContact("Jane Doe", nil)

	sentinel := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	s.LastActivity = sentinel
	s.SetResearchSummary("   ")
	assert.Equal(t, sentinel, s.LastActivity)

	s.SetResearchSummary("Runs a payments startup")
	assert.True(t, s.LastActivity.After(sentinel))
}

func TestStoreSearchResultsReplacesWholesale(t *testing.T) {
	s := NewUserSession("u1")

	s.StoreSearchResults("jane doe berlin", []model.SearchResult{
		{Title: "Jane Doe - CEO at Acme", URL: "https://linkedin.com/in/janedoe"},
	})
	require.Len(t, s.LastSearchResults, 1)

	s.StoreSearchResults("john smith", []model.SearchResult{
		{Title: "John Smith"},
		{Title: "John A. Smith"},
	})
	assert.Equal(t, "john smith", s.LastSearchQuery)
	assert.Len(t, s.LastSearchResults, 2)
}

func TestMarkReadyToSave(t *testing.T) {
	s := NewUserSession("u1")

	// No-op without a draft
	s.MarkReadyToSave()

	s.StartNewContact("Jane Doe", nil)
	s.MarkReadyToSave()
	assert.Equal(t, model.StatusReady, s.Draft.Status)
	assert.Equal(t, ActionReady, s.LastAction)
}

func TestMarkSavedDetachesDraft(t *testing.T) {
	s := NewUserSession("u1")
	s.StartNewContact("Jane Doe", nil)
	s.StoreSearchResults("jane", []model.SearchResult{{Title: "Jane"}})
	s.PendingConfirmation = "save_contact"

	saved := s.MarkSaved()
	require.NotNil(t, saved)
	assert.Equal(t, "Jane Doe", saved.Name)
	assert.Equal(t, model.StatusSaved, saved.Status)

	assert.Nil(t, s.Draft)
	assert.False(t, s.HasDraft())
	assert.Empty(t, s.LastSearchQuery)
	assert.Nil(t, s.LastSearchResults)
	assert.Empty(t, s.PendingConfirmation)
	assert.Equal(t, ActionSaved, s.LastAction)
}

func TestMarkSavedWithoutDraft(t *testing.T) {
	s := NewUserSession("u1")
	assert.Nil(t, s.MarkSaved())
}

func TestClear(t *testing.T) {
	s := NewUserSession("u1")
	s.StartNewContact("Jane Doe", nil)
	s.StoreSearchResults("jane", nil)
	s.PendingConfirmation = "save_contact"

	s.Clear()
	assert.Nil(t, s.Draft)
	assert.False(t, s.HasDraft())
	assert.Empty(t, s.LastSearchQuery)
	assert.Empty(t, s.PendingConfirmation)
	assert.Equal(t, ActionCleared, s.LastAction)
}

func TestHasDraftIgnoresUnnamedPlaceholder(t *testing.T) {
	s := NewUserSession("u1")
	assert.False(t, s.HasDraft())

	s.GetOrCreateDraft("")
	assert.False(t, s.HasDraft(), "unnamed placeholder does not count as active")

	s.GetOrCreateDraft("Jane Doe")
	assert.True(t, s.HasDraft())
}

func TestContextSummary(t *testing.T) {
	s := NewUserSession("u1")
	assert.Equal(t, "No active contact draft.", s.ContextSummary())

	s.StartNewContact("Alice", nil)
	summary := s.ContextSummary()
	assert.Contains(t, summary, "Alice")
	assert.Contains(t, summary, string(model.StatusCollecting))
	assert.Contains(t, summary, string(ActionAdd))
}
