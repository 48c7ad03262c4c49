// Package model defines data structures for the contact session service.
package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DraftStatus represents the lifecycle stage of a contact draft.
type DraftStatus string

const (
	StatusCollecting DraftStatus = "collecting" // still gathering data
	StatusEnriching  DraftStatus = "enriching"  // research in progress
	StatusReview     DraftStatus = "review"     // ready for user review
	StatusReady      DraftStatus = "ready"      // user confirmed, ready to save
	StatusSaved      DraftStatus = "saved"      // handed off to the contact store
)

// Field identifies a ContactDraft field settable through UpdateField. The set
// is closed: an unrecognized field name is a rejection, not an error.
type Field string

const (
	FieldName               Field = "name"
	FieldFirstName          Field = "first_name"
	FieldLastName           Field = "last_name"
	FieldTitle              Field = "title"
	FieldCompany            Field = "company"
	FieldIndustry           Field = "industry"
	FieldCompanyDescription Field = "company_description"
	FieldContactType        Field = "contact_type"
	FieldEmail              Field = "email"
	FieldPhone              Field = "phone"
	FieldLinkedInURL        Field = "linkedin_url"
	FieldCompanyLinkedIn    Field = "company_linkedin"
	FieldWebsite            Field = "website"
	FieldLocation           Field = "location"
)

// ContactDraft is a contact record under construction. It acts as a shopping
// cart for contact data gathered across conversational turns: field values
// arrive out of order, partially, and possibly conflicting, and nothing
// reaches the permanent store until an explicit save.
type ContactDraft struct {
	Name      string `json:"name,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`

	Title              string `json:"title,omitempty"`
	Company            string `json:"company,omitempty"`
	Industry           string `json:"industry,omitempty"`
	CompanyDescription string `json:"company_description,omitempty"`
	ContactType        string `json:"contact_type,omitempty"` // Founder, Enabler, Investor

	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`

	LinkedInURL     string `json:"linkedin_url,omitempty"`
	CompanyLinkedIn string `json:"company_linkedin,omitempty"`
	Website         string `json:"website,omitempty"`

	Location string `json:"location,omitempty"`

	// Notes is append-only; ResearchSummary is last-write-wins.
	Notes           string `json:"notes,omitempty"`
	ResearchSummary string `json:"research_summary,omitempty"`

	Status      DraftStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	LastUpdated time.Time   `json:"last_updated"`
}

// NewContactDraft creates a draft in the collecting state.
func NewContactDraft(name string) *ContactDraft {
	now := time.Now()
	return &ContactDraft{
		Name:        strings.TrimSpace(name),
		Status:      StatusCollecting,
		CreatedAt:   now,
		LastUpdated: now,
	}
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// UpdateField validates value and assigns it to the named field. It returns
// false and leaves the draft untouched when the value is empty, fails the
// field's validation, or the field name is unknown.
func (d *ContactDraft) UpdateField(field Field, value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}

	switch field {
	case FieldEmail:
		if !validEmail(value) {
			return false
		}
	case FieldLinkedInURL, FieldCompanyLinkedIn:
		if !validLinkedIn(value) {
			return false
		}
	case FieldPhone:
		// A number with fewer than 7 digits is rejected outright rather
		// than stored as an empty string.
		value = cleanPhone(value)
		if value == "" {
			return false
		}
	}

	switch field {
	case FieldName:
		d.Name = value
	case FieldFirstName:
		d.FirstName = value
	case FieldLastName:
		d.LastName = value
	case FieldTitle:
		d.Title = value
	case FieldCompany:
		d.Company = value
	case FieldIndustry:
		d.Industry = value
	case FieldCompanyDescription:
		d.CompanyDescription = value
	case FieldContactType:
		d.ContactType = value
	case FieldEmail:
		d.Email = value
	case FieldPhone:
		d.Phone = value
	case FieldLinkedInURL:
		d.LinkedInURL = value
	case FieldCompanyLinkedIn:
		d.CompanyLinkedIn = value
	case FieldWebsite:
		d.Website = value
	case FieldLocation:
		d.Location = value
	default:
		return false
	}

	d.LastUpdated = time.Now()
	return true
}

// AppendNotes appends a timestamped research note. Notes only grow within a
// draft's lifetime; earlier entries are never rewritten or reordered. Empty
// or whitespace-only text is a no-op.
func (d *ContactDraft) AppendNotes(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	entry := fmt.Sprintf("[%s] %s", time.Now().Format("15:04"), text)
	if d.Notes != "" {
		d.Notes += "\n\n" + entry
	} else {
		d.Notes = entry
	}
	d.LastUpdated = time.Now()
}

// SetResearchSummary replaces the research summary wholesale. Last write
// wins; empty text is a no-op.
func (d *ContactDraft) SetResearchSummary(summary string) {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return
	}
	d.ResearchSummary = summary
	d.LastUpdated = time.Now()
}

// IsComplete reports whether the draft has the minimum required data. Name
// is the sole completeness signal.
func (d *ContactDraft) IsComplete() bool {
	return d.Name != ""
}

// MissingFields lists, in fixed order, the important fields still unset.
func (d *ContactDraft) MissingFields() []string {
	missing := []string{}
	if d.Email == "" {
		missing = append(missing, "email")
	}
	if d.Phone == "" {
		missing = append(missing, "phone")
	}
	if d.LinkedInURL == "" {
		missing = append(missing, "LinkedIn")
	}
	if d.Company == "" {
		missing = append(missing, "company")
	}
	return missing
}

// DisplayCard renders a human-readable summary of the draft. Output is a
// pure function of draft state, so identical drafts render identically.
func (d *ContactDraft) DisplayCard() string {
	var lines []string

	if d.Name != "" {
		lines = append(lines, "**"+d.Name+"**")
	}

	switch {
	case d.Title != "" && d.Company != "":
		lines = append(lines, "_"+d.Title+" at "+d.Company+"_")
	case d.Title != "":
		lines = append(lines, "_"+d.Title+"_")
	case d.Company != "":
		lines = append(lines, "_at "+d.Company+"_")
	}

	lines = append(lines, "")

	if d.Email != "" {
		lines = append(lines, "📧 "+d.Email)
	}
	if d.Phone != "" {
		lines = append(lines, "📱 "+d.Phone)
	}
	if d.LinkedInURL != "" {
		lines = append(lines, "🔗 "+d.LinkedInURL)
	}
	if d.Location != "" {
		lines = append(lines, "📍 "+d.Location)
	}
	if d.Industry != "" {
		lines = append(lines, "🏢 "+d.Industry)
	}
	if d.ContactType != "" {
		lines = append(lines, "👤 "+d.ContactType)
	}
	if d.CompanyDescription != "" {
		lines = append(lines, "📄 "+truncate(d.CompanyDescription, 100))
	}

	if d.ResearchSummary != "" {
		lines = append(lines, "", "**Summary:** "+truncate(d.ResearchSummary, 200))
	}

	return strings.Join(lines, "\n")
}

// truncate limits s to max characters, not bytes, so multibyte text is never
// cut mid-rune.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

func validEmail(email string) bool {
	if !strings.Contains(email, "@") {
		return false
	}
	return emailPattern.MatchString(email)
}

func validLinkedIn(url string) bool {
	return strings.Contains(strings.ToLower(url), "linkedin.com")
}

// cleanPhone keeps digits, "+", "-", parentheses and spaces, and returns the
// empty string when fewer than 7 digits remain.
func cleanPhone(phone string) string {
	var b strings.Builder
	digits := 0
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
			b.WriteRune(r)
		case r == '+' || r == '-' || r == '(' || r == ')' || r == ' ':
			b.WriteRune(r)
		}
	}
	if digits < 7 {
		return ""
	}
	return strings.TrimSpace(b.String())
}

// StartDraftRequest is the request to start a new contact draft. Seed fields
// go through the same validation as later updates.
type StartDraftRequest struct {
	Name   string           `json:"name"`
	Fields map[Field]string `json:"fields,omitempty"`
}

// UpdateDraftRequest is the request to update draft fields.
type UpdateDraftRequest struct {
	Fields map[Field]string `json:"fields"`
}

// UpdateDraftResponse reports which fields were accepted and which were
// rejected by validation.
type UpdateDraftResponse struct {
	Accepted []Field    `json:"accepted"`
	Rejected []Field    `json:"rejected"`
	Draft    *DraftView `json:"draft,omitempty"`
}

// AppendNotesRequest is the request to append research notes to the draft.
type AppendNotesRequest struct {
	Text string `json:"text"`
}

// SetSummaryRequest is the request to replace the research summary.
type SetSummaryRequest struct {
	Summary string `json:"summary"`
}

// DraftView is the read-only rendering of the active draft returned to the
// conversation layer.
type DraftView struct {
	Status        DraftStatus `json:"status"`
	Card          string      `json:"card"`
	MissingFields []string    `json:"missing_fields"`
	Complete      bool        `json:"complete"`
	LastUpdated   time.Time   `json:"last_updated"`
}

// View builds the DraftView for the draft's current state.
func (d *ContactDraft) View() *DraftView {
	return &DraftView{
		Status:        d.Status,
		Card:          d.DisplayCard(),
		MissingFields: d.MissingFields(),
		Complete:      d.IsComplete(),
		LastUpdated:   d.LastUpdated,
	}
}
