package model

import (
	"strings"
	"time"
)

const (
	// ContactSource marks every record saved through this service.
	ContactSource = "telegram"
	// ContactStatus is the store-facing status of a freshly saved contact,
	// distinct from the draft's own lifecycle status.
	ContactStatus = "active"
)

// ContactRecord is the input shape handed to the contact store on save.
// Underscore-prefixed JSON keys mark extended fields the destination schema
// may not carry yet; they ride along for reference.
type ContactRecord struct {
	ID        string `json:"id,omitempty"`
	FullName  string `json:"full_name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
	Source    string `json:"source"`
	Status    string `json:"status"`

	Title              string `json:"_title,omitempty"`
	LinkedInURL        string `json:"_linkedin_url,omitempty"`
	Industry           string `json:"_industry,omitempty"`
	Location           string `json:"_location,omitempty"`
	ContactType        string `json:"_contact_type,omitempty"`
	CompanyDescription string `json:"_company_description,omitempty"`
	Notes              string `json:"_notes,omitempty"`
	ResearchSummary    string `json:"_research_summary,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
}

// ContactRecord converts the draft to the contact-store input shape. First
// and last name are derived from Name when not set explicitly: the first
// whitespace-delimited token is the first name, the remainder the last name.
func (d *ContactDraft) ContactRecord() *ContactRecord {
	firstName := d.FirstName
	lastName := d.LastName

	if d.Name != "" && firstName == "" {
		parts := strings.Fields(d.Name)
		if len(parts) > 0 {
			firstName = parts[0]
			lastName = strings.Join(parts[1:], " ")
		}
	}

	return &ContactRecord{
		FullName:  d.Name,
		FirstName: firstName,
		LastName:  lastName,
		Email:     d.Email,
		Phone:     d.Phone,
		Company:   d.Company,
		Source:    ContactSource,
		Status:    ContactStatus,

		Title:              d.Title,
		LinkedInURL:        d.LinkedInURL,
		Industry:           d.Industry,
		Location:           d.Location,
		ContactType:        d.ContactType,
		CompanyDescription: d.CompanyDescription,
		Notes:              d.Notes,
		ResearchSummary:    d.ResearchSummary,
	}
}
