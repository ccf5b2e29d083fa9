package models

import "fmt"

// LegalDocumentKind identifies which legal document is being requested
type LegalDocumentKind string

const (
	LegalDocumentPrivacyPolicy  LegalDocumentKind = "privacy_policy"
	LegalDocumentTermsOfService LegalDocumentKind = "terms_of_service"
)

// LegalDocument represents a localized legal document (privacy policy or
// terms of service). Date fields are opaque display strings and are never
// parsed. The document is read-only: it is sourced from the locale catalog
// and never mutated by handlers.
type LegalDocument struct {
	Title          string    `json:"title"`
	EffectiveDate  string    `json:"effective_date"`
	LastUpdated    string    `json:"last_updated"`
	Applicability  string    `json:"applicability,omitempty"` // terms of service only
	Intro          []string  `json:"intro"`
	Sections       []Section `json:"sections"`
	ImportantNotes []string  `json:"important_notes,omitempty"` // privacy policy only
	Closing        []string  `json:"closing"`
}

// Section is an ordered group of subsections under a heading
type Section struct {
	Heading     string       `json:"heading"`
	Description string       `json:"description,omitempty"`
	Subsections []Subsection `json:"subsections"`
}

// Subsection is a titled block of body lines
type Subsection struct {
	Title string   `json:"title"`
	Body  []string `json:"body"`
}

// Validate checks that a document loaded from the catalog is complete enough
// to render. A document failing validation is dropped whole so the renderer
// only ever sees fully present documents or absence.
func (d *LegalDocument) Validate() error {
	if d.Title == "" {
		return fmt.Errorf("legal document: %w", ErrMissingTitle)
	}
	if d.EffectiveDate == "" || d.LastUpdated == "" {
		return fmt.Errorf("legal document %q: %w", d.Title, ErrMissingDates)
	}
	if len(d.Sections) == 0 {
		return fmt.Errorf("legal document %q: %w", d.Title, ErrNoSections)
	}
	for i, sec := range d.Sections {
		if sec.Heading == "" {
			return fmt.Errorf("section %d: %w", i, ErrMissingHeading)
		}
		for j, sub := range sec.Subsections {
			if sub.Title == "" {
				return fmt.Errorf("section %d subsection %d: %w", i, j, ErrMissingSubsectionTitle)
			}
		}
	}
	return nil
}
