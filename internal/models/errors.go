package models

import "errors"

// Error constants for onboarding and legal document operations
var (
	ErrInvalidChoice          = errors.New("invalid onboarding choice")
	ErrInvalidUserID          = errors.New("invalid user ID")
	ErrDocumentNotFound       = errors.New("legal document not found for locale")
	ErrUnknownDocumentKind    = errors.New("unknown legal document kind")
	ErrMissingTitle           = errors.New("missing title")
	ErrMissingDates           = errors.New("missing effective or last-updated date")
	ErrNoSections             = errors.New("document has no sections")
	ErrMissingHeading         = errors.New("section missing heading")
	ErrMissingSubsectionTitle = errors.New("subsection missing title")
	ErrInvalidReminderTime    = errors.New("reminder time out of range")
)
