package models

import "time"

// ConsentRecord tracks a user's acceptance of a legal document version
type ConsentRecord struct {
	UserID     string            `bson:"user_id" json:"user_id"`
	Document   LegalDocumentKind `bson:"document" json:"document"`
	Locale     string            `bson:"locale" json:"locale"`
	Version    string            `bson:"version" json:"version"` // effective date of the accepted document
	AcceptedAt time.Time         `bson:"accepted_at" json:"accepted_at"`
}

// RecordConsentRequest is the body for the consent endpoint
type RecordConsentRequest struct {
	Document LegalDocumentKind `json:"document" binding:"required"`
	Locale   string            `json:"locale"`
}

// ConsentStatusResponse lists the documents a user has accepted
type ConsentStatusResponse struct {
	Consents []ConsentRecord `json:"consents"`
}
