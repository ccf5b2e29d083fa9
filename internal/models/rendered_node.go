package models

// NodeKind classifies a rendered node for the mobile client
type NodeKind string

const (
	NodeLoading         NodeKind = "loading"
	NodeTitle           NodeKind = "title"
	NodeEffectiveDate   NodeKind = "effective_date"
	NodeLastUpdated     NodeKind = "last_updated"
	NodeApplicability   NodeKind = "applicability"
	NodeHeading         NodeKind = "heading"
	NodeSubsectionTitle NodeKind = "subsection_title"
	NodeBullet          NodeKind = "bullet"
	NodeParagraph       NodeKind = "paragraph"
	NodeNotesHeading    NodeKind = "notes_heading"
)

// RenderedNode is one element of a rendered legal document. Key is a
// deterministic positional identity so the client keeps visual identity
// across re-renders of the same document.
type RenderedNode struct {
	Kind  NodeKind `json:"kind"`
	Key   string   `json:"key"`
	Text  string   `json:"text,omitempty"`
	Label string   `json:"label,omitempty"` // date nodes carry label + value
}

// RenderedDocumentResponse is the response format for legal document endpoints
type RenderedDocumentResponse struct {
	Document LegalDocumentKind `json:"document"`
	Locale   string            `json:"locale"`
	Loading  bool              `json:"loading"`
	Nodes    []RenderedNode    `json:"nodes"`
}

// LocalesResponse lists locales with a complete document set
type LocalesResponse struct {
	Default string   `json:"default"`
	Locales []string `json:"locales"`
}
