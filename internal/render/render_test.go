package render

import (
	"testing"

	"github.com/mindpage/app-journal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *models.LegalDocument {
	return &models.LegalDocument{
		Title:         "Privacy Policy",
		EffectiveDate: "January 1, 2026",
		LastUpdated:   "June 15, 2026",
		Intro: []string{
			"Your privacy matters to us.",
			"- We never sell your data",
		},
		Sections: []models.Section{
			{
				Heading:     "Data We Collect",
				Description: "The following data is stored on your device.",
				Subsections: []models.Subsection{
					{
						Title: "Journal Entries",
						Body: []string{
							"Entries are encrypted at rest.",
							"- Text content",
							"- Attached photos",
						},
					},
					{
						Title: "Usage Data",
						Body:  []string{"Anonymous usage statistics."},
					},
				},
			},
			{
				Heading: "Your Rights",
				Subsections: []models.Subsection{
					{
						Title: "Deletion",
						Body:  []string{"• Request deletion at any time"},
					},
				},
			},
		},
		ImportantNotes: []string{"- This policy applies to the mobile app only"},
		Closing:        []string{"Contact us with questions."},
	}
}

var testLabels = Labels{
	EffectiveDate:  "Effective date",
	LastUpdated:    "Last updated",
	ImportantNotes: "Important notes",
}

func TestRenderLoading(t *testing.T) {
	nodes := RenderLoading()
	require.Len(t, nodes, 1)
	assert.Equal(t, models.NodeLoading, nodes[0].Kind)
}

func TestRenderNilDocument(t *testing.T) {
	nodes := RenderDocument(nil, testLabels)
	require.Len(t, nodes, 1)
	assert.Equal(t, models.NodeLoading, nodes[0].Kind)
}

func TestRenderDocumentOrder(t *testing.T) {
	nodes := RenderDocument(sampleDocument(), testLabels)

	kinds := make([]models.NodeKind, len(nodes))
	for i, n := range nodes {
		kinds[i] = n.Kind
	}

	want := []models.NodeKind{
		models.NodeTitle,
		models.NodeEffectiveDate,
		models.NodeLastUpdated,
		models.NodeParagraph,       // intro 0
		models.NodeBullet,          // intro 1
		models.NodeHeading,         // section 0
		models.NodeParagraph,       // section 0 description
		models.NodeSubsectionTitle, // s0 ss0
		models.NodeParagraph,
		models.NodeBullet,
		models.NodeBullet,
		models.NodeSubsectionTitle, // s0 ss1
		models.NodeParagraph,
		models.NodeHeading,         // section 1
		models.NodeSubsectionTitle, // s1 ss0
		models.NodeBullet,
		models.NodeNotesHeading,
		models.NodeBullet,    // note 0
		models.NodeParagraph, // closing 0
	}
	assert.Equal(t, want, kinds)
}

func TestRenderDocumentContent(t *testing.T) {
	nodes := RenderDocument(sampleDocument(), testLabels)

	assert.Equal(t, "Privacy Policy", nodes[0].Text)
	assert.Equal(t, "January 1, 2026", nodes[1].Text)
	assert.Equal(t, "Effective date", nodes[1].Label)
	assert.Equal(t, "June 15, 2026", nodes[2].Text)
	assert.Equal(t, "Last updated", nodes[2].Label)

	// Bullet markers are stripped from displayed text
	assert.Equal(t, "We never sell your data", nodes[4].Text)
	assert.Equal(t, "Request deletion at any time", nodes[15].Text)
}

func TestRenderDocumentApplicability(t *testing.T) {
	doc := sampleDocument()
	doc.Applicability = "These terms apply to all users of the app."
	doc.ImportantNotes = nil

	nodes := RenderDocument(doc, testLabels)
	assert.Equal(t, models.NodeApplicability, nodes[3].Kind)
	assert.Equal(t, "applicability", nodes[3].Key)

	for _, n := range nodes {
		assert.NotEqual(t, models.NodeNotesHeading, n.Kind, "empty notes must not render a heading")
	}
}

func TestRenderDocumentKeysDeterministic(t *testing.T) {
	first := RenderDocument(sampleDocument(), testLabels)
	second := RenderDocument(sampleDocument(), testLabels)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Key, second[i].Key)
	}

	// Keys are unique within a render
	seen := make(map[string]bool)
	for _, n := range first {
		assert.False(t, seen[n.Key], "duplicate key %q", n.Key)
		seen[n.Key] = true
	}
}

func TestRenderDocumentPositionalKeys(t *testing.T) {
	nodes := RenderDocument(sampleDocument(), testLabels)

	byKey := make(map[string]models.RenderedNode)
	for _, n := range nodes {
		byKey[n.Key] = n
	}

	assert.Equal(t, "Data We Collect", byKey["s0"].Text)
	assert.Equal(t, "Journal Entries", byKey["s0.ss0"].Text)
	assert.Equal(t, "Text content", byKey["s0.ss0.l1"].Text)
	assert.Equal(t, "Deletion", byKey["s1.ss0"].Text)
	assert.Equal(t, "Contact us with questions.", byKey["closing.0"].Text)
}
