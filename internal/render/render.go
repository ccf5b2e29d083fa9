package render

import (
	"fmt"

	"github.com/mindpage/app-journal/internal/models"
)

// Labels carries the localized strings the renderer attaches to metadata
// nodes. They come from the translation table, not from the document itself.
type Labels struct {
	EffectiveDate  string
	LastUpdated    string
	ImportantNotes string
}

// RenderLoading produces the placeholder tree shown while a document is
// absent for the active locale. Always exactly one node.
func RenderLoading() []models.RenderedNode {
	return []models.RenderedNode{
		{Kind: models.NodeLoading, Key: "loading"},
	}
}

// RenderDocument flattens a legal document into an ordered node list. Output
// order is strictly the declaration order of the document's intro, sections,
// subsections and lines; the renderer never sorts, filters or deduplicates.
// Node keys are positional (section index, subsection index, line index) so
// re-renders of the same document yield identical identities.
func RenderDocument(doc *models.LegalDocument, labels Labels) []models.RenderedNode {
	if doc == nil {
		return RenderLoading()
	}

	nodes := []models.RenderedNode{
		{Kind: models.NodeTitle, Key: "title", Text: doc.Title},
		{Kind: models.NodeEffectiveDate, Key: "effective-date", Label: labels.EffectiveDate, Text: doc.EffectiveDate},
		{Kind: models.NodeLastUpdated, Key: "last-updated", Label: labels.LastUpdated, Text: doc.LastUpdated},
	}

	if doc.Applicability != "" {
		nodes = append(nodes, models.RenderedNode{
			Kind: models.NodeApplicability,
			Key:  "applicability",
			Text: doc.Applicability,
		})
	}

	for i, line := range doc.Intro {
		nodes = append(nodes, lineNode(line, fmt.Sprintf("intro.%d", i)))
	}

	for si, section := range doc.Sections {
		nodes = append(nodes, models.RenderedNode{
			Kind: models.NodeHeading,
			Key:  fmt.Sprintf("s%d", si),
			Text: section.Heading,
		})

		if section.Description != "" {
			nodes = append(nodes, lineNode(section.Description, fmt.Sprintf("s%d.desc", si)))
		}

		for bi, sub := range section.Subsections {
			nodes = append(nodes, models.RenderedNode{
				Kind: models.NodeSubsectionTitle,
				Key:  fmt.Sprintf("s%d.ss%d", si, bi),
				Text: sub.Title,
			})

			for li, line := range sub.Body {
				nodes = append(nodes, lineNode(line, fmt.Sprintf("s%d.ss%d.l%d", si, bi, li)))
			}
		}
	}

	if len(doc.ImportantNotes) > 0 {
		nodes = append(nodes, models.RenderedNode{
			Kind: models.NodeNotesHeading,
			Key:  "notes",
			Text: labels.ImportantNotes,
		})
		for i, line := range doc.ImportantNotes {
			nodes = append(nodes, lineNode(line, fmt.Sprintf("notes.%d", i)))
		}
	}

	for i, line := range doc.Closing {
		nodes = append(nodes, lineNode(line, fmt.Sprintf("closing.%d", i)))
	}

	return nodes
}

func lineNode(line, key string) models.RenderedNode {
	classified := ClassifyLine(line)
	kind := models.NodeParagraph
	if classified.Kind == Bullet {
		kind = models.NodeBullet
	}
	return models.RenderedNode{Kind: kind, Key: key, Text: classified.Text}
}
