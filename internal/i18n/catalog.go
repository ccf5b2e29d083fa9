package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mindpage/app-journal/internal/models"
	"github.com/mindpage/app-journal/internal/observability"
)

//go:embed locales/*.json
var localeFS embed.FS

// localeData is the on-disk shape of one locale file. Documents are optional;
// a locale may ship labels before its documents are translated.
type localeData struct {
	Labels         map[string]string     `json:"labels"`
	PrivacyPolicy  *models.LegalDocument `json:"privacy_policy"`
	TermsOfService *models.LegalDocument `json:"terms_of_service"`
}

// Catalog holds the locale-keyed legal documents and label translations
// compiled into the binary. It is immutable after construction and safe for
// concurrent use.
type Catalog struct {
	defaultLocale string
	entries       map[string]*localeData
	sortedLocales []string
}

// NewCatalog parses and validates every embedded locale file. A malformed
// file is a build artifact problem and fails construction; a document that
// parses but fails validation is dropped whole so callers see absence rather
// than a partial document.
func NewCatalog(defaultLocale string) (*Catalog, error) {
	files, err := fs.Glob(localeFS, "locales/*.json")
	if err != nil {
		return nil, fmt.Errorf("listing locale files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no locale files embedded")
	}

	entries := make(map[string]*localeData, len(files))
	for _, file := range files {
		raw, err := localeFS.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading locale file %s: %w", file, err)
		}

		var data localeData
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("parsing locale file %s: %w", file, err)
		}

		locale := normalizeTag(strings.TrimSuffix(path.Base(file), ".json"))
		data.PrivacyPolicy = validated(locale, models.LegalDocumentPrivacyPolicy, data.PrivacyPolicy)
		data.TermsOfService = validated(locale, models.LegalDocumentTermsOfService, data.TermsOfService)
		entries[locale] = &data
	}

	defaultLocale = normalizeTag(defaultLocale)
	if _, ok := entries[defaultLocale]; !ok {
		return nil, fmt.Errorf("default locale %q has no locale file", defaultLocale)
	}

	sortedLocales := make([]string, 0, len(entries))
	for locale := range entries {
		sortedLocales = append(sortedLocales, locale)
	}
	sort.Strings(sortedLocales)

	return &Catalog{
		defaultLocale: defaultLocale,
		entries:       entries,
		sortedLocales: sortedLocales,
	}, nil
}

func validated(locale string, kind models.LegalDocumentKind, doc *models.LegalDocument) *models.LegalDocument {
	if doc == nil {
		return nil
	}
	if err := doc.Validate(); err != nil {
		observability.Logger().Warn("dropping invalid legal document",
			zap.String("locale", locale),
			zap.String("document", string(kind)),
			zap.Error(err))
		return nil
	}
	return doc
}

// DefaultLocale returns the configured fallback locale.
func (c *Catalog) DefaultLocale() string {
	return c.defaultLocale
}

// Document returns the legal document of the given kind for a locale, or
// absence. An empty locale means the default. Resolution tries the exact tag,
// then the bare language, then any catalog locale sharing the language.
func (c *Catalog) Document(locale string, kind models.LegalDocumentKind) (*models.LegalDocument, bool) {
	resolved, ok := c.Resolve(locale)
	if !ok {
		return nil, false
	}

	entry := c.entries[resolved]
	var doc *models.LegalDocument
	switch kind {
	case models.LegalDocumentPrivacyPolicy:
		doc = entry.PrivacyPolicy
	case models.LegalDocumentTermsOfService:
		doc = entry.TermsOfService
	}
	if doc == nil {
		return nil, false
	}
	return doc, true
}

// Resolve maps a requested tag to a catalog locale. An empty tag resolves to
// the default locale.
func (c *Catalog) Resolve(locale string) (string, bool) {
	tag := normalizeTag(locale)
	if tag == "" {
		return c.defaultLocale, true
	}
	if _, ok := c.entries[tag]; ok {
		return tag, true
	}

	base := baseLanguage(tag)
	if _, ok := c.entries[base]; ok {
		return base, true
	}
	for _, candidate := range c.sortedLocales {
		if baseLanguage(candidate) == base {
			return candidate, true
		}
	}
	return "", false
}

// Negotiate picks a catalog locale from an Accept-Language header value,
// honoring the order the client listed. Quality weights are ignored beyond
// the ordering the client already applied. Falls back to the default locale.
func (c *Catalog) Negotiate(acceptLanguage string) string {
	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.TrimSpace(part)
		if i := strings.IndexByte(tag, ';'); i >= 0 {
			tag = strings.TrimSpace(tag[:i])
		}
		if tag == "" || tag == "*" {
			continue
		}
		if resolved, ok := c.Resolve(tag); ok {
			return resolved
		}
	}
	return c.defaultLocale
}

// Locales lists, in sorted order, the locales carrying a complete document
// set (both privacy policy and terms of service).
func (c *Catalog) Locales() []string {
	complete := make([]string, 0, len(c.sortedLocales))
	for _, locale := range c.sortedLocales {
		entry := c.entries[locale]
		if entry.PrivacyPolicy != nil && entry.TermsOfService != nil {
			complete = append(complete, locale)
		}
	}
	return complete
}

// Translate looks up a dotted-path label key for a locale, falling back to
// the default locale, then to the key itself so a missing translation is
// visible instead of blank.
func (c *Catalog) Translate(locale, key string) string {
	if resolved, ok := c.Resolve(locale); ok {
		if text, ok := c.entries[resolved].Labels[key]; ok {
			return text
		}
	}
	if text, ok := c.entries[c.defaultLocale].Labels[key]; ok {
		return text
	}
	return key
}

// normalizeTag canonicalizes a BCP 47 style tag: lowercase language,
// uppercase region, hyphen separated ("PT_br" -> "pt-BR").
func normalizeTag(tag string) string {
	tag = strings.TrimSpace(strings.ReplaceAll(tag, "_", "-"))
	if tag == "" {
		return ""
	}
	parts := strings.Split(tag, "-")
	parts[0] = strings.ToLower(parts[0])
	for i := 1; i < len(parts); i++ {
		if len(parts[i]) == 2 {
			parts[i] = strings.ToUpper(parts[i])
		}
	}
	return strings.Join(parts, "-")
}

func baseLanguage(tag string) string {
	if i := strings.IndexByte(tag, '-'); i >= 0 {
		return tag[:i]
	}
	return tag
}
