package taxonomy

import (
	"regexp"
	"strings"
)

// Taxonomy names for the generic Resolve/All lookups. These match the DIWOO
// element names the value lists appear under.
const (
	TaxonomyCategories     = "informatiecategorieen"
	TaxonomyDocumentTypes  = "documentsoorten"
	TaxonomyHandlingTypes  = "soorthandelingen"
	TaxonomyLanguages      = "talen"
	TaxonomyRelationTypes  = "documentrelaties"
	TaxonomyRemovalReasons = "redenenverwijdering"
)

// Entry is the flat, taxonomy-agnostic view of a value-list entry.
type Entry struct {
	Code    string
	Name    string
	Label   string
	Article string
	URI     string
}

// codePattern matches a TOOI code as the trailing path segment of a URI,
// e.g. "c_4edc7ff0" or "c_woo_besluit".
var codePattern = regexp.MustCompile(`(c_[a-z0-9_]+)$`)

// CodeFromURI extracts the trailing TOOI code from a resource URI. Returns
// the empty string when the URI carries no recognizable code.
func CodeFromURI(uri string) string {
	return codePattern.FindString(uri)
}

// NormalizeName canonicalizes an LLM-proposed symbolic name: trims
// whitespace, uppercases, and replaces spaces and hyphens with underscores.
func NormalizeName(name string) string {
	n := strings.ToUpper(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, " ", "_")
	n = strings.ReplaceAll(n, "-", "_")
	return n
}

// Resolve looks up a code in the named taxonomy. The bool result is false
// for unknown taxonomies and unknown codes; callers treat that as "absent",
// never as a failure.
func Resolve(taxonomy, code string) (Entry, bool) {
	switch taxonomy {
	case TaxonomyCategories:
		if c, ok := CategoryByCode(code); ok {
			return Entry{Code: c.Code(), Name: c.Name(), Label: c.Label(), Article: c.Article(), URI: c.URI()}, true
		}
	case TaxonomyDocumentTypes:
		if d, ok := DocumentTypeByCode(code); ok {
			return Entry{Code: d.Code(), Name: d.Name(), Label: d.Label(), URI: d.URI()}, true
		}
	case TaxonomyHandlingTypes:
		if h, ok := HandlingTypeByCode(code); ok {
			return Entry{Code: h.Code(), Label: h.Label(), URI: h.URI()}, true
		}
	case TaxonomyLanguages:
		if l, ok := LanguageByCode(code); ok {
			return Entry{Code: l.Code(), Label: l.Label(), URI: l.URI()}, true
		}
	case TaxonomyRelationTypes:
		if r, ok := RelationTypeByCode(code); ok {
			return Entry{Code: r.Code(), Label: r.Label(), URI: r.URI()}, true
		}
	case TaxonomyRemovalReasons:
		if r, ok := RemovalReasonByCode(code); ok {
			return Entry{Code: r.Code(), Label: r.Label(), URI: r.URI()}, true
		}
	}
	return Entry{}, false
}

// All returns every entry of the named taxonomy in its stable list order,
// or nil for an unknown taxonomy name.
func All(taxonomy string) []Entry {
	switch taxonomy {
	case TaxonomyCategories:
		out := make([]Entry, 0, len(categoryOrder))
		for _, c := range categoryOrder {
			out = append(out, Entry{Code: c.Code(), Name: c.Name(), Label: c.Label(), Article: c.Article(), URI: c.URI()})
		}
		return out
	case TaxonomyDocumentTypes:
		out := make([]Entry, 0, len(docTypeOrder))
		for _, d := range docTypeOrder {
			out = append(out, Entry{Code: d.Code(), Name: d.Name(), Label: d.Label(), URI: d.URI()})
		}
		return out
	case TaxonomyHandlingTypes:
		out := make([]Entry, 0, len(handlingOrder))
		for _, h := range handlingOrder {
			out = append(out, Entry{Code: h.Code(), Label: h.Label(), URI: h.URI()})
		}
		return out
	case TaxonomyLanguages:
		out := make([]Entry, 0, len(languageOrder))
		for _, l := range languageOrder {
			out = append(out, Entry{Code: l.Code(), Label: l.Label(), URI: l.URI()})
		}
		return out
	case TaxonomyRelationTypes:
		out := make([]Entry, 0, len(relationOrder))
		for _, r := range relationOrder {
			out = append(out, Entry{Code: r.Code(), Label: r.Label(), URI: r.URI()})
		}
		return out
	case TaxonomyRemovalReasons:
		out := make([]Entry, 0, len(removalOrder))
		for _, r := range removalOrder {
			out = append(out, Entry{Code: r.Code(), Label: r.Label(), URI: r.URI()})
		}
		return out
	}
	return nil
}
