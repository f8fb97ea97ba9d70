package transform

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/opengov-nl/woometa/diwoo"
	"github.com/opengov-nl/woometa/llm"
	"github.com/opengov-nl/woometa/taxonomy"
)

// PublisherHint carries caller-supplied knowledge about the publishing
// organisation, used when the model does not identify one itself.
type PublisherHint struct {
	Name string
	URI  string
}

// JSONTransformer converts the JSON wire format into a metadata record.
// The canonical input layout is the flat one the extraction prompt asks
// for (top-level officiele_titel, informatiecategorieen, ...); a nested
// layout grouping fields under titelcollectie/classificatiecollectie is
// accepted for compatibility with older prompt revisions.
type JSONTransformer struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewJSONTransformer creates a JSON transformer.
func NewJSONTransformer(logger *slog.Logger) *JSONTransformer {
	if logger == nil {
		logger = slog.Default()
	}
	return &JSONTransformer{logger: logger, now: time.Now}
}

// Transform parses raw model output and builds a validated record. Broken
// JSON is fatal (ErrInvalidJSON); every field-level problem is repaired
// and reported as a warning.
func (t *JSONTransformer) Transform(content string, hint *PublisherHint) (*Result, error) {
	cleaned := llm.ExtractJSON(content)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: no JSON object in model output", ErrInvalidJSON)
	}

	var output map[string]any
	if err := json.Unmarshal([]byte(cleaned), &output); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	w := &warningLog{logger: t.logger}

	publisher := t.resolvePublisher(output, hint, w)

	record := &diwoo.Metadata{
		Publisher: publisher,
		Titles: diwoo.TitleCollection{
			OfficialTitle:     t.resolveOfficialTitle(output, w),
			ShortTitles:       stringList(fieldAny(output, "verkorte_titels", "titelcollectie")),
			AlternativeTitles: stringList(fieldAny(output, "alternatieve_titels", "titelcollectie")),
		},
		Descriptions: stringList(output["omschrijvingen"]),
		Classification: diwoo.Classification{
			Categories:    t.resolveCategories(output, w),
			DocumentTypes: t.resolveDocumentTypes(output, w),
			Keywords:      stringList(fieldAny(output, "trefwoorden", "classificatiecollectie")),
		},
		Handlings: []diwoo.Handling{{
			Type:   diwoo.HandlingTypeRef{Type: taxonomy.DefaultHandling},
			AtTime: t.now(),
			Actor:  &publisher,
		}},
		Language:  t.resolveLanguage(output),
		Relations: t.resolveRelations(output, w),
	}

	if d, ok := t.resolveCreationDate(output, w); ok {
		record.CreationDate = &d
	}
	record.Validity = t.resolveValidity(output, w)

	if err := record.Validate(); err != nil {
		return nil, err
	}

	return &Result{
		Record:     record,
		Confidence: t.extractConfidence(output),
		Warnings:   w.list,
	}, nil
}

// resolvePublisher walks the fallback chain: a model-identified
// organisation, then the caller's hint, then the fixed placeholder.
func (t *JSONTransformer) resolvePublisher(output map[string]any, hint *PublisherHint, w *warningLog) diwoo.Organisation {
	if raw, ok := output["uitgever"].(map[string]any); ok {
		name := strings.TrimSpace(stringField(raw, "naam"))
		if name != "" {
			orgType := strings.ToLower(strings.TrimSpace(stringField(raw, "type")))
			if orgType == "" {
				orgType = "organisatie"
			}
			return diwoo.Organisation{
				Resource: "https://identifier.overheid.nl/tooi/id/" + orgType + "/placeholder",
				Label:    name,
			}
		}
		w.add("uitgever", "model-identified organisation has no name")
	}

	if hint != nil && hint.Name != "" {
		uri := hint.URI
		if uri == "" {
			uri = taxonomy.OrganisationPlaceholderURI
		}
		return diwoo.Organisation{Resource: uri, Label: hint.Name}
	}

	return diwoo.PlaceholderOrganisation()
}

func (t *JSONTransformer) resolveOfficialTitle(output map[string]any, w *warningLog) string {
	title := strings.TrimSpace(stringValue(fieldAny(output, "officiele_titel", "titelcollectie")))
	if title == "" {
		w.add("officiele_titel", "missing, using placeholder title")
		return diwoo.UnknownTitleLabel
	}
	return truncateRunes(title, diwoo.MaxOfficialTitleLength)
}

func (t *JSONTransformer) resolveCategories(output map[string]any, w *warningLog) []diwoo.CategoryRef {
	var refs []diwoo.CategoryRef
	for _, item := range anyList(fieldAny(output, "informatiecategorieen", "classificatiecollectie")) {
		name := categoryName(item)
		if name == "" {
			continue
		}
		cat, ok := taxonomy.CategoryByName(name)
		if !ok {
			w.add("informatiecategorieen", fmt.Sprintf("unknown category %q dropped", name))
			continue
		}
		refs = append(refs, diwoo.CategoryRef{Category: cat})
	}

	if len(refs) == 0 {
		w.add("informatiecategorieen", "no resolvable category, using default")
		refs = []diwoo.CategoryRef{{Category: taxonomy.DefaultCategory}}
	}
	return refs
}

func (t *JSONTransformer) resolveDocumentTypes(output map[string]any, w *warningLog) []diwoo.DocumentTypeRef {
	var refs []diwoo.DocumentTypeRef
	for _, name := range stringList(fieldAny(output, "documentsoorten", "classificatiecollectie")) {
		dt, ok := taxonomy.DocumentTypeByName(name)
		if !ok {
			w.add("documentsoorten", fmt.Sprintf("unknown document type %q dropped", name))
			continue
		}
		refs = append(refs, diwoo.DocumentTypeRef{Type: dt})
	}
	return refs
}

func (t *JSONTransformer) resolveLanguage(output map[string]any) *diwoo.LanguageRef {
	lang := taxonomy.DefaultLanguage
	if name := stringValue(output["taal"]); name != "" {
		if l, ok := taxonomy.LanguageByName(name); ok {
			lang = l
		}
	}
	return &diwoo.LanguageRef{Language: lang}
}

func (t *JSONTransformer) resolveCreationDate(output map[string]any, w *warningLog) (diwoo.Date, bool) {
	raw := stringValue(output["creatiedatum"])
	if raw == "" {
		return diwoo.Date{}, false
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		w.add("creatiedatum", fmt.Sprintf("unparseable date %q", raw))
		return diwoo.Date{}, false
	}
	return diwoo.Date(parsed), true
}

func (t *JSONTransformer) resolveValidity(output map[string]any, w *warningLog) *diwoo.Validity {
	raw, ok := output["geldigheid"].(map[string]any)
	if !ok {
		return nil
	}

	start := parseFlexibleTime(stringField(raw, "begindatum"), "geldigheid.begindatum", w)
	end := parseFlexibleTime(stringField(raw, "einddatum"), "geldigheid.einddatum", w)
	if start == nil && end == nil {
		return nil
	}
	return &diwoo.Validity{Start: start, End: end}
}

// relationNames maps the free-form relation labels the model produces onto
// the documentrelatielijst. Lookup happens after NormalizeName.
var relationNames = map[string]taxonomy.RelationType{
	"VERVANGT":               taxonomy.RelationVervangt,
	"WORDT_VERVANGEN_DOOR":   taxonomy.RelationWordtVervangenDoor,
	"WIJZIGT":                taxonomy.RelationWijzigt,
	"WORDT_GEWIJZIGD_DOOR":   taxonomy.RelationWordtGewijzigdDoor,
	"INTREKT":                taxonomy.RelationIntrekt,
	"WORDT_INGETROKKEN_DOOR": taxonomy.RelationWordtIngetrokkenDoor,
	"HEEFT_BIJLAGE":          taxonomy.RelationHeeftBijlage,
	"BIJLAGE":                taxonomy.RelationHeeftBijlage,
	"IS_BIJLAGE_VAN":         taxonomy.RelationIsBijlageVan,
}

func (t *JSONTransformer) resolveRelations(output map[string]any, w *warningLog) []diwoo.Relation {
	var relations []diwoo.Relation
	for _, item := range anyList(output["documentrelaties"]) {
		raw, ok := item.(map[string]any)
		if !ok {
			continue
		}

		label := strings.TrimSpace(stringField(raw, "label"))
		if label == "" {
			w.add("documentrelaties", "relation without label dropped")
			continue
		}

		relType := taxonomy.DefaultRelation
		if name := stringField(raw, "relatie"); name != "" {
			if mapped, ok := relationNames[taxonomy.NormalizeName(name)]; ok {
				relType = mapped
			} else {
				w.add("documentrelaties", fmt.Sprintf("unknown relation type %q, using %q", name, relType.Label()))
			}
		}

		relations = append(relations, diwoo.Relation{
			Role: diwoo.RelationRoleRef{Relation: relType},
			Relation: diwoo.DocumentRef{
				Resource: stringField(raw, "resource"),
				Label:    label,
			},
		})
	}
	return relations
}

// extractConfidence collects the model's self-reported scores: numeric
// leaves of confidence_scores plus reasoning attached to category entries.
func (t *JSONTransformer) extractConfidence(output map[string]any) ConfidenceScores {
	scores := ConfidenceScores{Overall: DefaultOverallConfidence}

	raw, _ := output["confidence_scores"].(map[string]any)
	for field, value := range raw {
		num, ok := value.(float64)
		if !ok {
			continue
		}
		if field == "overall" {
			scores.Overall = num
			continue
		}
		scores.Fields = append(scores.Fields, FieldConfidence{Field: field, Score: num})
	}

	for _, item := range anyList(fieldAny(output, "informatiecategorieen", "classificatiecollectie")) {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		reasoning := stringField(entry, "reasoning")
		if reasoning == "" {
			continue
		}
		score := DefaultOverallConfidence
		if num, ok := entry["confidence"].(float64); ok {
			score = num
		}
		name := stringField(entry, "categorie")
		if name == "" {
			name = "unknown"
		}
		scores.Fields = append(scores.Fields, FieldConfidence{
			Field:     "informatiecategorie_" + name,
			Score:     score,
			Reasoning: reasoning,
		})
	}

	return scores
}

// warningLog accumulates field-level fallback warnings and mirrors them to
// the logger.
type warningLog struct {
	logger *slog.Logger
	list   []Warning
}

func (w *warningLog) add(field, message string) {
	w.list = append(w.list, Warning{Field: field, Message: message})
	w.logger.Warn("field fallback applied", "field", field, "reason", message)
}

// fieldAny reads a top-level key, falling back to the same key nested
// under the named collection object.
func fieldAny(output map[string]any, key, collection string) any {
	if v, ok := output[key]; ok {
		return v
	}
	if nested, ok := output[collection].(map[string]any); ok {
		return nested[key]
	}
	return nil
}

// categoryName reads a category entry, which is either an object with a
// "categorie" key or a bare string.
func categoryName(item any) string {
	switch v := item.(type) {
	case map[string]any:
		return stringField(v, "categorie")
	case string:
		return v
	}
	return ""
}

func stringField(m map[string]any, key string) string {
	return stringValue(m[key])
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func anyList(v any) []any {
	list, _ := v.([]any)
	return list
}

func stringList(v any) []string {
	var out []string
	for _, item := range anyList(v) {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// parseFlexibleTime accepts RFC 3339, space-separated, and date-only
// timestamps. Failures warn and yield nil.
func parseFlexibleTime(raw, field string, w *warningLog) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return &parsed
		}
	}
	w.add(field, fmt.Sprintf("unparseable timestamp %q", raw))
	return nil
}
