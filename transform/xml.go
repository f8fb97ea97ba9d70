package transform

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/opengov-nl/woometa/diwoo"
	"github.com/opengov-nl/woometa/taxonomy"
)

// DIWOONamespace is the XML namespace of the DIWOO metadata schema.
const DIWOONamespace = "https://standaarden.overheid.nl/diwoo/metadata/"

var (
	xmlFencePattern    = regexp.MustCompile("```(?:xml)?\\s*")
	xmlDocumentPattern = regexp.MustCompile(`(?s)<diwoo:Document.*</diwoo:Document>`)
)

// XMLTransformer converts the XML wire format into a metadata record.
// Syntax errors are fatal; individual missing elements get the same
// fallback treatment as the JSON path.
type XMLTransformer struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewXMLTransformer creates an XML transformer.
func NewXMLTransformer(logger *slog.Logger) *XMLTransformer {
	if logger == nil {
		logger = slog.Default()
	}
	return &XMLTransformer{logger: logger, now: time.Now}
}

// xmlNode is a generic element tree; the DIWOO element layout is walked by
// local name rather than unmarshalled into fixed structs.
type xmlNode struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Nodes   []xmlNode  `xml:",any"`
	Text    string     `xml:",chardata"`
}

func (n *xmlNode) find(local string) *xmlNode {
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local == local {
			return &n.Nodes[i]
		}
	}
	return nil
}

func (n *xmlNode) findAll(local string) []*xmlNode {
	var out []*xmlNode
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local == local {
			out = append(out, &n.Nodes[i])
		}
	}
	return out
}

func (n *xmlNode) text() string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.Text)
}

func (n *xmlNode) attr(name string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// CleanResponse strips markdown fences and surrounding commentary,
// keeping only the diwoo:Document element.
func CleanResponse(raw string) string {
	cleaned := xmlFencePattern.ReplaceAllString(raw, "")
	if match := xmlDocumentPattern.FindString(cleaned); match != "" {
		return match
	}
	return strings.TrimSpace(cleaned)
}

// Transform parses raw model output and builds a validated record. A
// syntax error yields ErrInvalidXML; when validate is set, structural
// schema violations yield a *ValidationError before any extraction.
func (t *XMLTransformer) Transform(raw string, validate bool) (*Result, error) {
	cleaned := CleanResponse(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty model output", ErrInvalidXML)
	}

	var root xmlNode
	if err := xml.Unmarshal([]byte(cleaned), &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidXML, err)
	}

	doc := root.find("DiWoo")
	if doc == nil {
		return nil, fmt.Errorf("%w: missing diwoo:DiWoo element", ErrInvalidXML)
	}

	if validate {
		if err := validateStructure(&root, doc); err != nil {
			return nil, err
		}
	}

	w := &warningLog{logger: t.logger}

	publisher := t.parseOrganisation(doc.find("publisher"), w)

	record := &diwoo.Metadata{
		Identifiers:    childTexts(doc.find("identifiers"), "identifier"),
		Publisher:      publisher,
		Responsible:    t.parseOptionalOrganisation(doc.find("verantwoordelijke")),
		Drafter:        t.parseOptionalOrganisation(doc.find("opsteller")),
		DrafterName:    doc.find("naamOpsteller").text(),
		Titles:         t.parseTitles(doc.find("titelcollectie"), w),
		Descriptions:   childTexts(doc.find("omschrijvingen"), "omschrijving"),
		Classification: t.parseClassification(doc.find("classificatiecollectie"), w),
		Language:       t.parseLanguage(doc.find("language")),
		AggregationKey: doc.find("aggregatiekenmerk").text(),
		Handlings:      t.parseHandlings(doc.find("documenthandelingen"), publisher, w),
		Relations:      t.parseRelations(doc.find("documentrelaties"), w),
	}

	if d := parseDateText(doc.find("creatiedatum").text(), "creatiedatum", w); d != nil {
		record.CreationDate = d
	}
	record.Validity = t.parseValidity(doc.find("geldigheid"), w)

	if err := record.Validate(); err != nil {
		return nil, err
	}

	// The XML wire format carries no confidence annotations
	return &Result{
		Record:     record,
		Confidence: ConfidenceScores{Overall: DefaultOverallConfidence},
		Warnings:   w.list,
	}, nil
}

// validateStructure checks the required-element subset of the DIWOO XSD.
// Failures are fatal and reported together.
func validateStructure(root, doc *xmlNode) error {
	var problems []string

	if root.XMLName.Local != "Document" || root.XMLName.Space != DIWOONamespace {
		problems = append(problems, "root element must be diwoo:Document in the DIWOO namespace")
	}
	if doc.find("publisher") == nil {
		problems = append(problems, "missing required element diwoo:publisher")
	}

	titles := doc.find("titelcollectie")
	if titles == nil {
		problems = append(problems, "missing required element diwoo:titelcollectie")
	} else if titles.find("officieleTitel").text() == "" {
		problems = append(problems, "diwoo:titelcollectie misses diwoo:officieleTitel")
	}

	classif := doc.find("classificatiecollectie")
	if classif == nil {
		problems = append(problems, "missing required element diwoo:classificatiecollectie")
	} else {
		cats := classif.find("informatiecategorieen")
		if cats == nil || len(cats.findAll("informatiecategorie")) == 0 {
			problems = append(problems, "diwoo:classificatiecollectie requires at least one diwoo:informatiecategorie")
		}
	}

	handlings := doc.find("documenthandelingen")
	if handlings == nil || len(handlings.findAll("documenthandeling")) == 0 {
		problems = append(problems, "missing required element diwoo:documenthandeling")
	} else {
		for i, h := range handlings.findAll("documenthandeling") {
			if h.find("soortHandeling") == nil {
				problems = append(problems, fmt.Sprintf("documenthandeling %d misses diwoo:soortHandeling", i))
			}
			if h.find("atTime").text() == "" {
				problems = append(problems, fmt.Sprintf("documenthandeling %d misses diwoo:atTime", i))
			}
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func (t *XMLTransformer) parseOrganisation(node *xmlNode, w *warningLog) diwoo.Organisation {
	if node == nil {
		w.add("publisher", "missing organisation, using placeholder")
		return diwoo.PlaceholderOrganisation()
	}

	label := node.text()
	if label == "" {
		label = diwoo.UnknownOrganisationLabel
	}
	resource := node.attr("resource")
	if resource == "" {
		resource = taxonomy.OrganisationPlaceholderURI
	}
	return diwoo.Organisation{Resource: resource, Label: label}
}

func (t *XMLTransformer) parseOptionalOrganisation(node *xmlNode) *diwoo.Organisation {
	if node == nil {
		return nil
	}
	org := diwoo.Organisation{
		Resource: node.attr("resource"),
		Label:    node.text(),
	}
	if org.Resource == "" {
		org.Resource = taxonomy.OrganisationPlaceholderURI
	}
	if org.Label == "" {
		org.Label = diwoo.UnknownOrganisationLabel
	}
	return &org
}

func (t *XMLTransformer) parseTitles(node *xmlNode, w *warningLog) diwoo.TitleCollection {
	if node == nil {
		w.add("titelcollectie", "missing, using placeholder title")
		return diwoo.TitleCollection{OfficialTitle: diwoo.UnknownTitleLabel}
	}

	official := node.find("officieleTitel").text()
	if official == "" {
		w.add("officieleTitel", "missing, using placeholder title")
		official = diwoo.UnknownTitleLabel
	}

	return diwoo.TitleCollection{
		OfficialTitle:     truncateRunes(official, diwoo.MaxOfficialTitleLength),
		ShortTitles:       childTexts(node, "verkorteTitel"),
		AlternativeTitles: childTexts(node, "alternatieveTitel"),
	}
}

func (t *XMLTransformer) parseClassification(node *xmlNode, w *warningLog) diwoo.Classification {
	classif := diwoo.Classification{}

	if node != nil {
		if cats := node.find("informatiecategorieen"); cats != nil {
			for _, cat := range cats.findAll("informatiecategorie") {
				code := taxonomy.CodeFromURI(cat.attr("resource"))
				if code == "" {
					w.add("informatiecategorieen", fmt.Sprintf("no taxonomy code in resource %q", cat.attr("resource")))
					continue
				}
				resolved, ok := taxonomy.CategoryByCode(code)
				if !ok {
					w.add("informatiecategorieen", fmt.Sprintf("unknown category code %q dropped", code))
					continue
				}
				classif.Categories = append(classif.Categories, diwoo.CategoryRef{Category: resolved})
			}
		}

		if types := node.find("documentsoorten"); types != nil {
			for _, dt := range types.findAll("documentsoort") {
				code := taxonomy.CodeFromURI(dt.attr("resource"))
				if code == "" {
					continue
				}
				resolved, ok := taxonomy.DocumentTypeByCode(code)
				if !ok {
					w.add("documentsoorten", fmt.Sprintf("unknown document type code %q dropped", code))
					continue
				}
				classif.DocumentTypes = append(classif.DocumentTypes, diwoo.DocumentTypeRef{Type: resolved})
			}
		}

		if kw := node.find("trefwoorden"); kw != nil {
			classif.Keywords = childTexts(kw, "trefwoord")
		}
	}

	if len(classif.Categories) == 0 {
		w.add("informatiecategorieen", "no resolvable category, using default")
		classif.Categories = []diwoo.CategoryRef{{Category: taxonomy.DefaultCategory}}
	}
	return classif
}

func (t *XMLTransformer) parseLanguage(node *xmlNode) *diwoo.LanguageRef {
	lang := taxonomy.DefaultLanguage
	if node != nil {
		if code := taxonomy.CodeFromURI(node.attr("resource")); code != "" {
			if resolved, ok := taxonomy.LanguageByCode(code); ok {
				lang = resolved
			}
		}
	}
	return &diwoo.LanguageRef{Language: lang}
}

func (t *XMLTransformer) parseHandlings(node *xmlNode, publisher diwoo.Organisation, w *warningLog) []diwoo.Handling {
	var handlings []diwoo.Handling

	if node != nil {
		for _, h := range node.findAll("documenthandeling") {
			handling := diwoo.Handling{
				Type:   diwoo.HandlingTypeRef{Type: taxonomy.DefaultHandling},
				AtTime: t.now(),
			}

			if soort := h.find("soortHandeling"); soort != nil {
				if code := taxonomy.CodeFromURI(soort.attr("resource")); code != "" {
					if resolved, ok := taxonomy.HandlingTypeByCode(code); ok {
						handling.Type = diwoo.HandlingTypeRef{Type: resolved}
					}
				}
			}
			if ts := parseTimeText(h.find("atTime").text(), "atTime", w); ts != nil {
				handling.AtTime = *ts
			}
			if actor := t.parseOptionalOrganisation(h.find("wasAssociatedWith")); actor != nil {
				handling.Actor = actor
			}

			handlings = append(handlings, handling)
		}
	}

	if len(handlings) == 0 {
		w.add("documenthandelingen", "none present, synthesizing registration event")
		handlings = []diwoo.Handling{{
			Type:   diwoo.HandlingTypeRef{Type: taxonomy.DefaultHandling},
			AtTime: t.now(),
			Actor:  &publisher,
		}}
	}
	return handlings
}

func (t *XMLTransformer) parseRelations(node *xmlNode, w *warningLog) []diwoo.Relation {
	if node == nil {
		return nil
	}

	var relations []diwoo.Relation
	for _, rel := range node.findAll("documentrelatie") {
		role := rel.find("role")
		target := rel.find("relation")
		if role == nil || target == nil {
			w.add("documentrelaties", "incomplete relation dropped")
			continue
		}

		relType := taxonomy.DefaultRelation
		if code := taxonomy.CodeFromURI(role.attr("resource")); code != "" {
			if resolved, ok := taxonomy.RelationTypeByCode(code); ok {
				relType = resolved
			}
		}

		label := target.text()
		if label == "" {
			label = diwoo.UnknownDocumentLabel
		}

		relations = append(relations, diwoo.Relation{
			Role: diwoo.RelationRoleRef{Relation: relType},
			Relation: diwoo.DocumentRef{
				Resource: target.attr("resource"),
				Label:    label,
			},
		})
	}
	return relations
}

func (t *XMLTransformer) parseValidity(node *xmlNode, w *warningLog) *diwoo.Validity {
	if node == nil {
		return nil
	}
	start := parseTimeText(node.find("begindatum").text(), "geldigheid.begindatum", w)
	end := parseTimeText(node.find("einddatum").text(), "geldigheid.einddatum", w)
	if start == nil && end == nil {
		return nil
	}
	return &diwoo.Validity{Start: start, End: end}
}

func childTexts(node *xmlNode, local string) []string {
	if node == nil {
		return nil
	}
	var out []string
	for _, child := range node.findAll(local) {
		if text := child.text(); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// parseDateText reads a date-only value, tolerating datetime strings by
// taking the date part.
func parseDateText(raw, field string, w *warningLog) *diwoo.Date {
	if raw == "" {
		return nil
	}
	if len(raw) > 10 {
		raw = raw[:10]
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		w.add(field, fmt.Sprintf("unparseable date %q", raw))
		return nil
	}
	d := diwoo.Date(parsed)
	return &d
}

func parseTimeText(raw, field string, w *warningLog) *time.Time {
	return parseFlexibleTime(raw, field, w)
}
