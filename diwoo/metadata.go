// Package diwoo defines the DIWOO metadata record for Dutch government
// documents under the Wet open overheid (Woo), mirroring DiWooType from the
// published XSD (v0.9.8). The external JSON representation uses the schema's
// camelCase field names.
//
// Records are constructed once per generation request by the transform
// package and treated as immutable afterwards.
package diwoo

import (
	"encoding/json"
	"time"

	"github.com/opengov-nl/woometa/taxonomy"
)

// MaxOfficialTitleLength is the XSD bound on officieleTitel.
const MaxOfficialTitleLength = 2000

// Placeholder labels used when required information cannot be resolved from
// the LLM output. The record must always be constructible from best-effort
// input, so missing required fields get deterministic placeholders instead
// of failing the transformation.
const (
	UnknownOrganisationLabel = "Onbekende organisatie"
	UnknownTitleLabel        = "Onbekende titel"
	UnknownDocumentLabel     = "Onbekend document"
)

// Organisation references a publishing or acting organisation by TOOI URI
// and label, per DIWOO organisatieType.
type Organisation struct {
	Resource string `json:"resource"`
	Label    string `json:"label"`
}

// PlaceholderOrganisation returns the fallback organisation reference.
func PlaceholderOrganisation() Organisation {
	return Organisation{
		Resource: taxonomy.OrganisationPlaceholderURI,
		Label:    UnknownOrganisationLabel,
	}
}

// TitleCollection holds the official title (required, 1..2000 chars) plus
// optional short and alternative titles, per titelcollectieType.
type TitleCollection struct {
	OfficialTitle     string   `json:"officieleTitel"`
	ShortTitles       []string `json:"verkorteTitels,omitempty"`
	AlternativeTitles []string `json:"alternatieveTitels,omitempty"`
}

// CategoryRef is an information category serialized as a TOOI
// {resource, label} pair.
type CategoryRef struct {
	Category taxonomy.Category
}

// MarshalJSON renders the external resource/label shape.
func (c CategoryRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(tooiRef{Resource: c.Category.URI(), Label: c.Category.Label()})
}

// DocumentTypeRef is a document type serialized as a TOOI pair.
type DocumentTypeRef struct {
	Type taxonomy.DocumentType
}

// MarshalJSON renders the external resource/label shape.
func (d DocumentTypeRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(tooiRef{Resource: d.Type.URI(), Label: d.Type.Label()})
}

// HandlingTypeRef is a handling type serialized as a TOOI pair.
type HandlingTypeRef struct {
	Type taxonomy.HandlingType
}

// MarshalJSON renders the external resource/label shape.
func (h HandlingTypeRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(tooiRef{Resource: h.Type.URI(), Label: h.Type.Label()})
}

// LanguageRef is a document language serialized as a TOOI pair.
type LanguageRef struct {
	Language taxonomy.Language
}

// MarshalJSON renders the external resource/label shape.
func (l LanguageRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(tooiRef{Resource: l.Language.URI(), Label: l.Language.Label()})
}

// RelationRoleRef is a document relation type serialized as a TOOI pair.
type RelationRoleRef struct {
	Relation taxonomy.RelationType
}

// MarshalJSON renders the external resource/label shape.
func (r RelationRoleRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(tooiRef{Resource: r.Relation.URI(), Label: r.Relation.Label()})
}

// RemovalReasonRef is a removal/replacement reason serialized as a TOOI pair.
type RemovalReasonRef struct {
	Reason taxonomy.RemovalReason
}

// MarshalJSON renders the external resource/label shape.
func (r RemovalReasonRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(tooiRef{Resource: r.Reason.URI(), Label: r.Reason.Label()})
}

// tooiRef is the shared external shape for taxonomy-backed fields.
type tooiRef struct {
	Resource string `json:"resource"`
	Label    string `json:"label"`
}

// ThemeRef references a TOOI theme. Themes come from an open list, so the
// URI is carried as-is rather than derived from a code.
type ThemeRef struct {
	Resource string `json:"resource"`
	Label    string `json:"label"`
}

// FormatRef references a TOOI file format.
type FormatRef struct {
	Resource string `json:"resource"`
	Label    string `json:"label"`
}

// Classification groups the information categories (at least one required)
// with optional document types, themes, and free-text keywords, per
// classificatiecollectieType.
type Classification struct {
	Categories    []CategoryRef     `json:"informatiecategorieen"`
	DocumentTypes []DocumentTypeRef `json:"documentsoorten,omitempty"`
	Themes        []ThemeRef        `json:"themas,omitempty"`
	Keywords      []string          `json:"trefwoorden,omitempty"`
}

// Handling records a lifecycle action on the document, per
// documenthandelingType. AtTime and the handling type are required; the
// acting organisation is optional.
type Handling struct {
	Type   HandlingTypeRef `json:"soortHandeling"`
	AtTime time.Time       `json:"atTime"`
	Actor  *Organisation   `json:"wasAssociatedWith,omitempty"`
}

// Validity is the document validity window, per geldigheidType.
type Validity struct {
	Start *time.Time `json:"begindatum,omitempty"`
	End   *time.Time `json:"einddatum,omitempty"`
}

// DocumentRef points at another document by optional URI and required label.
type DocumentRef struct {
	Resource string `json:"resource,omitempty"`
	Label    string `json:"label"`
}

// Relation links this document to another with a typed role.
type Relation struct {
	Role     RelationRoleRef `json:"role"`
	Relation DocumentRef     `json:"relation"`
}

// Date is a date-only value serialized as YYYY-MM-DD, as required for
// creatiedatum.
type Date time.Time

// MarshalJSON renders the date-only form.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).Format("2006-01-02"))
}

// UnmarshalJSON accepts the date-only form.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	*d = Date(t)
	return nil
}

// Metadata is the complete DIWOO metadata record per DiWooType.
//
// Required: Publisher, Titles.OfficialTitle, at least one category in
// Classification, and at least one Handling. Everything else is optional.
type Metadata struct {
	Identifiers []string `json:"identifiers,omitempty"`

	Publisher     Organisation   `json:"publisher"`
	Responsible   *Organisation  `json:"verantwoordelijke,omitempty"`
	CoResponsible []Organisation `json:"medeverantwoordelijken,omitempty"`
	Drafter       *Organisation  `json:"opsteller,omitempty"`
	DrafterName   string         `json:"naamOpsteller,omitempty"`

	Titles       TitleCollection `json:"titelcollectie"`
	Descriptions []string        `json:"omschrijvingen,omitempty"`

	Classification Classification `json:"classificatiecollectie"`

	CreationDate *Date     `json:"creatiedatum,omitempty"`
	Validity     *Validity `json:"geldigheid,omitempty"`

	Language       *LanguageRef `json:"language,omitempty"`
	Format         *FormatRef   `json:"format,omitempty"`
	AggregationKey string       `json:"aggregatiekenmerk,omitempty"`

	IsPartOf *DocumentRef  `json:"isPartOf,omitempty"`
	HasParts []DocumentRef `json:"hasParts,omitempty"`

	Handlings []Handling `json:"documenthandelingen"`
	Relations []Relation `json:"documentrelaties,omitempty"`

	RemovalReason *RemovalReasonRef `json:"redenVerwijderingVervanging,omitempty"`
}

// ToJSON serializes the record to the external DIWOO JSON representation.
func (m *Metadata) ToJSON() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}
