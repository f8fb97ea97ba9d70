package transform

import "github.com/opengov-nl/woometa/diwoo"

// FieldConfidence is a per-field confidence score, optionally with the
// model's reasoning.
type FieldConfidence struct {
	Field     string  `json:"field_name"`
	Score     float64 `json:"confidence"`
	Reasoning string  `json:"reasoning,omitempty"`
}

// ConfidenceScores aggregates the model's self-reported confidence.
// Only the JSON wire format carries confidence annotations; the XML path
// returns DefaultOverallConfidence with no field scores.
type ConfidenceScores struct {
	Overall float64           `json:"overall"`
	Fields  []FieldConfidence `json:"fields"`
}

// DefaultOverallConfidence is used when the model reports no overall score.
const DefaultOverallConfidence = 0.7

// Result is the outcome of a successful transformation. The record always
// satisfies the DIWOO invariants; Warnings lists every field that needed a
// fallback.
type Result struct {
	Record     *diwoo.Metadata
	Confidence ConfidenceScores
	Warnings   []Warning
}
