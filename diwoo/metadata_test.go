package diwoo_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opengov-nl/woometa/diwoo"
	"github.com/opengov-nl/woometa/taxonomy"
)

func validRecord() *diwoo.Metadata {
	return &diwoo.Metadata{
		Publisher: diwoo.Organisation{
			Resource: "https://identifier.overheid.nl/tooi/id/gemeente/gm0363",
			Label:    "Gemeente Amsterdam",
		},
		Titles: diwoo.TitleCollection{OfficialTitle: "Besluit op Woo-verzoek"},
		Classification: diwoo.Classification{
			Categories: []diwoo.CategoryRef{{Category: taxonomy.CategoryWooVerzoeken}},
		},
		Handlings: []diwoo.Handling{{
			Type:   diwoo.HandlingTypeRef{Type: taxonomy.HandlingRegistratie},
			AtTime: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		}},
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validRecord().Validate())
}

func TestValidate_Invariants(t *testing.T) {
	m := validRecord()
	m.Publisher = diwoo.Organisation{}
	assert.ErrorIs(t, m.Validate(), diwoo.ErrInvalidRecord)

	m = validRecord()
	m.Titles.OfficialTitle = ""
	assert.ErrorIs(t, m.Validate(), diwoo.ErrInvalidRecord)

	m = validRecord()
	m.Titles.OfficialTitle = strings.Repeat("a", diwoo.MaxOfficialTitleLength+1)
	assert.ErrorIs(t, m.Validate(), diwoo.ErrInvalidRecord)

	m = validRecord()
	m.Classification.Categories = nil
	assert.ErrorIs(t, m.Validate(), diwoo.ErrInvalidRecord)

	m = validRecord()
	m.Handlings = nil
	assert.ErrorIs(t, m.Validate(), diwoo.ErrInvalidRecord)

	m = validRecord()
	m.Handlings[0].AtTime = time.Time{}
	assert.ErrorIs(t, m.Validate(), diwoo.ErrInvalidRecord)
}

func TestExternalRepresentation(t *testing.T) {
	m := validRecord()
	m.DrafterName = "J. de Vries"
	cd := diwoo.Date(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
	m.CreationDate = &cd
	m.Language = &diwoo.LanguageRef{Language: taxonomy.LanguageNL}

	data, err := m.ToJSON()
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))

	// Schema field names, not Go names
	assert.Contains(t, out, "titelcollectie")
	assert.Contains(t, out, "classificatiecollectie")
	assert.Contains(t, out, "documenthandelingen")
	assert.Contains(t, out, "naamOpsteller")
	assert.NotContains(t, out, "Titles")

	titles := out["titelcollectie"].(map[string]any)
	assert.Equal(t, "Besluit op Woo-verzoek", titles["officieleTitel"])

	// Taxonomy-backed fields serialize as resource/label pairs
	classif := out["classificatiecollectie"].(map[string]any)
	cats := classif["informatiecategorieen"].([]any)
	require.Len(t, cats, 1)
	cat := cats[0].(map[string]any)
	assert.Equal(t, taxonomy.CategoryWooVerzoeken.URI(), cat["resource"])
	assert.Equal(t, "Woo-verzoeken en -besluiten", cat["label"])

	lang := out["language"].(map[string]any)
	assert.Equal(t, "Nederlands", lang["label"])

	assert.Equal(t, "2026-01-15", out["creatiedatum"])

	// Optional empty fields are omitted entirely
	assert.NotContains(t, out, "geldigheid")
	assert.NotContains(t, out, "documentrelaties")
}

func TestSerializeThenValidate_Idempotent(t *testing.T) {
	m := validRecord()
	_, err := m.ToJSON()
	require.NoError(t, err)
	// Serialization must not mutate the record
	require.NoError(t, m.Validate())
}

func TestDate_RoundTrip(t *testing.T) {
	var d diwoo.Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-12-31"`), &d))
	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-12-31"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`"31-12-2025"`), &d))
}
