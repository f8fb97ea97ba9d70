package taxonomy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opengov-nl/woometa/taxonomy"
)

func TestCategories_Complete(t *testing.T) {
	cats := taxonomy.Categories()
	require.Len(t, cats, 17, "Woo Artikel 3.3 defines exactly 17 categories")

	// Legal-article order, not alphabetical
	assert.Equal(t, taxonomy.CategoryWettenAVV, cats[0])
	assert.Equal(t, "3.3.1a", cats[0].Article())
	assert.Equal(t, taxonomy.CategoryKlachtoordelen, cats[16])
	assert.Equal(t, "3.3.2l", cats[16].Article())

	seen := make(map[string]bool)
	for _, c := range cats {
		assert.NotEmpty(t, c.Label())
		assert.NotEmpty(t, c.Name())
		assert.False(t, seen[c.Code()], "duplicate code %s", c.Code())
		seen[c.Code()] = true
	}
}

func TestCategory_URIDerivation(t *testing.T) {
	assert.Equal(t,
		"https://identifier.overheid.nl/tooi/def/thes/kern/c_5ba23c01",
		taxonomy.CategoryAdviezen.URI())
}

func TestCategoryByName(t *testing.T) {
	c, ok := taxonomy.CategoryByName("ADVIEZEN")
	require.True(t, ok)
	assert.Equal(t, taxonomy.CategoryAdviezen, c)

	// Case and whitespace normalization
	c, ok = taxonomy.CategoryByName("  woo verzoeken ")
	require.True(t, ok)
	assert.Equal(t, taxonomy.CategoryWooVerzoeken, c)

	_, ok = taxonomy.CategoryByName("NIET_BESTAAND")
	assert.False(t, ok)
}

func TestCategoryByCode_Unknown(t *testing.T) {
	_, ok := taxonomy.CategoryByCode("c_deadbeef")
	assert.False(t, ok)
}

func TestCodeFromURI(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"https://identifier.overheid.nl/tooi/def/thes/kern/c_4edc7ff0", "c_4edc7ff0"},
		{"https://identifier.overheid.nl/tooi/def/thes/kern/c_woo_besluit", "c_woo_besluit"},
		{"https://example.org/no-code-here", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, taxonomy.CodeFromURI(tt.uri), tt.uri)
	}
}

func TestResolve(t *testing.T) {
	e, ok := taxonomy.Resolve(taxonomy.TaxonomyCategories, "c_5ba23c01")
	require.True(t, ok)
	assert.Equal(t, "Adviezen", e.Label)
	assert.Equal(t, "3.3.2e", e.Article)
	assert.Equal(t, "ADVIEZEN", e.Name)

	e, ok = taxonomy.Resolve(taxonomy.TaxonomyHandlingTypes, "c_registratie")
	require.True(t, ok)
	assert.Equal(t, "Registratie", e.Label)

	_, ok = taxonomy.Resolve(taxonomy.TaxonomyCategories, "c_unknown")
	assert.False(t, ok)

	_, ok = taxonomy.Resolve("geen_taxonomie", "c_5ba23c01")
	assert.False(t, ok)
}

func TestAll(t *testing.T) {
	assert.Len(t, taxonomy.All(taxonomy.TaxonomyCategories), 17)
	assert.Len(t, taxonomy.All(taxonomy.TaxonomyDocumentTypes), 21)
	assert.Len(t, taxonomy.All(taxonomy.TaxonomyHandlingTypes), 8)
	assert.Len(t, taxonomy.All(taxonomy.TaxonomyLanguages), 6)
	assert.Len(t, taxonomy.All(taxonomy.TaxonomyRelationTypes), 8)
	assert.Len(t, taxonomy.All(taxonomy.TaxonomyRemovalReasons), 4)
	assert.Nil(t, taxonomy.All("bestaat_niet"))
}

func TestLanguageByName(t *testing.T) {
	l, ok := taxonomy.LanguageByName("nl")
	require.True(t, ok)
	assert.Equal(t, taxonomy.LanguageNL, l)

	_, ok = taxonomy.LanguageByName("XX")
	assert.False(t, ok)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "WOO_VERZOEKEN", taxonomy.NormalizeName(" woo-verzoeken "))
	assert.Equal(t, "MEMORIE_VAN_TOELICHTING", taxonomy.NormalizeName("memorie van toelichting"))
}
