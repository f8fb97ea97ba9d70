package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON_MarkdownBlock(t *testing.T) {
	content := "Hier is de metadata:\n```json\n{\"titel\": \"Besluit\"}\n```\nSucces!"
	got := ExtractJSON(content)
	assert.JSONEq(t, `{"titel": "Besluit"}`, got)
}

func TestExtractJSON_BareObject(t *testing.T) {
	got := ExtractJSON(`De uitkomst is {"titel": "Besluit", "vertrouwen": 0.9} zoals gevraagd.`)
	assert.JSONEq(t, `{"titel": "Besluit", "vertrouwen": 0.9}`, got)
}

func TestExtractJSON_TrailingCommas(t *testing.T) {
	got := ExtractJSON(`{"a": [1, 2, 3,], "b": {"c": 1,},}`)
	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &parsed))
}

func TestExtractJSON_LineComments(t *testing.T) {
	content := "```json\n" +
		"{\n" +
		"  \"titel\": \"Besluit\", // de officiele titel\n" +
		"  \"url\": \"https://example.nl/doc\" // niet strippen binnen strings\n" +
		"}\n" +
		"```"
	got := ExtractJSON(content)

	var parsed map[string]string
	require.NoError(t, json.Unmarshal([]byte(got), &parsed))
	assert.Equal(t, "Besluit", parsed["titel"])
	assert.Equal(t, "https://example.nl/doc", parsed["url"])
}

func TestExtractJSON_NoJSON(t *testing.T) {
	assert.Empty(t, ExtractJSON("Sorry, ik kan dit document niet verwerken."))
	assert.Empty(t, ExtractJSON(""))
}

func TestStripLineComment_EscapedQuotes(t *testing.T) {
	line := `  "omschrijving": "een \"citaat\" hier", // commentaar`
	assert.Equal(t, `  "omschrijving": "een \"citaat\" hier",`, stripLineComment(line))
}
