package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func postCompletion(t *testing.T, url, model string) *http.Response {
	t.Helper()
	body, _ := json.Marshal(chatRequest{
		Model:    model,
		Messages: []chatMessage{{Role: "user", Content: "analyseer dit document"}},
	})
	resp, err := http.Post(url+"/chat/completions", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decodeContent(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var cr chatResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cr))
	require.Len(t, cr.Choices, 1)
	return cr.Choices[0].Message.Content
}

func TestLoadFixtures(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "diwoo-json.json", `{"officiele_titel":"Test"}`)
	writeFixture(t, dir, "diwoo-xml.xml", `<diwoo:Document/>`)

	fixtures, err := loadFixtures(dir)
	require.NoError(t, err)

	require.Contains(t, fixtures, "diwoo-json")
	require.Contains(t, fixtures, "diwoo-xml")
	assert.Equal(t, `{"officiele_titel":"Test"}`, fixtures["diwoo-json"][0])
	assert.Equal(t, `<diwoo:Document/>`, fixtures["diwoo-xml"][0])
}

func TestLoadFixtures_InvalidJSONRejected(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "kapot.json", `{niet valide`)

	_, err := loadFixtures(dir)
	assert.Error(t, err)
}

func TestLoadFixtures_SequentialOrdering(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "herstel.1.json", `{"poging":1}`)
	writeFixture(t, dir, "herstel.2.json", `{"poging":2}`)
	writeFixture(t, dir, "herstel.json", `{"poging":"laatste"}`)

	fixtures, err := loadFixtures(dir)
	require.NoError(t, err)

	seq := fixtures["herstel"]
	require.Len(t, seq, 3)
	assert.Equal(t, `{"poging":1}`, seq[0])
	assert.Equal(t, `{"poging":2}`, seq[1])
	assert.Equal(t, `{"poging":"laatste"}`, seq[2])
}

func TestChatCompletions(t *testing.T) {
	s := newServer(map[string][]string{
		"diwoo-json": {`{"officiele_titel":"Besluit"}`},
	})
	ts := httptest.NewServer(http.HandlerFunc(s.handleChatCompletions))
	defer ts.Close()

	resp := postCompletion(t, ts.URL, "diwoo-json")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `{"officiele_titel":"Besluit"}`, decodeContent(t, resp))
}

func TestChatCompletions_UnknownModel(t *testing.T) {
	s := newServer(map[string][]string{"bekend": {`{}`}})
	ts := httptest.NewServer(http.HandlerFunc(s.handleChatCompletions))
	defer ts.Close()

	resp := postCompletion(t, ts.URL, "onbekend")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestChatCompletions_SequenceThenFallback(t *testing.T) {
	s := newServer(map[string][]string{
		"herstel": {`{"poging":1}`, `{"poging":2}`},
	})
	ts := httptest.NewServer(http.HandlerFunc(s.handleChatCompletions))
	defer ts.Close()

	assert.Equal(t, `{"poging":1}`, decodeContent(t, postCompletion(t, ts.URL, "herstel")))
	assert.Equal(t, `{"poging":2}`, decodeContent(t, postCompletion(t, ts.URL, "herstel")))
	// Sequence exhausted, last fixture repeats
	assert.Equal(t, `{"poging":2}`, decodeContent(t, postCompletion(t, ts.URL, "herstel")))
}

func TestStats(t *testing.T) {
	s := newServer(map[string][]string{"m": {`{}`}})
	mux := http.NewServeMux()
	mux.HandleFunc("/chat/completions", s.handleChatCompletions)
	mux.HandleFunc("/stats", s.handleStats)
	ts := httptest.NewServer(mux)
	defer ts.Close()

	postCompletion(t, ts.URL, "m").Body.Close()
	postCompletion(t, ts.URL, "m").Body.Close()

	resp, err := http.Get(ts.URL + "/stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	var stats struct {
		TotalCalls   int64            `json:"total_calls"`
		CallsByModel map[string]int64 `json:"calls_by_model"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.EqualValues(t, 2, stats.TotalCalls)
	assert.EqualValues(t, 2, stats.CallsByModel["m"])
}
