package publicatiebank_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opengov-nl/woometa/publicatiebank"
)

func documentJSON(id uuid.UUID) map[string]any {
	return map[string]any{
		"uuid":             id.String(),
		"officiele_titel":  "Besluit op Woo-verzoek parkeerbeleid",
		"verkorte_titel":   "Woo-besluit parkeren",
		"omschrijving":     "Besluit met openbaar gemaakte documenten",
		"bestandsnaam":     "besluit.pdf",
		"bestandsformaat":  "application/pdf",
		"bestandsomvang":   12345,
		"publicatiestatus": "gepubliceerd",
		"kenmerken":        []map[string]string{{"kenmerk": "zaaknummer", "bron": "zaaksysteem"}},
	}
}

func TestGetDocument(t *testing.T) {
	id := uuid.New()
	var gotAuth, gotAuditUser string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAuditUser = r.Header.Get("Audit-User-ID")

		switch r.URL.Path {
		case "/api/v2/documenten/" + id.String():
			json.NewEncoder(w).Encode(documentJSON(id))
		case "/api/v2/documenten/" + id.String() + "/download":
			w.Write([]byte("bestandsinhoud"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := publicatiebank.NewClient(server.URL, "geheim-token")

	doc, err := client.GetDocument(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id.String(), doc.UUID)
	assert.Equal(t, "Besluit op Woo-verzoek parkeerbeleid", doc.OfficialTitle)
	assert.Equal(t, "besluit.pdf", doc.FileName)
	assert.Equal(t, int64(12345), doc.FileSize)
	assert.Equal(t, []byte("bestandsinhoud"), doc.Content)
	require.Len(t, doc.Kenmerken, 1)
	assert.Equal(t, "zaaknummer", doc.Kenmerken[0]["kenmerk"])

	assert.Equal(t, "Token geheim-token", gotAuth)
	assert.Equal(t, "woometa-service", gotAuditUser)
}

func TestGetMetadata_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := publicatiebank.NewClient(server.URL, "token")

	_, err := client.GetMetadata(context.Background(), uuid.New())
	assert.ErrorIs(t, err, publicatiebank.ErrNotFound)
}

func TestDownloadContent_UploadNotCompleted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upload pending", http.StatusConflict)
	}))
	defer server.Close()

	client := publicatiebank.NewClient(server.URL, "token")

	_, err := client.DownloadContent(context.Background(), uuid.New())
	assert.ErrorIs(t, err, publicatiebank.ErrNotReady)
}

func TestNotConfigured(t *testing.T) {
	client := publicatiebank.NewClient("", "")
	assert.False(t, client.Configured())

	_, err := client.GetMetadata(context.Background(), uuid.New())
	assert.ErrorIs(t, err, publicatiebank.ErrNotConfigured)

	_, err = client.DownloadContent(context.Background(), uuid.New())
	assert.ErrorIs(t, err, publicatiebank.ErrNotConfigured)
}

func TestServerErrorIsGeneric(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "kapot", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := publicatiebank.NewClient(server.URL, "token")

	_, err := client.GetMetadata(context.Background(), uuid.New())
	require.Error(t, err)
	assert.NotErrorIs(t, err, publicatiebank.ErrNotFound)
	assert.Contains(t, err.Error(), "status 500")
}

func TestAuditUserOverride(t *testing.T) {
	var gotAuditUser string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuditUser = r.Header.Get("Audit-User-ID")
		json.NewEncoder(w).Encode(documentJSON(uuid.New()))
	}))
	defer server.Close()

	client := publicatiebank.NewClient(server.URL, "token",
		publicatiebank.WithAuditUser("beheerder@voorbeeld.nl"))

	_, err := client.GetMetadata(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "beheerder@voorbeeld.nl", gotAuditUser)
}
