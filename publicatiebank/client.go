// Package publicatiebank is a client for the GPP-publicatiebank document
// repository. Documents are addressed by UUID; the API serves metadata and
// raw file content separately.
package publicatiebank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxDownloadSize caps document downloads to prevent memory exhaustion.
const maxDownloadSize = 100 * 1024 * 1024 // 100MB

// Sentinel errors for the failure modes callers branch on.
var (
	// ErrNotConfigured is returned when no base URL is set.
	ErrNotConfigured = errors.New("publicatiebank is not configured")
	// ErrNotFound is returned when a document UUID is unknown.
	ErrNotFound = errors.New("document not found in publicatiebank")
	// ErrNotReady is returned when the document upload has not completed yet.
	ErrNotReady = errors.New("document upload is not yet completed")
)

// Document is a publicatiebank document with its repository metadata.
type Document struct {
	UUID              string              `json:"uuid"`
	OfficialTitle     string              `json:"officiele_titel"`
	ShortTitle        string              `json:"verkorte_titel"`
	Description       string              `json:"omschrijving"`
	FileName          string              `json:"bestandsnaam"`
	FileFormat        string              `json:"bestandsformaat"`
	FileSize          int64               `json:"bestandsomvang"`
	PublicationStatus string              `json:"publicatiestatus"`
	Kenmerken         []map[string]string `json:"kenmerken"`

	// Content is the raw file content. Only populated by GetDocument.
	Content []byte `json:"-"`
}

// Client talks to a GPP-publicatiebank instance.
type Client struct {
	baseURL   string
	token     string
	auditUser string

	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(client *Client) {
		client.logger = logger
	}
}

// WithAuditUser overrides the audit user identity sent to ODRC.
func WithAuditUser(user string) Option {
	return func(client *Client) {
		client.auditUser = user
	}
}

// NewClient creates a publicatiebank client. An empty baseURL yields a
// client whose calls fail with ErrNotConfigured.
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		token:     token,
		auditUser: "woometa-service",
		httpClient: &http.Client{
			Timeout: 5 * time.Minute, // Large file downloads
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Configured reports whether a base URL is set.
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

// GetMetadata fetches document metadata without its content.
func (c *Client) GetMetadata(ctx context.Context, id uuid.UUID) (*Document, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	url := fmt.Sprintf("%s/api/v2/documenten/%s", c.baseURL, id)
	c.logger.Info("fetching document metadata", "uuid", id.String(), "url", url)

	body, err := c.get(ctx, url, false)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parse document metadata: %w", err)
	}
	return &doc, nil
}

// DownloadContent fetches the raw file content of a document.
func (c *Client) DownloadContent(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	url := fmt.Sprintf("%s/api/v2/documenten/%s/download", c.baseURL, id)
	c.logger.Info("downloading document", "uuid", id.String(), "url", url)

	return c.get(ctx, url, true)
}

// GetDocument fetches metadata and content in one call.
func (c *Client) GetDocument(ctx context.Context, id uuid.UUID) (*Document, error) {
	doc, err := c.GetMetadata(ctx, id)
	if err != nil {
		return nil, err
	}

	content, err := c.DownloadContent(ctx, id)
	if err != nil {
		return nil, err
	}
	doc.Content = content

	c.logger.Info("document retrieved",
		"uuid", id.String(),
		"title", doc.OfficialTitle,
		"size", len(content))
	return doc, nil
}

// get executes a GET request and maps the repository's status codes onto
// the sentinel errors. download toggles the 409 mapping, which only the
// download endpoint uses.
func (c *Client) get(ctx context.Context, url string, download bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("publicatiebank request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case download && resp.StatusCode == http.StatusConflict:
		return nil, ErrNotReady
	case resp.StatusCode != http.StatusOK:
		c.logger.Error("publicatiebank API error", "status", resp.StatusCode, "url", url)
		return nil, fmt.Errorf("publicatiebank API error: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadSize))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return body, nil
}

// setHeaders sets authentication and the ODRC audit headers required for
// request tracking.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}
	req.Header.Set("Audit-User-ID", c.auditUser)
	req.Header.Set("Audit-User-Representation", "Woometa Metadata Generation Service")
	req.Header.Set("Audit-Remarks", "Automated metadata generation")
}
