package publicatiebank

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// ErrExtraction is returned when no text can be extracted from a document.
var ErrExtraction = errors.New("document text extraction failed")

var excessiveLinesRe = regexp.MustCompile(`\n{4,}`)

// ExtractResult holds the text pulled out of a document.
type ExtractResult struct {
	// Title is the document title when the format carries one.
	Title string
	// Text is the extracted plain text, markdown-shaped for HTML input.
	Text string
}

// Extractor converts document content to plain text for prompt building.
// HTML goes through main-content extraction and markdown conversion; text
// formats are decoded directly.
type Extractor struct {
	converter *md.Converter
	logger    *slog.Logger
}

// NewExtractor creates a text extractor.
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	return &Extractor{
		converter: converter,
		logger:    logger,
	}
}

// Text extracts text from raw document content. The file name's extension
// guides format detection, with content sniffing as backup.
func (e *Extractor) Text(content []byte, fileName string) (*ExtractResult, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrExtraction)
	}

	ext := strings.ToLower(filepath.Ext(fileName))

	switch {
	case ext == ".html" || ext == ".htm" || looksLikeHTML(content):
		return e.htmlText(content)
	case bytes.HasPrefix(content, []byte("%PDF")):
		return nil, fmt.Errorf("%w: PDF text extraction is not supported, supply extracted text", ErrExtraction)
	default:
		return plainText(content)
	}
}

// htmlText extracts the main content from an HTML document and converts it
// to markdown. When readability finds no article the whole document is
// converted instead.
func (e *Extractor) htmlText(content []byte) (*ExtractResult, error) {
	title := htmlTitle(content)

	body := string(content)
	pageURL, _ := url.Parse("https://localhost/document")
	article, err := readability.FromReader(bytes.NewReader(content), pageURL)
	if err == nil && strings.TrimSpace(article.Content) != "" {
		body = article.Content
		if title == "" {
			title = article.Title
		}
	} else {
		e.logger.Debug("readability found no main content, converting full document")
	}

	markdown, err := e.converter.ConvertString(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	markdown = excessiveLinesRe.ReplaceAllString(markdown, "\n\n\n")
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return nil, fmt.Errorf("%w: no text in HTML document", ErrExtraction)
	}

	return &ExtractResult{Title: title, Text: markdown}, nil
}

// plainText decodes content as UTF-8, falling back to Latin-1. Latin-1
// decoding cannot fail, so every byte sequence yields some text.
func plainText(content []byte) (*ExtractResult, error) {
	var text string
	if utf8.Valid(content) {
		text = string(content)
	} else {
		runes := make([]rune, len(content))
		for i, b := range content {
			runes[i] = rune(b)
		}
		text = string(runes)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: document contains no text", ErrExtraction)
	}
	return &ExtractResult{Text: text}, nil
}

// looksLikeHTML sniffs for an HTML document start.
func looksLikeHTML(content []byte) bool {
	head := bytes.ToLower(bytes.TrimSpace(content))
	if len(head) > 256 {
		head = head[:256]
	}
	return bytes.HasPrefix(head, []byte("<!doctype html")) ||
		bytes.HasPrefix(head, []byte("<html"))
}

// htmlTitle extracts the title element from an HTML document.
func htmlTitle(content []byte) string {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return ""
	}

	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
			title = strings.TrimSpace(n.FirstChild.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if title != "" {
				return
			}
			walk(c)
		}
	}
	walk(doc)

	return title
}
