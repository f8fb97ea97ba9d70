// Package generator orchestrates one metadata generation cycle: prompt
// rendering, the LLM call, and output transformation. Every failure is
// returned as a value in the response; Generate never panics and never
// returns an error to its caller.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/opengov-nl/woometa/diwoo"
	"github.com/opengov-nl/woometa/instructions"
	"github.com/opengov-nl/woometa/llm"
	"github.com/opengov-nl/woometa/metrics"
	"github.com/opengov-nl/woometa/prompts"
	"github.com/opengov-nl/woometa/transform"
)

// MinDocumentTextLength is the minimum usable document text size.
const MinDocumentTextLength = 10

// Request describes one generation job.
type Request struct {
	// DocumentText is the extracted text to generate metadata for.
	DocumentText string

	// FileName and SourceURL describe the document's origin, for logging.
	FileName  string
	SourceURL string

	// PublisherHint names the publishing organisation when the caller
	// knows it.
	PublisherHint *transform.PublisherHint

	// PreferredModel overrides the configured default model.
	PreferredModel string

	// APIKey and Endpoint are per-request provider overrides, passed
	// through to the LLM client's routing.
	APIKey   string
	Endpoint string

	// Instruction names an instruction template to append to the system
	// prompt. Requires a configured instruction loader.
	Instruction string

	// IncludeConfidence asks for the model's self-reported confidence
	// scores; without it the suggestion carries the fixed default.
	IncludeConfidence bool
}

// Suggestion is a generated metadata record with its provenance.
type Suggestion struct {
	Metadata         *diwoo.Metadata            `json:"metadata"`
	Confidence       transform.ConfidenceScores `json:"confidence"`
	ModelUsed        string                     `json:"model_used"`
	ProcessingTimeMs int64                      `json:"processing_time_ms"`
	LLMAttempts      int                        `json:"llm_attempts"`
}

// Response is the uniform outcome shape. Exactly one of Suggestion and
// Error is populated.
type Response struct {
	Success    bool        `json:"success"`
	RequestID  string      `json:"request_id"`
	Suggestion *Suggestion `json:"suggestion,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Options carries the configured generation parameters.
type Options struct {
	// DefaultModel is used when the request names no model.
	DefaultModel string

	// Temperature for the LLM call. nil uses the backend default.
	Temperature *float64

	// MaxTokens limits the completion length. 0 uses the backend default.
	MaxTokens int

	// MaxTextLength bounds the document text included in the prompt.
	MaxTextLength int

	// ValidateXML enables structural schema validation on the XML path.
	ValidateXML bool

	// Instructions loads named instruction templates for prompt shaping.
	// nil disables the Request.Instruction field.
	Instructions *instructions.Loader
}

// Generator runs generation cycles against a configured LLM client.
type Generator struct {
	client *llm.Client
	opts   Options
	logger *slog.Logger

	json *transform.JSONTransformer
	xml  *transform.XMLTransformer
}

// New creates a generator.
func New(client *llm.Client, opts Options, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		client: client,
		opts:   opts,
		logger: logger,
		json:   transform.NewJSONTransformer(logger),
		xml:    transform.NewXMLTransformer(logger),
	}
}

// Generate runs one generation cycle in the given output mode.
func (g *Generator) Generate(ctx context.Context, req Request, mode prompts.Mode) Response {
	requestID := uuid.New().String()
	startedAt := time.Now()

	g.logger.Info("starting metadata generation",
		"request_id", requestID,
		"mode", mode,
		"text_length", len(req.DocumentText),
		"file_name", req.FileName,
		"has_publisher_hint", req.PublisherHint != nil)

	if utf8.RuneCountInString(req.DocumentText) < MinDocumentTextLength {
		return g.failure(requestID, mode,
			fmt.Sprintf("document text too short (minimum %d characters)", MinDocumentTextLength))
	}

	var hintName string
	if req.PublisherHint != nil {
		hintName = req.PublisherHint.Name
	}

	model := req.PreferredModel
	if model == "" {
		model = g.opts.DefaultModel
	}

	systemPrompt := prompts.SystemPrompt(mode)
	if req.Instruction != "" {
		if g.opts.Instructions == nil {
			return g.failure(requestID, mode, "no instruction loader configured")
		}
		instruction, err := g.opts.Instructions.Load(req.Instruction)
		if err != nil {
			return g.failure(requestID, mode, err.Error())
		}
		systemPrompt += "\n\n" + instruction
	}

	completion, err := g.client.Complete(ctx, llm.Request{
		Model: model,
		Messages: []llm.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompts.ExtractionPrompt(req.DocumentText, hintName, g.opts.MaxTextLength, mode)},
		},
		Temperature:  g.opts.Temperature,
		MaxTokens:    g.opts.MaxTokens,
		JSONResponse: mode == prompts.ModeJSON,
		Endpoint:     req.Endpoint,
		APIKey:       req.APIKey,
	})
	if err != nil {
		return g.failure(requestID, mode, err.Error())
	}

	var result *transform.Result
	if mode == prompts.ModeXML {
		result, err = g.xml.Transform(completion.Content, g.opts.ValidateXML)
	} else {
		result, err = g.json.Transform(completion.Content, req.PublisherHint)
	}
	if err != nil {
		return g.failure(requestID, mode, err.Error())
	}

	confidence := result.Confidence
	if !req.IncludeConfidence {
		confidence = transform.ConfidenceScores{Overall: transform.DefaultOverallConfidence}
	}

	elapsed := time.Since(startedAt)
	metrics.GenerationTotal.WithLabelValues(string(mode), "success").Inc()
	metrics.GenerationConfidence.Observe(confidence.Overall)

	g.logger.Info("metadata generation completed",
		"request_id", requestID,
		"model", completion.Model,
		"elapsed_ms", elapsed.Milliseconds(),
		"llm_attempts", completion.Attempts,
		"warnings", len(result.Warnings),
		"overall_confidence", confidence.Overall)

	return Response{
		Success:   true,
		RequestID: requestID,
		Suggestion: &Suggestion{
			Metadata:         result.Record,
			Confidence:       confidence,
			ModelUsed:        completion.Model,
			ProcessingTimeMs: elapsed.Milliseconds(),
			LLMAttempts:      completion.Attempts,
		},
	}
}

func (g *Generator) failure(requestID string, mode prompts.Mode, message string) Response {
	metrics.GenerationTotal.WithLabelValues(string(mode), "error").Inc()
	g.logger.Error("metadata generation failed",
		"request_id", requestID,
		"mode", mode,
		"error", message)
	return Response{
		Success:   false,
		RequestID: requestID,
		Error:     message,
	}
}
