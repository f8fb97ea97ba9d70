// Package main provides the woometa binary entry point.
// Woometa generates DIWOO-compliant metadata for Dutch government documents
// using an LLM, with deterministic fallbacks for everything the model gets
// wrong.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	// Register LLM providers via init()
	_ "github.com/opengov-nl/woometa/llm/providers"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/opengov-nl/woometa/config"
	"github.com/opengov-nl/woometa/generator"
	"github.com/opengov-nl/woometa/instructions"
	"github.com/opengov-nl/woometa/llm"
	"github.com/opengov-nl/woometa/prompts"
	"github.com/opengov-nl/woometa/publicatiebank"
	"github.com/opengov-nl/woometa/taxonomy"
	"github.com/opengov-nl/woometa/transform"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "woometa"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "DIWOO metadata generation for Woo documents",
		Long: `Woometa analyzes Dutch government document text and generates
DIWOO-compliant metadata: information categories, document types, titles,
handling events and relations, backed by the TOOI value lists.

Configuration is read from woometa.yaml, ~/.config/woometa/config.yaml and
WOOMETA_* environment variables.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(generateCmd())
	cmd.AddCommand(categoriesCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

func configureLogging(logLevel string) {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

func generateCmd() *cobra.Command {
	var (
		filePath          string
		documentID        string
		mode              string
		model             string
		publisherName     string
		publisherURI      string
		instruction       string
		includeConfidence bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate DIWOO metadata for a document",
		Long: `Generate reads document text from a file, from stdin, or from the
publicatiebank (--document), sends it to the configured LLM, and prints the
generated metadata as JSON on stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := config.NewLoader(nil).Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			outputMode := prompts.ModeJSON
			switch strings.ToLower(mode) {
			case "json", "":
			case "xml":
				outputMode = prompts.ModeXML
			default:
				return fmt.Errorf("unknown mode %q, expected json or xml", mode)
			}

			text, fileName, err := readDocumentText(ctx, cfg, filePath, documentID)
			if err != nil {
				return err
			}

			instrLoader := instructions.NewLoader(cfg.Instructions.Dir, nil)
			if _, err := os.Stat(cfg.Instructions.Dir); err == nil {
				go func() {
					if err := instrLoader.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
						slog.Warn("Instruction watcher stopped", slog.String("error", err.Error()))
					}
				}()
			}

			gen := generator.New(newLLMClient(cfg), generator.Options{
				DefaultModel:  cfg.LLM.Model,
				Temperature:   cfg.LLM.Temperature,
				MaxTokens:     cfg.LLM.MaxTokens,
				MaxTextLength: cfg.Generation.MaxTextLength,
				ValidateXML:   cfg.Generation.ValidateXML,
				Instructions:  instrLoader,
			}, slog.Default())

			req := generator.Request{
				DocumentText:      text,
				FileName:          fileName,
				PreferredModel:    model,
				Endpoint:          cfg.LLM.Endpoint,
				Instruction:       instruction,
				IncludeConfidence: includeConfidence,
			}
			if publisherName != "" {
				req.PublisherHint = &transform.PublisherHint{
					Name: publisherName,
					URI:  publisherURI,
				}
			}

			resp := gen.Generate(ctx, req, outputMode)

			out, err := json.MarshalIndent(resp, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal response: %w", err)
			}
			fmt.Println(string(out))

			if !resp.Success {
				return fmt.Errorf("generation failed: %s", resp.Error)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Document file to read ('-' or empty reads stdin)")
	cmd.Flags().StringVar(&documentID, "document", "", "Publicatiebank document UUID to fetch")
	cmd.Flags().StringVarP(&mode, "mode", "m", "json", "Output mode (json or xml)")
	cmd.Flags().StringVar(&model, "model", "", "Model override for this request")
	cmd.Flags().StringVar(&publisherName, "publisher", "", "Publishing organisation hint")
	cmd.Flags().StringVar(&publisherURI, "publisher-uri", "", "TOOI identifier of the publishing organisation")
	cmd.Flags().StringVar(&instruction, "instruction", "", "Instruction template to append to the system prompt")
	cmd.Flags().BoolVar(&includeConfidence, "include-confidence", false, "Include model confidence scores")

	return cmd
}

// readDocumentText resolves the document source: publicatiebank UUID, file
// path, or stdin.
func readDocumentText(ctx context.Context, cfg *config.Config, filePath, documentID string) (text, fileName string, err error) {
	if documentID != "" {
		id, err := uuid.Parse(documentID)
		if err != nil {
			return "", "", fmt.Errorf("invalid document UUID: %w", err)
		}

		client := publicatiebank.NewClient(cfg.Publicatiebank.URL, cfg.Publicatiebank.Token)
		if cfg.Publicatiebank.AuditUser != "" {
			client = publicatiebank.NewClient(cfg.Publicatiebank.URL, cfg.Publicatiebank.Token,
				publicatiebank.WithAuditUser(cfg.Publicatiebank.AuditUser))
		}

		doc, err := client.GetDocument(ctx, id)
		if err != nil {
			return "", "", fmt.Errorf("fetch document: %w", err)
		}

		res, err := publicatiebank.NewExtractor(nil).Text(doc.Content, doc.FileName)
		if err != nil {
			return "", "", err
		}
		return res.Text, doc.FileName, nil
	}

	if filePath != "" && filePath != "-" {
		content, err := os.ReadFile(filePath)
		if err != nil {
			return "", "", fmt.Errorf("read document file: %w", err)
		}
		res, err := publicatiebank.NewExtractor(nil).Text(content, filePath)
		if err != nil {
			return "", "", err
		}
		return res.Text, filePath, nil
	}

	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", fmt.Errorf("read stdin: %w", err)
	}
	return string(content), "", nil
}

func newLLMClient(cfg *config.Config) *llm.Client {
	opts := []llm.ClientOption{
		llm.WithRetryConfig(llm.RetryConfig{
			MaxAttempts:       cfg.LLM.MaxRetries,
			BackoffBase:       2 * time.Second,
			BackoffMultiplier: 2.0,
			MaxBackoff:        30 * time.Second,
		}),
	}
	if cfg.LLM.Timeout > 0 {
		opts = append(opts, llm.WithHTTPClient(&http.Client{Timeout: cfg.LLM.Timeout}))
	}
	if cfg.LLM.AnthropicBaseURL != "" {
		opts = append(opts, llm.WithAnthropicBaseURL(cfg.LLM.AnthropicBaseURL))
	}
	if cfg.LLM.Referer != "" || cfg.LLM.Title != "" {
		opts = append(opts, llm.WithAttribution(cfg.LLM.Referer, cfg.LLM.Title))
	}
	return llm.NewClient(cfg.LLM.Provider, cfg.LLM.APIKey, opts...)
}

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the 17 Woo information categories",
		Run: func(cmd *cobra.Command, args []string) {
			for _, cat := range taxonomy.Categories() {
				fmt.Printf("%-40s %-12s artikel %-6s %s\n",
					cat.Name(), cat.Code(), cat.Article(), cat.Label())
			}
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	}
}
