// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/report-engine/internal/assistant"
	"github.com/pdiddy/report-engine/internal/convert"
	"github.com/pdiddy/report-engine/internal/generate"
	"github.com/pdiddy/report-engine/internal/report"
	"github.com/pdiddy/report-engine/internal/secrets"
	"github.com/pdiddy/report-engine/internal/session"
	"github.com/pdiddy/report-engine/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate <file>",
	Short: "Generate a report from a client data file",
	Long: `Generate extracts the text of a client data file (.txt, .md, .csv, .docx,
.xlsx, .html, and .pdf/.pptx when markitdown is enabled), sends it to the
assistant with today's date, and writes the formatted report to the output
directory in each configured format.

The request is recorded in the archive whether it succeeds or fails. A
failed request is not retried.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, map[string]string{
			"provider":   "assistant.provider",
			"model":      "assistant.model",
			"output-dir": "output.dir",
			"format":     "output.formats",
			"title":      "output.title",
			"footer":     "output.footer",
		})
	},
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("provider", "", "assistant provider: claude or openai")
	generateCmd.Flags().String("model", "", "assistant model identifier")
	generateCmd.Flags().String("output-dir", "", "directory for generated documents")
	generateCmd.Flags().StringSlice("format", nil, "document formats: docx, md, html")
	generateCmd.Flags().String("title", "", "document title")
	generateCmd.Flags().String("footer", "", "footer text placed in every document")
	generateCmd.Flags().Bool("print", false, "also print the normalized Markdown to stdout")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	v := viper.GetViper()
	cfg := loadConfig(v)

	writers, err := report.WritersFor(cfg.Output.Formats)
	if err != nil {
		return err
	}
	ai, err := assistant.New(cfg.Assistant)
	if err != nil {
		return fmt.Errorf("%w (set %s in .secrets/ or .env, or assistant.api_key)", err, apiKeyName(cfg.Assistant.Provider))
	}
	store, err := session.Open(cfg.Archive)
	if err != nil {
		return err
	}
	defer store.Close()

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	gen := &generate.Generator{
		Extractors: extractors(ctx, v),
		Assistant:  ai,
		Sessions:   store,
		Log:        os.Stderr,
	}
	sess, err := gen.Generate(ctx, filepath.Base(path), f)
	if err != nil {
		return err
	}

	rep, err := report.Build(sess, report.Options{Title: cfg.Output.Title, Footer: cfg.Output.Footer})
	if err != nil {
		return err
	}
	if printMD, _ := cmd.Flags().GetBool("print"); printMD {
		fmt.Fprintln(cmd.OutOrStdout(), rep.Markdown)
	}
	return writeDocuments(cmd.OutOrStdout(), cfg.Output, writers, rep)
}

// writeDocuments writes rep once per writer into the output directory and
// prints each path.
func writeDocuments(w io.Writer, out types.OutputConfig, writers []convert.Writer, rep *types.Report) error {
	if err := os.MkdirAll(out.Dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	stamp := rep.GeneratedAt
	if stamp.IsZero() {
		stamp = time.Now()
	}
	for _, wr := range writers {
		path := filepath.Join(out.Dir, report.FileName(out.Prefix, stamp.Local(), wr.Extension()))
		if err := convert.WriteFile(path, wr, rep); err != nil {
			return err
		}
		fmt.Fprintf(w, "wrote: %s\n", path)
	}
	return nil
}

func apiKeyName(p types.AssistantProvider) string {
	if p == types.ProviderOpenAI {
		return secrets.OpenAIAPIKey
	}
	return secrets.AnthropicAPIKey
}
