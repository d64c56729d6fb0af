// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/report-engine/internal/assistant"
	"github.com/pdiddy/report-engine/internal/generate"
	"github.com/pdiddy/report-engine/internal/report"
	"github.com/pdiddy/report-engine/internal/server"
	"github.com/pdiddy/report-engine/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the report upload page",
	Long: `Serve starts the web tool: upload a client data file, read the generated
report on screen, and download it as a document. Every request is recorded
in the archive and listed on the start page.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, map[string]string{
			"addr":     "serve.addr",
			"provider": "assistant.provider",
			"model":    "assistant.model",
		})
	},
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	serveCmd.Flags().String("provider", "", "assistant provider: claude or openai")
	serveCmd.Flags().String("model", "", "assistant model identifier")
	serveCmd.Flags().Bool("debug", false, "run gin in debug mode")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if debug, _ := cmd.Flags().GetBool("debug"); !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	v := viper.GetViper()
	cfg := loadConfig(v)

	if _, err := report.WritersFor(cfg.Output.Formats); err != nil {
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

	gen := &generate.Generator{
		Extractors: extractors(ctx, v),
		Assistant:  ai,
		Sessions:   store,
		Log:        os.Stderr,
	}
	srv := server.New(gen, store, server.Config{
		Report:         report.Options{Title: cfg.Output.Title, Footer: cfg.Output.Footer},
		Prefix:         cfg.Output.Prefix,
		Formats:        append(cfg.Output.Formats, report.Formats()...),
		MaxUploadBytes: cfg.Serve.MaxUploadBytes,
		Log:            os.Stderr,
	})

	fmt.Fprintf(os.Stderr, "Serving on %s\n", cfg.Serve.Addr)
	return srv.Run(ctx, cfg.Serve.Addr)
}
