// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/report-engine/internal/container"
	"github.com/pdiddy/report-engine/internal/ingest"
	"github.com/pdiddy/report-engine/internal/report"
	"github.com/pdiddy/report-engine/internal/secrets"
	"github.com/pdiddy/report-engine/pkg/types"
)

const defaultUserAgent = appName + "/0.1"

// setDefaults registers the default value of every configuration key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("assistant.provider", string(types.ProviderClaude))
	v.SetDefault("assistant.model", "")
	v.SetDefault("assistant.max_tokens", 4096)
	v.SetDefault("assistant.instructions", "")
	v.SetDefault("assistant.timeout", "5m")

	v.SetDefault("output.dir", "reports")
	v.SetDefault("output.formats", []string{report.FormatDocx})
	v.SetDefault("output.title", report.DefaultTitle)
	v.SetDefault("output.footer", "")
	v.SetDefault("output.prefix", report.DefaultPrefix)

	v.SetDefault("archive.backend", string(types.ArchiveSQLite))
	v.SetDefault("archive.path", "reports/archive.db")

	v.SetDefault("ingest.markitdown", false)
	v.SetDefault("ingest.image", ingest.ImageMarkitdown)

	v.SetDefault("serve.addr", ":8080")
	v.SetDefault("serve.max_upload_bytes", 10<<20)
}

// bindFlags binds command flags to configuration keys. Flags are bound when
// the command runs so commands sharing a key do not overwrite each other.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for flag, key := range keys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	return nil
}

// loadConfig reads the effective configuration.
func loadConfig(v *viper.Viper) types.PipelineConfig {
	provider := types.AssistantProvider(strings.ToLower(v.GetString("assistant.provider")))
	keyName := secrets.AnthropicAPIKey
	if provider == types.ProviderOpenAI {
		keyName = secrets.OpenAIAPIKey
	}

	return types.PipelineConfig{
		Assistant: types.AssistantConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("assistant.timeout"),
				UserAgent: defaultUserAgent,
			},
			AIConfig: types.AIConfig{
				Provider:     provider,
				Model:        v.GetString("assistant.model"),
				APIKey:       secretDefault(keyName, v.GetString("assistant.api_key")),
				MaxTokens:    v.GetInt("assistant.max_tokens"),
				Instructions: v.GetString("assistant.instructions"),
			},
		},
		Output: types.OutputConfig{
			Dir:     v.GetString("output.dir"),
			Formats: v.GetStringSlice("output.formats"),
			Title:   v.GetString("output.title"),
			Footer:  v.GetString("output.footer"),
			Prefix:  v.GetString("output.prefix"),
		},
		Archive: types.ArchiveConfig{
			Backend: types.ArchiveBackend(strings.ToLower(v.GetString("archive.backend"))),
			Path:    v.GetString("archive.path"),
		},
		Serve: types.ServeConfig{
			Addr:           v.GetString("serve.addr"),
			MaxUploadBytes: v.GetInt64("serve.max_upload_bytes"),
		},
	}
}

// extractors returns the ingest registry. The markitdown extractor is added
// when enabled and a container runtime with the image is available.
func extractors(ctx context.Context, v *viper.Viper) *ingest.Registry {
	reg := ingest.DefaultRegistry()
	if !v.GetBool("ingest.markitdown") {
		return reg
	}
	rt, err := container.DetectRuntime(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: PDF and PowerPoint input disabled: %v\n", err)
		return reg
	}
	m, err := ingest.NewMarkitdown(ctx, rt, v.GetString("ingest.image"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: PDF and PowerPoint input disabled: %v\n", err)
		return reg
	}
	reg.Register(m)
	return reg
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Config prints the configuration after applying defaults, the config file,
and REPORT_ENGINE_* environment variables. The API key is redacted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(viper.GetViper())
		if cfg.Assistant.APIKey != "" {
			cfg.Assistant.APIKey = "<redacted>"
		}
		return encodeYAML(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
