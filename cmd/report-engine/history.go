// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/report-engine/internal/session"
	"github.com/pdiddy/report-engine/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "List recorded report requests or show one",
	Long: `History lists past report requests from the archive, newest first. With an
ID it prints that request's normalized Markdown, or its error if it failed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of requests to list (0 = all)")
	historyCmd.Flags().String("format", "table", "output format: table, yaml, or json")
	historyCmd.Flags().Bool("raw", false, "with an ID, print the assistant's unprocessed reply")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper())
	store, err := session.Open(cfg.Archive)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	format, _ := cmd.Flags().GetString("format")

	if len(args) == 1 {
		s, err := store.Get(ctx, args[0])
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		raw, _ := cmd.Flags().GetBool("raw")
		return printSession(out, s, format, raw)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	list, err := store.List(ctx, limit)
	if err != nil {
		return err
	}
	return printSessions(out, list, format)
}

func printSessions(w io.Writer, list []*types.ReportSession, format string) error {
	switch format {
	case "table", "":
		if len(list) == 0 {
			fmt.Fprintln(w, "No reports recorded.")
			return nil
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSTATUS\tCREATED\tSOURCE")
		for _, s := range list {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.Status, s.CreatedAt.Local().Format("2006-01-02 15:04"), s.SourceName)
		}
		return tw.Flush()
	case "yaml":
		return encodeYAML(w, list)
	case "json":
		return encodeJSON(w, list)
	default:
		return fmt.Errorf("unsupported format %q: use table, yaml, or json", format)
	}
}

func printSession(w io.Writer, s *types.ReportSession, format string, raw bool) error {
	switch format {
	case "table", "":
		if s.Status == types.ReportFailed {
			return fmt.Errorf("report %s failed: %s", s.ID, s.Error)
		}
		text := s.Markdown
		if raw {
			text = s.RawText
		}
		fmt.Fprintln(w, text)
		return nil
	case "yaml":
		return encodeYAML(w, s)
	case "json":
		return encodeJSON(w, s)
	default:
		return fmt.Errorf("unsupported format %q: use table, yaml, or json", format)
	}
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
