// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/report-engine/internal/convert"
	"github.com/pdiddy/report-engine/internal/report"
)

var convertCmd = &cobra.Command{
	Use:   "convert <files...>",
	Short: "Convert saved assistant replies into report documents",
	Long: `Convert reads saved assistant replies (.txt or .md, optionally with the YAML
header written by the md format), normalizes their headings, and writes one
document per configured format next to each other in the output directory.
Documents that already exist are skipped.`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, map[string]string{
			"output-dir": "output.dir",
			"format":     "output.formats",
			"title":      "output.title",
			"footer":     "output.footer",
		})
	},
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("output-dir", "", "directory for converted documents")
	convertCmd.Flags().StringSlice("format", nil, "document formats: docx, md, html")
	convertCmd.Flags().String("title", "", "document title when the file has none")
	convertCmd.Flags().String("footer", "", "footer text placed in every document")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper())

	writers, err := report.WritersFor(cfg.Output.Formats)
	if err != nil {
		return err
	}

	info := convert.ReportInfo{
		Title:  cfg.Output.Title,
		Footer: cfg.Output.Footer,
	}
	result := convert.ConvertBatch(args, cfg.Output.Dir, writers, info, cmd.OutOrStdout())
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}
