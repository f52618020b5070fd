package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nocap-placify/placify/internal/importer"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <wizard> <file.csv>",
	Short: "Register a CSV export through a wizard",
	Long: `Feeds every row of a CSV file through a wizard, validating and submitting
it exactly like a hand-filled session. Students use the columns
srn,name,ph_no,gender,age,email,sem,cgpa,degree,stream,mentor_name,
github_profile,leetcode_profile,linkedin_link,resume; mentor sessions use
mentor_name,srn,date,advice.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		concurrency, _ := cmd.Flags().GetInt("concurrency")

		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()

		ctx := cmd.Context()
		a, err := newApp(ctx, cfg, logger, false)
		if err != nil {
			return err
		}
		defer a.Close()

		imp := importer.New(a.engine, importer.WithConcurrency(concurrency), importer.WithLogger(logger))
		report, err := imp.Import(ctx, args[0], f)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
		if report.Failed > 0 {
			return fmt.Errorf("%d of %d rows failed", report.Failed, len(report.Rows))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().Int("concurrency", importer.DefaultConcurrency, "Rows submitted in parallel")
}
