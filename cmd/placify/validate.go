package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nocap-placify/placify/pkg/adapters/file"
	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/nocap-placify/placify/pkg/registry"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file-or-dir]",
	Short: "Check wizard definitions",
	Long: `Parses a wizard YAML file, or every wizard in a directory, and reports
structural problems: missing targets, unknown field kinds, fields on more than
one step, a last step that is not a review step or duplicate wizard IDs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "."
		if dir, _ := cmd.Flags().GetString("definitions"); dir != "" {
			path = dir
		}
		if len(args) > 0 {
			path = args[0]
		}

		defs, err := loadDefinitions(cmd.Context(), path)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		for _, def := range defs {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d steps, %d fields\n", def.ID, len(def.Steps), len(def.Fields))
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Wizards are valid! ✅")
		return nil
	},
}

func loadDefinitions(ctx context.Context, path string) ([]*domain.Definition, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var defs []*domain.Definition
	if info.IsDir() {
		defs, err = file.NewLoader(path).Load(ctx)
	} else {
		var data []byte
		if data, err = os.ReadFile(path); err == nil {
			var def *domain.Definition
			def, err = file.Parse(data)
			defs = []*domain.Definition{def}
		}
	}
	if err != nil {
		return nil, err
	}
	if err := registry.NewRegistry().Replace(defs); err != nil {
		return nil, err
	}
	return defs, nil
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
