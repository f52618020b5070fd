package main

import (
	"fmt"

	"github.com/nocap-placify/placify/internal/presentation/graph"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph <wizard>",
	Short: "Export the wizard as a Mermaid diagram",
	Long:  `Outputs a Mermaid flowchart (graph LR) of a wizard's steps and its submission target.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		a, err := newApp(cmd.Context(), cfg, logger, false)
		if err != nil {
			return err
		}
		defer a.Close()

		def, err := a.engine.Wizard(args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(def, nil))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
