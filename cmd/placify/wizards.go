package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/nocap-placify/placify/pkg/adapters/file"
	"github.com/spf13/cobra"
)

var wizardsCmd = &cobra.Command{
	Use:   "wizards",
	Short: "List the available wizards",
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

		if id, _ := cmd.Flags().GetString("export"); id != "" {
			def, err := a.engine.Wizard(id)
			if err != nil {
				return err
			}
			data, err := file.Marshal(def)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTITLE\tSTEPS\tTARGET")
		for _, def := range a.engine.Wizards() {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", def.ID, def.Title, len(def.Steps), def.Target)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(wizardsCmd)
	wizardsCmd.Flags().String("export", "", "Print a wizard as YAML, e.g. to start a definitions directory")
}
