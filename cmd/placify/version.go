package main

import (
	"fmt"
	"strings"

	"github.com/nocap-placify/placify"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of placify",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "placify version %s\n", strings.TrimSpace(placify.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
