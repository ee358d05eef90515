// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <input>",
	Short: "Parse an INI configuration file and print it",
	Long: `Show parses an INI configuration file and prints its sections and keys
without writing anything. Use --table for a tabular view or --json to print
the export document (in the configured format) to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, _ := cmd.Flags().GetBool("table")
		asJSON, _ := cmd.Flags().GetBool("json")

		a := &app{
			fs:  afero.NewOsFs(),
			in:  os.Stdin,
			out: os.Stdout,
			log: zlog,
			cfg: appConfig,
		}
		return a.show(args[0], viewOptions{table: table}, asJSON)
	},
}

func init() {
	showCmd.Flags().Bool("table", false, "print as a SECTION / KEY / VALUE table")
	showCmd.Flags().Bool("json", false, "print the export document instead of a listing")

	rootCmd.AddCommand(showCmd)
}
