// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert [input] [output]",
	Short: "Convert an INI configuration file to JSON",
	Long: `Convert parses an INI configuration file and writes it, wrapped with a
UTC timestamp, to the output path as pretty-printed JSON (or YAML with
--format yaml). An existing output file is replaced.

Paths missing from the arguments are asked for interactively. When asked
for an output path in a directory that does not exist, convert offers to
create it; pass --mkdir to create it without asking.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")
	table, _ := cmd.Flags().GetBool("table")
	mkdir, _ := cmd.Flags().GetBool("mkdir")

	a := &app{
		fs:  afero.NewOsFs(),
		in:  os.Stdin,
		out: os.Stdout,
		log: zlog,
		cfg: appConfig,
	}
	return a.convert(args, convertOptions{
		viewOptions: viewOptions{quiet: quiet, table: table},
		mkdir:       mkdir,
	})
}

func init() {
	convertCmd.Flags().Bool("quiet", false, "do not print the parsed configuration")
	convertCmd.Flags().Bool("table", false, "print the parsed configuration as a table")
	convertCmd.Flags().Bool("mkdir", false, "create the output directory if it does not exist")

	rootCmd.AddCommand(convertCmd)
}
