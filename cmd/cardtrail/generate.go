package main

import (
	"fmt"
	"os"

	"cardtrail/internal/cli"
	"github.com/spf13/cobra"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [board-id]",
	Short: "Generate SankeyMATIC data from a board's card movements",
	Long: `Fetches the board's action history, rebuilds each card's journey across
lists and prints the transition tallies as SankeyMATIC input lines.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := optionsFromFlags(cmd)
		if len(args) > 0 {
			opts.BoardID = args[0]
		}

		if err := cli.RunGenerate(opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func optionsFromFlags(cmd *cobra.Command) cli.Options {
	debug, _ := cmd.Flags().GetBool("debug")
	layout, _ := cmd.Flags().GetString("layout")
	normalize, _ := cmd.Flags().GetBool("normalize")
	summary, _ := cmd.Flags().GetBool("summary")

	return cli.Options{
		LayoutPath: layout,
		Normalize:  normalize,
		Summary:    summary,
		Debug:      debug,
	}
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().Bool("summary", false, "Print a rendered run summary after the payload")

	// Make 'generate' the default when no subcommand is given.
	rootCmd.Args = generateCmd.Args
	rootCmd.Run = generateCmd.Run
	rootCmd.Flags().Bool("summary", false, "Print a rendered run summary after the payload")
}
