package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cardtrail",
	Short: "Cardtrail turns Trello board history into SankeyMATIC flow data",
	Long: `Cardtrail fetches a Trello board's action history, rebuilds the journey of
every card across the board's lists and prints the transition counts in the
SankeyMATIC text format ("Source [count] Target").`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().String("layout", "", "Path to a pipeline layout YAML file")
	rootCmd.PersistentFlags().Bool("normalize", false, "Map list names onto the canonical pipeline and balance flows")
}
