package main

import (
	"fmt"
	"strings"

	"cardtrail"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of cardtrail",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cardtrail version %s\n", strings.TrimSpace(cardtrail.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
