package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lute v%s %s %s\n", Version, BuildDate, Commit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
