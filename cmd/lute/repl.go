package main

import (
	"os"

	"github.com/spf13/cobra"

	"lute/internal/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Run: func(cmd *cobra.Command, args []string) {
		repl.Start(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
