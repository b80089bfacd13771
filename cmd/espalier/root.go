package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "espalier",
	Short: "Espalier is a questionnaire flow resolution engine",
	Long:  `Espalier serves dynamic questionnaires: it merges incoming answers into saved session progress, prunes branches invalidated by answer edits, and resolves the next question to ask.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("definition", "d", "questionnaire.json", "Path to the questionnaire definition (JSON or YAML)")
}
