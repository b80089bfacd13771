package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lbatista/espalier/internal/definition"
	"github.com/lbatista/espalier/internal/flow"
	"github.com/lbatista/espalier/pkg/adapters/file"
)

var validateCmd = &cobra.Command{
	Use:   "validate [definition]",
	Short: "Check a questionnaire definition for consistency",
	Long:  `Loads a questionnaire file and reports duplicate codes, dangling child references, shape violations, and reference cycles.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("definition")
		if len(args) > 0 {
			path = args[0]
		}

		q, err := file.NewLoader(path).Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load definition: %w", err)
		}
		if err := definition.Validate(q); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		g := flow.NewGraph(q)
		fmt.Printf("%s is valid: %d questions, max depth %d\n",
			q.QuestionnaireID, len(q.Questions), g.MaxDepth())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
