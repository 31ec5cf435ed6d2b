package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the project for missing fields, broken references and cycles",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject()
		if err != nil {
			return err
		}
		if err := validateProject(p); err != nil {
			return err
		}
		fmt.Printf("ok: %d routes, %d schemas, %d models, %d middlewares, %d handlers\n",
			len(p.Routes), len(p.Schemas), len(p.Models), len(p.Middlewares), len(p.Handlers))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
