package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/specforge/specforge/compiler/ir"
	"github.com/specforge/specforge/compiler/openapi"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the project as an OpenAPI 3.1 document",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject()
		if err != nil {
			return err
		}
		if err := validateProject(p); err != nil {
			return err
		}
		prj, err := ir.ConvertProject(p)
		if err != nil {
			return err
		}
		doc := openapi.Export(prj)

		var out []byte
		switch exportFormat {
		case "yaml":
			out, err = openapi.MarshalYAML(doc)
		case "json":
			out, err = json.MarshalIndent(doc, "", "  ")
		default:
			return fmt.Errorf("unknown format %q (yaml or json)", exportFormat)
		}
		if err != nil {
			return err
		}
		if exportOut == "" {
			_, err = os.Stdout.Write(out)
			return err
		}
		return os.WriteFile(exportOut, out, 0o644)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "yaml", "output format: yaml or json")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
