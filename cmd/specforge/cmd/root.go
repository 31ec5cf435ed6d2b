// Package cmd holds the specforge command tree.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/specforge/specforge/compiler/load"
	"github.com/specforge/specforge/compiler/validate"
	"github.com/specforge/specforge/spec"
)

var projectDir string

var rootCmd = &cobra.Command{
	Use:   "specforge",
	Short: "specforge compiles declarative backend specs into server code",
	Long: `specforge reads a project of route, schema, model, middleware and
handler documents, validates it, and generates a runnable server for the
configured language and framework target.`,
	SilenceUsage: true,
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectDir, "dir", "d", ".", "project root containing the specforge config")
	viper.SetEnvPrefix("SPECFORGE")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("dir", rootCmd.PersistentFlags().Lookup("dir"))
}

// loadProject reads the project at --dir, honoring the SPECFORGE_DIR
// override.
func loadProject() (*spec.Project, error) {
	dir := viper.GetString("dir")
	if dir == "" {
		dir = projectDir
	}
	p, err := load.Load(dir)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// validateProject runs validation and prints every diagnostic. It returns an
// error when the report contains errors.
func validateProject(p *spec.Project) error {
	report := validate.Validate(p)
	for _, d := range report.Diagnostics() {
		fmt.Fprintln(os.Stderr, d.String())
	}
	if !report.OK() {
		return fmt.Errorf("validation failed with %d error(s)", len(report.Errors()))
	}
	return nil
}
