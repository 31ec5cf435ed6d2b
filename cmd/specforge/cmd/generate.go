package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/specforge/specforge/compiler/gen"
	"github.com/specforge/specforge/compiler/ir"
	"github.com/specforge/specforge/spec"
)

var (
	genOut       string
	genLanguage  string
	genFramework string
	genNoCache   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate server code for the configured target",
	Long: `Generate validates the project, lowers it to the intermediate
representation and emits source files for the target language and framework.
Flags override the target in the project config. Unchanged files are skipped
via a content-hash cache under the output directory unless --no-cache is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		runID := uuid.NewString()
		start := time.Now()

		p, err := loadProject()
		if err != nil {
			return err
		}
		if err := validateProject(p); err != nil {
			return err
		}

		lang := p.Config.Target.Language
		fw := p.Config.Target.Framework
		if genLanguage != "" {
			lang = spec.Language(genLanguage)
		}
		if genFramework != "" {
			fw = spec.Framework(genFramework)
		}
		out := genOut
		if out == "" {
			out = p.Config.Codegen.OutDir
		}

		g, err := gen.NewGenerator(lang, fw)
		if err != nil {
			return err
		}
		prj, err := ir.ConvertProject(p)
		if err != nil {
			return err
		}
		generated, err := g.Generate(prj)
		if err != nil {
			return err
		}

		if genNoCache {
			err = generated.WriteTo(out)
		} else {
			var cache *gen.BuildCache
			cache, err = gen.OpenBuildCache(filepath.Join(out, ".specforge.db"))
			if err != nil {
				return err
			}
			defer cache.Close()
			err = generated.WriteToCached(out, cache)
		}
		if err != nil {
			return err
		}

		fmt.Printf("run %s: wrote %d files to %s (%s/%s) in %s\n",
			runID, generated.FileCount(), out, lang, fw, time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", "output directory (default from config)")
	generateCmd.Flags().StringVar(&genLanguage, "lang", "", "target language override")
	generateCmd.Flags().StringVar(&genFramework, "framework", "", "target framework override")
	generateCmd.Flags().BoolVar(&genNoCache, "no-cache", false, "rewrite every file, skipping the build cache")
	rootCmd.AddCommand(generateCmd)
}
