package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/specforge/specforge/compiler/gen"
	"github.com/specforge/specforge/compiler/ir"
	"github.com/specforge/specforge/compiler/load"
	"github.com/specforge/specforge/spec"
)

var watchOut string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate on every spec change until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := viper.GetString("dir")
		if dir == "" {
			dir = projectDir
		}
		w, err := load.NewWatcher(dir)
		if err != nil {
			return err
		}
		defer w.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// First build before the first change.
		if p, err := load.Load(dir); err == nil {
			regenerate(p)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}

		fmt.Printf("watching %s\n", dir)
		err = w.Run(ctx, func(p *spec.Project, err error) {
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return
			}
			regenerate(p)
		})
		if ctx.Err() != nil {
			return nil
		}
		return err
	},
}

// regenerate validates and generates one loaded project, reporting failures
// without aborting the watch.
func regenerate(p *spec.Project) {
	start := time.Now()
	if err := validateProject(p); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	g, err := gen.NewGenerator(p.Config.Target.Language, p.Config.Target.Framework)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	prj, err := ir.ConvertProject(p)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	out := watchOut
	if out == "" {
		out = p.Config.Codegen.OutDir
	}
	generated, err := g.Generate(prj)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	if err := generated.WriteTo(out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Printf("rebuilt %d files in %s\n", generated.FileCount(), time.Since(start).Round(time.Millisecond))
}

func init() {
	watchCmd.Flags().StringVarP(&watchOut, "out", "o", "", "output directory (default from config)")
	rootCmd.AddCommand(watchCmd)
}
