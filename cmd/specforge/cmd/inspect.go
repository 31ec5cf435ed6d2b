package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/specforge/specforge/compiler/ir"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [handler]",
	Short: "Print the lowered routes and handler statement trees",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject()
		if err != nil {
			return err
		}
		prj, err := ir.ConvertProject(p)
		if err != nil {
			return err
		}
		if len(args) == 1 {
			for _, h := range prj.Handlers {
				if h.Name == args[0] {
					fmt.Println(ir.DrawHandler(h))
					return nil
				}
			}
			return fmt.Errorf("no handler named %q", args[0])
		}
		for _, r := range prj.Routes {
			for _, m := range r.Methods {
				fmt.Printf("%-6s %s -> %s\n", m.Method, r.Path, m.Handler)
			}
		}
		for _, h := range prj.Handlers {
			fmt.Printf("\n%s (tier %d)\n%s\n", h.Name, h.MaxTier(), ir.DrawHandler(h))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
