package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newModelsCmd(envFor func(*cobra.Command) (*cliEnv, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the models accepted by the pipeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := envFor(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, headerStyle.Render("Models:"))
			for _, name := range env.catalog.Models() {
				if name == env.catalog.Default() {
					fmt.Fprintf(out, "  %s %s\n", name, mutedStyle.Render("(default)"))
					continue
				}
				fmt.Fprintf(out, "  %s\n", name)
			}
			return nil
		},
	}
}
