package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <category> <partial>",
		Short: "Resolve a partial name to its canonical spelling",
		Long:  "Prints the single canonical name in the category containing the partial name. Fails when none or several match.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				name, err := d.DictionaryHandler.HandleResolve(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Println(name)
				return nil
			})
		},
	}
}
