package main

import (
	"fmt"

	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/spf13/cobra"
)

var manCmd = &cobra.Command{
	Use:    "man",
	Short:  "Generate the convene(1) man page",
	Args:   cobra.NoArgs,
	Hidden: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		page, err := mcobra.NewManPage(1, rootCmd)
		if err != nil {
			return fmt.Errorf("build man page: %w", err)
		}

		page = page.WithSection("Copyright", "(C) 2024 Convene Authors\n"+
			"Released under MIT license.")
		_, err = fmt.Fprintln(cmd.OutOrStdout(), page.Build(roff.NewDocument()))
		return err
	},
}
