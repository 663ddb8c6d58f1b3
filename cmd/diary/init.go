// Init command creates the config directory and an empty diary file.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and an empty diary",
		Long: `Init writes a default config.yaml to the configuration directory if
none exists, then creates the diary file if it is missing. Existing
records are never touched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// config.yaml is created while loading configuration.
			d, err := a.openDiary()
			if err != nil {
				return err
			}
			defer d.Close()

			if err := d.Save(); err != nil {
				return classify("create diary", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config: %s\nDiary:  %s (%d records)\n", a.configDir, d.Path(), d.Len())
			return nil
		},
	}
}
