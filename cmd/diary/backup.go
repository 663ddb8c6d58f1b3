// Backup and restore commands.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBackupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backup <file>",
		Short: "Write a compressed copy of the diary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.openDiary()
			if err != nil {
				return err
			}
			defer d.Close()

			if err := d.Backup(args[0]); err != nil {
				return classify("backup", err)
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"path": args[0], "records": d.Len()})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backed up %d records to %s\n", d.Len(), args[0])
			return nil
		},
	}
}

func newRestoreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <file>",
		Short: "Replace the diary with a backup",
		Long: `Restore replaces every record in the diary with the content of a file
written by "diary backup". The diary is left untouched when the backup
cannot be read.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.openDiary()
			if err != nil {
				return err
			}
			defer d.Close()

			n, err := d.Restore(args[0])
			if err != nil {
				return classify("restore", err)
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"path": args[0], "records": n})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %d records from %s\n", n, args[0])
			return nil
		},
	}
}
