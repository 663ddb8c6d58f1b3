// Shell command runs the interactive diary session.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/diary/internal/shell"
)

func newShellCmd(a *app) *cobra.Command {
	var noClear bool
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Browse and edit the diary interactively",
		Long: `Shell shows the newest record and reads one command per line.

Commands (English): p previous, n next, new add a record after the current
one, save finish a note, del delete the current record, q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell(cmd, noClear)
		},
	}
	cmd.Flags().BoolVar(&noClear, "no-clear", false, "do not clear the screen between commands")
	return cmd
}

func (a *app) runShell(cmd *cobra.Command, noClear bool) error {
	cat, err := a.catalog()
	if err != nil {
		return err
	}

	d, err := a.openDiary()
	if err != nil {
		return err
	}
	defer d.Close()

	a.log.Debug("starting session", "path", d.Path(), "records", d.Len(), "language", cat.Language())
	s := shell.New(d, cat, cmd.InOrStdin(), cmd.OutOrStdout(), shell.Options{
		NoClear: noClear,
		Logger:  a.log,
	})
	if err := s.Run(); err != nil {
		return sysError("session: %w", err)
	}
	return nil
}
