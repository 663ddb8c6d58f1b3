// Record commands: add, list, show and delete.
package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/diary/pkg/types"
)

func newAddCmd(a *app) *cobra.Command {
	var date, note string
	cmd := &cobra.Command{
		Use:   "add --date d.m.yyyy [--note text]",
		Short: "Append a record to the diary",
		Long: `Add appends a dated record after the newest one. Without --note the
note is read from standard input.

Example:
  diary add --date 14.3.2024 --note "Walked the dog"
  echo "Rain all day" | diary add --date 15.3.2024`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := types.ParseDate(date)
			if err != nil {
				return userError("invalid date %q: %w", date, err)
			}
			if !cmd.Flags().Changed("note") {
				in, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return sysError("read note: %w", err)
				}
				note = string(in)
			}
			return a.add(cmd, types.Record{Date: d, Note: note})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "record date as d.m.yyyy")
	cmd.Flags().StringVar(&note, "note", "", "note text (default: read standard input)")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func (a *app) add(cmd *cobra.Command, rec types.Record) error {
	d, err := a.openDiary()
	if err != nil {
		return err
	}
	defer d.Close()

	// New records from the command line go to the end of the diary.
	if d.Len() > 0 {
		if err := d.Seek(d.Len()); err != nil {
			return classify("seek", err)
		}
	}
	if err := d.Add(rec); err != nil {
		return classify("add record", err)
	}

	e := entryView{Position: d.Position(), Record: rec}
	if a.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), e)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added record %d (%s)\n", e.Position, rec.Date.String())
	return nil
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all records, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.openDiary()
			if err != nil {
				return err
			}
			defer d.Close()

			entries := make([]entryView, 0, d.Len())
			pos := 0
			for r := range d.List().All() {
				pos++
				entries = append(entries, entryView{Position: pos, Record: r})
			}

			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), entries)
			}
			writeSummary(cmd.OutOrStdout(), entries)
			return nil
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <position>",
		Short: "Print one record in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePosition(args[0])
			if err != nil {
				return err
			}

			d, err := a.openDiary()
			if err != nil {
				return err
			}
			defer d.Close()

			if err := d.Seek(pos); err != nil {
				return classify("show", err)
			}
			rec, _ := d.Current()
			e := entryView{Position: pos, Record: rec}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), e)
			}
			writeEntry(cmd.OutOrStdout(), e)
			return nil
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <position>",
		Short: "Remove a record",
		Long: `Delete removes the record at the given position. Unless --yes is set
the record is shown and the removal must be confirmed with "y".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePosition(args[0])
			if err != nil {
				return err
			}

			d, err := a.openDiary()
			if err != nil {
				return err
			}
			defer d.Close()

			if err := d.Seek(pos); err != nil {
				return classify("delete", err)
			}

			out := cmd.OutOrStdout()
			if !yes {
				rec, _ := d.Current()
				writeEntry(out, entryView{Position: pos, Record: rec})
				fmt.Fprintf(out, "Delete record %d? [y/N]: ", pos)
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
					fmt.Fprintln(out, "Kept.")
					return nil
				}
			}

			rec, err := d.Remove()
			if err != nil {
				return classify("delete record", err)
			}
			if a.flags.jsonMode {
				return writeJSON(out, entryView{Position: pos, Record: rec})
			}
			fmt.Fprintf(out, "Deleted record %d (%s)\n", pos, rec.Date.String())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}
