// Query commands: search and between. Both rebuild an in-memory SQLite
// index from the diary file and query it.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/diary/internal/sqlite"
	"github.com/mesh-intelligence/diary/pkg/types"
)

// withIndex opens the diary, loads it into a fresh index and calls fn.
func (a *app) withIndex(fn func(ix *sqlite.Index) ([]sqlite.Hit, error)) ([]sqlite.Hit, error) {
	d, err := a.openDiary()
	if err != nil {
		return nil, err
	}
	defer d.Close()

	ix, err := sqlite.Open(":memory:")
	if err != nil {
		return nil, sysError("open index: %w", err)
	}
	defer ix.Close()

	n, err := ix.Rebuild(d.List().All())
	if err != nil {
		return nil, sysError("build index: %w", err)
	}
	a.log.Debug("index built", "records", n)

	hits, err := fn(ix)
	if err != nil {
		return nil, sysError("query index: %w", err)
	}
	return hits, nil
}

func (a *app) writeHits(cmd *cobra.Command, hits []sqlite.Hit) error {
	if a.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), hitViews(hits))
	}
	if len(hits) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No matching records.")
		return nil
	}
	writeSummary(cmd.OutOrStdout(), hitViews(hits))
	return nil
}

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <text>",
		Short: "Find records whose note contains text",
		Long: `Search lists records whose note contains the given text, ignoring
case, in diary order.

Example:
  diary search dog`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hits, err := a.withIndex(func(ix *sqlite.Index) ([]sqlite.Hit, error) {
				return ix.Search(args[0])
			})
			if err != nil {
				return err
			}
			return a.writeHits(cmd, hits)
		},
	}
}

func newBetweenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "between <from> <to>",
		Short: "List records dated within a range",
		Long: `Between lists records dated from <from> through <to> inclusive,
oldest first. Dates use the d.m.yyyy form.

Example:
  diary between 1.3.2024 31.3.2024`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := types.ParseDate(args[0])
			if err != nil {
				return userError("invalid date %q: %w", args[0], err)
			}
			to, err := types.ParseDate(args[1])
			if err != nil {
				return userError("invalid date %q: %w", args[1], err)
			}
			if from.Compare(to) > 0 {
				return userError("range start %s is after its end %s", from, to)
			}

			hits, err := a.withIndex(func(ix *sqlite.Index) ([]sqlite.Hit, error) {
				return ix.Between(from, to)
			})
			if err != nil {
				return err
			}
			return a.writeHits(cmd, hits)
		},
	}
}
