package cmd

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/user/clark/config"
	"github.com/user/clark/db"
	"github.com/user/clark/pkg/timeutil"
	"github.com/user/clark/tui/forms"
)

var historyFlags struct {
	limit int
	yes   bool
}

var historyCmd = &cobra.Command{
	Use:   "history [filepath]",
	Short: "List recorded marking sessions",
	Long:  `List previously recorded sessions, newest first, optionally only those for one media file.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var mediaPath string
		if len(args) == 1 {
			abs, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("failed to resolve path: %w", err)
			}
			mediaPath = abs
		}

		database, err := openHistory()
		if err != nil {
			return err
		}
		defer database.Close()

		sessions, err := db.SelectSessions(database, mediaPath, historyFlags.limit)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No sessions recorded.")
			return nil
		}

		rows := make([]historyRow, 0, len(sessions))
		for _, s := range sessions {
			marks, err := db.SelectSessionMarks(database, s.ID)
			if err != nil {
				return err
			}
			exports, err := db.SelectSessionExports(database, s.ID)
			if err != nil {
				return err
			}
			rows = append(rows, historyRow{session: s, marks: marks, exports: exports})
		}
		return printHistory(cmd.OutOrStdout(), rows)
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openHistory()
		if err != nil {
			return err
		}
		defer database.Close()

		sessions, err := db.SelectSessions(database, "", -1)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No sessions recorded.")
			return nil
		}

		if !historyFlags.yes {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return fmt.Errorf("refusing to clear history without --yes when not running in a terminal")
			}
			var confirmed bool
			if err := forms.NewConfirmClearHistoryForm(len(sessions), &confirmed).Run(); err != nil {
				return err
			}
			if !confirmed {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
		}

		n, err := db.DeleteAllSessions(database)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d %s.\n", n, pluralize(int(n), "session", "sessions"))
		return nil
	},
}

// historyRow is one session with its child rows.
type historyRow struct {
	session db.Session
	marks   []int64
	exports []db.SessionExport
}

// printHistory writes rows as a tab-aligned table.
func printHistory(out io.Writer, rows []historyRow) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tMODE\tLENGTH\tMARKS\tEXPORTS\tFILE")
	for _, r := range rows {
		marks := lo.Map(r.marks, func(m int64, _ int) string {
			return timeutil.FormatTime(m, true)
		})
		failed := lo.CountBy(r.exports, func(e db.SessionExport) bool { return e.Error != "" })
		exports := fmt.Sprintf("%d", len(r.exports))
		if failed > 0 {
			exports = fmt.Sprintf("%d (%d failed)", len(r.exports), failed)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.session.ID,
			humanize.Time(r.session.CreatedAt),
			r.session.Mode,
			timeutil.FormatTime(r.session.DurationMs, false),
			lo.Ternary(len(marks) == 0, "-", strings.Join(marks, " ")),
			exports,
			r.session.MediaPath,
		)
	}
	return w.Flush()
}

func openHistory() (*sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	database, err := db.Open(cfg.HistoryDB)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	return database, nil
}

func init() {
	historyCmd.Flags().IntVarP(&historyFlags.limit, "limit", "n", 20, "maximum number of sessions to list")
	historyClearCmd.Flags().BoolVarP(&historyFlags.yes, "yes", "y", false, "do not ask for confirmation")
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}
