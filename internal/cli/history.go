package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/projrename/internal/audit"
	"github.com/aidanlsb/projrename/internal/dates"
	"github.com/aidanlsb/projrename/internal/ui"
)

var (
	historyLimit int
	historySince string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past renames, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyLimit < 0 {
			return handleErrorMsg(ErrInvalidInput, "--limit must not be negative", "")
		}

		var since time.Time
		if historySince != "" {
			var err error
			since, err = dates.ParseSince(historySince, time.Now())
			if err != nil {
				return handleError(ErrInvalidInput, err, "")
			}
		}

		hist := auditLogger()
		if !hist.Enabled() {
			return handleErrorMsg(ErrConfigInvalid, "rename history is disabled",
				"Set audit = true in "+getConfigPath())
		}

		entries, err := hist.RecentSince(since, historyLimit)
		if err != nil {
			return handleError(ErrAuditError, err, "")
		}

		if isJSONOutput() {
			if entries == nil {
				entries = []audit.Entry{}
			}
			outputSuccess(map[string]interface{}{
				"path":    hist.Path(),
				"entries": entries,
			}, &Meta{Count: len(entries)})
			return nil
		}

		if len(entries) == 0 {
			fmt.Println(ui.Info("No renames recorded yet."))
			return nil
		}

		table := ui.NewTable("WHEN", "FROM", "TO", "RESULT", "SOLUTION")
		for _, e := range entries {
			result := ui.SymbolSuccess
			if e.Operation == audit.OpRenameFailed {
				result = ui.SymbolError + " " + e.Step
			}
			table.AddRow(
				e.Timestamp.Local().Format("2006-01-02 15:04"),
				e.From,
				e.To,
				result,
				ui.FilePath(e.Solution),
			)
		}
		fmt.Print(table.String())
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum entries to show (0 for all)")
	historyCmd.Flags().StringVar(&historySince, "since", "", "Only renames since a date, datetime, duration (48h) or today/yesterday")
	rootCmd.AddCommand(historyCmd)
}
