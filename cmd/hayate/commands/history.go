package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/shizukutanaka/Hayate/internal/storage"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved benchmark runs",
	RunE:  runHistory,
}

var (
	historyLimit int
	historyID    string
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of runs to list")
	historyCmd.Flags().StringVar(&historyID, "id", "", "print the full report for one run as JSON")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()

	store, err := storage.Open(logger, cfg.Storage.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer store.Close()

	if historyID != "" {
		rep, err := store.Get(historyID)
		if err != nil {
			return err
		}
		return rep.WriteJSON(os.Stdout)
	}

	runs, err := store.List(historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No saved runs.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tTIER\tSINGLE\tMULTI\tRATIO\tCOMPOSITE\tRATING")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\t%.2fx\t%.2f\t%s\n",
			r.ID, humanize.Time(r.GeneratedAt), r.Tier,
			r.SingleScore, r.MultiScore, r.CoreRatio, r.CompositeScore, r.Rating)
	}
	return w.Flush()
}
