package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oneiro-labs/shelfmark/internal/batch"
	"github.com/oneiro-labs/shelfmark/internal/cli"
	"github.com/oneiro-labs/shelfmark/internal/service"
)

func repriceCmd() *cobra.Command {
	var (
		dryRun        bool
		skipUnchanged bool
	)

	cmd := &cobra.Command{
		Use:   "reprice",
		Short: "Classify and reprice the entire catalog",
		Long: `Walk every product in the catalog, derive category and brand labels,
resolve a current price for each, and persist only the records that
actually changed. Safe to interrupt and rerun: a rerun skips records
whose derived values are already stored.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			tables, err := loadTables()
			if err != nil {
				return err
			}

			classifier, err := buildClassifier(tables)
			if err != nil {
				return fmt.Errorf("invalid classification rules: %w", err)
			}

			engine := buildEngine(tables)

			opts := batch.DefaultOptions()
			if size := viper.GetInt("batch.page_size"); size > 0 {
				opts.PageSize = size
			}
			opts.DryRun = dryRun
			opts.RepriceUnchanged = !skipUnchanged

			orchestrator := batch.New(store, classifier, engine, opts)
			orchestrator.SetReporter(cli.NewProgressReporter())

			summary, err := orchestrator.Run(ctx)
			if err != nil {
				return fmt.Errorf("batch run failed: %w", err)
			}

			printSummary(summary, dryRun)

			return nil
		},
	}

	cmd.Flags().Int("page-size", 0, "records per page (default 100)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would change without writing")
	cmd.Flags().BoolVar(&skipUnchanged, "skip-unchanged", false, "skip repricing records whose labels did not change")

	_ = viper.BindPFlag("batch.page_size", cmd.Flags().Lookup("page-size"))

	return cmd
}

func printSummary(summary *service.BatchSummary, dryRun bool) {
	fmt.Println()
	fmt.Println(cli.TitleStyle.Render(cli.ChartIcon + " Batch Summary"))

	verb := "Updated"
	if dryRun {
		verb = "Would update"
	}

	fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("Scanned: %d products in %s", summary.TotalScanned, summary.Duration.Round(time.Millisecond))))
	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("%s: %d", verb, summary.TotalUpdated)))
	if dryRun {
		fmt.Println(cli.FormatWarning("Dry run: no changes were written"))
	}
	if summary.FailedCount > 0 {
		fmt.Println(cli.FormatError(fmt.Sprintf("Failed: %d (see log for details)", summary.FailedCount)))
	}

	printDistribution("Categories", summary.CategoryDistribution)
	printDistribution("Brands", summary.BrandDistribution)
}

func printDistribution(title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})

	fmt.Println()
	fmt.Println(cli.SubtleStyle.Render(title))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, label := range labels {
		fmt.Fprintf(w, "  %s\t%d\n", label, counts[label])
	}
	_ = w.Flush()
}
