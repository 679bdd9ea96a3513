package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/oneiro-labs/shelfmark/internal/cli"
)

func categoriesCmd() *cobra.Command {
	var match string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Show the category distribution of the catalog",
		Long: `Display how many products fall into each category. With --match,
only categories equivalent to the given filter are shown, using the
same fuzzy matching the search surface applies.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			distribution, err := store.GetCategoryDistribution(ctx)
			if err != nil {
				return fmt.Errorf("failed to get category distribution: %w", err)
			}

			if len(distribution) == 0 {
				fmt.Println(cli.InfoStyle.Render("No products found. Use 'shelfmark import' to load a catalog."))
				return nil
			}

			tables, err := loadTables()
			if err != nil {
				return err
			}

			registry, err := buildRegistry(tables)
			if err != nil {
				return fmt.Errorf("invalid category groups: %w", err)
			}

			type row struct {
				category string
				count    int
			}

			rows := make([]row, 0, len(distribution))
			total := 0
			for category, count := range distribution {
				if match != "" && !registry.Matches(category, match) {
					continue
				}
				display := category
				if display == "" {
					display = "(uncategorized)"
				}
				rows = append(rows, row{category: display, count: count})
				total += count
			}

			if len(rows) == 0 {
				fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("No categories match %q.", match)))
				return nil
			}

			sort.Slice(rows, func(i, j int) bool {
				if rows[i].count != rows[j].count {
					return rows[i].count > rows[j].count
				}
				return rows[i].category < rows[j].category
			})

			fmt.Println(cli.FormatTitle("Category Distribution"))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\t%s\n", "Category", "Count", "Canonical")
			fmt.Fprintf(w, "%s\t%s\t%s\n", strings.Repeat("-", 20), strings.Repeat("-", 5), strings.Repeat("-", 20))
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%d\t%s\n", r.category, r.count, registry.Normalize(r.category))
			}
			_ = w.Flush()

			fmt.Println()
			fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("Total: %d products", total)))

			return nil
		},
	}

	cmd.Flags().StringVar(&match, "match", "", "show only categories matching this filter")

	return cmd
}
