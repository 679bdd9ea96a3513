package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/oneiro-labs/shelfmark/internal/cli"
	"github.com/oneiro-labs/shelfmark/internal/model"
)

func inspectCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "inspect <product name>",
		Short: "Classify and price a single product name",
		Long: `Run one product name through the classification and price resolution
pipeline without touching the database. Useful for checking how a
product would be labeled and priced before importing it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := strings.Join(args, " ")

			tables, err := loadTables()
			if err != nil {
				return err
			}

			classifier, err := buildClassifier(tables)
			if err != nil {
				return fmt.Errorf("invalid classification rules: %w", err)
			}

			result := classifier.Classify(name)

			product := model.Product{
				Name:        name,
				Description: description,
				Category:    result.Category,
				Brand:       result.Brand,
			}

			engine := buildEngine(tables)
			quote := engine.Resolve(ctx, product)

			fmt.Println(cli.FormatTitle(name))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Category:\t%s\n", orPlaceholder(result.Category))
			fmt.Fprintf(w, "Brand:\t%s\n", orPlaceholder(result.Brand))
			fmt.Fprintf(w, "Price:\t₹%.2f\n", quote.Amount)
			fmt.Fprintf(w, "Market price:\t₹%.2f\n", quote.MarketPrice)
			fmt.Fprintf(w, "Discount:\t%d%%\n", quote.DiscountPercent)
			fmt.Fprintf(w, "Source:\t%s\n", quote.Source)
			_ = w.Flush()

			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "product description used for price estimation")

	return cmd
}

func orPlaceholder(label string) string {
	if label == "" {
		return cli.SubtleStyle.Render("(none)")
	}
	return label
}
