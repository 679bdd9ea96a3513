package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/oneiro-labs/shelfmark/internal/cli"
	"github.com/oneiro-labs/shelfmark/internal/common"
	"github.com/oneiro-labs/shelfmark/internal/model"
)

// importRecord is the wire shape of one product in an import file.
type importRecord struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import products from a JSON catalog file",
		Long: `Load products from a JSON file into the catalog database.

The file must contain an array of objects with "name" and "description"
fields. Duplicate products (same name and description) are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	data, err := os.ReadFile(path) //nolint:gosec // user-supplied catalog file
	if err != nil {
		return common.NewUserError(fmt.Sprintf("cannot read import file %s", path), err)
	}

	var records []importRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return common.NewUserError(fmt.Sprintf("import file %s is not a valid JSON catalog", path), err)
	}
	if len(records) == 0 {
		return common.NewUserError(fmt.Sprintf("import file %s contains no products", path), nil)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	now := time.Now()
	products := make([]model.Product, 0, len(records))
	for i, rec := range records {
		name := strings.TrimSpace(rec.Name)
		if name == "" {
			slog.Warn("Skipping record with empty name", "index", i)
			continue
		}

		product := model.Product{
			Name:        name,
			Description: strings.TrimSpace(rec.Description),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		product.Hash = product.GenerateHash()
		product.ID = product.Hash[:16]
		products = append(products, product)
	}

	if len(products) == 0 {
		return common.NewUserError(fmt.Sprintf("import file %s contains no usable products", path), nil)
	}

	slog.Info("Importing products", "file", path, "count", len(products))

	if err := store.SaveProducts(ctx, products); err != nil {
		return fmt.Errorf("failed to save products: %w", err)
	}

	total, err := store.CountProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d products (%d total in catalog)", len(products), total)))

	return nil
}
