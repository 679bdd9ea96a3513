package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/oneiro-labs/shelfmark/internal/model"
	"github.com/oneiro-labs/shelfmark/internal/service"
)

const productColumns = `id, hash, name, description, category, brand,
	price, market_price, discount_percent, price_source, created_at, updated_at`

// SaveProducts inserts products, skipping records whose hash already exists.
func (s *SQLiteStorage) SaveProducts(ctx context.Context, products []model.Product) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateProducts(products); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO products (
			id, hash, name, description, category, brand,
			price, market_price, discount_percent, price_source
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, product := range products {
		if product.Hash == "" {
			product.Hash = product.GenerateHash()
		}

		if _, err := stmt.ExecContext(ctx,
			product.ID,
			product.Hash,
			product.Name,
			product.Description,
			product.Category,
			product.Brand,
			product.Price,
			product.MarketPrice,
			product.DiscountPercent,
			product.PriceSource,
		); err != nil {
			return fmt.Errorf("failed to insert product %s: %w", product.ID, err)
		}
	}

	return tx.Commit()
}

// GetProductByID retrieves a single product.
func (s *SQLiteStorage) GetProductByID(ctx context.Context, id string) (*model.Product, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id)

	product, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// GetProductPage returns one fixed-size page of the collection in stable
// insertion order. A short page signals the end of the collection.
func (s *SQLiteStorage) GetProductPage(ctx context.Context, filter service.ProductFilter) ([]model.Product, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if filter.Limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", ErrInvalidProduct)
	}
	if filter.Offset < 0 {
		return nil, fmt.Errorf("%w: offset cannot be negative", ErrInvalidProduct)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY rowid LIMIT ? OFFSET ?`,
		filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query product page: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanProducts(rows)
}

// GetProductsByCategory returns every product whose stored category exactly
// matches. Fuzzy filter matching is the normalizer's job, done client-side.
func (s *SQLiteStorage) GetProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(category, "category"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE category = ? COLLATE NOCASE ORDER BY rowid`,
		category)
	if err != nil {
		return nil, fmt.Errorf("failed to query products by category: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanProducts(rows)
}

// UpdateProductPricing persists derived classification and pricing fields
// for one product. The raw name and description are never touched.
func (s *SQLiteStorage) UpdateProductPricing(ctx context.Context, id, category, brand string, quote model.PriceQuote) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	if err := validateQuote(quote); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET category = ?, brand = ?, price = ?, market_price = ?,
			discount_percent = ?, price_source = ?, updated_at = ?
		WHERE id = ?
	`, category, brand, quote.Amount, quote.MarketPrice,
		quote.DiscountPercent, string(quote.Source), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}

	return nil
}

// CountProducts returns the total number of products in the collection.
func (s *SQLiteStorage) CountProducts(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// GetCategoryDistribution returns product counts grouped by stored category.
// Uncategorized products are reported under the empty string key.
func (s *SQLiteStorage) GetCategoryDistribution(ctx context.Context) (map[string]int, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT category, COUNT(*) FROM products GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to query category distribution: %w", err)
	}
	defer func() { _ = rows.Close() }()

	distribution := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan distribution row: %w", err)
		}
		distribution[category] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate distribution rows: %w", err)
	}

	return distribution, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*model.Product, error) {
	var product model.Product
	err := row.Scan(
		&product.ID,
		&product.Hash,
		&product.Name,
		&product.Description,
		&product.Category,
		&product.Brand,
		&product.Price,
		&product.MarketPrice,
		&product.DiscountPercent,
		&product.PriceSource,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func scanProducts(rows *sql.Rows) ([]model.Product, error) {
	var products []model.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate product rows: %w", err)
	}
	return products, nil
}
