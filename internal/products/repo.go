package products

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AlejandroCopponi/esencia-retro/internal/domain/product"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type VariantInput struct {
	Size     string
	StockQty int
}

type SaveProductInput struct {
	Name        string
	Description string
	Price       float64
	OldPrice    *float64
	SKU         string
	Tags        []string
	Team        string
	Category    string
	Subcategory string
	WeightGrams int
	ImageURL    string
	Gallery     []string

	Variants []VariantInput
}

const productCols = `
	id, name, description, price, old_price, sku, tags, team,
	category, subcategory, weight_grams, image_url, gallery, created_at`

func scanProduct(row pgx.Row) (product.Product, error) {
	var p product.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.OldPrice, &p.SKU, &p.Tags, &p.Team,
		&p.Category, &p.Subcategory, &p.WeightGrams, &p.ImageURL, &p.Gallery, &p.CreatedAt,
	)
	return p, err
}

// List returns the full catalog, newest first, without variants.
// Filtering and sorting happen in the catalog layer.
func (r *Repo) List(ctx context.Context) ([]product.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+productCols+`
		FROM products
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Get returns one product with its variants.
func (r *Repo) Get(ctx context.Context, id int64) (product.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `
		SELECT `+productCols+`
		FROM products
		WHERE id = $1
	`, id))
	if err != nil {
		return product.Product{}, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, product_id, size, stock_qty
		FROM product_variants
		WHERE product_id = $1
		ORDER BY id ASC
	`, p.ID)
	if err != nil {
		return product.Product{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var v product.Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Size, &v.StockQty); err != nil {
			return product.Product{}, err
		}
		p.Variants = append(p.Variants, v)
	}
	return p, rows.Err()
}

// Create inserts the product and its variant set in one transaction so
// a failed variant insert never leaves an orphaned product row.
func (r *Repo) Create(ctx context.Context, in SaveProductInput) (product.Product, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return product.Product{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := scanProduct(tx.QueryRow(ctx, `
		INSERT INTO products
			(name, description, price, old_price, sku, tags, team,
			 category, subcategory, weight_grams, image_url, gallery)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING `+productCols+`
	`, in.Name, in.Description, in.Price, in.OldPrice, in.SKU, in.Tags, in.Team,
		in.Category, in.Subcategory, in.WeightGrams, in.ImageURL, in.Gallery))
	if err != nil {
		return product.Product{}, err
	}

	if err := insertVariants(ctx, tx, p.ID, in.Variants); err != nil {
		return product.Product{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return product.Product{}, err
	}
	return r.Get(ctx, p.ID)
}

// Update rewrites the whole record and replaces the variant set
// wholesale (delete-all-then-reinsert), all inside one transaction.
func (r *Repo) Update(ctx context.Context, id int64, in SaveProductInput) (product.Product, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return product.Product{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = scanProduct(tx.QueryRow(ctx, `
		UPDATE products SET
			name = $2, description = $3, price = $4, old_price = $5, sku = $6,
			tags = $7, team = $8, category = $9, subcategory = $10,
			weight_grams = $11, image_url = $12, gallery = $13
		WHERE id = $1
		RETURNING `+productCols+`
	`, id, in.Name, in.Description, in.Price, in.OldPrice, in.SKU,
		in.Tags, in.Team, in.Category, in.Subcategory,
		in.WeightGrams, in.ImageURL, in.Gallery))
	if err != nil {
		return product.Product{}, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM product_variants WHERE product_id = $1`, id); err != nil {
		return product.Product{}, err
	}
	if err := insertVariants(ctx, tx, id, in.Variants); err != nil {
		return product.Product{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return product.Product{}, err
	}
	return r.Get(ctx, id)
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func insertVariants(ctx context.Context, tx pgx.Tx, productID int64, variants []VariantInput) error {
	for _, v := range variants {
		_, err := tx.Exec(ctx, `
			INSERT INTO product_variants (product_id, size, stock_qty)
			VALUES ($1,$2,$3)
		`, productID, v.Size, v.StockQty)
		if err != nil {
			return fmt.Errorf("variant insert failed: %w", err)
		}
	}
	return nil
}
