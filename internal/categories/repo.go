package categories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AlejandroCopponi/esencia-retro/internal/domain/category"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const categoryCols = `id, name, subcategories, ai_context, technical_text, created_at`

func scanCategory(row pgx.Row) (category.Category, error) {
	var c category.Category
	err := row.Scan(&c.ID, &c.Name, &c.Subcategories, &c.AIContext, &c.TechnicalText, &c.CreatedAt)
	return c, err
}

func (r *Repo) List(ctx context.Context) ([]category.Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+categoryCols+`
		FROM categories
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []category.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByName looks a category up by its name, which is how products
// reference categories.
func (r *Repo) GetByName(ctx context.Context, name string) (category.Category, error) {
	return scanCategory(r.db.QueryRow(ctx, `
		SELECT `+categoryCols+`
		FROM categories
		WHERE name = $1
	`, name))
}

type SaveCategoryInput struct {
	Name          string
	Subcategories []string
	AIContext     string
	TechnicalText string
}

func (r *Repo) Create(ctx context.Context, in SaveCategoryInput) (category.Category, error) {
	return scanCategory(r.db.QueryRow(ctx, `
		INSERT INTO categories (name, subcategories, ai_context, technical_text)
		VALUES ($1,$2,$3,$4)
		RETURNING `+categoryCols+`
	`, in.Name, in.Subcategories, in.AIContext, in.TechnicalText))
}

func (r *Repo) Update(ctx context.Context, id int64, in SaveCategoryInput) (category.Category, error) {
	return scanCategory(r.db.QueryRow(ctx, `
		UPDATE categories
		SET name = $2, subcategories = $3, ai_context = $4, technical_text = $5
		WHERE id = $1
		RETURNING `+categoryCols+`
	`, id, in.Name, in.Subcategories, in.AIContext, in.TechnicalText))
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
