package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/hilgaap/inventori-api/internal/model"
)

// ProductRepo performs all reads and writes against the 'products' table.
type ProductRepo struct{ DB *sql.DB }

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{DB: db} }

const productCols = "id,name,description,stock,price,created_by_id,created_at"

// Create inserts a single product and returns its ID.
func (r *ProductRepo) Create(ctx context.Context, p model.Product) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO products (name, description, stock, price, created_by_id) VALUES (?,?,?,?,?)",
		p.Name, p.Description, p.Stock, p.Price, p.CreatedByID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// CreateBulk inserts all products in one multi-row statement and returns
// the number of inserted rows. Callers validate every element first; the
// insert itself is a single statement, so a storage failure inserts
// nothing rather than a prefix of the batch.
func (r *ProductRepo) CreateBulk(ctx context.Context, items []model.Product) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}
	var sb strings.Builder
	sb.WriteString("INSERT INTO products (name, description, stock, price, created_by_id) VALUES ")
	args := make([]any, 0, len(items)*5)
	for i, p := range items {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString("(?,?,?,?,?)")
		args = append(args, p.Name, p.Description, p.Stock, p.Price, p.CreatedByID)
	}
	res, err := r.DB.ExecContext(ctx, sb.String(), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// GetByID fetches a product by id. Returns ErrNotFound when no row matches.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (model.Product, error) {
	var p model.Product
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+productCols+" FROM products WHERE id=? LIMIT 1", id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Stock, &p.Price, &p.CreatedByID, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Product{}, ErrNotFound
	}
	return p, err
}

// List returns a page of products, newest first.
func (r *ProductRepo) List(ctx context.Context, offset, limit int) ([]model.Product, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+productCols+" FROM products ORDER BY created_at DESC LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Product, 0, limit)
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Stock, &p.Price, &p.CreatedByID, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Count returns the total number of products.
func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&n)
	return n, err
}

// Update applies a partial update: only non-nil fields are written.
// Returns ErrNotFound when the id has no row.
func (r *ProductRepo) Update(ctx context.Context, id uint64, name, description *string, stock *int, price *float64) error {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)
	if name != nil {
		sets = append(sets, "name=?")
		args = append(args, *name)
	}
	if description != nil {
		sets = append(sets, "description=?")
		args = append(args, *description)
	}
	if stock != nil {
		sets = append(sets, "stock=?")
		args = append(args, *stock)
	}
	if price != nil {
		sets = append(sets, "price=?")
		args = append(args, *price)
	}
	if len(sets) == 0 {
		return r.exists(ctx, id)
	}
	args = append(args, id)
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE products SET "+strings.Join(sets, ", ")+" WHERE id=?", args...); err != nil {
		return err
	}
	return r.exists(ctx, id)
}

// Delete removes a product by id.
func (r *ProductRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepo) exists(ctx context.Context, id uint64) error {
	var one int
	err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM products WHERE id=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return err
}
