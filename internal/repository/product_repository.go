package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-booking-api/internal/model"
)

// ErrProductNotFound is returned when a product lookup yields no rows.
var ErrProductNotFound = errors.New("product not found")

// ProductRepo provides access to the products (concessions) table.
type ProductRepo struct {
	db *sql.DB
}

// NewProductRepo constructs a ProductRepo with the given DB handle.
func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// Create inserts a product and populates its ID and timestamps.
func (r *ProductRepo) Create(ctx context.Context, p *model.Product) error {
	const q = `INSERT INTO products (name, description, price) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, p.Name, p.Description, p.Price)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	const sel = `SELECT is_active, created_at, updated_at FROM products WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, p.ID).Scan(&p.IsActive, &p.CreatedAt, &p.UpdatedAt)
}

// List returns products ordered by name. When activeOnly is set,
// inactive products are omitted (the public menu view).
func (r *ProductRepo) List(ctx context.Context, activeOnly bool) ([]model.Product, error) {
	q := `SELECT id, name, description, price, is_active, created_at, updated_at FROM products`
	if activeOnly {
		q += ` WHERE is_active = TRUE`
	}
	q += ` ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Product
	for rows.Next() {
		var (
			p    model.Product
			desc sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &desc, &p.Price, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if desc.Valid {
			p.Description = &desc.String
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetByID retrieves a product by id.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (*model.Product, error) {
	const q = `SELECT id, name, description, price, is_active, created_at, updated_at FROM products WHERE id = ?`
	var (
		p    model.Product
		desc sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.Name, &desc, &p.Price, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if desc.Valid {
		p.Description = &desc.String
	}
	return &p, nil
}

// GetActiveByIDs loads the active products among ids, keyed by id. The
// checkout handler uses this to price order items server side.
func (r *ProductRepo) GetActiveByIDs(ctx context.Context, ids []uint64) (map[uint64]model.Product, error) {
	out := make(map[uint64]model.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	q := `SELECT id, name, description, price, is_active, created_at, updated_at FROM products WHERE is_active = TRUE AND id IN (`
	args := make([]any, 0, len(ids))
	for i, id := range ids {
		if i > 0 {
			q += ","
		}
		q += "?"
		args = append(args, id)
	}
	q += ")"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			p    model.Product
			desc sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &desc, &p.Price, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if desc.Valid {
			p.Description = &desc.String
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

// Update overwrites the mutable fields of a product.
func (r *ProductRepo) Update(ctx context.Context, p *model.Product) error {
	const q = `UPDATE products SET name = ?, description = ?, price = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, p.Name, p.Description, p.Price, p.IsActive, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Delete removes a product that was never ordered; otherwise it is
// deactivated instead so historical orders keep their reference.
func (r *ProductRepo) Delete(ctx context.Context, id uint64) error {
	const chk = `SELECT COUNT(*) FROM order_items WHERE product_id = ?`
	var n int
	if err := r.db.QueryRowContext(ctx, chk, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		const deact = `UPDATE products SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
		res, err := r.db.ExecContext(ctx, deact, id)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrProductNotFound
		}
		return nil
	}
	const q = `DELETE FROM products WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}
