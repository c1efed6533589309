package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-booking-api/internal/model"
)

// ErrGenreNotFound is returned when a genre lookup yields no rows.
var ErrGenreNotFound = errors.New("genre not found")

// ErrGenreExists is returned when creating or renaming a genre would
// violate the unique name constraint.
var ErrGenreExists = errors.New("genre already exists")

// GenreRepo provides access to the genres table.
type GenreRepo struct {
	db *sql.DB
}

// NewGenreRepo constructs a GenreRepo with the given DB handle.
func NewGenreRepo(db *sql.DB) *GenreRepo {
	return &GenreRepo{db: db}
}

// Create inserts a genre. On success the ID and timestamps are populated.
func (r *GenreRepo) Create(ctx context.Context, g *model.Genre) error {
	const q = `INSERT INTO genres (name) VALUES (?)`
	res, err := r.db.ExecContext(ctx, q, g.Name)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrGenreExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM genres WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, g.ID).Scan(&g.CreatedAt, &g.UpdatedAt)
}

// List returns all genres ordered by name.
func (r *GenreRepo) List(ctx context.Context) ([]model.Genre, error) {
	const q = `SELECT id, name, created_at, updated_at FROM genres ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Genre
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// GetByID retrieves a genre by id.
func (r *GenreRepo) GetByID(ctx context.Context, id uint64) (*model.Genre, error) {
	const q = `SELECT id, name, created_at, updated_at FROM genres WHERE id = ?`
	var g model.Genre
	err := r.db.QueryRowContext(ctx, q, id).Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGenreNotFound
		}
		return nil, err
	}
	return &g, nil
}

// UpdateName renames a genre. Returns ErrGenreNotFound when no row was
// affected and ErrGenreExists on a name collision.
func (r *GenreRepo) UpdateName(ctx context.Context, id uint64, name string) error {
	const q = `UPDATE genres SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, name, id)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrGenreExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrGenreNotFound
	}
	return nil
}

// Delete removes a genre. Genres still referenced by movies yield
// ErrConflict rather than cascading.
func (r *GenreRepo) Delete(ctx context.Context, id uint64) error {
	const chk = `SELECT COUNT(*) FROM movies WHERE genre_id = ?`
	var n int
	if err := r.db.QueryRowContext(ctx, chk, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	const q = `DELETE FROM genres WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrGenreNotFound
	}
	return nil
}
