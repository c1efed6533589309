package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/cinema-booking-api/internal/model"
)

// ErrMovieNotFound is returned when a movie lookup yields no rows.
var ErrMovieNotFound = errors.New("movie not found")

// MovieRepo provides access to the movies table.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

const movieCols = `id, genre_id, title, synopsis, duration_min, poster_url, is_active, created_at, updated_at`

func scanMovie(row interface{ Scan(...any) error }) (*model.Movie, error) {
	var (
		m        model.Movie
		synopsis sql.NullString
		poster   sql.NullString
	)
	err := row.Scan(&m.ID, &m.GenreID, &m.Title, &synopsis, &m.DurationMin, &poster, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if synopsis.Valid {
		m.Synopsis = &synopsis.String
	}
	if poster.Valid {
		m.PosterURL = &poster.String
	}
	return &m, nil
}

// Create inserts a movie and populates its ID and timestamps.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	const q = `INSERT INTO movies (genre_id, title, synopsis, duration_min, poster_url) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.GenreID, m.Title, m.Synopsis, m.DurationMin, m.PosterURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	const sel = `SELECT ` + movieCols + ` FROM movies WHERE id = ?`
	got, err := scanMovie(r.db.QueryRowContext(ctx, sel, m.ID))
	if err != nil {
		return err
	}
	*m = *got
	return nil
}

// GetByID retrieves a movie by id, active or not.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	const q = `SELECT ` + movieCols + ` FROM movies WHERE id = ?`
	m, err := scanMovie(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return m, nil
}

// List returns active movies, optionally filtered by genre and by a
// case-insensitive title fragment, ordered by title.
func (r *MovieRepo) List(ctx context.Context, genreID uint64, query string) ([]model.Movie, error) {
	q := `SELECT ` + movieCols + ` FROM movies WHERE is_active = TRUE`
	args := make([]any, 0, 2)
	if genreID != 0 {
		q += ` AND genre_id = ?`
		args = append(args, genreID)
	}
	if s := strings.TrimSpace(query); s != "" {
		q += ` AND title LIKE ?`
		args = append(args, "%"+s+"%")
	}
	q += ` ORDER BY title`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// Update overwrites the mutable fields of a movie.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	const q = `UPDATE movies
	           SET genre_id = ?, title = ?, synopsis = ?, duration_min = ?, poster_url = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, m.GenreID, m.Title, m.Synopsis, m.DurationMin, m.PosterURL, m.IsActive, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// Delete removes a movie. Movies with scheduled showtimes conflict.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
	const chk = `SELECT COUNT(*) FROM showtimes WHERE movie_id = ? AND status = 'SCHEDULED'`
	var n int
	if err := r.db.QueryRowContext(ctx, chk, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	const q = `DELETE FROM movies WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMovieNotFound
	}
	return nil
}
