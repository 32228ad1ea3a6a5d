package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/kapu/boardwidget/internal/board"
)

const pingTimeout = 5 * time.Second

// Repository stores defaults in a relational settings table, one row per
// scope, for deployments whose host CMS keeps configuration in Postgres.
//
// Expected schema:
//
//	CREATE TABLE widget_settings (
//	    scope            TEXT PRIMARY KEY,
//	    flip             BOOLEAN NOT NULL,
//	    square_size      INTEGER NOT NULL,
//	    show_coordinates BOOLEAN NOT NULL,
//	    updated_at       TIMESTAMPTZ NOT NULL
//	);
type Repository struct {
	db *sql.DB
}

func NewRepository(databaseURL string) (*Repository, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("database url is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Defaults(ctx context.Context, scope string) (board.DisplayOptions, error) {
	opts := board.DefaultOptions()
	q := `SELECT flip, square_size, show_coordinates FROM widget_settings WHERE scope = $1`
	var size int
	err := r.db.QueryRowContext(ctx, q, strings.TrimSpace(scope)).
		Scan(&opts.Flip, &size, &opts.ShowCoordinates)
	if errors.Is(err, sql.ErrNoRows) {
		return opts, nil
	}
	if err != nil {
		return board.DefaultOptions(), fmt.Errorf("load defaults: %w", err)
	}
	opts.SquareSize = size
	return sanitize(opts), nil
}

func (r *Repository) SaveDefaults(ctx context.Context, scope string, opts board.DisplayOptions) error {
	opts = sanitize(opts)
	q := `INSERT INTO widget_settings (scope, flip, square_size, show_coordinates, updated_at)
	      VALUES ($1, $2, $3, $4, $5)
	      ON CONFLICT (scope) DO UPDATE SET
	        flip=EXCLUDED.flip,
	        square_size=EXCLUDED.square_size,
	        show_coordinates=EXCLUDED.show_coordinates,
	        updated_at=EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, q,
		strings.TrimSpace(scope), opts.Flip, opts.SquareSize, opts.ShowCoordinates, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save defaults: %w", err)
	}
	return nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}
