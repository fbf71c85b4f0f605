package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"target-editor/internal/editor/models"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// ============================================================
// SQLite Repository
// ============================================================

var ErrNotFound = errors.New("target not found")

//go:embed migrations/*.sql
var migrations embed.FS

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init применяет встроенные миграции по порядку имён файлов.
func (r *Repository) Init(ctx context.Context) error {
	if err := r.runMigrations(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Upsert регистрирует мишень в каталоге. created == true, если имени ещё не было.
func (r *Repository) Upsert(ctx context.Context, name, path string, regions int) (*models.TargetEntry, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)

	var id string
	err = tx.QueryRowContext(ctx, `SELECT id FROM targets WHERE name = ?`, name).Scan(&id)
	created := errors.Is(err, sql.ErrNoRows)

	switch {
	case created:
		id = uuid.NewString()
		_, err = tx.ExecContext(ctx, `
            INSERT INTO targets (id, name, path, regions, created_at, updated_at)
            VALUES (?, ?, ?, ?, ?, ?)
        `, id, name, path, regions, now, now)
		if err != nil {
			return nil, false, fmt.Errorf("insert target: %w", err)
		}
	case err != nil:
		return nil, false, fmt.Errorf("lookup target: %w", err)
	default:
		_, err = tx.ExecContext(ctx, `
            UPDATE targets SET path = ?, regions = ?, updated_at = ?
            WHERE id = ?
        `, path, regions, now, id)
		if err != nil {
			return nil, false, fmt.Errorf("update target: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit: %w", err)
	}

	entry, err := r.GetByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	return entry, created, nil
}

func (r *Repository) GetByName(ctx context.Context, name string) (*models.TargetEntry, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, path, regions, created_at, updated_at
        FROM targets
        WHERE name = ?
    `, name)

	var e models.TargetEntry
	if err := row.Scan(&e.ID, &e.Name, &e.Path, &e.Regions, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *Repository) List(ctx context.Context) ([]models.TargetEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, path, regions, created_at, updated_at
        FROM targets
        ORDER BY name
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.TargetEntry{}
	for rows.Next() {
		var e models.TargetEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Path, &e.Regions, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *Repository) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM targets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete target: %w", err)
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

// ============================================================
// Migrations
// ============================================================

func (r *Repository) runMigrations(ctx context.Context) error {
	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, name := range files {
		data, err := migrations.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?mode=rwc&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
