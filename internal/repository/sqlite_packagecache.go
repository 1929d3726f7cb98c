package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mgrinnell/lectern/internal/db"
	"github.com/mgrinnell/lectern/internal/domain"
)

// SQLitePackageCacheRepo implements PackageCacheRepo by storing the
// full package JSON alongside a few indexed columns.
type SQLitePackageCacheRepo struct {
	db db.DBTX
}

// NewSQLitePackageCacheRepo creates a new SQLitePackageCacheRepo.
func NewSQLitePackageCacheRepo(conn db.DBTX) *SQLitePackageCacheRepo {
	return &SQLitePackageCacheRepo{db: conn}
}

func (r *SQLitePackageCacheRepo) Put(ctx context.Context, pkg *domain.ContentPackage) error {
	payload, err := json.Marshal(pkg)
	if err != nil {
		return fmt.Errorf("encoding package for cache: %w", err)
	}
	query := `INSERT OR REPLACE INTO package_cache
		(package_id, subject, unit, status, payload, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		pkg.ID, pkg.Subject, pkg.Unit, string(pkg.Status), string(payload),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("caching package: %w", err)
	}
	return nil
}

func (r *SQLitePackageCacheRepo) Get(ctx context.Context, packageID string) (*domain.ContentPackage, time.Time, error) {
	query := `SELECT payload, fetched_at FROM package_cache WHERE package_id = ?`
	row := r.db.QueryRowContext(ctx, query, packageID)

	var payload, fetchedAt string
	if err := row.Scan(&payload, &fetchedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, time.Time{}, fmt.Errorf("cached package %s: %w", packageID, ErrNotFound)
		}
		return nil, time.Time{}, fmt.Errorf("scanning cached package: %w", err)
	}

	var pkg domain.ContentPackage
	if err := json.Unmarshal([]byte(payload), &pkg); err != nil {
		return nil, time.Time{}, fmt.Errorf("decoding cached package: %w", err)
	}
	at, _ := time.Parse(time.RFC3339, fetchedAt)
	return &pkg, at, nil
}

func (r *SQLitePackageCacheRepo) List(ctx context.Context) ([]*domain.ContentPackage, error) {
	query := `SELECT payload FROM package_cache ORDER BY fetched_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing cached packages: %w", err)
	}
	defer rows.Close()

	var pkgs []*domain.ContentPackage
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning cached package: %w", err)
		}
		var pkg domain.ContentPackage
		if err := json.Unmarshal([]byte(payload), &pkg); err != nil {
			return nil, fmt.Errorf("decoding cached package: %w", err)
		}
		pkgs = append(pkgs, &pkg)
	}
	return pkgs, rows.Err()
}

func (r *SQLitePackageCacheRepo) Delete(ctx context.Context, packageID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM package_cache WHERE package_id = ?`, packageID)
	if err != nil {
		return fmt.Errorf("evicting cached package: %w", err)
	}
	return nil
}
