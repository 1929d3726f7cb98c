package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mgrinnell/lectern/internal/db"
	"github.com/mgrinnell/lectern/internal/domain"
)

// SQLiteDraftRepo implements DraftRepo using the local sqlite database.
type SQLiteDraftRepo struct {
	db db.DBTX
}

// NewSQLiteDraftRepo creates a new SQLiteDraftRepo.
func NewSQLiteDraftRepo(conn db.DBTX) *SQLiteDraftRepo {
	return &SQLiteDraftRepo{db: conn}
}

func (r *SQLiteDraftRepo) Save(ctx context.Context, d *domain.ReviewDraft) error {
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = time.Now().UTC()
	}
	query := `INSERT OR REPLACE INTO review_drafts
		(package_id, subject, unit, target_status, notes, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.PackageID, d.Subject, d.Unit, string(d.TargetStatus), d.Notes,
		d.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving review draft: %w", err)
	}
	return nil
}

func (r *SQLiteDraftRepo) Get(ctx context.Context, packageID string) (*domain.ReviewDraft, error) {
	query := `SELECT package_id, subject, unit, target_status, notes, updated_at
		FROM review_drafts WHERE package_id = ?`
	row := r.db.QueryRowContext(ctx, query, packageID)

	d, err := scanDraft(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("review draft %s: %w", packageID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning review draft: %w", err)
	}
	return d, nil
}

func (r *SQLiteDraftRepo) Delete(ctx context.Context, packageID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM review_drafts WHERE package_id = ?`, packageID)
	if err != nil {
		return fmt.Errorf("deleting review draft: %w", err)
	}
	return nil
}

func (r *SQLiteDraftRepo) List(ctx context.Context) ([]*domain.ReviewDraft, error) {
	query := `SELECT package_id, subject, unit, target_status, notes, updated_at
		FROM review_drafts ORDER BY updated_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing review drafts: %w", err)
	}
	defer rows.Close()

	var drafts []*domain.ReviewDraft
	for rows.Next() {
		d, err := scanDraft(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning review draft: %w", err)
		}
		drafts = append(drafts, d)
	}
	return drafts, rows.Err()
}

func scanDraft(scan func(...any) error) (*domain.ReviewDraft, error) {
	var d domain.ReviewDraft
	var status, updatedAt string
	if err := scan(&d.PackageID, &d.Subject, &d.Unit, &status, &d.Notes, &updatedAt); err != nil {
		return nil, err
	}
	d.TargetStatus = domain.PackageStatus(status)
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		d.UpdatedAt = t
	}
	return &d, nil
}
