package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mgrinnell/lectern/internal/db"
	"github.com/mgrinnell/lectern/internal/domain"
)

// SQLiteActionLogRepo implements ActionLogRepo. The log is append-only;
// there is deliberately no update or delete.
type SQLiteActionLogRepo struct {
	db db.DBTX
}

// NewSQLiteActionLogRepo creates a new SQLiteActionLogRepo.
func NewSQLiteActionLogRepo(conn db.DBTX) *SQLiteActionLogRepo {
	return &SQLiteActionLogRepo{db: conn}
}

func (r *SQLiteActionLogRepo) Append(ctx context.Context, a *domain.ReviewAction) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO review_actions
		(id, package_id, action, old_status, new_status, reviewer_id, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.PackageID, a.Action, string(a.OldStatus), string(a.NewStatus),
		a.ReviewerID, a.Notes, a.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("appending review action: %w", err)
	}
	return nil
}

func (r *SQLiteActionLogRepo) ListByPackage(ctx context.Context, packageID string) ([]*domain.ReviewAction, error) {
	query := actionSelect + ` WHERE package_id = ? ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, packageID)
	if err != nil {
		return nil, fmt.Errorf("listing review actions: %w", err)
	}
	return collectActions(rows.Next, rows.Scan, rows.Close, rows.Err)
}

func (r *SQLiteActionLogRepo) ListRecent(ctx context.Context, limit int) ([]*domain.ReviewAction, error) {
	if limit <= 0 {
		limit = 50
	}
	query := actionSelect + ` ORDER BY created_at DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent review actions: %w", err)
	}
	return collectActions(rows.Next, rows.Scan, rows.Close, rows.Err)
}

const actionSelect = `SELECT id, package_id, action, old_status, new_status,
	reviewer_id, notes, created_at FROM review_actions`

func collectActions(
	next func() bool,
	scan func(...any) error,
	close func() error,
	rowsErr func() error,
) ([]*domain.ReviewAction, error) {
	defer close()

	var actions []*domain.ReviewAction
	for next() {
		var a domain.ReviewAction
		var oldStatus, newStatus, createdAt string
		if err := scan(&a.ID, &a.PackageID, &a.Action, &oldStatus, &newStatus,
			&a.ReviewerID, &a.Notes, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning review action: %w", err)
		}
		a.OldStatus = domain.PackageStatus(oldStatus)
		a.NewStatus = domain.PackageStatus(newStatus)
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			a.CreatedAt = t
		}
		actions = append(actions, &a)
	}
	return actions, rowsErr()
}
