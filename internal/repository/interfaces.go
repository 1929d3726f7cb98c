package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mgrinnell/lectern/internal/domain"
)

// ErrNotFound indicates the requested local record does not exist.
var ErrNotFound = errors.New("not found")

// DraftRepo persists unsent review drafts.
type DraftRepo interface {
	Save(ctx context.Context, d *domain.ReviewDraft) error
	Get(ctx context.Context, packageID string) (*domain.ReviewDraft, error)
	Delete(ctx context.Context, packageID string) error
	List(ctx context.Context) ([]*domain.ReviewDraft, error)
}

// PackageCacheRepo stores the last-fetched copy of each package for
// offline browsing. Entries are replaced wholesale on re-fetch.
type PackageCacheRepo interface {
	Put(ctx context.Context, pkg *domain.ContentPackage) error
	Get(ctx context.Context, packageID string) (*domain.ContentPackage, time.Time, error)
	List(ctx context.Context) ([]*domain.ContentPackage, error)
	Delete(ctx context.Context, packageID string) error
}

// ActionLogRepo is the append-only local log of review decisions.
type ActionLogRepo interface {
	Append(ctx context.Context, a *domain.ReviewAction) error
	ListByPackage(ctx context.Context, packageID string) ([]*domain.ReviewAction, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.ReviewAction, error)
}
