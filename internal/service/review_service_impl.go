package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mgrinnell/lectern/internal/api"
	"github.com/mgrinnell/lectern/internal/domain"
	"github.com/mgrinnell/lectern/internal/repository"
	"github.com/mgrinnell/lectern/internal/store"
)

// DefaultApprovalNote fills the notes field when a reviewer approves
// without writing anything.
const DefaultApprovalNote = "Package approved for publication"

type reviewService struct {
	client     ReviewAPI
	reviewerID string
	packages   *store.PackageStore
	drafts     repository.DraftRepo
	actions    repository.ActionLogRepo
	observer   OpObserver
}

func NewReviewService(
	client ReviewAPI,
	reviewerID string,
	packages *store.PackageStore,
	drafts repository.DraftRepo,
	actions repository.ActionLogRepo,
	observers ...OpObserver,
) ReviewService {
	return &reviewService{
		client:     client,
		reviewerID: reviewerID,
		packages:   packages,
		drafts:     drafts,
		actions:    actions,
		observer:   opObserverOrNoop(observers),
	}
}

func (s *reviewService) Queue(ctx context.Context, subject, unit string, limit int) ([]domain.ContentPackage, error) {
	return s.client.GetReviewQueue(ctx, subject, unit, limit)
}

// Decide submits a review decision. Notes are required for every
// decision except approval, which falls back to a stock note. The
// returned statuses come from the server response; the requested
// target is never assumed to have taken effect.
func (s *reviewService) Decide(ctx context.Context, id, subject, unit string, target domain.PackageStatus, notes string) (result *DecisionResult, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveOp(ctx, OpEvent{
			Name:      "review-decide",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"package_id": id, "target": string(target)},
		})
	}()

	notes = strings.TrimSpace(notes)
	if notes == "" {
		if target != domain.StatusApproved {
			return nil, domain.NewValidationError("notes", "Please provide review notes")
		}
		notes = DefaultApprovalNote
	}

	resp, err := s.client.UpdateStatus(ctx, id, subject, unit, api.StatusUpdateRequest{
		Status:     target,
		ReviewerID: s.reviewerID,
		Notes:      notes,
	})
	if err != nil {
		return nil, err
	}

	if resp.Package != nil {
		s.packages.Upsert(*resp.Package)
	}

	if logErr := s.actions.Append(ctx, &domain.ReviewAction{
		PackageID:  resp.PackageID,
		Action:     actionForStatus(resp.NewStatus),
		OldStatus:  resp.OldStatus,
		NewStatus:  resp.NewStatus,
		ReviewerID: s.reviewerID,
		Notes:      notes,
	}); logErr != nil {
		return nil, fmt.Errorf("recording review action: %w", logErr)
	}

	// The decision went through; a leftover draft is now stale.
	if delErr := s.drafts.Delete(ctx, id); delErr != nil && !errors.Is(delErr, repository.ErrNotFound) {
		return nil, fmt.Errorf("clearing review draft: %w", delErr)
	}

	return &DecisionResult{
		PackageID: resp.PackageID,
		OldStatus: resp.OldStatus,
		NewStatus: resp.NewStatus,
		Message:   resp.Message,
	}, nil
}

func (s *reviewService) ReviewInfo(ctx context.Context, id, subject, unit string) (*domain.ReviewInfo, error) {
	return s.client.GetReviewInfo(ctx, id, subject, unit)
}

func (s *reviewService) SaveDraft(ctx context.Context, d *domain.ReviewDraft) error {
	if d.PackageID == "" {
		return domain.NewValidationError("package_id", "Package ID is required")
	}
	return s.drafts.Save(ctx, d)
}

func (s *reviewService) LoadDraft(ctx context.Context, packageID string) (*domain.ReviewDraft, error) {
	return s.drafts.Get(ctx, packageID)
}

func (s *reviewService) DiscardDraft(ctx context.Context, packageID string) error {
	return s.drafts.Delete(ctx, packageID)
}

func (s *reviewService) ListDrafts(ctx context.Context) ([]*domain.ReviewDraft, error) {
	return s.drafts.List(ctx)
}

func (s *reviewService) Actions(ctx context.Context, packageID string) ([]*domain.ReviewAction, error) {
	return s.actions.ListByPackage(ctx, packageID)
}

func (s *reviewService) RecentActions(ctx context.Context, limit int) ([]*domain.ReviewAction, error) {
	return s.actions.ListRecent(ctx, limit)
}

func actionForStatus(status domain.PackageStatus) string {
	switch status {
	case domain.StatusApproved:
		return "approve"
	case domain.StatusRejected:
		return "reject"
	case domain.StatusNeedsRevision:
		return "request-changes"
	case domain.StatusPublished:
		return "publish"
	default:
		return "status-change"
	}
}
