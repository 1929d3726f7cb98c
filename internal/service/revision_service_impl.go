package service

import (
	"context"
	"time"

	"github.com/mgrinnell/lectern/internal/domain"
	"github.com/mgrinnell/lectern/internal/repository"
	"github.com/mgrinnell/lectern/internal/store"
)

type revisionService struct {
	client     RevisionAPI
	reviewerID string
	packages   *store.PackageStore
	actions    repository.ActionLogRepo
	observer   OpObserver
}

func NewRevisionService(
	client RevisionAPI,
	reviewerID string,
	packages *store.PackageStore,
	actions repository.ActionLogRepo,
	observers ...OpObserver,
) RevisionService {
	return &revisionService{
		client:     client,
		reviewerID: reviewerID,
		packages:   packages,
		actions:    actions,
		observer:   opObserverOrNoop(observers),
	}
}

// Submit validates and sends a batch of per-component revision
// requests. Validation failures never reach the network. The returned
// package is the server's updated copy and is authoritative for
// status.
func (s *revisionService) Submit(ctx context.Context, req domain.RevisionRequest) (pkg *domain.ContentPackage, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveOp(ctx, OpEvent{
			Name:      "submit-revisions",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"package_id": req.PackageID, "revisions": len(req.Revisions)},
		})
	}()

	if err = req.Validate(); err != nil {
		return nil, err
	}
	if req.ReviewerID == "" {
		req.ReviewerID = s.reviewerID
	}

	pkg, err = s.client.SubmitRevisions(ctx, req)
	if err != nil {
		return nil, err
	}

	s.packages.Upsert(*pkg)

	// Best effort: a failed log write should not mask a successful
	// submission.
	_ = s.actions.Append(ctx, &domain.ReviewAction{
		PackageID:  pkg.ID,
		Action:     "revise",
		NewStatus:  pkg.Status,
		ReviewerID: s.reviewerID,
		Notes:      summarizeRevisions(req.Revisions),
	})

	return pkg, nil
}

func (s *revisionService) History(ctx context.Context, id, subject, unit string) ([]domain.RevisionEntry, error) {
	return s.client.GetRevisionHistory(ctx, id, subject, unit)
}

func summarizeRevisions(revisions []domain.ComponentRevision) string {
	if len(revisions) == 0 {
		return ""
	}
	out := "Requested changes to"
	for i, r := range revisions {
		if i > 0 {
			out += ","
		}
		out += " " + string(r.ComponentType)
	}
	return out
}
