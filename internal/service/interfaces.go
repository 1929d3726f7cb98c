package service

import (
	"context"
	"time"

	"github.com/mgrinnell/lectern/internal/api"
	"github.com/mgrinnell/lectern/internal/domain"
)

// GenerationAPI is the slice of the HTTP client the generation service
// consumes.
type GenerationAPI interface {
	GenerateContent(ctx context.Context, req domain.GenerationRequest) (*domain.ContentPackage, error)
	GenerateContentEnhanced(ctx context.Context, req domain.EnhancedGenerationRequest) (*domain.ContentPackage, error)
}

// PackageAPI covers package fetch, listing and deletion.
type PackageAPI interface {
	GetPackage(ctx context.Context, id, subject, unit string) (*domain.ContentPackage, error)
	ListPackages(ctx context.Context, filter api.ListFilter) ([]domain.ContentPackage, error)
	DeletePackage(ctx context.Context, id, subject, unit string) (bool, error)
}

// ReviewAPI covers the reviewer-facing endpoints.
type ReviewAPI interface {
	GetReviewQueue(ctx context.Context, subject, unit string, limit int) ([]domain.ContentPackage, error)
	UpdateStatus(ctx context.Context, id, subject, unit string, req api.StatusUpdateRequest) (*api.StatusUpdateResponse, error)
	GetReviewInfo(ctx context.Context, id, subject, unit string) (*domain.ReviewInfo, error)
}

// RevisionAPI covers revision submission and history.
type RevisionAPI interface {
	SubmitRevisions(ctx context.Context, req domain.RevisionRequest) (*domain.ContentPackage, error)
	GetRevisionHistory(ctx context.Context, id, subject, unit string) ([]domain.RevisionEntry, error)
}

// CurriculumAPI covers curriculum browsing.
type CurriculumAPI interface {
	CurriculumStatus(ctx context.Context) (*domain.CurriculumStatus, error)
	Subjects(ctx context.Context) ([]string, error)
	Grades(ctx context.Context, subject string) ([]string, error)
	BrowseCurriculum(ctx context.Context, subject, grade string) ([]domain.Curriculum, error)
	SubskillContext(ctx context.Context, subskillID string) (*domain.SubskillContext, error)
}

type GenerationService interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (*domain.ContentPackage, error)
	GenerateEnhanced(ctx context.Context, req domain.EnhancedGenerationRequest) (*domain.ContentPackage, error)
}

type PackageService interface {
	Get(ctx context.Context, id, subject, unit string) (*domain.ContentPackage, error)
	GetCached(ctx context.Context, id string) (*domain.ContentPackage, time.Time, error)
	List(ctx context.Context, filter api.ListFilter) ([]domain.ContentPackage, error)
	ListCached(ctx context.Context) ([]*domain.ContentPackage, error)
	Delete(ctx context.Context, id, subject, unit string) (bool, error)
}

// DecisionResult reports the outcome of a review decision. NewStatus
// comes from the server response, never from the requested target.
type DecisionResult struct {
	PackageID string
	OldStatus domain.PackageStatus
	NewStatus domain.PackageStatus
	Message   string
}

type ReviewService interface {
	Queue(ctx context.Context, subject, unit string, limit int) ([]domain.ContentPackage, error)
	Decide(ctx context.Context, id, subject, unit string, target domain.PackageStatus, notes string) (*DecisionResult, error)
	ReviewInfo(ctx context.Context, id, subject, unit string) (*domain.ReviewInfo, error)
	SaveDraft(ctx context.Context, d *domain.ReviewDraft) error
	LoadDraft(ctx context.Context, packageID string) (*domain.ReviewDraft, error)
	DiscardDraft(ctx context.Context, packageID string) error
	ListDrafts(ctx context.Context) ([]*domain.ReviewDraft, error)
	Actions(ctx context.Context, packageID string) ([]*domain.ReviewAction, error)
	RecentActions(ctx context.Context, limit int) ([]*domain.ReviewAction, error)
}

type RevisionService interface {
	Submit(ctx context.Context, req domain.RevisionRequest) (*domain.ContentPackage, error)
	History(ctx context.Context, id, subject, unit string) ([]domain.RevisionEntry, error)
}

type CurriculumService interface {
	Status(ctx context.Context) (*domain.CurriculumStatus, error)
	Subjects(ctx context.Context) ([]string, error)
	Grades(ctx context.Context, subject string) ([]string, error)
	Browse(ctx context.Context, subject, grade string) ([]domain.Curriculum, error)
	SubskillContext(ctx context.Context, subskillID string) (*domain.SubskillContext, error)
	PrefillRequest(ctx context.Context, subskillID string) (*domain.EnhancedGenerationRequest, error)
}
