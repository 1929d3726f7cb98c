package service

import (
	"context"
	"time"

	"github.com/mgrinnell/lectern/internal/domain"
	"github.com/mgrinnell/lectern/internal/repository"
	"github.com/mgrinnell/lectern/internal/store"
)

type generationService struct {
	client   GenerationAPI
	packages *store.PackageStore
	cache    repository.PackageCacheRepo
	observer OpObserver
}

func NewGenerationService(
	client GenerationAPI,
	packages *store.PackageStore,
	cache repository.PackageCacheRepo,
	observers ...OpObserver,
) GenerationService {
	return &generationService{
		client:   client,
		packages: packages,
		cache:    cache,
		observer: opObserverOrNoop(observers),
	}
}

// Generate requests a basic package generation. The request is
// validated locally first; an invalid request never reaches the
// network. The created package lands in the shared store immediately
// so flows see it in whatever status the service assigned.
func (s *generationService) Generate(ctx context.Context, req domain.GenerationRequest) (pkg *domain.ContentPackage, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveOp(ctx, OpEvent{
			Name:      "generate-content",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"subject": req.Subject, "subskill": req.Subskill},
		})
	}()

	if err = req.Validate(); err != nil {
		return nil, err
	}

	pkg, err = s.client.GenerateContent(ctx, req)
	if err != nil {
		return nil, err
	}

	s.record(ctx, pkg)
	return pkg, nil
}

// GenerateEnhanced requests curriculum-aware or manual-mode generation.
func (s *generationService) GenerateEnhanced(ctx context.Context, req domain.EnhancedGenerationRequest) (pkg *domain.ContentPackage, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveOp(ctx, OpEvent{
			Name:      "generate-content-enhanced",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"mode": string(req.Mode)},
		})
	}()

	if err = req.Validate(); err != nil {
		return nil, err
	}

	pkg, err = s.client.GenerateContentEnhanced(ctx, req)
	if err != nil {
		return nil, err
	}

	s.record(ctx, pkg)
	return pkg, nil
}

func (s *generationService) record(ctx context.Context, pkg *domain.ContentPackage) {
	s.packages.Add(*pkg)
	// Cache write failures do not fail the generation; the package
	// exists on the server regardless.
	_ = s.cache.Put(ctx, pkg)
}
