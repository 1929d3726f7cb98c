package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mgrinnell/lectern/internal/api"
	"github.com/mgrinnell/lectern/internal/domain"
	"github.com/mgrinnell/lectern/internal/repository"
	"github.com/mgrinnell/lectern/internal/store"
)

type packageService struct {
	client   PackageAPI
	packages *store.PackageStore
	cache    repository.PackageCacheRepo
	observer OpObserver
}

func NewPackageService(
	client PackageAPI,
	packages *store.PackageStore,
	cache repository.PackageCacheRepo,
	observers ...OpObserver,
) PackageService {
	return &packageService{
		client:   client,
		packages: packages,
		cache:    cache,
		observer: opObserverOrNoop(observers),
	}
}

// Get fetches a package from the service and refreshes both local
// copies of it. The fetched copy replaces whatever was cached.
func (s *packageService) Get(ctx context.Context, id, subject, unit string) (*domain.ContentPackage, error) {
	pkg, err := s.client.GetPackage(ctx, id, subject, unit)
	if err != nil {
		return nil, err
	}
	s.packages.Upsert(*pkg)
	_ = s.cache.Put(ctx, pkg)
	return pkg, nil
}

// GetCached returns the last-fetched copy of a package without
// touching the network, along with when it was fetched.
func (s *packageService) GetCached(ctx context.Context, id string) (*domain.ContentPackage, time.Time, error) {
	return s.cache.Get(ctx, id)
}

// List fetches packages matching the filter. An unfiltered listing is
// authoritative and replaces the shared store wholesale; a filtered
// one only refreshes the packages it returned.
func (s *packageService) List(ctx context.Context, filter api.ListFilter) ([]domain.ContentPackage, error) {
	pkgs, err := s.client.ListPackages(ctx, filter)
	if err != nil {
		return nil, err
	}

	if filter == (api.ListFilter{}) {
		s.packages.ReplaceAll(pkgs)
	} else {
		for _, p := range pkgs {
			s.packages.Upsert(p)
		}
	}
	for i := range pkgs {
		_ = s.cache.Put(ctx, &pkgs[i])
	}
	return pkgs, nil
}

// ListCached lists the locally cached packages, for browsing while the
// service is unreachable.
func (s *packageService) ListCached(ctx context.Context) ([]*domain.ContentPackage, error) {
	return s.cache.List(ctx)
}

// Delete removes a package on the service and, when the service
// confirms, locally as well.
func (s *packageService) Delete(ctx context.Context, id, subject, unit string) (deleted bool, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveOp(ctx, OpEvent{
			Name:      "delete-package",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"package_id": id},
		})
	}()

	deleted, err = s.client.DeletePackage(ctx, id, subject, unit)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, nil
	}

	s.packages.Remove(id)
	if cacheErr := s.cache.Delete(ctx, id); cacheErr != nil && !errors.Is(cacheErr, repository.ErrNotFound) {
		return true, fmt.Errorf("evicting deleted package: %w", cacheErr)
	}
	return true, nil
}
