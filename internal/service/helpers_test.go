package service

import (
	"context"
	"testing"

	"github.com/mgrinnell/lectern/internal/api"
	"github.com/mgrinnell/lectern/internal/domain"
	"github.com/mgrinnell/lectern/internal/repository"
	"github.com/mgrinnell/lectern/internal/store"
	"github.com/mgrinnell/lectern/internal/testutil"
)

// testRepos bundles the local persistence stack backed by an in-memory
// database.
type testRepos struct {
	drafts  repository.DraftRepo
	cache   repository.PackageCacheRepo
	actions repository.ActionLogRepo
}

func newTestRepos(t *testing.T) testRepos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testRepos{
		drafts:  repository.NewSQLiteDraftRepo(database),
		cache:   repository.NewSQLitePackageCacheRepo(database),
		actions: repository.NewSQLiteActionLogRepo(database),
	}
}

func testPackage(id string, status domain.PackageStatus) *domain.ContentPackage {
	return &domain.ContentPackage{
		ID:       id,
		Subject:  "biology",
		Unit:     "cells",
		Skill:    "cell-structure",
		Subskill: "organelles",
		Status:   status,
	}
}

// fakeReviewAPI records status updates and serves canned responses.
type fakeReviewAPI struct {
	queue       []domain.ContentPackage
	queueErr    error
	updateResp  *api.StatusUpdateResponse
	updateErr   error
	updateCalls []api.StatusUpdateRequest
	info        *domain.ReviewInfo
}

func (f *fakeReviewAPI) GetReviewQueue(ctx context.Context, subject, unit string, limit int) ([]domain.ContentPackage, error) {
	return f.queue, f.queueErr
}

func (f *fakeReviewAPI) UpdateStatus(ctx context.Context, id, subject, unit string, req api.StatusUpdateRequest) (*api.StatusUpdateResponse, error) {
	f.updateCalls = append(f.updateCalls, req)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateResp, nil
}

func (f *fakeReviewAPI) GetReviewInfo(ctx context.Context, id, subject, unit string) (*domain.ReviewInfo, error) {
	return f.info, nil
}

// fakeRevisionAPI records submitted revision requests.
type fakeRevisionAPI struct {
	submitResp  *domain.ContentPackage
	submitErr   error
	submitCalls []domain.RevisionRequest
	history     []domain.RevisionEntry
}

func (f *fakeRevisionAPI) SubmitRevisions(ctx context.Context, req domain.RevisionRequest) (*domain.ContentPackage, error) {
	f.submitCalls = append(f.submitCalls, req)
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.submitResp, nil
}

func (f *fakeRevisionAPI) GetRevisionHistory(ctx context.Context, id, subject, unit string) ([]domain.RevisionEntry, error) {
	return f.history, nil
}

// fakeGenerationAPI counts generation calls.
type fakeGenerationAPI struct {
	resp          *domain.ContentPackage
	err           error
	basicCalls    int
	enhancedCalls int
}

func (f *fakeGenerationAPI) GenerateContent(ctx context.Context, req domain.GenerationRequest) (*domain.ContentPackage, error) {
	f.basicCalls++
	return f.resp, f.err
}

func (f *fakeGenerationAPI) GenerateContentEnhanced(ctx context.Context, req domain.EnhancedGenerationRequest) (*domain.ContentPackage, error) {
	f.enhancedCalls++
	return f.resp, f.err
}

// fakePackageAPI serves canned package listings.
type fakePackageAPI struct {
	pkg        *domain.ContentPackage
	pkgErr     error
	list       []domain.ContentPackage
	listErr    error
	deleted    bool
	deleteErr  error
	getCalls   int
	lastFilter api.ListFilter
}

func (f *fakePackageAPI) GetPackage(ctx context.Context, id, subject, unit string) (*domain.ContentPackage, error) {
	f.getCalls++
	return f.pkg, f.pkgErr
}

func (f *fakePackageAPI) ListPackages(ctx context.Context, filter api.ListFilter) ([]domain.ContentPackage, error) {
	f.lastFilter = filter
	return f.list, f.listErr
}

func (f *fakePackageAPI) DeletePackage(ctx context.Context, id, subject, unit string) (bool, error) {
	return f.deleted, f.deleteErr
}

func newStore() *store.PackageStore {
	return store.NewPackageStore()
}
