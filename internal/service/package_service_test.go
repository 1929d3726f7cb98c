package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgrinnell/lectern/internal/api"
	"github.com/mgrinnell/lectern/internal/domain"
	"github.com/mgrinnell/lectern/internal/repository"
)

func TestPackageService_GetRefreshesLocalCopies(t *testing.T) {
	client := &fakePackageAPI{pkg: testPackage("pkg_001", domain.StatusGenerated)}
	repos := newTestRepos(t)
	packages := newStore()
	svc := NewPackageService(client, packages, repos.cache)
	ctx := context.Background()

	pkg, err := svc.Get(ctx, "pkg_001", "biology", "cells")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusGenerated, pkg.Status)

	cached, ok := packages.Get("pkg_001")
	require.True(t, ok)
	assert.Equal(t, domain.StatusGenerated, cached.Status)

	local, _, err := svc.GetCached(ctx, "pkg_001")
	require.NoError(t, err)
	assert.Equal(t, "pkg_001", local.ID)
}

func TestPackageService_GetNotFoundLeavesStoreAlone(t *testing.T) {
	client := &fakePackageAPI{pkgErr: &api.NotFoundError{Message: "Content package not found"}}
	repos := newTestRepos(t)
	packages := newStore()
	svc := NewPackageService(client, packages, repos.cache)

	_, err := svc.Get(context.Background(), "pkg_missing", "biology", "cells")
	assert.ErrorIs(t, err, api.ErrNotFound)
	assert.Equal(t, 0, packages.Len())
}

func TestPackageService_ListUnfilteredReplacesStore(t *testing.T) {
	client := &fakePackageAPI{
		list: []domain.ContentPackage{
			*testPackage("pkg_001", domain.StatusGenerated),
			*testPackage("pkg_002", domain.StatusApproved),
		},
	}
	repos := newTestRepos(t)
	packages := newStore()
	packages.Add(*testPackage("pkg_stale", domain.StatusDraft))
	svc := NewPackageService(client, packages, repos.cache)

	pkgs, err := svc.List(context.Background(), api.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, pkgs, 2)

	_, stale := packages.Get("pkg_stale")
	assert.False(t, stale, "unfiltered listing replaces the store wholesale")
	assert.Equal(t, 2, packages.Len())
}

func TestPackageService_ListFilteredOnlyUpserts(t *testing.T) {
	client := &fakePackageAPI{
		list: []domain.ContentPackage{
			*testPackage("pkg_002", domain.StatusApproved),
		},
	}
	repos := newTestRepos(t)
	packages := newStore()
	packages.Add(*testPackage("pkg_001", domain.StatusGenerated))
	svc := NewPackageService(client, packages, repos.cache)

	_, err := svc.List(context.Background(), api.ListFilter{Status: domain.StatusApproved})
	require.NoError(t, err)

	_, kept := packages.Get("pkg_001")
	assert.True(t, kept, "filtered listing must not evict unrelated packages")
	assert.Equal(t, 2, packages.Len())
}

func TestPackageService_ListCachedSurvivesOffline(t *testing.T) {
	repos := newTestRepos(t)
	packages := newStore()
	ctx := context.Background()

	online := &fakePackageAPI{list: []domain.ContentPackage{*testPackage("pkg_001", domain.StatusGenerated)}}
	svc := NewPackageService(online, packages, repos.cache)
	_, err := svc.List(ctx, api.ListFilter{})
	require.NoError(t, err)

	// Same cache, service now unreachable.
	offline := &fakePackageAPI{listErr: errors.New("connection refused")}
	svc = NewPackageService(offline, newStore(), repos.cache)

	_, err = svc.List(ctx, api.ListFilter{})
	require.Error(t, err)

	cached, err := svc.ListCached(ctx)
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, "pkg_001", cached[0].ID)
}

func TestPackageService_DeleteRemovesLocalCopies(t *testing.T) {
	client := &fakePackageAPI{deleted: true}
	repos := newTestRepos(t)
	packages := newStore()
	packages.Add(*testPackage("pkg_001", domain.StatusRejected))
	svc := NewPackageService(client, packages, repos.cache)
	ctx := context.Background()

	require.NoError(t, repos.cache.Put(ctx, testPackage("pkg_001", domain.StatusRejected)))

	deleted, err := svc.Delete(ctx, "pkg_001", "biology", "cells")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, 0, packages.Len())

	_, _, err = repos.cache.Get(ctx, "pkg_001")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPackageService_DeleteUnconfirmedKeepsLocalCopies(t *testing.T) {
	client := &fakePackageAPI{deleted: false}
	repos := newTestRepos(t)
	packages := newStore()
	packages.Add(*testPackage("pkg_001", domain.StatusRejected))
	svc := NewPackageService(client, packages, repos.cache)

	deleted, err := svc.Delete(context.Background(), "pkg_001", "biology", "cells")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 1, packages.Len(), "unconfirmed delete must not drop local state")
}
