package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgrinnell/lectern/internal/domain"
	"github.com/mgrinnell/lectern/internal/testutil"
)

func TestSQLiteDraftRepo_SaveAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteDraftRepo(database)
	ctx := context.Background()

	draft := &domain.ReviewDraft{
		PackageID:    "pkg_001",
		Subject:      "biology",
		Unit:         "cells",
		TargetStatus: domain.StatusNeedsRevision,
		Notes:        "diagram labels are wrong",
	}
	require.NoError(t, repo.Save(ctx, draft))
	assert.False(t, draft.UpdatedAt.IsZero(), "Save should stamp UpdatedAt")

	got, err := repo.Get(ctx, "pkg_001")
	require.NoError(t, err)
	assert.Equal(t, "biology", got.Subject)
	assert.Equal(t, domain.StatusNeedsRevision, got.TargetStatus)
	assert.Equal(t, "diagram labels are wrong", got.Notes)
}

func TestSQLiteDraftRepo_SaveReplacesExisting(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteDraftRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &domain.ReviewDraft{
		PackageID:    "pkg_001",
		TargetStatus: domain.StatusRejected,
		Notes:        "first pass",
	}))
	require.NoError(t, repo.Save(ctx, &domain.ReviewDraft{
		PackageID:    "pkg_001",
		TargetStatus: domain.StatusApproved,
		Notes:        "second pass",
	}))

	got, err := repo.Get(ctx, "pkg_001")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.TargetStatus)
	assert.Equal(t, "second pass", got.Notes)

	drafts, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, drafts, 1)
}

func TestSQLiteDraftRepo_GetMissing(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteDraftRepo(database)

	_, err := repo.Get(context.Background(), "pkg_nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteDraftRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteDraftRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &domain.ReviewDraft{PackageID: "pkg_001"}))
	require.NoError(t, repo.Delete(ctx, "pkg_001"))

	_, err := repo.Get(ctx, "pkg_001")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing draft is not an error.
	assert.NoError(t, repo.Delete(ctx, "pkg_001"))
}

func TestSQLiteDraftRepo_ListNewestFirst(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteDraftRepo(database)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"pkg_a", "pkg_b", "pkg_c"} {
		require.NoError(t, repo.Save(ctx, &domain.ReviewDraft{
			PackageID: id,
			UpdatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	drafts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, drafts, 3)
	assert.Equal(t, "pkg_c", drafts[0].PackageID)
	assert.Equal(t, "pkg_a", drafts[2].PackageID)
}
