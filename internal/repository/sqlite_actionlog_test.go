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

func TestSQLiteActionLogRepo_AppendFillsDefaults(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteActionLogRepo(database)
	ctx := context.Background()

	action := &domain.ReviewAction{
		PackageID:  "pkg_001",
		Action:     "approve",
		OldStatus:  domain.StatusUnderReview,
		NewStatus:  domain.StatusApproved,
		ReviewerID: "morgan",
		Notes:      "Package approved for publication",
	}
	require.NoError(t, repo.Append(ctx, action))
	assert.NotEmpty(t, action.ID)
	assert.False(t, action.CreatedAt.IsZero())

	actions, err := repo.ListByPackage(ctx, "pkg_001")
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, "approve", actions[0].Action)
	assert.Equal(t, domain.StatusApproved, actions[0].NewStatus)
	assert.Equal(t, "morgan", actions[0].ReviewerID)
}

func TestSQLiteActionLogRepo_ListByPackageOrdersOldestFirst(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteActionLogRepo(database)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	steps := []struct {
		action string
		status domain.PackageStatus
	}{
		{"request-changes", domain.StatusNeedsRevision},
		{"review", domain.StatusUnderReview},
		{"approve", domain.StatusApproved},
	}
	for i, s := range steps {
		require.NoError(t, repo.Append(ctx, &domain.ReviewAction{
			PackageID: "pkg_001",
			Action:    s.action,
			NewStatus: s.status,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.Append(ctx, &domain.ReviewAction{
		PackageID: "pkg_other",
		Action:    "reject",
	}))

	actions, err := repo.ListByPackage(ctx, "pkg_001")
	require.NoError(t, err)
	require.Len(t, actions, 3)
	assert.Equal(t, "request-changes", actions[0].Action)
	assert.Equal(t, "approve", actions[2].Action)
}

func TestSQLiteActionLogRepo_ListRecent(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteActionLogRepo(database)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Append(ctx, &domain.ReviewAction{
			PackageID: "pkg_001",
			Action:    "review",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	actions, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, actions, 2)
	assert.True(t, actions[0].CreatedAt.After(actions[1].CreatedAt))

	// limit <= 0 falls back to the default of 50
	all, err := repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}
