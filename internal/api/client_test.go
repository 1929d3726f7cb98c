package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgrinnell/lectern/internal/domain"
)

func testClient(endpoint string) *Client {
	cfg := DefaultConfig()
	cfg.BaseURL = endpoint
	return NewClient(cfg, NoopObserver{})
}

func TestClient_GetPackage_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/content/pkg_123", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Mathematics", r.URL.Query().Get("subject"))
		assert.Equal(t, "Algebra", r.URL.Query().Get("unit"))

		pkg := domain.ContentPackage{
			ID:      "pkg_123",
			Subject: "Mathematics",
			Unit:    "Algebra",
			Status:  domain.StatusGenerated,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(pkg)
	}))
	defer srv.Close()

	pkg, err := testClient(srv.URL).GetPackage(context.Background(), "pkg_123", "Mathematics", "Algebra")
	require.NoError(t, err)
	assert.Equal(t, "pkg_123", pkg.ID)
	assert.Equal(t, domain.StatusGenerated, pkg.Status)
}

func TestClient_GetPackage_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Package not found"})
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).GetPackage(context.Background(), "pkg_missing", "Mathematics", "Algebra")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Content package not found", err.Error())
}

func TestClient_GetPackage_ServerErrorDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "cosmos unavailable"})
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).GetPackage(context.Background(), "pkg_123", "m", "u")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusInternalServerError, reqErr.StatusCode)
	assert.Equal(t, "cosmos unavailable", err.Error())
}

func TestClient_GetPackage_ServerErrorFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).GetPackage(context.Background(), "pkg_123", "m", "u")
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch content package", err.Error())
}

func TestClient_GenerateContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/generate-content", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req domain.GenerationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Mathematics", req.Subject)
		assert.Equal(t, domain.DifficultyIntermediate, req.DifficultyLevel)

		json.NewEncoder(w).Encode(domain.ContentPackage{ID: "pkg_new", Status: domain.StatusGenerating})
	}))
	defer srv.Close()

	pkg, err := testClient(srv.URL).GenerateContent(context.Background(), domain.GenerationRequest{
		Subject: "Mathematics", Unit: "Algebra", Skill: "Linear Equations",
		Subskill: "Slope-Intercept Form", DifficultyLevel: domain.DifficultyIntermediate,
	})
	require.NoError(t, err)
	assert.Equal(t, "pkg_new", pkg.ID)
}

func TestClient_GenerateContentEnhanced_CurriculumMode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/generate-content-enhanced", r.URL.Path)

		var req domain.EnhancedGenerationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, domain.ModeCurriculum, req.Mode)
		require.NotNil(t, req.CurriculumRequest)
		assert.Equal(t, "MATH-ALG-01", req.CurriculumRequest.SubskillID)

		json.NewEncoder(w).Encode(domain.ContentPackage{ID: "pkg_enh"})
	}))
	defer srv.Close()

	pkg, err := testClient(srv.URL).GenerateContentEnhanced(context.Background(), domain.EnhancedGenerationRequest{
		Mode:              domain.ModeCurriculum,
		CurriculumRequest: &domain.CurriculumReferenceRequest{SubskillID: "MATH-ALG-01", AutoPopulate: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "pkg_enh", pkg.ID)
}

func TestClient_ListPackages_Filter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/content", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "Mathematics", q.Get("subject"))
		assert.Equal(t, "under_review", q.Get("status"))
		assert.Equal(t, "25", q.Get("limit"))

		json.NewEncoder(w).Encode(listPackagesResponse{
			Packages: []domain.ContentPackage{{ID: "pkg_1"}, {ID: "pkg_2"}},
			Total:    2,
		})
	}))
	defer srv.Close()

	pkgs, err := testClient(srv.URL).ListPackages(context.Background(), ListFilter{
		Subject: "Mathematics", Status: domain.StatusUnderReview, Limit: 25,
	})
	require.NoError(t, err)
	assert.Len(t, pkgs, 2)
}

func TestClient_DeletePackage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/content/pkg_123", r.URL.Path)
		json.NewEncoder(w).Encode(deleteResponse{Success: true})
	}))
	defer srv.Close()

	ok, err := testClient(srv.URL).DeletePackage(context.Background(), "pkg_123", "m", "u")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestClient_SubmitRevisions_SingleRevisionScenario(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/content/pkg_123/revise", r.URL.Path)

		var req domain.RevisionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "pkg_123", req.PackageID)
		require.Len(t, req.Revisions, 1)
		assert.Equal(t, domain.ComponentVisual, req.Revisions[0].ComponentType)
		assert.Equal(t, "add animation", req.Revisions[0].Feedback)
		assert.Equal(t, domain.PriorityHigh, req.Revisions[0].Priority)

		json.NewEncoder(w).Encode(domain.ContentPackage{
			ID: "pkg_123", Status: domain.StatusNeedsRevision,
		})
	}))
	defer srv.Close()

	pkg, err := testClient(srv.URL).SubmitRevisions(context.Background(), domain.RevisionRequest{
		PackageID: "pkg_123",
		Subject:   "Mathematics",
		Unit:      "Algebra",
		Revisions: []domain.ComponentRevision{
			{ComponentType: domain.ComponentVisual, Feedback: "add animation", Priority: domain.PriorityHigh},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, domain.StatusNeedsRevision, pkg.Status)
}

func TestClient_GetRevisionHistory_NotFoundMeansEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	entries, err := testClient(srv.URL).GetRevisionHistory(context.Background(), "pkg_123", "m", "u")
	require.NoError(t, err)
	require.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestClient_GetRevisionHistory_NullRevisionsMeansEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"package_id":"pkg_123","revisions":null}`))
	}))
	defer srv.Close()

	entries, err := testClient(srv.URL).GetRevisionHistory(context.Background(), "pkg_123", "m", "u")
	require.NoError(t, err)
	require.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestClient_GetRevisionHistory_Entries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/content/pkg_123/revisions", r.URL.Path)
		json.NewEncoder(w).Encode(revisionHistoryResponse{
			PackageID: "pkg_123",
			Revisions: []domain.RevisionEntry{
				{
					RevisionID:        "rev_1",
					Timestamp:         time.Now().UTC(),
					ComponentsRevised: []domain.ComponentType{domain.ComponentVisual},
					FeedbackSummary:   "add animation",
					Status:            domain.RevisionInProgress,
				},
			},
		})
	}))
	defer srv.Close()

	entries, err := testClient(srv.URL).GetRevisionHistory(context.Background(), "pkg_123", "m", "u")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.RevisionInProgress, entries[0].Status)
}

func TestClient_UpdateStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/packages/pkg_123/status", r.URL.Path)
		assert.Equal(t, "Mathematics", r.URL.Query().Get("subject"))

		var req StatusUpdateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, domain.StatusApproved, req.Status)
		assert.Equal(t, "rev_42", req.ReviewerID)

		json.NewEncoder(w).Encode(StatusUpdateResponse{
			Message:   "status updated",
			PackageID: "pkg_123",
			OldStatus: domain.StatusUnderReview,
			NewStatus: domain.StatusApproved,
			UpdatedAt: time.Now().UTC(),
			Package:   &domain.ContentPackage{ID: "pkg_123", Status: domain.StatusApproved},
		})
	}))
	defer srv.Close()

	resp, err := testClient(srv.URL).UpdateStatus(context.Background(), "pkg_123", "Mathematics", "Algebra", StatusUpdateRequest{
		Status: domain.StatusApproved, ReviewerID: "rev_42", Notes: "looks good",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, resp.NewStatus)
	require.NotNil(t, resp.Package)
	assert.Equal(t, domain.StatusApproved, resp.Package.Status)
}

func TestClient_UpdateStatus_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).UpdateStatus(context.Background(), "pkg_x", "m", "u", StatusUpdateRequest{
		Status: domain.StatusApproved, ReviewerID: "rev_42",
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Package not found", err.Error())
}

func TestClient_GetReviewQueue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/packages/review-queue", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(reviewQueueResponse{
			Packages: []domain.ContentPackage{{ID: "pkg_1", Status: domain.StatusUnderReview}},
			Count:    1,
		})
	}))
	defer srv.Close()

	pkgs, err := testClient(srv.URL).GetReviewQueue(context.Background(), "", "", 10)
	require.NoError(t, err)
	require.Len(t, pkgs, 1)
	assert.Equal(t, domain.StatusUnderReview, pkgs[0].Status)
}

func TestClient_GetReviewInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/packages/pkg_123/review-info", r.URL.Path)
		json.NewEncoder(w).Encode(domain.ReviewInfo{
			PackageID: "pkg_123",
			Status:    domain.StatusUnderReview,
			ReviewHistory: []domain.ReviewNote{
				{Note: "first pass", Status: domain.StatusUnderReview, ReviewerID: "rev_42"},
			},
		})
	}))
	defer srv.Close()

	info, err := testClient(srv.URL).GetReviewInfo(context.Background(), "pkg_123", "m", "u")
	require.NoError(t, err)
	assert.Len(t, info.ReviewHistory, 1)
}

func TestClient_CurriculumEndpoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/curriculum/status":
			json.NewEncoder(w).Encode(domain.CurriculumStatus{Loaded: true, SubjectCount: 2})
		case "/api/v1/curriculum/subjects":
			json.NewEncoder(w).Encode(subjectsResponse{Subjects: []string{"Mathematics", "Science"}})
		case "/api/v1/curriculum/grades":
			assert.Equal(t, "Mathematics", r.URL.Query().Get("subject"))
			json.NewEncoder(w).Encode(gradesResponse{Grades: []string{"8", "9"}})
		case "/api/v1/curriculum/browse":
			json.NewEncoder(w).Encode(browseResponse{Curricula: []domain.Curriculum{{Subject: "Mathematics", Grade: "9"}}})
		case "/api/v1/curriculum/context/MATH-ALG-01":
			json.NewEncoder(w).Encode(domain.SubskillContext{SubskillID: "MATH-ALG-01", TargetDifficulty: 3.5})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	ctx := context.Background()

	status, err := c.CurriculumStatus(ctx)
	require.NoError(t, err)
	assert.True(t, status.Loaded)

	subjects, err := c.Subjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mathematics", "Science"}, subjects)

	grades, err := c.Grades(ctx, "Mathematics")
	require.NoError(t, err)
	assert.Equal(t, []string{"8", "9"}, grades)

	curricula, err := c.BrowseCurriculum(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, curricula, 1)

	sc, err := c.SubskillContext(ctx, "MATH-ALG-01")
	require.NoError(t, err)
	assert.Equal(t, 3.5, sc.TargetDifficulty)
}

func TestClient_FetchAudio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/audio/pkg_123/lesson.wav", r.URL.Path)
		w.Write([]byte("RIFFdata"))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	n, err := testClient(srv.URL).FetchAudio(context.Background(), "pkg_123", "lesson.wav", &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(8), n)
	assert.Equal(t, "RIFFdata", buf.String())
}

func TestClient_FetchAudio_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	_, err := testClient(srv.URL).FetchAudio(context.Background(), "pkg_123", "missing.wav", &buf)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_HealthAndStorageStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/health":
			json.NewEncoder(w).Encode(Health{Status: "healthy", Service: "content-generation", Version: "1.0.0"})
		case "/api/v1/storage/stats":
			json.NewEncoder(w).Encode(StorageStats{TotalPackages: 12, AudioFiles: 9, TotalBytes: 1 << 20})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := testClient(srv.URL)

	h, err := c.GetHealth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", h.Status)

	s, err := c.GetStorageStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, s.TotalPackages)
}

func TestClient_Unreachable(t *testing.T) {
	c := testClient("http://127.0.0.1:1") // nothing listening
	_, err := c.GetHealth(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestClient_ObserverCalled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Health{Status: "healthy"})
	}))
	defer srv.Close()

	var captured CallEvent
	obs := &captureObserver{fn: func(e CallEvent) { captured = e }}

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	c := NewClient(cfg, obs)

	_, err := c.GetHealth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, captured.Method)
	assert.Equal(t, "/api/v1/health", captured.Path)
	assert.Equal(t, http.StatusOK, captured.StatusCode)
	assert.True(t, captured.Success)
	assert.GreaterOrEqual(t, captured.LatencyMs, int64(0))
}

func TestClient_ObserverNotFoundErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	var captured CallEvent
	obs := &captureObserver{fn: func(e CallEvent) { captured = e }}

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	c := NewClient(cfg, obs)

	_, err := c.GetPackage(context.Background(), "pkg_x", "m", "u")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, captured.Success)
	assert.Equal(t, "NOT_FOUND", captured.ErrorCode)
}

type captureObserver struct {
	fn func(CallEvent)
}

func (o *captureObserver) OnCallComplete(e CallEvent) { o.fn(e) }
