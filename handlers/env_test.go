package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"samiratravel/database"
	"samiratravel/middleware"
	"samiratravel/services"
)

type testEnv struct {
	packages services.PackageService
	gallery  services.GalleryService
	profile  services.ProfileService
	leader   services.TourLeaderService
	activity services.ActivityService
	sessions services.AdminSessionService
	site     services.SiteService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	require.NoError(t, database.Initialize("sqlite", filepath.Join(t.TempDir(), "handlers.db")))
	t.Cleanup(func() { database.Close() })

	db := services.NewSQLExecutor(database.DB)
	env := &testEnv{
		packages: services.NewPackageService(db),
		gallery:  services.NewGalleryService(db),
		profile:  services.NewProfileService(db),
		leader:   services.NewTourLeaderService(db),
		activity: services.NewActivityService(db),
		sessions: services.NewAdminSessionService(db),
	}
	env.site = services.NewSiteService(env.packages, env.gallery, env.profile, env.leader)
	return env
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Meta    struct {
		Count          int `json:"count"`
		Limit          int `json:"limit"`
		RemainingSlots int `json:"remaining_slots"`
	} `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	ctx := middleware.WithAdmin(req.Context(), middleware.AdminIdentity{UID: "uid-1", Email: "owner@samira.id"})
	return req.WithContext(ctx)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
