package server

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"samiratravel/database"
	"samiratravel/handlers"
	"samiratravel/limiter"
	"samiratravel/models"
	"samiratravel/services"
	"samiratravel/utils"
)

type stubVerifier struct{}

func (stubVerifier) Verify(ctx context.Context, idToken string) (models.Identity, error) {
	if idToken != "good" {
		return models.Identity{}, services.ErrInvalidIDToken
	}
	return models.Identity{UID: "uid-1", Email: "owner@samira.id"}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	require.NoError(t, database.Initialize("sqlite", filepath.Join(t.TempDir(), "router.db")))
	t.Cleanup(func() { database.Close() })
	_, err := database.SeedAdmins(t.Context(), database.DB, []string{"owner@samira.id"})
	require.NoError(t, err)

	adminDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(adminDir, "index.html"), []byte("<h1>console</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(adminDir, "admin.js"), []byte("boot()"), 0o644))

	db := services.NewSQLExecutor(database.DB)
	packages := services.NewPackageService(db)
	gallery := services.NewGalleryService(db)
	profile := services.NewProfileService(db)
	leader := services.NewTourLeaderService(db)
	activity := services.NewActivityService(db)
	sessions := services.NewAdminSessionService(db)
	site := services.NewSiteService(packages, gallery, profile, leader)

	tokens := utils.NewTokenManager("router-secret", time.Hour)
	attempts := limiter.New(limiter.NewMemoryStore(), 3, 7*24*time.Hour)
	landing := template.Must(template.New("landing").Parse(`<h1>{{.Title}}</h1>`))

	router := NewRouter(Handlers{
		Auth:      handlers.NewAuthHandler(stubVerifier{}, sessions, tokens, attempts, activity),
		Packages:  handlers.NewPackageHandler(packages, activity),
		Gallery:   handlers.NewGalleryHandler(gallery, activity),
		Profile:   handlers.NewProfileHandler(profile, leader, activity),
		Dashboard: handlers.NewDashboardHandler(packages, gallery, activity),
		Site:      handlers.NewSiteHandler(site, packages, gallery, profile, leader, landing),
	}, Options{Tokens: tokens, Sessions: sessions, AdminDir: adminDir})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func noRedirectClient() *http.Client {
	return &http.Client{CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}}
}

func do(t *testing.T, srv *httptest.Server, method, path, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-ID", "router-test")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := noRedirectClient().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out bytes.Buffer
	_, err = out.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, out.Bytes()
}

func login(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp, body := do(t, srv, http.MethodPost, "/api/admin/login", "", models.LoginRequest{IDToken: "good"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var envelope struct {
		Data models.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope.Data.Token
}

func TestRouter_PublicRoutes(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, srv, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "SAMIRA TRAVEL")
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp, _ = do(t, srv, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodGet, "/api/public/tour-leader", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodGet, "/media/profile", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_UnknownPaths(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := do(t, srv, http.MethodGet, "/no/such/page", "", nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	resp, body := do(t, srv, http.MethodGet, "/api/nothing", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "Not found")
}

func TestRouter_AdminGuard(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := do(t, srv, http.MethodGet, "/api/admin/packages", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodGet, "/api/admin/packages", "forged", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := login(t, srv)

	resp, body := do(t, srv, http.MethodPost, "/api/admin/packages", token, models.CreatePackageRequest{
		Name:        "Umrah Reguler",
		Description: "9 hari",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = do(t, srv, http.MethodGet, "/api/site", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Umrah Reguler")

	resp, _ = do(t, srv, http.MethodPost, "/api/admin/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// the token is still signed but its session record is gone
	resp, body = do(t, srv, http.MethodGet, "/api/admin/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "Session expired")
}

func TestRouter_CORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := do(t, srv, http.MethodOptions, "/api/admin/packages", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "X-Client-ID")
}

func TestRouter_AdminConsole(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := do(t, srv, http.MethodGet, "/admin", "", nil)
	assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode)

	resp, body := do(t, srv, http.MethodGet, "/admin/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "console")

	resp, body = do(t, srv, http.MethodGet, "/admin/admin.js", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(string(body), "boot()"))

	resp, body = do(t, srv, http.MethodGet, "/admin/packages/edit", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "console")
}

func TestRouter_APIResponsesAreJSON(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/api/site", "/api/public/packages", "/api/admin/login/status", "/api/admin/me"} {
		resp, _ := do(t, srv, http.MethodGet, path, "", nil)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"), path)
	}
}
