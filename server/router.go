// Package server wires handlers and middleware into the HTTP router.
package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"samiratravel/handlers"
	"samiratravel/middleware"
	"samiratravel/models"
	"samiratravel/utils"
)

// Handlers groups the HTTP handlers the router mounts.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Packages  *handlers.PackageHandler
	Gallery   *handlers.GalleryHandler
	Profile   *handlers.ProfileHandler
	Dashboard *handlers.DashboardHandler
	Site      *handlers.SiteHandler
}

// Options configures the session guard and the admin console assets.
type Options struct {
	Tokens   *utils.TokenManager
	Sessions middleware.SessionStore
	// AdminDir holds the static admin console; empty disables /admin.
	AdminDir string
}

// NewRouter builds the application router.
//
//	GET  /                        landing page
//	GET  /api/site, /api/public/*  public JSON
//	GET  /media/*                 stored images
//	     /api/admin/*             admin API, guarded except login
//	GET  /admin/*                 admin console
//
// Unknown pages redirect to the landing page; unknown API paths return 404.
func NewRouter(h Handlers, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.Wrap(middleware.LoggingMiddleware))
	r.Use(middleware.Wrap(middleware.CORSMiddleware))

	r.Get("/", h.Site.Landing)
	r.Get("/health", handlers.Health)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/media", func(r chi.Router) {
		r.Get("/profile", h.Site.ProfileMedia)
		r.Get("/tour-leader", h.Site.TourLeaderMedia)
		r.Get("/gallery/{id}", h.Site.GalleryMedia)
	})

	r.With(jsonAPI()).Get("/api/site", h.Site.SiteJSON)
	r.Route("/api/public", func(r chi.Router) {
		r.Use(jsonAPI())
		r.Get("/packages", h.Site.PublicPackages)
		r.Get("/gallery", h.Site.PublicGallery)
		r.Get("/profile", h.Site.PublicProfile)
		r.Get("/tour-leader", h.Site.PublicTourLeader)
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(jsonAPI())
		r.Post("/login", h.Auth.Login)
		r.Get("/login/status", h.Auth.LoginStatus)

		r.Group(func(r chi.Router) {
			r.Use(jsonAPI(middleware.AuthMiddleware(opts.Tokens, opts.Sessions)))

			r.Get("/me", h.Auth.GetMe)
			r.Post("/logout", h.Auth.Logout)

			r.Route("/packages", func(r chi.Router) {
				r.Get("/", h.Packages.List)
				r.Post("/", h.Packages.Create)
				r.Get("/{id}", h.Packages.Get)
				r.Put("/{id}", h.Packages.Update)
				r.Delete("/{id}", h.Packages.Delete)
			})

			r.Route("/gallery", func(r chi.Router) {
				r.Get("/", h.Gallery.List)
				r.Post("/", h.Gallery.Create)
				r.Get("/{id}", h.Gallery.Get)
				r.Put("/{id}", h.Gallery.Update)
				r.Delete("/{id}", h.Gallery.Delete)
			})

			r.Get("/profile", h.Profile.GetProfile)
			r.Put("/profile", h.Profile.UpdateProfile)
			r.Get("/tour-leader", h.Profile.GetTourLeader)
			r.Put("/tour-leader", h.Profile.UpdateTourLeader)

			r.Post("/images", handlers.UploadImage)

			r.Get("/dashboard/stats", h.Dashboard.GetDashboardStats)
			r.Get("/dashboard/activities", h.Dashboard.GetRecentActivities)
		})
	})

	if opts.AdminDir != "" {
		r.Get("/admin", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/admin/", http.StatusMovedPermanently)
		})
		r.Get("/admin/*", adminConsole(opts.AdminDir))
	}

	r.NotFound(notFound)
	return r
}

// jsonAPI composes mws with the JSON content type every API response carries.
func jsonAPI(mws ...func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return middleware.Wrap(func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.ChainMiddleware(next, append(mws, middleware.SetJSONHeader)...)
	})
}

// adminConsole serves files from dir and falls back to index.html so the
// console can handle its own routes.
func adminConsole(dir string) http.HandlerFunc {
	fs := http.StripPrefix("/admin/", http.FileServer(http.Dir(dir)))
	return func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean("/" + strings.TrimPrefix(r.URL.Path, "/admin/"))
		if info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(name))); err != nil || info.IsDir() && name != "/" {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}
		fs.ServeHTTP(w, r)
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(models.ErrorResponse("Not found", nil))
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
