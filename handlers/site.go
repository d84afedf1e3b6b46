package handlers

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"samiratravel/logger"
	"samiratravel/middleware"
	"samiratravel/models"
	"samiratravel/services"
	"samiratravel/utils"
)

// SiteHandler serves the public landing page, its JSON and the stored images.
type SiteHandler struct {
	site     services.SiteService
	packages services.PackageService
	gallery  services.GalleryService
	profile  services.ProfileService
	leader   services.TourLeaderService
	landing  *template.Template
}

// NewSiteHandler creates a SiteHandler. landing renders GET /.
func NewSiteHandler(site services.SiteService, packages services.PackageService, gallery services.GalleryService, profile services.ProfileService, leader services.TourLeaderService, landing *template.Template) *SiteHandler {
	return &SiteHandler{
		site:     site,
		packages: packages,
		gallery:  gallery,
		profile:  profile,
		leader:   leader,
		landing:  landing,
	}
}

// Landing renders the public page.
func (h *SiteHandler) Landing(w http.ResponseWriter, r *http.Request) {
	content, err := h.site.Content(r.Context())
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"request_id": middleware.RequestIDFromContext(r.Context()),
			"error":      err.Error(),
		}).Error("Failed to load site content")
		http.Error(w, "Failed to load page", http.StatusInternalServerError)
		return
	}

	// render into a buffer so a template failure never leaves a half page
	var buf bytes.Buffer
	if err := h.landing.Execute(&buf, content); err != nil {
		logger.Error("Failed to render landing page: %v", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// SiteJSON
// @Summary Landing page content
// @Description Everything the landing page renders, images linked under /media
// @Tags Public
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.SiteContent}
// @Router /api/site [get]
func (h *SiteHandler) SiteJSON(w http.ResponseWriter, r *http.Request) {
	content, err := h.site.Content(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to load site content")
		return
	}
	writeJSON(w, http.StatusOK, models.SuccessResponse("Site content retrieved", content))
}

// PublicPackages
// @Summary Public package list
// @Tags Public
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.Package}
// @Router /api/public/packages [get]
func (h *SiteHandler) PublicPackages(w http.ResponseWriter, r *http.Request) {
	packages, err := h.packages.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to query packages")
		return
	}
	writeJSON(w, http.StatusOK, models.SuccessResponse("Packages retrieved", packages))
}

// PublicGallery
// @Summary Public gallery
// @Description Images are returned as data URLs
// @Tags Public
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.GalleryItem}
// @Router /api/public/gallery [get]
func (h *SiteHandler) PublicGallery(w http.ResponseWriter, r *http.Request) {
	items, err := h.gallery.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to query gallery")
		return
	}
	for i := range items {
		items[i].Image = utils.BuildDataURL(items[i].Image, items[i].ImageMimeType)
	}
	writeJSON(w, http.StatusOK, models.SuccessResponse("Gallery retrieved", items))
}

// PublicProfile
// @Summary Public company profile
// @Tags Public
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.Profile}
// @Failure 404 {object} models.APIResponse
// @Router /api/public/profile [get]
func (h *SiteHandler) PublicProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profile.Get(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to query profile")
		return
	}
	profile.Image = utils.BuildDataURL(profile.Image, profile.ImageMimeType)
	writeJSON(w, http.StatusOK, models.SuccessResponse("Profile retrieved", profile))
}

// PublicTourLeader
// @Summary Public tour leader card
// @Description Empty fields are replaced by the default texts
// @Tags Public
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.TourLeaderCard}
// @Router /api/public/tour-leader [get]
func (h *SiteHandler) PublicTourLeader(w http.ResponseWriter, r *http.Request) {
	leader, err := h.leader.Get(r.Context())
	if err != nil && !errors.Is(err, services.ErrTourLeaderNotFound) {
		writeServiceError(w, r, err, "Failed to query tour leader")
		return
	}
	writeJSON(w, http.StatusOK, models.SuccessResponse("Tour leader retrieved", services.TourLeaderCardFor(leader)))
}

// GalleryMedia serves the decoded image of a gallery item.
func (h *SiteHandler) GalleryMedia(w http.ResponseWriter, r *http.Request) {
	item, err := h.gallery.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.mediaError(w, r, err)
		return
	}
	serveImage(w, r, item.Image, item.ImageMimeType)
}

// ProfileMedia serves the decoded profile image.
func (h *SiteHandler) ProfileMedia(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profile.Get(r.Context())
	if err != nil {
		h.mediaError(w, r, err)
		return
	}
	serveImage(w, r, profile.Image, profile.ImageMimeType)
}

// TourLeaderMedia serves the decoded tour leader photo.
func (h *SiteHandler) TourLeaderMedia(w http.ResponseWriter, r *http.Request) {
	leader, err := h.leader.Get(r.Context())
	if err != nil {
		h.mediaError(w, r, err)
		return
	}
	serveImage(w, r, leader.Image, leader.ImageMimeType)
}

func (h *SiteHandler) mediaError(w http.ResponseWriter, r *http.Request, err error) {
	if statusForError(err) == http.StatusNotFound {
		http.NotFound(w, r)
		return
	}
	logger.WithFields(map[string]interface{}{
		"request_id": middleware.RequestIDFromContext(r.Context()),
		"path":       r.URL.Path,
		"error":      err.Error(),
	}).Error("Failed to load media")
	http.Error(w, "Failed to load media", http.StatusInternalServerError)
}

func serveImage(w http.ResponseWriter, r *http.Request, value, mimeType string) {
	if value == "" {
		http.NotFound(w, r)
		return
	}
	data, mimeType, err := utils.DecodeImage(value, mimeType)
	if err != nil {
		logger.Warn("Stored image at %s is not decodable: %v", r.URL.Path, err)
		http.NotFound(w, r)
		return
	}

	etag := utils.ContentETag(data)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=300")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Health
// @Summary Health check
// @Tags Public
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.SuccessResponse("ok", nil))
}
