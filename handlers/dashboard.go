package handlers

import (
	"net/http"

	"samiratravel/models"
	"samiratravel/services"
)

// DashboardHandler serves the admin dashboard counters and activity feed.
type DashboardHandler struct {
	packages services.PackageService
	gallery  services.GalleryService
	activity services.ActivityService
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(packages services.PackageService, gallery services.GalleryService, activity services.ActivityService) *DashboardHandler {
	return &DashboardHandler{packages: packages, gallery: gallery, activity: activity}
}

// GetDashboardStats 대시보드 통계
// @Summary Dashboard counters
// @Description Item counts and remaining slots for packages and gallery
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=models.DashboardStats}
// @Router /api/admin/dashboard/stats [get]
func (h *DashboardHandler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	packages, err := h.packages.Count(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to count packages")
		return
	}
	gallery, err := h.gallery.Count(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to count gallery items")
		return
	}

	writeJSON(w, http.StatusOK, models.SuccessResponse("Dashboard stats retrieved", models.DashboardStats{
		Packages: models.NewCollectionMeta(packages, models.MaxPackages),
		Gallery:  models.NewCollectionMeta(gallery, models.MaxGalleryItems),
	}))
}

// GetRecentActivities 최근 활동 내역
// @Summary Recent admin activity
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param action query string false "Action filter"
// @Param limit query int false "Max entries (1-100)"
// @Success 200 {object} models.APIResponse{data=[]models.AdminActivityLog}
// @Router /api/admin/dashboard/activities [get]
func (h *DashboardHandler) GetRecentActivities(w http.ResponseWriter, r *http.Request) {
	limit := parsePositiveInt(r.URL.Query().Get("limit"), 20)
	logs, err := h.activity.Recent(r.Context(), r.URL.Query().Get("action"), limit)
	if err != nil {
		writeServiceError(w, r, err, "Failed to query activities")
		return
	}
	writeJSON(w, http.StatusOK, models.SuccessResponse("Recent activities retrieved", logs))
}
