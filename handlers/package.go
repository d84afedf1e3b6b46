package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"samiratravel/logger"
	"samiratravel/models"
	"samiratravel/services"
)

// PackageHandler handles the admin package endpoints.
type PackageHandler struct {
	service  services.PackageService
	activity services.ActivityService
}

// NewPackageHandler creates a PackageHandler.
func NewPackageHandler(service services.PackageService, activity services.ActivityService) *PackageHandler {
	return &PackageHandler{service: service, activity: activity}
}

// List 패키지 목록
// @Summary List packages
// @Description Lists all travel packages with the remaining capacity
// @Tags Packages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.CollectionResponse{data=[]models.Package}
// @Failure 401 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /api/admin/packages [get]
func (h *PackageHandler) List(w http.ResponseWriter, r *http.Request) {
	packages, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to query packages")
		return
	}

	writeJSON(w, http.StatusOK, models.CollectionResponse{
		Status:  "success",
		Message: "Packages retrieved",
		Data:    packages,
		Meta:    models.NewCollectionMeta(len(packages), models.MaxPackages),
	})
}

// Get 패키지 상세
// @Summary Get package
// @Tags Packages
// @Produce json
// @Security BearerAuth
// @Param id path string true "Package ID"
// @Success 200 {object} models.APIResponse{data=models.Package}
// @Failure 404 {object} models.APIResponse
// @Router /api/admin/packages/{id} [get]
func (h *PackageHandler) Get(w http.ResponseWriter, r *http.Request) {
	pkg, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "Failed to query package")
		return
	}
	writeJSON(w, http.StatusOK, models.SuccessResponse("Package retrieved", pkg))
}

// Create 패키지 생성
// @Summary Create package
// @Description Creates a package. At most 10 packages may exist.
// @Tags Packages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreatePackageRequest true "Package"
// @Success 201 {object} models.APIResponse{data=models.Package}
// @Failure 400 {object} models.APIResponse
// @Failure 409 {object} models.APIResponse "capacity reached"
// @Failure 500 {object} models.APIResponse
// @Router /api/admin/packages [post]
func (h *PackageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePackageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pkg, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "Failed to create package")
		return
	}

	logger.WithFields(map[string]interface{}{
		"package_id": pkg.ID,
		"name":       pkg.Name,
	}).Info("Package created")
	writeJSON(w, http.StatusCreated, models.SuccessResponse("Package created successfully", pkg))

	admin := currentAdmin(r)
	h.activity.Log(r.Context(), admin.UID, admin.Email, models.AdminActionCreatePackage, "Package created: "+pkg.ID)
}

// Update 패키지 수정
// @Summary Update package
// @Tags Packages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Package ID"
// @Param request body models.UpdatePackageRequest true "Changed fields"
// @Success 200 {object} models.APIResponse{data=models.Package}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /api/admin/packages/{id} [put]
func (h *PackageHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdatePackageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pkg, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, r, err, "Failed to update package")
		return
	}

	writeJSON(w, http.StatusOK, models.SuccessResponse("Package updated successfully", pkg))

	admin := currentAdmin(r)
	h.activity.Log(r.Context(), admin.UID, admin.Email, models.AdminActionUpdatePackage, "Package updated: "+pkg.ID)
}

// Delete 패키지 삭제
// @Summary Delete package
// @Tags Packages
// @Produce json
// @Security BearerAuth
// @Param id path string true "Package ID"
// @Success 200 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /api/admin/packages/{id} [delete]
func (h *PackageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "Failed to delete package")
		return
	}

	writeJSON(w, http.StatusOK, models.SuccessResponse("Package deleted successfully", nil))

	admin := currentAdmin(r)
	h.activity.Log(r.Context(), admin.UID, admin.Email, models.AdminActionDeletePackage, "Package deleted: "+id)
}
