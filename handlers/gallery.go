package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"samiratravel/logger"
	"samiratravel/models"
	"samiratravel/services"
)

// GalleryHandler handles the admin gallery endpoints.
type GalleryHandler struct {
	service  services.GalleryService
	activity services.ActivityService
}

// NewGalleryHandler creates a GalleryHandler.
func NewGalleryHandler(service services.GalleryService, activity services.ActivityService) *GalleryHandler {
	return &GalleryHandler{service: service, activity: activity}
}

// List
// @Summary List gallery items
// @Tags Gallery
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.CollectionResponse{data=[]models.GalleryItem}
// @Router /api/admin/gallery [get]
func (h *GalleryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to query gallery")
		return
	}

	writeJSON(w, http.StatusOK, models.CollectionResponse{
		Status:  "success",
		Message: "Gallery retrieved",
		Data:    items,
		Meta:    models.NewCollectionMeta(len(items), models.MaxGalleryItems),
	})
}

// Get
// @Summary Get gallery item
// @Tags Gallery
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} models.APIResponse{data=models.GalleryItem}
// @Failure 404 {object} models.APIResponse
// @Router /api/admin/gallery/{id} [get]
func (h *GalleryHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "Failed to query gallery item")
		return
	}
	writeJSON(w, http.StatusOK, models.SuccessResponse("Gallery item retrieved", item))
}

// Create
// @Summary Create gallery item
// @Description Image is bare base64 or a data URL; at most 10 items may exist.
// @Tags Gallery
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateGalleryItemRequest true "Gallery item"
// @Success 201 {object} models.APIResponse{data=models.GalleryItem}
// @Failure 400 {object} models.APIResponse
// @Failure 409 {object} models.APIResponse "capacity reached"
// @Failure 413 {object} models.APIResponse "image too large"
// @Router /api/admin/gallery [post]
func (h *GalleryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateGalleryItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "Failed to create gallery item")
		return
	}

	logger.WithFields(map[string]interface{}{
		"gallery_id": item.ID,
		"name":       item.Name,
	}).Info("Gallery item created")
	writeJSON(w, http.StatusCreated, models.SuccessResponse("Gallery item created successfully", item))

	admin := currentAdmin(r)
	h.activity.Log(r.Context(), admin.UID, admin.Email, models.AdminActionCreateGalleryItem, "Gallery item created: "+item.ID)
}

// Update
// @Summary Update gallery item
// @Description Creates the item under the given id when it does not exist.
// @Tags Gallery
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param request body models.UpdateGalleryItemRequest true "Changed fields"
// @Success 200 {object} models.APIResponse{data=models.GalleryItem}
// @Success 201 {object} models.APIResponse{data=models.GalleryItem}
// @Failure 400 {object} models.APIResponse
// @Failure 409 {object} models.APIResponse
// @Router /api/admin/gallery/{id} [put]
func (h *GalleryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateGalleryItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, created, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, r, err, "Failed to update gallery item")
		return
	}

	admin := currentAdmin(r)
	if created {
		writeJSON(w, http.StatusCreated, models.SuccessResponse("Gallery item created successfully", item))
		h.activity.Log(r.Context(), admin.UID, admin.Email, models.AdminActionCreateGalleryItem, "Gallery item created: "+item.ID)
		return
	}

	writeJSON(w, http.StatusOK, models.SuccessResponse("Gallery item updated successfully", item))
	h.activity.Log(r.Context(), admin.UID, admin.Email, models.AdminActionUpdateGalleryItem, "Gallery item updated: "+item.ID)
}

// Delete
// @Summary Delete gallery item
// @Tags Gallery
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /api/admin/gallery/{id} [delete]
func (h *GalleryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "Failed to delete gallery item")
		return
	}

	writeJSON(w, http.StatusOK, models.SuccessResponse("Gallery item deleted successfully", nil))

	admin := currentAdmin(r)
	h.activity.Log(r.Context(), admin.UID, admin.Email, models.AdminActionDeleteGalleryItem, "Gallery item deleted: "+id)
}
