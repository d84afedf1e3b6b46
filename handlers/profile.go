package handlers

import (
	"net/http"

	"samiratravel/models"
	"samiratravel/services"
)

// ProfileHandler handles the company profile and tour leader documents.
type ProfileHandler struct {
	profile  services.ProfileService
	leader   services.TourLeaderService
	activity services.ActivityService
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(profile services.ProfileService, leader services.TourLeaderService, activity services.ActivityService) *ProfileHandler {
	return &ProfileHandler{profile: profile, leader: leader, activity: activity}
}

// GetProfile
// @Summary Get company profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=models.Profile}
// @Failure 404 {object} models.APIResponse "profile document not available"
// @Router /api/admin/profile [get]
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profile.Get(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to load profile")
		return
	}
	writeJSON(w, http.StatusOK, models.SuccessResponse("Profile retrieved", profile))
}

// UpdateProfile
// @Summary Update company profile
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdateProfileRequest true "Changed fields"
// @Success 200 {object} models.APIResponse{data=models.Profile}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Failure 413 {object} models.APIResponse
// @Router /api/admin/profile [put]
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.profile.Update(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "Failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, models.SuccessResponse("Profile updated successfully", profile))

	admin := currentAdmin(r)
	h.activity.Log(r.Context(), admin.UID, admin.Email, models.AdminActionUpdateProfile, "Profile updated")
}

// GetTourLeader
// @Summary Get tour leader
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=models.TourLeader}
// @Failure 404 {object} models.APIResponse
// @Router /api/admin/tour-leader [get]
func (h *ProfileHandler) GetTourLeader(w http.ResponseWriter, r *http.Request) {
	leader, err := h.leader.Get(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to load tour leader")
		return
	}
	writeJSON(w, http.StatusOK, models.SuccessResponse("Tour leader retrieved", leader))
}

// UpdateTourLeader
// @Summary Update tour leader
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdateTourLeaderRequest true "Changed fields"
// @Success 200 {object} models.APIResponse{data=models.TourLeader}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Failure 413 {object} models.APIResponse
// @Router /api/admin/tour-leader [put]
func (h *ProfileHandler) UpdateTourLeader(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateTourLeaderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	leader, err := h.leader.Update(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "Failed to update tour leader")
		return
	}

	writeJSON(w, http.StatusOK, models.SuccessResponse("Tour leader updated successfully", leader))

	admin := currentAdmin(r)
	h.activity.Log(r.Context(), admin.UID, admin.Email, models.AdminActionUpdateTourLeader, "Tour leader updated")
}
