package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"samiratravel/models"
)

func TestProfileHandler_UpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	h := NewProfileHandler(env.profile, env.leader, env.activity)

	address, email := "Jl. Merdeka 1, Jakarta", "info@samira.id"
	rec := httptest.NewRecorder()
	h.UpdateProfile(rec, jsonRequest(t, http.MethodPut, "/api/admin/profile", models.UpdateProfileRequest{
		Address: &address,
		Email:   &email,
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	h.GetProfile(rec, jsonRequest(t, http.MethodGet, "/api/admin/profile", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var profile models.Profile
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &profile))
	assert.Equal(t, address, profile.Address)
	assert.Equal(t, email, profile.Email)
}

func TestProfileHandler_InvalidEmail(t *testing.T) {
	env := newTestEnv(t)
	h := NewProfileHandler(env.profile, env.leader, env.activity)

	email := "bukan email"
	rec := httptest.NewRecorder()
	h.UpdateProfile(rec, jsonRequest(t, http.MethodPut, "/api/admin/profile", models.UpdateProfileRequest{Email: &email}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfileHandler_UpdateTourLeader(t *testing.T) {
	env := newTestEnv(t)
	h := NewProfileHandler(env.profile, env.leader, env.activity)

	phone := "0812 9999 8888"
	rec := httptest.NewRecorder()
	h.UpdateTourLeader(rec, jsonRequest(t, http.MethodPut, "/api/admin/tour-leader", models.UpdateTourLeaderRequest{Phone: &phone}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	h.GetTourLeader(rec, jsonRequest(t, http.MethodGet, "/api/admin/tour-leader", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var leader models.TourLeader
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &leader))
	assert.Equal(t, phone, leader.Phone)
	assert.Empty(t, leader.Name)

	logs, err := env.activity.Recent(t.Context(), models.AdminActionUpdateTourLeader, 5)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}
