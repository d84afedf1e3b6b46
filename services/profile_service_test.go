package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"samiratravel/models"
)

var profileRowColumns = []string{"address", "email", "image", "image_mime_type", "updated_at"}

func newTestProfileService(t *testing.T) (*profileService, sqlmock.Sqlmock) {
	db, mock := setupMock(t)
	svc := NewProfileService(db).(*profileService)
	svc.now = func() time.Time { return fixedNow }
	return svc, mock
}

func TestProfileService_GetMissing(t *testing.T) {
	svc, mock := newTestProfileService(t)

	mock.ExpectQuery(q("FROM profile WHERE id = ?")).
		WithArgs(models.ProfileDocumentID).
		WillReturnRows(sqlmock.NewRows(profileRowColumns))

	_, err := svc.Get(context.Background())
	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.Equal(t, "profile document not available", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileService_UpdateMerges(t *testing.T) {
	svc, mock := newTestProfileService(t)

	mock.ExpectQuery(q("FROM profile WHERE id = ?")).
		WithArgs(models.ProfileDocumentID).
		WillReturnRows(sqlmock.NewRows(profileRowColumns).AddRow("Jl. Lama", "info@samira.id", "QUJD", "image/png", ""))
	mock.ExpectExec(q("UPDATE profile")).
		WithArgs("Jl. Baru 1", "info@samira.id", "QUJD", "image/png", "2024-05-01 16:30:00", models.ProfileDocumentID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	address := " Jl. Baru 1 "
	profile, err := svc.Update(context.Background(), models.UpdateProfileRequest{Address: &address})
	require.NoError(t, err)
	assert.Equal(t, "Jl. Baru 1", profile.Address)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileService_UpdateRejectsInvalidEmail(t *testing.T) {
	svc, mock := newTestProfileService(t)

	mock.ExpectQuery(q("FROM profile WHERE id = ?")).
		WithArgs(models.ProfileDocumentID).
		WillReturnRows(sqlmock.NewRows(profileRowColumns).AddRow("", "", "", "", ""))

	email := "not-an-email"
	_, err := svc.Update(context.Background(), models.UpdateProfileRequest{Email: &email})
	assert.ErrorIs(t, err, ErrInvalidEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileService_UpdateMissingDocument(t *testing.T) {
	svc, mock := newTestProfileService(t)

	mock.ExpectQuery(q("FROM profile WHERE id = ?")).
		WithArgs(models.ProfileDocumentID).
		WillReturnRows(sqlmock.NewRows(profileRowColumns))

	address := "Jl. Baru"
	_, err := svc.Update(context.Background(), models.UpdateProfileRequest{Address: &address})
	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
