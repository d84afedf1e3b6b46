package services

import (
	"context"
	"database/sql"
	"errors"
	"net/mail"
	"strings"
	"time"

	"samiratravel/models"
	"samiratravel/utils"
)

// ErrProfileNotFound is returned when the profile document row is missing.
var ErrProfileNotFound = errors.New("profile document not available")

// ProfileService reads and edits the single company profile document.
type ProfileService interface {
	Get(ctx context.Context) (models.Profile, error)
	Update(ctx context.Context, req models.UpdateProfileRequest) (models.Profile, error)
}

type profileService struct {
	db  SQLExecutor
	now func() time.Time
}

// NewProfileService는 ProfileService 구현체를 생성합니다.
func NewProfileService(db SQLExecutor) ProfileService {
	return &profileService{db: db, now: utils.NowJakarta}
}

func (s *profileService) Get(ctx context.Context) (models.Profile, error) {
	var profile models.Profile
	err := s.db.QueryRowContext(ctx,
		"SELECT address, email, image, image_mime_type, updated_at FROM profile WHERE id = ?",
		models.ProfileDocumentID,
	).Scan(&profile.Address, &profile.Email, &profile.Image, &profile.ImageMimeType, &profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, ErrProfileNotFound
	}
	return profile, err
}

func (s *profileService) Update(ctx context.Context, req models.UpdateProfileRequest) (models.Profile, error) {
	profile, err := s.Get(ctx)
	if err != nil {
		return models.Profile{}, err
	}

	if req.Address != nil {
		profile.Address = strings.TrimSpace(*req.Address)
	}
	if req.Email != nil {
		profile.Email = strings.TrimSpace(*req.Email)
	}
	if req.Image != nil {
		profile.Image = *req.Image
		profile.ImageMimeType = ""
	}
	if req.ImageMimeType != nil {
		profile.ImageMimeType = *req.ImageMimeType
	}

	if profile.Email != "" {
		if _, err := mail.ParseAddress(profile.Email); err != nil {
			return models.Profile{}, ErrInvalidEmail
		}
	}
	if profile.Image, profile.ImageMimeType, err = normalizeImageField(profile.Image, profile.ImageMimeType); err != nil {
		return models.Profile{}, err
	}
	profile.UpdatedAt = utils.FormatDateTimeForDB(s.now())

	_, err = s.db.ExecContext(ctx, `
		UPDATE profile
		SET address = ?, email = ?, image = ?, image_mime_type = ?, updated_at = ?
		WHERE id = ?`,
		profile.Address, profile.Email, profile.Image, profile.ImageMimeType, profile.UpdatedAt, models.ProfileDocumentID,
	)
	if err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}
