package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"samiratravel/models"
	"samiratravel/utils"
)

// ErrTourLeaderNotFound is returned when the tour leader document row is missing.
var ErrTourLeaderNotFound = errors.New("tour leader document not available")

// TourLeaderService reads and edits the single tour leader document.
type TourLeaderService interface {
	Get(ctx context.Context) (models.TourLeader, error)
	Update(ctx context.Context, req models.UpdateTourLeaderRequest) (models.TourLeader, error)
}

type tourLeaderService struct {
	db  SQLExecutor
	now func() time.Time
}

// NewTourLeaderService는 TourLeaderService 구현체를 생성합니다.
func NewTourLeaderService(db SQLExecutor) TourLeaderService {
	return &tourLeaderService{db: db, now: utils.NowJakarta}
}

// WhatsAppLink builds a wa.me link from the digits of phone, or "" when it has none.
func WhatsAppLink(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits
}

func (s *tourLeaderService) Get(ctx context.Context) (models.TourLeader, error) {
	var leader models.TourLeader
	err := s.db.QueryRowContext(ctx,
		"SELECT name, experience, phone, description, image, image_mime_type, updated_at FROM tour_leader WHERE id = ?",
		models.TourLeaderDocumentID,
	).Scan(&leader.Name, &leader.Experience, &leader.Phone, &leader.Description, &leader.Image, &leader.ImageMimeType, &leader.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TourLeader{}, ErrTourLeaderNotFound
	}
	return leader, err
}

func (s *tourLeaderService) Update(ctx context.Context, req models.UpdateTourLeaderRequest) (models.TourLeader, error) {
	leader, err := s.Get(ctx)
	if err != nil {
		return models.TourLeader{}, err
	}

	if req.Name != nil {
		leader.Name = strings.TrimSpace(*req.Name)
	}
	if req.Experience != nil {
		leader.Experience = strings.TrimSpace(*req.Experience)
	}
	if req.Phone != nil {
		leader.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Description != nil {
		leader.Description = strings.TrimSpace(*req.Description)
	}
	if req.Image != nil {
		leader.Image = *req.Image
		leader.ImageMimeType = ""
	}
	if req.ImageMimeType != nil {
		leader.ImageMimeType = *req.ImageMimeType
	}

	if leader.Image, leader.ImageMimeType, err = normalizeImageField(leader.Image, leader.ImageMimeType); err != nil {
		return models.TourLeader{}, err
	}
	leader.UpdatedAt = utils.FormatDateTimeForDB(s.now())

	_, err = s.db.ExecContext(ctx, `
		UPDATE tour_leader
		SET name = ?, experience = ?, phone = ?, description = ?, image = ?, image_mime_type = ?, updated_at = ?
		WHERE id = ?`,
		leader.Name, leader.Experience, leader.Phone, leader.Description, leader.Image, leader.ImageMimeType, leader.UpdatedAt,
		models.TourLeaderDocumentID,
	)
	if err != nil {
		return models.TourLeader{}, err
	}
	return leader, nil
}
