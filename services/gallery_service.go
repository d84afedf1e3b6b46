package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"samiratravel/models"
	"samiratravel/utils"
)

// ErrGalleryItemNotFound는 갤러리 항목이 존재하지 않을 때 반환됩니다.
var ErrGalleryItemNotFound = errors.New("gallery item not found")

// GalleryService는 여행 기록(갤러리)에 대한 비즈니스 로직을 정의합니다.
type GalleryService interface {
	List(ctx context.Context) ([]models.GalleryItem, error)
	Get(ctx context.Context, id string) (models.GalleryItem, error)
	Create(ctx context.Context, req models.CreateGalleryItemRequest) (models.GalleryItem, error)
	// Update는 항목이 없으면 같은 id로 새로 생성합니다 (상한 적용).
	Update(ctx context.Context, id string, req models.UpdateGalleryItemRequest) (models.GalleryItem, bool, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type galleryService struct {
	db  SQLExecutor
	now func() time.Time
}

// NewGalleryService는 GalleryService 구현체를 생성합니다.
func NewGalleryService(db SQLExecutor) GalleryService {
	return &galleryService{db: db, now: utils.NowJakarta}
}

const galleryColumns = `id, name, description, image, image_mime_type, created_at, updated_at`

func scanGalleryItem(scan func(dest ...any) error) (models.GalleryItem, error) {
	var item models.GalleryItem
	err := scan(&item.ID, &item.Name, &item.Description, &item.Image, &item.ImageMimeType, &item.CreatedAt, &item.UpdatedAt)
	return item, err
}

func validateGalleryItem(item *models.GalleryItem) error {
	item.Name = strings.TrimSpace(item.Name)
	item.Description = strings.TrimSpace(item.Description)
	if item.Name == "" {
		return ErrNameRequired
	}
	if item.Description == "" {
		return ErrDescriptionRequired
	}

	image, mime, err := normalizeImageField(item.Image, item.ImageMimeType)
	if err != nil {
		return err
	}
	item.Image = image
	item.ImageMimeType = mime
	return nil
}

func (s *galleryService) List(ctx context.Context) ([]models.GalleryItem, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+galleryColumns+` FROM gallery_items ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.GalleryItem, 0)
	for rows.Next() {
		item, err := scanGalleryItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *galleryService) Get(ctx context.Context, id string) (models.GalleryItem, error) {
	item, err := scanGalleryItem(s.db.QueryRowContext(ctx, `SELECT `+galleryColumns+` FROM gallery_items WHERE id = ?`, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.GalleryItem{}, ErrGalleryItemNotFound
	}
	return item, err
}

func (s *galleryService) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM gallery_items").Scan(&count)
	return count, err
}

func (s *galleryService) checkCapacity(ctx context.Context) error {
	count, err := s.Count(ctx)
	if err != nil {
		return err
	}
	if count >= models.MaxGalleryItems {
		return fmt.Errorf("%w: at most %d gallery items", ErrCapacityReached, models.MaxGalleryItems)
	}
	return nil
}

func (s *galleryService) insert(ctx context.Context, item models.GalleryItem) (models.GalleryItem, error) {
	now := utils.FormatDateTimeForDB(s.now())
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO gallery_items (id, name, description, image, image_mime_type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, item.Description, item.Image, item.ImageMimeType, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return models.GalleryItem{}, err
	}
	return item, nil
}

func (s *galleryService) Create(ctx context.Context, req models.CreateGalleryItemRequest) (models.GalleryItem, error) {
	item := models.GalleryItem{
		ID:            utils.GenerateID("doc"),
		Name:          req.Name,
		Description:   req.Description,
		Image:         req.Image,
		ImageMimeType: req.ImageMimeType,
	}
	if err := validateGalleryItem(&item); err != nil {
		return models.GalleryItem{}, err
	}
	if err := s.checkCapacity(ctx); err != nil {
		return models.GalleryItem{}, err
	}
	return s.insert(ctx, item)
}

func (s *galleryService) Update(ctx context.Context, id string, req models.UpdateGalleryItemRequest) (models.GalleryItem, bool, error) {
	item, err := s.Get(ctx, id)
	created := false
	switch {
	case errors.Is(err, ErrGalleryItemNotFound):
		created = true
		item = models.GalleryItem{ID: id}
	case err != nil:
		return models.GalleryItem{}, false, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Image != nil {
		item.Image = *req.Image
		item.ImageMimeType = ""
	}
	if req.ImageMimeType != nil {
		item.ImageMimeType = *req.ImageMimeType
	}
	if err := validateGalleryItem(&item); err != nil {
		return models.GalleryItem{}, false, err
	}

	if created {
		if err := s.checkCapacity(ctx); err != nil {
			return models.GalleryItem{}, false, err
		}
		item, err = s.insert(ctx, item)
		return item, true, err
	}

	item.UpdatedAt = utils.FormatDateTimeForDB(s.now())
	_, err = s.db.ExecContext(ctx, `
		UPDATE gallery_items
		SET name = ?, description = ?, image = ?, image_mime_type = ?, updated_at = ?
		WHERE id = ?`,
		item.Name, item.Description, item.Image, item.ImageMimeType, item.UpdatedAt, id,
	)
	if err != nil {
		return models.GalleryItem{}, false, err
	}
	return item, false, nil
}

func (s *galleryService) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM gallery_items WHERE id = ?", id)
	if err != nil {
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrGalleryItemNotFound
	}
	return err
}
