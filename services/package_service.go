package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"samiratravel/models"
	"samiratravel/utils"
)

// ErrPackageNotFound는 패키지가 존재하지 않을 때 반환됩니다.
var ErrPackageNotFound = errors.New("package not found")

// PackageService는 여행 패키지에 대한 비즈니스 로직을 정의합니다.
type PackageService interface {
	List(ctx context.Context) ([]models.Package, error)
	Get(ctx context.Context, id string) (models.Package, error)
	Create(ctx context.Context, req models.CreatePackageRequest) (models.Package, error)
	Update(ctx context.Context, id string, req models.UpdatePackageRequest) (models.Package, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type packageService struct {
	db  SQLExecutor
	now func() time.Time
}

// NewPackageService는 PackageService 구현체를 생성합니다.
func NewPackageService(db SQLExecutor) PackageService {
	return &packageService{db: db, now: utils.NowJakarta}
}

const packageColumns = `id, name, description, features, facilities, created_at, updated_at`

func scanPackage(scan func(dest ...any) error) (models.Package, error) {
	var (
		pkg        models.Package
		features   string
		facilities string
	)
	if err := scan(&pkg.ID, &pkg.Name, &pkg.Description, &features, &facilities, &pkg.CreatedAt, &pkg.UpdatedAt); err != nil {
		return models.Package{}, err
	}
	pkg.Features = decodeList(features)
	pkg.Facilities = decodeList(facilities)
	return pkg, nil
}

func decodeList(raw string) []string {
	list := make([]string, 0)
	if raw == "" {
		return list
	}
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return make([]string, 0)
	}
	return list
}

func encodeList(list []string) string {
	if list == nil {
		list = []string{}
	}
	data, _ := json.Marshal(list)
	return string(data)
}

func validatePackage(pkg *models.Package) error {
	pkg.Name = strings.TrimSpace(pkg.Name)
	pkg.Description = strings.TrimSpace(pkg.Description)
	pkg.Features = trimmedList(pkg.Features)
	pkg.Facilities = trimmedList(pkg.Facilities)

	if pkg.Name == "" {
		return ErrNameRequired
	}
	if pkg.Description == "" {
		return ErrDescriptionRequired
	}
	return nil
}

func (s *packageService) List(ctx context.Context) ([]models.Package, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+packageColumns+` FROM packages ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	packages := make([]models.Package, 0)
	for rows.Next() {
		pkg, err := scanPackage(rows.Scan)
		if err != nil {
			return nil, err
		}
		packages = append(packages, pkg)
	}
	return packages, rows.Err()
}

func (s *packageService) Get(ctx context.Context, id string) (models.Package, error) {
	pkg, err := scanPackage(s.db.QueryRowContext(ctx, `SELECT `+packageColumns+` FROM packages WHERE id = ?`, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Package{}, ErrPackageNotFound
	}
	return pkg, err
}

func (s *packageService) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM packages").Scan(&count)
	return count, err
}

func (s *packageService) Create(ctx context.Context, req models.CreatePackageRequest) (models.Package, error) {
	pkg := models.Package{
		Name:        req.Name,
		Description: req.Description,
		Features:    req.Features,
		Facilities:  req.Facilities,
	}
	if err := validatePackage(&pkg); err != nil {
		return models.Package{}, err
	}

	count, err := s.Count(ctx)
	if err != nil {
		return models.Package{}, err
	}
	if count >= models.MaxPackages {
		return models.Package{}, fmt.Errorf("%w: at most %d packages", ErrCapacityReached, models.MaxPackages)
	}

	now := utils.FormatDateTimeForDB(s.now())
	pkg.ID = utils.GenerateID("pkg")
	pkg.CreatedAt = now
	pkg.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO packages (id, name, description, features, facilities, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		pkg.ID, pkg.Name, pkg.Description, encodeList(pkg.Features), encodeList(pkg.Facilities), pkg.CreatedAt, pkg.UpdatedAt,
	)
	if err != nil {
		return models.Package{}, err
	}
	return pkg, nil
}

func (s *packageService) Update(ctx context.Context, id string, req models.UpdatePackageRequest) (models.Package, error) {
	pkg, err := s.Get(ctx, id)
	if err != nil {
		return models.Package{}, err
	}

	if req.Name != nil {
		pkg.Name = *req.Name
	}
	if req.Description != nil {
		pkg.Description = *req.Description
	}
	if req.Features != nil {
		pkg.Features = *req.Features
	}
	if req.Facilities != nil {
		pkg.Facilities = *req.Facilities
	}
	if err := validatePackage(&pkg); err != nil {
		return models.Package{}, err
	}
	pkg.UpdatedAt = utils.FormatDateTimeForDB(s.now())

	_, err = s.db.ExecContext(ctx, `
		UPDATE packages
		SET name = ?, description = ?, features = ?, facilities = ?, updated_at = ?
		WHERE id = ?`,
		pkg.Name, pkg.Description, encodeList(pkg.Features), encodeList(pkg.Facilities), pkg.UpdatedAt, id,
	)
	if err != nil {
		return models.Package{}, err
	}
	return pkg, nil
}

func (s *packageService) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM packages WHERE id = ?", id)
	if err != nil {
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrPackageNotFound
	}
	return err
}
