package services

import (
	"context"
	"database/sql"
	"time"

	"samiratravel/logger"
	"samiratravel/models"
	"samiratravel/utils"
)

// ActivityService는 관리자 활동 로그를 기록/조회합니다.
type ActivityService interface {
	Log(ctx context.Context, adminUID, email, action, details string)
	Recent(ctx context.Context, action string, limit int) ([]models.AdminActivityLog, error)
}

type activityService struct {
	db  SQLExecutor
	now func() time.Time
}

// NewActivityService는 ActivityService 구현체를 생성합니다.
func NewActivityService(db SQLExecutor) ActivityService {
	return &activityService{db: db, now: utils.NowJakarta}
}

// Log 실패는 기록만 하고 요청 흐름에는 영향을 주지 않습니다.
func (s *activityService) Log(ctx context.Context, adminUID, email, action, details string) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO admin_activity_logs (admin_uid, email, action, details, created_at) VALUES (?, ?, ?, ?, ?)`,
		adminUID, email, action, details, utils.FormatDateTimeForDB(s.now()),
	)
	if err != nil {
		logger.Error("Failed to log admin activity: %v", err)
	}
}

func (s *activityService) Recent(ctx context.Context, action string, limit int) ([]models.AdminActivityLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := `SELECT id, admin_uid, email, action, details, created_at FROM admin_activity_logs`
	args := make([]any, 0, 2)
	if action != "" {
		query += " WHERE action = ?"
		args = append(args, action)
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]models.AdminActivityLog, 0)
	for rows.Next() {
		var (
			entry   models.AdminActivityLog
			details sql.NullString
		)
		if err := rows.Scan(&entry.ID, &entry.AdminUID, &entry.Email, &entry.Action, &details, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if details.Valid {
			entry.Details = details.String
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}
