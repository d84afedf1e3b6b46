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

var (
	// ErrNotAdmin is returned when a verified identity is not on the admin allowlist.
	ErrNotAdmin = errors.New("account is not an authorized admin")
	// ErrSessionNotFound is returned when no session record exists for the uid.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionMismatch is returned when the session record belongs to another email.
	ErrSessionMismatch = errors.New("session does not match account")
	// ErrSessionExpired is returned when the session record has expired.
	ErrSessionExpired = errors.New("session expired")
)

// AdminSessionService manages the allowlist check and server-side session records.
type AdminSessionService interface {
	Authorize(ctx context.Context, identity models.Identity) (models.Admin, error)
	Record(ctx context.Context, identity models.Identity, expiresAt time.Time) (models.AdminSession, error)
	Validate(ctx context.Context, uid, email string) (models.AdminSession, error)
	Revoke(ctx context.Context, uid string) error
	PruneExpired(ctx context.Context) (int64, error)
}

type adminSessionService struct {
	db  SQLExecutor
	now func() time.Time
}

// NewAdminSessionService creates the default AdminSessionService.
func NewAdminSessionService(db SQLExecutor) AdminSessionService {
	return &adminSessionService{db: db, now: utils.NowJakarta}
}

func (s *adminSessionService) Authorize(ctx context.Context, identity models.Identity) (models.Admin, error) {
	email := strings.ToLower(strings.TrimSpace(identity.Email))
	if email == "" {
		return models.Admin{}, ErrMissingEmail
	}

	var admin models.Admin
	err := s.db.QueryRowContext(ctx,
		"SELECT email, name, created_at FROM admins WHERE email = ?", email,
	).Scan(&admin.Email, &admin.Name, &admin.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Admin{}, ErrNotAdmin
	}
	if err != nil {
		return models.Admin{}, err
	}
	if admin.Name == "" {
		admin.Name = identity.Name
	}
	return admin, nil
}

func (s *adminSessionService) Record(ctx context.Context, identity models.Identity, expiresAt time.Time) (models.AdminSession, error) {
	session := models.AdminSession{
		UID:         identity.UID,
		Email:       strings.ToLower(strings.TrimSpace(identity.Email)),
		LastLoginAt: utils.FormatDateTimeForDB(s.now()),
		ExpiresAt:   utils.FormatDateTimeForDB(expiresAt),
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO admin_sessions (uid, email, last_login_at, expires_at) VALUES (?, ?, ?, ?)",
		session.UID, session.Email, session.LastLoginAt, session.ExpiresAt,
	)
	if isDuplicateKeyError(err) {
		_, err = s.db.ExecContext(ctx,
			"UPDATE admin_sessions SET email = ?, last_login_at = ?, expires_at = ? WHERE uid = ?",
			session.Email, session.LastLoginAt, session.ExpiresAt, session.UID,
		)
	}
	if err != nil {
		return models.AdminSession{}, err
	}
	return session, nil
}

func (s *adminSessionService) Validate(ctx context.Context, uid, email string) (models.AdminSession, error) {
	session := models.AdminSession{UID: uid}
	err := s.db.QueryRowContext(ctx,
		"SELECT email, last_login_at, expires_at FROM admin_sessions WHERE uid = ?", uid,
	).Scan(&session.Email, &session.LastLoginAt, &session.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AdminSession{}, ErrSessionNotFound
	}
	if err != nil {
		return models.AdminSession{}, err
	}

	if !strings.EqualFold(session.Email, strings.TrimSpace(email)) {
		return models.AdminSession{}, ErrSessionMismatch
	}

	expiresAt, err := utils.ParseDBDate(session.ExpiresAt)
	if err != nil || !s.now().Before(expiresAt) {
		return models.AdminSession{}, ErrSessionExpired
	}
	return session, nil
}

func (s *adminSessionService) Revoke(ctx context.Context, uid string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM admin_sessions WHERE uid = ?", uid)
	return err
}

// PruneExpired deletes session records whose expiry has passed.
func (s *adminSessionService) PruneExpired(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM admin_sessions WHERE expires_at < ?", utils.FormatDateTimeForDB(s.now()),
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
