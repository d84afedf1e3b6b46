package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"time"

	"samiratravel/logger"
	"samiratravel/utils"

	_ "github.com/go-sql-driver/mysql"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/sqlite/*.sql migrations/mysql/*.sql
var embedMigrations embed.FS

var DB *sql.DB
var dbType string // 데이터베이스 타입 저장

// Initialize 데이터베이스 초기화
// t: "sqlite" 또는 "mysql"
// dsn: SQLite 파일 경로 또는 MySQL DSN
func Initialize(t, dsn string) error {
	var err error

	if t == "" {
		t = "sqlite"
	}
	if dsn == "" && t == "sqlite" {
		dsn = "./samira.db"
	}
	dbType = t

	DB, err = sql.Open(dbType, dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// 연결 테스트
	if err := DB.Ping(); err != nil {
		DB.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if dbType == "sqlite" {
		// single writer; WAL lets readers proceed
		DB.SetMaxOpenConns(1)
		DB.SetMaxIdleConns(1)

		pragmas := []string{
			"PRAGMA journal_mode = WAL;",
			"PRAGMA synchronous = NORMAL;",
			"PRAGMA foreign_keys = ON;",
			"PRAGMA busy_timeout = 5000;",
		}
		for _, pragma := range pragmas {
			if _, err := DB.Exec(pragma); err != nil {
				DB.Close()
				return fmt.Errorf("failed to set pragma: %w", err)
			}
		}
	} else {
		DB.SetConnMaxLifetime(3 * time.Minute)
		DB.SetMaxOpenConns(10)
		DB.SetMaxIdleConns(10)
	}

	if err := runMigrations(DB, dbType); err != nil {
		DB.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Database initialized successfully (%s)", dbType)
	return nil
}

// runMigrations 임베디드 마이그레이션 실행
func runMigrations(db *sql.DB, driver string) error {
	dialect := "sqlite3"
	if driver == "mysql" {
		dialect = "mysql"
	}

	goose.SetLogger(gooseLogger{})
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}

	if err := goose.Up(db, "migrations/"+driver); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}
	return nil
}

// gooseLogger routes migration output through the application logger.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...interface{}) {
	logger.Info(strings.TrimSuffix(format, "\n"), v...)
}

func (gooseLogger) Fatalf(format string, v ...interface{}) {
	logger.Fatal(strings.TrimSuffix(format, "\n"), v...)
}

// SeedAdmins 관리자 허용 목록 보장: 누락된 이메일만 추가
func SeedAdmins(ctx context.Context, db *sql.DB, emails []string) (int, error) {
	created := 0
	now := utils.FormatDateTimeForDB(utils.NowJakarta())

	for _, email := range emails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			continue
		}

		var count int
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM admins WHERE email = ?", email).Scan(&count); err != nil {
			return created, err
		}
		if count > 0 {
			continue
		}

		if _, err := db.ExecContext(ctx, "INSERT INTO admins (email, name, created_at) VALUES (?, ?, ?)", email, "", now); err != nil {
			return created, err
		}
		created++
	}

	if created > 0 {
		logger.Info("Seeded %d admin account(s) from configuration", created)
	}
	return created, nil
}

// Close 데이터베이스 연결 종료
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
