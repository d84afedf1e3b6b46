package services

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrNameRequired는 이름이 비어 있을 때 반환됩니다.
	ErrNameRequired = errors.New("name is required")
	// ErrDescriptionRequired는 설명이 비어 있을 때 반환됩니다.
	ErrDescriptionRequired = errors.New("description is required")
	// ErrCapacityReached는 컬렉션 상한에 도달했을 때 반환됩니다.
	ErrCapacityReached = errors.New("collection capacity reached")
	// ErrInvalidEmail is returned for malformed contact addresses.
	ErrInvalidEmail = errors.New("invalid email address")
)

// trimmedList drops blank entries and surrounding whitespace.
func trimmedList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062 // ER_DUP_ENTRY
	}
	// modernc sqlite only exposes the message
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
