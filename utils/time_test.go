package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDateTimeForDB_UsesJakarta(t *testing.T) {
	ts := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-05-01 16:30:00", FormatDateTimeForDB(ts))
	assert.Equal(t, "", FormatDateTimeForDB(time.Time{}))
}

func TestParseDBDate(t *testing.T) {
	ts, err := ParseDBDate("2024-05-01 16:30:00")
	require.NoError(t, err)
	assert.True(t, ts.Equal(time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)))

	ts, err = ParseDBDate("2024-05-01T09:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 16, ts.Hour())

	_, err = ParseDBDate("")
	assert.Error(t, err)
	_, err = ParseDBDate("yesterday")
	assert.Error(t, err)
}

func TestFormatDisplayTime(t *testing.T) {
	got := FormatDisplayTime(time.Date(2024, 5, 8, 2, 0, 0, 0, time.UTC))
	assert.Contains(t, got, "08 May 2024 09:00")
}
