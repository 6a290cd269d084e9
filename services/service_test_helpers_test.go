package services

import (
	"database/sql/driver"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupGormTest wires gorm over sqlmock so service methods run against
// scripted SQL expectations.
func setupGormTest(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	cleanup := func() {
		sqlDB.Close()
	}
	return db, mock, cleanup
}

// argContains matches any string or []byte query argument containing the
// substring.
type argContains string

func (a argContains) Match(v driver.Value) bool {
	switch s := v.(type) {
	case string:
		return strings.Contains(s, string(a))
	case []byte:
		return strings.Contains(string(s), string(a))
	default:
		return false
	}
}

func intPtr(n int) *int { return &n }
