package test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/promissoria/backend/internal/models"
	"github.com/stretchr/testify/require"
)

// TmpFile returns the path to a unique database file in a temporary
// directory that is removed after the test.
func TmpFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), fmt.Sprintf("promissoria-%s.db", uuid.NewString()))
}

// ConnectDatabase connects models.DB to an empty database for the test.
// The connection is closed when the test finishes.
func ConnectDatabase(t *testing.T) {
	require.Nil(t, models.Connect(TmpFile(t)), "Database connection failed")

	t.Cleanup(func() {
		sqlDB, err := models.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
}
