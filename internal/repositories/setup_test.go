package repositories

import (
	"testing"

	"github.com/sgallard/picstream/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the engagement
// schema migrated, mirroring the AutoMigrate call in the router.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Vote{},
		&models.Comment{},
		&models.Tag{},
		&models.PostTag{},
		&models.SavedPost{},
	)
	require.NoError(t, err)

	return db
}
