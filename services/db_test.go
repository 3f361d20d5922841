package services

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fight-picks-system/models"
)

var testDBCounter atomic.Int64

// newTestDB opens a fresh in-memory SQLite database so transactions run
// for real. Each test gets its own named shared-cache DB; the pool's
// connections all see the same data.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := fmt.Sprintf("%s_%d", strings.ReplaceAll(t.Name(), "/", "_"), testDBCounter.Add(1))
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Fight{},
		&models.Prediction{},
		&models.AppState{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string, score int) models.User {
	t.Helper()
	user := models.User{Username: username, Email: username + "@example.com", TotalScore: score}
	require.NoError(t, db.Create(&user).Error)
	return user
}
