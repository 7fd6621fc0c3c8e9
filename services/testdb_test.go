package services

import (
	"fmt"
	"strings"
	"testing"

	"recycle-rewards-system/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func createUser(t *testing.T, db *gorm.DB, name, address string) models.User {
	t.Helper()
	u := models.User{
		Name:         name,
		Email:        strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		PasswordHash: "x",
		Address:      address,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func createRider(t *testing.T, db *gorm.DB, name string) models.Rider {
	t.Helper()
	r := models.Rider{
		Name:         name,
		Email:        strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@riders.example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&r).Error)
	return r
}

func createChallenge(t *testing.T, db *gorm.DB, title string, points int64) models.Challenge {
	t.Helper()
	ch := models.Challenge{
		Code:   strings.ToLower(strings.ReplaceAll(title, " ", "-")),
		Title:  title,
		Points: points,
	}
	require.NoError(t, db.Create(&ch).Error)
	return ch
}

func reloadUser(t *testing.T, db *gorm.DB, id string) models.User {
	t.Helper()
	var u models.User
	require.NoError(t, db.Where("id = ?", id).First(&u).Error)
	return u
}

func reloadPickup(t *testing.T, db *gorm.DB, id string) models.Pickup {
	t.Helper()
	var p models.Pickup
	require.NoError(t, db.Where("id = ?", id).First(&p).Error)
	return p
}
