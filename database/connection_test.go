package database

import (
	"testing"

	"blogapi/config"
	"blogapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectRejectsUnknownDriver(t *testing.T) {
	_, err := Connect(&config.Config{DBDriver: "oracle"})
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}

func TestConnectSQLiteAndMigrate(t *testing.T) {
	cfg := &config.Config{DBDriver: "sqlite", SQLitePath: "file:connect_test?mode=memory&cache=shared", GinMode: "release"}

	db, err := Connect(cfg)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasTable(&models.Post{}))
}

func TestOpenMemoryIsolatesDatabases(t *testing.T) {
	first, err := OpenMemory(t.Name())
	require.NoError(t, err)
	second, err := OpenMemory(t.Name())
	require.NoError(t, err)

	require.NoError(t, first.Create(&models.User{Username: "only_here"}).Error)

	var count int64
	require.NoError(t, second.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
