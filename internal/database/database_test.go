package database

import (
	"testing"

	"blog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteMigratesSchema(t *testing.T) {
	db, err := Open(DriverSQLite, "file:open_test?mode=memory&cache=shared")
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasTable(&models.Post{}))
	assert.True(t, db.Migrator().HasIndex(&models.User{}, "Email"))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("mongodb", "mongodb://localhost")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}
