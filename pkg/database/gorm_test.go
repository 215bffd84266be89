package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithForeignKeys(t *testing.T) {
	assert.Equal(t, "app.db?_foreign_keys=on", withForeignKeys("app.db"))
	assert.Equal(t, "app.db?cache=shared&_foreign_keys=on", withForeignKeys("app.db?cache=shared"))
}

func TestNewQuietGormDBSQLite(t *testing.T) {
	db, err := NewQuietGormDB(DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	var enabled int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled)
}

func TestNewGormDBRejectsUnknownDriver(t *testing.T) {
	_, err := NewGormDB("oracle", "whatever")
	assert.Error(t, err)
}
