package models

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestIsValidProjectType(t *testing.T) {
	for _, pt := range ProjectTypes {
		assert.True(t, IsValidProjectType(pt), pt)
	}
	assert.False(t, IsValidProjectType(""))
	assert.False(t, IsValidProjectType("Custom-Home"))
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "John Doe", ContactSubmission{FirstName: "John", LastName: "Doe"}.FullName())
	assert.Equal(t, "John", ContactSubmission{FirstName: "John"}.FullName())
}

func TestColumnMismatchReport(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	var out bytes.Buffer
	total, err := ColumnMismatchReport(db, &out)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Contains(t, out.String(), "Table does not exist yet")

	require.NoError(t, db.AutoMigrate(All()...))
	require.NoError(t, db.Exec("ALTER TABLE gallery_images ADD COLUMN legacy_path text").Error)

	out.Reset()
	total, err = ColumnMismatchReport(db, &out)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Contains(t, out.String(), "  - legacy_path")
	assert.Contains(t, out.String(), "--- Table: projects ---\nAll columns are accounted for in the model.")
}
