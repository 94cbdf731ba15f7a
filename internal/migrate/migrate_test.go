package migrate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reblaw/legal-api/pkg/database"
)

func TestRunMigrations(t *testing.T) {
	db, err := database.Open(database.Config{
		Path: filepath.Join(t.TempDir(), "iran_laws.db"),
	}, nil)
	require.NoError(t, err)
	defer database.Close(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)

	version, dirty, err := GetMigrationVersion(sqlDB)
	require.NoError(t, err)
	assert.Zero(t, version)
	assert.False(t, dirty)

	require.NoError(t, RunMigrations(sqlDB))
	// A second run has nothing to do.
	require.NoError(t, RunMigrations(sqlDB))

	version, dirty, err = GetMigrationVersion(sqlDB)
	require.NoError(t, err)
	assert.EqualValues(t, 2, version)
	assert.False(t, dirty)

	require.NoError(t, db.Exec(
		"INSERT INTO articles (code, id, text) VALUES (?, ?, ?)", "قانون_مدنی", 1, "متن").Error)
	assert.Error(t, db.Exec(
		"INSERT INTO articles (code, id, text) VALUES (?, ?, ?)", "قانون_مدنی", 1, "تکراری").Error,
		"(code, id) is unique")
}

func TestRunMigrations_LegacyTable(t *testing.T) {
	db, err := database.Open(database.Config{
		Path: filepath.Join(t.TempDir(), "legacy.db"),
	}, nil)
	require.NoError(t, err)
	defer database.Close(db)

	require.NoError(t, db.Exec("CREATE TABLE articles (code TEXT, id INTEGER, text TEXT)").Error)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, RunMigrations(sqlDB))

	var count int64
	require.NoError(t, db.Raw(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = 'idx_articles_code_id'",
	).Scan(&count).Error)
	assert.EqualValues(t, 1, count)
}
