package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenForTesting(t *testing.T) {
	db, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })

	assert.NoError(t, db.Ping())

	var tableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='items'").Scan(&tableName)
	require.NoError(t, err)
	assert.Equal(t, "items", tableName)
}

func TestOpenForTesting_Isolated(t *testing.T) {
	first, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, first.Close()) })

	second, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, second.Close()) })

	_, err = first.Exec("INSERT INTO items (content, date_created) VALUES ('only here', datetime('now'))")
	require.NoError(t, err)

	var n int
	require.NoError(t, second.QueryRow("SELECT COUNT(*) FROM items").Scan(&n))
	assert.Zero(t, n)
}

func TestOpenFile_CreatesSchemaAndReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasklist.db")

	db, err := Open(path)
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO items (content, date_created) VALUES ('persisted', datetime('now'))")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Migrations already applied; reopening must not fail or lose data.
	db, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })

	var content string
	require.NoError(t, db.QueryRow("SELECT content FROM items").Scan(&content))
	assert.Equal(t, "persisted", content)
}

func TestOpen_FailsOnUnusablePath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "dir", "tasklist.db"))
	assert.Error(t, err)
}

func TestItemsRejectEmptyContent(t *testing.T) {
	db, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })

	_, err = db.Exec("INSERT INTO items (content, date_created) VALUES ('   ', datetime('now'))")
	assert.Error(t, err)
}
