package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/mars-colony-api/internal/credentials"
	"github.com/yukikurage/mars-colony-api/internal/database"
	"github.com/yukikurage/mars-colony-api/internal/logging"
	"github.com/yukikurage/mars-colony-api/internal/models"
	"github.com/yukikurage/mars-colony-api/internal/seed"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/logger"
)

// seededFile creates a seeded SQLite file and returns its path.
func seededFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mars_explorer.db")

	storage := database.NewStorage(nil)
	loc := database.SQLiteLocation(path)
	loc.LogLevel = logger.Silent
	require.NoError(t, storage.Initialize(loc))
	defer storage.Close()

	db, err := storage.OpenSession()
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, logging.Discard()))
	_, err = seed.Run(db, credentials.NewBcryptHasher(bcrypt.MinCost), logging.Discard())
	require.NoError(t, err)
	return path
}

func run(input string, args ...string) (int, string) {
	var out bytes.Buffer
	cmd := &Command{In: strings.NewReader(input), Out: &out}
	code := cmd.Run(args)
	return code, out.String()
}

func addressOf(t *testing.T, path string, id uint64) string {
	t.Helper()
	storage := database.NewStorage(nil)
	loc := database.SQLiteLocation(path)
	loc.LogLevel = logger.Silent
	require.NoError(t, storage.Initialize(loc))
	defer storage.Close()

	db, err := storage.OpenSession()
	require.NoError(t, err)
	var colonist models.Colonist
	require.NoError(t, db.First(&colonist, id).Error)
	return colonist.Address
}

func TestRun_Usage(t *testing.T) {
	code, out := run("")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "Available tasks:")
	assert.Contains(t, out, "  8 - ")
}

func TestRun_UnknownTask(t *testing.T) {
	code, out := run("", "9", "whatever.db")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "task '9' does not exist")
	assert.Contains(t, out, "1, 2, 3, 4, 5, 6, 7, 8")
}

func TestRun_ModuleResidents(t *testing.T) {
	path := seededFile(t)

	code, out := run("", "1", path)
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, strings.Repeat("=", 60))
	assert.Contains(t, out, "TASK 1: All colonists in module 1")
	assert.Contains(t, out, "Database: "+path)
	assert.Contains(t, out, "1. <Colonist> 1 Scott Ridley")
	assert.Contains(t, out, "4. <Colonist> 6 Nguyen Linh")
	assert.Contains(t, out, "Task 1 completed successfully")
}

func TestRun_PromptsForDatabase(t *testing.T) {
	path := seededFile(t)

	code, out := run(path+"\n", "3")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "Enter database name: ")
	assert.Contains(t, out, "<Colonist> 3 Kovacs Ilya age: 17 years")
}

func TestRun_NonEngineers(t *testing.T) {
	path := seededFile(t)

	code, out := run("", "2", path)
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "\n3\n6\n")
	assert.NotContains(t, out, "\n2\n")
}

func TestRun_LargestTeams(t *testing.T) {
	path := seededFile(t)

	code, out := run("", "6", path)
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "Jobs with the largest team (2 members):")
	assert.Contains(t, out, "Team leader: Scott Ridley")
	assert.Contains(t, out, "Team: 2, 3 (size: 2)")
}

func TestRun_DepartmentHours(t *testing.T) {
	path := seededFile(t)

	code, out := run("", "8", path)
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "Found department: Geological Exploration (ID: 1)")
	assert.Contains(t, out, "Department members (ID): 4, 6")
	assert.Contains(t, out, "No members with more than 25 hours of finished work")
}

func TestRun_RelocationCancelled(t *testing.T) {
	path := seededFile(t)

	code, out := run("n\n", "7", path)
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "Found 1 colonists to relocate:")
	assert.Contains(t, out, "Kovacs Ilya, age: 17, current address: module_1")
	assert.Contains(t, out, "Relocation cancelled")
	assert.Equal(t, "module_1", addressOf(t, path, 3))
}

func TestRun_RelocationConfirmed(t *testing.T) {
	path := seededFile(t)

	code, out := run("Y\n", "7", path)
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "module_1 -> module_3")
	assert.Contains(t, out, "Relocated 1 colonists")
	assert.Equal(t, "module_3", addressOf(t, path, 3))

	code, out = run("", "7", path)
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "No colonists in module_1 younger than 21 to relocate")
}

func TestRun_MissingDatabaseName(t *testing.T) {
	code, out := run("\n", "1")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, strings.Repeat("!", 60))
	assert.Contains(t, out, "ERROR while running task 1:")
}

func TestRun_MissingDatabaseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nowhere.db")

	code, out := run("", "1", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "ERROR while running task 1:")
	assert.Contains(t, out, "does not exist")

	_, err := os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist, "the file must not be created")
}

func TestRun_DatabaseWithoutColonists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.db")
	storage := database.NewStorage(nil)
	loc := database.SQLiteLocation(path)
	loc.LogLevel = logger.Silent
	require.NoError(t, storage.Initialize(loc))
	db, err := storage.OpenSession()
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE other (x INTEGER)").Error)
	require.NoError(t, storage.Close())

	code, out := run("", "1", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "has no colonists table")

	// Nothing was migrated into the file.
	require.NoError(t, storage.Initialize(loc))
	t.Cleanup(func() { _ = storage.Close() })
	db, err = storage.OpenSession()
	require.NoError(t, err)
	assert.False(t, db.Migrator().HasTable(&models.Colonist{}))
}
