package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createCitizenProfileTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE citizen_profiles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		unique_id TEXT NOT NULL UNIQUE,
		customer_id TEXT NOT NULL UNIQUE,
		phone TEXT NOT NULL,
		contact_no TEXT NOT NULL,
		owner_name TEXT NOT NULL,
		building_no TEXT NOT NULL,
		street TEXT NOT NULL,
		area TEXT NOT NULL,
		pincode TEXT NOT NULL,
		city TEXT NOT NULL,
		district TEXT NOT NULL,
		state TEXT NOT NULL,
		zone TEXT NOT NULL,
		ward TEXT NOT NULL,
		property_name TEXT NOT NULL,
		is_active BOOLEAN,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}
