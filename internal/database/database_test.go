package database

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPostgres(t *testing.T) {
	assert.True(t, IsPostgres("postgres://u:p@localhost/b200"))
	assert.True(t, IsPostgres("postgresql://localhost/b200"))
	assert.False(t, IsPostgres("b200.db"))
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "b200.db?_pragma=busy_timeout(5000)", sqliteDSN("b200.db"))
	assert.Equal(t, "file:x?mode=memory&_pragma=busy_timeout(5000)", sqliteDSN("file:x?mode=memory"))
	assert.Equal(t, "a.db?_pragma=busy_timeout(100)", sqliteDSN("a.db?_pragma=busy_timeout(100)"))
}

func TestConnect_SQLiteMemory(t *testing.T) {
	db, err := Connect(fmt.Sprintf("file:db_%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}
