package db_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"versozap/internal/server/db"
)

func mustParse(t *testing.T, raw string) db.URL {
	t.Helper()
	u, err := db.ParseURL(raw)
	require.NoError(t, err)
	return u
}

func Test_DSN_MySQL_AppliesDefaults(t *testing.T) {
	u := mustParse(t, "mysql://app:secret@db:3306/versozap")

	dsn, err := db.DSN(u, db.ConnectArgsFor(u.String()))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dsn, "app:secret@tcp(db:3306)/versozap?"), dsn)
	assert.Contains(t, dsn, "charset=utf8mb4")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "loc=Local")
}

func Test_DSN_MySQL_URLParamsWin(t *testing.T) {
	u := mustParse(t, "mysql://app:secret@db:3306/versozap?charset=latin1&parseTime=false&loc=UTC")

	dsn, err := db.DSN(u, db.ConnectArgs{})

	require.NoError(t, err)
	assert.Contains(t, dsn, "charset=latin1")
	assert.NotContains(t, dsn, "utf8mb4")
	assert.NotContains(t, dsn, "parseTime=true")
	assert.NotContains(t, dsn, "loc=")
}

func Test_DSN_MySQL_InvalidLocation(t *testing.T) {
	u := mustParse(t, "mysql://app@db/versozap?loc=Nowhere/Atlantis")

	_, err := db.DSN(u, db.ConnectArgs{})

	assert.ErrorIs(t, err, db.ErrMalformedURL)
}

func Test_DSN_Postgres_NormalisesScheme(t *testing.T) {
	u := mustParse(t, "postgresql+psycopg2://app:secret@db:5432/versozap?sslmode=disable")

	dsn, err := db.DSN(u, db.ConnectArgs{})

	require.NoError(t, err)
	assert.Equal(t, "postgres://app:secret@db:5432/versozap?sslmode=disable", dsn)
}

func Test_DSN_SQLite_KeepsPathAndParams(t *testing.T) {
	u := mustParse(t, "sqlite:///data/versozap.db?cache=shared")

	dsn, err := db.DSN(u, db.ConnectArgsFor(u.String()))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dsn, "data/versozap.db?"), dsn)
	assert.Contains(t, dsn, "cache=shared")
	assert.Contains(t, dsn, "5000")
}

func Test_DSN_SQLite_NoBusyTimeout_WhenSameThreadOnly(t *testing.T) {
	u := mustParse(t, "sqlite:///versozap.db")

	dsn, err := db.DSN(u, db.ConnectArgs{"check_same_thread": true})

	require.NoError(t, err)
	assert.NotContains(t, dsn, "5000")
}
