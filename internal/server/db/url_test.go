package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"versozap/internal/server/db"
)

func Test_ParseURL_ValidURLs(t *testing.T) {
	tests := []struct {
		raw      string
		dialect  string
		driver   string
		database string
		memory   bool
	}{
		{raw: "sqlite:///versozap.db", dialect: db.DialectSQLite, database: "versozap.db"},
		{raw: "sqlite:////var/lib/versozap/app.db", dialect: db.DialectSQLite, database: "/var/lib/versozap/app.db"},
		{raw: "sqlite://", dialect: db.DialectSQLite, database: ":memory:", memory: true},
		{raw: "sqlite:///:memory:", dialect: db.DialectSQLite, database: ":memory:", memory: true},
		{raw: "sqlite+pysqlite:///data.db", dialect: db.DialectSQLite, driver: "pysqlite", database: "data.db"},
		{raw: "mysql://app:secret@db:3306/versozap", dialect: db.DialectMySQL, database: "versozap"},
		{raw: "mysql+pymysql://app@db/versozap", dialect: db.DialectMySQL, driver: "pymysql", database: "versozap"},
		{raw: "postgresql://app:secret@db:5432/versozap", dialect: db.DialectPostgres, database: "versozap"},
		{raw: "postgres://db/versozap?sslmode=disable", dialect: db.DialectPostgres, database: "versozap"},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			u, err := db.ParseURL(tc.raw)

			require.NoError(t, err)
			assert.Equal(t, tc.dialect, u.Dialect)
			assert.Equal(t, tc.driver, u.Driver)
			assert.Equal(t, tc.database, u.Database)
			assert.Equal(t, tc.memory, u.IsMemory())
			assert.Equal(t, tc.raw, u.String())
		})
	}
}

func Test_ParseURL_Malformed(t *testing.T) {
	for _, raw := range []string{"", "   ", "versozap.db", "sqlite:versozap.db", "://nope", "sqlite://host/app.db"} {
		t.Run(raw, func(t *testing.T) {
			_, err := db.ParseURL(raw)

			assert.ErrorIs(t, err, db.ErrMalformedURL)
		})
	}
}

func Test_ParseURL_UnsupportedDialect(t *testing.T) {
	_, err := db.ParseURL("oracle://scott:tiger@db/orcl")

	assert.ErrorIs(t, err, db.ErrUnsupportedDialect)
}

func Test_URL_Redacted_HidesPassword(t *testing.T) {
	u, err := db.ParseURL("postgres://app:secret@db:5432/versozap")
	require.NoError(t, err)

	assert.NotContains(t, u.Redacted(), "secret")
	assert.Contains(t, u.Redacted(), "app")
}

func Test_ConnectArgsFor(t *testing.T) {
	tests := []struct {
		raw  string
		want db.ConnectArgs
	}{
		{"sqlite:///versozap.db", db.ConnectArgs{"check_same_thread": false}},
		{"sqlite://", db.ConnectArgs{"check_same_thread": false}},
		{"sqlite+pysqlite:///x.db", db.ConnectArgs{"check_same_thread": false}},
		{"SQLITE:///x.db", db.ConnectArgs{}},
		{"postgres://db/versozap", db.ConnectArgs{}},
		{"mysql://app@db/versozap", db.ConnectArgs{}},
		{"", db.ConnectArgs{}},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got := db.ConnectArgsFor(tc.raw)

			require.NotNil(t, got)
			assert.Equal(t, tc.want, got)
		})
	}
}

func Test_ConnectArgs_Clone_IsIndependent(t *testing.T) {
	a := db.ConnectArgsFor("sqlite:///x.db")
	b := a.Clone()
	b["check_same_thread"] = true

	assert.Equal(t, false, a["check_same_thread"])
}
