package database

import (
	"io/fs"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-api/pkg/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", Name: "timetable", SSLMode: "require"})

	assert.Equal(t, "host=db port=5433 user=u password=p dbname=timetable sslmode=require", dsn)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrationsFS, "migrations/*.down.sql")
	require.NoError(t, err)

	assert.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))

	source, err := iofs.New(migrationsFS, "migrations")
	require.NoError(t, err)
	first, err := source.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)
}
