package index

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nsxbet/sql-uidx/pkg/dialect"
)

func mustPostgres(t *testing.T) dialect.Dialect {
	t.Helper()
	d, err := dialect.Get(dialect.PostgresName)
	require.NoError(t, err)
	return d
}
