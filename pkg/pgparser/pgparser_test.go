package pgparser

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsxbet/sql-uidx/pkg/types"
)

func TestParsePostgreSQL(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		wantErr bool
	}{
		{
			name: "simple CREATE TABLE",
			sql:  "CREATE TABLE users (id INT);",
		},
		{
			name: "CREATE TABLE with schema",
			sql:  "CREATE TABLE public.users (id INT, name VARCHAR(100));",
		},
		{
			name: "partial unique index",
			sql:  "CREATE UNIQUE INDEX users_email_key ON users (email) WHERE is_deleted = false;",
		},
		{
			name: "missing semicolon is ok",
			sql:  "CREATE TABLE users (id INT)",
		},
		{
			name:    "invalid SQL",
			sql:     "CREATE INVALID SYNTAX",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParsePostgreSQL(tt.sql)

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, result)
				assert.True(t, errors.Is(err, types.ErrSyntax))
				return
			}
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.NotNil(t, result.Tree)
			assert.NotNil(t, result.Tokens)
		})
	}
}

func TestSyntaxErrorMessage(t *testing.T) {
	err := &SyntaxError{Message: "boom", Position: &types.Position{Line: 2, Column: 5}}
	assert.Equal(t, "syntax error at line 2, column 5: boom", err.Error())
	assert.Equal(t, "syntax error: boom", (&SyntaxError{Message: "boom"}).Error())
}

func TestInspect(t *testing.T) {
	sql := "CREATE TABLE public.Users (\r\n" +
		"  id serial PRIMARY KEY,\r\n" +
		"  email text UNIQUE,\r\n" +
		"  login text,\r\n" +
		"  UNIQUE (login, email)\r\n" +
		");\r\n" +
		"CREATE UNIQUE INDEX users_login_key ON users (login) WHERE is_deleted = false;\r\n" +
		"CREATE UNIQUE INDEX users_id_key ON users (id);\r\n" +
		"CREATE INDEX users_email_idx ON users (email);\r\n"

	inv, err := Inspect(sql)
	require.NoError(t, err)

	assert.Equal(t, []string{"users"}, inv.Tables)
	require.Len(t, inv.Constraints, 2)
	assert.Equal(t, []string{"email"}, inv.Constraints[0].Columns)
	assert.Equal(t, []string{"login", "email"}, inv.Constraints[1].Columns)
	assert.Equal(t, "users", inv.Constraints[1].Table)

	require.Len(t, inv.Indexes, 2)
	assert.Equal(t, UniqueIndex{Name: "users_login_key", Table: "users", Columns: []string{"login"}, Partial: true, Line: 7}, inv.Indexes[0])
	assert.Equal(t, "users_id_key", inv.Indexes[1].Name)
	assert.False(t, inv.Indexes[1].Partial)
}

func TestInspectSyntaxError(t *testing.T) {
	_, err := Inspect("CREATE TABLE t (a int,);")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrSyntax))
}
