package index

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsxbet/sql-uidx/pkg/types"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name       string
		table      string
		columns    []string
		conditions *types.ConditionMap
		want       string
	}{
		{
			name:       "single column with boolean condition",
			table:      "users",
			columns:    []string{"email"},
			conditions: types.NewConditionMap().Set("is_deleted", types.Boolean(false)),
			want:       "CREATE UNIQUE INDEX users_email_key ON users (email) WHERE is_deleted = false;\r\n",
		},
		{
			name:    "composite without conditions",
			table:   "memberships",
			columns: []string{"user_id", "group_id"},
			want:    "CREATE UNIQUE INDEX memberships_user_id_group_id_key ON memberships (user_id, group_id);\r\n",
		},
		{
			name:       "empty condition map",
			table:      "t",
			columns:    []string{"a"},
			conditions: types.NewConditionMap(),
			want:       "CREATE UNIQUE INDEX t_a_key ON t (a);\r\n",
		},
		{
			name:       "null condition",
			table:      "t",
			columns:    []string{"a"},
			conditions: types.NewConditionMap().Set("deleted_at", types.Null()),
			want:       "CREATE UNIQUE INDEX t_a_key ON t (a) WHERE deleted_at IS NULL;\r\n",
		},
		{
			name:    "multiple conditions are joined with AND in insertion order",
			table:   "t",
			columns: []string{"a"},
			conditions: types.NewConditionMap().
				Set("is_deleted", types.Boolean(false)).
				Set("status", types.String("active")).
				Set("version", types.Integer(2)).
				Set("purged_at", types.Null()),
			want: "CREATE UNIQUE INDEX t_a_key ON t (a) WHERE is_deleted = false AND status = 'active' AND version = 2 AND purged_at IS NULL;\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(tt.table, tt.columns, tt.conditions)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "= IS NULL")
		})
	}
}

func TestBuildInvalidArgument(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		columns []string
	}{
		{name: "empty table", table: "", columns: []string{"a"}},
		{name: "blank table", table: "  ", columns: []string{"a"}},
		{name: "no columns", table: "t", columns: nil},
		{name: "empty column", table: "t", columns: []string{"a", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.table, tt.columns, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrInvalidArgument))
		})
	}

	_, err := BuildWith(nil, "t", []string{"a"}, nil)
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))
}

func TestNewStatementCopiesColumns(t *testing.T) {
	cols := []string{"a", "b"}
	d := mustPostgres(t)
	stmt, err := NewStatement(d, "t", cols, nil)
	require.NoError(t, err)
	cols[0] = "z"
	assert.Equal(t, []string{"a", "b"}, stmt.Columns)
	assert.Equal(t, "t_a_b_key", stmt.Name)
}
