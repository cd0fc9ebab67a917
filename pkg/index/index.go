// Package index renders CREATE UNIQUE INDEX statements with a WHERE filter.
package index

import (
	"strings"

	"github.com/nsxbet/sql-uidx/pkg/dialect"
	"github.com/nsxbet/sql-uidx/pkg/types"
)

// LineSeparator terminates every generated statement regardless of host.
const LineSeparator = "\r\n"

// Statement is a generated unique index.
type Statement struct {
	Table      string              `yaml:"table" json:"table"`
	Name       string              `yaml:"name" json:"name"`
	Columns    []string            `yaml:"columns" json:"columns"`
	Conditions *types.ConditionMap `yaml:"-" json:"-"`

	dialect dialect.Dialect
}

// NewStatement validates the arguments and names the index using d.
func NewStatement(d dialect.Dialect, table string, columns []string, conditions *types.ConditionMap) (*Statement, error) {
	if d == nil {
		return nil, types.InvalidArgument("dialect is required")
	}
	if strings.TrimSpace(table) == "" {
		return nil, types.InvalidArgument("table name is empty")
	}
	if len(columns) == 0 {
		return nil, types.InvalidArgument("no columns for unique index on %s", table)
	}
	for _, col := range columns {
		if strings.TrimSpace(col) == "" {
			return nil, types.InvalidArgument("empty column name for unique index on %s", table)
		}
	}

	return &Statement{
		Table:      table,
		Name:       d.IndexName(table, columns),
		Columns:    append([]string(nil), columns...),
		Conditions: conditions,
		dialect:    d,
	}, nil
}

// SQL renders the statement, terminated by ";" and LineSeparator.
func (s *Statement) SQL() string {
	var b strings.Builder
	b.WriteString("CREATE UNIQUE INDEX ")
	b.WriteString(s.Name)
	b.WriteString(" ON ")
	b.WriteString(s.Table)
	b.WriteString(" (")
	b.WriteString(strings.Join(s.Columns, ", "))
	b.WriteString(")")

	first := true
	s.Conditions.Each(func(column string, v types.Value) {
		if first {
			b.WriteString(" WHERE ")
			first = false
		} else {
			b.WriteString(" AND ")
		}
		b.WriteString(s.dialect.FormatCondition(column, v))
	})

	b.WriteString(";")
	b.WriteString(LineSeparator)
	return b.String()
}

// Build renders a PostgreSQL unique index on columns of table filtered by
// conditions.
func Build(table string, columns []string, conditions *types.ConditionMap) (string, error) {
	d, err := dialect.Get(dialect.PostgresName)
	if err != nil {
		return "", err
	}
	return BuildWith(d, table, columns, conditions)
}

// BuildWith is Build for an explicit dialect.
func BuildWith(d dialect.Dialect, table string, columns []string, conditions *types.ConditionMap) (string, error) {
	stmt, err := NewStatement(d, table, columns, conditions)
	if err != nil {
		return "", err
	}
	return stmt.SQL(), nil
}
