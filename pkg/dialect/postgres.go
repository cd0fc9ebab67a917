package dialect

import (
	"strings"

	"github.com/nsxbet/sql-uidx/pkg/types"
)

// PostgresName is the identifier of the PostgreSQL dialect.
const PostgresName = "postgres"

func init() {
	Register(Postgres{}, "postgresql", "pg")
}

// Postgres is the PostgreSQL dialect.
type Postgres struct{}

func (Postgres) Name() string { return PostgresName }

// IndexName follows the PostgreSQL convention {table}_{col1}_{col2}_key. A
// schema qualifier on the table is dropped because an index always lives in
// the schema of its table. Double quotes are removed from every part and the
// result is quoted again if any part was quoted.
func (Postgres) IndexName(table string, columns []string) string {
	quoted := false
	unquote := func(ident string) string {
		if strings.Contains(ident, `"`) {
			quoted = true
		}
		return strings.ReplaceAll(ident, `"`, "")
	}

	parts := make([]string, 0, len(columns)+2)
	parts = append(parts, unquote(lastNamePart(table)))
	for _, col := range columns {
		parts = append(parts, unquote(col))
	}
	parts = append(parts, "key")

	name := strings.Join(parts, "_")
	if quoted {
		return `"` + name + `"`
	}
	return name
}

// FormatCondition renders strings single-quoted with embedded quotes doubled,
// numbers and booleans bare, and null as IS NULL.
func (Postgres) FormatCondition(column string, v types.Value) string {
	switch {
	case v.IsNull():
		return column + " IS NULL"
	case v.Kind() == types.KindString:
		return column + " = '" + strings.ReplaceAll(v.Text(), "'", "''") + "'"
	default:
		return column + " = " + v.Text()
	}
}

// lastNamePart returns the part of a possibly schema qualified name after the
// last dot that is outside double quotes.
func lastNamePart(name string) string {
	quoted := false
	cut := 0
	for i := 0; i < len(name); i++ {
		switch name[i] {
		case '"':
			quoted = !quoted
		case '.':
			if !quoted {
				cut = i + 1
			}
		}
	}
	return name[cut:]
}
