package pgparser

import (
	"regexp"

	"github.com/antlr4-go/antlr/v4"
	parser "github.com/bytebase/parser/postgresql"

	"github.com/nsxbet/sql-uidx/pkg/lexstate"
)

var whereKeyword = regexp.MustCompile(`(?i)\bWHERE\b`)

// UniqueConstraint is a UNIQUE constraint declared inside CREATE TABLE.
type UniqueConstraint struct {
	Table   string   `yaml:"table" json:"table"`
	Columns []string `yaml:"columns" json:"columns"`
	Line    int      `yaml:"line" json:"line"`
}

// UniqueIndex is a CREATE UNIQUE INDEX statement.
type UniqueIndex struct {
	Name    string   `yaml:"name" json:"name"`
	Table   string   `yaml:"table" json:"table"`
	Columns []string `yaml:"columns" json:"columns"`
	Partial bool     `yaml:"partial" json:"partial"`
	Line    int      `yaml:"line" json:"line"`
}

// Inventory lists the tables and uniqueness declarations of a script.
type Inventory struct {
	Tables      []string           `yaml:"tables" json:"tables"`
	Constraints []UniqueConstraint `yaml:"constraints" json:"constraints"`
	Indexes     []UniqueIndex      `yaml:"indexes" json:"indexes"`
}

// Inspect parses sql and collects its tables, inline UNIQUE constraints and
// unique indexes. Names are normalized the PostgreSQL way.
func Inspect(sql string) (*Inventory, error) {
	result, err := ParsePostgreSQL(sql)
	if err != nil {
		return nil, err
	}

	l := &inventoryListener{
		BasePostgreSQLParserListener: &parser.BasePostgreSQLParserListener{},
		sql:                          []rune(sql),
		inventory:                    &Inventory{},
	}
	antlr.ParseTreeWalkerDefault.Walk(l, result.Tree)
	return l.inventory, nil
}

type inventoryListener struct {
	*parser.BasePostgreSQLParserListener

	// antlr offsets count runes
	sql       []rune
	inventory *Inventory
}

func (l *inventoryListener) EnterCreatestmt(ctx *parser.CreatestmtContext) {
	if !isTopLevel(ctx.GetParent()) {
		return
	}
	names := ctx.AllQualified_name()
	if len(names) == 0 {
		return
	}
	table := lastPart(NormalizePostgreSQLQualifiedName(names[0]))
	l.inventory.Tables = append(l.inventory.Tables, table)

	if ctx.Opttableelementlist() == nil || ctx.Opttableelementlist().Tableelementlist() == nil {
		return
	}
	for _, elem := range ctx.Opttableelementlist().Tableelementlist().AllTableelement() {
		if c := elem.Tableconstraint(); c != nil && c.Constraintelem() != nil {
			ce := c.Constraintelem()
			if ce.UNIQUE() != nil && ce.Columnlist() != nil {
				var columns []string
				for _, col := range ce.Columnlist().AllColumnElem() {
					if col.Colid() != nil {
						columns = append(columns, NormalizePostgreSQLColid(col.Colid()))
					}
				}
				l.addConstraint(table, columns, elem.GetStart().GetLine())
			}
		}

		def := elem.ColumnDef()
		if def == nil || def.Colquallist() == nil {
			continue
		}
		column := NormalizePostgreSQLColid(def.Colid())
		for _, qual := range def.Colquallist().AllColconstraint() {
			if qual.Colconstraintelem() != nil && qual.Colconstraintelem().UNIQUE() != nil {
				l.addConstraint(table, []string{column}, qual.GetStart().GetLine())
			}
		}
	}
}

func (l *inventoryListener) EnterIndexstmt(ctx *parser.IndexstmtContext) {
	if !isTopLevel(ctx.GetParent()) {
		return
	}
	if ctx.Opt_unique() == nil || ctx.Opt_unique().UNIQUE() == nil {
		return
	}

	index := UniqueIndex{Line: ctx.GetStart().GetLine()}
	if ctx.Name() != nil {
		index.Name = NormalizePostgreSQLName(ctx.Name())
	}
	if ctx.Relation_expr() != nil && ctx.Relation_expr().Qualified_name() != nil {
		index.Table = lastPart(NormalizePostgreSQLQualifiedName(ctx.Relation_expr().Qualified_name()))
	}
	if ctx.Index_params() != nil {
		for _, param := range ctx.Index_params().AllIndex_elem() {
			if param.Colid() != nil {
				index.Columns = append(index.Columns, NormalizePostgreSQLColid(param.Colid()))
			}
		}
	}

	start, stop := ctx.GetStart().GetStart(), ctx.GetStop().GetStop()
	if start >= 0 && stop < len(l.sql) && start <= stop {
		index.Partial = whereKeyword.MatchString(lexstate.RemoveComments(string(l.sql[start : stop+1])))
	}

	l.inventory.Indexes = append(l.inventory.Indexes, index)
}

func (l *inventoryListener) addConstraint(table string, columns []string, line int) {
	l.inventory.Constraints = append(l.inventory.Constraints, UniqueConstraint{
		Table:   table,
		Columns: columns,
		Line:    line,
	})
}

func isTopLevel(ctx antlr.Tree) bool {
	if ctx == nil {
		return true
	}

	switch ctx := ctx.(type) {
	case *parser.RootContext, *parser.StmtblockContext:
		return true
	case *parser.StmtmultiContext, *parser.StmtContext:
		return isTopLevel(ctx.GetParent())
	default:
		return false
	}
}

func lastPart(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}
