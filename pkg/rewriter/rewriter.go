// Package rewriter provides the high-level API for turning inline UNIQUE
// constraints into filtered unique indexes.
//
// A script is split into statements; every CREATE TABLE loses its UNIQUE
// keywords and composite UNIQUE definitions, and one CREATE UNIQUE INDEX per
// removed constraint is appended after the last statement, table by table in
// declaration order. Each index carries the same WHERE filter, by default
// "is_deleted = false".
//
// # Quick Start
//
//	r, err := rewriter.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := r.Rewrite("CREATE TABLE users (id int, email text UNIQUE);")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(result.Script)
//
// # Custom Conditions
//
//	conditions := types.NewConditionMap().
//	    Set("deleted_at", types.Null()).
//	    Set("tenant", types.String("acme"))
//	r, err := rewriter.New(rewriter.WithConditions(conditions))
//
// # Using a Configuration File
//
//	r, err := rewriter.New()
//	if err := r.WithConfig(".sql-uidx.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//
// A malformed CREATE TABLE fails the whole rewrite; no partial output is
// returned.
package rewriter

import (
	"log/slog"
	"strings"

	"github.com/pkg/errors"

	"github.com/nsxbet/sql-uidx/pkg/config"
	"github.com/nsxbet/sql-uidx/pkg/constraint"
	"github.com/nsxbet/sql-uidx/pkg/dialect"
	"github.com/nsxbet/sql-uidx/pkg/index"
	"github.com/nsxbet/sql-uidx/pkg/lexstate"
	"github.com/nsxbet/sql-uidx/pkg/sqltext"
	"github.com/nsxbet/sql-uidx/pkg/types"
)

// Rewriter rewrites DDL scripts. It holds no per-script state and is safe
// for concurrent use once configured.
type Rewriter struct {
	dialect    dialect.Dialect
	conditions *types.ConditionMap
	logger     *slog.Logger
}

// New creates a Rewriter with the default configuration, then applies opts.
func New(opts ...Option) (*Rewriter, error) {
	r := &Rewriter{logger: slog.Default()}
	if err := r.WithConfigObject(config.DefaultConfig()); err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.dialect != nil {
		r.dialect = o.dialect
	} else if o.dialectName != "" {
		d, err := dialect.Get(o.dialectName)
		if err != nil {
			return nil, err
		}
		r.dialect = d
	}
	if o.conditionsSet {
		r.conditions = o.conditions.Clone()
	}
	if o.logger != nil {
		r.logger = o.logger
	}
	return r, nil
}

// WithConfig loads dialect and conditions from a YAML file, replacing the
// current ones.
func (r *Rewriter) WithConfig(filename string) error {
	cfg, err := config.LoadFromFile(filename)
	if err != nil {
		return err
	}
	return r.WithConfigObject(cfg)
}

// WithConfigObject applies an already loaded configuration.
func (r *Rewriter) WithConfigObject(cfg *config.Config) error {
	if cfg == nil {
		return types.InvalidArgument("config is nil")
	}
	d, err := dialect.Get(cfg.Dialect)
	if err != nil {
		return err
	}
	r.dialect = d
	r.conditions = cfg.Conditions.Clone()
	return nil
}

// Dialect returns the dialect used for index names and literals.
func (r *Rewriter) Dialect() dialect.Dialect {
	return r.dialect
}

// Conditions returns a copy of the WHERE conditions.
func (r *Rewriter) Conditions() *types.ConditionMap {
	return r.conditions.Clone()
}

// Rewrite strips UNIQUE constraints from every CREATE TABLE in script and
// appends the matching unique indexes. Statements other than CREATE TABLE
// are copied unchanged.
func (r *Rewriter) Rewrite(script string) (*Result, error) {
	if script == "" {
		return nil, types.InvalidArgument("script is empty")
	}

	statements := sqltext.SplitStatements(script)
	r.logger.Debug("Split script", "statements", len(statements), "bytes", len(script))

	result := &Result{}
	result.Summary.Statements = len(statements)

	var out strings.Builder
	out.Grow(len(script))
	for i, stmt := range statements {
		if !constraint.IsCreateTable(stmt) {
			out.WriteString(stmt)
			continue
		}

		table, err := constraint.ParseCreateTable(stmt)
		if err != nil {
			return nil, errors.Wrapf(err, "statement %d", i+1)
		}
		result.Summary.Tables++

		out.WriteString(table.RemoveUniqueConstraints())

		summary := TableSummary{Name: table.Name}
		for _, group := range table.Groups {
			idx, err := index.NewStatement(r.dialect, table.Name, group.Columns, r.conditions)
			if err != nil {
				return nil, errors.Wrapf(err, "statement %d, table %s", i+1, table.Name)
			}
			result.Indexes = append(result.Indexes, idx)
			if group.Composite {
				summary.Composite++
			} else {
				summary.SingleColumn++
			}
		}
		if len(table.Groups) > 0 {
			result.Tables = append(result.Tables, summary)
			result.Summary.RewrittenTables++
			result.Summary.SingleColumn += summary.SingleColumn
			result.Summary.Composite += summary.Composite
		}
		r.logger.Debug("Rewrote table", "table", table.Name,
			"single", summary.SingleColumn, "composite", summary.Composite)
	}

	if len(result.Indexes) == 0 {
		result.Script = out.String()
		return result, nil
	}

	rewritten, err := terminate(out.String())
	if err != nil {
		return nil, err
	}
	out.Reset()
	out.WriteString(rewritten)
	for _, idx := range result.Indexes {
		r.logger.Debug("Generated index", "name", idx.Name, "table", idx.Table)
		out.WriteString(idx.SQL())
	}

	result.Script = out.String()
	return result, nil
}

// terminate prepares script for appended statements: the last statement is
// closed with ";" when it has none and the script ends with a line break. A
// script that ends inside a block comment or string literal is rejected.
func terminate(script string) (string, error) {
	t := lexstate.New()
	t.Feed(script)
	switch t.State() {
	case lexstate.InMultiLineComment:
		return "", types.NewSyntaxError(script, len(script), "script ends inside a block comment")
	case lexstate.InStringLiteral:
		return "", types.NewSyntaxError(script, len(script), "script ends inside a string literal")
	}

	if statements := sqltext.SplitStatements(script); len(statements) > 0 {
		last := statements[len(statements)-1]
		if strings.TrimSpace(lexstate.RemoveComments(last)) != "" && lexstate.IndexLive(last, ';') < 0 {
			trimmed := strings.TrimRight(script, " \t\r\n")
			if lexstate.LiveAt(trimmed, len(trimmed)) {
				script = trimmed + ";" + script[len(trimmed):]
			} else {
				script = withLineBreak(script) + ";"
			}
		}
	}
	return withLineBreak(script), nil
}

func withLineBreak(s string) string {
	if strings.HasSuffix(s, "\n") || strings.HasSuffix(s, "\r") {
		return s
	}
	return s + index.LineSeparator
}
