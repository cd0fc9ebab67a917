package rewriter

import (
	"fmt"

	"github.com/nsxbet/sql-uidx/pkg/index"
)

// Result is the outcome of Rewrite.
type Result struct {
	// Script is the rewritten script followed by the generated indexes.
	Script string

	// Indexes lists the generated statements in output order.
	Indexes []*index.Statement

	// Tables lists the tables that had at least one UNIQUE constraint.
	Tables []TableSummary

	Summary Summary
}

// TableSummary counts the constraints removed from one table.
type TableSummary struct {
	Name         string `yaml:"name" json:"name"`
	SingleColumn int    `yaml:"single_column" json:"single_column"`
	Composite    int    `yaml:"composite" json:"composite"`
}

// Summary provides aggregate counts for a rewrite.
type Summary struct {
	// Statements is the number of statements in the input.
	Statements int `yaml:"statements" json:"statements"`

	// Tables is the number of CREATE TABLE statements.
	Tables int `yaml:"tables" json:"tables"`

	// RewrittenTables is the number of tables that had UNIQUE constraints.
	RewrittenTables int `yaml:"rewritten_tables" json:"rewritten_tables"`

	SingleColumn int `yaml:"single_column" json:"single_column"`
	Composite    int `yaml:"composite" json:"composite"`
}

// Changed reports whether any constraint was rewritten.
func (r *Result) Changed() bool {
	return len(r.Indexes) > 0
}

// String returns a one-line summary.
//
// Example output:
//
//	Rewrite Results: 3 indexes from 2 of 4 tables (2 single-column, 1 composite)
func (r *Result) String() string {
	return fmt.Sprintf(
		"Rewrite Results: %d indexes from %d of %d tables (%d single-column, %d composite)",
		len(r.Indexes),
		r.Summary.RewrittenTables,
		r.Summary.Tables,
		r.Summary.SingleColumn,
		r.Summary.Composite,
	)
}
