package rewriter

import (
	"log/slog"

	"github.com/nsxbet/sql-uidx/pkg/dialect"
	"github.com/nsxbet/sql-uidx/pkg/types"
)

// Option is a functional option for New.
type Option func(*options)

type options struct {
	dialect       dialect.Dialect
	dialectName   string
	conditions    *types.ConditionMap
	conditionsSet bool
	logger        *slog.Logger
}

// WithConditions replaces the WHERE conditions of every generated index.
// A nil or empty map produces indexes without a WHERE clause.
//
// Example:
//
//	r, err := rewriter.New(rewriter.WithConditions(
//	    types.NewConditionMap().Set("deleted_at", types.Null())))
func WithConditions(conditions *types.ConditionMap) Option {
	return func(o *options) {
		o.conditions = conditions
		o.conditionsSet = true
	}
}

// WithDialect selects a registered dialect by name, e.g. "postgres".
func WithDialect(name string) Option {
	return func(o *options) {
		o.dialectName = name
	}
}

// WithDialectImpl uses d directly, bypassing the registry.
func WithDialectImpl(d dialect.Dialect) Option {
	return func(o *options) {
		o.dialect = d
	}
}

// WithLogger sets the logger for debug output. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
