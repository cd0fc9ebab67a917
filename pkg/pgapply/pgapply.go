// Package pgapply executes a rewritten script against a live PostgreSQL
// database inside a transaction that is always rolled back.
package pgapply

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	"github.com/nsxbet/sql-uidx/pkg/lexstate"
	"github.com/nsxbet/sql-uidx/pkg/sqltext"
)

// Report describes a successful dry run.
type Report struct {
	// Executed is the number of statements sent to the server.
	Executed int `yaml:"executed" json:"executed"`
	// Found lists the expected indexes present after execution.
	Found []string `yaml:"found" json:"found"`
	// Missing lists the expected indexes that were not created.
	Missing []string `yaml:"missing,omitempty" json:"missing,omitempty"`
}

// StatementError is returned when the server rejects a statement.
type StatementError struct {
	Index     int
	Statement string
	SQLError  *pgconn.PgError
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("statement %d failed: [%s] %s", e.Index, e.SQLError.Code, e.SQLError.Message)
}

func (e *StatementError) Unwrap() error {
	return e.SQLError
}

// Apply runs every statement of script in one transaction on the database at
// connString, checks that the named indexes exist, and rolls back.
func Apply(ctx context.Context, connString, script string, indexes ...string) (*Report, error) {
	config, err := pgx.ParseConfig(connString)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse connection string")
	}

	conn, err := pgx.ConnectConfig(ctx, config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect")
	}
	defer conn.Close(ctx)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Warn("Rollback failed", "error", err)
		}
	}()

	report := &Report{}
	for i, stmt := range sqltext.SplitStatements(script) {
		if strings.TrimSpace(lexstate.RemoveComments(stmt)) == "" {
			continue
		}
		if _, err := tx.Exec(ctx, stmt); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) {
				return nil, &StatementError{Index: i + 1, Statement: stmt, SQLError: pgErr}
			}
			return nil, errors.Wrapf(err, "statement %d", i+1)
		}
		report.Executed++
	}
	slog.Debug("Executed script", "statements", report.Executed)

	if len(indexes) == 0 {
		return report, nil
	}

	rows, err := tx.Query(ctx,
		"SELECT indexname FROM pg_indexes WHERE schemaname = ANY(current_schemas(false)) AND indexname = ANY($1)",
		normalizeNames(indexes))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list indexes")
	}
	found, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, errors.Wrap(err, "failed to list indexes")
	}

	present := make(map[string]bool, len(found))
	for _, name := range found {
		present[name] = true
	}
	for _, name := range indexes {
		if present[normalizeName(name)] {
			report.Found = append(report.Found, name)
		} else {
			report.Missing = append(report.Missing, name)
		}
	}
	return report, nil
}

func normalizeNames(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = normalizeName(name)
	}
	return out
}

// normalizeName applies PostgreSQL identifier folding: quoted names keep
// their case, unquoted names are lower-cased.
func normalizeName(name string) string {
	if len(name) >= 2 && name[0] == '"' && name[len(name)-1] == '"' {
		return strings.ReplaceAll(name[1:len(name)-1], `""`, `"`)
	}
	return strings.ToLower(name)
}
