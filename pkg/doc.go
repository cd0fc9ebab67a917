// Package pkg provides soft-delete aware unique index generation for SQL DDL scripts.
//
// SQL UIDX rewrites CREATE TABLE statements so that inline UNIQUE constraints are
// replaced by partial unique indexes filtered on soft-delete columns, keeping
// everything else in the script untouched.
//
// # Package Structure
//
// The pkg directory contains several specialized packages:
//
//   - rewriter: High-level API for rewriting scripts (recommended starting point)
//   - constraint: CREATE TABLE decomposition and UNIQUE classification
//   - index: CREATE UNIQUE INDEX statement rendering
//   - dialect: Dialect registry for index naming and literal formatting
//   - types: Condition values, ordered condition maps and error kinds
//   - lexstate: Comment and string literal tracking over SQL text
//   - sqltext: Parenthesis matching and top-level splitting
//   - config: Configuration loading and validation
//   - pgparser: ANTLR-based PostgreSQL parser used for syntax checks
//   - pgapply: Applies rewritten scripts to a live PostgreSQL database
//   - logger: Logging abstraction layer
//
// # Getting Started
//
// For most use cases, start with the rewriter package:
//
//	import "github.com/nsxbet/sql-uidx/pkg/rewriter"
//
//	func main() {
//	    r, err := rewriter.New()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    result, err := r.Rewrite("CREATE TABLE users (email text UNIQUE);")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    fmt.Print(result.Script)
//	}
//
// The script above becomes:
//
//	CREATE TABLE users (email text);
//	CREATE UNIQUE INDEX users_email_key ON users (email) WHERE is_deleted = false;
//
// # Conditions
//
// Conditions are kept in insertion order and rendered joined with AND:
//
//	conds := types.NewConditionMap().
//	    Set("deleted_at", types.Null()).
//	    Set("tenant", types.String("acme"))
//
//	r, err := rewriter.New(rewriter.WithConditions(conds))
//
// An empty map produces indexes without a WHERE clause.
//
// # Configuration
//
// Load dialect and conditions from YAML:
//
//	r, _ := rewriter.New()
//	err := r.WithConfig(".sql-uidx.yaml")
//
// # Error Handling
//
// Errors carry a kind that can be tested with errors.Is:
//
//	_, err := r.Rewrite(script)
//	if errors.Is(err, types.ErrSyntax) {
//	    // unbalanced parentheses or unterminated column lists
//	}
//	if errors.Is(err, types.ErrInvalidArgument) {
//	    // empty script, empty column list or empty table name
//	}
//
// See individual package documentation for detailed API information.
package pkg
