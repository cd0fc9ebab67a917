// Package dialect holds the DBMS specific parts of index generation: how an
// index is named and how a WHERE condition literal is written.
package dialect

import (
	"sort"
	"strings"
	"sync"

	"github.com/nsxbet/sql-uidx/pkg/types"
)

// Dialect renders DBMS specific fragments of a CREATE UNIQUE INDEX statement.
type Dialect interface {
	// Name is the identifier the dialect is registered under.
	Name() string
	// IndexName returns the name of the unique index on columns of table.
	IndexName(table string, columns []string) string
	// FormatCondition renders one WHERE condition, e.g. "is_deleted = false"
	// or "deleted_at IS NULL".
	FormatCondition(column string, v types.Value) string
}

var (
	dialectMu sync.RWMutex
	dialects  = make(map[string]Dialect)
)

// Register makes a dialect available under name and any aliases.
// It panics if a name is registered twice.
func Register(d Dialect, aliases ...string) {
	dialectMu.Lock()
	defer dialectMu.Unlock()

	for _, name := range append([]string{d.Name()}, aliases...) {
		key := strings.ToLower(name)
		if _, dup := dialects[key]; dup {
			panic("dialect: Register called twice for " + key)
		}
		dialects[key] = d
	}
}

// Get returns the dialect registered under name, case-insensitively.
func Get(name string) (Dialect, error) {
	dialectMu.RLock()
	defer dialectMu.RUnlock()

	d, ok := dialects[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, types.InvalidArgument("unsupported dialect %q", name)
	}
	return d, nil
}

// Names returns every registered name and alias, sorted.
func Names() []string {
	dialectMu.RLock()
	defer dialectMu.RUnlock()

	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
