package constraint

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/nsxbet/sql-uidx/pkg/lexstate"
	"github.com/nsxbet/sql-uidx/pkg/sqltext"
	"github.com/nsxbet/sql-uidx/pkg/types"
)

var createTablePrefix = regexp.MustCompile(
	`(?is)^CREATE\s+(?:(?:GLOBAL|LOCAL)\s+)?(?:(?:TEMP|TEMPORARY|UNLOGGED)\s+)?TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?`,
)

// UniqueGroup is one UNIQUE constraint found in a table.
type UniqueGroup struct {
	Columns   []string
	Composite bool
	// Definition indexes CreateTable.Definitions at parse time.
	Definition int
}

// CreateTable is a parsed CREATE TABLE statement.
type CreateTable struct {
	Text        string
	Name        string
	Definitions []string
	Groups      []UniqueGroup

	span    sqltext.Span
	classes []Classification
}

// IsCreateTable reports whether statement is a CREATE TABLE, ignoring
// leading whitespace and comments.
func IsCreateTable(statement string) bool {
	return createTablePrefix.MatchString(strings.TrimSpace(lexstate.RemoveComments(statement)))
}

// TableName returns the table name of a CREATE TABLE statement: the text
// after the TABLE keyword up to the first whitespace or "(" outside double
// quotes.
func TableName(statement string) (string, error) {
	working := strings.TrimSpace(lexstate.RemoveComments(statement))
	loc := createTablePrefix.FindStringIndex(working)
	if loc == nil {
		return "", types.InvalidArgument("not a CREATE TABLE statement")
	}

	rest := working[loc[1]:]
	quoted := false
	end := len(rest)
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		if c == '"' {
			quoted = !quoted
			continue
		}
		if !quoted && (isSpace(c) || c == '(') {
			end = i
			break
		}
	}

	name := rest[:end]
	if name == "" {
		return "", types.NewSyntaxError(working, loc[1], "missing table name")
	}
	return name, nil
}

// ParseCreateTable decomposes a CREATE TABLE statement and classifies each of
// its definitions.
func ParseCreateTable(statement string) (*CreateTable, error) {
	name, err := TableName(statement)
	if err != nil {
		return nil, err
	}

	definitions, span, err := sqltext.DecomposeFields(statement)
	if err != nil {
		return nil, errors.Wrapf(err, "table %s", name)
	}

	ct := &CreateTable{
		Text:        statement,
		Name:        name,
		Definitions: definitions,
		span:        span,
		classes:     make([]Classification, len(definitions)),
	}
	for i, def := range definitions {
		class, err := Classify(def)
		if err != nil {
			return nil, errors.Wrapf(err, "table %s, definition %d", name, i+1)
		}
		ct.classes[i] = class
		if class.Kind == NotUnique {
			continue
		}
		ct.Groups = append(ct.Groups, UniqueGroup{
			Columns:    class.Columns,
			Composite:  class.Kind == Composite,
			Definition: i,
		})
	}
	return ct, nil
}

// RemoveUniqueConstraints returns the statement text with composite UNIQUE
// definitions deleted and single-column UNIQUE keywords stripped, together
// with a "CONSTRAINT <name>" that directly precedes them. Everything else,
// comments included, is kept verbatim.
func (ct *CreateTable) RemoveUniqueConstraints() string {
	if len(ct.Groups) == 0 {
		return ct.Text
	}

	kept := make([]string, 0, len(ct.Definitions))
	for i, def := range ct.Definitions {
		class := ct.classes[i]
		switch class.Kind {
		case Composite:
			continue
		case SingleColumn:
			kept = append(kept, stripColumnConstraint(def, class.Keyword))
		default:
			kept = append(kept, def)
		}
	}

	// keep the line break before ")" when the last definition was dropped
	if last := len(ct.Definitions) - 1; ct.classes[last].Kind == Composite && len(kept) > 0 {
		def := ct.Definitions[last]
		trailing := def[len(strings.TrimRight(def, " \t\r\n")):]
		tail := kept[len(kept)-1]
		if trailing != "" && !strings.HasSuffix(tail, "\n") && !strings.HasSuffix(tail, "\r") {
			kept[len(kept)-1] = tail + trailing
		}
	}

	return ct.Text[:ct.span.Start+1] + strings.Join(kept, ",") + ct.Text[ct.span.End:]
}

// stripColumnConstraint removes every live UNIQUE keyword of a column
// definition, starting with the one at offset at.
func stripColumnConstraint(def string, at int) string {
	for at >= 0 {
		if strings.HasPrefix(strings.TrimLeft(def[at+len(keyword):], " \t\r\n"), "(") {
			break
		}
		def = stripKeyword(def, at)
		at = findKeyword(def)
	}
	return def
}

func stripKeyword(def string, at int) string {
	start := at
	if c := constraintName(def, at); c >= 0 {
		start = c
	}
	if start > 0 && def[start-1] == ' ' {
		start--
	}
	return def[:start] + def[at+len(keyword):]
}

// constraintName returns the offset of a live "CONSTRAINT <name>" that ends
// right before the keyword at offset at, or -1.
func constraintName(def string, at int) int {
	const prefix = "CONSTRAINT"

	i := at
	for i > 0 && isSpace(def[i-1]) {
		i--
	}
	nameEnd := i
	if i > 0 && def[i-1] == '"' {
		j := strings.LastIndexByte(def[:i-1], '"')
		if j < 0 {
			return -1
		}
		i = j
	} else {
		for i > 0 && !isSpace(def[i-1]) {
			i--
		}
	}
	if i == nameEnd || i == 0 || !isSpace(def[i-1]) {
		return -1
	}
	for i > 0 && isSpace(def[i-1]) {
		i--
	}

	start := i - len(prefix)
	if start < 0 || !strings.EqualFold(def[start:i], prefix) {
		return -1
	}
	if start > 0 && !isSpace(def[start-1]) {
		return -1
	}
	if !lexstate.LiveAt(def, start) {
		return -1
	}
	return start
}
