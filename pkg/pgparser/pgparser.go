// Package pgparser checks rewritten scripts with the PostgreSQL ANTLR grammar.
//
// The rewriter itself never parses SQL; this package is used afterwards to
// confirm the output is valid PostgreSQL and to list the unique constraints
// and indexes it declares.
package pgparser

import (
	"fmt"
	"strings"

	"github.com/antlr4-go/antlr/v4"
	parser "github.com/bytebase/parser/postgresql"

	"github.com/nsxbet/sql-uidx/pkg/types"
)

// ParseResult contains the parsed SQL statement tree and tokens.
type ParseResult struct {
	Tree   antlr.Tree
	Tokens *antlr.CommonTokenStream
}

// SyntaxError represents a SQL syntax error reported by the grammar.
type SyntaxError struct {
	Message  string
	Position *types.Position
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Position != nil {
		return fmt.Sprintf("syntax error at line %d, column %d: %s",
			e.Position.Line, e.Position.Column, e.Message)
	}
	return fmt.Sprintf("syntax error: %s", e.Message)
}

// Unwrap lets errors.Is match types.ErrSyntax.
func (e *SyntaxError) Unwrap() error {
	return types.ErrSyntax
}

// syntaxErrorListener keeps the first syntax error.
type syntaxErrorListener struct {
	*antlr.DefaultErrorListener
	err *SyntaxError
}

func (l *syntaxErrorListener) SyntaxError(
	_ antlr.Recognizer,
	_ interface{},
	line, column int,
	msg string,
	_ antlr.RecognitionException,
) {
	if l.err == nil {
		l.err = &SyntaxError{
			Message: msg,
			Position: &types.Position{
				Line:   int32(line),
				Column: int32(column + 1),
			},
		}
	}
}

// ParsePostgreSQL parses a PostgreSQL script and returns the parse tree.
//
// Example:
//
//	result, err := pgparser.ParsePostgreSQL("CREATE TABLE users (id INT);")
//	if err != nil {
//	    // Handle syntax error
//	}
func ParsePostgreSQL(sql string) (*ParseResult, error) {
	lexer := parser.NewPostgreSQLLexer(antlr.NewInputStream(sql))
	lexerErrors := &syntaxErrorListener{DefaultErrorListener: antlr.NewDefaultErrorListener()}
	lexer.RemoveErrorListeners()
	lexer.AddErrorListener(lexerErrors)

	stream := antlr.NewCommonTokenStream(lexer, antlr.TokenDefaultChannel)

	p := parser.NewPostgreSQLParser(stream)
	p.BuildParseTrees = true
	parserErrors := &syntaxErrorListener{DefaultErrorListener: antlr.NewDefaultErrorListener()}
	p.RemoveErrorListeners()
	p.AddErrorListener(parserErrors)

	tree := p.Root()

	if lexerErrors.err != nil {
		return nil, lexerErrors.err
	}
	if parserErrors.err != nil {
		return nil, parserErrors.err
	}
	if tree == nil {
		return nil, &SyntaxError{Message: "failed to parse SQL statement"}
	}

	return &ParseResult{
		Tree:   tree,
		Tokens: stream,
	}, nil
}

// NormalizePostgreSQLQualifiedName normalizes a qualified name (schema.table).
// Returns a slice of name parts (e.g., ["schema", "table"]).
func NormalizePostgreSQLQualifiedName(ctx parser.IQualified_nameContext) []string {
	if ctx == nil {
		return []string{}
	}

	res := []string{NormalizePostgreSQLColid(ctx.Colid())}
	if ctx.Indirection() != nil {
		for _, el := range ctx.Indirection().AllIndirection_el() {
			res = append(res, normalizeIndirectionEl(el))
		}
	}
	return res
}

func normalizeIndirectionEl(ctx parser.IIndirection_elContext) string {
	if ctx == nil {
		return ""
	}
	if ctx.DOT() != nil {
		if ctx.STAR() != nil {
			return "*"
		}
		if ctx.Attr_name() == nil {
			return ""
		}
		label := ctx.Attr_name().Collabel()
		if label != nil && label.Identifier() != nil {
			return normalizeIdentifier(label.Identifier())
		}
		return strings.ToLower(ctx.Attr_name().GetText())
	}
	return ctx.GetText()
}

// NormalizePostgreSQLColid normalizes a column identifier.
func NormalizePostgreSQLColid(ctx parser.IColidContext) string {
	if ctx == nil {
		return ""
	}
	if ctx.Identifier() != nil {
		return normalizeIdentifier(ctx.Identifier())
	}
	// keywords used as names
	return strings.ToLower(ctx.GetText())
}

// NormalizePostgreSQLName normalizes a name context.
func NormalizePostgreSQLName(ctx parser.INameContext) string {
	if ctx == nil || ctx.Colid() == nil {
		return ""
	}
	return NormalizePostgreSQLColid(ctx.Colid())
}

// normalizeIdentifier folds unquoted identifiers to lower case and unquotes
// quoted ones.
func normalizeIdentifier(ctx parser.IIdentifierContext) string {
	if ctx == nil {
		return ""
	}
	if ctx.QuotedIdentifier() != nil {
		return unquoteIdentifier(ctx.QuotedIdentifier().GetText())
	}
	if ctx.UnicodeQuotedIdentifier() != nil {
		text := ctx.UnicodeQuotedIdentifier().GetText()
		if strings.HasPrefix(text, `U&"`) {
			return unquoteIdentifier(text[2:])
		}
		return text
	}
	return strings.ToLower(ctx.GetText())
}

func unquoteIdentifier(s string) string {
	if len(s) < 2 {
		return s
	}
	return strings.ReplaceAll(s[1:len(s)-1], `""`, `"`)
}
