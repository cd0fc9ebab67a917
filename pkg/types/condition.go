package types

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind is the type of a condition value. It decides how the value is
// rendered as a SQL literal.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindLong
	KindShort
	KindFloat
	KindDouble
	KindDecimal
	KindBoolean
	KindNull
)

var kindNames = map[Kind]string{
	KindString:  "string",
	KindInteger: "integer",
	KindLong:    "long",
	KindShort:   "short",
	KindFloat:   "float",
	KindDouble:  "double",
	KindDecimal: "decimal",
	KindBoolean: "boolean",
	KindNull:    "null",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsNumeric reports whether values of this kind render as a bare number.
func (k Kind) IsNumeric() bool {
	switch k {
	case KindInteger, KindLong, KindShort, KindFloat, KindDouble, KindDecimal:
		return true
	}
	return false
}

// ParseKind resolves a kind by its name, case-insensitively. "int" and "bool"
// are accepted as aliases.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "int":
		return KindInteger, nil
	case "bool":
		return KindBoolean, nil
	}
	for k, v := range kindNames {
		if v == n {
			return k, nil
		}
	}
	return KindString, InvalidArgument("unknown value type %q", name)
}

// Value is a typed condition value. The zero Value is an empty string.
type Value struct {
	kind Kind
	text string
}

func String(s string) Value { return Value{kind: KindString, text: s} }

func Integer(i int32) Value { return Value{kind: KindInteger, text: strconv.FormatInt(int64(i), 10)} }

func Long(i int64) Value { return Value{kind: KindLong, text: strconv.FormatInt(i, 10)} }

func Short(i int16) Value { return Value{kind: KindShort, text: strconv.FormatInt(int64(i), 10)} }

func Float(f float32) Value {
	return Value{kind: KindFloat, text: strconv.FormatFloat(float64(f), 'f', -1, 32)}
}

func Double(f float64) Value {
	return Value{kind: KindDouble, text: strconv.FormatFloat(f, 'f', -1, 64)}
}

func Decimal(d decimal.Decimal) Value { return Value{kind: KindDecimal, text: d.String()} }

func Boolean(b bool) Value { return Value{kind: KindBoolean, text: strconv.FormatBool(b)} }

func Null() Value { return Value{kind: KindNull} }

// Kind returns the value kind.
func (v Value) Kind() Kind { return v.kind }

// Text returns the unquoted canonical text of the value. It is empty for null.
func (v Value) Text() string { return v.text }

// IsNull reports whether the value is SQL NULL.
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) String() string {
	if v.kind == KindNull {
		return "null"
	}
	return v.kind.String() + "(" + v.text + ")"
}

// ValueOf converts a Go value into a condition value.
func ValueOf(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case string:
		return String(t), nil
	case bool:
		return Boolean(t), nil
	case int16:
		return Short(t), nil
	case int32:
		return Integer(t), nil
	case int64:
		return Long(t), nil
	case int:
		if t >= math.MinInt32 && t <= math.MaxInt32 {
			return Integer(int32(t)), nil
		}
		return Long(int64(t)), nil
	case float32:
		return Float(t), nil
	case float64:
		return Double(t), nil
	case decimal.Decimal:
		return Decimal(t), nil
	}
	return Value{}, InvalidArgument("unsupported condition value %T", x)
}

// ParseTyped parses text as a value of the given kind.
func ParseTyped(kind Kind, text string) (Value, error) {
	text = strings.TrimSpace(text)
	switch kind {
	case KindString:
		return String(text), nil
	case KindNull:
		return Null(), nil
	case KindBoolean:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return Value{}, InvalidArgument("invalid boolean %q", text)
		}
		return Boolean(b), nil
	case KindShort, KindInteger, KindLong:
		bits := map[Kind]int{KindShort: 16, KindInteger: 32, KindLong: 64}[kind]
		i, err := strconv.ParseInt(text, 10, bits)
		if err != nil {
			return Value{}, InvalidArgument("invalid %s %q", kind, text)
		}
		return Value{kind: kind, text: strconv.FormatInt(i, 10)}, nil
	case KindFloat:
		f, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return Value{}, InvalidArgument("invalid float %q", text)
		}
		return Float(float32(f)), nil
	case KindDouble:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, InvalidArgument("invalid double %q", text)
		}
		return Double(f), nil
	case KindDecimal:
		d, err := decimal.NewFromString(text)
		if err != nil {
			return Value{}, InvalidArgument("invalid decimal %q", text)
		}
		return Decimal(d), nil
	}
	return Value{}, InvalidArgument("unknown value type %d", int(kind))
}

// ParseValue infers a value from untyped text such as a command line
// argument: null, true/false, integers, floats and 'quoted' strings are
// recognized, anything else is a string.
func ParseValue(text string) Value {
	s := strings.TrimSpace(text)
	switch strings.ToLower(s) {
	case "null":
		return Null()
	case "true":
		return Boolean(true)
	case "false":
		return Boolean(false)
	}
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return String(strings.ReplaceAll(s[1:len(s)-1], "''", "'"))
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		if i >= math.MinInt32 && i <= math.MaxInt32 {
			return Integer(int32(i))
		}
		return Long(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return Double(f)
	}
	return String(s)
}

// ConditionMap maps column names to values and keeps insertion order, so
// WHERE clauses render deterministically. The zero value is empty.
type ConditionMap struct {
	pairs *orderedmap.OrderedMap[string, Value]
}

// NewConditionMap creates an empty ConditionMap.
func NewConditionMap() *ConditionMap {
	return &ConditionMap{pairs: orderedmap.New[string, Value]()}
}

// Set adds or replaces a condition. Replacing keeps the original position.
func (m *ConditionMap) Set(column string, v Value) *ConditionMap {
	if m.pairs == nil {
		m.pairs = orderedmap.New[string, Value]()
	}
	m.pairs.Set(column, v)
	return m
}

// Get returns the value for column.
func (m *ConditionMap) Get(column string) (Value, bool) {
	if m == nil || m.pairs == nil {
		return Value{}, false
	}
	return m.pairs.Get(column)
}

// Len returns the number of conditions. A nil map is empty.
func (m *ConditionMap) Len() int {
	if m == nil || m.pairs == nil {
		return 0
	}
	return m.pairs.Len()
}

// Keys returns the column names in insertion order.
func (m *ConditionMap) Keys() []string {
	var keys []string
	m.Each(func(column string, _ Value) { keys = append(keys, column) })
	return keys
}

// Each calls fn for every condition in insertion order.
func (m *ConditionMap) Each(fn func(column string, v Value)) {
	if m == nil || m.pairs == nil {
		return
	}
	for pair := m.pairs.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Clone returns an independent copy.
func (m *ConditionMap) Clone() *ConditionMap {
	c := NewConditionMap()
	m.Each(func(k string, v Value) { c.Set(k, v) })
	return c
}
