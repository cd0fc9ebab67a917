package types

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		name string
		in   string
		kind Kind
		text string
	}{
		{name: "null", in: "NULL", kind: KindNull, text: ""},
		{name: "true", in: "true", kind: KindBoolean, text: "true"},
		{name: "false mixed case", in: "False", kind: KindBoolean, text: "false"},
		{name: "integer", in: "42", kind: KindInteger, text: "42"},
		{name: "negative integer", in: "-7", kind: KindInteger, text: "-7"},
		{name: "long", in: "3000000000", kind: KindLong, text: "3000000000"},
		{name: "double", in: "1.5", kind: KindDouble, text: "1.5"},
		{name: "quoted string", in: "'active'", kind: KindString, text: "active"},
		{name: "quoted with escaped quote", in: "'it''s'", kind: KindString, text: "it's"},
		{name: "bare string", in: "active", kind: KindString, text: "active"},
		{name: "bare string is trimmed", in: " active\t", kind: KindString, text: "active"},
		{name: "quoted number stays string", in: "'1'", kind: KindString, text: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ParseValue(tt.in)
			assert.Equal(t, tt.kind, v.Kind())
			assert.Equal(t, tt.text, v.Text())
		})
	}
}

func TestParseTyped(t *testing.T) {
	v, err := ParseTyped(KindDecimal, " 1.50 ")
	require.NoError(t, err)
	assert.Equal(t, KindDecimal, v.Kind())
	assert.Equal(t, "1.5", v.Text())

	v, err = ParseTyped(KindShort, "12")
	require.NoError(t, err)
	assert.Equal(t, KindShort, v.Kind())

	_, err = ParseTyped(KindShort, "70000")
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = ParseTyped(KindBoolean, "maybe")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Decimal")
	require.NoError(t, err)
	assert.Equal(t, KindDecimal, k)

	k, err = ParseKind("bool")
	require.NoError(t, err)
	assert.Equal(t, KindBoolean, k)

	_, err = ParseKind("timestamp")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestValueOf(t *testing.T) {
	tests := []struct {
		in   any
		kind Kind
		text string
	}{
		{in: nil, kind: KindNull},
		{in: "x", kind: KindString, text: "x"},
		{in: true, kind: KindBoolean, text: "true"},
		{in: int16(3), kind: KindShort, text: "3"},
		{in: int32(3), kind: KindInteger, text: "3"},
		{in: int64(3), kind: KindLong, text: "3"},
		{in: 3, kind: KindInteger, text: "3"},
		{in: float32(0.5), kind: KindFloat, text: "0.5"},
		{in: 2.25, kind: KindDouble, text: "2.25"},
		{in: decimal.RequireFromString("10.10"), kind: KindDecimal, text: "10.1"},
	}

	for _, tt := range tests {
		v, err := ValueOf(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.kind, v.Kind(), "%v", tt.in)
		assert.Equal(t, tt.text, v.Text(), "%v", tt.in)
	}

	_, err := ValueOf([]int{1})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestConditionMapOrder(t *testing.T) {
	m := NewConditionMap().
		Set("is_deleted", Boolean(false)).
		Set("tenant", String("a")).
		Set("archived_at", Null())

	assert.Equal(t, []string{"is_deleted", "tenant", "archived_at"}, m.Keys())

	m.Set("is_deleted", Boolean(true))
	assert.Equal(t, []string{"is_deleted", "tenant", "archived_at"}, m.Keys())
	v, ok := m.Get("is_deleted")
	require.True(t, ok)
	assert.Equal(t, "true", v.Text())

	c := m.Clone()
	c.Set("extra", Integer(1))
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 4, c.Len())

	var empty *ConditionMap
	assert.Equal(t, 0, empty.Len())
	assert.Nil(t, empty.Keys())

	var zero ConditionMap
	zero.Set("b", Integer(2)).Set("a", Integer(1))
	assert.Equal(t, []string{"b", "a"}, zero.Keys())
}

func TestSyntaxErrorPosition(t *testing.T) {
	text := "CREATE TABLE a\r\n(id int,\nname text"
	err := NewSyntaxError(text, len(text), "missing %s", ")")
	require.NotNil(t, err.Position)
	assert.Equal(t, int32(3), err.Position.Line)
	assert.Equal(t, int32(10), err.Position.Column)
	assert.True(t, errors.Is(err, ErrSyntax))
	assert.Contains(t, err.Error(), "line 3, column 10: missing )")
}
