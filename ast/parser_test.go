package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObjectIdCall(t *testing.T) {
	n, err := Parse(`ObjectId('5ab901c29ee65f5c8550c5b9')`)
	require.NoError(t, err)
	call, ok := n.(*CallExpr)
	require.True(t, ok)
	ident, ok := call.Callee.(*Identifier)
	require.True(t, ok)
	assert.Equal(t, "ObjectId", ident.Name)
	require.Len(t, call.Args, 1)
	lit := call.Args[0].(*Literal)
	assert.Equal(t, KindString, lit.Kind())
	assert.Equal(t, "5ab901c29ee65f5c8550c5b9", lit.Value)
}

func TestParseNewWithObjectLiteralArg(t *testing.T) {
	n, err := Parse(`new Code("return 1", { x: 1 })`)
	require.NoError(t, err)
	newExpr, ok := n.(*NewExpr)
	require.True(t, ok)
	require.Len(t, newExpr.Args, 2)
	obj, ok := newExpr.Args[1].(*ObjectLiteral)
	require.True(t, ok)
	require.Len(t, obj.Props, 1)
	assert.Equal(t, "x", obj.Props[0].Key)
	lit := obj.Props[0].Value.(*Literal)
	assert.Equal(t, KindInteger, lit.Kind())
	assert.Equal(t, "1", lit.Value)
}

func TestParseTimestampTwoArgs(t *testing.T) {
	n, err := Parse(`Timestamp(100, 1)`)
	require.NoError(t, err)
	call := n.(*CallExpr)
	require.Len(t, call.Args, 2)
}

func TestParseRegexLiteralWithFlags(t *testing.T) {
	n, err := Parse(`/foo/gi`)
	require.NoError(t, err)
	lit, ok := n.(*Literal)
	require.True(t, ok)
	assert.Equal(t, KindRegex, lit.Kind())
	assert.Equal(t, "foo", lit.Value)
	assert.Equal(t, "gi", lit.Flags)
}

func TestParseNumberLongChainedToString(t *testing.T) {
	n, err := Parse(`NumberLong("12345").toString(10)`)
	require.NoError(t, err)
	call, ok := n.(*CallExpr)
	require.True(t, ok)
	member, ok := call.Callee.(*MemberExpr)
	require.True(t, ok)
	assert.Equal(t, "toString", member.Property)
	inner, ok := member.Object.(*CallExpr)
	require.True(t, ok)
	ident := inner.Callee.(*Identifier)
	assert.Equal(t, "NumberLong", ident.Name)
}

func TestParseBinaryCallTwoArgs(t *testing.T) {
	n, err := Parse(`Binary("abc", 4)`)
	require.NoError(t, err)
	call := n.(*CallExpr)
	require.Len(t, call.Args, 2)
	assert.Equal(t, KindInteger, call.Args[1].(*Literal).Kind())
}

func TestParseArrayLiteralWithElision(t *testing.T) {
	n, err := Parse(`[1, , 3]`)
	require.NoError(t, err)
	arr := n.(*ArrayLiteral)
	require.Len(t, arr.Elements, 3)
	_, ok := arr.Elements[1].(*Elision)
	assert.True(t, ok)
}

func TestClassifyNumberForms(t *testing.T) {
	cases := map[string]Kind{
		"0x1F":  KindHex,
		"0o17":  KindOctal,
		"0755":  KindOctal,
		"3.14":  KindDecimal,
		"1e10":  KindDecimal,
		"42":    KindInteger,
		"0":     KindInteger,
	}
	for raw, want := range cases {
		assert.Equalf(t, want, classifyNumber(raw), "raw=%s", raw)
	}
}

func TestParseObjectCreateMemberCall(t *testing.T) {
	n, err := Parse(`Object.create({ a: 1 })`)
	require.NoError(t, err)
	call := n.(*CallExpr)
	member := call.Callee.(*MemberExpr)
	assert.Equal(t, "create", member.Property)
	ident := member.Object.(*Identifier)
	assert.Equal(t, "Object", ident.Name)
}

func TestParseUnknownIdentifierStillParses(t *testing.T) {
	// Reference errors are a walker-level concept (spec.md §7); the parser
	// has no symbol table and must accept any identifier syntactically.
	n, err := Parse(`Bogus(1)`)
	require.NoError(t, err)
	_, ok := n.(*CallExpr)
	assert.True(t, ok)
}

func TestParseTrailingInputIsError(t *testing.T) {
	_, err := Parse(`ObjectId('x') extra`)
	assert.Error(t, err)
}
