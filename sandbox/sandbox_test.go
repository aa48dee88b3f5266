package sandbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/mshellx/ast"
)

func mustParseArgs(t *testing.T, src string) []ast.Node {
	t.Helper()
	n, err := ast.Parse(src)
	require.NoError(t, err)
	call := n.(*ast.CallExpr)
	return call.Args
}

func TestEvaluateObjectIDHex(t *testing.T) {
	args := mustParseArgs(t, `ObjectId('5ab901c29ee65f5c8550c5b9')`)
	v, err := Evaluate("ObjectId", args)
	require.NoError(t, err)
	oid := v.(ObjectIDValue)
	assert.Equal(t, "5ab901c29ee65f5c8550c5b9", oid.ID.Hex())
}

func TestEvaluateObjectIDInvalidHex(t *testing.T) {
	args := mustParseArgs(t, `ObjectId('not-hex')`)
	_, err := Evaluate("ObjectId", args)
	assert.Error(t, err)
}

func TestEvaluateBinaryWithSubtype(t *testing.T) {
	args := mustParseArgs(t, `Binary("abc", 4)`)
	v, err := Evaluate("Binary", args)
	require.NoError(t, err)
	bin := v.(BinaryValue)
	assert.Equal(t, byte(4), bin.Bin.Subtype)
	assert.Equal(t, []byte("abc"), bin.Bin.Data)
}

func TestEvaluateLongFromString(t *testing.T) {
	args := mustParseArgs(t, `NumberLong("12345")`)
	v, err := Evaluate("NumberLong", args)
	require.NoError(t, err)
	assert.Equal(t, LongValue(12345), v)
}

func TestEvaluateLongFromBits(t *testing.T) {
	args := mustParseArgs(t, `Long(1, 0)`)
	v, err := Evaluate("Long", args)
	require.NoError(t, err)
	assert.Equal(t, LongValue(1), v)
}

func TestEvaluateDecimal128(t *testing.T) {
	args := mustParseArgs(t, `Decimal128("1.5")`)
	v, err := Evaluate("Decimal128", args)
	require.NoError(t, err)
	assert.Equal(t, "1.5", v.(DecimalValue).Dec.String())
}

func TestEvaluateDecimal128Malformed(t *testing.T) {
	args := mustParseArgs(t, `Decimal128("not-a-number")`)
	_, err := Evaluate("Decimal128", args)
	assert.Error(t, err)
}

func TestEvaluateLongTwoArgumentBitPacking(t *testing.T) {
	args := mustParseArgs(t, `Long(0, 1)`)
	v, err := Evaluate("Long", args)
	require.NoError(t, err)
	assert.Equal(t, LongValue(1<<32), v)
}

func TestEvaluateTimestamp(t *testing.T) {
	args := mustParseArgs(t, `Timestamp(100, 1)`)
	v, err := Evaluate("Timestamp", args)
	require.NoError(t, err)
	ts := v.(TimestampValue)
	assert.Equal(t, uint32(100), ts.TS.T)
	assert.Equal(t, uint32(1), ts.TS.I)
}

func TestEvaluateTimestampWrongArity(t *testing.T) {
	args := mustParseArgs(t, `Timestamp(1)`)
	_, err := Evaluate("Timestamp", args)
	assert.Error(t, err)
}

func TestEvaluateDateWithComponents(t *testing.T) {
	args := mustParseArgs(t, `Date(2020, 0, 15, 10, 30, 0, 0)`)
	v, err := Evaluate("Date", args)
	require.NoError(t, err)
	d := v.(DateValue)
	assert.Equal(t, 2020, d.Year())
	assert.Equal(t, 0, d.Month())
	assert.Equal(t, 15, d.Day())
	assert.Equal(t, 10, d.Hour())
	assert.Equal(t, 30, d.Minute())
}

func TestEvaluateDateFromISOString(t *testing.T) {
	args := mustParseArgs(t, `ISODate("2020-01-15T10:30:00Z")`)
	v, err := Evaluate("ISODate", args)
	require.NoError(t, err)
	d := v.(DateValue)
	assert.Equal(t, 2020, d.Year())
	assert.Equal(t, 0, d.Month())
	assert.Equal(t, 15, d.Day())
}

func TestEvaluateRegexConstructor(t *testing.T) {
	args := mustParseArgs(t, `RegExp("foo", "gi")`)
	v, err := Evaluate("RegExp", args)
	require.NoError(t, err)
	re := v.(RegexValue)
	assert.Equal(t, "foo", re.Source)
	assert.Equal(t, "gi", re.Flags)
}

func TestEvaluateUnsupportedConstructor(t *testing.T) {
	_, err := Evaluate("MaxKey", nil)
	assert.Error(t, err)
}
