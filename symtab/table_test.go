package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKnownIdentifiers(t *testing.T) {
	table := New()
	for _, name := range []string{
		"Code", "ObjectId", "Binary", "Double", "Long", "Int32", "Number",
		"MaxKey", "MinKey", "Symbol", "Timestamp", "DBRef", "BSONRegExp",
		"Decimal128", "Date", "RegExp", "Object",
		"NumberInt", "NumberLong", "NumberDecimal", "ISODate",
	} {
		ty, ok := table.Lookup(name)
		require.Truef(t, ok, "expected %s to be recognized", name)
		assert.NotNil(t, ty)
	}
}

func TestLookupUnknownIdentifier(t *testing.T) {
	table := New()
	_, ok := table.Lookup("NotARealThing")
	assert.False(t, ok)
}

func TestTimestampArity(t *testing.T) {
	table := New()
	ts, _ := table.Lookup("Timestamp")
	require.Len(t, ts.Args, 2)
	assert.False(t, ts.Args[0].Optional)
	assert.False(t, ts.Args[1].Optional)
}

func TestCodeOptionalSecondArg(t *testing.T) {
	table := New()
	code, _ := table.Lookup("Code")
	require.Len(t, code.Args, 2)
	assert.True(t, code.Args[1].Optional)
	assert.True(t, code.Args[1].AcceptsType(Object))
}

func TestNumericSlotExpandsToLeaves(t *testing.T) {
	slot := RequiredSlot(Numeric)
	for _, leaf := range []ID{Integer, Decimal, Hex, Octal} {
		assert.True(t, slot.AcceptsType(leaf))
	}
	assert.False(t, slot.AcceptsType(String))
}

func TestChainedAttributeResolution(t *testing.T) {
	table := New()
	long, _ := table.Lookup("NumberLong")
	toString, ok := long.Instance.AttrType("toString")
	require.True(t, ok)
	assert.Equal(t, Function, toString.Callable)
}

func TestObjectCreateAttribute(t *testing.T) {
	table := New()
	obj, _ := table.Lookup("Object")
	create, ok := obj.AttrType("create")
	require.True(t, ok)
	assert.Equal(t, Function, create.Callable)
	require.Len(t, create.Args, 1)
}
