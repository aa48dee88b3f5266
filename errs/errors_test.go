package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArityMessage(t *testing.T) {
	err := Arity(4, "Timestamp", 1, 2, 2)
	require.Error(t, err)
	assert.Equal(t, KindArity, err.Kind)
	assert.Contains(t, err.Error(), "Timestamp expects 2 argument(s), got 1")
}

func TestArityRangeMessage(t *testing.T) {
	err := Arity(0, "Code", 3, 1, 2)
	assert.Contains(t, err.Error(), "Code expects 1-2 argument(s), got 3")
}

func TestTypeMismatchMessage(t *testing.T) {
	err := TypeMismatch(10, "Timestamp", 0, []string{"_integer"}, "_string")
	assert.Equal(t, KindType, err.Kind)
	assert.Contains(t, err.Error(), "argument 0")
	assert.Contains(t, err.Error(), "_string")
}

func TestGenericWrapsCause(t *testing.T) {
	cause := errors.New("boom")
	err := Generic(0, "sandbox evaluation failed", cause)
	assert.Equal(t, KindGeneric, err.Kind)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "boom")
}

func TestIsHelper(t *testing.T) {
	err := Reference(0, "Foo")
	assert.True(t, Is(err, KindReference))
	assert.False(t, Is(err, KindType))
	assert.False(t, Is(errors.New("plain"), KindReference))
}
