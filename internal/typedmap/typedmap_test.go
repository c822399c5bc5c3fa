package typedmap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LookupAndContains(t *testing.T) {
	m, err := New(P("int", "%d"), P("float64", "%f"), P("string", "%s"))
	require.NoError(t, err)

	v, err := m.Lookup("float64")
	require.NoError(t, err)
	assert.Equal(t, "%f", v)

	assert.True(t, m.Contains("int"))
	assert.False(t, m.Contains("int64"))
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, []string{"int", "float64", "string"}, m.Keys())
}

func TestNew_DuplicateKey(t *testing.T) {
	m, err := New(P("int", "%d"), P("int", "%x"))
	require.Error(t, err)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrDuplicateKey)

	var dup *DuplicateKeyError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "int", dup.Key)
	assert.Equal(t, 0, dup.First)
	assert.Equal(t, 1, dup.Second)
}

func TestLookup_Unresolved(t *testing.T) {
	m := MustNew(P('d', "int"))

	v, err := m.Lookup('x')
	require.Error(t, err)
	assert.Empty(t, v)
	assert.ErrorIs(t, err, ErrUnresolvedKey)

	var unresolved *UnresolvedKeyError
	require.True(t, errors.As(err, &unresolved))
	assert.Equal(t, 'x', unresolved.Key)
	assert.Equal(t, []any{'d'}, unresolved.Known)
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustNew(P(1, "a"), P(1, "b"))
	})
}

func TestWith_BuildsNewMap(t *testing.T) {
	base := MustNew(P("int", "%d"))

	extended, err := base.With(P("bool", "%t"))
	require.NoError(t, err)

	assert.Equal(t, 1, base.Len(), "base map must not change")
	assert.Equal(t, []string{"int", "bool"}, extended.Keys())

	_, err = base.With(P("int", "%v"))
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestAll_InsertionOrder(t *testing.T) {
	m := MustNew(P("c", 3), P("a", 1), P("b", 2))

	var keys []string
	var values []int
	for k, v := range m.All() {
		keys = append(keys, k)
		values = append(values, v)
	}

	assert.Equal(t, []string{"c", "a", "b"}, keys)
	assert.Equal(t, []int{3, 1, 2}, values)
}

func TestNilMap(t *testing.T) {
	var m *Map[string, int]

	assert.False(t, m.Contains("x"))
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Keys())

	_, err := m.Lookup("x")
	assert.ErrorIs(t, err, ErrUnresolvedKey)
}
