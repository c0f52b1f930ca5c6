package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID_IsValid(t *testing.T) {
	id := NewID()
	assert.True(t, IsValidID(id))
	assert.NotEqual(t, id, NewID())
}

func TestIsValidID(t *testing.T) {
	assert.True(t, IsValidID("00000000-0000-0000-0000-000000000000"))
	assert.False(t, IsValidID(""))
	assert.False(t, IsValidID("42"))
}

func TestOptionalID(t *testing.T) {
	id, ok := OptionalID("  ")
	assert.True(t, ok)
	assert.Empty(t, id)

	id, ok = OptionalID(" 11111111-1111-1111-1111-11111111111A ")
	assert.True(t, ok)
	assert.Equal(t, "11111111-1111-1111-1111-11111111111a", id)

	_, ok = OptionalID("alice")
	assert.False(t, ok)
}

func TestUniqueIDs(t *testing.T) {
	got := UniqueIDs([]string{"B", "a", " b ", "", "c", "a"})
	assert.Equal(t, []string{"b", "a", "c"}, got)
	assert.Empty(t, UniqueIDs(nil))
	assert.NotNil(t, UniqueIDs(nil))
}
