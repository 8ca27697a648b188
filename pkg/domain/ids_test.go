package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePersonID(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParsePersonID("")
		require.Error(t, err)
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParsePersonID("not-a-uuid")
		require.Error(t, err)
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		valid := uuid.New()
		id, err := ParsePersonID(valid.String())
		require.NoError(t, err)
		assert.Equal(t, PersonID(valid), id)
	})

	t.Run("round-trips through String", func(t *testing.T) {
		id := NewPersonID()
		parsed, err := ParsePersonID(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
	})
}

func TestIsNil(t *testing.T) {
	assert.True(t, PersonID{}.IsNil())
	assert.True(t, TributeID{}.IsNil())
	assert.True(t, MemorialID{}.IsNil())
	assert.False(t, NewPersonID().IsNil())
	assert.False(t, NewTributeID().IsNil())
}

// The typed wrappers keep a PersonID from being passed where a TributeID is
// expected; that check happens at compile time. Verify distinct values here.
func TestTypeDistinction(t *testing.T) {
	personID := PersonID(uuid.New())
	tributeID := TributeID(uuid.New())
	assert.NotEqual(t, uuid.UUID(personID), uuid.UUID(tributeID))
}
