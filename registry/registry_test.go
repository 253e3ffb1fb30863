package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/barmetric/registry"
)

func TestNew_Bijection(t *testing.T) {
	r, err := registry.New([]registry.Entry{
		{ID: "10", Name: "gin"},
		{ID: "4", Name: ""},
		{ID: "7", Name: "lime"},
	})
	require.NoError(t, err)
	require.Equal(t, 3, r.Len())

	for i := 0; i < r.Len(); i++ {
		j, ok := r.Index(r.ID(i))
		require.True(t, ok)
		assert.Equal(t, i, j)
	}
	assert.Equal(t, "4", r.Name(1), "empty name falls back to id")
	assert.Equal(t, []string{"10", "4", "7"}, r.IDs())

	_, ok := r.Index("missing")
	assert.False(t, ok)
}

func TestNew_Rejects(t *testing.T) {
	_, err := registry.New([]registry.Entry{{ID: "1"}, {ID: "1"}})
	assert.ErrorIs(t, err, registry.ErrDuplicateID)

	_, err = registry.New([]registry.Entry{{ID: ""}})
	assert.ErrorIs(t, err, registry.ErrEmptyID)
}

func TestEntriesIsACopy(t *testing.T) {
	r, err := registry.New([]registry.Entry{{ID: "1", Name: "a"}})
	require.NoError(t, err)
	e := r.Entries()
	e[0].Name = "changed"
	assert.Equal(t, "a", r.Name(0))
}

func TestValidate(t *testing.T) {
	r, err := registry.New([]registry.Entry{{ID: "1"}, {ID: "2"}})
	require.NoError(t, err)
	assert.NoError(t, r.Validate(2))
	assert.ErrorIs(t, r.Validate(3), registry.ErrSizeMismatch)
}
