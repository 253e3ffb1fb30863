package tree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A forest cannot be produced by Build (the synthetic root links every path),
// so the disconnected case is exercised on a hand-assembled arena.
func TestDistanceNoCommonAncestor(t *testing.T) {
	f := &Tree{
		nodes: []Node{
			{ID: "1", Parent: -1, Children: []int{1}},
			{ID: "2", Parent: 0, Weight: 1, Depth: 1},
			{ID: "3", Parent: -1},
		},
		index: map[string]int{"1": 0, "2": 1, "3": 2},
	}

	_, err := f.Distance("2", "3")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoCommonAncestor)

	var nca *NoCommonAncestorError
	require.True(t, errors.As(err, &nca))
	assert.Equal(t, "2", nca.U)
	assert.Equal(t, "3", nca.V)
}
