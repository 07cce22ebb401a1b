package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifiers_ReuseReleased(t *testing.T) {
	ids := NewIdentifiers(4)

	a := ids.Acquire("a")
	b := ids.Acquire("b")
	c := ids.Acquire("c")
	assert.Equal(t, []uint32{1, 2, 3}, []uint32{a, b, c})
	assert.Equal(t, 3, ids.InUse())

	require.NoError(t, ids.Release(b))
	assert.Nil(t, ids.Owner(b))
	assert.Equal(t, b, ids.Acquire("d"))
	assert.Equal(t, "d", ids.Owner(b))
}

func TestIdentifiers_ReleaseErrors(t *testing.T) {
	ids := NewIdentifiers(0)
	assert.Error(t, ids.Release(InvalidID))
	assert.Error(t, ids.Release(7))

	id := ids.Acquire(1)
	require.NoError(t, ids.Release(id))
	assert.Error(t, ids.Release(id), "double release")
	assert.Zero(t, ids.InUse())
}
