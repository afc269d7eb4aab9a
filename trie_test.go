package megahal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/megahal/types"
)

func TestTrieNodeObserveTracksUsageAndCount(t *testing.T) {
	root := newTrieNode(types.ErrorSymbol)
	child := root.observe(types.SymbolID(5))
	assert.EqualValues(t, 1, child.count)
	assert.EqualValues(t, 1, root.usage)

	root.observe(types.SymbolID(5))
	assert.EqualValues(t, 2, child.count)
	assert.EqualValues(t, 2, root.usage)
}

func TestTrieNodeUsageEqualsSumOfChildCounts(t *testing.T) {
	root := newTrieNode(types.ErrorSymbol)
	for i := 0; i < 20; i++ {
		root.observe(types.SymbolID(i % 3))
	}
	var sum uint32
	for _, c := range root.children() {
		sum += uint32(c.count)
	}
	assert.Equal(t, root.usage, sum)
}

func TestTrieNodeMigratesArrayToMapPastThreshold(t *testing.T) {
	root := newTrieNode(types.ErrorSymbol)
	for i := 0; i < trieNodeArrayMax+5; i++ {
		root.observe(types.SymbolID(i + 10))
	}
	assert.Nil(t, root.childArr)
	assert.NotNil(t, root.childMap)
	assert.Equal(t, trieNodeArrayMax+5, root.numChildren())
}

func TestTrieNodeCountSaturates(t *testing.T) {
	root := newTrieNode(types.ErrorSymbol)
	child := root.upsertChild(types.SymbolID(1))
	child.count = types.MaxCount
	root.usage = uint32(types.MaxCount)

	root.observe(types.SymbolID(1))
	assert.Equal(t, types.MaxCount, child.count)
	assert.EqualValues(t, types.MaxCount, root.usage)
}

func TestContextWalkFollowsObservedPath(t *testing.T) {
	root := newTrieNode(types.ErrorSymbol)
	ctx := newContext(2, root)
	ctx.observeWalk(2, types.SymbolID(7))
	ctx.observeWalk(2, types.SymbolID(8))

	require.NotNil(t, ctx[1])
	assert.Equal(t, types.SymbolID(8), ctx[1].symbol)

	read := newContext(2, root)
	read.walk(2, types.SymbolID(7))
	read.walk(2, types.SymbolID(8))
	assert.Equal(t, ctx[1], read[1])
	assert.Equal(t, ctx[2], read[2])
}

func TestContextWalkMissingPathIsNil(t *testing.T) {
	root := newTrieNode(types.ErrorSymbol)
	ctx := newContext(2, root)
	ctx.walk(2, types.SymbolID(99))
	assert.Nil(t, ctx[1])
	assert.Nil(t, ctx[2])
}

func TestContextDeepestFindsDeepestNonNil(t *testing.T) {
	root := newTrieNode(types.ErrorSymbol)
	ctx := newContext(3, root)
	ctx.observeWalk(3, types.SymbolID(1))
	ctx.observeWalk(3, types.SymbolID(2))

	node, depth := ctx.deepest(3)
	require.NotNil(t, node)
	assert.Equal(t, 2, depth)
	assert.Equal(t, types.SymbolID(2), node.symbol)
}
