package megahal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/megahal/types"
)

func TestLearnShortLineIsNoOp(t *testing.T) {
	b := NewBrain(Config{Order: 5})
	result, err := b.Learn("hi")
	require.NoError(t, err)
	assert.Equal(t, 0, result.TokensLearned)
	assert.Equal(t, 0, result.LinesLearned)
	assert.Equal(t, 1, result.LinesProcessed)
	assert.Equal(t, 2, b.VocabularySize())
}

func TestLearnSkipsBlankAndCommentLines(t *testing.T) {
	b := NewBrain(Config{Order: 2})
	result, err := b.Learn("\n# a comment\n   \n")
	require.NoError(t, err)
	assert.Equal(t, 0, result.LinesLearned)
	assert.Equal(t, 3, result.LinesProcessed)
}

func TestLearnBuildsBothDirections(t *testing.T) {
	b := NewBrain(Config{Order: 2})
	_, err := b.Learn("the quick brown fox jumps.")
	require.NoError(t, err)
	assert.Greater(t, b.VocabularySize(), 2)

	theID, ok := b.symbols.Lookup("THE")
	require.True(t, ok)
	quickID, ok := b.symbols.Lookup("QUICK")
	require.True(t, ok)

	assert.NotNil(t, b.trie.Forward.child(theID))
	assert.NotNil(t, b.trie.Backward.child(quickID))
}

func TestLearnIsMonotonicInVocabularySize(t *testing.T) {
	b := NewBrain(Config{Order: 2})
	_, err := b.Learn("hello world, how are you.")
	require.NoError(t, err)
	first := b.VocabularySize()

	_, err = b.Learn("hello world, how are you.")
	require.NoError(t, err)
	second := b.VocabularySize()

	assert.Equal(t, first, second)
}

func TestLearnRepeatedLineAccumulatesCount(t *testing.T) {
	b := NewBrain(Config{Order: 1})
	for i := 0; i < 5; i++ {
		_, err := b.Learn("a b.")
		require.NoError(t, err)
	}
	aID, ok := b.symbols.Lookup("A")
	require.True(t, ok)
	child := b.trie.Forward.child(aID)
	require.NotNil(t, child)
	assert.EqualValues(t, 5, child.count)
}

func TestLearnNeverProducesErrorSymbolInTrie(t *testing.T) {
	b := NewBrain(Config{Order: 2})
	_, err := b.Learn("one two three four.")
	require.NoError(t, err)
	for _, c := range b.trie.Forward.children() {
		assert.NotEqual(t, types.ErrorSymbol, c.symbol)
	}
}
