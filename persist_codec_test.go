package megahal

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalBinaryRoundTrip(t *testing.T) {
	b := NewBrain(Config{Order: 3, Rand: rand.New(rand.NewSource(2))})
	_, err := b.Learn(sampleCorpus)
	require.NoError(t, err)

	data, err := b.MarshalBinary()
	require.NoError(t, err)

	loaded := NewBrain(Config{Rand: rand.New(rand.NewSource(2))})
	require.NoError(t, loaded.UnmarshalBinary(data))

	assert.Equal(t, b.Order(), loaded.Order())
	assert.Equal(t, b.VocabularySize(), loaded.VocabularySize())

	foxID, ok := b.symbols.Lookup("FOX")
	require.True(t, ok)
	loadedFoxID, ok := loaded.symbols.Lookup("FOX")
	require.True(t, ok)
	assert.Equal(t, foxID, loadedFoxID)

	assert.NotNil(t, loaded.trie.Forward.child(foxID))
}

func TestUnmarshalBinaryRejectsBadMagic(t *testing.T) {
	b := NewBrain(Config{})
	err := b.UnmarshalBinary([]byte("not a valid megahal brain file"))
	assert.Error(t, err)
}

func TestUnmarshalBinaryRejectsTruncatedData(t *testing.T) {
	b := NewBrain(Config{})
	err := b.UnmarshalBinary(magic[:])
	assert.Error(t, err)
}
