package megahal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/megahal/types"
)

func TestNewSymbolTableReservesSpecials(t *testing.T) {
	st := NewSymbolTable()
	assert.Equal(t, 2, st.Len())

	word, ok := st.WordOf(types.ErrorSymbol)
	require.True(t, ok)
	assert.Equal(t, "<ERROR>", word)

	word, ok = st.WordOf(types.FinSymbol)
	require.True(t, ok)
	assert.Equal(t, "<FIN>", word)
}

func TestInternIsIdempotent(t *testing.T) {
	st := NewSymbolTable()
	id1, err := st.Intern("HELLO")
	require.NoError(t, err)
	id2, err := st.Intern("HELLO")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
	assert.Equal(t, 3, st.Len())
}

func TestLookupUnknownWord(t *testing.T) {
	st := NewSymbolTable()
	_, ok := st.Lookup("NOPE")
	assert.False(t, ok)
}

func TestInternTruncatesOverlongWords(t *testing.T) {
	st := NewSymbolTable()
	long := make([]byte, types.MaxWordLen+50)
	for i := range long {
		long[i] = 'A'
	}
	id, err := st.Intern(string(long))
	require.NoError(t, err)
	word, ok := st.WordOf(id)
	require.True(t, ok)
	assert.Len(t, word, types.MaxWordLen)
}

func TestWordOfUnknownID(t *testing.T) {
	st := NewSymbolTable()
	_, ok := st.WordOf(types.SymbolID(9999))
	assert.False(t, ok)
}

func TestInternManyWordsStaySearchable(t *testing.T) {
	st := NewSymbolTable()
	words := []string{"THE", "QUICK", "BROWN", "FOX", "JUMPS", "OVER",
		"THE", "LAZY", "DOG"}
	ids := make(map[string]types.SymbolID)
	for _, w := range words {
		id, err := st.Intern(w)
		require.NoError(t, err)
		ids[w] = id
	}
	for w, id := range ids {
		got, ok := st.Lookup(w)
		require.True(t, ok)
		assert.Equal(t, id, got)
	}
}
