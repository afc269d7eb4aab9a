package megahal

import (
	"fmt"
	"sort"

	lru "github.com/hashicorp/golang-lru"
	"github.com/wbrown/megahal/types"
)

// SYMBOL_LRU_SZ is the number of recently interned/looked-up words kept
// warm in the ARC cache in front of the sorted-slice binary search.
const SYMBOL_LRU_SZ = 65536

// ErrSymbolSpaceExhausted is returned by Intern once the 16-bit symbol
// space (65536 IDs, two of which are reserved) is full.
var ErrSymbolSpaceExhausted = fmt.Errorf("megahal: symbol space exhausted")

// SymbolTable interns uppercased byte-strings to stable SymbolIDs.
// Insertion order defines the ID; 0 and 1 are pre-reserved for <ERROR>
// and <FIN>. Lookup is O(log n) via a word-sorted index, fronted by an
// ARC cache for hot words.
type SymbolTable struct {
	// words[id] is the word that was interned with that id.
	words []string
	// order holds every id, sorted by words[id], for binary search.
	order []types.SymbolID

	cache *lru.ARCCache

	LruHits   int
	LruMisses int
}

// NewSymbolTable returns a table with <ERROR> (0) and <FIN> (1) already
// reserved.
func NewSymbolTable() *SymbolTable {
	cache, _ := lru.NewARC(SYMBOL_LRU_SZ)
	st := &SymbolTable{
		words: []string{"<ERROR>", "<FIN>"},
		order: []types.SymbolID{types.ErrorSymbol, types.FinSymbol},
		cache: cache,
	}
	return st
}

// search returns the position in st.order where word would sit, and
// whether it is already present there.
func (st *SymbolTable) search(word string) (pos int, found bool) {
	pos = sort.Search(len(st.order), func(i int) bool {
		return st.words[st.order[i]] >= word
	})
	if pos < len(st.order) && st.words[st.order[pos]] == word {
		return pos, true
	}
	return pos, false
}

// Lookup returns the SymbolID for word, or (types.ErrorSymbol, false) if
// it has never been interned.
func (st *SymbolTable) Lookup(word string) (types.SymbolID, bool) {
	if cached, ok := st.cache.Get(word); ok {
		st.LruHits++
		return cached.(types.SymbolID), true
	}
	st.LruMisses++
	pos, found := st.search(word)
	if !found {
		return types.ErrorSymbol, false
	}
	id := st.order[pos]
	st.cache.Add(word, id)
	return id, true
}

// Intern returns the existing SymbolID for word, or assigns and returns
// the next available one. Words longer than types.MaxWordLen are
// truncated before interning.
func (st *SymbolTable) Intern(word string) (types.SymbolID, error) {
	if len(word) > types.MaxWordLen {
		word = word[:types.MaxWordLen]
	}
	if id, ok := st.Lookup(word); ok {
		return id, nil
	}
	if len(st.words) > int(^uint16(0)) {
		return types.ErrorSymbol, ErrSymbolSpaceExhausted
	}
	id := types.SymbolID(len(st.words))
	st.words = append(st.words, word)
	pos, _ := st.search(word)
	st.order = insertSymbolAt(st.order, pos, id)
	st.cache.Add(word, id)
	return id, nil
}

// WordOf returns the word interned under id, or ("", false) if id was
// never assigned.
func (st *SymbolTable) WordOf(id types.SymbolID) (string, bool) {
	if int(id) >= len(st.words) {
		return "", false
	}
	return st.words[id], true
}

// Len returns the number of interned words, including the two reserved
// symbols.
func (st *SymbolTable) Len() int {
	return len(st.words)
}

// loadSymbolTable rebuilds a SymbolTable from a words-by-id slice
// produced by encodeDictionary, restoring the sorted index and a fresh
// ARC cache.
func loadSymbolTable(words []string) *SymbolTable {
	cache, _ := lru.NewARC(SYMBOL_LRU_SZ)
	st := &SymbolTable{
		words: words,
		order: make([]types.SymbolID, len(words)),
		cache: cache,
	}
	for i := range words {
		st.order[i] = types.SymbolID(i)
	}
	sort.Slice(st.order, func(i, j int) bool {
		return st.words[st.order[i]] < st.words[st.order[j]]
	})
	return st
}

// insertSymbolAt inserts id into order at position pos, shifting later
// elements up by one.
func insertSymbolAt(order []types.SymbolID, pos int, id types.SymbolID) []types.SymbolID {
	if pos == len(order) {
		return append(order, id)
	}
	order = append(order[:pos+1], order[pos:]...)
	order[pos] = id
	return order
}
