package megahal

import (
	"math/rand"
	"testing"

	mapset "github.com/deckarep/golang-set"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/megahal/types"
)

func trainedBrain(t *testing.T, corpus string, seed int64) *Brain {
	t.Helper()
	b := NewBrain(Config{Order: 3, Rand: rand.New(rand.NewSource(seed))})
	_, err := b.Learn(corpus)
	require.NoError(t, err)
	return b
}

const sampleCorpus = `the quick brown fox jumps over the lazy dog.
the lazy dog sleeps in the sun.
a quick fox runs through the forest.
the forest is full of quick foxes.
`

func TestReplyOnEmptyBrainReturnsFallback(t *testing.T) {
	b := NewBrain(Config{Order: 3, Rand: rand.New(rand.NewSource(1))})
	reply := b.Reply("hello", 5)
	assert.Equal(t, FallbackReply, reply)
}

func TestGreetOnEmptyBrainReturnsFallback(t *testing.T) {
	b := NewBrain(Config{Order: 3, Rand: rand.New(rand.NewSource(1))})
	reply := b.Greet(5)
	assert.Equal(t, FallbackReply, reply)
}

func TestReplyNeverContainsReservedSymbols(t *testing.T) {
	b := trainedBrain(t, sampleCorpus, 42)
	for i := 0; i < 20; i++ {
		keywords, auxMembers := b.extractKeywords(Tokenize("quick fox"))
		candidate := b.generateCandidate(keywords, setOf(keywords), auxMembers)
		for _, sym := range candidate {
			assert.NotEqual(t, types.ErrorSymbol, sym)
			assert.NotEqual(t, types.FinSymbol, sym)
		}
	}
}

func TestReplyDoesNotEchoInput(t *testing.T) {
	b := trainedBrain(t, sampleCorpus, 7)
	reply := b.Reply("the quick brown fox jumps over the lazy dog", 10)
	assert.NotEqual(t, "The quick brown fox jumps over the lazy dog.", reply)
}

func TestBabbleTerminatesWithinStepCap(t *testing.T) {
	b := trainedBrain(t, sampleCorpus, 3)
	keywords, auxMembers := b.extractKeywords(Tokenize("quick"))
	for i := 0; i < 50; i++ {
		candidate := b.generateCandidate(keywords, setOf(keywords), auxMembers)
		assert.LessOrEqual(t, len(candidate), 2*maxBabbleSteps+1)
	}
}

func TestExtractKeywordsFindsPrimaryKeyword(t *testing.T) {
	b := trainedBrain(t, sampleCorpus, 9)
	keywords, auxMembers := b.extractKeywords(Tokenize("the quick fox"))
	require.NotEmpty(t, keywords)
	foundPrimary := false
	for _, k := range keywords {
		if !auxMembers[k] {
			foundPrimary = true
		}
	}
	assert.True(t, foundPrimary)
}

func TestExtractKeywordsRejectsBanned(t *testing.T) {
	banned := mapset.NewThreadUnsafeSet()
	banned.Add("FOX")
	b := NewBrain(Config{Order: 3, Banned: banned, Rand: rand.New(rand.NewSource(1))})
	_, err := b.Learn(sampleCorpus)
	require.NoError(t, err)

	keywords, _ := b.extractKeywords(Tokenize("quick fox"))
	foxID, ok := b.symbols.Lookup("FOX")
	require.True(t, ok)
	for _, k := range keywords {
		assert.NotEqual(t, foxID, k)
	}
}

func TestFormatCapitalizesSentenceStarts(t *testing.T) {
	b := NewBrain(Config{Order: 2})
	helloID, _ := b.symbols.Intern("HELLO")
	bangID, _ := b.symbols.Intern("!")
	worldID, _ := b.symbols.Intern(" WORLD")
	out := b.format([]types.SymbolID{helloID, bangID, worldID})
	assert.Equal(t, "Hello! World", out)
}

func setOf(syms []types.SymbolID) map[types.SymbolID]bool {
	out := make(map[types.SymbolID]bool, len(syms))
	for _, s := range syms {
		out[s] = true
	}
	return out
}
