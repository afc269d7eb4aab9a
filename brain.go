// Package megahal implements a MegaHAL-style conversational model: dual
// variable-order Markov tries over an interned symbol vocabulary,
// trained by Learn and sampled by Reply/Greet/Converse.
package megahal

import (
	"math/rand"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set"
)

// DefaultOrder is the trie depth used when a Config leaves Order unset.
const DefaultOrder = 5

// Config collects the collaborator-supplied knobs for a new Brain: the
// model order and the word lists that bias keyword extraction and
// greeting. A zero Config is valid and yields a fresh, empty-vocabulary
// Brain of DefaultOrder.
type Config struct {
	// Order is the maximum n-gram depth of both tries.
	Order int

	// Banned words are never treated as keywords.
	Banned mapset.Set
	// Aux words are only used as keywords once a primary keyword has
	// already been found in the same input.
	Aux mapset.Set
	// Swap rewrites a token into one or more keyword candidates before
	// the banned/aux checks run (e.g. "ME" -> "YOU").
	Swap map[string]mapset.Set
	// Greeting is the word list Greet draws an opening word from.
	Greeting []string

	// Rand is the source used for every random draw a Brain makes
	// (seed fallback, babble, candidate/greeting selection). Supplying
	// one makes Reply/Greet/Converse deterministic for testing; nil
	// seeds a fresh source from the current time.
	Rand *rand.Rand
}

// Brain is a trained (or training) conversational model. Its zero value
// is not usable; construct one with NewBrain. A Brain is safe for
// concurrent use: Reply/Greet run concurrently with each other, but
// Learn excludes both readers and other writers for its duration.
type Brain struct {
	mu sync.RWMutex

	order int

	symbols *SymbolTable
	trie    *DualTrie

	banned   mapset.Set
	aux      mapset.Set
	swap     map[string]mapset.Set
	greeting []string

	// rng backs every random draw a Brain makes. Reply/Greet only take
	// the read lock on mu, so concurrent calls serialize their draws
	// through rngMu instead of mu.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// randIntn draws a random int in [0,n) from the brain's shared source,
// safe for concurrent callers.
func (b *Brain) randIntn(n int) int {
	b.rngMu.Lock()
	defer b.rngMu.Unlock()
	return b.rng.Intn(n)
}

// randPerm draws a random permutation of [0,n) from the brain's shared
// source, safe for concurrent callers.
func (b *Brain) randPerm(n int) []int {
	b.rngMu.Lock()
	defer b.rngMu.Unlock()
	return b.rng.Perm(n)
}

// NewBrain returns a fresh, empty-vocabulary Brain configured per cfg.
func NewBrain(cfg Config) *Brain {
	order := cfg.Order
	if order <= 0 {
		order = DefaultOrder
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	banned := cfg.Banned
	if banned == nil {
		banned = mapset.NewThreadUnsafeSet()
	}
	aux := cfg.Aux
	if aux == nil {
		aux = mapset.NewThreadUnsafeSet()
	}

	return &Brain{
		order:    order,
		symbols:  NewSymbolTable(),
		trie:     NewDualTrie(),
		banned:   banned,
		aux:      aux,
		swap:     cfg.Swap,
		greeting: cfg.Greeting,
		rng:      rng,
	}
}

// Order returns the model's trie depth.
func (b *Brain) Order() int {
	return b.order
}

// VocabularySize returns the number of interned words, including the
// two reserved symbols.
func (b *Brain) VocabularySize() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.symbols.Len()
}

// SetWordLists replaces the banned/aux/swap/greeting lists used by
// Reply and Greet. Intended for use by the resources loaders once a
// Brain has already been constructed (e.g. after Load).
func (b *Brain) SetWordLists(banned, aux mapset.Set, swap map[string]mapset.Set, greeting []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if banned != nil {
		b.banned = banned
	}
	if aux != nil {
		b.aux = aux
	}
	if swap != nil {
		b.swap = swap
	}
	if greeting != nil {
		b.greeting = greeting
	}
}
