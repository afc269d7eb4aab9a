package megahal

import (
	"sort"

	"github.com/wbrown/megahal/types"
)

// trieNodeArrayMax is the branching-factor threshold below which a node
// keeps a sorted slice of children, for cheap binary search and cheap
// iteration, falling back to a map once it grows past this point.
const trieNodeArrayMax = 10

// trieNode is one node of a forward or backward n-gram trie. count is the
// number of times this node was observed as the "next symbol" given its
// parent's context, saturating at types.MaxCount; usage is the sum of
// children's counts (an increment dropped by a child's saturation is not
// added to usage either).
type trieNode struct {
	symbol types.SymbolID
	count  uint16
	usage  uint32

	childArr []*trieNode
	childMap map[types.SymbolID]*trieNode
}

func newTrieNode(symbol types.SymbolID) *trieNode {
	return &trieNode{symbol: symbol}
}

// numChildren returns the node's branching factor.
func (n *trieNode) numChildren() int {
	if n.childMap != nil {
		return len(n.childMap)
	}
	return len(n.childArr)
}

// children returns the node's children: sorted by symbol for an
// array-backed node, in map iteration order (which can differ between
// calls) for a map-backed one. Callers that must not leak this order
// (the babble draw) are responsible for randomizing it.
func (n *trieNode) children() []*trieNode {
	if n.childMap != nil {
		out := make([]*trieNode, 0, len(n.childMap))
		for _, c := range n.childMap {
			out = append(out, c)
		}
		return out
	}
	return n.childArr
}

// child looks up the child reached by symbol, or nil if there is none.
func (n *trieNode) child(symbol types.SymbolID) *trieNode {
	if n.childMap != nil {
		return n.childMap[symbol]
	}
	i := sort.Search(len(n.childArr), func(i int) bool {
		return n.childArr[i].symbol >= symbol
	})
	if i < len(n.childArr) && n.childArr[i].symbol == symbol {
		return n.childArr[i]
	}
	return nil
}

// upsertChild returns the existing child for symbol, or creates and
// returns a fresh one with count=0, usage=0.
func (n *trieNode) upsertChild(symbol types.SymbolID) *trieNode {
	if existing := n.child(symbol); existing != nil {
		return existing
	}
	child := newTrieNode(symbol)
	if n.childMap != nil {
		n.childMap[symbol] = child
		return child
	}
	i := sort.Search(len(n.childArr), func(i int) bool {
		return n.childArr[i].symbol >= symbol
	})
	n.childArr = insertNodeAt(n.childArr, i, child)
	if len(n.childArr) > trieNodeArrayMax {
		n.childMap = make(map[types.SymbolID]*trieNode, len(n.childArr))
		for _, c := range n.childArr {
			n.childMap[c.symbol] = c
		}
		n.childArr = nil
	}
	return child
}

// observe is the learning primitive: it upserts a child for symbol and,
// unless that child's count has saturated at types.MaxCount, increments
// both the child's count and this node's usage.
func (n *trieNode) observe(symbol types.SymbolID) *trieNode {
	child := n.upsertChild(symbol)
	if child.count < types.MaxCount {
		child.count++
		n.usage++
	}
	return child
}

// insertNodeAt inserts v into nodes at index i, shifting later elements
// up by one.
func insertNodeAt(nodes []*trieNode, i int, v *trieNode) []*trieNode {
	if i == len(nodes) {
		return append(nodes, v)
	}
	nodes = append(nodes[:i+1], nodes[i:]...)
	nodes[i] = v
	return nodes
}

// DualTrie holds the forward and backward n-gram tries that back a
// Brain's model. Each root represents the empty context; paths are
// bounded to order+1 symbols deep.
type DualTrie struct {
	Forward  *trieNode
	Backward *trieNode
}

// NewDualTrie returns a DualTrie with both roots freshly initialized
// (symbol=0, count=0, usage=0).
func NewDualTrie() *DualTrie {
	return &DualTrie{
		Forward:  newTrieNode(types.ErrorSymbol),
		Backward: newTrieNode(types.ErrorSymbol),
	}
}

// context is the sliding window of trie-node references maintained during
// learning, generation, and scoring. context[0] is pinned to the active
// root; context[d] for d>0 points at the node reached by the last d
// observed symbols from that root, or nil if no such path exists yet.
// Its length is always order+2.
type context []*trieNode

func newContext(order int, root *trieNode) context {
	c := make(context, order+2)
	c[0] = root
	return c
}

// walk updates ctx to reflect one more observed symbol, without mutating
// the trie. It is the read-only counterpart to observeWalk, used during
// generation and scoring.
func (ctx context) walk(order int, symbol types.SymbolID) {
	for d := order + 1; d >= 1; d-- {
		if ctx[d-1] != nil {
			ctx[d] = ctx[d-1].child(symbol)
		} else {
			ctx[d] = nil
		}
	}
}

// observeWalk is the learning cascade: for every depth whose parent
// context exists, it observes symbol (upserting the trie and bumping
// count/usage) and advances the context to the resulting child.
func (ctx context) observeWalk(order int, symbol types.SymbolID) {
	for d := order + 1; d >= 1; d-- {
		if ctx[d-1] != nil {
			ctx[d] = ctx[d-1].observe(symbol)
		} else {
			ctx[d] = nil
		}
	}
}

// deepest returns the deepest non-nil node in ctx[0..order], and how many
// symbols of context it represents.
func (ctx context) deepest(order int) (*trieNode, int) {
	for d := order; d >= 0; d-- {
		if ctx[d] != nil {
			return ctx[d], d
		}
	}
	return nil, 0
}
