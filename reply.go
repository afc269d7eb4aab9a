package megahal

import (
	"math"
	"strings"

	"github.com/wbrown/megahal/types"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// maxBabbleSteps is the safety cap on a single forward or backward babble
// walk.
const maxBabbleSteps = 200

// FallbackReply is returned when every candidate echoes the input or no
// candidate survives with more than one symbol.
const FallbackReply = "I don't know enough to answer you yet!"

// extractKeywords pulls the keywords out of a tokenized line of input. It
// returns the combined keyword list (primary keywords, followed by aux
// keywords if and only if at least one primary keyword was found) and a
// membership set recording which returned symbols are aux.
func (b *Brain) extractKeywords(tokens []string) (keywords []types.SymbolID, auxMembers map[types.SymbolID]bool) {
	seen := make(map[types.SymbolID]bool, len(tokens))
	primary := make([]types.SymbolID, 0, len(tokens))
	auxCandidates := make([]types.SymbolID, 0)
	auxMembers = make(map[types.SymbolID]bool)

	for _, tok := range tokens {
		candidates := b.swapCandidates(tok)
		for _, cand := range candidates {
			if len(cand) == 0 || !isAlnum(cand[0]) {
				continue
			}
			if b.banned != nil && b.banned.Contains(cand) {
				continue
			}
			sym, ok := b.symbols.Lookup(cand)
			if !ok {
				continue
			}
			if seen[sym] {
				continue
			}
			seen[sym] = true
			if b.aux != nil && b.aux.Contains(cand) {
				auxCandidates = append(auxCandidates, sym)
				auxMembers[sym] = true
			} else {
				primary = append(primary, sym)
			}
		}
	}

	keywords = primary
	if len(primary) > 0 {
		keywords = append(keywords, auxCandidates...)
	}
	return keywords, auxMembers
}

// swapCandidates returns the swap-rewritten candidates for tok, or tok
// itself if no swap entry applies.
func (b *Brain) swapCandidates(tok string) []string {
	if b.swap == nil {
		return []string{tok}
	}
	toSet, ok := b.swap[tok]
	if !ok || toSet.Cardinality() == 0 {
		return []string{tok}
	}
	out := toSet.ToSlice()
	candidates := make([]string, len(out))
	for i, v := range out {
		candidates[i] = v.(string)
	}
	return candidates
}

// selectSeed picks the symbol a reply grows outward from: a primary
// keyword when one is available, scanned starting from a random offset,
// or else a random child of the forward root. It returns false only when
// the forward root has no usable child to fall back on.
func (b *Brain) selectSeed(keywords []types.SymbolID, auxMembers map[types.SymbolID]bool) (types.SymbolID, bool) {
	if len(keywords) > 0 {
		i := b.randIntn(len(keywords))
		for k := 0; k < len(keywords); k++ {
			sym := keywords[(i+k)%len(keywords)]
			if !auxMembers[sym] {
				return sym, true
			}
		}
	}

	children := b.trie.Forward.children()
	candidates := make([]*trieNode, 0, len(children))
	for _, c := range children {
		if c.symbol != types.ErrorSymbol && c.symbol != types.FinSymbol {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return types.FinSymbol, false
	}
	return candidates[b.randIntn(len(candidates))].symbol, true
}

// babble draws one weighted-random next symbol from the node deepest in
// ctx, giving priority to an eligible keyword. Children are visited in a
// freshly shuffled order each call (a random starting index over a fixed
// order would still leave adjacent children in a fixed relative sequence
// forever) — the draw of i is kept as a rotation of that shuffle, so the
// weighted walk below still reads as "draw i, then wrap".
func (b *Brain) babble(
	ctx context,
	keywords map[types.SymbolID]bool,
	auxMembers map[types.SymbolID]bool,
	replySet map[types.SymbolID]bool,
	usedKey *bool,
) (types.SymbolID, bool) {
	node, _ := ctx.deepest(b.order)
	if node == nil {
		return types.ErrorSymbol, false
	}
	children := node.children()
	branch := len(children)
	if branch == 0 {
		return types.ErrorSymbol, false
	}

	perm := b.randPerm(branch)
	i := b.randIntn(branch)
	c := b.randIntn(int(node.usage))

	for k := 0; k < branch; k++ {
		child := children[perm[(i+k)%branch]]
		sym := child.symbol
		if keywords[sym] && (*usedKey || !auxMembers[sym]) && !replySet[sym] {
			*usedKey = true
			return sym, true
		}
		c -= int(child.count)
		if c < 0 {
			return sym, true
		}
	}
	// Unreachable while usage equals the sum of child counts, but avoid
	// returning a zero value silently if that invariant ever drifts.
	return children[perm[(i+branch-1)%branch]].symbol, true
}

// babbleForward grows a reply rightward from seed using the forward
// trie, stopping at <ERROR>/<FIN> or the step cap.
func (b *Brain) babbleForward(seed types.SymbolID, keywords map[types.SymbolID]bool, auxMembers map[types.SymbolID]bool) []types.SymbolID {
	ctx := newContext(b.order, b.trie.Forward)
	reply := []types.SymbolID{seed}
	replySet := map[types.SymbolID]bool{seed: true}
	ctx.walk(b.order, seed)

	usedKey := false
	for step := 0; step < maxBabbleSteps; step++ {
		sym, ok := b.babble(ctx, keywords, auxMembers, replySet, &usedKey)
		if !ok || sym == types.ErrorSymbol || sym == types.FinSymbol {
			break
		}
		reply = append(reply, sym)
		replySet[sym] = true
		ctx.walk(b.order, sym)
	}
	return reply
}

// babbleBackward extends reply leftward using the backward trie. It
// first re-establishes backward context from the reply's left edge.
func (b *Brain) babbleBackward(reply []types.SymbolID, keywords map[types.SymbolID]bool, auxMembers map[types.SymbolID]bool) []types.SymbolID {
	ctx := newContext(b.order, b.trie.Backward)
	start := len(reply) - 1
	if start > b.order {
		start = b.order
	}
	for idx := start; idx >= 0; idx-- {
		ctx.walk(b.order, reply[idx])
	}

	replySet := make(map[types.SymbolID]bool, len(reply))
	for _, s := range reply {
		replySet[s] = true
	}

	usedKey := false
	for step := 0; step < maxBabbleSteps; step++ {
		sym, ok := b.babble(ctx, keywords, auxMembers, replySet, &usedKey)
		if !ok || sym == types.ErrorSymbol || sym == types.FinSymbol {
			break
		}
		reply = append([]types.SymbolID{sym}, reply...)
		replySet[sym] = true
		ctx.walk(b.order, sym)
	}
	return reply
}

// generateCandidate runs seed selection, forward babble, and backward
// babble for one candidate. An empty keywords list (the baseline
// candidate) always falls through seed selection to a random forward
// root child.
func (b *Brain) generateCandidate(keywords []types.SymbolID, keywordSet map[types.SymbolID]bool, auxMembers map[types.SymbolID]bool) []types.SymbolID {
	seed, ok := b.selectSeed(keywords, auxMembers)
	if !ok {
		return []types.SymbolID{types.FinSymbol}
	}
	reply := b.babbleForward(seed, keywordSet, auxMembers)
	reply = b.babbleBackward(reply, keywordSet, auxMembers)
	return reply
}

// evaluate scores a candidate reply by how surprising its keywords are
// in context: a length-penalized sum of -ln(P(keyword | context)),
// accumulated across context depths 0..order-1 in both directions.
func (b *Brain) evaluate(reply []types.SymbolID, keywordSet map[types.SymbolID]bool) float64 {
	fwdEntropy, fwdNum := b.evalDirection(reply, b.trie.Forward, keywordSet, false)
	bwdEntropy, bwdNum := b.evalDirection(reply, b.trie.Backward, keywordSet, true)

	entropy := fwdEntropy + bwdEntropy
	num := fwdNum + bwdNum
	if num >= 8 {
		entropy /= math.Sqrt(float64(num - 1))
	}
	if num >= 16 {
		entropy /= float64(num)
	}
	return entropy
}

func (b *Brain) evalDirection(reply []types.SymbolID, root *trieNode, keywordSet map[types.SymbolID]bool, reverse bool) (entropy float64, num int) {
	ctx := newContext(b.order, root)
	seq := reply
	if reverse {
		seq = reverseSymbols(reply)
	}

	probs := make([]float64, 0, b.order)
	for _, sym := range seq {
		if keywordSet[sym] {
			probs = probs[:0]
			for j := 0; j < b.order; j++ {
				if ctx[j] == nil || ctx[j].usage == 0 {
					continue
				}
				// A missing child at depth j is skipped, not treated as
				// a crash or a zero sample.
				if child := ctx[j].child(sym); child != nil {
					probs = append(probs, float64(child.count)/float64(ctx[j].usage))
				}
			}
			if len(probs) > 0 {
				prob := floats.Sum(probs)
				entropy -= math.Log(prob / float64(len(probs)))
				num++
			}
		}
		ctx.walk(b.order, sym)
	}
	return entropy, num
}

func reverseSymbols(in []types.SymbolID) []types.SymbolID {
	out := make([]types.SymbolID, len(in))
	for i, s := range in {
		out[len(in)-1-i] = s
	}
	return out
}

// CandidateStats reports the mean and standard deviation of a batch of
// candidate scores, for diagnostic reporting (see ReplyStats and
// cmd/haltrain's -stats flag).
func CandidateStats(scores []float64) (mean, stddev float64) {
	if len(scores) == 0 {
		return 0, 0
	}
	mean, stddev = stat.MeanStdDev(scores, nil)
	return mean, stddev
}

type candidateResult struct {
	symbols []types.SymbolID
	score   float64
}

func symbolsEqual(a, b []types.SymbolID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Reply runs one conversational turn (keyword extraction, candidate
// generation, scoring, and selection) without learning from text. It
// always returns a string; a vocabulary too thin to answer from falls
// back to FallbackReply rather than propagating an error.
func (b *Brain) Reply(text string, numCandidates int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out, _ := b.reply(text, numCandidates)
	return out
}

// ReplyStats behaves like Reply, additionally reporting the mean and
// standard deviation of every candidate's surprise score, for callers
// that want to track how decisively a reply won over its alternatives.
func (b *Brain) ReplyStats(text string, numCandidates int) (reply string, mean, stddev float64) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out, candidates := b.reply(text, numCandidates)
	scores := make([]float64, len(candidates))
	for i, c := range candidates {
		scores[i] = c.score
	}
	mean, stddev = CandidateStats(scores)
	return out, mean, stddev
}

func (b *Brain) reply(text string, numCandidates int) (string, []candidateResult) {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		tokens = TerminalToken
	}

	inputSymbols := make([]types.SymbolID, len(tokens))
	for i, tok := range tokens {
		sym, _ := b.symbols.Lookup(tok)
		inputSymbols[i] = sym
	}

	keywords, auxMembers := b.extractKeywords(tokens)
	keywordSet := make(map[types.SymbolID]bool, len(keywords))
	for _, k := range keywords {
		keywordSet[k] = true
	}

	candidates := make([]candidateResult, 0, numCandidates+1)
	candidates = append(candidates, candidateResult{
		symbols: b.generateCandidate(nil, nil, nil),
		score:   0.0,
	})
	for i := 0; i < numCandidates; i++ {
		syms := b.generateCandidate(keywords, keywordSet, auxMembers)
		candidates = append(candidates, candidateResult{
			symbols: syms,
			score:   b.evaluate(syms, keywordSet),
		})
	}

	var best *candidateResult
	for i := range candidates {
		c := &candidates[i]
		if symbolsEqual(c.symbols, inputSymbols) {
			continue
		}
		if len(c.symbols) <= 1 {
			continue
		}
		if best == nil || c.score > best.score {
			best = c
		}
	}
	if best == nil {
		return FallbackReply, candidates
	}
	return b.format(best.symbols), candidates
}

// format turns a symbol sequence back into readable text: words are
// concatenated with nothing added between them (whitespace and
// punctuation are symbols of their own), then the first alphabetic byte,
// and the first letter after a sentence terminator followed by
// whitespace, are capitalized and every other letter is lowercased.
func (b *Brain) format(symbols []types.SymbolID) string {
	words := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if w, ok := b.symbols.WordOf(s); ok {
			words = append(words, w)
		}
	}
	raw := []byte(strings.Join(words, ""))

	capNext := true
	sawEnd := false
	for i, c := range raw {
		switch {
		case isAlpha(c):
			if capNext {
				raw[i] = toUpperByte(c)
				capNext = false
			} else {
				raw[i] = toLowerByte(c)
			}
			sawEnd = false
		case isSentenceEnd(c):
			sawEnd = true
		case sawEnd && isSpaceByte(c):
			capNext = true
		}
	}
	return string(raw)
}

func toUpperByte(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

func toLowerByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// Greet picks a random word from the greeting list and replies to it.
func (b *Brain) Greet(numCandidates int) string {
	b.mu.RLock()
	word := ""
	if len(b.greeting) > 0 {
		word = b.greeting[b.randIntn(len(b.greeting))]
	}
	b.mu.RUnlock()
	return b.Reply(word, numCandidates)
}

// Converse learns from text, then replies to it.
func (b *Brain) Converse(text string, numCandidates int) string {
	if _, err := b.Learn(text); err != nil {
		// A full symbol table is the only fatal Learn error; Reply still
		// has to return a string, so we reply against whatever the model
		// learned before hitting it.
		_ = err
	}
	return b.Reply(text, numCandidates)
}
