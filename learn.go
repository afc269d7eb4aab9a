package megahal

import (
	"strings"

	"github.com/wbrown/megahal/types"
)

// LearnResult summarizes one call to Brain.Learn.
type LearnResult struct {
	TokensLearned  int
	LinesLearned   int
	LinesProcessed int
}

// learnLine walks tokens through both tries to depth order+1. Lines no
// longer than the model's order are a no-op — too short to supply a full
// context window — so they are processed but not learned, and must never
// pollute the symbol table with unreachable words.
func (b *Brain) learnLine(tokens []string) (learned bool, symCount int, err error) {
	if len(tokens) <= b.order {
		return false, 0, nil
	}

	fwd := newContext(b.order, b.trie.Forward)
	for _, tok := range tokens {
		sym, internErr := b.symbols.Intern(tok)
		if internErr != nil {
			return false, 0, internErr
		}
		fwd.observeWalk(b.order, sym)
	}
	fwd.observeWalk(b.order, types.FinSymbol)

	bwd := newContext(b.order, b.trie.Backward)
	for i := len(tokens) - 1; i >= 0; i-- {
		sym, ok := b.symbols.Lookup(tokens[i])
		if !ok {
			// Every token was just interned in the forward pass above.
			sym = types.ErrorSymbol
		}
		bwd.observeWalk(b.order, sym)
	}
	bwd.observeWalk(b.order, types.FinSymbol)

	return true, len(tokens), nil
}

// Learn splits text on newlines and learns each surviving line
// independently. Blank lines and lines starting with '#' are counted as
// processed but never learned. Learn only fails if the symbol table's
// 16-bit ID space is exhausted.
func (b *Brain) Learn(text string) (LearnResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var result LearnResult
	lines := strings.Split(text, "\n")
	// A trailing newline ends the last line; it does not start another.
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for _, line := range lines {
		result.LinesProcessed++
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		tokens := Tokenize(line)
		learned, n, err := b.learnLine(tokens)
		if err != nil {
			return result, err
		}
		if learned {
			result.LinesLearned++
			result.TokensLearned += n
		}
	}
	return result, nil
}
