package megahal

import "strings"

// Tokenize uppercases text and segments it into an alternating stream of
// word and separator tokens. The scan is byte-oriented and ASCII-only by
// design: a conversational model gains nothing from Unicode-aware word
// boundaries that a subword tokenizer would need.
//
// The last token is normalized so every tokenized line is
// sentence-terminated: a trailing alphanumeric token gets a new "."
// token appended; a trailing token not already ending in !.? is replaced
// outright with "."; anything else is left alone.
func Tokenize(text string) []string {
	if len(text) == 0 {
		return nil
	}
	s := []byte(strings.ToUpper(text))

	bounds := make([]int, 0, len(s)/2+2)
	bounds = append(bounds, 0)
	for p := 1; p < len(s); p++ {
		if isApostropheException(s, p) {
			continue
		}
		if (isAlpha(s[p]) != isAlpha(s[p-1])) || (isDigit(s[p]) != isDigit(s[p-1])) {
			bounds = append(bounds, p)
		}
	}
	bounds = append(bounds, len(s))

	tokens := make([]string, 0, len(bounds)-1)
	for i := 0; i < len(bounds)-1; i++ {
		tokens = append(tokens, string(s[bounds[i]:bounds[i+1]]))
	}

	return terminate(tokens)
}

// isApostropheException reports whether the boundary between s[p-1] and
// s[p] should be suppressed to keep a contraction like DON'T or I'M as a
// single token.
func isApostropheException(s []byte, p int) bool {
	cur := s[p]
	prev := s[p-1]
	if cur == '\'' && isAlpha(prev) && p+1 < len(s) && isAlpha(s[p+1]) {
		return true
	}
	if prev == '\'' && p >= 2 && isAlpha(s[p-2]) && isAlpha(cur) {
		return true
	}
	return false
}

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlnum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

// terminate applies the sentence-terminal rule to the last token of a
// tokenized line.
func terminate(tokens []string) []string {
	if len(tokens) == 0 {
		return tokens
	}
	last := tokens[len(tokens)-1]
	switch {
	case isAlnum(last[0]):
		return append(tokens, ".")
	case !isSentenceEnd(last[len(last)-1]):
		tokens[len(tokens)-1] = "."
		return tokens
	default:
		return tokens
	}
}

func isSentenceEnd(b byte) bool {
	return b == '!' || b == '.' || b == '?'
}

// TerminalToken is the fallback tokenization used where the reply path
// requires a non-empty stream (e.g. an empty input to Reply).
var TerminalToken = []string{"."}
