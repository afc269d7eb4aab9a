package megahal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeBasicSentence(t *testing.T) {
	tokens := Tokenize("Hello there")
	assert.Equal(t, []string{"HELLO", " ", "THERE", "."}, tokens)
}

func TestTokenizeAlreadyPunctuated(t *testing.T) {
	tokens := Tokenize("What is going on?")
	assert.Equal(t, []string{"WHAT", " ", "IS", " ", "GOING", " ", "ON",
		"?"}, tokens)
}

func TestTokenizePreservesContractions(t *testing.T) {
	tokens := Tokenize("I don't know")
	assert.Contains(t, tokens, "DON'T")
}

func TestTokenizeReplacesDanglingPunctuation(t *testing.T) {
	tokens := Tokenize("wait,")
	assert.Equal(t, []string{"WAIT", "."}, tokens)
}

func TestTokenizeEmptyInput(t *testing.T) {
	assert.Nil(t, Tokenize(""))
}

func TestTokenizeDigitsSplitFromLetters(t *testing.T) {
	tokens := Tokenize("room101")
	assert.Equal(t, []string{"ROOM", "101", "."}, tokens)
}
