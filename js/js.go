// Command js builds a GopherJS bundle exposing a single package-level
// Brain's learn/reply/greet/converse operations to a browser host.
package main

//go:generate gopherjs build --minify

import (
	"log"

	"github.com/gopherjs/gopherjs/js"

	"github.com/wbrown/megahal"
)

var brain = megahal.NewBrain(megahal.Config{})

// Learn trains brain on text and returns the number of tokens learned.
func Learn(text string) int {
	result, err := brain.Learn(text)
	if err != nil {
		return 0
	}
	return result.TokensLearned
}

// Reply returns brain's reply to text, drawing numCandidates
// keyword-biased candidates.
func Reply(text string, numCandidates int) string {
	return brain.Reply(text, numCandidates)
}

// Greet returns an opening line drawn from brain's greeting list.
func Greet(numCandidates int) string {
	return brain.Greet(numCandidates)
}

// Converse learns from text, then replies to it.
func Converse(text string, numCandidates int) string {
	return brain.Converse(text, numCandidates)
}

func init() {
	exports := js.Module.Get("exports")
	exports.Set("learn", Learn)
	exports.Set("reply", Reply)
	exports.Set("greet", Greet)
	exports.Set("converse", Converse)
	log.Printf("MegaHAL brain loaded")
}

func main() {}
