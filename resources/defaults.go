package resources

import (
	"strings"

	mapset "github.com/deckarep/golang-set"
	prose "github.com/jdkato/prose/v2"
)

// auxTags are the Penn Treebank POS tags considered function words: good
// candidates for a Brain's Aux list when none is supplied explicitly.
// Auxiliary keywords only bias a reply once a primary keyword has
// already anchored it — determiners, pronouns, prepositions, and
// conjunctions fit that role far better than content words.
var auxTags = map[string]bool{
	"DT": true, "IN": true, "CC": true, "TO": true, "MD": true,
	"PRP": true, "PRP$": true, "WP": true, "WP$": true, "WDT": true,
	"EX": true,
}

// DefaultAux POS-tags sample and returns the set of distinct function
// words found, uppercased to match the symbol table's case folding.
// It gives LoadWordLists callers a sensible Aux list when no aux.txt
// resource exists yet — tag a chunk of the brain's own training corpus
// and use that.
func DefaultAux(sample string) (mapset.Set, error) {
	doc, err := prose.NewDocument(sample)
	if err != nil {
		return nil, err
	}
	set := mapset.NewThreadUnsafeSet()
	for _, tok := range doc.Tokens() {
		if auxTags[tok.Tag] {
			set.Add(strings.ToUpper(tok.Text))
		}
	}
	return set, nil
}
