package megahal

import "errors"

// Conditions the model can run into, and how each is handled. Of these,
// only SymbolSpaceExhausted ever reaches a caller: Learn returns it
// verbatim. (UnmarshalBinary separately returns errors for malformed
// input.)
//
//   - InputTooShort: a learned line had no more tokens than the model's
//     order. Not an error — learnLine silently treats it as unlearnable.
//   - EmptyVocabulary: Reply/Greet/Converse on a brain with no usable
//     trie paths. Not an error — seed selection fails and Reply falls
//     back to FallbackReply.
//   - SeedFailure: keyword-biased seed selection found no primary
//     keyword and the forward root has no child to fall back to. Not an
//     error — the affected candidate degenerates to a single <FIN> and
//     is filtered out by the length>1 rule in Reply.
//   - CountSaturation: a trie node's count reached types.MaxCount. Not
//     an error — observe silently stops incrementing that node.
//   - SymbolSpaceExhausted: the 16-bit symbol ID space is full. The only
//     case that surfaces as a Go error, since it is the only one Learn
//     cannot route around.

// IsSymbolSpaceExhausted reports whether err is (or wraps) the symbol
// table exhaustion error.
func IsSymbolSpaceExhausted(err error) bool {
	return errors.Is(err, ErrSymbolSpaceExhausted)
}
