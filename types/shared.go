// Package types holds the wire-level types shared between the model
// engine and the persistence format: symbol identifiers and the raw
// binary encoding used to serialize them.
package types

// SymbolID identifies an interned word in a Brain's symbol table.
// 0 and 1 are reserved (ErrorSymbol, FinSymbol); real words start at 2.
type SymbolID uint16

// Symbols is a sequence of interned word identifiers, in order.
type Symbols []SymbolID

const (
	// ErrorSymbol is returned by lookups for unknown words.
	ErrorSymbol SymbolID = 0
	// FinSymbol terminates every learned line and stops generation.
	FinSymbol SymbolID = 1

	// FirstAssignableSymbol is the first ID handed out to a real word.
	FirstAssignableSymbol SymbolID = 2

	// MaxWordLen is the maximum byte length of an internable word.
	MaxWordLen = 255

	// MaxCount is the saturation point for a trie node's count.
	MaxCount uint16 = 65535
)

// SymbolIDSize is the on-disk width, in bytes, of a SymbolID.
const SymbolIDSize = 2
