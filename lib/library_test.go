package main

import "C"
import (
	"testing"
)

func cstr(s string) *C.char {
	return C.CString(s)
}

// BenchmarkLearnText exercises the exported learnText path
// directly (bypassing cgo marshaling), since the test binary can't link
// against a C caller. Kept alongside library.go rather than in the
// package megahal test suite because this package is cgo-only.
func BenchmarkLearnText(b *testing.B) {
	brainId := cstr("bench")
	text := cstr("the quick brown fox jumps over the lazy dog.\n")
	initBrain(brainId)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !learnText(brainId, text) {
			b.Fatal("learnText failed")
		}
	}
}

func BenchmarkReplyText(b *testing.B) {
	brainId := cstr("bench-reply")
	learnText(brainId, cstr("the quick brown fox jumps over the lazy dog.\n"))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reply := replyText(brainId, cstr("fox"), 5)
		freeString(reply)
	}
}
