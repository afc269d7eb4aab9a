package main

// #include <stdlib.h>
import "C"
import (
	"sync"
	"unsafe"

	"github.com/wbrown/megahal"
	"github.com/wbrown/megahal/persist"
)

// brains holds every Brain this shared library has initialized, keyed by
// the caller-chosen brain id.
var (
	brainsMu sync.Mutex
	brains   map[string]*megahal.Brain
)

func init() {
	brains = make(map[string]*megahal.Brain)
}

func getBrain(id string) *megahal.Brain {
	brainsMu.Lock()
	defer brainsMu.Unlock()
	b, ok := brains[id]
	if !ok {
		b = megahal.NewBrain(megahal.Config{})
		brains[id] = b
	}
	return b
}

//export initBrain
// initBrain creates an empty brain under brainId, if one does not
// already exist for it.
func initBrain(brainId *C.char) bool {
	getBrain(C.GoString(brainId))
	return true
}

//export loadBrain
// loadBrain replaces the brain under brainId with one loaded from path.
func loadBrain(brainId *C.char, path *C.char) bool {
	b, err := persist.Load(C.GoString(path), megahal.Config{})
	if err != nil {
		return false
	}
	brainsMu.Lock()
	brains[C.GoString(brainId)] = b
	brainsMu.Unlock()
	return true
}

//export saveBrain
// saveBrain persists the brain under brainId to path.
func saveBrain(brainId *C.char, path *C.char) bool {
	b := getBrain(C.GoString(brainId))
	return persist.Save(b, C.GoString(path)) == nil
}

//export learnText
// learnText trains the brain under brainId on text.
func learnText(brainId *C.char, text *C.char) bool {
	b := getBrain(C.GoString(brainId))
	_, err := b.Learn(C.GoString(text))
	return err == nil
}

//export replyText
// replyText returns the brain's reply to text as a malloc'ed C string
// the caller is responsible for freeing.
func replyText(brainId *C.char, text *C.char, numCandidates C.int) *C.char {
	b := getBrain(C.GoString(brainId))
	reply := b.Reply(C.GoString(text), int(numCandidates))
	return C.CString(reply)
}

//export converseText
// converseText learns from text, then replies to it, as a malloc'ed
// C string the caller is responsible for freeing.
func converseText(brainId *C.char, text *C.char, numCandidates C.int) *C.char {
	b := getBrain(C.GoString(brainId))
	reply := b.Converse(C.GoString(text), int(numCandidates))
	return C.CString(reply)
}

//export freeString
// freeString releases a C string previously returned by replyText or
// converseText.
func freeString(s *C.char) {
	C.free(unsafe.Pointer(s))
}

func main() {}
