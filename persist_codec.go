package megahal

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/wbrown/megahal/types"
)

// magic identifies the on-disk format, the brain.c cookie convention of
// an ASCII tag plus a version byte.
var magic = [9]byte{'M', 'e', 'g', 'a', 'H', 'A', 'L', 'v', '8'}

// MarshalBinary encodes the Brain's order, both tries, and its symbol
// dictionary into the wire format:
//
//	magic[9] order[1] forwardTree backwardTree dictionary
//
// Each tree is a pre-order dump of (symbol:u16, usage:u32, count:u16,
// branch:u16) nodes; the dictionary is (size:u32, [length:u8, bytes]...).
func (b *Brain) MarshalBinary() ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var buf bytes.Buffer
	buf.Write(magic[:])
	buf.WriteByte(byte(b.order))

	encodeNode(&buf, b.trie.Forward)
	encodeNode(&buf, b.trie.Backward)
	encodeDictionary(&buf, b.symbols.words)

	return buf.Bytes(), nil
}

func encodeNode(buf *bytes.Buffer, n *trieNode) {
	var header [8]byte
	binary.LittleEndian.PutUint16(header[0:2], uint16(n.symbol))
	binary.LittleEndian.PutUint32(header[2:6], n.usage)
	binary.LittleEndian.PutUint16(header[6:8], n.count)
	buf.Write(header[:])

	children := sortedChildren(n)
	var branch [2]byte
	binary.LittleEndian.PutUint16(branch[:], uint16(len(children)))
	buf.Write(branch[:])

	for _, c := range children {
		encodeNode(buf, c)
	}
}

// sortedChildren returns n's children sorted by symbol, so the encoded
// form is deterministic regardless of whether the node is array- or
// map-backed.
func sortedChildren(n *trieNode) []*trieNode {
	children := n.children()
	out := make([]*trieNode, len(children))
	copy(out, children)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].symbol > out[j].symbol; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

func encodeDictionary(buf *bytes.Buffer, words []string) {
	var size [4]byte
	binary.LittleEndian.PutUint32(size[:], uint32(len(words)))
	buf.Write(size[:])
	for _, w := range words {
		if len(w) > types.MaxWordLen {
			w = w[:types.MaxWordLen]
		}
		buf.WriteByte(byte(len(w)))
		buf.WriteString(w)
	}
}

// UnmarshalBinary decodes data written by MarshalBinary into b, replacing
// its symbol table and both tries. The Brain's configuration (order is
// taken from the stream; word lists and Rand are left untouched) should
// already be otherwise initialized by NewBrain.
func (b *Brain) UnmarshalBinary(data []byte) error {
	r := &byteReader{data: data}

	var gotMagic [9]byte
	if !r.read(gotMagic[:]) {
		return fmt.Errorf("megahal: truncated header")
	}
	if gotMagic != magic {
		return fmt.Errorf("megahal: bad magic %q", gotMagic)
	}

	order, ok := r.byte1()
	if !ok {
		return fmt.Errorf("megahal: truncated header")
	}

	forward, err := decodeNode(r)
	if err != nil {
		return fmt.Errorf("megahal: decoding forward trie: %w", err)
	}
	backward, err := decodeNode(r)
	if err != nil {
		return fmt.Errorf("megahal: decoding backward trie: %w", err)
	}
	words, err := decodeDictionary(r)
	if err != nil {
		return fmt.Errorf("megahal: decoding dictionary: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.order = int(order)
	b.trie = &DualTrie{Forward: forward, Backward: backward}
	b.symbols = loadSymbolTable(words)
	return nil
}

func decodeNode(r *byteReader) (*trieNode, error) {
	var header [8]byte
	if !r.read(header[:]) {
		return nil, fmt.Errorf("truncated node header")
	}
	n := &trieNode{
		symbol: types.SymbolID(binary.LittleEndian.Uint16(header[0:2])),
		usage:  binary.LittleEndian.Uint32(header[2:6]),
		count:  binary.LittleEndian.Uint16(header[6:8]),
	}

	var branchBytes [2]byte
	if !r.read(branchBytes[:]) {
		return nil, fmt.Errorf("truncated branch count")
	}
	branch := int(binary.LittleEndian.Uint16(branchBytes[:]))

	for i := 0; i < branch; i++ {
		child, err := decodeNode(r)
		if err != nil {
			return nil, err
		}
		n.childArr = append(n.childArr, child)
		if len(n.childArr) > trieNodeArrayMax && n.childMap == nil {
			n.childMap = make(map[types.SymbolID]*trieNode, len(n.childArr))
			for _, c := range n.childArr {
				n.childMap[c.symbol] = c
			}
			n.childArr = nil
		} else if n.childMap != nil {
			n.childMap[child.symbol] = child
		}
	}
	return n, nil
}

func decodeDictionary(r *byteReader) ([]string, error) {
	var sizeBytes [4]byte
	if !r.read(sizeBytes[:]) {
		return nil, fmt.Errorf("truncated dictionary size")
	}
	size := binary.LittleEndian.Uint32(sizeBytes[:])
	words := make([]string, 0, size)
	for i := uint32(0); i < size; i++ {
		length, ok := r.byte1()
		if !ok {
			return nil, fmt.Errorf("truncated word length")
		}
		word, ok := r.string(int(length))
		if !ok {
			return nil, fmt.Errorf("truncated word")
		}
		words = append(words, word)
	}
	return words, nil
}

// byteReader is a minimal cursor over an in-memory buffer, used instead
// of bytes.Reader so decodeNode's recursion can report truncation
// without erroring on a partial binary.Read.
type byteReader struct {
	data []byte
	pos  int
}

func (r *byteReader) read(out []byte) bool {
	if r.pos+len(out) > len(r.data) {
		return false
	}
	copy(out, r.data[r.pos:r.pos+len(out)])
	r.pos += len(out)
	return true
}

func (r *byteReader) byte1() (byte, bool) {
	if r.pos >= len(r.data) {
		return 0, false
	}
	b := r.data[r.pos]
	r.pos++
	return b, true
}

func (r *byteReader) string(n int) (string, bool) {
	if r.pos+n > len(r.data) {
		return "", false
	}
	s := string(r.data[r.pos : r.pos+n])
	r.pos += n
	return s, true
}
