package types

import (
	"bytes"
	"encoding/binary"
)

// ToBin encodes a run of symbols as little-endian uint16s.
func (symbols *Symbols) ToBin() *[]byte {
	buf := bytes.NewBuffer(make([]byte, 0, len(*symbols)*SymbolIDSize))
	for idx := range *symbols {
		binary.Write(buf, binary.LittleEndian, uint16((*symbols)[idx]))
	}
	byt := buf.Bytes()
	return &byt
}

// SymbolsFromBin decodes a run of little-endian uint16s into symbols.
func SymbolsFromBin(bin *[]byte) *Symbols {
	symbols := make(Symbols, 0, len(*bin)/SymbolIDSize)
	buf := bytes.NewReader(*bin)
	for {
		var id uint16
		if err := binary.Read(buf, binary.LittleEndian, &id); err != nil {
			break
		}
		symbols = append(symbols, SymbolID(id))
	}
	return &symbols
}
