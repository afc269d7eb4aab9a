//go:build !wasip1 && !js

package resources

import (
	"os"

	"github.com/edsrzf/mmap-go"
)

func readMmap(file *os.File) (*[]byte, error) {
	fileMmap, mmapErr := mmap.Map(file, mmap.RDONLY, 0)
	mmapBytes := (*[]byte)(&fileMmap)
	return mmapBytes, mmapErr
}

// ReadMmap memory-maps file read-only and returns its contents as a byte
// slice. Callers outside this package use it to load large brain files
// (see persist.Load) without copying them into the heap.
func ReadMmap(file *os.File) (*[]byte, error) {
	return readMmap(file)
}
