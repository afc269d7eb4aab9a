//go:build js || wasip1

package resources

import (
	"io"
	"os"
)

// readMmap falls back to a plain read on platforms without real mmap
// support (browser/WASI builds): the whole file is copied into memory.
func readMmap(file *os.File) (*[]byte, error) {
	contents, err := io.ReadAll(file)
	return &contents, err
}
