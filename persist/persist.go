// Package persist saves and loads megahal.Brain state to and from the
// MegaHALv8 binary format, mmap-backed on the read side for large
// trained models.
package persist

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/wbrown/megahal"
	"github.com/wbrown/megahal/resources"
)

// Save encodes brain and writes it to path, reporting progress for
// transfers that take more than 10 seconds.
func Save(brain *megahal.Brain, path string) error {
	data, err := brain.MarshalBinary()
	if err != nil {
		return fmt.Errorf("persist: marshaling brain: %w", err)
	}

	f, err := os.OpenFile(path, os.O_TRUNC|os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("persist: opening %s: %w", path, err)
	}
	defer f.Close()

	counter := &resources.WriteCounter{
		Path: path,
		Size: uint64(len(data)),
		Last: time.Now(),
	}
	if _, err := io.Copy(f, io.TeeReader(bytes.NewReader(data), counter)); err != nil {
		return fmt.Errorf("persist: writing %s: %w", path, err)
	}
	return nil
}

// Load reads the brain file at path, mmapping it to avoid copying large
// trained models into the heap, and builds a fresh Brain from it
// according to cfg (its Order is overridden by the stream's order; its
// word lists and Rand are preserved).
func Load(path string, cfg megahal.Config) (*megahal.Brain, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("persist: opening %s: %w", path, err)
	}
	defer f.Close()

	data, err := resources.ReadMmap(f)
	if err != nil {
		return nil, fmt.Errorf("persist: mmapping %s: %w", path, err)
	}

	brain := megahal.NewBrain(cfg)
	if err := brain.UnmarshalBinary(*data); err != nil {
		return nil, fmt.Errorf("persist: loading %s: %w", path, err)
	}
	info, _ := f.Stat()
	if info != nil {
		_ = humanize.Bytes(uint64(info.Size())) // sized for parity with Save's progress reporting
	}
	return brain, nil
}
