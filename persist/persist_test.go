package persist

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/megahal"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	brain := megahal.NewBrain(megahal.Config{Order: 3, Rand: rand.New(rand.NewSource(1))})
	_, err := brain.Learn("the quick brown fox jumps over the lazy dog.\n" +
		"the lazy dog sleeps in the sun.\n")
	require.NoError(t, err)
	wantVocab := brain.VocabularySize()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.brn")
	require.NoError(t, Save(brain, path))

	loaded, err := Load(path, megahal.Config{Rand: rand.New(rand.NewSource(1))})
	require.NoError(t, err)

	assert.Equal(t, brain.Order(), loaded.Order())
	assert.Equal(t, wantVocab, loaded.VocabularySize())
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load("/nonexistent/path/to/brain.brn", megahal.Config{})
	assert.Error(t, err)
	assert.True(t, os.IsNotExist(unwrapErr(err)))
}

func unwrapErr(err error) error {
	type unwrapper interface{ Unwrap() error }
	for {
		u, ok := err.(unwrapper)
		if !ok {
			return err
		}
		inner := u.Unwrap()
		if inner == nil {
			return err
		}
		err = inner
	}
}
