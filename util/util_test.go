package util

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSortedKeys(t *testing.T) {
	m := map[string]int{"G": 7, "C": 0, "E": 4}
	assert.Equal(t, []string{"C", "E", "G"}, GetSortedKeys(m))
}

func TestAbs(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(2, Abs(-2))
	assert.Equal(3, Abs(3))
}

func TestBinaryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.gob")
	in := map[string][]float64{"C": {1, 0, 0.5}}

	require.NoError(t, CreateBinary(path, in))
	out, err := ReadBinary[map[string][]float64](path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestReadBinaryMissingFile(t *testing.T) {
	_, err := ReadBinary[int](filepath.Join(t.TempDir(), "nope.gob"))
	assert.Error(t, err)
}
