package chroma

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/jsphweid/chordgen/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

const rate = 22050

func sine(freqs []float64, samples int) []float64 {
	res := make([]float64, samples)
	for i := range res {
		for _, f := range freqs {
			res[i] += math.Sin(2 * math.Pi * f * float64(i) / rate)
		}
	}
	return res
}

func argmax(c model.Chroma) int {
	return floats.MaxIdx(c[:])
}

func TestComputeSingleTone(t *testing.T) {
	c, err := NewExtractor().Compute(sine([]float64{440}, rate), rate)
	require.NoError(t, err)
	assert.Equal(t, 9, argmax(c))
	assert.InDelta(t, 1.0, c[9], 1e-9)
}

func TestComputeMajorTriad(t *testing.T) {
	// C4 E4 G4
	c, err := NewExtractor().Compute(sine([]float64{261.63, 329.63, 392.00}, rate), rate)
	require.NoError(t, err)

	for _, bin := range []int{0, 4, 7} {
		assert.Greater(t, c[bin], 0.3, "bin %v", bin)
	}
	for _, bin := range []int{1, 3, 6, 10} {
		assert.Less(t, c[bin], 0.3, "bin %v", bin)
	}
}

func TestComputeShortSignalIsPadded(t *testing.T) {
	c, err := NewExtractor().Compute(sine([]float64{440}, 1000), rate)
	require.NoError(t, err)
	assert.Equal(t, 9, argmax(c))
}

func TestComputeRejectsEmpty(t *testing.T) {
	_, err := NewExtractor().Compute(nil, rate)
	assert.Error(t, err)
}

type sliceStreamer struct {
	samples []float64
	pos     int
}

func (s *sliceStreamer) Stream(buf [][2]float64) (int, bool) {
	if s.pos >= len(s.samples) {
		return 0, false
	}
	n := 0
	for n < len(buf) && s.pos < len(s.samples) {
		v := s.samples[s.pos] * 0.3
		buf[n] = [2]float64{v, v}
		n++
		s.pos++
	}
	return n, true
}

func (s *sliceStreamer) Err() error { return nil }

func writeClip(t *testing.T, path string, freqs []float64) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, &sliceStreamer{samples: sine(freqs, rate/2)}, format))
}

func TestCollectAndExtract(t *testing.T) {
	root := t.TempDir()
	writeClip(t, filepath.Join(root, "A", "one.wav"), []float64{440})
	writeClip(t, filepath.Join(root, "C", "one.wav"), []float64{261.63})
	require.NoError(t, os.WriteFile(filepath.Join(root, "C", "notes.txt"), []byte("x"), 0o644))

	clips, err := CollectClips(root)
	require.NoError(t, err)
	require.Len(t, clips, 2)
	assert.Equal(t, "A", clips[0].Label)
	assert.Equal(t, "C", clips[1].Label)

	calls := 0
	table, err := NewExtractor().ExtractAll(clips, func() { calls++ })
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 9, argmax(table[0].Chroma))
	assert.Equal(t, 0, argmax(table[1].Chroma))

	base := filepath.Join(root, "features")
	require.NoError(t, WriteTable(base, table))

	csv, err := os.ReadFile(base + ".csv")
	require.NoError(t, err)
	assert.Contains(t, string(csv), "Chord,C,C#,D,D#,E,F,F#,G,G#,A,A#,B\n")

	back, err := ReadTable(base + ".gob")
	require.NoError(t, err)
	assert.Equal(t, table, back)
}
