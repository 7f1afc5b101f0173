package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep"
	"github.com/jsphweid/chordgen/audio"
	"github.com/jsphweid/chordgen/model"
	"github.com/jsphweid/chordgen/note"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSample(t *testing.T, dir, name string, rate beep.SampleRate) {
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	path := filepath.Join(dir, name+".wav")
	require.NoError(t, audio.WriteWAV(path, beep.Take(int(rate)/10, beep.Silence(-1)), format))
}

func newTestRenderer(t *testing.T) (*Renderer, string) {
	samples := t.TempDir()
	writeSample(t, samples, "C4", 8000)
	writeSample(t, samples, "Db4", 8000)
	writeSample(t, samples, "E4", 16000)

	r := New(samples, "wav")
	r.SampleExt = ".wav"
	return r, t.TempDir()
}

func parse(t *testing.T, notes ...string) []model.Note {
	res, err := note.ParseAll(notes)
	require.NoError(t, err)
	return res
}

func listDir(t *testing.T, dir string) []string {
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "C#4_E4_G#4.mp3", OutputName(parse(t, "C#4", "E4", "G#4"), "mp3"))
}

func TestSamplePathUsesFlatSpelling(t *testing.T) {
	r := New("piano", "mp3")
	assert.Equal(t, filepath.Join("piano", "Db4.mp3"), r.SamplePath(parse(t, "C#4")[0]))
	assert.Equal(t, filepath.Join("piano", "E4.mp3"), r.SamplePath(parse(t, "E4")[0]))
}

func TestRenderWritesOverlay(t *testing.T) {
	r, dest := newTestRenderer(t)

	out, err := r.Render(context.Background(), parse(t, "C4", "C#4", "E4"), dest)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "C4_C#4_E4.wav"), out)
	assert.Equal(t, []string{"C4_C#4_E4.wav"}, listDir(t, dest))

	buf, err := audio.Load(out)
	require.NoError(t, err)
	assert.Equal(t, beep.SampleRate(8000), buf.Format().SampleRate)
	assert.InDelta(t, 800, buf.Len(), 10)
}

func TestRenderMissingSample(t *testing.T) {
	r, dest := newTestRenderer(t)

	_, err := r.Render(context.Background(), parse(t, "C4", "G4"), dest)
	var missing *model.MissingSampleError
	require.True(t, errors.As(err, &missing))
	assert.True(t, errors.Is(err, model.ErrMissingSample))
	assert.False(t, errors.Is(err, model.ErrInvalidDestination))
	assert.Equal(t, "G4", missing.Note)
	assert.Empty(t, listDir(t, dest))
}

func TestRenderMissingSharpSampleNamesOriginalNote(t *testing.T) {
	r, dest := newTestRenderer(t)

	_, err := r.Render(context.Background(), parse(t, "F#4"), dest)
	var missing *model.MissingSampleError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "F#4", missing.Note)
	assert.Equal(t, "Gb4.wav", filepath.Base(missing.Path))
}

func TestRenderInvalidDestination(t *testing.T) {
	r, dest := newTestRenderer(t)

	_, err := r.Render(context.Background(), parse(t, "C4", "E4"), filepath.Join(dest, "nope"))
	assert.True(t, errors.Is(err, model.ErrInvalidDestination))
	assert.False(t, errors.Is(err, model.ErrMissingSample))

	file := filepath.Join(dest, "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	_, err = r.Render(context.Background(), parse(t, "C4", "E4"), file)
	assert.True(t, errors.Is(err, model.ErrInvalidDestination))
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	r, dest := newTestRenderer(t)
	r.Format = "flac"
	_, err := r.Render(context.Background(), parse(t, "C4"), dest)
	assert.True(t, errors.Is(err, model.ErrMalformedInput))
}

func TestWriteMidi(t *testing.T) {
	r, dest := newTestRenderer(t)

	out, err := r.WriteMidi(parse(t, "C4", "E4", "G4"), dest)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "C4_E4_G4.mid"), out)
	assert.Equal(t, []string{"C4_E4_G4.mid"}, listDir(t, dest))
}

func TestWriteMidiInvalidDestination(t *testing.T) {
	r, dest := newTestRenderer(t)

	_, err := r.WriteMidi(parse(t, "C4", "E4"), filepath.Join(dest, "nope"))
	assert.True(t, errors.Is(err, model.ErrInvalidDestination))
	assert.Empty(t, listDir(t, dest))
}
