package note

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jsphweid/chordgen/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"C4", "C4"},
		{"c#4", "C#4"},
		{"Db3", "Db3"},
		{" G7 ", "G7"},
		{"B#2", "C2"},
		{"E#5", "F5"},
		{"Fb1", "E1"},
		{"Cb6", "B6"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			n, err := Parse(c.in)
			require.NoError(t, err)
			assert.Equal(t, c.want, n.String())
		})
	}
}

func TestParseMalformed(t *testing.T) {
	for _, in := range []string{"", "H4", "C", "C#", "Cx4", "C8", "C0", "C#-1", "C+4", "C04", "C44", "C 4"} {
		t.Run(fmt.Sprintf("%q", in), func(t *testing.T) {
			_, err := Parse(in)
			assert.True(t, errors.Is(err, model.ErrMalformedInput), "got %v", err)
		})
	}
}

func TestParseAllRejectsDuplicates(t *testing.T) {
	_, err := ParseAll([]string{"C4", "E4", "B#4"})
	assert.NoError(t, err)

	_, err = ParseAll([]string{"C4", "E4", "C4"})
	assert.True(t, errors.Is(err, model.ErrMalformedInput))
}

func TestNormalizeIsIdempotent(t *testing.T) {
	for _, letter := range Letters {
		for _, acc := range Accidentals {
			once := New(letter, acc, 4)
			assert.Equal(t, once, Normalize(once))
			assert.NotContains(t, []string{"B#", "E#", "Fb", "Cb"}, once.PitchClass())
		}
	}
}

func TestFileName(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("Db4", FileName(New('C', model.Sharp, 4)))
	assert.Equal("Bb2", FileName(New('A', model.Sharp, 2)))
	assert.Equal("Ab5", FileName(New('G', model.Sharp, 5)))
	assert.Equal("Eb3", FileName(New('E', model.Flat, 3)))
	assert.Equal("C4", FileName(New('C', model.Natural, 4)))
}

func TestSemitoneAndMidi(t *testing.T) {
	assert := assert.New(t)
	s, ok := Semitone("C#")
	assert.True(ok)
	assert.Equal(1, s)
	s, _ = Semitone("Db")
	assert.Equal(1, s)
	s, _ = Semitone("Cb")
	assert.Equal(11, s)
	_, ok = Semitone("H")
	assert.False(ok)

	assert.Equal(uint8(60), Midi(New('C', model.Natural, 4)))
	assert.Equal(uint8(69), Midi(New('A', model.Natural, 4)))
	assert.Equal(uint8(61), Midi(New('D', model.Flat, 4)))
}

func TestSortOctaveOrderKeepsGenerationOrder(t *testing.T) {
	notes, err := ParseAll([]string{"G4", "C5", "E4", "C4"})
	require.NoError(t, err)
	Sort(notes, OctaveOrder)
	assert.Equal(t, []string{"G4", "E4", "C4", "C5"}, Strings(notes))
}

func TestSortTheoryOrder(t *testing.T) {
	notes, err := ParseAll([]string{"G4", "C#4", "C5", "E4", "C4", "Cb4"})
	require.NoError(t, err)
	// Cb4 becomes B4
	Sort(notes, TheoryOrder)
	assert.Equal(t, []string{"B4", "C4", "C#4", "E4", "G4", "C5"}, Strings(notes))
	assert.Equal(t, []string{"B", "C", "C#", "E", "G", "C"}, PitchClasses(notes))
}

func TestParsePitchClass(t *testing.T) {
	pc, err := ParsePitchClass("cb")
	require.NoError(t, err)
	assert.Equal(t, "B", pc)

	pc, err = ParsePitchClass("F#3")
	require.NoError(t, err)
	assert.Equal(t, "F#", pc)

	for _, in := range []string{"F#x", "C-1", "C04", "C+4", "C9"} {
		_, err = ParsePitchClass(in)
		assert.True(t, errors.Is(err, model.ErrMalformedInput), "input %q", in)
	}
}

func TestFromMidiRoundTrip(t *testing.T) {
	for key := uint8(24); key < 108; key++ {
		n := FromMidi(key)
		assert.Equal(t, key, Midi(n))
	}
	assert.Equal(t, "C#4", FromMidi(61).String())
}
