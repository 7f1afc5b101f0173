package note

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsphweid/chordgen/constants"
	"github.com/jsphweid/chordgen/model"
)

var Letters = []byte{'A', 'B', 'C', 'D', 'E', 'F', 'G'}

var Accidentals = []model.Accidental{model.Natural, model.Flat, model.Sharp}

var letterSemitones = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// spellings that are valid but never written that way
var enharmonics = map[string]byte{
	"B#": 'C',
	"E#": 'F',
	"Fb": 'E',
	"Cb": 'B',
}

// sample files only exist for the flat spelling of black keys
var sharpToFlat = map[string]string{
	"A#": "Bb",
	"C#": "Db",
	"D#": "Eb",
	"F#": "Gb",
	"G#": "Ab",
}

type SortMode int

const (
	OctaveOrder SortMode = iota
	TheoryOrder
)

func (m SortMode) String() string {
	if m == TheoryOrder {
		return "theory"
	}
	return "octave"
}

// New builds a normalized note.
func New(letter byte, accidental model.Accidental, octave int) model.Note {
	return Normalize(model.Note{Letter: letter, Accidental: accidental, Octave: octave})
}

// Normalize swaps B#, E#, Fb and Cb for their plain spelling. The octave is
// kept as is.
func Normalize(n model.Note) model.Note {
	if letter, ok := enharmonics[n.PitchClass()]; ok {
		n.Letter = letter
		n.Accidental = model.Natural
	}
	return n
}

func parsePitchClass(s string) (model.Note, string, error) {
	var n model.Note
	if len(s) == 0 {
		return n, "", &model.MalformedInputError{Input: s, Reason: "empty note"}
	}

	letter := strings.ToUpper(s[:1])[0]
	if _, ok := letterSemitones[letter]; !ok {
		return n, "", &model.MalformedInputError{Input: s, Reason: fmt.Sprintf("bad letter %q", s[:1])}
	}
	n.Letter = letter
	rest := s[1:]

	if len(rest) > 0 {
		switch rest[0] {
		case '#':
			n.Accidental = model.Sharp
			rest = rest[1:]
		case 'b':
			n.Accidental = model.Flat
			rest = rest[1:]
		}
	}
	return n, rest, nil
}

// Parse reads a full note such as "C#4" and normalizes it.
func Parse(s string) (model.Note, error) {
	s = strings.TrimSpace(s)
	n, rest, err := parsePitchClass(s)
	if err != nil {
		return n, err
	}
	if rest == "" {
		return n, &model.MalformedInputError{Input: s, Reason: "missing octave"}
	}

	octave, err := parseOctave(s, rest)
	if err != nil {
		return n, err
	}
	n.Octave = octave
	return Normalize(n), nil
}

// parseOctave takes exactly one digit, so "+4", "04" and "-1" are rejected.
func parseOctave(input, rest string) (int, error) {
	if len(rest) != 1 || rest[0] < '0' || rest[0] > '9' {
		return 0, &model.MalformedInputError{Input: input, Reason: fmt.Sprintf("bad octave %q", rest)}
	}
	octave := int(rest[0] - '0')
	if octave < constants.MinOctave || octave > constants.MaxOctave {
		return 0, &model.MalformedInputError{
			Input:  input,
			Reason: fmt.Sprintf("octave must be within %d-%d", constants.MinOctave, constants.MaxOctave),
		}
	}
	return octave, nil
}

// ParsePitchClass reads a note with or without an octave and returns its
// normalized pitch class, e.g. "cb" -> "B".
func ParsePitchClass(s string) (string, error) {
	s = strings.TrimSpace(s)
	n, rest, err := parsePitchClass(s)
	if err != nil {
		return "", err
	}
	if rest != "" {
		if _, err := parseOctave(s, rest); err != nil {
			return "", err
		}
	}
	return Normalize(n).PitchClass(), nil
}

// ParseAll parses explicit notes and rejects duplicates.
func ParseAll(inputs []string) ([]model.Note, error) {
	seen := make(map[string]bool)
	res := make([]model.Note, 0, len(inputs))
	for _, in := range inputs {
		n, err := Parse(in)
		if err != nil {
			return nil, err
		}
		if seen[n.String()] {
			return nil, &model.MalformedInputError{Input: in, Reason: "duplicate note " + n.String()}
		}
		seen[n.String()] = true
		res = append(res, n)
	}
	return res, nil
}

// Semitone returns the 0-11 pitch of a pitch class with C as 0.
func Semitone(pitchClass string) (int, bool) {
	if pitchClass == "" {
		return 0, false
	}
	base, ok := letterSemitones[pitchClass[0]]
	if !ok {
		return 0, false
	}
	switch pitchClass[1:] {
	case "":
	case "#":
		base++
	case "b":
		base--
	default:
		return 0, false
	}
	return (base + 12) % 12, true
}

// FileName is the sample store spelling: sharps become their flat equivalent.
func FileName(n model.Note) string {
	pc := n.PitchClass()
	if flat, ok := sharpToFlat[pc]; ok {
		pc = flat
	}
	return fmt.Sprintf("%v%d", pc, n.Octave)
}

// Midi returns the MIDI key number of a note, C4 being 60.
func Midi(n model.Note) uint8 {
	base := letterSemitones[n.Letter]
	switch n.Accidental {
	case model.Sharp:
		base++
	case model.Flat:
		base--
	}
	return uint8((n.Octave+1)*12 + base)
}

func accidentalRank(a model.Accidental) int {
	switch a {
	case model.Flat:
		return 0
	case model.Sharp:
		return 2
	}
	return 1
}

// Sort orders notes in place. OctaveOrder only looks at the octave and keeps
// generation order otherwise; TheoryOrder then goes by letter and accidental.
func Sort(notes []model.Note, mode SortMode) {
	sort.SliceStable(notes, func(i, j int) bool {
		a, b := notes[i], notes[j]
		if a.Octave != b.Octave {
			return a.Octave < b.Octave
		}
		if mode == OctaveOrder {
			return false
		}
		if a.Letter != b.Letter {
			return a.Letter < b.Letter
		}
		return accidentalRank(a.Accidental) < accidentalRank(b.Accidental)
	})
}

func PitchClasses(notes []model.Note) []string {
	res := make([]string, len(notes))
	for i, n := range notes {
		res[i] = n.PitchClass()
	}
	return res
}

func Strings(notes []model.Note) []string {
	res := make([]string, len(notes))
	for i, n := range notes {
		res[i] = n.String()
	}
	return res
}

var sharpNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// FromMidi spells a MIDI key with sharps, 60 being C4.
func FromMidi(key uint8) model.Note {
	name := sharpNames[key%12]
	n := model.Note{Letter: name[0], Octave: int(key)/12 - 1}
	if len(name) > 1 {
		n.Accidental = model.Sharp
	}
	return n
}
