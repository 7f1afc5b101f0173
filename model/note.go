package model

import "fmt"

type Accidental uint8

const (
	Natural Accidental = iota
	Flat
	Sharp
)

func (a Accidental) String() string {
	switch a {
	case Flat:
		return "b"
	case Sharp:
		return "#"
	}
	return ""
}

type Note struct {
	Letter     byte
	Accidental Accidental
	Octave     int
}

// PitchClass is the octave independent part of a note, e.g. "C#".
func (n Note) PitchClass() string {
	return string(n.Letter) + n.Accidental.String()
}

func (n Note) String() string {
	return fmt.Sprintf("%v%d", n.PitchClass(), n.Octave)
}

type Notes = []Note
