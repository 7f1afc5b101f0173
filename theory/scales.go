package theory

import (
	"fmt"
	"strings"

	"github.com/jsphweid/chordgen/model"
	"github.com/jsphweid/chordgen/note"
)

type mode struct {
	name      string
	intervals []int
}

var modes = []mode{
	{"major", []int{0, 2, 4, 5, 7, 9, 11}},
	{"natural minor", []int{0, 2, 3, 5, 7, 8, 10}},
	{"harmonic minor", []int{0, 2, 3, 5, 7, 8, 11}},
	{"melodic minor", []int{0, 2, 3, 5, 7, 9, 11}},
	{"dorian", []int{0, 2, 3, 5, 7, 9, 10}},
	{"phrygian", []int{0, 1, 3, 5, 7, 8, 10}},
	{"lydian", []int{0, 2, 4, 6, 7, 9, 11}},
	{"mixolydian", []int{0, 2, 4, 5, 7, 9, 10}},
	{"locrian", []int{0, 1, 3, 5, 6, 8, 10}},
	{"major pentatonic", []int{0, 2, 4, 7, 9}},
	{"minor pentatonic", []int{0, 3, 5, 7, 10}},
}

var modeAliases = map[string]string{
	"minor":   "natural minor",
	"aeolian": "natural minor",
	"ionian":  "major",
}

// root spelling used when naming scales
var roots = []string{"C", "Db", "D", "Eb", "E", "F", "F#", "G", "Ab", "A", "Bb", "B"}

func pitchMask(pitchClasses []string) (mask, error) {
	var m mask
	for _, pc := range pitchClasses {
		s, ok := note.Semitone(pc)
		if !ok {
			return 0, &model.MalformedInputError{Input: pc, Reason: "unknown pitch class"}
		}
		m |= 1 << uint(s)
	}
	return m, nil
}

func scaleMask(root int, md mode) mask {
	shifted := make([]int, len(md.intervals))
	for i, iv := range md.intervals {
		shifted[i] = root + iv
	}
	return toMask(shifted)
}

// AllScales lists every scale the detector knows, grouped by mode.
func AllScales() []model.Scale {
	var res []model.Scale
	for _, md := range modes {
		for _, r := range roots {
			res = append(res, model.Scale{Root: r, Mode: md.name})
		}
	}
	return res
}

// ScalesContaining returns the scales holding every given pitch class.
func ScalesContaining(pitchClasses []string) ([]model.Scale, error) {
	m, err := pitchMask(pitchClasses)
	if err != nil {
		return nil, err
	}

	var res []model.Scale
	for _, md := range modes {
		for i, r := range roots {
			if m&scaleMask(i, md) == m {
				res = append(res, model.Scale{Root: r, Mode: md.name})
			}
		}
	}
	return res, nil
}

// ParseScale reads names like "A minor" or "f# dorian".
func ParseScale(name string) (model.Scale, error) {
	fields := strings.Fields(strings.ToLower(name))
	if len(fields) < 2 {
		return model.Scale{}, &model.MalformedInputError{Input: name, Reason: "expected \"<root> <mode>\""}
	}

	root, err := note.ParsePitchClass(fields[0])
	if err != nil {
		return model.Scale{}, err
	}
	modeName := strings.Join(fields[1:], " ")
	if alias, ok := modeAliases[modeName]; ok {
		modeName = alias
	}
	for _, md := range modes {
		if md.name == modeName {
			return model.Scale{Root: root, Mode: md.name}, nil
		}
	}
	return model.Scale{}, &model.MalformedInputError{Input: name, Reason: fmt.Sprintf("unknown mode %q", modeName)}
}

// Contains reports whether every pitch class belongs to the scale.
func Contains(s model.Scale, pitchClasses []string) (bool, error) {
	root, ok := note.Semitone(s.Root)
	if !ok {
		return false, &model.MalformedInputError{Input: s.Root, Reason: "unknown root"}
	}
	m, err := pitchMask(pitchClasses)
	if err != nil {
		return false, err
	}
	for _, md := range modes {
		if md.name == s.Mode {
			return m&scaleMask(root, md) == m, nil
		}
	}
	return false, &model.MalformedInputError{Input: s.Mode, Reason: "unknown mode"}
}
