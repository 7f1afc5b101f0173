package theory

import (
	"sort"

	"github.com/jsphweid/chordgen/note"
)

type quality struct {
	name      string
	intervals []int
}

// Intervals are semitones above the root, folded into one octave.
var qualities = []quality{
	{"5", []int{0, 7}},
	{"", []int{0, 4, 7}},
	{"m", []int{0, 3, 7}},
	{"dim", []int{0, 3, 6}},
	{"aug", []int{0, 4, 8}},
	{"sus2", []int{0, 2, 7}},
	{"sus4", []int{0, 5, 7}},
	{"6", []int{0, 4, 7, 9}},
	{"m6", []int{0, 3, 7, 9}},
	{"7", []int{0, 4, 7, 10}},
	{"7-5", []int{0, 4, 6, 10}},
	{"7+5", []int{0, 4, 8, 10}},
	{"7sus4", []int{0, 5, 7, 10}},
	{"m7", []int{0, 3, 7, 10}},
	{"m7-5", []int{0, 3, 6, 10}},
	{"dim7", []int{0, 3, 6, 9}},
	{"M7", []int{0, 4, 7, 11}},
	{"M7+5", []int{0, 4, 8, 11}},
	{"mM7", []int{0, 3, 7, 11}},
	{"add9", []int{0, 2, 4, 7}},
	{"madd9", []int{0, 2, 3, 7}},
	{"add11", []int{0, 4, 5, 7}},
	{"69", []int{0, 2, 4, 7, 9}},
	{"9", []int{0, 2, 4, 7, 10}},
	{"m9", []int{0, 2, 3, 7, 10}},
	{"M9", []int{0, 2, 4, 7, 11}},
	{"9sus4", []int{0, 2, 5, 7, 10}},
	{"7-9", []int{0, 1, 4, 7, 10}},
	{"7+9", []int{0, 3, 4, 7, 10}},
	{"7+11", []int{0, 4, 6, 7, 10}},
	{"M7+11", []int{0, 4, 6, 7, 11}},
	{"11", []int{0, 2, 4, 5, 7, 10}},
	{"m11", []int{0, 2, 3, 5, 7, 10}},
	{"13", []int{0, 2, 4, 7, 9, 10}},
	{"M13", []int{0, 2, 4, 7, 9, 11}},
}

type mask = uint16

var qualitiesByMask = make(map[mask][]string)

func init() {
	for _, q := range qualities {
		m := toMask(q.intervals)
		qualitiesByMask[m] = append(qualitiesByMask[m], q.name)
	}
}

func toMask(semitones []int) mask {
	var m mask
	for _, s := range semitones {
		m |= 1 << uint((s%12+12)%12)
	}
	return m
}

// rotate moves every bit of m down by root semitones.
func rotate(m mask, root int) mask {
	return ((m >> uint(root)) | (m << uint(12-root))) & 0xfff
}

type pitch struct {
	name     string
	semitone int
}

// distinctPitches keeps the first spelling of every pitch, in input order.
func distinctPitches(pitchClasses []string) ([]pitch, bool) {
	var res []pitch
	seen := make(map[int]bool)
	for _, pc := range pitchClasses {
		s, ok := note.Semitone(pc)
		if !ok {
			return nil, false
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		res = append(res, pitch{name: pc, semitone: s})
	}
	return res, true
}

// FindChords returns every chord name the pitch classes form, sorted. Each
// note is tried as the root; when the root is not the first (lowest) note the
// name gets a slash bass, e.g. "C/E". Octaves and repeated pitches are
// ignored, so the result only depends on the pitch set and its bass.
func FindChords(pitchClasses []string) []string {
	pitches, ok := distinctPitches(pitchClasses)
	if !ok || len(pitches) < 2 {
		return nil
	}

	var set []int
	for _, p := range pitches {
		set = append(set, p.semitone)
	}
	m := toMask(set)
	bass := pitches[0]

	found := make(map[string]bool)
	for _, root := range pitches {
		for _, q := range qualitiesByMask[rotate(m, root.semitone)] {
			name := root.name + q
			if root.semitone != bass.semitone {
				name += "/" + bass.name
			}
			found[name] = true
		}
	}

	res := make([]string, 0, len(found))
	for name := range found {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// Lookup names the chords of a pitch class set. FindChords is the only real
// one; tests swap in fakes.
type Lookup func(pitchClasses []string) []string
