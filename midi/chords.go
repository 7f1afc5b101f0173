package midi

import (
	"sort"

	"github.com/jsphweid/chordgen/model"
	"github.com/jsphweid/chordgen/note"
	"github.com/jsphweid/chordgen/util"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Sounding is the set of keys held down from Offset (microseconds) until the
// next Sounding.
type Sounding struct {
	Offset int64
	Notes  []model.Note
}

type keyEvent struct {
	offset int64
	off    bool
	key    uint8
}

func keyEvents(s *smf.SMF) []keyEvent {
	var res []keyEvent
	for _, track := range s.Tracks {
		var absTicks int64
		for _, event := range track {
			absTicks += int64(event.Delta)
			var ch, key, vel uint8
			switch {
			case event.Message.GetNoteOn(&ch, &key, &vel):
				// note on with zero velocity is a note off
				res = append(res, keyEvent{offset: s.TimeAt(absTicks), off: vel == 0, key: key})
			case event.Message.GetNoteOff(&ch, &key, &vel):
				res = append(res, keyEvent{offset: s.TimeAt(absTicks), off: true, key: key})
			}
		}
	}

	// earlier first, then note offs
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].offset != res[j].offset {
			return res[i].offset < res[j].offset
		}
		return res[i].off && !res[j].off
	})
	return res
}

// Chords sweeps through every track and reports each change of the held
// notes. Moments where nothing is held are skipped.
func Chords(s *smf.SMF) []Sounding {
	events := keyEvents(s)
	pressed := make(map[uint8]bool)

	var res []Sounding
	for i, evt := range events {
		if evt.off {
			delete(pressed, evt.key)
		} else {
			pressed[evt.key] = true
		}
		if i+1 < len(events) && events[i+1].offset == evt.offset {
			continue
		}
		if len(pressed) == 0 {
			continue
		}

		var notes []model.Note
		for _, k := range util.GetSortedKeys(pressed) {
			notes = append(notes, note.FromMidi(k))
		}
		res = append(res, Sounding{Offset: evt.offset, Notes: notes})
	}
	return res
}
