package midi

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/jsphweid/chordgen/model"
	"github.com/jsphweid/chordgen/note"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	channel  = 0
	velocity = 100
)

var ticks = smf.MetricTicks(960)

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF

	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return &blank, fmt.Errorf("error reading midi file... %w", err)
	}

	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, fmt.Errorf("error parsing midi file... %w", err)
	}

	return res, nil
}

// WriteChord stores the notes as one block chord lasting a whole note.
func WriteChord(path string, notes []model.Note) error {
	if len(notes) == 0 {
		return errors.New("no notes to write")
	}

	var track smf.Track
	for _, n := range notes {
		track.Add(0, midi.NoteOn(channel, note.Midi(n), velocity))
	}
	for i, n := range notes {
		var delta uint32
		if i == 0 {
			delta = ticks.Ticks4th() * 4
		}
		track.Add(delta, midi.NoteOff(channel, note.Midi(n)))
	}
	track.Close(0)

	s := smf.New()
	s.TimeFormat = ticks
	if err := s.Add(track); err != nil {
		return fmt.Errorf("could not add track: %w", err)
	}
	if err := s.WriteFile(path); err != nil {
		return fmt.Errorf("could not write midi file: %w", err)
	}
	return nil
}

// ReadChord lists the struck notes of a MIDI file in the order they start.
func ReadChord(path string) ([]model.Note, error) {
	s, err := ReadMidiFile(path)
	if err != nil {
		return nil, err
	}

	var res []model.Note
	for _, events := range s.Tracks {
		for _, event := range events {
			var ch, key, vel uint8
			if event.Message.GetNoteOn(&ch, &key, &vel) && vel > 0 {
				res = append(res, note.FromMidi(key))
			}
		}
	}
	return res, nil
}
