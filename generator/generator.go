package generator

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/jsphweid/chordgen/constants"
	"github.com/jsphweid/chordgen/logging"
	"github.com/jsphweid/chordgen/model"
	"github.com/jsphweid/chordgen/note"
	"github.com/jsphweid/chordgen/theory"
	"github.com/jsphweid/chordgen/util"
)

type Options struct {
	// 0 picks a count between MinRandomNotes and MaxRandomNotes per attempt
	NoteCount int

	// used verbatim instead of random notes, still normalized and sorted
	ExplicitNotes []string

	EnableAccidentals bool
	SortMode          note.SortMode

	// 0 means constants.DefaultMaxAttempts
	MaxAttempts int

	// per attempt cap on note and octave draws, 0 means
	// constants.MaxDrawsPerAttempt
	MaxDraws int
}

func DefaultOptions() Options {
	return Options{
		EnableAccidentals: true,
		SortMode:          note.OctaveOrder,
		MaxAttempts:       constants.DefaultMaxAttempts,
	}
}

type Generator struct {
	opts   Options
	rng    *rand.Rand
	lookup theory.Lookup
	logger logging.Logger
}

func New(opts Options, rng *rand.Rand) *Generator {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = constants.DefaultMaxAttempts
	}
	if opts.MaxDraws <= 0 {
		opts.MaxDraws = constants.MaxDrawsPerAttempt
	}
	return &Generator{
		opts:   opts,
		rng:    rng,
		lookup: theory.FindChords,
		logger: logging.NoOpLogger{},
	}
}

func (g *Generator) WithLookup(lookup theory.Lookup) *Generator {
	g.lookup = lookup
	return g
}

func (g *Generator) WithLogger(logger logging.Logger) *Generator {
	g.logger = logger.WithFields(logging.Fields{"component": "generator"})
	return g
}

// Generate returns notes that form at least one recognized chord. Every
// rejected attempt is thrown away whole and the next one starts from scratch.
// Explicit notes are checked once: they can't change between attempts.
func (g *Generator) Generate() (model.Result, error) {
	if len(g.opts.ExplicitNotes) > 0 {
		return g.fromExplicit()
	}

	if n := g.opts.NoteCount; n != 0 && (n < constants.MinNotes || n > constants.MaxNotes) {
		return model.Result{}, &model.MalformedInputError{
			Input:  strconv.Itoa(n),
			Reason: fmt.Sprintf("note count must be within %d-%d", constants.MinNotes, constants.MaxNotes),
		}
	}

	var last []model.Note
	for attempt := 1; attempt <= g.opts.MaxAttempts; attempt++ {
		notes, ok := g.randomNotes(g.noteCount())
		note.Sort(notes, g.opts.SortMode)
		last = notes
		if !ok {
			g.logger.Debug("attempt ran out of draws", logging.Fields{"attempt": attempt, "notes": note.Strings(notes)})
			continue
		}

		chords := g.lookup(note.PitchClasses(notes))
		if len(chords) == 0 {
			g.logger.Debug("no chord", logging.Fields{"attempt": attempt, "notes": note.Strings(notes)})
			continue
		}
		return g.result(notes, chords, attempt), nil
	}

	return model.Result{}, &model.InvalidCombinationError{
		Attempts:  g.opts.MaxAttempts,
		LastNotes: note.Strings(last),
	}
}

func (g *Generator) fromExplicit() (model.Result, error) {
	notes, err := note.ParseAll(g.opts.ExplicitNotes)
	if err != nil {
		return model.Result{}, err
	}
	note.Sort(notes, g.opts.SortMode)

	chords := g.lookup(note.PitchClasses(notes))
	if len(chords) == 0 {
		return model.Result{}, &model.InvalidCombinationError{
			Attempts:  1,
			LastNotes: note.Strings(notes),
		}
	}
	return g.result(notes, chords, 1), nil
}

func (g *Generator) result(notes []model.Note, chords []string, attempts int) model.Result {
	res := model.Result{
		PitchClasses: note.PitchClasses(notes),
		Notes:        note.Strings(notes),
		Chords:       chords,
		Attempts:     attempts,
	}
	g.logger.Debug("found chord", logging.Fields{
		"notes":    res.Notes,
		"chords":   res.Chords,
		"attempts": attempts,
	})
	return res
}

func (g *Generator) noteCount() int {
	if g.opts.NoteCount > 0 {
		return g.opts.NoteCount
	}
	span := constants.MaxRandomNotes - constants.MinRandomNotes + 1
	return constants.MinRandomNotes + g.rng.Intn(span)
}

// randomNotes draws until it has count distinct notes, in generation order.
// ok is false when the draw budget runs out first.
func (g *Generator) randomNotes(count int) ([]model.Note, bool) {
	notes := make([]model.Note, 0, count)
	seen := make(map[string]bool)

	for draws := 0; len(notes) < count; draws++ {
		if draws >= g.opts.MaxDraws {
			return notes, false
		}

		letter := note.Letters[g.rng.Intn(len(note.Letters))]
		accidental := model.Natural
		if g.opts.EnableAccidentals {
			accidental = note.Accidentals[g.rng.Intn(len(note.Accidentals))]
		}

		octave, ok := g.pickOctave(notes)
		if !ok {
			return notes, false
		}

		n := note.New(letter, accidental, octave)
		if seen[n.String()] {
			continue
		}
		seen[n.String()] = true
		notes = append(notes, n)
	}
	return notes, true
}

// pickOctave draws uniformly from the full range and redraws until the octave
// is within OctaveSpan of the first generated note. The first note is free.
func (g *Generator) pickOctave(notes []model.Note) (int, bool) {
	span := constants.MaxOctave - constants.MinOctave + 1
	for i := 0; i < g.opts.MaxDraws; i++ {
		octave := constants.MinOctave + g.rng.Intn(span)
		if len(notes) == 0 {
			return octave, true
		}
		if util.Abs(octave-notes[0].Octave) <= constants.OctaveSpan {
			return octave, true
		}
	}
	return 0, false
}
