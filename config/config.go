package config

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jsphweid/chordgen/constants"
	"github.com/jsphweid/chordgen/generator"
	"github.com/jsphweid/chordgen/model"
	"github.com/jsphweid/chordgen/note"
	"github.com/spf13/pflag"
)

// Config is everything the generate command understands.
type Config struct {
	Dest          string
	NumNotes      int
	Notes         []string
	DevelopChord  bool
	DebugMode     bool
	TheorySort    bool
	NoAccidentals bool
	MaxAttempts   int

	// nil means seed from the clock
	Seed *int64

	SampleDir  string
	Format     string
	Midi       bool
	FFmpegPath string
}

func Default() Config {
	return Config{
		Dest:         constants.DefaultDest,
		DevelopChord: true,
		MaxAttempts:  constants.DefaultMaxAttempts,
		SampleDir:    constants.GetSampleDir(),
		Format:       constants.DefaultOutputFormat,
		FFmpegPath:   constants.DefaultFFmpegPath,
	}
}

// NewFlagSet binds every option as a --flag onto cfg.
func NewFlagSet(cfg *Config) *pflag.FlagSet {
	fs := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	fs.StringVar(&cfg.Dest, "dest", cfg.Dest, "output directory for rendered chords")
	fs.IntVar(&cfg.NumNotes, "num-notes", cfg.NumNotes, "exact number of notes (default random 2-5)")
	fs.StringSliceVar(&cfg.Notes, "notes", cfg.Notes, "comma separated notes to use instead of random ones, e.g. C4,E4,G4")
	fs.BoolVar(&cfg.DevelopChord, "develop-chord", cfg.DevelopChord, "render the chord to an audio file")
	fs.BoolVar(&cfg.DebugMode, "debug-mode", cfg.DebugMode, "log chosen notes and matched chords")
	fs.BoolVar(&cfg.TheorySort, "sort", cfg.TheorySort, "sort by octave, letter and accidental instead of octave only")
	fs.BoolVar(&cfg.NoAccidentals, "no-accidentals", cfg.NoAccidentals, "only pick natural notes")
	fs.IntVar(&cfg.MaxAttempts, "max-attempts", cfg.MaxAttempts, "give up after this many rejected note sets")
	fs.Int64("seed", 0, "seed for the random source")
	fs.StringVar(&cfg.SampleDir, "samples", cfg.SampleDir, "directory of single note samples (env SAMPLE_PATH)")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "output format: mp3|wav")
	fs.BoolVar(&cfg.Midi, "midi", cfg.Midi, "also write the chord as a MIDI file")
	fs.StringVar(&cfg.FFmpegPath, "ffmpeg", cfg.FFmpegPath, "path to ffmpeg, used for mp3 output")
	return fs
}

// Parse accepts both the old free-form tokens (dest=out, num-notes=3,
// notes=C4,E4,G4, -develop-chord, -no-develop-chord, -debug-mode, -sort)
// and regular --flags. Later arguments win.
func Parse(args []string) (Config, error) {
	cfg := Default()
	fs := NewFlagSet(&cfg)
	fs.SetOutput(io.Discard)

	var flagArgs []string
	for _, arg := range args {
		handled, err := applyToken(&cfg, arg)
		if err != nil {
			return cfg, err
		}
		if !handled {
			flagArgs = append(flagArgs, arg)
		}
	}

	if err := fs.Parse(flagArgs); err != nil {
		if err == pflag.ErrHelp {
			return cfg, err
		}
		return cfg, &model.MalformedInputError{Input: strings.Join(flagArgs, " "), Reason: err.Error()}
	}
	if rest := fs.Args(); len(rest) > 0 {
		return cfg, &model.MalformedInputError{Input: rest[0], Reason: "unrecognized argument"}
	}
	if fs.Changed("seed") {
		seed, _ := fs.GetInt64("seed")
		cfg.Seed = &seed
	}

	return cfg, cfg.Validate()
}

func applyToken(cfg *Config, arg string) (bool, error) {
	switch arg {
	case "-develop-chord":
		cfg.DevelopChord = true
		return true, nil
	case "-no-develop-chord":
		cfg.DevelopChord = false
		return true, nil
	case "-debug-mode":
		cfg.DebugMode = true
		return true, nil
	case "-sort":
		cfg.TheorySort = true
		return true, nil
	}

	if strings.HasPrefix(arg, "-") {
		return false, nil
	}
	key, value, ok := strings.Cut(arg, "=")
	if !ok {
		return false, nil
	}

	switch key {
	case "dest":
		cfg.Dest = value
	case "num-notes":
		n, err := strconv.Atoi(value)
		if err != nil {
			return true, &model.MalformedInputError{Input: arg, Reason: "num-notes must be an integer"}
		}
		cfg.NumNotes = n
	case "notes":
		cfg.Notes = splitNotes(value)
	default:
		return true, &model.MalformedInputError{Input: arg, Reason: fmt.Sprintf("unknown option %q", key)}
	}
	return true, nil
}

func splitNotes(value string) []string {
	var res []string
	for _, s := range strings.Split(value, ",") {
		if s = strings.TrimSpace(s); s != "" {
			res = append(res, s)
		}
	}
	return res
}

func (c Config) Validate() error {
	if c.Dest == "" {
		return &model.MalformedInputError{Input: "dest", Reason: "must not be empty"}
	}
	if c.NumNotes != 0 && (c.NumNotes < constants.MinNotes || c.NumNotes > constants.MaxNotes) {
		return &model.MalformedInputError{
			Input:  strconv.Itoa(c.NumNotes),
			Reason: fmt.Sprintf("num-notes must be within %d-%d", constants.MinNotes, constants.MaxNotes),
		}
	}
	if len(c.Notes) > 0 {
		if _, err := note.ParseAll(c.Notes); err != nil {
			return err
		}
		if c.NumNotes != 0 && c.NumNotes != len(c.Notes) {
			return &model.MalformedInputError{
				Input:  strings.Join(c.Notes, ","),
				Reason: fmt.Sprintf("got %d notes but num-notes=%d", len(c.Notes), c.NumNotes),
			}
		}
	}
	if c.MaxAttempts <= 0 {
		return &model.MalformedInputError{Input: strconv.Itoa(c.MaxAttempts), Reason: "max-attempts must be positive"}
	}
	if c.Format != "mp3" && c.Format != "wav" {
		return &model.MalformedInputError{Input: c.Format, Reason: "format must be mp3 or wav"}
	}
	return nil
}

func (c Config) Options() generator.Options {
	opts := generator.DefaultOptions()
	opts.NoteCount = c.NumNotes
	opts.ExplicitNotes = c.Notes
	opts.EnableAccidentals = !c.NoAccidentals
	opts.MaxAttempts = c.MaxAttempts
	if c.TheorySort {
		opts.SortMode = note.TheoryOrder
	}
	return opts
}
