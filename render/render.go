package render

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/google/uuid"
	"github.com/jsphweid/chordgen/audio"
	"github.com/jsphweid/chordgen/constants"
	"github.com/jsphweid/chordgen/logging"
	"github.com/jsphweid/chordgen/model"
	"github.com/jsphweid/chordgen/note"
	"github.com/pkg/errors"
)

type Renderer struct {
	SampleDir  string
	SampleExt  string
	Format     string
	FFmpegPath string

	logger logging.Logger
}

func New(sampleDir, format string) *Renderer {
	return &Renderer{
		SampleDir:  sampleDir,
		SampleExt:  constants.DefaultSampleExt,
		Format:     format,
		FFmpegPath: constants.DefaultFFmpegPath,
		logger:     logging.NoOpLogger{},
	}
}

func (r *Renderer) WithLogger(logger logging.Logger) *Renderer {
	r.logger = logger.WithFields(logging.Fields{"component": "renderer"})
	return r
}

// OutputName joins the notes as written, sharps included.
func OutputName(notes []model.Note, format string) string {
	return strings.Join(note.Strings(notes), "_") + "." + format
}

// SamplePath is where the sample for n lives. Sharps are looked up under their
// flat spelling.
func (r *Renderer) SamplePath(n model.Note) string {
	return filepath.Join(r.SampleDir, note.FileName(n)+r.SampleExt)
}

func (r *Renderer) resolveSamples(notes []model.Note) ([]string, error) {
	paths := make([]string, 0, len(notes))
	for _, n := range notes {
		path := r.SamplePath(n)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			return nil, &model.MissingSampleError{Note: n.String(), Path: path}
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// checkDest makes sure dest is a writable directory by creating the file the
// render will be written to.
func checkDest(dest, tmpPath string) error {
	info, err := os.Stat(dest)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.InvalidDestinationError{Dest: dest, Reason: "make sure directory exists"}
		}
		return &model.InvalidDestinationError{Dest: dest, Reason: err.Error()}
	}
	if !info.IsDir() {
		return &model.InvalidDestinationError{Dest: dest, Reason: "not a directory"}
	}

	f, err := os.Create(tmpPath)
	if err != nil {
		return &model.InvalidDestinationError{Dest: dest, Reason: "not writable: " + err.Error()}
	}
	return f.Close()
}

// Render overlays one sample per note and writes the mix to dest. Nothing is
// left in dest when it fails.
func (r *Renderer) Render(ctx context.Context, notes []model.Note, dest string) (string, error) {
	if len(notes) == 0 {
		return "", errors.New("no notes to render")
	}
	if r.Format != "mp3" && r.Format != "wav" {
		return "", &model.MalformedInputError{Input: r.Format, Reason: "format must be mp3 or wav"}
	}

	paths, err := r.resolveSamples(notes)
	if err != nil {
		return "", err
	}

	id := uuid.New().String()
	tmpWav := filepath.Join(dest, "."+id+".wav")
	if err := checkDest(dest, tmpWav); err != nil {
		return "", err
	}
	defer os.Remove(tmpWav)

	bufs := make([]*beep.Buffer, 0, len(paths))
	for i, path := range paths {
		buf, err := audio.Load(path)
		if err != nil {
			return "", errors.Wrapf(err, "could not load sample for %v", notes[i])
		}
		r.logger.Debug("loaded sample", logging.Fields{"note": notes[i].String(), "path": path})
		bufs = append(bufs, buf)
	}

	mixed, format, err := audio.Overlay(bufs)
	if err != nil {
		return "", err
	}
	if err := audio.WriteWAV(tmpWav, mixed, format); err != nil {
		return "", err
	}

	tmpOut := tmpWav
	if r.Format == "mp3" {
		tmpOut = filepath.Join(dest, "."+id+".mp3")
		defer os.Remove(tmpOut)
		if err := audio.EncodeMP3(ctx, r.FFmpegPath, tmpWav, tmpOut); err != nil {
			return "", err
		}
	}

	out := filepath.Join(dest, OutputName(notes, r.Format))
	if err := os.Rename(tmpOut, out); err != nil {
		return "", errors.Wrap(err, "could not move render into place")
	}
	r.logger.Info("rendered chord", logging.Fields{"path": out})
	return out, nil
}
