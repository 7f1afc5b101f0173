package render

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jsphweid/chordgen/logging"
	"github.com/jsphweid/chordgen/midi"
	"github.com/jsphweid/chordgen/model"
	"github.com/pkg/errors"
)

// WriteMidi stores the chord as <dest>/<notes>.mid. It checks dest the same
// way Render does and only renames a finished file into place.
func (r *Renderer) WriteMidi(notes []model.Note, dest string) (string, error) {
	if len(notes) == 0 {
		return "", errors.New("no notes to write")
	}

	tmp := filepath.Join(dest, "."+uuid.New().String()+".mid")
	if err := checkDest(dest, tmp); err != nil {
		return "", err
	}
	defer os.Remove(tmp)

	if err := midi.WriteChord(tmp, notes); err != nil {
		return "", err
	}
	out := filepath.Join(dest, OutputName(notes, "mid"))
	if err := os.Rename(tmp, out); err != nil {
		return "", errors.Wrap(err, "could not move midi file into place")
	}
	r.logger.Info("wrote midi", logging.Fields{"path": out})
	return out, nil
}
