package chroma

import (
	"encoding/csv"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/jsphweid/chordgen/audio"
	"github.com/jsphweid/chordgen/model"
	"github.com/jsphweid/chordgen/util"
	"github.com/pkg/errors"
)

var BinNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

type Clip struct {
	Label string
	Path  string
}

// CollectClips walks root and labels every audio file with the name of the
// directory it sits in, e.g. root/Am/take1.wav is "Am".
func CollectClips(root string) ([]Clip, error) {
	var res []Clip
	walk := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !audio.IsAudioFile(path) {
			return nil
		}
		res = append(res, Clip{Label: filepath.Base(filepath.Dir(path)), Path: path})
		return nil
	}
	if err := filepath.WalkDir(root, walk); err != nil {
		return nil, errors.Wrapf(err, "could not walk %v", root)
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].Path < res[j].Path
	})
	return res, nil
}

// ExtractAll computes a feature for every clip. progress, if set, is called
// after each clip.
func (e *Extractor) ExtractAll(clips []Clip, progress func()) (model.FeatureTable, error) {
	table := make(model.FeatureTable, 0, len(clips))
	for _, clip := range clips {
		c, err := e.ComputeFile(clip.Path)
		if err != nil {
			return nil, errors.Wrapf(err, "could not extract %v", clip.Path)
		}
		table = append(table, model.Feature{Label: clip.Label, Chroma: c, Source: clip.Path})
		if progress != nil {
			progress()
		}
	}
	return table, nil
}

func WriteCSV(path string, table model.FeatureTable) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "could not create %v", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append([]string{"Chord"}, BinNames...)
	if err := w.Write(header); err != nil {
		return errors.Wrap(err, "could not write csv header")
	}
	for _, row := range table {
		record := make([]string, 0, len(header))
		record = append(record, row.Label)
		for _, v := range row.Chroma {
			record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(record); err != nil {
			return errors.Wrap(err, "could not write csv row")
		}
	}
	w.Flush()
	return errors.Wrap(w.Error(), "could not flush csv")
}

// WriteTable saves the table as <base>.csv and <base>.gob.
func WriteTable(base string, table model.FeatureTable) error {
	if err := WriteCSV(base+".csv", table); err != nil {
		return err
	}
	return util.CreateBinary(base+".gob", table)
}

func ReadTable(path string) (model.FeatureTable, error) {
	return util.ReadBinary[model.FeatureTable](path)
}
