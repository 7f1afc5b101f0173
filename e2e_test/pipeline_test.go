//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"math"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/jsphweid/chordgen/chroma"
	"github.com/jsphweid/chordgen/classify"
	"github.com/jsphweid/chordgen/cmd"
	"github.com/jsphweid/chordgen/logging"
	"github.com/jsphweid/chordgen/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rate = 22050

var triads = map[string][]float64{
	"C":  {261.63, 329.63, 392.00},
	"Am": {220.00, 261.63, 329.63},
	"G":  {196.00, 246.94, 293.66},
}

type tone struct {
	freqs []float64
	gain  float64
	pos   int
	total int
}

func (s *tone) Stream(buf [][2]float64) (int, bool) {
	if s.pos >= s.total {
		return 0, false
	}
	n := 0
	for ; n < len(buf) && s.pos < s.total; n++ {
		var v float64
		for _, f := range s.freqs {
			v += math.Sin(2 * math.Pi * f * float64(s.pos) / rate)
		}
		v *= s.gain / float64(len(s.freqs))
		buf[n] = [2]float64{v, v}
		s.pos++
	}
	return n, true
}

func (s *tone) Err() error { return nil }

func writeClip(t *testing.T, path string, freqs []float64, gain float64) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, &tone{freqs: freqs, gain: gain, total: rate / 2}, format))
}

func TestExtractTrainPredict(t *testing.T) {
	root := t.TempDir()
	for label, freqs := range triads {
		for i := 0; i < 5; i++ {
			writeClip(t, filepath.Join(root, "clips", label, string(rune('a'+i))+".wav"), freqs, 0.3+0.1*float64(i))
		}
	}

	clips, err := chroma.CollectClips(filepath.Join(root, "clips"))
	require.NoError(t, err)
	require.Len(t, clips, 15)

	table, err := chroma.NewExtractor().ExtractAll(clips, nil)
	require.NoError(t, err)
	require.NoError(t, chroma.WriteTable(filepath.Join(root, "TrainingData"), table))

	table, err = chroma.ReadTable(filepath.Join(root, "TrainingData.gob"))
	require.NoError(t, err)
	train, test, err := classify.Split(table, 0.2, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	m, err := classify.Train(train, classify.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1.0, m.Score(test))

	modelPath := filepath.Join(root, "model.gob")
	require.NoError(t, m.Save(modelPath))
	m, err = classify.Load(modelPath)
	require.NoError(t, err)

	fresh := filepath.Join(root, "fresh.wav")
	writeClip(t, fresh, triads["Am"], 0.45)
	c, err := chroma.NewExtractor().ComputeFile(fresh)
	require.NoError(t, err)
	assert.Equal(t, "Am", m.Predict(c))
}

func TestGenerateThenLookUp(t *testing.T) {
	router := cmd.NewRouter(logging.NoOpLogger{})
	send := func(path string, body any) *httptest.ResponseRecorder {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data)))
		return w
	}

	for seed := int64(0); seed < 20; seed++ {
		seed := seed
		w := send("/generate", model.GenerateRequestBody{Seed: &seed})
		require.Equal(t, http.StatusOK, w.Code)
		var generated model.Result
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &generated))

		w = send("/chords", model.NotesRequestBody{Notes: generated.Notes})
		require.Equal(t, http.StatusOK, w.Code)
		var looked model.ChordsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &looked))
		assert.Equal(t, generated.Chords, looked.Chords, "seed %d", seed)
	}
}
