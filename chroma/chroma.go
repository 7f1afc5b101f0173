package chroma

import (
	"math"
	"math/cmplx"

	"github.com/jsphweid/chordgen/audio"
	"github.com/jsphweid/chordgen/model"
	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Extractor computes an STFT chromagram and averages it over time, giving one
// 12 bin vector per clip (C first).
type Extractor struct {
	WindowSize int
	HopSize    int

	// A4
	TuningFreq float64

	// bins outside this range are ignored
	MinFreq float64
	MaxFreq float64
}

func NewExtractor() *Extractor {
	return &Extractor{
		WindowSize: 2048,
		HopSize:    512,
		TuningFreq: 440.0,
		MinFreq:    80.0,
		MaxFreq:    8000.0,
	}
}

// binMapping maps every FFT bin to a chroma bin, -1 when out of range.
func (e *Extractor) binMapping(sampleRate int) []int {
	freqBins := e.WindowSize/2 + 1
	resolution := float64(sampleRate) / float64(e.WindowSize)
	mapping := make([]int, freqBins)
	for f := range mapping {
		freq := float64(f) * resolution
		if freq < e.MinFreq || freq > e.MaxFreq {
			mapping[f] = -1
			continue
		}
		midi := 69 + 12*math.Log2(freq/e.TuningFreq)
		mapping[f] = int(math.Round(midi)) % model.ChromaBins
	}
	return mapping
}

func (e *Extractor) frames(signal []float64) [][]float64 {
	if len(signal) < e.WindowSize {
		padded := make([]float64, e.WindowSize)
		copy(padded, signal)
		return [][]float64{padded}
	}

	var res [][]float64
	for start := 0; start+e.WindowSize <= len(signal); start += e.HopSize {
		frame := make([]float64, e.WindowSize)
		copy(frame, signal[start:start+e.WindowSize])
		res = append(res, frame)
	}
	return res
}

// Compute returns the mean chroma of a mono signal. Each frame is scaled so
// its loudest bin is 1 before averaging.
func (e *Extractor) Compute(signal []float64, sampleRate int) (model.Chroma, error) {
	var res model.Chroma
	if len(signal) == 0 {
		return res, errors.New("empty signal")
	}
	if sampleRate <= 0 || e.WindowSize <= 0 || e.HopSize <= 0 {
		return res, errors.Errorf("bad parameters: rate=%d window=%d hop=%d", sampleRate, e.WindowSize, e.HopSize)
	}

	mapping := e.binMapping(sampleRate)
	frames := e.frames(signal)
	perBin := make([][]float64, model.ChromaBins)
	for i := range perBin {
		perBin[i] = make([]float64, len(frames))
	}

	for t, frame := range frames {
		window.Apply(frame, window.Hann)
		spectrum := fft.FFTReal(frame)

		energy := make([]float64, model.ChromaBins)
		for f, bin := range mapping {
			if bin < 0 {
				continue
			}
			mag := cmplx.Abs(spectrum[f])
			energy[bin] += mag * mag
		}
		if peak := floats.Max(energy); peak > 0 {
			floats.Scale(1/peak, energy)
		}
		for bin, v := range energy {
			perBin[bin][t] = v
		}
	}

	for bin := range res {
		res[bin] = stat.Mean(perBin[bin], nil)
	}
	return res, nil
}

// ComputeFile decodes an mp3 or wav clip and returns its mean chroma.
func (e *Extractor) ComputeFile(path string) (model.Chroma, error) {
	buf, err := audio.Load(path)
	if err != nil {
		return model.Chroma{}, err
	}
	return e.Compute(audio.Mono(buf), int(buf.Format().SampleRate))
}
