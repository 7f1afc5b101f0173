package audio

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

const resampleQuality = 4

var Extensions = map[string]bool{
	".mp3": true,
	".wav": true,
}

func IsAudioFile(path string) bool {
	return Extensions[strings.ToLower(filepath.Ext(path))]
}

// Load decodes a whole mp3 or wav file into memory.
func Load(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open audio file")
	}
	defer f.Close()

	var s beep.StreamSeekCloser
	var format beep.Format
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		s, format, err = mp3.Decode(f)
	case ".wav":
		s, format, err = wav.Decode(f)
	default:
		return nil, errors.Errorf("unsupported audio format %q", ext)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "could not decode %v", path)
	}

	buf := beep.NewBuffer(format)
	buf.Append(s)
	if err := s.Err(); err != nil {
		return nil, errors.Wrapf(err, "could not read %v", path)
	}
	return buf, nil
}

// Mono averages both channels of the whole buffer.
func Mono(buf *beep.Buffer) []float64 {
	res := make([]float64, 0, buf.Len())
	s := buf.Streamer(0, buf.Len())
	chunk := make([][2]float64, 4096)
	for {
		n, ok := s.Stream(chunk)
		for _, frame := range chunk[:n] {
			res = append(res, (frame[0]+frame[1])/2)
		}
		if !ok || n == 0 {
			break
		}
	}
	return res
}

// Overlay mixes all buffers at the sample rate of the first one and cuts the
// mix to the first buffer's length. The mix is scaled by 1/len(bufs) so
// stacked notes don't clip.
func Overlay(bufs []*beep.Buffer) (beep.Streamer, beep.Format, error) {
	if len(bufs) == 0 {
		return nil, beep.Format{}, errors.New("nothing to overlay")
	}

	format := bufs[0].Format()
	if format.Precision == 0 {
		format.Precision = 2
	}

	streams := make([]beep.Streamer, 0, len(bufs))
	for _, b := range bufs {
		var s beep.Streamer = b.Streamer(0, b.Len())
		if rate := b.Format().SampleRate; rate != format.SampleRate {
			s = beep.Resample(resampleQuality, rate, format.SampleRate, s)
		}
		streams = append(streams, s)
	}

	mixed := &effects.Gain{
		Streamer: beep.Take(bufs[0].Len(), beep.Mix(streams...)),
		Gain:     1/float64(len(bufs)) - 1,
	}
	return mixed, format, nil
}

func WriteWAV(path string, s beep.Streamer, format beep.Format) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "could not create %v", path)
	}
	defer f.Close()

	if err := wav.Encode(f, s, format); err != nil {
		return errors.Wrapf(err, "could not encode %v", path)
	}
	return nil
}

// EncodeMP3 converts a wav file with ffmpeg, beep has no mp3 encoder.
func EncodeMP3(ctx context.Context, ffmpegPath, wavPath, mp3Path string) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, ffmpegPath,
		"-y",
		"-loglevel", "error",
		"-i", wavPath,
		"-f", "mp3",
		"-codec:a", "libmp3lame",
		"-q:a", "2",
		mp3Path,
	)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "ffmpeg failed: %v", strings.TrimSpace(stderr.String()))
	}
	return nil
}
