package constants

import "os"

func GetSampleDir() string {
	path := os.Getenv("SAMPLE_PATH")
	if path != "" {
		return path
	}
	return "./piano-mp3"
}

func GetDataDir() string {
	path := os.Getenv("DATA_PATH")
	if path != "" {
		return path
	}
	return "."
}

const DefaultDest = "stored-chords"

const (
	MinOctave = 1
	MaxOctave = 7

	// how far any note may sit from the first generated note
	OctaveSpan = 2
)

const (
	MinRandomNotes = 2
	MaxRandomNotes = 5

	// bounds for an explicit num-notes
	MinNotes = 2
	MaxNotes = 12
)

const DefaultMaxAttempts = 10000

// draws allowed inside a single attempt before it is counted as failed
const MaxDrawsPerAttempt = 1000

const (
	DefaultSampleExt    = ".mp3"
	DefaultOutputFormat = "mp3"
	DefaultFFmpegPath   = "ffmpeg"
)

const (
	DefaultTableName = "TrainingData"
	DefaultModelName = "model.gob"
)
