package model

type GenerateRequestBody struct {
	NumNotes    int      `json:"num_notes"`
	Notes       []string `json:"notes"`
	Accidentals *bool    `json:"accidentals"`
	TheorySort  bool     `json:"theory_sort"`
	Seed        *int64   `json:"seed"`
}

type NotesRequestBody struct {
	Notes []string `json:"notes"`
}

type ChordsResponse struct {
	Chords []string `json:"chords"`
}

type ScalesResponse struct {
	Scales []string `json:"scales"`
}

type ErrorResponse struct {
	Error     string `json:"detail"`
	RequestId string `json:"request_id"`
}

type ScalesRequestBody struct {
	Notes []string `json:"notes"`

	// optional, e.g. "A minor"
	Key string `json:"key"`
}
