package model

// Result is a validated chord candidate. PitchClasses and Notes share the
// same (sorted) order.
type Result struct {
	PitchClasses []string `json:"pitch_classes"`
	Notes        []string `json:"notes"`
	Chords       []string `json:"chords"`

	// NOTE: counts the successful attempt too
	Attempts int `json:"attempts"`
}

type Scale struct {
	Root string `json:"root"`
	Mode string `json:"mode"`
}

func (s Scale) String() string {
	return s.Root + " " + s.Mode
}
