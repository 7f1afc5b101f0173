package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jsphweid/chordgen/logging"
	"github.com/jsphweid/chordgen/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	w := httptest.NewRecorder()
	NewRouter(logging.NoOpLogger{}).ServeHTTP(w, req)
	return w
}

func TestServeChords(t *testing.T) {
	w := post(t, "/chords", model.NotesRequestBody{Notes: []string{"C", "E", "G"}})
	require.Equal(t, http.StatusOK, w.Code)

	var res model.ChordsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, []string{"C"}, res.Chords)
}

func TestServeChordsEmptyIsList(t *testing.T) {
	w := post(t, "/chords", model.NotesRequestBody{Notes: []string{"C", "C#"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"chords": []}`, w.Body.String())
}

func TestServeScales(t *testing.T) {
	w := post(t, "/scales", model.ScalesRequestBody{Notes: []string{"A", "C", "E"}, Key: "A minor"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"scales": ["A natural minor"]}`, w.Body.String())
}

func TestServeGenerateSeeded(t *testing.T) {
	seed := int64(7)
	body := model.GenerateRequestBody{NumNotes: 3, Seed: &seed}

	first := post(t, "/generate", body)
	require.Equal(t, http.StatusOK, first.Code)

	var res model.Result
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &res))
	assert.Len(t, res.Notes, 3)
	assert.NotEmpty(t, res.Chords)

	second := post(t, "/generate", body)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestServeGenerateErrors(t *testing.T) {
	cases := []struct {
		name   string
		body   any
		status int
	}{
		{"no chord", model.GenerateRequestBody{Notes: []string{"C4", "C#4"}}, http.StatusUnprocessableEntity},
		{"bad note", model.GenerateRequestBody{Notes: []string{"H4"}}, http.StatusBadRequest},
		{"too many notes", model.GenerateRequestBody{NumNotes: 13}, http.StatusBadRequest},
		{"not json", "nope", http.StatusBadRequest},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := post(t, "/generate", c.body)
			assert.Equal(t, c.status, w.Code)

			var res model.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			assert.NotEmpty(t, res.Error)
			assert.NotEmpty(t, res.RequestId)
		})
	}
}

func TestServeRejectsGet(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/chords", nil)
	w := httptest.NewRecorder()
	NewRouter(logging.NoOpLogger{}).ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
