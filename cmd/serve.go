package cmd

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/chordgen/config"
	"github.com/jsphweid/chordgen/logging"
	"github.com/jsphweid/chordgen/model"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "address to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves chord generation and lookup over HTTP",
	Long: `Serves JSON endpoints for local tools:
  POST /generate  {"num_notes": 3, "notes": [], "accidentals": true, "theory_sort": false, "seed": 1}
  POST /chords    {"notes": ["C", "E", "G"]}
  POST /scales    {"notes": ["C", "E", "G"], "key": "A minor"}`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := logging.WithFields(logging.Fields{"cmd": "serve"})
		server := &http.Server{
			Addr:              serveAddr,
			Handler:           NewRouter(logger),
			ReadHeaderTimeout: 10 * time.Second,
		}
		logger.Info("listening", logging.Fields{"addr": serveAddr})
		cobra.CheckErr(server.ListenAndServe())
	},
}

// NewRouter wires the JSON endpoints behind a permissive CORS handler.
func NewRouter(logger logging.Logger) http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/generate", handleGenerate(logger)).Methods("POST")
	router.HandleFunc("/chords", handleChords(logger)).Methods("POST")
	router.HandleFunc("/scales", handleScales(logger)).Methods("POST")

	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, logger logging.Logger, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrMalformedInput):
		status = http.StatusBadRequest
	case errors.Is(err, model.ErrInvalidCombination):
		status = http.StatusUnprocessableEntity
	}

	id := uuid.New().String()
	logger.Error(err, "request failed", logging.Fields{"request_id": id, "status": status})
	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), RequestId: id})
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &model.MalformedInputError{Input: "request body", Reason: err.Error()}
	}
	return nil
}

func handleGenerate(logger logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input model.GenerateRequestBody
		if err := decode(r, &input); err != nil {
			writeError(w, logger, err)
			return
		}

		cfg := config.Default()
		cfg.DevelopChord = false
		cfg.NumNotes = input.NumNotes
		cfg.Notes = input.Notes
		cfg.TheorySort = input.TheorySort
		cfg.Seed = input.Seed
		if input.Accidentals != nil {
			cfg.NoAccidentals = !*input.Accidentals
		}
		if err := cfg.Validate(); err != nil {
			writeError(w, logger, err)
			return
		}

		res, err := generateChord(cfg, logger)
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func handleChords(logger logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input model.NotesRequestBody
		if err := decode(r, &input); err != nil {
			writeError(w, logger, err)
			return
		}
		chords, err := lookupChords(input.Notes)
		if err != nil {
			writeError(w, logger, err)
			return
		}
		if chords == nil {
			chords = []string{}
		}
		writeJSON(w, http.StatusOK, model.ChordsResponse{Chords: chords})
	}
}

func handleScales(logger logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input model.ScalesRequestBody
		if err := decode(r, &input); err != nil {
			writeError(w, logger, err)
			return
		}
		scales, err := lookupScales(input.Notes, input.Key)
		if err != nil {
			writeError(w, logger, err)
			return
		}
		if scales == nil {
			scales = []string{}
		}
		writeJSON(w, http.StatusOK, model.ScalesResponse{Scales: scales})
	}
}
