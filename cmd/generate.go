package cmd

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/jsphweid/chordgen/config"
	"github.com/jsphweid/chordgen/generator"
	"github.com/jsphweid/chordgen/logging"
	"github.com/jsphweid/chordgen/model"
	"github.com/jsphweid/chordgen/note"
	"github.com/jsphweid/chordgen/render"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func init() {
	// only for help output, parsing goes through config.Parse
	helpCfg := config.Default()
	generateCmd.Flags().AddFlagSet(config.NewFlagSet(&helpCfg))
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate [tokens...]",
	Short: "Generates a random chord and renders it",
	Long: `Generates random notes until they form a recognized chord, then overlays the
matching piano samples into <dest>/<note1>_..._<noteN>.mp3.

Old style tokens still work alongside the flags:
  chordgen generate dest=out num-notes=3 -sort -debug-mode
  chordgen generate notes=C4,E4,G4 -no-develop-chord`,
	DisableFlagParsing: true,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Parse(args)
		if err == pflag.ErrHelp {
			cobra.CheckErr(cmd.Help())
			return
		}
		cobra.CheckErr(err)
		cobra.CheckErr(runGenerate(cmd.Context(), cmd.OutOrStdout(), cfg))
	},
}

func newRand(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func generateChord(cfg config.Config, logger logging.Logger) (model.Result, error) {
	return generator.New(cfg.Options(), newRand(cfg.Seed)).WithLogger(logger).Generate()
}

func runGenerate(ctx context.Context, out io.Writer, cfg config.Config) error {
	if cfg.DebugMode {
		logging.SetLevel(logging.DebugLevel)
	}
	logger := logging.WithFields(logging.Fields{"cmd": "generate"})

	res, err := generateChord(cfg, logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "notes:  %v\n", strings.Join(res.Notes, " "))
	fmt.Fprintf(out, "chords: %v\n", strings.Join(res.Chords, ", "))

	if !cfg.DevelopChord && !cfg.Midi {
		return nil
	}
	notes, err := note.ParseAll(res.Notes)
	if err != nil {
		return err
	}

	r := render.New(cfg.SampleDir, cfg.Format).WithLogger(logger)
	r.FFmpegPath = cfg.FFmpegPath

	var written []string
	if cfg.Midi {
		path, err := r.WriteMidi(notes, cfg.Dest)
		if err != nil {
			return err
		}
		written = append(written, path)
	}
	if cfg.DevelopChord {
		path, err := r.Render(ctx, notes, cfg.Dest)
		if err != nil {
			// a failed run leaves nothing in dest
			for _, p := range written {
				os.Remove(p)
			}
			return err
		}
		written = append(written, path)
	}

	for _, path := range written {
		fmt.Fprintf(out, "wrote %v\n", path)
	}
	return nil
}
