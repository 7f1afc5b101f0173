package cmd

import (
	"fmt"
	"strings"

	"github.com/jsphweid/chordgen/note"
	"github.com/jsphweid/chordgen/theory"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(chordsCmd)
}

var chordsCmd = &cobra.Command{
	Use:   "chords <notes...>",
	Short: "Names the chords formed by a set of notes",
	Long: `Names the chords formed by a set of notes. Notes can carry an octave (C4) or
not (C), only the pitch class counts.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		chords, err := lookupChords(args)
		cobra.CheckErr(err)
		if len(chords) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no chord")
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(chords, "\n"))
	},
}

func pitchClasses(inputs []string) ([]string, error) {
	res := make([]string, 0, len(inputs))
	for _, in := range inputs {
		pc, err := note.ParsePitchClass(in)
		if err != nil {
			return nil, err
		}
		res = append(res, pc)
	}
	return res, nil
}

func lookupChords(inputs []string) ([]string, error) {
	pcs, err := pitchClasses(inputs)
	if err != nil {
		return nil, err
	}
	return theory.FindChords(pcs), nil
}
