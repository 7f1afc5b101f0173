package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/jsphweid/chordgen/midi"
	"github.com/jsphweid/chordgen/note"
	"github.com/jsphweid/chordgen/theory"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Lists the chords held down in a MIDI file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := midi.ReadMidiFile(args[0])
		cobra.CheckErr(err)

		for _, c := range midi.Chords(s) {
			names := theory.FindChords(note.PitchClasses(c.Notes))
			if len(names) == 0 {
				names = []string{"-"}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-10v %-24v %v\n",
				time.Duration(c.Offset)*time.Microsecond,
				strings.Join(note.Strings(c.Notes), " "),
				strings.Join(names, ", "))
		}
	},
}
