package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chordgen",
	Short: "Random chord generator and chord recognition toolkit",
	Long: `chordgen picks random notes that form a named chord and renders them from
single note piano samples. It also extracts chroma features from labelled
clips, trains a chord classifier on them and lists scales for a note set.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
