package cmd

import (
	"fmt"

	"github.com/jsphweid/chordgen/chroma"
	"github.com/jsphweid/chordgen/classify"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(predictCmd)
}

var predictCmd = &cobra.Command{
	Use:   "predict <model.gob> <clip>",
	Short: "Predicts the chord played in a clip",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		m, err := classify.Load(args[0])
		cobra.CheckErr(err)
		c, err := chroma.NewExtractor().ComputeFile(args[1])
		cobra.CheckErr(err)
		fmt.Fprintln(cmd.OutOrStdout(), m.Predict(c))
	},
}
