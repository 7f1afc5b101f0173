package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/jsphweid/chordgen/chroma"
	"github.com/jsphweid/chordgen/constants"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v2"
	"github.com/spf13/cobra"
)

var extractOut string

func init() {
	extractCmd.Flags().StringVar(&extractOut, "out", "", "output path without extension (default $DATA_PATH/TrainingData)")
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract <dir>",
	Short: "Builds a chroma feature table from labelled clips",
	Long: `Walks <dir> for mp3 and wav clips, labels each with its parent directory
(<dir>/Am/take1.wav is "Am") and writes the mean chroma of every clip to
<out>.csv and <out>.gob.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		out := extractOut
		if out == "" {
			out = filepath.Join(constants.GetDataDir(), constants.DefaultTableName)
		}
		cobra.CheckErr(extract(args[0], out))
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %v.csv and %v.gob\n", out, out)
	},
}

func extract(dir, out string) error {
	clips, err := chroma.CollectClips(dir)
	if err != nil {
		return err
	}
	if len(clips) == 0 {
		return errors.Errorf("no audio clips under %v", dir)
	}

	bar := progressbar.New(len(clips))
	table, err := chroma.NewExtractor().ExtractAll(clips, func() {
		bar.Add(1)
	})
	bar.Finish()
	if err != nil {
		return err
	}
	return chroma.WriteTable(out, table)
}
