package cmd

import (
	"fmt"
	"math/rand"
	"path/filepath"

	"github.com/jsphweid/chordgen/chroma"
	"github.com/jsphweid/chordgen/classify"
	"github.com/jsphweid/chordgen/constants"
	"github.com/jsphweid/chordgen/logging"
	"github.com/spf13/cobra"
)

var (
	trainModel    string
	trainAlgo     string
	trainTestSize float64
	trainSeed     int64
	trainOpts     = classify.DefaultOptions()
)

func init() {
	trainCmd.Flags().StringVar(&trainModel, "model", "", "where to save the model (default $DATA_PATH/model.gob)")
	trainCmd.Flags().StringVar(&trainAlgo, "algo", string(classify.RandomForest), "classifier: forest|knn")
	trainCmd.Flags().IntVar(&trainOpts.Forest.Trees, "trees", trainOpts.Forest.Trees, "trees in the forest")
	trainCmd.Flags().IntVar(&trainOpts.Forest.MaxDepth, "max-depth", trainOpts.Forest.MaxDepth, "tree depth limit, 0 grows until leaves are pure")
	trainCmd.Flags().Int64Var(&trainOpts.Forest.Seed, "random-state", trainOpts.Forest.Seed, "seed for bootstrap samples and feature picks")
	trainCmd.Flags().IntVar(&trainOpts.K, "k", trainOpts.K, "neighbours that vote, knn only")
	trainCmd.Flags().Float64Var(&trainTestSize, "test-size", 0.2, "share of rows held out for scoring")
	trainCmd.Flags().Int64Var(&trainSeed, "seed", 42, "seed for the train/test shuffle")
	rootCmd.AddCommand(trainCmd)
}

var trainCmd = &cobra.Command{
	Use:   "train <table.gob>",
	Short: "Fits a chord classifier on an extracted feature table",
	Long: `Fits a chord classifier on an extracted feature table, prints its accuracy
on a held out share of the rows and saves it. The default is a random forest
of 100 gini trees; --algo knn fits k nearest neighbours instead.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := trainModel
		if path == "" {
			path = filepath.Join(constants.GetDataDir(), constants.DefaultModelName)
		}
		accuracy, err := train(args[0], path)
		cobra.CheckErr(err)
		fmt.Fprintf(cmd.OutOrStdout(), "accuracy: %.3f\n", accuracy)
	},
}

func train(tablePath, modelPath string) (float64, error) {
	table, err := chroma.ReadTable(tablePath)
	if err != nil {
		return 0, err
	}
	trainRows, testRows, err := classify.Split(table, trainTestSize, rand.New(rand.NewSource(trainSeed)))
	if err != nil {
		return 0, err
	}

	opts := trainOpts
	opts.Algo = classify.Algo(trainAlgo)
	m, err := classify.Train(trainRows, opts)
	if err != nil {
		return 0, err
	}
	accuracy := m.Score(testRows)
	logging.Global().Info("trained model", logging.Fields{
		"algo":  m.Algo,
		"train": len(trainRows),
		"test":  len(testRows),
	})
	return accuracy, m.Save(modelPath)
}
