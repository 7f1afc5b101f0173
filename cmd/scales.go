package cmd

import (
	"fmt"

	"github.com/jsphweid/chordgen/theory"
	"github.com/spf13/cobra"
)

var scaleKey string

func init() {
	scalesCmd.Flags().StringVar(&scaleKey, "key", "", `only check this scale, e.g. "A minor"`)
	rootCmd.AddCommand(scalesCmd)
}

var scalesCmd = &cobra.Command{
	Use:   "scales <notes...>",
	Short: "Lists the scales that contain every given note",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		scales, err := lookupScales(args, scaleKey)
		cobra.CheckErr(err)
		if len(scales) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no scale")
			return
		}
		for _, s := range scales {
			fmt.Fprintln(cmd.OutOrStdout(), s)
		}
	},
}

// lookupScales lists matching scales by name. With a key only that scale is
// checked.
func lookupScales(inputs []string, key string) ([]string, error) {
	pcs, err := pitchClasses(inputs)
	if err != nil {
		return nil, err
	}

	if key != "" {
		scale, err := theory.ParseScale(key)
		if err != nil {
			return nil, err
		}
		ok, err := theory.Contains(scale, pcs)
		if err != nil || !ok {
			return nil, err
		}
		return []string{scale.String()}, nil
	}

	scales, err := theory.ScalesContaining(pcs)
	if err != nil {
		return nil, err
	}
	res := make([]string, len(scales))
	for i, s := range scales {
		res[i] = s.String()
	}
	return res, nil
}
