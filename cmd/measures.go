package cmd

import (
	"github.com/spf13/cobra"
)

var (
	measuresOut         string
	measuresAccidentals bool
)

func init() {
	measuresCmd.Flags().StringVarP(&measuresOut, "out", "o", "", "write the score document here instead of stdout")
	measuresCmd.Flags().BoolVar(&measuresAccidentals, "accidentals", true, "decide which accidentals are shown")
	rootCmd.AddCommand(measuresCmd)
}

var measuresCmd = &cobra.Command{
	Use:   "measures <file>",
	Short: "Splits each part into measures and beams them",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := LoadStream(args[0])
		if err != nil {
			return err
		}
		if err := s.MakePartMeasures(); err != nil {
			return err
		}
		if measuresAccidentals {
			s.MakeMeasureAccidentals()
		}
		return writeDoc(s, measuresOut)
	},
}
