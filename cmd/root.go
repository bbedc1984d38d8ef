package cmd

import (
	"github.com/jsphweid/scorestream/constants"
	"github.com/jsphweid/scorestream/debug"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scorestream",
	Short: "Score streams: inspect, measure, export and serve",
	Long: `scorestream reads scores from JSON score documents or MIDI files,
splits them into measures, draws piano rolls, writes MIDI and serves
them over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if path := constants.GetLogPath(); path != "" {
			return debug.EnableFile(path)
		}
		return nil
	},
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
