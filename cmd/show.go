package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jsphweid/scorestream/tui"
	"github.com/spf13/cobra"
)

var showFlat bool

func init() {
	showCmd.Flags().BoolVar(&showFlat, "flat", false, "show the flattened stream")
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(browseCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Prints the container tree of a score",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := LoadStream(args[0])
		if err != nil {
			return err
		}
		if showFlat {
			s = s.Flat()
		}
		fmt.Println(tui.Tree(s))
		return nil
	},
}

var browseCmd = &cobra.Command{
	Use:   "browse <file>",
	Short: "Steps through the notes and rests of a score",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := LoadStream(args[0])
		if err != nil {
			return err
		}
		_, err = tea.NewProgram(tui.NewModel(args[0], s)).Run()
		return err
	},
}
