package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jsphweid/scorestream/midi"
	"github.com/jsphweid/scorestream/pianoroll"
	"github.com/spf13/cobra"
)

var rollOpts = pianoroll.DefaultOptions()

func init() {
	rollCmd.Flags().Float64Var(&rollOpts.PixelsPerQuarter, "ppq", rollOpts.PixelsPerQuarter, "pixels per quarter note")
	rollCmd.Flags().Float64Var(&rollOpts.KeyHeight, "key-height", rollOpts.KeyHeight, "pixels per semitone")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(rollCmd)
}

func withExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

var exportCmd = &cobra.Command{
	Use:   "export <file> [out.mid]",
	Short: "Writes a score as a standard MIDI file",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := LoadStream(args[0])
		if err != nil {
			return err
		}
		out := withExt(args[0], ".mid")
		if len(args) == 2 {
			out = args[1]
		}
		sm, err := midi.Export(s)
		if err != nil {
			return err
		}
		if err := midi.WriteMidiFile(sm, out); err != nil {
			return err
		}
		fmt.Printf("Wrote %d tracks to %s\n", len(sm.Tracks), out)
		return nil
	},
}

var rollCmd = &cobra.Command{
	Use:   "roll <file> [out.png]",
	Short: "Draws a piano roll of a score",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := LoadStream(args[0])
		if err != nil {
			return err
		}
		out := withExt(args[0], ".png")
		if len(args) == 2 {
			out = args[1]
		}
		if err := pianoroll.SavePNG(s, out, rollOpts); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", out)
		return nil
	},
}
