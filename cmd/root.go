package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "airpiano",
	Short: "Play MIDI chords in the air",
	Long:  `Turns hand-tracking frames into MIDI: raised fingers press chords, a pinch bends a high triad across the screen.`,
}

var debugFlag bool

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "verbose logging")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
