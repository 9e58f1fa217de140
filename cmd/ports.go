package cmd

import (
	"fmt"

	"github.com/jsphweid/airpiano/synth"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(portsCmd)
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "Lists available MIDI output ports",
	Long:  `Lists available MIDI output ports`,
	Run: func(cmd *cobra.Command, args []string) {
		ports := synth.Ports()
		if len(ports) == 0 {
			fmt.Println("no MIDI output ports found")
			return
		}
		for i, name := range ports {
			fmt.Printf("%d: %s\n", i, name)
		}
	},
}
