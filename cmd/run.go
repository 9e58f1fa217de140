package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsphweid/airpiano/config"
	"github.com/jsphweid/airpiano/constants"
	"github.com/jsphweid/airpiano/engine"
	"github.com/jsphweid/airpiano/scale"
	"github.com/jsphweid/airpiano/synth"
	"github.com/jsphweid/airpiano/track"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFlag  string
	portFlag    string
	trackerFlag string
	listenFlag  string
)

func init() {
	runCmd.Flags().StringVar(&configFlag, "config", "", "settings file (default "+constants.GetConfigPath()+")")
	runCmd.Flags().StringVar(&portFlag, "port", "", "MIDI output port, by number or name substring")
	runCmd.Flags().StringVar(&trackerFlag, "tracker", "-", `hand tracker stream: "-" for stdin, tcp:host:port, or a file`)
	runCmd.Flags().StringVar(&listenFlag, "listen", "127.0.0.1:8077", "monitor HTTP address, empty to disable")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Runs the instrument",
	Long:  `Runs the instrument: reads tracker frames, plays MIDI, serves the monitor.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInstrument()
	},
}

func newLogger() (*zap.Logger, error) {
	if debugFlag {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func runInstrument() error {
	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync()

	cfgPath := configFlag
	if cfgPath == "" {
		cfgPath = constants.GetConfigPath()
	}
	cfg := config.Load(cfgPath, log)
	saver := config.NewSaver(cfgPath, log)

	bank, err := scale.NewBank(scale.Builtin())
	if err != nil {
		return fmt.Errorf("building scale bank: %w", err)
	}

	out, err := synth.Open(portFlag, log)
	if err != nil {
		return err
	}

	src, err := track.Open(trackerFlag)
	if err != nil {
		out.Close()
		return fmt.Errorf("opening tracker stream: %w", err)
	}

	var mon *engine.Monitor
	if listenFlag != "" {
		mon = engine.NewMonitor(listenFlag, log)
		mon.Start()
	}

	cmds := make(chan engine.Command, 8)
	go engine.ReadCommands(os.Stdin, cmds, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng, err := engine.New(engine.Options{
		Config:   cfg,
		Saver:    saver,
		Bank:     bank,
		Output:   out,
		Source:   src,
		Monitor:  mon,
		Commands: cmds,
		Log:      log,
	})
	if err != nil {
		src.Close()
		out.Close()
		return err
	}

	runErr := eng.Run(ctx)
	if runErr == context.Canceled {
		runErr = nil
	}

	if mon != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		mon.Shutdown(shutdownCtx)
	}
	return runErr
}
