// cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/isladuncan/ndnsim/config"
	"github.com/isladuncan/ndnsim/sim"
	"github.com/isladuncan/ndnsim/stats"
)

var (
	tunablesPath  string
	logLevel      string
	seed          int64
	samples       int
	runTimeS      float64
	cacheSize     int
	parallel      bool
	csvOutputPath string
)

var rootCmd = &cobra.Command{
	Use:   "ndnsim",
	Short: "Discrete-event simulator for a Named Data Networking overlay",
}

var runCmd = &cobra.Command{
	Use:   "run <descriptor.yaml>",
	Short: "Run the NDN overlay simulation against a network descriptor",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		descriptor, err := config.LoadDescriptor(args[0])
		if err != nil {
			logrus.Fatalf("loading network descriptor: %v", err)
		}

		rawTunables, err := config.LoadTunables(tunablesPath)
		if err != nil {
			logrus.Fatalf("loading tunables: %v", err)
		}
		applyFlagOverrides(cmd, &rawTunables)
		tunables := sim.ResolveTunables(rawTunables)

		logrus.WithFields(logrus.Fields{
			"nodes":   len(descriptor.Nodes),
			"samples": tunables.Samples,
			"seed":    tunables.Seed,
		}).Info("starting simulation")

		driver := sim.NewSampleDriver(descriptor, tunables, sim.NewSimulationKey(tunables.Seed))
		if err := driver.Run(context.Background()); err != nil {
			logrus.Fatalf("simulation failed: %v", err)
		}

		configSummary := fmt.Sprintf(
			"descriptor=%s,nodes=%d,samples=%d,cache_size=%d,seed=%d,parallel=%t",
			args[0], len(descriptor.Nodes), tunables.Samples, tunables.CacheSize, tunables.Seed, tunables.ParallelSamples,
		)
		report := stats.Summarize(driver.Metrics, time.Now(), configSummary)
		report.Print()

		if csvOutputPath != "" {
			f, err := os.OpenFile(csvOutputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
			if err != nil {
				logrus.Fatalf("writing CSV report: %v", err)
			}
			if _, err := f.WriteString(report.CSVRow() + "\n"); err != nil {
				logrus.Fatalf("writing CSV report: %v", err)
			}
			if err := f.Close(); err != nil {
				logrus.Fatalf("writing CSV report: %v", err)
			}
		}

		logrus.Info("simulation complete")
	},
}

// applyFlagOverrides layers any explicitly-set CLI flags on top of the
// tunables loaded from YAML, the way a config layer's defaults are
// meant to be overridden rather than replaced wholesale.
func applyFlagOverrides(cmd *cobra.Command, t *config.Tunables) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		t.Seed = seed
	}
	if flags.Changed("samples") {
		t.Samples = samples
	}
	if flags.Changed("run-time") {
		t.RunTimeSeconds = runTimeS
	}
	if flags.Changed("cache-size") {
		t.CacheSize = cacheSize
	}
	if flags.Changed("parallel") {
		t.ParallelSamples = parallel
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().StringVar(&tunablesPath, "tunables", "", "Path to a tunables YAML document (defaults used for any omitted field)")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
	runCmd.Flags().Int64Var(&seed, "seed", 1, "Master simulation key (all per-sample/subsystem randomness derives from this)")
	runCmd.Flags().IntVar(&samples, "samples", 1, "Number of independent samples to run and aggregate")
	runCmd.Flags().Float64Var(&runTimeS, "run-time", 1000, "Simulated seconds to run each sample for")
	runCmd.Flags().IntVar(&cacheSize, "cache-size", 5, "Default Content Store capacity for nodes that don't override it")
	runCmd.Flags().BoolVar(&parallel, "parallel", false, "Run samples concurrently via errgroup")
	runCmd.Flags().StringVar(&csvOutputPath, "csv", "", "Optional path to append a CSV summary row to")

	rootCmd.AddCommand(runCmd)
}
