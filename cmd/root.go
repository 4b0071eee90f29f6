package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dcn-sim/trafficgen/sim"
	"github.com/dcn-sim/trafficgen/sim/distribution"
	"github.com/dcn-sim/trafficgen/sim/trace"
	"github.com/dcn-sim/trafficgen/sim/traffic"
)

const (
	defaultDistributionDir = "traffic_distributions"
	defaultGeneratedDir    = "gen"
	defaultPresetsFile     = "presets.yaml"
)

// generateOptions holds the resolved settings of one generate invocation.
type generateOptions struct {
	Hosts        int     // Number of hosts
	Bandwidth    string  // Per-host link bandwidth with optional G/M/K suffix
	CDFFile      string  // Flow size distribution file name
	CDFDir       string  // Directory distribution names are resolved against
	Load         float64 // Fraction of link capacity to offer
	Duration     float64 // Horizon in seconds
	Output       string  // Trace path; derived from the parameters when empty
	Seed         int64   // Seed for all random draws
	SeedSet      bool    // Whether Seed was given
	MaxCDFPoints int     // Simplify the CDF to this many points (0 = keep all)
	Progress     bool    // Render a progress bar on stderr
}

var genOpts generateOptions // Bound to the generate flags

var (
	logLevel    string // Log verbosity level
	listOnly    bool   // List distributions instead of generating
	presetName  string // Named preset from the presets file
	presetsFile string // YAML presets file
	noProgress  bool   // Disable the progress bar
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "trafficgen",
	Short: "Synthetic datacenter traffic generator",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// generateCmd produces a flow trace from CLI flags and an optional preset
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a Poisson flow trace for a set of hosts",
	Run: func(cmd *cobra.Command, args []string) {
		if listOnly {
			if err := printDistributions(cmd.OutOrStdout(), genOpts.CDFDir); err != nil {
				logrus.Fatalf("%v", err)
			}
			return
		}

		opts := genOpts
		opts.SeedSet = cmd.Flags().Changed("seed")
		opts.Progress = !noProgress
		if presetName != "" {
			preset, err := LoadPreset(presetsFile, presetName)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			opts = applyPreset(cmd, opts, preset)
		}

		startTime := time.Now()
		res, err := runGenerate(opts)
		if err != nil {
			logrus.Fatalf("Generation failed: %v", err)
		}
		logrus.Infof("Wrote %d flows to %s in %v (seed %d)", res.Flows, res.Output, time.Since(startTime), res.Stats.Seed)
		fmt.Fprintf(cmd.OutOrStdout(), "%d flows written to %s\n", res.Flows, res.Output)
	},
}

// generateResult reports what runGenerate produced.
type generateResult struct {
	Output string
	Flows  int64
	Stats  traffic.Stats
}

// runGenerate validates opts, then streams the generator into a trace file.
// Every configuration or distribution error is returned before the output
// file is touched.
func runGenerate(opts generateOptions) (*generateResult, error) {
	bandwidth, err := traffic.ParseBandwidth(opts.Bandwidth)
	if err != nil {
		return nil, err
	}
	cfg := traffic.Config{
		Hosts:     opts.Hosts,
		Bandwidth: bandwidth,
		Load:      opts.Load,
		Duration:  opts.Duration,
	}
	if opts.SeedSet {
		seed := opts.Seed
		cfg.Seed = &seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sampler, err := distribution.Load(opts.CDFDir, opts.CDFFile)
	if err != nil {
		return nil, err
	}
	if opts.MaxCDFPoints > 0 && sampler.Len() > opts.MaxCDFPoints {
		reduced := distribution.Simplify(sampler.CDF(), opts.MaxCDFPoints)
		logrus.Infof("Simplified distribution from %d to %d points", sampler.Len(), len(reduced))
		if sampler, err = distribution.NewSampler(reduced); err != nil {
			return nil, err
		}
	}

	gen, err := traffic.NewGenerator(cfg, sampler)
	if err != nil {
		return nil, err
	}
	stats := gen.Stats()
	printManifest(stats, opts)

	output := opts.Output
	if output == "" {
		output = defaultOutputPath(opts)
	}
	w, err := trace.NewWriter(output)
	if err != nil {
		return nil, err
	}

	bar := newProgress(opts.Progress, stats.EstimatedFlows)
	n, err := gen.Run(func(f traffic.Flow) error {
		bar.Increment()
		return w.Write(f)
	})
	bar.Done()
	if err != nil {
		if abortErr := w.Abort(); abortErr != nil {
			logrus.Warnf("Removing partial trace: %v", abortErr)
		}
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return &generateResult{Output: w.Path(), Flows: n, Stats: gen.Stats()}, nil
}

// defaultOutputPath encodes every parameter in the trace name:
// gen/<hosts>_<bandwidth>_<load>_<time>_<distribution>.txt
func defaultOutputPath(opts generateOptions) string {
	name := strings.TrimSuffix(filepath.Base(opts.CDFFile), ".txt")
	file := fmt.Sprintf("%d_%s_%s_%s_%s.txt",
		opts.Hosts,
		opts.Bandwidth,
		strconv.FormatFloat(opts.Load, 'g', -1, 64),
		strconv.FormatFloat(opts.Duration, 'g', -1, 64),
		name)
	return filepath.Join(defaultGeneratedDir, file)
}

// printManifest logs the run parameters before generation starts.
func printManifest(st traffic.Stats, opts generateOptions) {
	logrus.Infof("Generating traffic for %d hosts over %s bandwidth with %.4g%% load",
		opts.Hosts, opts.Bandwidth, opts.Load*100)
	logrus.Infof("  Estimated number of flows: %d", st.EstimatedFlows)
	logrus.Infof("  Mean flow size: %.1f bytes", st.MeanFlowBytes)
	logrus.Infof("  Mean inter-arrival time: %.1f ns", st.MeanInterarrivalNs)
	logrus.Infof("  Total time: %s s", sim.FormatSeconds(int64(st.DurationNs)))
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	generateCmd.Flags().IntVarP(&genOpts.Hosts, "nhost", "n", 32, "Number of hosts")
	generateCmd.Flags().StringVarP(&genOpts.Bandwidth, "bandwidth", "b", "10G", "Bandwidth of a host link (G/M/K suffix, bare number = bps)")
	generateCmd.Flags().StringVarP(&genOpts.CDFFile, "cdf", "c", "WebSearch_distribution.txt", "Flow size CDF file")
	generateCmd.Flags().StringVar(&genOpts.CDFDir, "cdf-dir", defaultDistributionDir, "Directory holding the CDF files")
	generateCmd.Flags().Float64VarP(&genOpts.Load, "load", "l", 0.3, "Fraction of the host link capacity to offer, in (0, 1]")
	generateCmd.Flags().Float64VarP(&genOpts.Duration, "time", "t", 10, "Total run time in seconds")
	generateCmd.Flags().StringVarP(&genOpts.Output, "output", "o", "", "Output file (default gen/<nhost>_<bandwidth>_<load>_<time>_<cdf>.txt; .gz compresses)")
	generateCmd.Flags().Int64Var(&genOpts.Seed, "seed", 0, "Seed for reproducible traces (default: time-derived)")
	generateCmd.Flags().IntVar(&genOpts.MaxCDFPoints, "max-cdf-points", 0, "Simplify the CDF to at most this many points (0 = keep all)")
	generateCmd.Flags().BoolVar(&listOnly, "list", false, "Show available CDF files and exit")
	generateCmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")
	generateCmd.Flags().StringVar(&presetName, "preset", "", "Named preset from the presets file")
	generateCmd.Flags().StringVar(&presetsFile, "presets-file", defaultPresetsFile, "YAML file with generation presets")

	listCmd.Flags().StringVar(&genOpts.CDFDir, "cdf-dir", defaultDistributionDir, "Directory holding the CDF files")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(inspectCmd)
}
