// Command bkmplot plots the BKM integral of the flow cases against Reynolds
// number and prints the beta_j results.
//
// Run without arguments from the scripts directory of the case tree, it reads
// ../data/bkm_integral.csv, writes ../docs/bkm_plot.png and prints
// ../data/beta_j_results.csv if it has been generated.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/infraredracoon1/waveletGalerkinFoam/dataloader"
	"github.com/infraredracoon1/waveletGalerkinFoam/postprocess"
	"github.com/infraredracoon1/waveletGalerkinFoam/settings"
	"github.com/infraredracoon1/waveletGalerkinFoam/solverlog"
)

type app struct {
	set    *settings.Settings
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}
	var cfgFile string

	root := &cobra.Command{
		Use:           "bkmplot",
		Short:         "Plot the BKM integral against Reynolds number",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			set, err := settings.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			a.set = set

			config := zap.NewProductionConfig()
			if set.Verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return errors.Wrap(err, "initializing logger")
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return postprocess.Run(a.set, cmd.OutOrStdout(), a.logger)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default "+settings.DefaultConfigFile+" if present)")
	pf.BoolP("verbose", "v", false, "debug logging")

	f := root.Flags()
	f.String("data", settings.DefaultDataFile, "BKM integral dataset")
	f.String("beta", settings.DefaultBetaFile, "beta_j results dataset")
	f.String("output", settings.DefaultOutputFile, "plot file; the format follows the extension")
	f.Bool("fit", false, "overlay the least squares power law fit")

	root.AddCommand(newCollectCmd(a))
	return root
}

func newCollectCmd(a *app) *cobra.Command {
	var (
		logName string
		t0, t1  float64
		out     string
	)
	cmd := &cobra.Command{
		Use:   "collect caseDir...",
		Short: "Build BKM integral rows from solver logs",
		Long: `Integrates the "BKM Integral:" values that the solver prints at each time
step over [t0, t1] and writes one row per case directory in the format read
by bkmplot. The case name is the directory name and Re is read from
system/controlDict.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := solverlog.CollectAll(args, logName, t0, t1)
			if err != nil {
				return err
			}
			for _, rec := range records {
				a.logger.Info("collected case",
					zap.String("case", rec.Case),
					zap.Float64("re", rec.Re),
					zap.Float64("bkm_integral", rec.BKMIntegral),
					zap.Float64("error", rec.Error),
				)
			}
			return writeRecords(cmd.OutOrStdout(), out, records)
		},
	}
	f := cmd.Flags()
	f.StringVar(&logName, "log", solverlog.DefaultLog, "solver log inside each case directory")
	f.Float64Var(&t0, "t0", 0, "start of the integration window")
	f.Float64Var(&t1, "t1", 10, "end of the integration window")
	f.StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func writeRecords(stdout io.Writer, filename string, records []dataloader.Record) error {
	if filename == "" {
		return dataloader.WriteBKM(stdout, records)
	}
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "creating output")
	}
	if err := dataloader.WriteBKM(f, records); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", filename)
	}
	return f.Close()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
