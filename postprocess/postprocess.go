// Package postprocess turns the BKM integral results of the flow cases into
// the BKM vs. Reynolds number plot and reports the beta_j results.
package postprocess

import (
	"io"

	"go.uber.org/zap"

	"github.com/infraredracoon1/waveletGalerkinFoam/dataloader"
	"github.com/infraredracoon1/waveletGalerkinFoam/settings"
)

// Run loads the BKM integral data, saves the plot, and then prints the beta_j
// results (or a notice that they have not been generated) to w.
func Run(set *settings.Settings, w io.Writer, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	records, err := dataloader.ReadBKM(set.DataFile)
	if err != nil {
		return err
	}
	logger.Info("loaded bkm data",
		zap.String("file", set.DataFile),
		zap.Int("rows", len(records)),
		zap.Strings("cases", dataloader.Cases(records)),
	)

	opts := FigureOptions{Logger: logger}
	fit, err := FitPowerLaw(records)
	if err != nil {
		logger.Warn("no power law fit", zap.Error(err))
	} else {
		logger.Info("power law fit",
			zap.Float64("a", fit.A),
			zap.Float64("b", fit.B),
			zap.Float64("r2", fit.R2),
		)
		if set.Fit {
			opts.Fit = &fit
		}
	}

	fig, err := NewFigure(records, opts)
	if err != nil {
		return err
	}
	if err := fig.Save(set.OutputFile); err != nil {
		return err
	}
	logger.Info("saved plot", zap.String("file", set.OutputFile))

	return ReportBetaJ(w, set.BetaFile)
}
