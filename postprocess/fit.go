package postprocess

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/infraredracoon1/waveletGalerkinFoam/dataloader"
)

// ErrInsufficientData is returned when a fit has fewer than two distinct
// Reynolds numbers to work with.
var ErrInsufficientData = errors.New("insufficient data for power law fit")

// PowerLaw is BKM = A Re^B.
type PowerLaw struct {
	A  float64
	B  float64
	R2 float64 // coefficient of determination in log space
}

// FitPowerLaw fits a power law to the records by least squares on
// log10(BKM) against log10(Re). Records with a non-positive Re or BKM
// integral are ignored.
func FitPowerLaw(records []dataloader.Record) (PowerLaw, error) {
	var x, y []float64
	for _, r := range records {
		if r.Re > 0 && r.BKMIntegral > 0 {
			x = append(x, math.Log10(r.Re))
			y = append(y, math.Log10(r.BKMIntegral))
		}
	}
	if len(x) < 2 || floats.Min(x) == floats.Max(x) {
		return PowerLaw{}, ErrInsufficientData
	}
	alpha, beta := stat.LinearRegression(x, y, nil, false)
	return PowerLaw{
		A:  math.Pow(10, alpha),
		B:  beta,
		R2: stat.RSquared(x, y, nil, alpha, beta),
	}, nil
}

// At evaluates the power law.
func (p PowerLaw) At(re float64) float64 {
	return p.A * math.Pow(re, p.B)
}

// Label is the legend label of the fit, in the form of ReferenceLabel.
func (p PowerLaw) Label() string {
	return fmt.Sprintf("Fit: %.3g Re^%.3g", p.A, p.B)
}
