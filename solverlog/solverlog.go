// Package solverlog extracts the BKM integral of a flow case from the output
// of the solver.
//
// The solver prints a line
//
//	Time = <t>
//
// at the start of every time step and
//
//	BKM Integral: <v>
//
// once the step has been solved, where v is the supremum norm of the vorticity
// at time t. The Reynolds number is the Re entry of the case's
// system/controlDict, and the name of the case is the name of its directory.
package solverlog

import (
	"bufio"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/integrate"

	"github.com/infraredracoon1/waveletGalerkinFoam/dataloader"
	"github.com/infraredracoon1/waveletGalerkinFoam/settings"
)

const (
	timePrefix = "Time = "
	bkmPrefix  = "BKM Integral:"

	// DefaultLog is the name of the solver log inside a case directory.
	DefaultLog = "log.solver"
)

// ErrTooFewSamples is returned when a time window holds fewer than two
// samples.
var ErrTooFewSamples = errors.New("fewer than two samples in time window")

// History is the vorticity norm over time. Times are strictly increasing.
type History struct {
	Times  []float64
	Values []float64
}

// Parse reads a solver log. A time step that reports the norm more than once
// keeps the last value; a time step that does not report it is skipped.
func Parse(r io.Reader) (*History, error) {
	h := &History{}
	scanner := bufio.NewScanner(r)
	var (
		line    int
		t       float64
		haveT   bool
		stepVal = math.NaN()
	)
	flush := func() {
		if haveT && !math.IsNaN(stepVal) {
			h.Times = append(h.Times, t)
			h.Values = append(h.Values, stepVal)
		}
		stepVal = math.NaN()
	}
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(text, timePrefix):
			ts := strings.TrimSpace(strings.TrimPrefix(text, timePrefix))
			v, err := strconv.ParseFloat(strings.TrimSuffix(ts, "s"), 64)
			if err != nil {
				return nil, errors.Errorf("line %d: bad time %q", line, text)
			}
			flush()
			if haveT && v <= t {
				return nil, errors.Errorf("line %d: time %v does not follow %v", line, v, t)
			}
			t = v
			haveT = true
		case strings.HasPrefix(text, bkmPrefix):
			if !haveT {
				return nil, errors.Errorf("line %d: BKM integral before first time step", line)
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(text, bkmPrefix)), 64)
			if err != nil {
				return nil, errors.Errorf("line %d: bad BKM integral %q", line, text)
			}
			stepVal = v
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scanning log")
	}
	flush()
	return h, nil
}

// Integrate returns the trapezoidal integral of the history over the samples
// with t0 <= t <= t1, and an error estimate: the difference from the integral
// using every other sample.
func (h *History) Integrate(t0, t1 float64) (value, estErr float64, err error) {
	var x, f []float64
	for i, t := range h.Times {
		if t >= t0 && t <= t1 {
			x = append(x, t)
			f = append(f, h.Values[i])
		}
	}
	if len(x) < 2 {
		return 0, 0, ErrTooFewSamples
	}
	value = integrate.Trapezoidal(x, f)

	var cx, cf []float64
	for i := 0; i < len(x); i += 2 {
		cx = append(cx, x[i])
		cf = append(cf, f[i])
	}
	if last := len(x) - 1; last%2 != 0 {
		cx = append(cx, x[last])
		cf = append(cf, f[last])
	}
	coarse := integrate.Trapezoidal(cx, cf)
	return value, math.Abs(value - coarse), nil
}

// ReadRe returns the Re entry of an OpenFOAM dictionary such as controlDict.
func ReadRe(r io.Reader) (float64, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		text := scanner.Text()
		if i := strings.Index(text, "//"); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(strings.Replace(text, ";", " ", 1))
		if len(fields) != 2 || fields[0] != "Re" {
			continue
		}
		re, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return 0, errors.Errorf("bad Re entry %q", text)
		}
		return re, nil
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return 0, errors.New("no Re entry")
}

// Collect builds the BKM integral record of the case in caseDir from the
// solver log logName (relative to caseDir), integrating over [t0, t1].
func Collect(caseDir, logName string, t0, t1 float64) (dataloader.Record, error) {
	name := filepath.Base(filepath.Clean(caseDir))
	if err := settings.CheckCases([]string{name}); err != nil {
		return dataloader.Record{}, err
	}

	dictName := filepath.Join(caseDir, "system", "controlDict")
	dict, err := os.Open(dictName)
	if err != nil {
		return dataloader.Record{}, errors.Wrap(err, "opening controlDict")
	}
	defer dict.Close()
	re, err := ReadRe(dict)
	if err != nil {
		return dataloader.Record{}, errors.Wrapf(err, "reading %s", dictName)
	}

	logFile := filepath.Join(caseDir, logName)
	f, err := os.Open(logFile)
	if err != nil {
		return dataloader.Record{}, errors.Wrap(err, "opening solver log")
	}
	defer f.Close()
	h, err := Parse(f)
	if err != nil {
		return dataloader.Record{}, errors.Wrapf(err, "parsing %s", logFile)
	}
	v, e, err := h.Integrate(t0, t1)
	if err != nil {
		return dataloader.Record{}, errors.Wrapf(err, "case %s", name)
	}
	return dataloader.Record{
		Case:        name,
		Re:          re,
		BKMIntegral: v,
		Error:       e,
	}, nil
}

// CollectAll collects every case in caseDirs. If any case fails, the
// returned error is an ErrorList indexed like caseDirs and no records are
// returned.
func CollectAll(caseDirs []string, logName string, t0, t1 float64) ([]dataloader.Record, error) {
	records := make([]dataloader.Record, len(caseDirs))
	errs := make(ErrorList, len(caseDirs))
	for i, dir := range caseDirs {
		records[i], errs[i] = Collect(dir, logName, t0, t1)
	}
	if !errs.AllNil() {
		return nil, errs
	}
	return records, nil
}
