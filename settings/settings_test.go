package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
)

func TestCaseColor(t *testing.T) {
	for _, name := range Cases() {
		c, err := CaseColor(name)
		require.NoError(t, err, name)
		assert.NotNil(t, c, name)
	}
	c, err := CaseColor(VortexRing)
	require.NoError(t, err)
	assert.Equal(t, colornames.Green, c)

	_, err = CaseColor("laminarFlow")
	require.Error(t, err)
	var m Missing
	require.True(t, errors.As(err, &m))
	assert.Equal(t, Cases(), m.Options)
	assert.Contains(t, err.Error(), "laminarFlow")
}

func TestCasesSorted(t *testing.T) {
	assert.Equal(t, []string{
		ExtremeGradientFlow,
		KolmogorovFlow,
		NonPeriodicFlow,
		OscillatoryFlow,
		TurbulentFlow,
		TurbulentFlowS13,
		VortexRing,
	}, Cases())
}

func TestCaseLabel(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{TurbulentFlow, "Turbulentflow"},
		{VortexRing, "Vortexring"},
		{KolmogorovFlow, "Kolmogorovflow"},
		{ExtremeGradientFlow, "Extremegradientflow"},
		{TurbulentFlowS13, "Turbulentflow S13"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CaseLabel(tt.name))
		})
	}
}

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.String("data", DefaultDataFile, "")
	fs.String("beta", DefaultBetaFile, "")
	fs.String("output", DefaultOutputFile, "")
	fs.Bool("fit", false, "")
	fs.BoolP("verbose", "v", false, "")
	return fs
}

func TestLoadDefaults(t *testing.T) {
	set, err := Load("", newFlags())
	require.NoError(t, err)
	assert.Equal(t, Default(), set)

	set, err = Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), set)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "bkmplot.yaml")
	err := os.WriteFile(cfg, []byte("data: runs/bkm.csv\noutput: out/plot.png\nfit: true\n"), 0600)
	require.NoError(t, err)

	fs := newFlags()
	require.NoError(t, fs.Parse([]string{"--output", "flag.png", "-v"}))

	set, err := Load(cfg, fs)
	require.NoError(t, err)
	assert.Equal(t, "runs/bkm.csv", set.DataFile)
	assert.Equal(t, DefaultBetaFile, set.BetaFile)
	assert.Equal(t, "flag.png", set.OutputFile)
	assert.True(t, set.Fit)
	assert.True(t, set.Verbose)
}

func TestLoadMissingConfig(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestCheckCases(t *testing.T) {
	assert.NoError(t, CheckCases(nil))
	assert.NoError(t, CheckCases([]string{VortexRing, TurbulentFlowS13}))

	err := CheckCases([]string{VortexRing, "channelFlow", "pipeFlow"})
	require.Error(t, err)
	var m Missing
	require.True(t, errors.As(err, &m))
	assert.Equal(t, "unknown cases [channelFlow pipeFlow]", m.Prefix)
	assert.Len(t, m.Options, 7)
}
