package postprocess

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportBetaJMissing(t *testing.T) {
	var buf bytes.Buffer
	err := ReportBetaJ(&buf, filepath.Join(t.TempDir(), "beta_j_results.csv"))
	require.NoError(t, err)
	assert.Equal(t, "beta_j_results.csv not found. Run simulations to generate.\n", buf.String())
}

func TestReportBetaJ(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "beta_j_results.csv")
	require.NoError(t, os.WriteFile(filename, []byte("beta_j\n0.42\n"), 0600))

	var buf bytes.Buffer
	require.NoError(t, ReportBetaJ(&buf, filename))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Beta_j results:\n"), out)
	assert.Contains(t, out, "beta_j")
	assert.Contains(t, out, "0.42")
	assert.NotContains(t, out, BetaMissing)
}

func TestReportBetaJEmpty(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "beta_j_results.csv")
	require.NoError(t, os.WriteFile(filename, []byte("beta_j,j\n"), 0600))

	var buf bytes.Buffer
	require.NoError(t, ReportBetaJ(&buf, filename))
	assert.Equal(t, "Beta_j results:\n(0 rows) columns: [beta_j j]\n", buf.String())
}

func TestReportBetaJReadError(t *testing.T) {
	// A directory exists but cannot be read as a table.
	var buf bytes.Buffer
	err := ReportBetaJ(&buf, t.TempDir())
	assert.Error(t, err)
	assert.Empty(t, buf.String())
}
