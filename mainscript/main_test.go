package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infraredracoon1/waveletGalerkinFoam/dataloader"
)

// caseTree creates root/{data,scripts} and changes into scripts.
func caseTree(t *testing.T) string {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "data"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "scripts"), 0755))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(filepath.Join(root, "scripts")))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	data := "Case,Re,BKM_Integral,Error\nvortexRing,100,5,0.1\nvortexRing,1000,50,1\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "data", "bkm_integral.csv"), []byte(data), 0600))
	return root
}

func execute(t *testing.T, args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootDefaults(t *testing.T) {
	root := caseTree(t)

	out, err := execute(t)
	require.NoError(t, err)
	assert.Equal(t, "beta_j_results.csv not found. Run simulations to generate.\n", out)
	assert.FileExists(t, filepath.Join(root, "docs", "bkm_plot.png"))

	require.NoError(t, os.WriteFile(filepath.Join(root, "data", "beta_j_results.csv"), []byte("beta_j\n0.42\n"), 0600))
	out, err = execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Beta_j results:\n")
	assert.Contains(t, out, "0.42")
}

func TestRootFlags(t *testing.T) {
	root := caseTree(t)
	plot := filepath.Join(root, "figures", "bkm.svg")

	_, err := execute(t, "--output", plot, "--fit")
	require.NoError(t, err)
	assert.FileExists(t, plot)
	assert.NoFileExists(t, filepath.Join(root, "docs", "bkm_plot.png"))
}

func TestRootConfigFile(t *testing.T) {
	root := caseTree(t)
	plot := filepath.Join(root, "out.png")
	require.NoError(t, os.WriteFile("bkmplot.yaml", []byte("output: "+plot+"\n"), 0600))

	_, err := execute(t)
	require.NoError(t, err)
	assert.FileExists(t, plot)
}

func TestRootMissingData(t *testing.T) {
	root := caseTree(t)
	require.NoError(t, os.Remove(filepath.Join(root, "data", "bkm_integral.csv")))

	_, err := execute(t)
	assert.Error(t, err)
}

func TestCollect(t *testing.T) {
	root := caseTree(t)
	caseDir := filepath.Join(root, "vortexRing")
	require.NoError(t, os.MkdirAll(filepath.Join(caseDir, "system"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(caseDir, "system", "controlDict"), []byte("Re 2000;\n"), 0600))
	log := "Time = 0\nBKM Integral: 2\nTime = 5\nBKM Integral: 2\nTime = 10\nBKM Integral: 2\n"
	require.NoError(t, os.WriteFile(filepath.Join(caseDir, "log.solver"), []byte(log), 0600))

	out, err := execute(t, "collect", caseDir)
	require.NoError(t, err)
	assert.Equal(t, "Case,Re,BKM_Integral,Error\nvortexRing,2000,20,0\n", out)

	file := filepath.Join(root, "data", "collected.csv")
	_, err = execute(t, "collect", "-o", file, caseDir)
	require.NoError(t, err)
	records, err := dataloader.ReadBKM(file)
	require.NoError(t, err)
	assert.Equal(t, []dataloader.Record{{Case: "vortexRing", Re: 2000, BKMIntegral: 20}}, records)

	_, err = execute(t, "collect", filepath.Join(root, "data"))
	assert.Error(t, err)
}
