// Package settings holds the flow case registry and the configuration of the
// post-processing run.
package settings

import (
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// Default locations, relative to the working directory (the scripts directory
// of a case tree).
const (
	DefaultDataFile   = "../data/bkm_integral.csv"
	DefaultBetaFile   = "../data/beta_j_results.csv"
	DefaultOutputFile = "../docs/bkm_plot.png"

	// DefaultConfigFile is read when present and no config file is given.
	DefaultConfigFile = "bkmplot.yaml"
)

// Settings controls a post-processing run.
type Settings struct {
	DataFile   string `koanf:"data"`    // primary dataset
	BetaFile   string `koanf:"beta"`    // optional beta_j dataset
	OutputFile string `koanf:"output"`  // image location, format from extension
	Fit        bool   `koanf:"fit"`     // overlay the fitted power law
	Verbose    bool   `koanf:"verbose"` // debug logging
}

// Default returns the settings used when nothing is configured.
func Default() *Settings {
	return &Settings{
		DataFile:   DefaultDataFile,
		BetaFile:   DefaultBetaFile,
		OutputFile: DefaultOutputFile,
	}
}

// Load builds the settings from the defaults, then the config file, then the
// flags that were set explicitly. An empty cfgFile reads DefaultConfigFile if
// it exists; an explicit cfgFile must exist. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Settings, error) {
	k := koanf.New(".")

	def := Default()
	err := k.Load(confmap.Provider(map[string]interface{}{
		"data":    def.DataFile,
		"beta":    def.BetaFile,
		"output":  def.OutputFile,
		"fit":     def.Fit,
		"verbose": def.Verbose,
	}, "."), nil)
	if err != nil {
		return nil, errors.Wrap(err, "loading defaults")
	}

	if cfgFile == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			cfgFile = DefaultConfigFile
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", cfgFile)
		}
	}

	if flags != nil {
		err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			return f.Name, posflag.FlagVal(flags, f)
		}), nil)
		if err != nil {
			return nil, errors.Wrap(err, "loading flags")
		}
	}

	set := &Settings{}
	if err := k.Unmarshal("", set); err != nil {
		return nil, errors.Wrap(err, "decoding settings")
	}
	return set, nil
}
