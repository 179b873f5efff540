package app

import (
	"encoding/json"
	"io"
	"io/ioutil"

	"github.com/iov-one/treasury/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Config declares how an engine is hosted.
type Config struct {
	// Name is used as the logger module and as the metrics namespace.
	Name string `json:"name"`
	// DataDir is where the commit store is kept.
	DataDir string `json:"data_dir"`
	// Genesis is the path to the genesis file used when the store is
	// empty.
	Genesis string `json:"genesis"`
	// LogLevel is one of debug, info, error or none.
	LogLevel string `json:"log_level"`
	// MetricsAddr is the address prometheus metrics are served on.
	// Metrics are not collected if empty.
	MetricsAddr string `json:"metrics_addr"`
	// Debug exposes full error information in results.
	Debug bool `json:"debug"`
	// EnvFiles are read for the event sink configuration.
	EnvFiles []string `json:"env_files"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Name:     "treasury",
		DataDir:  "data",
		Genesis:  "genesis.json",
		LogLevel: "info",
	}
}

// LoadConfig reads a JSON configuration file. Fields missing from the file
// keep their default value.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return conf, errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := json.Unmarshal(raw, &conf); err != nil {
		return conf, errors.Wrapf(errors.ErrInput, "cannot parse %q: %s", path, err)
	}
	return conf, conf.Validate()
}

func (c Config) Validate() error {
	var errs error
	if c.Name == "" {
		errs = errors.AppendField(errs, "Name", errors.ErrEmpty)
	}
	if c.DataDir == "" {
		errs = errors.AppendField(errs, "DataDir", errors.ErrEmpty)
	}
	if _, err := log.AllowLevel(c.LogLevel); err != nil {
		errs = errors.AppendField(errs, "LogLevel", errors.Wrap(errors.ErrInput, err.Error()))
	}
	return errs
}

// NewLogger returns a logger writing to out, filtered by the configured
// level.
func (c Config) NewLogger(out io.Writer) (log.Logger, error) {
	opt, err := log.AllowLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	logger := log.NewTMLogger(log.NewSyncWriter(out))
	return log.NewFilter(logger, opt), nil
}
