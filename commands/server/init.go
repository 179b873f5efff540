package server

import (
	"encoding/json"
	"flag"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/treasury/app"
	"github.com/iov-one/treasury/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagChainID = "chain_id"
	flagForce   = "force"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// InitCmd writes a genesis file into the home directory. Remaining
// arguments are passed to gen.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	var (
		chainID string
		force   bool
	)
	initFlags := flag.NewFlagSet("init", flag.ContinueOnError)
	initFlags.StringVar(&chainID, flagChainID, "treasury-dev", "chain id stored at genesis")
	initFlags.BoolVar(&force, flagForce, false, "overwrite an existing genesis file")
	if err := initFlags.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	state, err := gen(initFlags.Args())
	if err != nil {
		return errors.Wrap(err, "generate app state")
	}
	genesis := app.Genesis{ChainID: chainID}
	if err := json.Unmarshal(state, &genesis.AppState); err != nil {
		return errors.Wrapf(errors.ErrInput, "app state: %s", err)
	}
	if err := genesis.Validate(); err != nil {
		return err
	}

	path := filepath.Join(home, "genesis.json")
	if fileExists(path) && !force {
		return errors.Wrapf(errors.ErrDuplicate, "%s already exists", path)
	}
	if err := os.MkdirAll(home, 0755); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	raw, err := json.MarshalIndent(genesis, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	if err := ioutil.WriteFile(path, raw, 0644); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	logger.Info("Genesis written", "path", path, "chain", chainID)
	return nil
}

func fileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}
