package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
)

// Genesis file format. Each extension reads its own key from AppState.
type Genesis struct {
	ChainID  string           `json:"chain_id"`
	AppState treasury.Options `json:"app_state"`
}

// Validate makes sure the genesis can be used to initialize a chain.
func (g *Genesis) Validate() error {
	if !treasury.IsValidChainID(g.ChainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %q", g.ChainID)
	}
	if len(g.AppState) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state not set in genesis")
	}
	return nil
}

// LoadGenesis tries to load a given file into a Genesis struct.
func LoadGenesis(filePath string) (*Genesis, error) {
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "unmarshaling genesis file: %s", err)
	}
	if err := gen.Validate(); err != nil {
		return nil, err
	}
	return &gen, nil
}
