package app

import (
	"testing"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/treasurytest/assert"
)

func TestLoadGenesis(t *testing.T) {
	cases := map[string]struct {
		file      string
		wantErr   *errors.Error
		wantChain string
	}{
		"missing file": {
			file:    "testdata/no_such_file.json",
			wantErr: errors.ErrInput,
		},
		"valid": {
			file:      "testdata/genesis.json",
			wantChain: "test-chain-67",
		},
		"invalid chain id": {
			file:    "testdata/bad_genesis.json",
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			gen, err := LoadGenesis(tc.file)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}
			assert.Equal(t, tc.wantChain, gen.ChainID)

			var value string
			assert.Nil(t, gen.AppState.ReadOptions(dummyKey, &value))
			assert.Equal(t, "secret", value)
		})
	}
}

func TestGenesisValidate(t *testing.T) {
	gen := Genesis{ChainID: "test-chain"}
	assert.IsErr(t, errors.ErrEmpty, gen.Validate())

	gen.AppState = treasury.Options{"x": []byte("{}")}
	assert.Nil(t, gen.Validate())

	gen.ChainID = "short"
	assert.IsErr(t, errors.ErrInput, gen.Validate())
}
