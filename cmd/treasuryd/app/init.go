package app

import (
	"context"
	"encoding/json"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/app"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/events"
	"github.com/iov-one/treasury/x/cash"
	"github.com/iov-one/treasury/x/gate"
	"github.com/iov-one/treasury/x/ledger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tendermint/tendermint/libs/log"
)

// GenInitOptions produces the application state of a development chain.
// Every argument is a committee signer address. The committee owns the
// ledger reserve and the first signer is funded with base currency.
func GenInitOptions(args []string) (json.RawMessage, error) {
	if len(args) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "at least one signer address required")
	}
	signers := make([]treasury.Address, len(args))
	for i, a := range args {
		addr, err := treasury.ParseAddress(a)
		if err != nil {
			return nil, errors.Wrapf(err, "signer %d", i)
		}
		signers[i] = addr
	}
	return json.Marshal(DevAppState(signers))
}

// DevAppState returns the genesis application state used for development
// and tests.
func DevAppState(signers []treasury.Address) map[string]interface{} {
	return map[string]interface{}{
		"cash": []cash.GenesisAccount{
			{Address: signers[0], Amount: "1000"},
		},
		"ledger": ledger.Genesis{
			Name:         "Treasury Token",
			Symbol:       "TRSY",
			Decimals:     2,
			Supply:       "1000000",
			ExchangeRate: "5",
			Owner:        gate.CommitteeAddress(),
		},
		"gate": gate.Genesis{
			Signers: signers,
		},
	}
}

// GenerateApp is used by the start command to create the engine.
func GenerateApp(ctx context.Context, conf app.Config, logger log.Logger, reg prometheus.Registerer) (*app.Engine, error) {
	stack, err := Stack(conf.Name, reg)
	if err != nil {
		return nil, err
	}
	sinkConf, err := events.LoadConfig(conf.EnvFiles...)
	if err != nil {
		return nil, errors.Wrap(err, "event sinks")
	}
	sink, err := sinkConf.Open(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "event sinks")
	}
	engine, err := Application(conf.Name, stack, conf.DataDir, logger, sink)
	if err != nil {
		sink.Close()
		return nil, err
	}
	return engine.WithDebug(conf.Debug), nil
}
