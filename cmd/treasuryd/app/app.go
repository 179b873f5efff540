/*
Package app wires the treasury extensions into a single handler stack and
hosts it in an engine.

Every message is authenticated either by transaction signatures or, for
actions executed by an approved proposal, by the committee condition set
by the gate.
*/
package app

import (
	"path/filepath"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/app"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/events"
	"github.com/iov-one/treasury/store/badgerdb"
	"github.com/iov-one/treasury/x"
	"github.com/iov-one/treasury/x/cash"
	"github.com/iov-one/treasury/x/exchange"
	"github.com/iov-one/treasury/x/gate"
	"github.com/iov-one/treasury/x/ledger"
	"github.com/iov-one/treasury/x/sigs"
	"github.com/iov-one/treasury/x/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tendermint/tendermint/libs/log"
)

// Authenticator accepts signatures of the transaction and the committee
// identity of an executing proposal.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{}, gate.Authenticate{})
}

// CashControl returns a controller for cash functions
func CashControl() cash.Controller {
	return cash.NewController(cash.NewBucket())
}

// LedgerControl returns a controller for the ledger, paying the reserve
// out in cash.
func LedgerControl() ledger.Controller {
	return ledger.NewController(ledger.NewBucket(), CashControl())
}

// Chain returns a chain of decorators, to handle authentication,
// logging, metrics and recovery. Metrics are optional.
func Chain(metrics *utils.Metrics) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		metrics,
		utils.NewRecovery(),
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
	)
}

// Router returns a router dispatching to every extension. Proposals
// approved by the gate are executed by the same router.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	cashCtrl := CashControl()
	ledgerCtrl := LedgerControl()
	cash.RegisterRoutes(r, authFn, cashCtrl)
	ledger.RegisterRoutes(r, authFn, ledgerCtrl)
	exchange.RegisterRoutes(r, authFn, exchange.NewController(ledgerCtrl, cashCtrl))

	exec := gate.HandlerAsExecutor(app.ChainDecorators(utils.NewActionTagger()).WithHandler(r))
	gate.RegisterRoutes(r, authFn, gate.NewController(gate.NewBucket(), exec))
	return r
}

// Stack wires up the router with the decorator chain. Metrics are
// registered with reg unless it is nil.
func Stack(namespace string, reg prometheus.Registerer) (treasury.Handler, error) {
	var metrics *utils.Metrics
	if reg != nil {
		m, err := utils.NewMetrics(namespace, reg)
		if err != nil {
			return nil, errors.Wrap(err, "metrics")
		}
		metrics = m
	}
	return Chain(metrics).WithHandler(Router(Authenticator())), nil
}

// Initializers returns all genesis initializers in the order they must
// run. Cash goes first so that the ledger reserve can be funded.
func Initializers() treasury.Initializer {
	return treasury.ChainInitializers{
		cash.Initializer{},
		ledger.Initializer{},
		gate.Initializer{},
	}
}

// Application constructs an engine with the given handler, persisting the
// state in dbPath.
func Application(name string, h treasury.Handler, dbPath string, logger log.Logger, sink events.Sink) (*app.Engine, error) {
	kv, err := CommitKVStore(dbPath, logger)
	if err != nil {
		return nil, err
	}
	e, err := app.NewEngine(name, kv, h, TxDecoder)
	if err != nil {
		kv.Close()
		return nil, err
	}
	return e.WithInit(Initializers()).
		WithLogger(logger).
		WithSink(sink), nil
}

// CommitKVStore returns an initialized store that persists the data in
// the given directory.
func CommitKVStore(dbPath string, logger log.Logger) (treasury.CommitKVStore, error) {
	if dbPath == "" {
		return nil, errors.Wrap(errors.ErrEmpty, "database path")
	}
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database path %q", dbPath)
	}
	return badgerdb.NewCommitStore(path, logger)
}
