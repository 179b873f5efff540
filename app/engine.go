package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/events"
	"github.com/tendermint/tendermint/libs/log"
)

// Engine hosts a handler stack over a commit store. Every delivered
// transaction is executed on its own cache and committed as a single
// block. Mutating calls are serialised, views may run in parallel.
type Engine struct {
	mu sync.RWMutex

	name    string
	logger  log.Logger
	store   *CommitStore
	handler treasury.Handler
	decoder treasury.TxDecoder
	init    treasury.Initializer
	sink    events.Sink
	now     func() time.Time
	debug   bool

	// chainID is set once by InitChain or loaded from the store.
	chainID string
	height  int64
}

// NewEngine loads the latest committed state of the given store.
func NewEngine(name string, store treasury.CommitKVStore, handler treasury.Handler, decoder treasury.TxDecoder) (*Engine, error) {
	cs, err := NewCommitStore(store)
	if err != nil {
		return nil, err
	}
	chainID, err := loadChainID(cs.DeliverStore())
	if err != nil {
		return nil, err
	}
	info, err := cs.CommitInfo()
	if err != nil {
		return nil, errors.Wrap(err, "commit info")
	}
	return &Engine{
		name:    name,
		logger:  treasury.DefaultLogger,
		store:   cs,
		handler: handler,
		decoder: decoder,
		init:    treasury.ChainInitializers{},
		sink:    events.MultiSink{},
		now:     time.Now,
		chainID: chainID,
		height:  info.Version,
	}, nil
}

// WithInit sets the initializer used by InitChain.
func (e *Engine) WithInit(init treasury.Initializer) *Engine {
	e.init = init
	return e
}

// WithLogger sets the logger passed to every handler on the context.
func (e *Engine) WithLogger(logger log.Logger) *Engine {
	e.logger = logger.With("module", e.name)
	return e
}

// WithSink sets the destination of events produced by committed
// transactions.
func (e *Engine) WithSink(sink events.Sink) *Engine {
	e.sink = sink
	return e
}

// WithClock replaces the source of block time.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// WithDebug makes results carry the full error log, including panics.
func (e *Engine) WithDebug(debug bool) *Engine {
	e.debug = debug
	return e
}

// ChainID returns the chain id set at genesis. Empty until InitChain
// succeeded.
func (e *Engine) ChainID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.chainID
}

// Info returns the last committed height and hash.
func (e *Engine) Info() (treasury.CommitID, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.CommitInfo()
}

// InitChain stores the chain id and runs the initializer over the genesis
// application state. Nothing is written unless every initializer
// succeeded.
func (e *Engine) InitChain(gen *Genesis) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.chainID != "" {
		return errors.Wrapf(errors.ErrState, "genesis previously loaded for chain %q", e.chainID)
	}
	if err := gen.Validate(); err != nil {
		return errors.Wrap(err, "genesis")
	}

	cache := e.store.DeliverStore().CacheWrap()
	if err := saveChainID(cache, gen.ChainID); err != nil {
		cache.Discard()
		return err
	}
	if err := e.init.FromGenesis(gen.AppState, cache); err != nil {
		cache.Discard()
		return errors.Wrap(err, "initialize from genesis")
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "write genesis")
	}
	id, err := e.commit()
	if err != nil {
		return err
	}
	e.chainID = gen.ChainID
	e.logger.Info("Genesis loaded", "chain", e.chainID, "height", id.Version)
	return nil
}

// Deliver decodes and executes a single transaction and commits the
// result as a new block. A failed transaction leaves no state change.
// Events are published only after a successful commit. A failing sink is
// logged and does not affect the result.
func (e *Engine) Deliver(ctx context.Context, raw []byte) (*treasury.DeliverResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "chain not initialized")
	}
	tx, err := e.decoder(raw)
	if err != nil {
		return nil, errors.Wrap(err, "decode tx")
	}

	height := e.height + 1
	blockTime := e.now()
	ctx = e.context(ctx, height, blockTime)

	cache := e.store.DeliverStore().CacheWrap()
	res, err := e.handler.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write tx")
	}
	id, err := e.commit()
	if err != nil {
		return nil, err
	}

	if len(res.Events) != 0 {
		records := events.NewRecords(e.chainID, id.Version, treasury.GetPath(tx), blockTime, res.Events)
		if err := e.sink.Publish(ctx, records); err != nil {
			e.logger.Error("Cannot publish events",
				"height", id.Version,
				"count", len(records),
				"err", err)
		}
	}
	return res, nil
}

// Check decodes and validates a transaction against the check state. A
// successful check is remembered until the next commit, so that
// following checks see its effects, for example an incremented nonce.
func (e *Engine) Check(ctx context.Context, raw []byte) (*treasury.CheckResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "chain not initialized")
	}
	tx, err := e.decoder(raw)
	if err != nil {
		return nil, errors.Wrap(err, "decode tx")
	}
	ctx = e.context(ctx, e.height+1, e.now())

	cache := e.store.CheckStore().CacheWrap()
	res, err := e.handler.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write check")
	}
	return res, nil
}

// DeliverTx is Deliver with the outcome converted into a Result.
func (e *Engine) DeliverTx(ctx context.Context, raw []byte) Result {
	res, err := e.Deliver(ctx, raw)
	return DeliverOrError(res, err, e.debug)
}

// CheckTx is Check with the outcome converted into a Result.
func (e *Engine) CheckTx(ctx context.Context, raw []byte) Result {
	res, err := e.Check(ctx, raw)
	return CheckOrError(res, err, e.debug)
}

// View gives read only access to the last committed state. Any write
// done by fn is discarded.
func (e *Engine) View(fn func(db treasury.ReadOnlyKVStore) error) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	db := e.store.committed.CacheWrap()
	defer db.Discard()
	return fn(db)
}

// Close releases the store and the sink.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return errors.Append(e.sink.Close(), e.store.Close())
}

func (e *Engine) commit() (treasury.CommitID, error) {
	id, err := e.store.Commit()
	if err != nil {
		// The committed store is unchanged, drop what was written to the
		// caches so the next block starts from a consistent state.
		e.store.Reset()
		return id, errors.Wrap(err, "commit")
	}
	e.height = id.Version
	e.logger.Debug("Commit synced",
		"height", id.Version,
		"hash", fmt.Sprintf("%X", id.Hash))
	return id, nil
}

func (e *Engine) context(ctx context.Context, height int64, at time.Time) treasury.Context {
	ctx = treasury.WithLogger(ctx, e.logger)
	ctx = treasury.WithChainID(ctx, e.chainID)
	ctx = treasury.WithHeight(ctx, height)
	return treasury.WithBlockTime(ctx, at)
}
