package treasury

import (
	"bytes"
	"encoding/json"

	"github.com/iov-one/treasury/errors"
	"github.com/tendermint/tendermint/libs/common"
)

// Handler is a core engine that can process a few specific messages
// This could represent "ledger transfer", or "confirm a proposal"
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality
// like authentication, or savepoints, to many Handlers
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is an interface to register your handler,
// the setup side of a Router
type Registry interface {
	// Handle assigns given handler to handle processing of every message
	// of provided type.
	// Using a message instead of a path guarantees that the handler is
	// registered for the path the message reports.
	Handle(Msg, Handler)
}

// CheckResult captures any non-error info when running a transaction
// through the checker.
type CheckResult struct {
	// Log is human-readable informational string
	Log string
	// Data is a machine-parseable return value, like id of created entity
	Data []byte
}

// DeliverResult captures any non-error info when executing a transaction.
type DeliverResult struct {
	// Log is human-readable informational string
	Log string
	// Data is a machine-parseable return value, like id of created entity
	Data []byte
	// Tags are used for indexing and searching results
	Tags []common.KVPair
	// Events are the domain facts produced by the execution. They are
	// published only once the state changes were committed.
	Events []Event
}

// Options are the app options
// Each extension can look up it's key and parse the json as desired
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot read %q options: %s", key, err)
	}
	return nil
}

// Stream expects an array of json elements and allows to process them
// sequentially. This helps process a large list without loading it all
// into memory at once. Returned function loads the next element into
// provided destination and returns ErrEmpty once the list is exhausted.
// Every call after that returns ErrState.
func (o Options) Stream(key string) (func(dest interface{}) error, error) {
	data, ok := o[key]
	if !ok {
		return nil, errors.Wrapf(errors.ErrEmpty, "no %q options", key)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot read %q: %s", key, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, errors.Wrapf(errors.ErrInput, "%q options must be a list", key)
	}

	var done bool
	return func(dest interface{}) error {
		if done {
			return errors.Wrap(errors.ErrState, "stream closed")
		}
		if !dec.More() {
			done = true
			return errors.ErrEmpty
		}
		if err := dec.Decode(dest); err != nil {
			done = true
			return errors.Wrapf(errors.ErrInput, "cannot decode %q element: %s", key, err)
		}
		return nil
	}, nil
}

// Initializer implementations are used to initialize
// extensions from genesis file contents
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// ChainInitializers lets you initialize many extensions at once
type ChainInitializers []Initializer

var _ Initializer = ChainInitializers{}

// FromGenesis will pass opts and kv to every Initializer in the given
// order and return the first error.
func (c ChainInitializers) FromGenesis(opts Options, kv KVStore) error {
	for _, i := range c {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
