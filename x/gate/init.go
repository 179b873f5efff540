package gate

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
)

const optKey = "gate"

// Genesis configures the committee. A zero threshold requires every
// signer to confirm.
type Genesis struct {
	Signers   []treasury.Address `json:"signers"`
	Threshold uint32             `json:"threshold,omitempty"`
}

// Initializer sets up the committee from the genesis file.
type Initializer struct{}

var _ treasury.Initializer = Initializer{}

func (Initializer) FromGenesis(opts treasury.Options, db treasury.KVStore) error {
	if _, ok := opts[optKey]; !ok {
		return nil
	}
	var g Genesis
	if err := opts.ReadOptions(optKey, &g); err != nil {
		return err
	}
	committee := &Committee{Signers: g.Signers, Threshold: g.Threshold}
	if committee.Threshold == 0 {
		committee.Threshold = uint32(len(committee.Signers))
	}
	if err := committee.Validate(); err != nil {
		return errors.Wrap(err, "committee")
	}
	return NewController(NewBucket(), nil).SetCommittee(db, committee)
}
