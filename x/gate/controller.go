package gate

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/orm"
)

// Controller manages the committee and the lifecycle of proposals.
type Controller struct {
	bucket Bucket
	exec   Executor
}

// NewController returns a controller executing approved actions with
// exec.
func NewController(bucket Bucket, exec Executor) Controller {
	return Controller{bucket: bucket, exec: exec}
}

// SetCommittee stores the committee. It can be set only once.
func (c Controller) SetCommittee(db treasury.KVStore, committee *Committee) error {
	switch err := c.bucket.committee.Has(db, committeeKey); {
	case err == nil:
		return errors.Wrap(errors.ErrDuplicate, "committee already set")
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return c.bucket.committee.Put(db, committeeKey, committee)
}

// Committee returns the configured committee.
func (c Controller) Committee(db treasury.ReadOnlyKVStore) (*Committee, error) {
	var committee Committee
	switch err := c.bucket.committee.One(db, committeeKey, &committee); {
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrap(errors.ErrState, "committee not configured")
	case err != nil:
		return nil, err
	}
	return &committee, nil
}

// Submit creates a new proposal and returns its ID.
func (c Controller) Submit(ctx treasury.Context, db treasury.KVStore, caller treasury.Address, action *Action) ([]byte, error) {
	committee, err := c.Committee(db)
	if err != nil {
		return nil, err
	}
	if !committee.IsSigner(caller) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%s is not a committee signer", caller)
	}
	if err := action.Validate(); err != nil {
		return nil, errors.Wrap(err, "action")
	}
	msg, err := action.Msg()
	if err != nil {
		return nil, err
	}
	if a := actor(msg); len(a) != 0 && !a.Equals(CommitteeAddress()) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "action can only act as the committee, not %s", a)
	}
	height, _ := treasury.GetHeight(ctx)
	proposal := &Proposal{
		Action:      action,
		Author:      caller,
		SubmittedAt: height,
	}
	id, err := c.bucket.ids.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "proposal id")
	}
	if err := c.bucket.proposals.Put(db, id, proposal); err != nil {
		return nil, errors.Wrap(err, "cannot save proposal")
	}
	return id, nil
}

// Confirm records the confirmation of the caller. The confirmation that
// reaches the threshold executes the action. If the execution fails
// nothing is recorded and the error is returned. The result of the
// execution is returned only if the action was executed by this call.
func (c Controller) Confirm(ctx treasury.Context, db treasury.KVStore, caller treasury.Address, id []byte) (*Proposal, *treasury.DeliverResult, error) {
	committee, err := c.Committee(db)
	if err != nil {
		return nil, nil, err
	}
	if !committee.IsSigner(caller) {
		return nil, nil, errors.Wrapf(errors.ErrUnauthorized, "%s is not a committee signer", caller)
	}
	proposal, err := c.Proposal(db, id)
	if err != nil {
		return nil, nil, err
	}
	if proposal.Executed {
		return nil, nil, errors.Wrapf(errors.ErrAlreadyExecuted, "proposal %d", orm.DecodeSequence(id))
	}
	if proposal.HasConfirmation(caller) {
		return nil, nil, errors.Wrapf(errors.ErrAlreadyConfirmed, "%s confirmed proposal %d", caller, orm.DecodeSequence(id))
	}
	proposal.Confirmations = append(proposal.Confirmations, caller)

	if uint32(len(proposal.Confirmations)) < committee.Threshold {
		if err := c.bucket.proposals.Put(db, id, proposal); err != nil {
			return nil, nil, errors.Wrap(err, "cannot save proposal")
		}
		return proposal, nil, nil
	}

	res, err := c.execute(ctx, db, id, proposal)
	if err != nil {
		return nil, nil, err
	}
	return proposal, res, nil
}

// execute marks the proposal executed and saves it before running the
// action. Both writes succeed or neither does.
func (c Controller) execute(ctx treasury.Context, db treasury.KVStore, id []byte, proposal *Proposal) (*treasury.DeliverResult, error) {
	proposal.Executed = true
	proposal.ExecutedCount = 1
	proposal.ExecutedAt, _ = treasury.GetHeight(ctx)

	msg, err := proposal.Action.committeeMsg()
	if err != nil {
		return nil, err
	}

	// Without a cache the caller is expected to discard the store
	// on failure.
	kv := db
	var cache treasury.KVCacheWrap
	if cacheable, ok := db.(treasury.CacheableKVStore); ok {
		cache = cacheable.CacheWrap()
		kv = cache
	}
	discard := func() {
		if cache != nil {
			cache.Discard()
		}
	}

	if err := c.bucket.proposals.Put(kv, id, proposal); err != nil {
		discard()
		return nil, errors.Wrap(err, "cannot save proposal")
	}
	res, err := c.exec(withCommittee(ctx), kv, msg)
	if err != nil {
		discard()
		return nil, errors.Wrapf(err, "execute %s", msg.Path())
	}
	if cache != nil {
		if err := cache.Write(); err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}
	if res == nil {
		res = &treasury.DeliverResult{}
	}
	return res, nil
}

// Proposal returns the proposal with the given ID.
func (c Controller) Proposal(db treasury.ReadOnlyKVStore, id []byte) (*Proposal, error) {
	if err := orm.ValidateSequence(id); err != nil {
		return nil, errors.Wrap(errors.ErrUnknownProposal, err.Error())
	}
	var p Proposal
	switch err := c.bucket.proposals.One(db, id, &p); {
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(errors.ErrUnknownProposal, "proposal %d", orm.DecodeSequence(id))
	case err != nil:
		return nil, err
	}
	return &p, nil
}

func (c Controller) IsExecuted(db treasury.ReadOnlyKVStore, id []byte) (bool, error) {
	p, err := c.Proposal(db, id)
	if err != nil {
		return false, err
	}
	return p.Executed, nil
}

func (c Controller) ExecutedCount(db treasury.ReadOnlyKVStore, id []byte) (uint32, error) {
	p, err := c.Proposal(db, id)
	if err != nil {
		return 0, err
	}
	return p.ExecutedCount, nil
}

func (c Controller) ConfirmationCount(db treasury.ReadOnlyKVStore, id []byte) (int, error) {
	p, err := c.Proposal(db, id)
	if err != nil {
		return 0, err
	}
	return len(p.Confirmations), nil
}
