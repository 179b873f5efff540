package treasury

import (
	"strconv"

	"github.com/tendermint/tendermint/libs/common"
)

// Kinds of events produced by the ledger, exchange and gate extensions.
const (
	EventTransfer          = "transfer"
	EventApproval          = "approval"
	EventPurchase          = "purchase"
	EventReserveWithdrawal = "reserve_withdrawal"
	EventProposalSubmitted = "proposal_submitted"
	EventProposalConfirmed = "proposal_confirmed"
	EventProposalExecuted  = "proposal_executed"
)

// Event is a fact produced by a successful state transition. Not every
// field is relevant to every kind, unused fields are left empty.
type Event struct {
	Kind string `json:"kind"`
	// From is the debited account or the acting signer.
	From Address `json:"from,omitempty"`
	// To is the credited account or the authorized spender.
	To Address `json:"to,omitempty"`
	// Spender is set for delegated transfers.
	Spender Address `json:"spender,omitempty"`
	Amount  uint64  `json:"amount,omitempty"`
	// Ref references an entity, for example a proposal ID.
	Ref []byte `json:"ref,omitempty"`
}

// Tags returns a search index representation of the event.
func (e Event) Tags() []common.KVPair {
	tags := []common.KVPair{{Key: []byte("event"), Value: []byte(e.Kind)}}
	if len(e.From) != 0 {
		tags = append(tags, common.KVPair{Key: []byte(e.Kind + ".from"), Value: []byte(e.From.String())})
	}
	if len(e.To) != 0 {
		tags = append(tags, common.KVPair{Key: []byte(e.Kind + ".to"), Value: []byte(e.To.String())})
	}
	if len(e.Spender) != 0 {
		tags = append(tags, common.KVPair{Key: []byte(e.Kind + ".spender"), Value: []byte(e.Spender.String())})
	}
	if e.Amount != 0 {
		tags = append(tags, common.KVPair{Key: []byte(e.Kind + ".amount"), Value: []byte(strconv.FormatUint(e.Amount, 10))})
	}
	return tags
}

// Emit appends the event to the result, indexing it with tags as well.
func (r *DeliverResult) Emit(e Event) {
	r.Events = append(r.Events, e)
	r.Tags = append(r.Tags, e.Tags()...)
}
