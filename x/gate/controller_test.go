package gate

import (
	"context"
	"testing"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/app"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/orm"
	"github.com/iov-one/treasury/store"
	"github.com/iov-one/treasury/treasurytest"
	"github.com/iov-one/treasury/treasurytest/assert"
	"github.com/iov-one/treasury/x"
	"github.com/iov-one/treasury/x/cash"
	"github.com/iov-one/treasury/x/ledger"
)

type fixture struct {
	db      store.CacheableKVStore
	signers []treasury.Condition
	gate    Controller
	ledger  ledger.BaseController
	cash    cash.BaseController
}

// newFixture creates a committee of n signers, owning a ledger with a
// reserve of 500 base currency units.
func newFixture(t testing.TB, n int, threshold uint32) fixture {
	t.Helper()
	db := store.MemStore()

	cashCtrl := cash.NewController(cash.NewBucket())
	ledgerCtrl := ledger.NewController(ledger.NewBucket(), cashCtrl)
	err := ledgerCtrl.IssueInitialSupply(db, &ledger.State{
		Name:         "Vault Token",
		Symbol:       "VLT",
		TotalSupply:  1000,
		ExchangeRate: 5,
		Owner:        CommitteeAddress(),
	})
	assert.Nil(t, err)
	assert.Nil(t, cashCtrl.IssueCoins(db, ledger.HoldingAddress(), 500))
	assert.Nil(t, ledgerCtrl.DepositReserve(db, 500))

	auth := x.ChainAuth(Authenticate{})
	rt := app.NewRouter()
	ledger.RegisterRoutes(rt, auth, ledgerCtrl)
	cash.RegisterRoutes(rt, auth, cashCtrl)

	signers := make([]treasury.Condition, n)
	addrs := make([]treasury.Address, n)
	for i := range signers {
		signers[i] = treasurytest.NewCondition()
		addrs[i] = signers[i].Address()
	}
	gate := NewController(NewBucket(), HandlerAsExecutor(rt))
	assert.Nil(t, gate.SetCommittee(db, &Committee{Signers: addrs, Threshold: threshold}))

	return fixture{db: db, signers: signers, gate: gate, ledger: ledgerCtrl, cash: cashCtrl}
}

func (f fixture) signer(i int) treasury.Address {
	return f.signers[i].Address()
}

func TestThreeOfThree(t *testing.T) {
	f := newFixture(t, 3, 3)
	ctx := context.Background()
	outsider := treasurytest.NewAddress()

	_, err := f.gate.Submit(ctx, f.db, outsider, &Action{WithdrawReserve: &ledger.WithdrawReserveMsg{}})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	id, err := f.gate.Submit(ctx, f.db, f.signer(0), &Action{WithdrawReserve: &ledger.WithdrawReserveMsg{}})
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), orm.DecodeSequence(id))

	for i := 0; i < 2; i++ {
		_, res, err := f.gate.Confirm(ctx, f.db, f.signer(i), id)
		assert.Nil(t, err)
		assert.Nil(t, res)

		executed, err := f.gate.IsExecuted(f.db, id)
		assert.Nil(t, err)
		assert.Equal(t, false, executed)
	}

	_, _, err = f.gate.Confirm(ctx, f.db, f.signer(1), id)
	assert.IsErr(t, errors.ErrAlreadyConfirmed, err)
	_, _, err = f.gate.Confirm(ctx, f.db, outsider, id)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, _, err = f.gate.Confirm(ctx, f.db, f.signer(0), orm.EncodeSequence(42))
	assert.IsErr(t, errors.ErrUnknownProposal, err)

	count, err := f.gate.ConfirmationCount(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, 2, count)

	_, res, err := f.gate.Confirm(ctx, f.db, f.signer(2), id)
	assert.Nil(t, err)
	if res == nil {
		t.Fatal("execution result expected")
	}

	executed, err := f.gate.IsExecuted(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, true, executed)
	n, err := f.gate.ExecutedCount(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, uint32(1), n)

	got, err := f.cash.Balance(f.db, CommitteeAddress())
	assert.Nil(t, err)
	assert.Equal(t, uint64(500), got)

	// A repeated confirmation after execution reports the execution.
	_, _, err = f.gate.Confirm(ctx, f.db, f.signer(2), id)
	assert.IsErr(t, errors.ErrAlreadyExecuted, err)
	n, err = f.gate.ExecutedCount(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, uint32(1), n)
	got, err = f.cash.Balance(f.db, CommitteeAddress())
	assert.Nil(t, err)
	assert.Equal(t, uint64(500), got)
}

func TestTwoOfThree(t *testing.T) {
	f := newFixture(t, 3, 2)
	ctx := context.Background()

	id, err := f.gate.Submit(ctx, f.db, f.signer(2), &Action{WithdrawReserve: &ledger.WithdrawReserveMsg{}})
	assert.Nil(t, err)

	_, res, err := f.gate.Confirm(ctx, f.db, f.signer(0), id)
	assert.Nil(t, err)
	assert.Nil(t, res)
	_, res, err = f.gate.Confirm(ctx, f.db, f.signer(1), id)
	assert.Nil(t, err)
	if res == nil {
		t.Fatal("execution result expected")
	}

	// Executed proposals accept no further confirmation, even from a
	// signer that did not confirm yet.
	_, _, err = f.gate.Confirm(ctx, f.db, f.signer(2), id)
	assert.IsErr(t, errors.ErrAlreadyExecuted, err)

	count, err := f.gate.ConfirmationCount(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, 2, count)
	n, err := f.gate.ExecutedCount(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, uint32(1), n)

	got, err := f.cash.Balance(f.db, CommitteeAddress())
	assert.Nil(t, err)
	assert.Equal(t, uint64(500), got)
}

func TestConfirmCheckOrder(t *testing.T) {
	f := newFixture(t, 2, 1)
	ctx := context.Background()

	id, err := f.gate.Submit(ctx, f.db, f.signer(0), &Action{WithdrawReserve: &ledger.WithdrawReserveMsg{}})
	assert.Nil(t, err)
	_, _, err = f.gate.Confirm(ctx, f.db, f.signer(0), id)
	assert.Nil(t, err)

	// Executed is reported before already confirmed.
	_, _, err = f.gate.Confirm(ctx, f.db, f.signer(0), id)
	assert.IsErr(t, errors.ErrAlreadyExecuted, err)

	// Authorization is checked before the proposal lookup.
	_, _, err = f.gate.Confirm(ctx, f.db, treasurytest.NewAddress(), orm.EncodeSequence(99))
	assert.IsErr(t, errors.ErrUnauthorized, err)

	_, _, err = f.gate.Confirm(ctx, f.db, f.signer(1), []byte("bad"))
	assert.IsErr(t, errors.ErrUnknownProposal, err)
}

func TestFailedExecutionReverts(t *testing.T) {
	f := newFixture(t, 2, 2)
	ctx := context.Background()
	dest := treasurytest.NewAddress()

	// The committee holds no ledger units yet.
	action := &Action{LedgerTransfer: &ledger.TransferMsg{To: dest, Amount: 10}}
	id, err := f.gate.Submit(ctx, f.db, f.signer(1), action)
	assert.Nil(t, err)

	_, _, err = f.gate.Confirm(ctx, f.db, f.signer(0), id)
	assert.Nil(t, err)
	_, _, err = f.gate.Confirm(ctx, f.db, f.signer(1), id)
	assert.IsErr(t, errors.ErrInsufficientBalance, err)

	executed, err := f.gate.IsExecuted(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, false, executed)
	count, err := f.gate.ConfirmationCount(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, 1, count)

	assert.Nil(t, f.ledger.Transfer(f.db, ledger.HoldingAddress(), CommitteeAddress(), 10))
	_, _, err = f.gate.Confirm(ctx, f.db, f.signer(1), id)
	assert.Nil(t, err)

	got, err := f.ledger.BalanceOf(f.db, dest)
	assert.Nil(t, err)
	assert.Equal(t, uint64(10), got)
}

func TestSubmitValidatesAction(t *testing.T) {
	f := newFixture(t, 1, 1)
	ctx := context.Background()

	_, err := f.gate.Submit(ctx, f.db, f.signer(0), &Action{})
	assert.IsErr(t, errors.ErrEmpty, err)

	_, err = f.gate.Submit(ctx, f.db, f.signer(0), &Action{CashSend: &cash.SendMsg{}})
	assert.IsErr(t, errors.ErrAmount, err)

	// Only the committee can be the acting party.
	_, err = f.gate.Submit(ctx, f.db, f.signer(0), &Action{LedgerTransfer: &ledger.TransferMsg{
		From:   f.signer(0),
		To:     treasurytest.NewAddress(),
		Amount: 1,
	}})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	latest, err := f.gate.bucket.ids.Latest(f.db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), latest)
}

func TestCommitteeSetOnce(t *testing.T) {
	f := newFixture(t, 1, 1)
	err := f.gate.SetCommittee(f.db, &Committee{Signers: []treasury.Address{treasurytest.NewAddress()}, Threshold: 1})
	assert.IsErr(t, errors.ErrDuplicate, err)

	_, err = NewController(NewBucket(), nil).Committee(store.MemStore())
	assert.IsErr(t, errors.ErrState, err)
}
