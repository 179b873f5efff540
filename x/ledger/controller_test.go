package ledger

import (
	"testing"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/store"
	"github.com/iov-one/treasury/treasurytest"
	"github.com/iov-one/treasury/treasurytest/assert"
	"github.com/iov-one/treasury/x/cash"
)

// newTestLedger returns a store with an issued ledger of the given supply
// and a controller operating on it.
func newTestLedger(t testing.TB, owner treasury.Address, supply uint64) (store.CacheableKVStore, BaseController, cash.BaseController) {
	t.Helper()
	db := store.MemStore()
	cashCtrl := cash.NewController(cash.NewBucket())
	c := NewController(NewBucket(), cashCtrl)
	state := &State{
		Name:         "Test Token",
		Symbol:       "TST",
		Decimals:     2,
		TotalSupply:  supply,
		ExchangeRate: 10,
		Owner:        owner,
	}
	assert.Nil(t, c.IssueInitialSupply(db, state))
	return db, c, cashCtrl
}

// fund moves ledger units from the holding account.
func fund(t testing.TB, db treasury.KVStore, c Controller, to treasury.Address, amount uint64) {
	t.Helper()
	assert.Nil(t, c.Transfer(db, HoldingAddress(), to, amount))
}

func assertBalance(t testing.TB, c Controller, db treasury.ReadOnlyKVStore, addr treasury.Address, want uint64) {
	t.Helper()
	got, err := c.BalanceOf(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, want, got)
}

func assertAllowance(t testing.TB, c Controller, db treasury.ReadOnlyKVStore, owner, spender treasury.Address, want uint64) {
	t.Helper()
	got, err := c.Allowance(db, owner, spender)
	assert.Nil(t, err)
	assert.Equal(t, want, got)
}

// assertConserved ensures the sum of all balances equals the total supply.
func assertConserved(t testing.TB, c BaseController, db treasury.ReadOnlyKVStore) {
	t.Helper()
	var sum uint64
	err := c.IterateBalances(db, func(_ treasury.Address, balance uint64) error {
		sum += balance
		return nil
	})
	assert.Nil(t, err)
	supply, err := c.TotalSupply(db)
	assert.Nil(t, err)
	assert.Equal(t, supply, sum)
}

func TestIssueInitialSupply(t *testing.T) {
	owner := treasurytest.NewAddress()
	db, c, _ := newTestLedger(t, owner, 1000)

	assertBalance(t, c, db, HoldingAddress(), 1000)
	supply, err := c.TotalSupply(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1000), supply)

	err = c.IssueInitialSupply(db, &State{Name: "Other", Symbol: "OTH", TotalSupply: 5, ExchangeRate: 1, Owner: owner})
	assert.IsErr(t, errors.ErrDuplicate, err)
	assertBalance(t, c, db, HoldingAddress(), 1000)

	fresh := NewController(NewBucket(), cash.NewController(cash.NewBucket()))
	empty := store.MemStore()
	_, err = fresh.State(empty)
	assert.IsErr(t, errors.ErrState, err)
	err = fresh.IssueInitialSupply(empty, &State{Name: "Bad", Symbol: "TST", ExchangeRate: 1, Owner: owner})
	assert.IsErr(t, errors.ErrAmount, err)
	_, err = fresh.State(empty)
	assert.IsErr(t, errors.ErrState, err)
}

func TestTransfer(t *testing.T) {
	alice := treasurytest.NewAddress()
	bert := treasurytest.NewAddress()

	cases := map[string]struct {
		from, to  treasury.Address
		amount    uint64
		wantErr   *errors.Error
		wantAlice uint64
		wantBert  uint64
	}{
		"simple transfer": {
			from: alice, to: bert, amount: 40,
			wantAlice: 60, wantBert: 40,
		},
		"whole balance": {
			from: alice, to: bert, amount: 100,
			wantAlice: 0, wantBert: 100,
		},
		"balance too low": {
			from: alice, to: bert, amount: 101,
			wantErr:   errors.ErrInsufficientBalance,
			wantAlice: 100,
		},
		"empty account": {
			from: bert, to: alice, amount: 1,
			wantErr:   errors.ErrInsufficientBalance,
			wantAlice: 100,
		},
		"zero amount": {
			from: alice, to: bert, amount: 0,
			wantAlice: 100,
		},
		"zero amount from an empty account": {
			from: bert, to: alice, amount: 0,
			wantAlice: 100,
		},
		"to self": {
			from: alice, to: alice, amount: 70,
			wantAlice: 100,
		},
		"to self above balance": {
			from: alice, to: alice, amount: 170,
			wantErr:   errors.ErrInsufficientBalance,
			wantAlice: 100,
		},
		"invalid recipient": {
			from: alice, to: []byte("short"), amount: 1,
			wantErr:   errors.ErrInput,
			wantAlice: 100,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db, c, _ := newTestLedger(t, alice, 1000)
			fund(t, db, c, alice, 100)

			err := c.Transfer(db, tc.from, tc.to, tc.amount)
			assert.IsErr(t, tc.wantErr, err)

			assertBalance(t, c, db, alice, tc.wantAlice)
			assertBalance(t, c, db, bert, tc.wantBert)
			assertConserved(t, c, db)
		})
	}
}

func TestConservation(t *testing.T) {
	owner := treasurytest.NewAddress()
	db, c, _ := newTestLedger(t, owner, 10000)

	addrs := make([]treasury.Address, 5)
	for i := range addrs {
		addrs[i] = treasurytest.NewAddress()
	}
	fund(t, db, c, addrs[0], 5000)

	// Every operation either succeeds or fails, the supply is never
	// created nor destroyed.
	for i := 0; i < 50; i++ {
		from := addrs[i%len(addrs)]
		to := addrs[(i*3+1)%len(addrs)]
		amount := uint64(i*37%900 + 1)

		_ = c.Transfer(db, from, to, amount)
		assertConserved(t, c, db)

		_ = c.Approve(db, from, to, amount)
		_ = c.TransferFrom(db, to, from, addrs[(i+2)%len(addrs)], amount/2+1)
		assertConserved(t, c, db)
	}
}

func TestAllowance(t *testing.T) {
	owner := treasurytest.NewAddress()
	spender := treasurytest.NewAddress()
	other := treasurytest.NewAddress()
	dest := treasurytest.NewAddress()

	db, c, _ := newTestLedger(t, owner, 1000)
	fund(t, db, c, owner, 100)

	// No grant, no delegated transfer.
	err := c.TransferFrom(db, spender, owner, dest, 1)
	assert.IsErr(t, errors.ErrInsufficientAllowance, err)
	assertAllowance(t, c, db, owner, spender, 0)

	assert.Nil(t, c.Approve(db, owner, spender, 60))
	assertAllowance(t, c, db, owner, spender, 60)
	assertAllowance(t, c, db, owner, other, 0)
	assertAllowance(t, c, db, spender, owner, 0)

	assert.Nil(t, c.TransferFrom(db, spender, owner, dest, 25))
	assertAllowance(t, c, db, owner, spender, 35)
	assertBalance(t, c, db, owner, 75)
	assertBalance(t, c, db, dest, 25)

	// Allowance is checked before the balance.
	err = c.TransferFrom(db, spender, owner, dest, 36)
	assert.IsErr(t, errors.ErrInsufficientAllowance, err)
	assertAllowance(t, c, db, owner, spender, 35)

	// A grant larger than the balance does not allow overdraft.
	assert.Nil(t, c.Approve(db, owner, spender, 500))
	err = c.TransferFrom(db, spender, owner, dest, 76)
	assert.IsErr(t, errors.ErrInsufficientBalance, err)
	assertAllowance(t, c, db, owner, spender, 500)
	assertBalance(t, c, db, owner, 75)

	// Spending down to zero keeps an exhausted grant.
	assert.Nil(t, c.Approve(db, owner, spender, 10))
	assert.Nil(t, c.TransferFrom(db, spender, owner, dest, 10))
	assertAllowance(t, c, db, owner, spender, 0)
	err = c.TransferFrom(db, spender, owner, dest, 1)
	assert.IsErr(t, errors.ErrInsufficientAllowance, err)

	// Revoke.
	assert.Nil(t, c.Approve(db, owner, other, 5))
	assert.Nil(t, c.Approve(db, owner, other, 0))
	err = c.TransferFrom(db, other, owner, dest, 1)
	assert.IsErr(t, errors.ErrInsufficientAllowance, err)

	// Plain transfers never touch grants.
	assert.Nil(t, c.Approve(db, owner, spender, 20))
	assert.Nil(t, c.Transfer(db, owner, dest, 5))
	assertAllowance(t, c, db, owner, spender, 20)

	// Zero moves nothing, even without a grant.
	assert.Nil(t, c.TransferFrom(db, spender, owner, dest, 0))
	assertAllowance(t, c, db, owner, spender, 20)
	stranger := treasurytest.NewAddress()
	assert.Nil(t, c.TransferFrom(db, stranger, owner, dest, 0))
	assertAllowance(t, c, db, owner, stranger, 0)
	assertConserved(t, c, db)
}

func TestWithdrawReserve(t *testing.T) {
	owner := treasurytest.NewAddress()
	stranger := treasurytest.NewAddress()

	db, c, cashCtrl := newTestLedger(t, owner, 1000)

	// Nothing to withdraw yet.
	amount, err := c.WithdrawReserve(db, owner)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), amount)

	assert.Nil(t, cashCtrl.IssueCoins(db, HoldingAddress(), 700))
	assert.Nil(t, c.DepositReserve(db, 700))

	_, err = c.WithdrawReserve(db, stranger)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	state, err := c.State(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(700), state.ReserveBalance)

	amount, err = c.WithdrawReserve(db, owner)
	assert.Nil(t, err)
	assert.Equal(t, uint64(700), amount)

	state, err = c.State(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), state.ReserveBalance)
	got, err := cashCtrl.Balance(db, owner)
	assert.Nil(t, err)
	assert.Equal(t, uint64(700), got)
	got, err = cashCtrl.Balance(db, HoldingAddress())
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), got)

	// The ledger supply is not affected.
	assertBalance(t, c, db, HoldingAddress(), 1000)
}
