package ledger

import (
	"testing"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/treasurytest"
	"github.com/iov-one/treasury/treasurytest/assert"
)

func TestMsgValidate(t *testing.T) {
	addr := treasurytest.NewAddress()

	cases := map[string]struct {
		msg       treasury.Msg
		wantField map[string]*errors.Error
	}{
		"valid transfer": {
			msg: &TransferMsg{To: addr, Amount: 1},
			wantField: map[string]*errors.Error{
				"From":   nil,
				"To":     nil,
				"Amount": nil,
			},
		},
		"empty transfer": {
			msg: &TransferMsg{From: []byte("x")},
			wantField: map[string]*errors.Error{
				"From":   errors.ErrInput,
				"To":     errors.ErrInput,
				"Amount": nil,
			},
		},
		"approve zero revokes": {
			msg: &ApproveMsg{Spender: addr},
			wantField: map[string]*errors.Error{
				"Owner":   nil,
				"Spender": nil,
			},
		},
		"approve without spender": {
			msg: &ApproveMsg{Amount: 4},
			wantField: map[string]*errors.Error{
				"Spender": errors.ErrInput,
			},
		},
		"valid transfer from": {
			msg: &TransferFromMsg{Owner: addr, To: addr, Amount: 3},
			wantField: map[string]*errors.Error{
				"Spender": nil,
				"Owner":   nil,
				"To":      nil,
				"Amount":  nil,
			},
		},
		"transfer from without owner": {
			msg: &TransferFromMsg{To: addr},
			wantField: map[string]*errors.Error{
				"Owner":  errors.ErrInput,
				"Amount": nil,
			},
		},
		"withdraw by signer": {
			msg: &WithdrawReserveMsg{},
			wantField: map[string]*errors.Error{
				"Caller": nil,
			},
		},
		"withdraw with invalid caller": {
			msg: &WithdrawReserveMsg{Caller: []byte("x")},
			wantField: map[string]*errors.Error{
				"Caller": errors.ErrInput,
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			for field, want := range tc.wantField {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}

func TestStateValidate(t *testing.T) {
	owner := treasurytest.NewAddress()

	cases := map[string]struct {
		state     State
		wantField map[string]*errors.Error
	}{
		"valid": {
			state: State{Name: "Gold Token", Symbol: "GLD", Decimals: 6, TotalSupply: 1, ExchangeRate: 1, Owner: owner},
			wantField: map[string]*errors.Error{
				"Name":         nil,
				"Symbol":       nil,
				"Decimals":     nil,
				"TotalSupply":  nil,
				"ExchangeRate": nil,
				"Owner":        nil,
			},
		},
		"empty": {
			state: State{Decimals: 10},
			wantField: map[string]*errors.Error{
				"Name":         errors.ErrInput,
				"Symbol":       errors.ErrInput,
				"Decimals":     errors.ErrInput,
				"TotalSupply":  errors.ErrAmount,
				"ExchangeRate": errors.ErrAmount,
				"Owner":        errors.ErrInput,
			},
		},
		"lowercase symbol": {
			state: State{Name: "Gold", Symbol: "gld", TotalSupply: 1, ExchangeRate: 1, Owner: owner},
			wantField: map[string]*errors.Error{
				"Symbol": errors.ErrInput,
				"Name":   nil,
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.state.Validate()
			for field, want := range tc.wantField {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}
