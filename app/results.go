package app

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/tendermint/tendermint/libs/common"
)

// Result is the client facing outcome of a transaction. A zero Code means
// success.
type Result struct {
	Code uint32          `json:"code"`
	Log  string          `json:"log,omitempty"`
	Data []byte          `json:"data,omitempty"`
	Tags []common.KVPair `json:"tags,omitempty"`
}

// IsOK returns true if the transaction was successful.
func (r Result) IsOK() bool {
	return r.Code == errors.SuccessABCICode
}

// DeliverOrError returns a Result describing either the delivery result or
// the error. Unless debug is set, internal errors and panics are redacted.
func DeliverOrError(res *treasury.DeliverResult, err error, debug bool) Result {
	if err != nil {
		return errorResult(err, debug)
	}
	return Result{
		Log:  res.Log,
		Data: res.Data,
		Tags: res.Tags,
	}
}

// CheckOrError returns a Result describing either the check result or the
// error. Unless debug is set, internal errors and panics are redacted.
func CheckOrError(res *treasury.CheckResult, err error, debug bool) Result {
	if err != nil {
		return errorResult(err, debug)
	}
	return Result{
		Log:  res.Log,
		Data: res.Data,
	}
}

func errorResult(err error, debug bool) Result {
	code, log := errors.ABCIInfo(err, debug)
	return Result{Code: code, Log: log}
}
