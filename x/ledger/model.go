package ledger

import (
	"regexp"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/coin"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/orm"
)

var (
	isSymbol    = regexp.MustCompile(`^[A-Z]{2,8}$`).MatchString
	isTokenName = regexp.MustCompile(`^[A-Za-z0-9 \-_:]{3,32}$`).MatchString
)

// HoldingCondition is the condition of the account holding the unissued
// supply and the base currency reserve.
func HoldingCondition() treasury.Condition {
	return treasury.NewCondition("ledger", "holding", []byte("reserve"))
}

// HoldingAddress is the address of the ledger's own account.
func HoldingAddress() treasury.Address {
	return HoldingCondition().Address()
}

// Account holds the ledger balance of a single address.
type Account struct {
	Balance uint64
}

var _ orm.Model = (*Account)(nil)

func (a *Account) Validate() error {
	return nil
}

// Allowance is the amount a spender may still move on behalf of an owner.
type Allowance struct {
	Amount uint64
}

var _ orm.Model = (*Allowance)(nil)

func (a *Allowance) Validate() error {
	return nil
}

// State is the singleton describing the ledger.
type State struct {
	Name     string
	Symbol   string
	Decimals uint32
	// TotalSupply is constant once issued.
	TotalSupply uint64
	// ReserveBalance is the amount of base currency held by the holding
	// account on behalf of the owner.
	ReserveBalance uint64
	// ExchangeRate is the number of base currency units paid for a single
	// ledger unit.
	ExchangeRate uint64
	// Owner is the sole authority allowed to withdraw the reserve.
	Owner treasury.Address
}

var _ orm.Model = (*State)(nil)

func (s *State) Validate() error {
	var errs error
	if !isTokenName(s.Name) {
		errs = errors.Append(errs, errors.Field("Name", errors.ErrInput, "invalid token name %q", s.Name))
	}
	if !isSymbol(s.Symbol) {
		errs = errors.Append(errs, errors.Field("Symbol", errors.ErrInput, "invalid symbol %q", s.Symbol))
	}
	if s.Decimals > coin.MaxDecimals {
		errs = errors.Append(errs, errors.Field("Decimals", errors.ErrInput, "must not be greater than %d", coin.MaxDecimals))
	}
	if s.TotalSupply == 0 {
		errs = errors.AppendField(errs, "TotalSupply", errors.ErrAmount)
	}
	if s.ExchangeRate == 0 {
		errs = errors.AppendField(errs, "ExchangeRate", errors.ErrAmount)
	}
	errs = errors.AppendField(errs, "Owner", s.Owner.Validate())
	return errs
}

var stateKey = []byte("state")

// Bucket groups all buckets used by the ledger.
type Bucket struct {
	state      orm.ModelBucket
	accounts   orm.ModelBucket
	allowances orm.ModelBucket
}

// NewBucket returns the buckets of the ledger with the default names.
func NewBucket() Bucket {
	return Bucket{
		state:      orm.NewModelBucket("ledger"),
		accounts:   orm.NewModelBucket("balance"),
		allowances: orm.NewModelBucket("allowance"),
	}
}

func allowanceKey(owner, spender treasury.Address) []byte {
	key := make([]byte, 0, len(owner)+len(spender))
	key = append(key, owner...)
	return append(key, spender...)
}
