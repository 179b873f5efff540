package exchange

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/codec"
	"github.com/iov-one/treasury/errors"
)

// BuyMsg pays Amount of base currency for ledger units. An empty Buyer
// defaults to the main signer. A payment too small to buy a single unit,
// including zero, fails with ErrZeroQuote.
type BuyMsg struct {
	Buyer  treasury.Address `json:"buyer,omitempty"`
	Amount uint64           `json:"amount"`
}

var _ treasury.Msg = (*BuyMsg)(nil)

func (BuyMsg) Path() string {
	return "exchange/buy"
}

func (m *BuyMsg) Validate() error {
	var errs error
	if len(m.Buyer) != 0 {
		errs = errors.AppendField(errs, "Buyer", m.Buyer.Validate())
	}
	return errs
}

func (m *BuyMsg) Marshal() ([]byte, error) {
	return codec.NewWriter().
		Bytes(1, m.Buyer).
		Uint64(2, m.Amount).
		Result()
}

func (m *BuyMsg) Unmarshal(raw []byte) error {
	*m = BuyMsg{}
	return codec.Decode(raw, func(field int32, r *codec.Reader) (err error) {
		switch field {
		case 1:
			m.Buyer, err = r.Bytes()
		case 2:
			m.Amount, err = r.Uint64()
		default:
			err = r.Skip()
		}
		return err
	})
}
