package ledger

import "github.com/iov-one/treasury/codec"

func (a *Account) Marshal() ([]byte, error) {
	return codec.NewWriter().Uint64(1, a.Balance).Result()
}

func (a *Account) Unmarshal(raw []byte) error {
	*a = Account{}
	return codec.Decode(raw, func(field int32, r *codec.Reader) (err error) {
		switch field {
		case 1:
			a.Balance, err = r.Uint64()
		default:
			err = r.Skip()
		}
		return err
	})
}

func (a *Allowance) Marshal() ([]byte, error) {
	return codec.NewWriter().Uint64(1, a.Amount).Result()
}

func (a *Allowance) Unmarshal(raw []byte) error {
	*a = Allowance{}
	return codec.Decode(raw, func(field int32, r *codec.Reader) (err error) {
		switch field {
		case 1:
			a.Amount, err = r.Uint64()
		default:
			err = r.Skip()
		}
		return err
	})
}

func (s *State) Marshal() ([]byte, error) {
	return codec.NewWriter().
		String(1, s.Name).
		String(2, s.Symbol).
		Uint32(3, s.Decimals).
		Uint64(4, s.TotalSupply).
		Uint64(5, s.ReserveBalance).
		Uint64(6, s.ExchangeRate).
		Bytes(7, s.Owner).
		Result()
}

func (s *State) Unmarshal(raw []byte) error {
	*s = State{}
	return codec.Decode(raw, func(field int32, r *codec.Reader) (err error) {
		switch field {
		case 1:
			s.Name, err = r.String()
		case 2:
			s.Symbol, err = r.String()
		case 3:
			s.Decimals, err = r.Uint32()
		case 4:
			s.TotalSupply, err = r.Uint64()
		case 5:
			s.ReserveBalance, err = r.Uint64()
		case 6:
			s.ExchangeRate, err = r.Uint64()
		case 7:
			s.Owner, err = r.Bytes()
		default:
			err = r.Skip()
		}
		return err
	})
}

func (m *TransferMsg) Marshal() ([]byte, error) {
	return codec.NewWriter().
		Bytes(1, m.From).
		Bytes(2, m.To).
		Uint64(3, m.Amount).
		Result()
}

func (m *TransferMsg) Unmarshal(raw []byte) error {
	*m = TransferMsg{}
	return codec.Decode(raw, func(field int32, r *codec.Reader) (err error) {
		switch field {
		case 1:
			m.From, err = r.Bytes()
		case 2:
			m.To, err = r.Bytes()
		case 3:
			m.Amount, err = r.Uint64()
		default:
			err = r.Skip()
		}
		return err
	})
}

func (m *ApproveMsg) Marshal() ([]byte, error) {
	return codec.NewWriter().
		Bytes(1, m.Owner).
		Bytes(2, m.Spender).
		Uint64(3, m.Amount).
		Result()
}

func (m *ApproveMsg) Unmarshal(raw []byte) error {
	*m = ApproveMsg{}
	return codec.Decode(raw, func(field int32, r *codec.Reader) (err error) {
		switch field {
		case 1:
			m.Owner, err = r.Bytes()
		case 2:
			m.Spender, err = r.Bytes()
		case 3:
			m.Amount, err = r.Uint64()
		default:
			err = r.Skip()
		}
		return err
	})
}

func (m *TransferFromMsg) Marshal() ([]byte, error) {
	return codec.NewWriter().
		Bytes(1, m.Spender).
		Bytes(2, m.Owner).
		Bytes(3, m.To).
		Uint64(4, m.Amount).
		Result()
}

func (m *TransferFromMsg) Unmarshal(raw []byte) error {
	*m = TransferFromMsg{}
	return codec.Decode(raw, func(field int32, r *codec.Reader) (err error) {
		switch field {
		case 1:
			m.Spender, err = r.Bytes()
		case 2:
			m.Owner, err = r.Bytes()
		case 3:
			m.To, err = r.Bytes()
		case 4:
			m.Amount, err = r.Uint64()
		default:
			err = r.Skip()
		}
		return err
	})
}

func (m *WithdrawReserveMsg) Marshal() ([]byte, error) {
	return codec.NewWriter().Bytes(1, m.Caller).Result()
}

func (m *WithdrawReserveMsg) Unmarshal(raw []byte) error {
	*m = WithdrawReserveMsg{}
	return codec.Decode(raw, func(field int32, r *codec.Reader) (err error) {
		switch field {
		case 1:
			m.Caller, err = r.Bytes()
		default:
			err = r.Skip()
		}
		return err
	})
}
