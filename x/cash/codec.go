package cash

import "github.com/iov-one/treasury/codec"

func (w *Wallet) Marshal() ([]byte, error) {
	return codec.NewWriter().Uint64(1, w.Amount).Result()
}

func (w *Wallet) Unmarshal(raw []byte) error {
	*w = Wallet{}
	return codec.Decode(raw, func(field int32, r *codec.Reader) (err error) {
		switch field {
		case 1:
			w.Amount, err = r.Uint64()
		default:
			err = r.Skip()
		}
		return err
	})
}

func (m *SendMsg) Marshal() ([]byte, error) {
	return codec.NewWriter().
		Bytes(1, m.Source).
		Bytes(2, m.Destination).
		Uint64(3, m.Amount).
		String(4, m.Memo).
		Bytes(5, m.Ref).
		Result()
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	*m = SendMsg{}
	return codec.Decode(raw, func(field int32, r *codec.Reader) (err error) {
		switch field {
		case 1:
			m.Source, err = r.Bytes()
		case 2:
			m.Destination, err = r.Bytes()
		case 3:
			m.Amount, err = r.Uint64()
		case 4:
			m.Memo, err = r.String()
		case 5:
			m.Ref, err = r.Bytes()
		default:
			err = r.Skip()
		}
		return err
	})
}
