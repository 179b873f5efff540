package sigs

import (
	"github.com/iov-one/treasury/codec"
	"github.com/iov-one/treasury/crypto"
)

func (u *UserData) Marshal() ([]byte, error) {
	return codec.NewWriter().
		Message(1, u.Pubkey).
		Int64(2, u.Sequence).
		Result()
}

func (u *UserData) Unmarshal(raw []byte) error {
	*u = UserData{}
	return codec.Decode(raw, func(field int32, r *codec.Reader) error {
		switch field {
		case 1:
			b, err := r.Bytes()
			if err != nil {
				return err
			}
			u.Pubkey = &crypto.PublicKey{}
			return u.Pubkey.Unmarshal(b)
		case 2:
			v, err := r.Int64()
			u.Sequence = v
			return err
		default:
			return r.Skip()
		}
	})
}

func (s *StdSignature) Marshal() ([]byte, error) {
	return codec.NewWriter().
		Int64(1, s.Sequence).
		Message(2, s.Pubkey).
		Message(3, s.Signature).
		Result()
}

func (s *StdSignature) Unmarshal(raw []byte) error {
	*s = StdSignature{}
	return codec.Decode(raw, func(field int32, r *codec.Reader) error {
		switch field {
		case 1:
			v, err := r.Int64()
			s.Sequence = v
			return err
		case 2:
			b, err := r.Bytes()
			if err != nil {
				return err
			}
			s.Pubkey = &crypto.PublicKey{}
			return s.Pubkey.Unmarshal(b)
		case 3:
			b, err := r.Bytes()
			if err != nil {
				return err
			}
			s.Signature = &crypto.Signature{}
			return s.Signature.Unmarshal(b)
		default:
			return r.Skip()
		}
	})
}
