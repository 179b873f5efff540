package crypto

import (
	"github.com/iov-one/treasury/codec"
	"github.com/iov-one/treasury/errors"
)

var errInvalidKey = errors.Wrap(errors.ErrInput, "invalid ed25519 key")

func (p *PublicKey) Marshal() ([]byte, error) {
	return codec.NewWriter().Bytes(1, p.Ed25519).Result()
}

func (p *PublicKey) Unmarshal(raw []byte) error {
	*p = PublicKey{}
	return codec.Decode(raw, func(field int32, r *codec.Reader) (err error) {
		switch field {
		case 1:
			p.Ed25519, err = r.Bytes()
		default:
			err = r.Skip()
		}
		return err
	})
}

func (p *PrivateKey) Marshal() ([]byte, error) {
	return codec.NewWriter().Bytes(1, p.Ed25519).Result()
}

func (p *PrivateKey) Unmarshal(raw []byte) error {
	*p = PrivateKey{}
	return codec.Decode(raw, func(field int32, r *codec.Reader) (err error) {
		switch field {
		case 1:
			p.Ed25519, err = r.Bytes()
		default:
			err = r.Skip()
		}
		return err
	})
}

func (s *Signature) Marshal() ([]byte, error) {
	return codec.NewWriter().Bytes(1, s.Ed25519).Result()
}

func (s *Signature) Unmarshal(raw []byte) error {
	*s = Signature{}
	return codec.Decode(raw, func(field int32, r *codec.Reader) (err error) {
		switch field {
		case 1:
			s.Ed25519, err = r.Bytes()
		default:
			err = r.Skip()
		}
		return err
	})
}
