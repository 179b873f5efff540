package gate

import (
	"github.com/iov-one/treasury/codec"
	"github.com/iov-one/treasury/x/cash"
	"github.com/iov-one/treasury/x/ledger"
)

func (c *Committee) Marshal() ([]byte, error) {
	signers := make([][]byte, len(c.Signers))
	for i, s := range c.Signers {
		signers[i] = s
	}
	return codec.NewWriter().
		RepeatedBytes(1, signers).
		Uint32(2, c.Threshold).
		Result()
}

func (c *Committee) Unmarshal(raw []byte) error {
	*c = Committee{}
	return codec.Decode(raw, func(field int32, r *codec.Reader) error {
		switch field {
		case 1:
			b, err := r.Bytes()
			if err != nil {
				return err
			}
			c.Signers = append(c.Signers, b)
			return nil
		case 2:
			v, err := r.Uint32()
			c.Threshold = v
			return err
		default:
			return r.Skip()
		}
	})
}

func (a *Action) Marshal() ([]byte, error) {
	return codec.NewWriter().
		Message(1, a.LedgerTransfer).
		Message(2, a.LedgerApprove).
		Message(3, a.WithdrawReserve).
		Message(4, a.CashSend).
		Result()
}

func (a *Action) Unmarshal(raw []byte) error {
	*a = Action{}
	return codec.Decode(raw, func(field int32, r *codec.Reader) error {
		if field < 1 || field > 4 {
			return r.Skip()
		}
		b, err := r.Bytes()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			a.LedgerTransfer = &ledger.TransferMsg{}
			return a.LedgerTransfer.Unmarshal(b)
		case 2:
			a.LedgerApprove = &ledger.ApproveMsg{}
			return a.LedgerApprove.Unmarshal(b)
		case 3:
			a.WithdrawReserve = &ledger.WithdrawReserveMsg{}
			return a.WithdrawReserve.Unmarshal(b)
		default:
			a.CashSend = &cash.SendMsg{}
			return a.CashSend.Unmarshal(b)
		}
	})
}

func (p *Proposal) Marshal() ([]byte, error) {
	confirmations := make([][]byte, len(p.Confirmations))
	for i, c := range p.Confirmations {
		confirmations[i] = c
	}
	return codec.NewWriter().
		Message(1, p.Action).
		Bytes(2, p.Author).
		RepeatedBytes(3, confirmations).
		Bool(4, p.Executed).
		Uint32(5, p.ExecutedCount).
		Int64(6, p.SubmittedAt).
		Int64(7, p.ExecutedAt).
		Result()
}

func (p *Proposal) Unmarshal(raw []byte) error {
	*p = Proposal{}
	return codec.Decode(raw, func(field int32, r *codec.Reader) (err error) {
		switch field {
		case 1:
			var b []byte
			if b, err = r.Bytes(); err != nil {
				return err
			}
			p.Action = &Action{}
			return p.Action.Unmarshal(b)
		case 2:
			p.Author, err = r.Bytes()
		case 3:
			var b []byte
			if b, err = r.Bytes(); err == nil {
				p.Confirmations = append(p.Confirmations, b)
			}
		case 4:
			p.Executed, err = r.Bool()
		case 5:
			p.ExecutedCount, err = r.Uint32()
		case 6:
			p.SubmittedAt, err = r.Int64()
		case 7:
			p.ExecutedAt, err = r.Int64()
		default:
			err = r.Skip()
		}
		return err
	})
}

func (m *SubmitMsg) Marshal() ([]byte, error) {
	return codec.NewWriter().
		Bytes(1, m.Author).
		Message(2, m.Action).
		Result()
}

func (m *SubmitMsg) Unmarshal(raw []byte) error {
	*m = SubmitMsg{}
	return codec.Decode(raw, func(field int32, r *codec.Reader) (err error) {
		switch field {
		case 1:
			m.Author, err = r.Bytes()
		case 2:
			var b []byte
			if b, err = r.Bytes(); err != nil {
				return err
			}
			m.Action = &Action{}
			return m.Action.Unmarshal(b)
		default:
			err = r.Skip()
		}
		return err
	})
}

func (m *ConfirmMsg) Marshal() ([]byte, error) {
	return codec.NewWriter().
		Bytes(1, m.Signer).
		Bytes(2, m.ProposalID).
		Result()
}

func (m *ConfirmMsg) Unmarshal(raw []byte) error {
	*m = ConfirmMsg{}
	return codec.Decode(raw, func(field int32, r *codec.Reader) (err error) {
		switch field {
		case 1:
			m.Signer, err = r.Bytes()
		case 2:
			m.ProposalID, err = r.Bytes()
		default:
			err = r.Skip()
		}
		return err
	})
}
