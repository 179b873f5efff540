package treasury

import (
	"testing"

	"github.com/iov-one/treasury/errors"
	"github.com/stretchr/testify/require"
)

type demoMsg struct {
	Num   int
	Valid bool
}

func (demoMsg) Path() string               { return "demo/msg" }
func (demoMsg) Marshal() ([]byte, error)   { return []byte("demo"), nil }
func (*demoMsg) Unmarshal(bz []byte) error { return nil }

func (m demoMsg) Validate() error {
	if !m.Valid {
		return errors.ErrMsg
	}
	return nil
}

type otherMsg struct{ demoMsg }

type demoTx struct {
	msg Msg
	err error
}

func (demoTx) Marshal() ([]byte, error)   { return nil, nil }
func (*demoTx) Unmarshal(bz []byte) error { return nil }
func (tx demoTx) GetMsg() (Msg, error)    { return tx.msg, tx.err }

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		tx      Tx
		dest    interface{}
		wantErr *errors.Error
		wantNum int
	}{
		"pointer message": {
			tx:      &demoTx{msg: &demoMsg{Num: 7, Valid: true}},
			dest:    &demoMsg{},
			wantNum: 7,
		},
		"invalid message": {
			tx:      &demoTx{msg: &demoMsg{Num: 7}},
			dest:    &demoMsg{},
			wantErr: errors.ErrMsg,
		},
		"different message type": {
			tx:      &demoTx{msg: &otherMsg{demoMsg{Valid: true}}},
			dest:    &demoMsg{},
			wantErr: errors.ErrType,
		},
		"destination is not a pointer": {
			tx:      &demoTx{msg: &demoMsg{Valid: true}},
			dest:    demoMsg{},
			wantErr: errors.ErrType,
		},
		"no message": {
			tx:      &demoTx{},
			dest:    &demoMsg{},
			wantErr: errors.ErrMsg,
		},
		"message error": {
			tx:      &demoTx{err: errors.ErrInput},
			dest:    &demoMsg{},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := LoadMsg(tc.tx, tc.dest)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				require.Equal(t, tc.wantNum, tc.dest.(*demoMsg).Num)
			}
		})
	}
}

func TestGetPath(t *testing.T) {
	require.Equal(t, "demo/msg", GetPath(&demoTx{msg: &demoMsg{}}))
	require.Equal(t, "(missing)", GetPath(&demoTx{}))
}
