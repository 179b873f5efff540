package server

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/app"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/store/badgerdb"
	"github.com/iov-one/treasury/treasurytest"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func decodeTx(raw []byte) (treasury.Tx, error) {
	return &treasurytest.Tx{Msg: &treasurytest.Msg{RoutePath: "test/" + string(raw)}}, nil
}

func testGenerator() AppGenerator {
	return func(ctx context.Context, conf app.Config, logger log.Logger, reg prometheus.Registerer) (*app.Engine, error) {
		r := app.NewRouter()
		r.Handle(&treasurytest.Msg{RoutePath: "test/ok"}, &treasurytest.Handler{
			DeliverResult: treasury.DeliverResult{Log: "delivered"},
			CheckResult:   treasury.CheckResult{Log: "checked"},
		})
		r.Handle(&treasurytest.Msg{RoutePath: "test/bad"}, &treasurytest.Handler{
			DeliverErr: errors.ErrAmount,
		})
		kv, err := badgerdb.NewCommitStore(conf.DataDir, treasury.DefaultLogger)
		if err != nil {
			return nil, err
		}
		e, err := app.NewEngine(conf.Name, kv, r, decodeTx)
		if err != nil {
			return nil, err
		}
		return e.WithLogger(logger), nil
	}
}

func TestStartCmd(t *testing.T) {
	home, err := ioutil.TempDir("", "server")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	genesis := `{"chain_id": "test-chain", "app_state": {"x": {}}}`
	require.NoError(t, ioutil.WriteFile(filepath.Join(home, "genesis.json"), []byte(genesis), 0644))

	in := strings.Join([]string{
		hex.EncodeToString([]byte("ok")),
		"",
		"check " + hex.EncodeToString([]byte("ok")),
		hex.EncodeToString([]byte("bad")),
		"not hex",
	}, "\n")
	var out bytes.Buffer
	require.NoError(t, StartCmd(testGenerator(), home, nil, strings.NewReader(in), &out))

	var results []app.Result
	dec := json.NewDecoder(&out)
	for dec.More() {
		var r app.Result
		require.NoError(t, dec.Decode(&r))
		results = append(results, r)
	}
	require.Len(t, results, 4)
	assert.Equal(t, "delivered", results[0].Log)
	assert.Equal(t, "checked", results[1].Log)
	assert.Equal(t, errors.ErrAmount.ABCICode(), results[2].Code)
	assert.Equal(t, errors.ErrInput.ABCICode(), results[3].Code)

	// Second start reuses the stored chain and does not need the genesis.
	require.NoError(t, os.Remove(filepath.Join(home, "genesis.json")))
	out.Reset()
	in = hex.EncodeToString([]byte("ok"))
	require.NoError(t, StartCmd(testGenerator(), home, nil, strings.NewReader(in), &out))
	assert.Contains(t, out.String(), "delivered")
}

func TestParseStartFlags(t *testing.T) {
	home, err := ioutil.TempDir("", "server")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	conf, err := parseStartFlags(home, []string{"-debug"})
	require.NoError(t, err)
	assert.True(t, conf.Debug)
	assert.Equal(t, filepath.Join(home, "data"), conf.DataDir)
	assert.Equal(t, filepath.Join(home, "genesis.json"), conf.Genesis)

	path := filepath.Join(home, "custom.json")
	require.NoError(t, ioutil.WriteFile(path, []byte(`{"name": "custom", "data_dir": "/tmp/x", "log_level": "error"}`), 0644))
	conf, err = parseStartFlags(home, []string{"-config", path})
	require.NoError(t, err)
	assert.Equal(t, "custom", conf.Name)
	assert.Equal(t, "/tmp/x", conf.DataDir)
	assert.False(t, conf.Debug)

	_, err = parseStartFlags(home, []string{"-unknown"})
	assert.Error(t, err)
}
