package server

import (
	"bufio"
	"context"
	"encoding/hex"
	"encoding/json"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/iov-one/treasury/app"
	"github.com/iov-one/treasury/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagConfig = "config"
	flagDebug  = "debug"

	checkPrefix = "check "
)

// AppGenerator lets us lazily initialize the engine, using the loaded
// configuration. Metrics must be registered with reg unless it is nil.
type AppGenerator func(ctx context.Context, conf app.Config, logger log.Logger, reg prometheus.Registerer) (*app.Engine, error)

// StartCmd loads the engine and processes hex encoded transactions, one
// per line, read from in. A line prefixed with "check " is only checked.
// Each result is written to out as a JSON line. If the store is empty the
// chain is initialized from the configured genesis file first.
func StartCmd(gen AppGenerator, home string, args []string, in io.Reader, out io.Writer) error {
	conf, err := parseStartFlags(home, args)
	if err != nil {
		return err
	}
	logger, err := conf.NewLogger(os.Stderr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var reg prometheus.Registerer
	if conf.MetricsAddr != "" {
		registry := prometheus.NewRegistry()
		reg = registry
		srv := serveMetrics(conf.MetricsAddr, registry, logger)
		defer srv.Close()
	}

	engine, err := gen(ctx, conf, logger, reg)
	if err != nil {
		return errors.Wrap(err, "create engine")
	}
	defer engine.Close()

	if engine.ChainID() == "" {
		genesis, err := app.LoadGenesis(conf.Genesis)
		if err != nil {
			return err
		}
		if err := engine.InitChain(genesis); err != nil {
			return err
		}
	}
	logger.Info("Processing transactions", "chain", engine.ChainID())
	return process(ctx, engine, in, out)
}

func parseStartFlags(home string, args []string) (app.Config, error) {
	var (
		confPath string
		debug    bool
	)
	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	startFlags.StringVar(&confPath, flagConfig, filepath.Join(home, "config.json"), "configuration file")
	startFlags.BoolVar(&debug, flagDebug, false, "call stack returned on error")
	if err := startFlags.Parse(args); err != nil {
		return app.Config{}, errors.Wrap(errors.ErrInput, err.Error())
	}

	conf := app.DefaultConfig()
	conf.DataDir = filepath.Join(home, conf.DataDir)
	conf.Genesis = filepath.Join(home, conf.Genesis)
	if fileExists(confPath) {
		c, err := app.LoadConfig(confPath)
		if err != nil {
			return conf, err
		}
		conf = c
	}
	conf.Debug = conf.Debug || debug
	return conf, nil
}

func process(ctx context.Context, engine *app.Engine, in io.Reader, out io.Writer) error {
	enc := json.NewEncoder(out)
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		check := strings.HasPrefix(line, checkPrefix)
		raw, err := hex.DecodeString(strings.TrimPrefix(line, checkPrefix))

		var res app.Result
		switch {
		case err != nil:
			res = app.DeliverOrError(nil, errors.Wrap(errors.ErrInput, "hex encoding"), false)
		case check:
			res = engine.CheckTx(ctx, raw)
		default:
			res = engine.DeliverTx(ctx, raw)
		}
		if err := enc.Encode(res); err != nil {
			return errors.Wrap(errors.ErrHuman, err.Error())
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

func serveMetrics(addr string, g prometheus.Gatherer, logger log.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Metrics server failed", "addr", addr, "err", err)
		}
	}()
	logger.Info("Serving metrics", "addr", addr)
	return srv
}
