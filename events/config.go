package events

import (
	"context"
	"os"
	"strings"

	"github.com/iov-one/treasury/errors"
	"github.com/joho/godotenv"
)

// Environment variables read by LoadConfig.
const (
	EnvKafkaBrokers  = "TREASURY_KAFKA_BROKERS"
	EnvKafkaTopic    = "TREASURY_KAFKA_TOPIC"
	EnvPostgresDSN   = "TREASURY_POSTGRES_DSN"
	EnvPostgresTable = "TREASURY_POSTGRES_TABLE"
)

const defaultName = "treasury_events"

// Config selects the sinks committed events are published to. A sink
// without its address configured is disabled.
type Config struct {
	KafkaBrokers  []string
	KafkaTopic    string
	PostgresDSN   string
	PostgresTable string
}

// LoadConfig reads the configuration from the environment. Given dotenv
// files provide the values missing from the environment. Missing files are
// ignored.
func LoadConfig(files ...string) (Config, error) {
	fromFiles := make(map[string]string)
	for _, f := range files {
		values, err := godotenv.Read(f)
		switch {
		case err == nil:
		case os.IsNotExist(err):
			continue
		default:
			return Config{}, errors.Wrapf(errors.ErrInput, "cannot read %s: %s", f, err)
		}
		for k, v := range values {
			if _, ok := fromFiles[k]; !ok {
				fromFiles[k] = v
			}
		}
	}
	get := func(name, fallback string) string {
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		if v, ok := fromFiles[name]; ok {
			return v
		}
		return fallback
	}

	cfg := Config{
		KafkaTopic:    get(EnvKafkaTopic, defaultName),
		PostgresDSN:   get(EnvPostgresDSN, ""),
		PostgresTable: get(EnvPostgresTable, defaultName),
	}
	for _, b := range strings.Split(get(EnvKafkaBrokers, ""), ",") {
		if b = strings.TrimSpace(b); b != "" {
			cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
		}
	}
	return cfg, nil
}

// Open returns a sink publishing to every configured destination.
func (c Config) Open(ctx context.Context) (MultiSink, error) {
	var sinks MultiSink
	if len(c.KafkaBrokers) != 0 {
		k, err := NewKafkaSink(c.KafkaBrokers, c.KafkaTopic)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, k)
	}
	if c.PostgresDSN != "" {
		p, err := OpenPostgresSink(ctx, c.PostgresDSN, c.PostgresTable)
		if err != nil {
			sinks.Close()
			return nil, err
		}
		sinks = append(sinks, p)
	}
	return sinks, nil
}
