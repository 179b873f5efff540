package events

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/lib/pq"
)

// PostgresSink archives records in a PostgreSQL table. Records of a single
// publish call are inserted in one database transaction.
type PostgresSink struct {
	db    *sql.DB
	table string
}

var _ Sink = (*PostgresSink)(nil)

// OpenPostgresSink connects to the database and creates the table if it
// does not exist yet.
func OpenPostgresSink(ctx context.Context, dsn, table string) (*PostgresSink, error) {
	if dsn == "" {
		return nil, errors.Wrap(errors.ErrEmpty, "postgres dsn")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	s := NewPostgresSink(db, table)
	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewPostgresSink returns a sink using an already open database.
func NewPostgresSink(db *sql.DB, table string) *PostgresSink {
	return &PostgresSink{db: db, table: pq.QuoteIdentifier(table)}
}

func (s *PostgresSink) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, createTableQuery(s.table))
	if err != nil {
		return errors.Wrapf(errors.ErrDatabase, "create %s: %s", s.table, err)
	}
	return nil
}

func createTableQuery(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id          UUID PRIMARY KEY,
	chain_id    TEXT NOT NULL,
	height      BIGINT NOT NULL,
	path        TEXT NOT NULL,
	kind        TEXT NOT NULL,
	from_addr   TEXT,
	to_addr     TEXT,
	spender     TEXT,
	amount      NUMERIC(20, 0) NOT NULL,
	ref         BYTEA,
	occurred_at TIMESTAMPTZ NOT NULL
)`, table)
}

func insertQuery(table string) string {
	return fmt.Sprintf(`INSERT INTO %s
	(id, chain_id, height, path, kind, from_addr, to_addr, spender, amount, ref, occurred_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (id) DO NOTHING`, table)
}

func (s *PostgresSink) Publish(ctx context.Context, records []Record) (err error) {
	if len(records) == 0 {
		return nil
	}
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	defer func() {
		if err != nil {
			dbTx.Rollback()
		}
	}()

	stmt, err := dbTx.PrepareContext(ctx, insertQuery(s.table))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	defer stmt.Close()

	for _, r := range records {
		_, err = stmt.ExecContext(ctx, insertArgs(r)...)
		if err != nil {
			return errors.Wrapf(errors.ErrDatabase, "insert %s: %s", r.ID, err)
		}
	}
	if err = dbTx.Commit(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func insertArgs(r Record) []interface{} {
	return []interface{}{
		r.ID,
		r.ChainID,
		r.Height,
		r.Path,
		r.Event.Kind,
		nullAddress(r.Event.From),
		nullAddress(r.Event.To),
		nullAddress(r.Event.Spender),
		strconv.FormatUint(r.Event.Amount, 10),
		r.Event.Ref,
		r.OccurredAt,
	}
}

func nullAddress(a treasury.Address) sql.NullString {
	if len(a) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: a.String(), Valid: true}
}

func (s *PostgresSink) Close() error {
	return s.db.Close()
}
