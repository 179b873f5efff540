package events

import (
	"context"
	"sync"

	"github.com/iov-one/treasury/errors"
)

// Sink receives records of committed transactions.
type Sink interface {
	Publish(ctx context.Context, records []Record) error
	Close() error
}

// MemorySink keeps all published records in memory.
type MemorySink struct {
	mu      sync.Mutex
	records []Record
	closed  bool
}

var _ Sink = (*MemorySink)(nil)

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Publish(ctx context.Context, records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.Wrap(errors.ErrState, "sink closed")
	}
	s.records = append(s.records, records...)
	return nil
}

// Records returns a copy of everything published so far.
func (s *MemorySink) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Record(nil), s.records...)
}

func (s *MemorySink) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// MultiSink publishes to every sink, even if some of them fail.
type MultiSink []Sink

var _ Sink = MultiSink(nil)

func (m MultiSink) Publish(ctx context.Context, records []Record) error {
	var errs error
	for _, s := range m {
		errs = errors.Append(errs, s.Publish(ctx, records))
	}
	return errs
}

func (m MultiSink) Close() error {
	var errs error
	for _, s := range m {
		errs = errors.Append(errs, s.Close())
	}
	return errs
}
