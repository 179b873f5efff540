package utils

import (
	"strconv"
	"time"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that counts delivered messages by path and result
// code and observes how long the delivery took. Check calls are not
// measured.
type Metrics struct {
	delivered *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

var _ treasury.Decorator = (*Metrics)(nil)

// NewMetrics creates a Metrics decorator and registers its collectors with
// given registerer.
func NewMetrics(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		delivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tx",
			Name:      "delivered_total",
			Help:      "Number of delivered messages.",
		}, []string{"path", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "tx",
			Name:      "deliver_duration_seconds",
			Help:      "Time spent delivering a message.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"path"}),
	}
	for _, c := range []prometheus.Collector{m.delivered, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(errors.ErrHuman, err.Error())
		}
	}
	return m, nil
}

// Check just passes the request along
func (m *Metrics) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx, next treasury.Checker) (*treasury.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver records the outcome of the wrapped delivery.
func (m *Metrics) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx, next treasury.Deliverer) (*treasury.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)

	path := treasury.GetPath(tx)
	code, _ := errors.ABCIInfo(err, false)
	m.delivered.WithLabelValues(path, codeLabel(code)).Inc()
	m.duration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	return res, err
}

func codeLabel(code uint32) string {
	if code == errors.SuccessABCICode {
		return "ok"
	}
	return strconv.FormatUint(uint64(code), 10)
}
