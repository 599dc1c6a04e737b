// Package metered decorates a facade backend with Prometheus counters.
//
// Records are counted when they are handed to the wrapped sink, whether or
// not the sink accepts them; disabled levels never reach Write and are not
// counted.
package metered

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/oshokin/logfacade/facade"
)

// Metric names.
const (
	RecordsTotalName       = "logfacade_records_total"
	WriteErrorsTotalName   = "logfacade_write_errors_total"
	SinksAcquiredTotalName = "logfacade_sinks_acquired_total"
)

var (
	// errBackendIsNotSet is returned when New receives a nil backend.
	errBackendIsNotSet = errors.New("backend is not set")
	// errRegistererIsNotSet is returned when New receives a nil registerer.
	errRegistererIsNotSet = errors.New("prometheus registerer is not set")
)

// Backend counts acquisitions, records and write errors of the wrapped backend.
type Backend struct {
	next facade.Backend

	records     *prometheus.CounterVec
	writeErrors *prometheus.CounterVec
	acquired    prometheus.Counter
}

// New wraps next and registers the counters with reg.
func New(next facade.Backend, reg prometheus.Registerer) (*Backend, error) {
	if next == nil {
		return nil, errBackendIsNotSet
	}

	if reg == nil {
		return nil, errRegistererIsNotSet
	}

	b := &Backend{
		next: next,
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: RecordsTotalName,
			Help: "Log records written through the facade, by level.",
		}, []string{"level"}),
		writeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: WriteErrorsTotalName,
			Help: "Log records the backend failed to write, by level.",
		}, []string{"level"}),
		acquired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: SinksAcquiredTotalName,
			Help: "Logger handles obtained from the backend.",
		}),
	}

	for _, c := range []prometheus.Collector{b.records, b.writeErrors, b.acquired} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}

	return b, nil
}

// Sink acquires a sink from the wrapped backend. Its errors are returned unchanged.
//
//nolint:ireturn // facade.Sink is the backend contract.
func (b *Backend) Sink(name string) (facade.Sink, error) {
	next, err := b.next.Sink(name)
	if err != nil {
		return nil, err
	}

	b.acquired.Inc()

	return &sink{next: next, backend: b}, nil
}

type sink struct {
	next    facade.Sink
	backend *Backend
}

func (s *sink) Enabled(level facade.Level) bool {
	return s.next.Enabled(level)
}

//nolint:gocritic // facade.Sink passes records by value.
func (s *sink) Write(record facade.Record) error {
	level := record.Level.String()

	s.backend.records.WithLabelValues(level).Inc()

	err := s.next.Write(record)
	if err != nil {
		s.backend.writeErrors.WithLabelValues(level).Inc()
	}

	return err
}
