// Package facadetest provides a recording backend and wrapper helpers for
// testing code built on the facade.
package facadetest

import (
	"slices"
	"sync"

	"github.com/oshokin/logfacade/facade"
)

// Backend records every sink acquisition and every written record.
type Backend struct {
	// AcquireErr, when set, is returned by Sink.
	AcquireErr error
	// WriteErr, when set, is returned by every sink Write.
	WriteErr error
	// MinLevel is the lowest enabled level.
	MinLevel facade.Level

	mu           sync.Mutex
	acquisitions []string
	records      []facade.Record
}

// NewBackend returns a spy with every level enabled.
func NewBackend() *Backend {
	return &Backend{MinLevel: facade.TraceLevel}
}

// Sink records the acquisition and returns a recording sink.
func (b *Backend) Sink(name string) (facade.Sink, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.acquisitions = append(b.acquisitions, name)

	if b.AcquireErr != nil {
		return nil, b.AcquireErr
	}

	return &sink{backend: b, name: name}, nil
}

// Acquisitions returns the names passed to Sink, in call order.
func (b *Backend) Acquisitions() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return slices.Clone(b.acquisitions)
}

// Records returns the written records, in write order.
func (b *Backend) Records() []facade.Record {
	b.mu.Lock()
	defer b.mu.Unlock()

	return slices.Clone(b.records)
}

// RecordsFor returns the records written through sinks bound to name.
func (b *Backend) RecordsFor(name string) []facade.Record {
	b.mu.Lock()
	defer b.mu.Unlock()

	var result []facade.Record

	for _, r := range b.records {
		if r.LoggerName == name {
			result = append(result, r)
		}
	}

	return result
}

// Reset forgets acquisitions and records.
func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.acquisitions = nil
	b.records = nil
}

type sink struct {
	backend *Backend
	name    string
}

func (s *sink) Enabled(level facade.Level) bool {
	return level >= s.backend.MinLevel
}

func (s *sink) Write(record facade.Record) error {
	if s.backend.WriteErr != nil {
		return s.backend.WriteErr
	}

	// The sink name wins so a mismatch with the handle stays visible.
	record.LoggerName = s.name

	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()

	s.backend.records = append(s.backend.records, record)

	return nil
}
