package repository

import (
	"sync"

	"github.com/erraggy/netexval/netexerrors"
)

// store is a mutex-guarded map from report id to per-report state.
type store[T any] struct {
	mu      sync.Mutex
	reports map[string]*T
	create  func() *T
}

func newStore[T any](create func() *T) *store[T] {
	return &store[T]{reports: make(map[string]*T), create: create}
}

// update runs fn on the state of reportID, creating it when absent.
func (s *store[T]) update(reportID string, fn func(*T)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.reports[reportID]
	if !ok {
		st = s.create()
		s.reports[reportID] = st
	}
	fn(st)
}

// read runs fn on the state of reportID, failing when there is none.
func (s *store[T]) read(op, reportID string, fn func(*T)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.reports[reportID]
	if !ok {
		return netexerrors.UnknownReport(op, reportID)
	}
	fn(st)
	return nil
}

func (s *store[T]) has(reportID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.reports[reportID]
	return ok
}

func (s *store[T]) delete(reportID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reports, reportID)
}
