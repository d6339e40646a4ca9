package income

import (
	"context"
	"sync"
)

// FetchFunc retrieves the full sequence of records.
type FetchFunc func(ctx context.Context) ([]Record, error)

// Status is the state of the single fetch of a Session.
type Status int

const (
	Loading Status = iota
	Failed
	Loaded
)

func (s Status) String() string {
	switch s {
	case Failed:
		return "failed"
	case Loaded:
		return "loaded"
	}
	return "loading"
}

// Session holds the records fetched once for the lifetime of a view.
//
// It is safe to read a Session while it is loading.
type Session struct {
	fetch FetchFunc
	once  sync.Once

	mu      sync.RWMutex
	status  Status
	records []Record
	err     error
}

// NewSession returns a Session that will fetch its records with fetch.
func NewSession(fetch FetchFunc) *Session {
	return &Session{fetch: fetch}
}

// Load runs the fetch. Only the first call fetches, later calls return immediately.
func (s *Session) Load(ctx context.Context) {
	s.once.Do(func() {
		records, err := s.fetch(ctx)
		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			s.status, s.err = Failed, err
			return
		}
		s.status, s.records = Loaded, records
	})
}

// Status returns the status of the fetch.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Err returns the fetch error, if any.
func (s *Session) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Records returns the full unfiltered sequence, nil unless loaded.
func (s *Session) Records() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// View returns the derived sequence for v. It is nil unless the session is loaded.
func (s *Session) View(v ViewState) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.status != Loaded {
		return nil
	}
	return Derive(s.records, v)
}
