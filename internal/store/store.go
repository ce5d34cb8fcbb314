// Package store persists the garden's session log.
//
// The log is stored wholesale under a single key and replaced wholesale on
// every save. Loading never fails: missing or unreadable data yields an empty
// log so the garden stays usable with no history.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iremince/garden-project/internal/domain"
)

// DefaultKey is the storage key the garden has always used.
const DefaultKey = "gardenWorkData"

// Store loads and saves the session log through a Backend.
type Store struct {
	backend Backend
	key     string
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used to report recovered load failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(backend Backend, opts ...Option) *Store {
	s := &Store{backend: backend, key: DefaultKey, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key in use.
func (s *Store) Key() string { return s.key }

// Load reads the persisted log. Missing data, backend errors and corrupt
// documents are logged and produce an empty log; malformed sessions inside an
// otherwise readable document are skipped.
func (s *Store) Load(ctx context.Context) domain.SessionLog {
	data, err := s.backend.Read(ctx, s.key)
	if errors.Is(err, ErrNotStored) {
		return domain.SessionLog{}
	}
	if err != nil {
		s.logger.WarnContext(ctx, "garden data unavailable, starting empty",
			"key", s.key, "error", err)
		return domain.SessionLog{}
	}

	log, skipped, err := Decode(data)
	if err != nil {
		s.logger.WarnContext(ctx, "garden data corrupt, starting empty",
			"key", s.key, "code", domain.ErrCodeCorruptPersistedData, "error", err)
		return domain.SessionLog{}
	}
	for _, rec := range skipped {
		s.logger.WarnContext(ctx, "skipping unreadable session",
			"key", s.key, "index", rec.Index, "error", rec.Err)
	}
	return log
}

// Save replaces the persisted log with log. Failures are classified as
// PersistenceFailure; the caller's in-memory log stays authoritative.
func (s *Store) Save(ctx context.Context, log domain.SessionLog) error {
	data, err := Encode(log)
	if err != nil {
		return domain.NewError(domain.ErrCodePersistenceFailure, "encoding garden data", err)
	}
	if err := s.backend.Write(ctx, s.key, data); err != nil {
		return domain.NewError(domain.ErrCodePersistenceFailure, fmt.Sprintf("writing %q", s.key), err)
	}
	return nil
}

// Reset clears the persisted log and returns an empty one. The empty log is
// returned even when clearing storage fails.
func (s *Store) Reset(ctx context.Context) (domain.SessionLog, error) {
	if err := s.backend.Remove(ctx, s.key); err != nil {
		return domain.SessionLog{}, domain.NewError(domain.ErrCodePersistenceFailure, fmt.Sprintf("clearing %q", s.key), err)
	}
	return domain.SessionLog{}, nil
}

// Append returns a new log with session added at the end. The input log is
// not modified. A session whose id is already present is rejected.
func Append(log domain.SessionLog, session domain.WorkSession) (domain.SessionLog, error) {
	if log.Contains(session.ID) {
		return log, domain.NewError(domain.ErrCodeDuplicateID, fmt.Sprintf("session %d already planted", session.ID), nil)
	}
	out := make(domain.SessionLog, len(log), len(log)+1)
	copy(out, log)
	return append(out, session), nil
}
