package store

import (
	"errors"
	"fmt"
)

// ErrLocked is returned when another process, or another caller in this
// process, holds the repository lock.
var ErrLocked = errors.New("repository is locked by another operation")

// Locker is an advisory, non-blocking lock. *flock.Flock satisfies it.
type Locker interface {
	TryLock() (bool, error)
	Unlock() error
}

type nopLocker struct{}

func (nopLocker) TryLock() (bool, error) { return true, nil }
func (nopLocker) Unlock() error          { return nil }

// Lock acquires the repository lock without waiting. The returned function
// releases it. The repository directory must already exist.
//
// A file lock is shared by every holder of the same handle, so callers in
// this process are excluded by a mutex first.
func (s *Store) Lock() (func(), error) {
	if !s.mu.TryLock() {
		return nil, ErrLocked
	}
	ok, err := s.locker.TryLock()
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("acquire repository lock: %w", err)
	}
	if !ok {
		s.mu.Unlock()
		return nil, ErrLocked
	}
	return func() {
		_ = s.locker.Unlock()
		s.mu.Unlock()
	}, nil
}
