package store

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPort = errors.New("invalid port")
	ErrEmptyHost   = errors.New("empty host")
	ErrEmptyKey    = errors.New("empty key")
)

// ConnectionError is returned by Open when the session cannot be established
// or the credential is rejected. No usable Conn accompanies it.
type ConnectionError struct {
	Addr string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("store: connect %s: %v", e.Addr, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// OperationError is returned by Push and PopRandom when the call fails on an
// established session.
type OperationError struct {
	Op  string
	Key string
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("store: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }
