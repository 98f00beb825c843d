package services

import (
	"errors"
	"fmt"
)

// ErrObjectNotExist is the object-store port's "no such object" signal.
// Store adapters must map their native not-found errors onto it so the
// resolver can classify absence as NotReady instead of a fault.
var ErrObjectNotExist = errors.New("object does not exist")

var ErrEmptyFileName = errors.New("fileName must not be empty")

// ConfigurationError means a value required for the operation is missing from
// the environment. It is fatal to that operation and never retried.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", e.Key)
}

// GrantError wraps a credential-signing failure. Safe to retry.
type GrantError struct {
	Err error
}

func (e *GrantError) Error() string {
	return fmt.Sprintf("issuing upload grant: %v", e.Err)
}

func (e *GrantError) Unwrap() error {
	return e.Err
}
