package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoScenarios is returned when no source yields a runnable scenario.
	ErrNoScenarios = errors.New("no scenarios configured")

	// ErrScenarioNotFound is matched by ScenarioNotFoundError.
	ErrScenarioNotFound = errors.New("scenarios not found")
)

// InvalidArgumentError reports a malformed command line value.
type InvalidArgumentError struct {
	Key   string
	Value string
	Err   error
}

func (e *InvalidArgumentError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid value %q for --%s", e.Value, e.Key)
	}
	return fmt.Sprintf("invalid value %q for --%s: %v", e.Value, e.Key, e.Err)
}

func (e *InvalidArgumentError) Unwrap() error {
	return e.Err
}

// ScenarioNotFoundError is returned when none of the requested ids exist.
type ScenarioNotFoundError struct {
	Requested []string
}

func (e *ScenarioNotFoundError) Error() string {
	return fmt.Sprintf("%v: %s", ErrScenarioNotFound, strings.Join(e.Requested, ", "))
}

func (e *ScenarioNotFoundError) Is(target error) bool {
	return target == ErrScenarioNotFound
}

// ConfigLoadError wraps a failure to read or decode a scenario file.
type ConfigLoadError struct {
	Path string
	Err  error
}

func (e *ConfigLoadError) Error() string {
	return fmt.Sprintf("error loading scenarios from %s: %v", e.Path, e.Err)
}

func (e *ConfigLoadError) Unwrap() error {
	return e.Err
}

// PersistenceError wraps a failure to write the report document.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("error writing report %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
