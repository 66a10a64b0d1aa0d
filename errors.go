package prism

import (
	"errors"
)

var (
	// ErrLookup is returned when a space or plugin name is not registered.
	ErrLookup = errors.New("not found")
	// ErrConfiguration is returned when the registered spaces do not form a
	// valid conversion graph.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrValue is returned for malformed arguments.
	ErrValue = errors.New("invalid value")
	// ErrRegistryConflict is returned when a registration would clobber an
	// existing or reserved plugin.
	ErrRegistryConflict = errors.New("registry conflict")
)
