package service

import (
	"fmt"
	"sync"

	"github.com/driftline/driftline/internal/core/ports"
	"github.com/driftline/driftline/internal/errors"
)

// ComponentRegistry holds the pluggable edges of the engine: platform
// scanners, state readers and reporters, each keyed by type string.
type ComponentRegistry struct {
	mu           sync.RWMutex
	scanners     map[string]ports.PlatformScanner
	stateReaders map[string]ports.StateReader
	reporters    map[string]ports.Reporter
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		scanners:     make(map[string]ports.PlatformScanner),
		stateReaders: make(map[string]ports.StateReader),
		reporters:    make(map[string]ports.Reporter),
	}
}

func (r *ComponentRegistry) RegisterScanner(scanner ports.PlatformScanner) error {
	if scanner == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil platform scanner")
	}
	scannerType := scanner.Type()
	if scannerType == "" {
		return errors.New(errors.CodeInternal, "platform scanner type cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.scanners[scannerType]; exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("platform scanner type '%s' already registered", scannerType))
	}
	r.scanners[scannerType] = scanner
	return nil
}

func (r *ComponentRegistry) GetScanner(scannerType string) (ports.PlatformScanner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scanner, exists := r.scanners[scannerType]
	if !exists {
		return nil, errors.New(errors.CodeConfigValidation, fmt.Sprintf("platform scanner type '%s' not found", scannerType))
	}
	return scanner, nil
}

func (r *ComponentRegistry) RegisterStateReader(reader ports.StateReader) error {
	if reader == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil state reader")
	}
	readerType := reader.Type()
	if readerType == "" {
		return errors.New(errors.CodeInternal, "state reader type cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.stateReaders[readerType]; exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("state reader type '%s' already registered", readerType))
	}
	r.stateReaders[readerType] = reader
	return nil
}

func (r *ComponentRegistry) GetStateReader(readerType string) (ports.StateReader, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reader, exists := r.stateReaders[readerType]
	if !exists {
		return nil, errors.New(errors.CodeConfigValidation, fmt.Sprintf("state reader type '%s' not found", readerType))
	}
	return reader, nil
}

func (r *ComponentRegistry) RegisterReporter(reporterType string, reporter ports.Reporter) error {
	if reporter == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil reporter")
	}
	if reporterType == "" {
		return errors.New(errors.CodeInternal, "reporter type cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reporters[reporterType]; exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("reporter type '%s' already registered", reporterType))
	}
	r.reporters[reporterType] = reporter
	return nil
}

func (r *ComponentRegistry) GetReporter(reporterType string) (ports.Reporter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reporter, exists := r.reporters[reporterType]
	if !exists {
		return nil, errors.New(errors.CodeConfigValidation, fmt.Sprintf("reporter type '%s' not found", reporterType))
	}
	return reporter, nil
}
