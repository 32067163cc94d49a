// Package tfstate reads the provisioning tool's persisted state file. The
// file is consumed strictly read-only; "absent", "malformed" and "present
// but empty" are three distinct conditions, never collapsed into each other.
package tfstate

import (
	"context"
	"os"

	"github.com/driftline/driftline/internal/core/domain"
	"github.com/driftline/driftline/internal/core/ports"
	"github.com/driftline/driftline/internal/errors"
)

const ReaderTypeFile = "file"

type Config struct {
	// Path overrides discovery when non-empty.
	Path string
}

type Reader struct {
	cfg    Config
	logger ports.Logger
}

func NewReader(cfg Config, logger ports.Logger) *Reader {
	return &Reader{
		cfg:    cfg,
		logger: logger.WithFields(map[string]any{"component": "state_reader"}),
	}
}

func (r *Reader) Type() string { return ReaderTypeFile }

// Read re-reads the state from disk on every call; nothing is cached
// across runs.
func (r *Reader) Read(ctx context.Context, workDir string) (ports.StateResult, error) {
	if ctx.Err() != nil {
		return ports.StateResult{}, ctx.Err()
	}

	path := r.cfg.Path
	if path == "" {
		path = Locate(workDir)
	}
	if path == "" {
		r.logger.Debugf(ctx, "No state file found under %s", workDir)
		return ports.StateResult{Found: false}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ports.StateResult{Found: false, Path: path}, nil
		}
		return ports.StateResult{}, errors.Wrap(err, errors.CodeStateReadError, "failed to read state file")
	}

	if len(raw) == 0 {
		// Present but empty: a real file with zero managed resources.
		r.logger.Debugf(ctx, "State file %s is empty", path)
		return ports.StateResult{Found: true, Path: path, Entries: []domain.StateEntry{}}, nil
	}

	state, parseErr := parseState(raw)
	if parseErr != nil {
		r.logger.Warnf(ctx, "State file %s is malformed: %v", path, parseErr)
		return ports.StateResult{Found: true, Path: path, ParseError: parseErr}, nil
	}

	entries := entriesFromState(state)
	r.logger.Debugf(ctx, "Parsed %d state entries from %s", len(entries), path)
	return ports.StateResult{Found: true, Path: path, Entries: entries}, nil
}
