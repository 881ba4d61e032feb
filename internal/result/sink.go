package result

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

// Sink is an append-only destination for request results.
// Append must be safe for concurrent use.
type Sink interface {
	Append(r *Result) error
	Close() error
}

// JSONLSink writes one JSON object per line to a file. The file is truncated
// when the sink is opened and only appended to afterwards. An exclusive file
// lock guards against two concurrent runs writing the same log.
type JSONLSink struct {
	mu   sync.Mutex
	file *os.File
	lock *flock.Flock
}

// NewJSONLSink creates the log file's parent directory if needed, acquires an
// exclusive lock on the path, and truncates any previous content.
func NewJSONLSink(path string) (*JSONLSink, error) {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock log file: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("log file %s is in use by another run", path)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &JSONLSink{file: file, lock: lock}, nil
}

// Append serializes the result and writes it as a single line. The encode and
// write happen under one lock so concurrent appends never interleave.
func (s *JSONLSink) Append(r *Result) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode result %d: %w", r.RequestID, err)
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.file.Write(data); err != nil {
		return fmt.Errorf("write result %d: %w", r.RequestID, err)
	}
	return nil
}

// Close releases the log file and its lock.
func (s *JSONLSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.file.Close()
	if unlockErr := s.lock.Unlock(); err == nil {
		err = unlockErr
	}
	return err
}
