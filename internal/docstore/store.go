// Package docstore reads, updates and writes schema-validated JSON documents on disk.
//
// Reads never fail: an absent, unreadable or invalid file yields the store's default
// document. Updates are whole-document read-modify-write cycles and are not serialised
// against each other unless the store is built with WithFileLock.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gofrs/flock"
)

// ErrInvalidDocument is returned when a document fails to decode or validate
var ErrInvalidDocument = errors.New("invalid document")

const (
	defaultFileMode    os.FileMode = 0600
	defaultDirMode     os.FileMode = 0750
	defaultRenameTries uint        = 3
	lockRetryDelay                 = 50 * time.Millisecond
)

// Option configures a Store
type Option func(*options)

type options struct {
	fileLock    bool
	fileMode    os.FileMode
	dirMode     os.FileMode
	renameTries uint
}

// WithFileLock holds an advisory lock on "<path>.lock" for the duration of every Update.
// It only serialises writers that also use the lock.
func WithFileLock() Option {
	return func(o *options) {
		o.fileLock = true
	}
}

// WithFileMode sets the permissions of written documents
func WithFileMode(mode os.FileMode) Option {
	return func(o *options) {
		o.fileMode = mode
	}
}

// WithRenameTries sets how many times the final rename of a write is attempted
func WithRenameTries(tries uint) Option {
	return func(o *options) {
		if tries > 0 {
			o.renameTries = tries
		}
	}
}

// Store handles documents of type T that share one schema and one default value
type Store[T any] struct {
	schema     *Schema
	newDefault func() T
	opts       options
}

// New creates a Store. newDefault must return a fresh value on every call since
// callers are free to mutate what Read returns.
func New[T any](schema *Schema, newDefault func() T, opts ...Option) *Store[T] {
	o := options{
		fileMode:    defaultFileMode,
		dirMode:     defaultDirMode,
		renameTries: defaultRenameTries,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[T]{
		schema:     schema,
		newDefault: newDefault,
		opts:       o,
	}
}

// Parse validates and decodes a document without touching the filesystem
func (s *Store[T]) Parse(data []byte) (T, error) {
	var doc T
	if err := s.schema.Validate(data); err != nil {
		return doc, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return doc, nil
}

// OrElse returns doc when err is nil and a fallback value otherwise
func OrElse[T any](doc T, err error, fallback func() T) T {
	if err != nil {
		return fallback()
	}
	return doc
}

// Read returns the document stored at path, or the default document if the file is
// missing, unreadable or invalid.
func (s *Store[T]) Read(ctx context.Context, path string) T {
	doc, err := s.load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.DebugContext(ctx, "Using default document", "path", path, "schema", s.schema.Name(), "error", err)
	}
	return OrElse(doc, err, s.newDefault)
}

// Check reports why the document at path cannot be read. A missing document is not an error.
func (s *Store[T]) Check(path string) error {
	_, err := s.load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store[T]) load(path string) (T, error) {
	// #nosec G304 -- paths are built from catalog entries and fixed file names
	data, err := os.ReadFile(path)
	if err != nil {
		var zero T
		return zero, err
	}
	return s.Parse(data)
}

// Update reads the document at path, applies mutate and writes the result back.
// If mutate returns an error nothing is written and that error is returned unchanged.
func (s *Store[T]) Update(ctx context.Context, path string, mutate func(T) (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	if s.opts.fileLock {
		// the lock file lives next to the document
		if err := os.MkdirAll(filepath.Dir(path), s.opts.dirMode); err != nil {
			return zero, fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
		unlock, err := s.lock(ctx, path)
		if err != nil {
			return zero, err
		}
		defer unlock()
	}

	next, err := mutate(s.Read(ctx, path))
	if err != nil {
		return zero, err
	}

	if err := s.Write(ctx, path, next); err != nil {
		return zero, err
	}
	return next, nil
}

func (*Store[T]) lock(ctx context.Context, path string) (func(), error) {
	fileLock := flock.New(path + ".lock")
	locked, err := fileLock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("failed to lock %s: lock not acquired", path)
	}
	return func() {
		if err := fileLock.Unlock(); err != nil {
			slog.Warn("Failed to release document lock", "path", path, "error", err)
		}
	}, nil
}

// Write serialises doc and replaces the file at path with it. The data goes to a
// temporary file in the same directory first and is renamed into place, so readers
// never observe a partially written document.
func (s *Store[T]) Write(ctx context.Context, path string, doc T) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document %s: %w", path, err)
	}
	if err := s.schema.Validate(data); err != nil {
		return fmt.Errorf("refusing to write %s: %w: %w", path, ErrInvalidDocument, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, s.opts.dirMode); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}
	tempPath := tmp.Name()

	if err := writeAndClose(tmp, data, s.opts.fileMode); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to write temporary file for %s: %w", path, err)
	}

	// Renames can fail transiently while another process holds the target open
	// (notably on Windows), so retry a few times before giving up.
	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, os.Rename(tempPath, path)
	},
		backoff.WithBackOff(newRenameBackOff()),
		backoff.WithMaxTries(s.opts.renameTries),
	)
	if err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename document %s: %w", path, err)
	}

	return nil
}

func writeAndClose(f *os.File, data []byte, mode os.FileMode) error {
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func newRenameBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 10 * time.Millisecond
	b.MaxInterval = 200 * time.Millisecond
	return b
}
