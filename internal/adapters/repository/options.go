package repository

import (
	"os"
	"time"
)

// Defaults for the filesystem store.
const (
	DefaultOutputDir      = "output"
	DefaultDocsDir        = "docs"
	DefaultLockTimeout    = 10 * time.Second
	DefaultLockRetryDelay = 50 * time.Millisecond
	DefaultFileMode       = os.FileMode(0o644)
	DefaultDirMode        = os.FileMode(0o755)
	lockFileName          = ".index.lock"
)

// Option applies a configuration option to the FSStore.
type Option func(*FSStore)

// WithOutputDir sets the plain text report directory.
func WithOutputDir(dir string) Option {
	return func(s *FSStore) {
		if dir != "" {
			s.outputDir = dir
		}
	}
}

// WithDocsDir sets the Markdown and HTML directory.
func WithDocsDir(dir string) Option {
	return func(s *FSStore) {
		if dir != "" {
			s.docsDir = dir
		}
	}
}

// WithLockTimeout bounds how long LockIndex waits.
func WithLockTimeout(d time.Duration) Option {
	return func(s *FSStore) {
		if d > 0 {
			s.lockTimeout = d
		}
	}
}

// WithLockRetryDelay sets the polling interval while waiting for the lock.
func WithLockRetryDelay(d time.Duration) Option {
	return func(s *FSStore) {
		if d > 0 {
			s.lockRetryDelay = d
		}
	}
}

// WithFileMode sets the permission bits of written files.
func WithFileMode(mode os.FileMode) Option {
	return func(s *FSStore) {
		if mode != 0 {
			s.fileMode = mode
		}
	}
}
