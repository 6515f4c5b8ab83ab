package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/okian/fplpulse/internal/domain/model"
)

// FSStore persists documents as files under two directories. Writes go to a
// temp file in the target directory and are renamed into place, so readers
// never observe a half written report.
type FSStore struct {
	outputDir      string
	docsDir        string
	lockTimeout    time.Duration
	lockRetryDelay time.Duration
	fileMode       os.FileMode
}

var _ Store = (*FSStore)(nil)

// NewFSStore creates a filesystem store with configuration options.
func NewFSStore(opts ...Option) *FSStore {
	s := &FSStore{
		outputDir:      DefaultOutputDir,
		docsDir:        DefaultDocsDir,
		lockTimeout:    DefaultLockTimeout,
		lockRetryDelay: DefaultLockRetryDelay,
		fileMode:       DefaultFileMode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the directory backing an area.
func (s *FSStore) Dir(a Area) (string, error) {
	switch a {
	case OutputArea:
		return s.outputDir, nil
	case DocsArea:
		return s.docsDir, nil
	default:
		return "", persistErr("resolve area", fmt.Errorf("%w: %d", ErrUnknownArea, int(a)))
	}
}

// staged is a document written to a temp file but not yet renamed.
type staged struct {
	target  string
	temp    string
	size    int
	prev    []byte
	existed bool
}

// Commit writes docs in two phases: stage every temp file, then rename them
// into place. A failure in either phase leaves the areas as they were.
func (s *FSStore) Commit(ctx context.Context, docs []Document) ([]Written, error) {
	batch := make([]staged, 0, len(docs))
	discard := func(from int) {
		for _, st := range batch[from:] {
			_ = os.Remove(st.temp)
		}
	}

	for _, d := range docs {
		if err := ctx.Err(); err != nil {
			discard(0)
			return nil, persistErr("commit", err)
		}
		st, err := s.stage(d)
		if err != nil {
			discard(0)
			return nil, err
		}
		batch = append(batch, st)
	}

	for i := range batch {
		if err := os.Rename(batch[i].temp, batch[i].target); err != nil {
			discard(i)
			return nil, errors.Join(
				persistErr("rename "+batch[i].target, err),
				s.rollback(batch[:i]),
			)
		}
	}

	out := make([]Written, 0, len(batch))
	for _, st := range batch {
		out = append(out, Written{Path: st.target, Size: st.size})
	}
	return out, nil
}

func (s *FSStore) stage(d Document) (staged, error) {
	if d.Name == "" || d.Name == "." || d.Name == ".." || filepath.Base(d.Name) != d.Name {
		return staged{}, persistErr("stage", fmt.Errorf("%w: %q", ErrInvalidName, d.Name))
	}
	dir, err := s.Dir(d.Area)
	if err != nil {
		return staged{}, err
	}
	if err := os.MkdirAll(dir, DefaultDirMode); err != nil {
		return staged{}, persistErr("create "+dir, err)
	}

	st := staged{target: filepath.Join(dir, d.Name), size: len(d.Body)}
	prev, err := os.ReadFile(st.target)
	switch {
	case err == nil:
		st.prev, st.existed = prev, true
	case !errors.Is(err, fs.ErrNotExist):
		return staged{}, persistErr("read "+st.target, err)
	}

	if st.temp, err = s.writeTemp(dir, d.Name, d.Body); err != nil {
		return staged{}, err
	}
	return st, nil
}

func (s *FSStore) writeTemp(dir, name string, body []byte) (string, error) {
	f, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return "", persistErr("create temp for "+name, err)
	}
	path := f.Name()
	fail := func(op string, err error) (string, error) {
		_ = f.Close()
		_ = os.Remove(path)
		return "", persistErr(op+" "+path, err)
	}
	if _, err := f.Write(body); err != nil {
		return fail("write", err)
	}
	if err := f.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := f.Chmod(s.fileMode); err != nil {
		return fail("chmod", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", persistErr("close "+path, err)
	}
	return path, nil
}

// rollback undoes renamed documents: new files are removed and overwritten
// files get their previous content back.
func (s *FSStore) rollback(done []staged) error {
	var errs []error
	for i := len(done) - 1; i >= 0; i-- {
		st := done[i]
		if !st.existed {
			if err := os.Remove(st.target); err != nil && !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, err)
			}
			continue
		}
		tmp, err := s.writeTemp(filepath.Dir(st.target), filepath.Base(st.target), st.prev)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := os.Rename(tmp, st.target); err != nil {
			_ = os.Remove(tmp)
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return persistErr("rollback", fmt.Errorf("%w: %w", ErrRollback, errors.Join(errs...)))
}

// List returns the regular file names in an area, in directory order.
func (s *FSStore) List(ctx context.Context, area Area) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, persistErr("list", err)
	}
	dir, err := s.Dir(area)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, persistErr("list "+dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// LockIndex takes an advisory lock on the docs area, waiting at most the
// configured lock timeout.
func (s *FSStore) LockIndex(ctx context.Context) (func() error, error) {
	if err := os.MkdirAll(s.docsDir, DefaultDirMode); err != nil {
		return nil, persistErr("create "+s.docsDir, err)
	}
	fl := flock.New(filepath.Join(s.docsDir, lockFileName))

	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()
	ok, err := fl.TryLockContext(lockCtx, s.lockRetryDelay)
	if err != nil {
		return nil, persistErr("lock "+fl.Path(), fmt.Errorf("%w: %w", ErrLockTimeout, err))
	}
	if !ok {
		return nil, persistErr("lock "+fl.Path(), ErrLockTimeout)
	}
	return fl.Unlock, nil
}

// Lister adapts one area of the store to a name lister.
func (s *FSStore) Lister(area Area) AreaLister {
	return NewAreaLister(s, area)
}

// NewAreaLister adapts one area of any Store to a name lister.
func NewAreaLister(store Store, area Area) AreaLister {
	return AreaLister{store: store, area: area}
}

// AreaLister lists one area of a Store.
type AreaLister struct {
	store Store
	area  Area
}

// List returns the file names of the area.
func (l AreaLister) List(ctx context.Context) ([]string, error) {
	return l.store.List(ctx, l.area)
}

func persistErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, err, model.ErrPersistenceFailure)
}
