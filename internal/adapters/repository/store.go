// Package repository persists rendered reports and index documents.
package repository

import (
	"context"
	"time"
)

// Area is a destination directory for persisted documents.
type Area int

// Areas.
const (
	// OutputArea holds plain text reports.
	OutputArea Area = iota
	// DocsArea holds Markdown and HTML reports plus the indexes.
	DocsArea
)

// String returns the area name used in logs.
func (a Area) String() string {
	switch a {
	case OutputArea:
		return "output"
	case DocsArea:
		return "docs"
	default:
		return "unknown"
	}
}

// Document is one file to persist.
type Document struct {
	Area Area
	Name string
	Body []byte
}

// Written describes a persisted document.
type Written struct {
	Path string
	Size int
}

// Store writes report batches and serialises index regeneration.
type Store interface {
	// Commit writes every document or none of them. Existing files that a
	// failed batch overwrote are restored.
	Commit(ctx context.Context, docs []Document) ([]Written, error)

	// List returns the file names in an area. A missing area is empty.
	List(ctx context.Context, area Area) ([]string, error)

	// LockIndex takes the advisory index lock. The returned func releases it.
	LockIndex(ctx context.Context) (func() error, error)
}

// FileName returns "<kind>_<YYYY-MM-DD>_<HHMMSS><ext>".
func FileName(kind string, at time.Time, ext string) string {
	return kind + "_" + at.Format("2006-01-02_150405") + ext
}
