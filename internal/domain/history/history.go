// Package history derives the report history index from persisted file names.
package history

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/okian/fplpulse/internal/domain/types"
)

// IndexBase is the file name, without extension, of the index documents.
const IndexBase = "index"

// StampLayout is the date and time stamp embedded in report file names.
const StampLayout = "2006-01-02_150405"

var stampPattern = regexp.MustCompile(`_(\d{4}-\d{2}-\d{2}_\d{6})$`)

// Lister returns the names of the files in the documentation area.
type Lister interface {
	List(ctx context.Context) ([]string, error)
}

// Load lists the documentation area and builds the index for ext.
func Load(ctx context.Context, l Lister, ext string) (types.HistoryIndex, error) {
	names, err := l.List(ctx)
	if err != nil {
		return types.HistoryIndex{}, fmt.Errorf("list history: %w", err)
	}
	return Build(names, ext), nil
}

// Build selects the names ending in ext, drops the index itself and orders
// the rest newest first by embedded stamp. Ties and unstamped names fall back
// to file name descending; stamped names sort before unstamped ones.
func Build(names []string, ext string) types.HistoryIndex {
	entries := make([]types.HistoryEntry, 0, len(names))
	for _, name := range names {
		base := filepath.Base(name)
		if filepath.Ext(base) != ext || base == IndexBase+ext {
			continue
		}
		e := types.HistoryEntry{Name: base}
		e.Stamp, e.HasStamp = ParseStamp(base)
		entries = append(entries, e)
	}

	slices.SortFunc(entries, func(a, b types.HistoryEntry) int {
		if a.HasStamp != b.HasStamp {
			if a.HasStamp {
				return -1
			}
			return 1
		}
		if c := b.Stamp.Compare(a.Stamp); c != 0 {
			return c
		}
		return strings.Compare(b.Name, a.Name)
	})

	return types.HistoryIndex{Ext: ext, Entries: entries}
}

// ParseStamp extracts the YYYY-MM-DD_HHMMSS stamp before the extension.
func ParseStamp(name string) (time.Time, bool) {
	m := stampPattern.FindStringSubmatch(strings.TrimSuffix(name, filepath.Ext(name)))
	if m == nil {
		return time.Time{}, false
	}
	t, err := time.Parse(StampLayout, m[1])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
