package testsnapshot

import (
	"fmt"
	"os"

	"github.com/tidwall/pretty"
)

// File permission constants.
const (
	outputFilePermission = 0o644
)

// WriteFile stores a pretty printed copy of the handler's document.
func WriteFile(path string, body []byte) error {
	if err := os.WriteFile(path, pretty.Pretty(body), outputFilePermission); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ShowHelp prints usage information for the snapshot server.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`FPL Snapshot Server
===================

Serves a deterministic synthetic bootstrap-static document for local runs.

Usage:
  go run ./cmd/snapshot-server [options]

Options:
  -addr string
        Listen address (default "127.0.0.1:9090")
  -players int
        Number of generated players (default 600)
  -teams int
        Number of generated teams (default 20)
  -seed int
        Generator seed (default 42)
  -output string
        Also write the document, pretty printed, to this file
  -verbose
        Log every request
  -help
        Show this help message

Examples:
  go run ./cmd/snapshot-server -players 50 -seed 7
  FPL_BOOTSTRAP_URL=http://127.0.0.1:9090/api/bootstrap-static/ go run ./cmd
`)
}
