// Package storage implements the filesystem encodings and directory
// conventions the pipeline stages use to exchange intermediate results:
// marker filenames, newline-delimited records, and sorted directory
// enumeration with the synthetic "." / ".." entries discarded.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Layout names the five directories the pipeline reads from and writes to.
// Paths are configurable; the zero value is never valid on its own — build
// one from config.Config.DirPaths and pass it down.
type Layout struct {
	InputDir       string
	TempDir        string
	DirectIndexDir string
	ReverseTempDir string
	ReverseDir     string
}

// Dirs returns the four output directories the coordinator must create at
// startup, in a stable order used for reporting which one failed.
func (l Layout) Dirs() []string {
	return []string{l.TempDir, l.DirectIndexDir, l.ReverseTempDir, l.ReverseDir}
}

// InputPath returns the path to input document name.
func (l Layout) InputPath(name string) string { return filepath.Join(l.InputDir, name) }

// TempDocDir returns temp/{name}.
func (l Layout) TempDocDir(name string) string { return filepath.Join(l.TempDir, name) }

// DirectIndexPath returns direct-index/{name}.
func (l Layout) DirectIndexPath(name string) string { return filepath.Join(l.DirectIndexDir, name) }

// ReverseTempTokenDir returns reverse-index-temporary/{token}.
func (l Layout) ReverseTempTokenDir(token string) string {
	return filepath.Join(l.ReverseTempDir, token)
}

// ReverseIndexPath returns reverse-index/{token}.
func (l Layout) ReverseIndexPath(token string) string {
	return filepath.Join(l.ReverseDir, token)
}

// NowMicros returns the current time as decimal microseconds since the Unix
// epoch, the timestamp precision the marker-file encodings use.
func NowMicros() int64 {
	return time.Now().UnixMicro()
}

// TokenMarkerName formats a Tokenize-stage marker filename:
// "{token}_{decimalMicroseconds}".
func TokenMarkerName(token string, ts int64) string {
	return fmt.Sprintf("%s_%d", token, ts)
}

// DirectIndexRecord formats a direct-index / reverse-index line:
// "{word} {count}\n".
func DirectIndexRecord(word string, count int) string {
	return fmt.Sprintf("%s %d\n", word, count)
}

// PreReverseMarkerName formats a PreReverse-stage marker filename:
// "{document}_{count}_{decimalMicroseconds}".
func PreReverseMarkerName(document string, count int, ts int64) string {
	return fmt.Sprintf("%s_%d_%d", document, count, ts)
}

// SplitTokenMarker parses a Tokenize-stage marker filename back into its
// token. The timestamp is discarded; it only ever existed to make the
// filename unique.
func SplitTokenMarker(name string) (token string, ok bool) {
	i := strings.LastIndexByte(name, '_')
	if i < 0 {
		return "", false
	}
	return name[:i], true
}

// SplitPreReverseMarker parses a PreReverse-stage marker filename
// "{document}_{count}_{ts}" into its document and count. The document
// itself may validly contain underscores, so the split works from the
// right: the last field is the timestamp, the one before it the count, and
// everything else the document name.
func SplitPreReverseMarker(name string) (document string, count int, ok bool) {
	last := strings.LastIndexByte(name, '_')
	if last < 0 {
		return "", 0, false
	}
	rest := name[:last]
	mid := strings.LastIndexByte(rest, '_')
	if mid < 0 {
		return "", 0, false
	}
	countStr := rest[mid+1:]
	n, err := strconv.Atoi(countStr)
	if err != nil {
		return "", 0, false
	}
	return rest[:mid], n, true
}

// ListSorted enumerates dir's entries in lexicographic order, discarding
// "." and ".." (a ReadDir on a real filesystem never returns those, but the
// sort+discard contract is kept explicit here as a property worth
// preserving against alternate directory abstractions that do surface them).
func ListSorted(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		n := e.Name()
		if n == "." || n == ".." {
			continue
		}
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// EnsureDir creates dir if it does not already exist, treating
// "already exists" as success.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return nil
}

// CreateDirFresh creates dir and fails if it cannot — used for the four
// startup output directories, where creation failure is fatal.
func CreateDirFresh(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
