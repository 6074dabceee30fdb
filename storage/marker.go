package storage

import (
	"os"
	"path/filepath"
)

// CreateMarkerExclusive attempts to create a zero-byte file at dir/name,
// failing if it already exists. It is the primitive both marker-producing
// stages (Tokenize, PreReverse) build their retry loops on top of.
func CreateMarkerExclusive(dir, name string) error {
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}

// IsExist reports whether err indicates the marker already existed, i.e. a
// timestamp collision the caller should retry with a freshly sampled
// timestamp.
func IsExist(err error) bool {
	return os.IsExist(err)
}
