// ABOUTME: Data migration between local storage backends.
// ABOUTME: Copies the guest records from one key/value store to another.

package storage

import (
	"errors"
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated keys.
type MigrateSummary struct {
	Copied  int
	Missing int
}

// MigrateKeys copies the listed keys from src to dst. Keys absent from src
// are counted as missing and left untouched in dst. With dryRun set nothing
// is written.
func MigrateKeys(src, dst KV, keys []string, dryRun bool) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	for _, key := range keys {
		value, err := src.Get(key)
		if errors.Is(err, ErrNotFound) {
			summary.Missing++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}

		if !dryRun {
			if err := dst.Set(key, value); err != nil {
				return nil, fmt.Errorf("write %s: %w", key, err)
			}
		}
		summary.Copied++
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
