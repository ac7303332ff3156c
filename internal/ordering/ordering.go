// Package ordering turns an input root into a deterministic sequence of files.
package ordering

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/djherbis/times"

	"github.com/ironsheep/lightness-curve/internal/fault"
)

// Key is the field files are sorted by.
type Key uint8

const (
	// KeyNone keeps the directory's enumeration order.
	KeyNone Key = iota
	KeyName
	KeyCreated
	KeyModified
)

var keyNames = [...]string{
	KeyNone:     "none",
	KeyName:     "name",
	KeyCreated:  "created",
	KeyModified: "modified",
}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("key(%d)", uint8(k))
}

// ParseKey accepts "name", "created", "modified" or the indices "0", "1",
// "2" in that order. An empty string or "none" selects KeyNone.
func ParseKey(s string) (Key, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return KeyNone, nil
	case "name", "0":
		return KeyName, nil
	case "created", "ctime", "1":
		return KeyCreated, nil
	case "modified", "mtime", "2":
		return KeyModified, nil
	}
	return 0, fmt.Errorf("%w: unknown ordering key %q", fault.ErrConfig, s)
}

// Item is one input in its final position.
type Item struct {
	Index int
	Path  string
}

type entry struct {
	path string
	name string
	when time.Time
}

// Resolve lists the inputs under root in processing order.
//
// A regular file yields a single item. A directory yields its direct
// children that are regular files (symlinks followed, subdirectories
// skipped), sorted ascending by key and then reversed when descending is
// set. Ties keep enumeration order. With KeyNone the enumeration order is
// kept and descending is ignored.
//
// # Errors
//
//   - fault.ErrPath if root is not a readable directory or regular file
//   - fault.ErrConfig if key is not defined
//   - fault.ErrMetadata if a timestamp cannot be read for any entry
func Resolve(root string, key Key, descending bool) ([]Item, error) {
	if int(key) >= len(keyNames) {
		return nil, fmt.Errorf("%w: unknown ordering key %v", fault.ErrConfig, key)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", fault.ErrPath, err)
	}
	if info.Mode().IsRegular() {
		return []Item{{Index: 0, Path: root}}, nil
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is neither a directory nor a regular file", fault.ErrPath, root)
	}

	entries, err := list(root)
	if err != nil {
		return nil, err
	}
	if err := stamp(entries, key); err != nil {
		return nil, err
	}

	switch key {
	case KeyName:
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].name < entries[j].name })
	case KeyCreated, KeyModified:
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].when.Before(entries[j].when) })
	}
	if descending && key != KeyNone {
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	}

	items := make([]Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Index: i, Path: e.path}
	}
	return items, nil
}

// list returns the regular files directly under dir in enumeration order.
func list(dir string) ([]entry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", fault.ErrPath, err)
	}
	defer f.Close()

	dirents, err := f.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", fault.ErrPath, dir, err)
	}

	entries := make([]entry, 0, len(dirents))
	for _, d := range dirents {
		path := filepath.Join(dir, d.Name())
		if !d.Type().IsRegular() {
			if d.Type()&os.ModeSymlink == 0 {
				continue
			}
			fi, err := os.Stat(path)
			if err != nil || !fi.Mode().IsRegular() {
				continue
			}
		}
		entries = append(entries, entry{path: path, name: d.Name()})
	}
	return entries, nil
}

// stamp fills in the timestamp each entry is sorted by.
func stamp(entries []entry, key Key) error {
	if key != KeyCreated && key != KeyModified {
		return nil
	}

	for i := range entries {
		ts, err := times.Stat(entries[i].path)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", fault.ErrMetadata, entries[i].path, err)
		}
		if key == KeyModified {
			entries[i].when = ts.ModTime()
			continue
		}
		if !ts.HasBirthTime() {
			return fmt.Errorf("%w: %s: creation time not available on this platform", fault.ErrMetadata, entries[i].path)
		}
		entries[i].when = ts.BirthTime()
	}
	return nil
}
