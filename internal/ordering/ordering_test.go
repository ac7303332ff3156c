package ordering

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/djherbis/times"

	"github.com/ironsheep/lightness-curve/internal/fault"
)

// touch creates empty files in dir, in the given order.
func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
}

func baseNames(items []Item) []string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = filepath.Base(it.Path)
	}
	return names
}

func assertOrder(t *testing.T, items []Item, want ...string) {
	t.Helper()
	got := baseNames(items)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
		if items[i].Index != i {
			t.Errorf("item %d has Index %d", i, items[i].Index)
		}
	}
}

func TestResolve_ByName(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.png", "a.png", "c.png")

	asc, err := Resolve(dir, KeyName, false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	assertOrder(t, asc, "a.png", "b.png", "c.png")

	desc, err := Resolve(dir, KeyName, true)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	assertOrder(t, desc, "c.png", "b.png", "a.png")
}

func TestResolve_ByModified(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.png", "b.png", "c.png")

	base := time.Date(2025, 6, 7, 12, 0, 0, 0, time.UTC)
	mtimes := map[string]time.Time{
		"a.png": base.Add(2 * time.Hour),
		"b.png": base,
		"c.png": base.Add(time.Hour),
	}
	for name, mt := range mtimes {
		if err := os.Chtimes(filepath.Join(dir, name), mt, mt); err != nil {
			t.Fatalf("Chtimes failed: %v", err)
		}
	}

	asc, err := Resolve(dir, KeyModified, false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	assertOrder(t, asc, "b.png", "c.png", "a.png")

	desc, err := Resolve(dir, KeyModified, true)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	assertOrder(t, desc, "a.png", "c.png", "b.png")
}

func TestResolve_ByCreated(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c.png", "a.png", "b.png"} {
		touch(t, dir, name)
		time.Sleep(20 * time.Millisecond)
	}

	ts, err := times.Stat(filepath.Join(dir, "a.png"))
	if err != nil {
		t.Fatalf("times.Stat failed: %v", err)
	}

	items, err := Resolve(dir, KeyCreated, false)
	if !ts.HasBirthTime() {
		if !errors.Is(err, fault.ErrMetadata) {
			t.Errorf("expected ErrMetadata without birth times, got %v", err)
		}
		return
	}
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	assertOrder(t, items, "c.png", "a.png", "b.png")
}

func TestResolve_SkipsNonRegular(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.png", "b.png")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}
	touch(t, filepath.Join(dir, "sub"), "nested.png")
	if err := os.Symlink(filepath.Join(dir, "a.png"), filepath.Join(dir, "link.png")); err != nil {
		t.Fatalf("Symlink failed: %v", err)
	}
	if err := os.Symlink(filepath.Join(dir, "missing.png"), filepath.Join(dir, "broken.png")); err != nil {
		t.Fatalf("Symlink failed: %v", err)
	}

	items, err := Resolve(dir, KeyName, false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	assertOrder(t, items, "a.png", "b.png", "link.png")
}

func TestResolve_SingleFile(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "only.png")
	path := filepath.Join(dir, "only.png")

	items, err := Resolve(path, KeyName, true)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(items) != 1 || items[0].Path != path || items[0].Index != 0 {
		t.Errorf("got %+v, want single item for %s", items, path)
	}
}

func TestResolve_NoneKeepsEnumerationSet(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "x.png", "y.png", "z.png")

	items, err := Resolve(dir, KeyNone, true)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	seen := map[string]bool{}
	for _, n := range baseNames(items) {
		seen[n] = true
	}
	for _, n := range []string{"x.png", "y.png", "z.png"} {
		if !seen[n] {
			t.Errorf("missing %s in %v", n, baseNames(items))
		}
	}
}

func TestResolve_EmptyDirectory(t *testing.T) {
	items, err := Resolve(t.TempDir(), KeyName, false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("got %d items, want 0", len(items))
	}
}

func TestResolve_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Resolve(filepath.Join(dir, "missing"), KeyName, false); !errors.Is(err, fault.ErrPath) {
		t.Errorf("missing root: expected ErrPath, got %v", err)
	}
	if _, err := Resolve(dir, Key(7), false); !errors.Is(err, fault.ErrConfig) {
		t.Errorf("bad key: expected ErrConfig, got %v", err)
	}
	if _, err := Resolve(os.DevNull, KeyName, false); !errors.Is(err, fault.ErrPath) {
		t.Errorf("device root: expected ErrPath, got %v", err)
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		in      string
		want    Key
		wantErr bool
	}{
		{"", KeyNone, false},
		{"none", KeyNone, false},
		{"name", KeyName, false},
		{"0", KeyName, false},
		{"Created", KeyCreated, false},
		{"1", KeyCreated, false},
		{"modified", KeyModified, false},
		{"2", KeyModified, false},
		{"3", 0, true},
		{"size", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKey(tt.in)
			if tt.wantErr {
				if !errors.Is(err, fault.ErrConfig) {
					t.Errorf("expected ErrConfig, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKey failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
