package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeFile writes a temp dictionary file and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadDictionaryYAML verifies YAML dictionary loading.
func TestLoadDictionaryYAML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "categories.yaml", `
names:
  - maria
  - david
seasons:
  - summer
`)

	d, err := LoadDictionary(path)
	if err != nil {
		t.Fatalf("LoadDictionary returned error: %v", err)
	}

	if got := d.Len(); got != 3 {
		t.Errorf("Len = %d, want 3", got)
	}
	if got := d.Words(); !reflect.DeepEqual(got, []string{"david", "maria", "summer"}) {
		t.Errorf("Words = %v", got)
	}
	if got := d.Categories("summer"); !reflect.DeepEqual(got, []string{"seasons"}) {
		t.Errorf("Categories(summer) = %v", got)
	}
	if got := d.CategoryNames(); !reflect.DeepEqual(got, []string{"names", "seasons"}) {
		t.Errorf("CategoryNames = %v", got)
	}
}

// TestLoadDictionaryJSON verifies that the classic JSON format is accepted.
func TestLoadDictionaryJSON(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "categories.json",
		`{"names": ["maria"], "seasons": ["summer", "winter"]}`)

	d, err := LoadDictionary(path)
	if err != nil {
		t.Fatalf("LoadDictionary returned error: %v", err)
	}
	if got := d.Len(); got != 3 {
		t.Errorf("Len = %d, want 3", got)
	}
	if got := d.Categories("winter"); !reflect.DeepEqual(got, []string{"seasons"}) {
		t.Errorf("Categories(winter) = %v", got)
	}
}

// TestLoadDictionaryMissing verifies the not-found sentinel.
func TestLoadDictionaryMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadDictionary(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, ErrDictionaryNotFound) {
		t.Errorf("err = %v, want ErrDictionaryNotFound", err)
	}
}

// TestLoadDictionaryMalformed verifies parse failures are reported with the
// file name.
func TestLoadDictionaryMalformed(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "broken.yaml", "categories: [unclosed")
	_, err := LoadDictionary(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if errors.Is(err, ErrDictionaryNotFound) {
		t.Error("parse failure must not look like a missing file")
	}
}

// TestNewDictionary verifies index construction: deduplication and
// multi-category words.
func TestNewDictionary(t *testing.T) {
	t.Parallel()

	d := NewDictionary(map[string][]string{
		"sports": {"madrid", "madrid"},
		"cities": {"madrid", "london"},
	})

	t.Run("duplicate words deduplicated", func(t *testing.T) {
		t.Parallel()
		if got := d.Len(); got != 2 {
			t.Errorf("Len = %d, want 2", got)
		}
	})

	t.Run("word in multiple categories", func(t *testing.T) {
		t.Parallel()
		want := []string{"cities", "sports"}
		if got := d.Categories("madrid"); !reflect.DeepEqual(got, want) {
			t.Errorf("Categories(madrid) = %v, want %v", got, want)
		}
	})

	t.Run("unknown word returns nil", func(t *testing.T) {
		t.Parallel()
		if got := d.Categories("tokyo"); got != nil {
			t.Errorf("Categories(tokyo) = %v, want nil", got)
		}
	})

	t.Run("empty dictionary", func(t *testing.T) {
		t.Parallel()
		empty := NewDictionary(nil)
		if empty.Len() != 0 {
			t.Errorf("Len = %d, want 0", empty.Len())
		}
	})
}
