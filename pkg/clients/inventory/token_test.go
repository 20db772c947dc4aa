package inventory

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileTokenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	store := NewFileTokenStore(path)

	token, err := store.Token()
	if err != nil || token != "" {
		t.Fatalf("expected empty token for missing file, got %q, %v", token, err)
	}

	if err := store.Save("tok"); err != nil {
		t.Fatalf("save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
	}

	data, _ := os.ReadFile(path)
	if string(data) != `{"token":"tok"}` {
		t.Errorf("unexpected file content %s", data)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear should be a no-op: %v", err)
	}
}
