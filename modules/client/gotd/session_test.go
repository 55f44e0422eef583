package gotd

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
)

func TestImportSession(t *testing.T) {
	t.Parallel()

	blob := []byte(`{"Version":1,"Data":{"DC":2}}`)
	path := filepath.Join(t.TempDir(), "telegram", "session.json")

	if err := ImportSession(base64.StdEncoding.EncodeToString(blob), path); err != nil {
		t.Fatalf("ImportSession: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read session: %v", err)
	}
	if string(got) != string(blob) {
		t.Errorf("session content = %q, want %q", got, blob)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("session file mode = %o, want 600", perm)
	}
}

func TestImportSession_RejectsBadInput(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	if err := ImportSession("not-base64!!", path); err == nil {
		t.Error("expected error for invalid base64")
	}
	if err := ImportSession("", path); err == nil {
		t.Error("expected error for empty blob")
	}
}
