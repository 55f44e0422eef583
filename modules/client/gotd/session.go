package gotd

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ImportSession decodes a base64 session blob and writes it to path. Used to
// move an authenticated session onto a host with no terminal for the
// interactive login, e.g. a container deployment.
func ImportSession(encoded, path string) error {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return fmt.Errorf("gotd: decode session: %w", err)
	}
	if len(data) == 0 {
		return fmt.Errorf("gotd: session blob is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("gotd: create session dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("gotd: write session: %w", err)
	}
	return nil
}
