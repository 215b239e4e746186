package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// SaveToken writes the bearer token to path, creating parent directories.
// The file is user-readable only: the token is a credential.
func SaveToken(path, token string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token), 0o600)
}

// LoadToken reads a previously saved bearer token. A missing file yields an
// empty token, not an error: the user simply has not logged in yet.
func LoadToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// DefaultTokenPath is where login stores the token unless overridden.
func DefaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cadastr_token"
	}
	return filepath.Join(home, ".cadastr", "token")
}
