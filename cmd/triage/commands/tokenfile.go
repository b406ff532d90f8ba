package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/myrtus0x0/triage/internal/constants"
)

// tokenFilePath returns the location of the credential file: one line of
// `<root-url> <token>` in the user config directory.
func tokenFilePath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}

	return filepath.Join(configDir, "triage.conf"), nil
}

// loadTokenFile reads the first credential line, skipping blank lines and
// `#` comments.
func loadTokenFile() (rootURL, token string, err error) {
	path, err := tokenFilePath()
	if err != nil {
		return "", "", err
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", constants.ErrNotAuthenticated
		}

		return "", "", fmt.Errorf("opening token file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return parseTokenFile(file)
}

// parseTokenFile extracts the first `<url> <token>` pair from r.
func parseTokenFile(r io.Reader) (rootURL, token string, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return "", "", constants.ErrTokenFileMalformed
		}

		return fields[0], fields[1], nil
	}

	if err := scanner.Err(); err != nil {
		return "", "", fmt.Errorf("reading token file: %w", err)
	}

	return "", "", constants.ErrTokenFileMalformed
}

// writeTokenFile persists the credential line. It refuses to overwrite an
// existing file.
func writeTokenFile(rootURL, token string) error {
	path, err := tokenFilePath()
	if err != nil {
		return err
	}

	_, err = os.Stat(path)
	if err == nil {
		return fmt.Errorf("%w: %s", constants.ErrTokenFileExists, path)
	}

	err = os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	err = os.WriteFile(path, []byte(fmt.Sprintf("%s %s\n", rootURL, token)), constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}

	return nil
}
