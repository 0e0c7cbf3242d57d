package config

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// loadDotEnv loads KEY=VALUE pairs from the first existing file in paths.
// Existing environment variables are not overwritten. A missing file is not
// an error.
func loadDotEnv(paths ...string) error {
	for _, p := range paths {
		if p == "" {
			continue
		}
		err := loadDotEnvFile(p)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		return err
	}
	return nil
}

func loadDotEnvFile(path string) error {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		value = strings.TrimSpace(value)
		value = strings.Trim(value, `"'`)
		_ = os.Setenv(key, value)
	}
	return scanner.Err()
}
