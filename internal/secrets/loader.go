package secrets

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotConfigured is returned when none of the sources holds a value.
var ErrNotConfigured = errors.New("not configured")

// Source lists where a secret may come from. Value wins over File, File wins
// over Env.
type Source struct {
	// Name is used in error messages.
	Name string
	// Value is given inline, usually through a flag.
	Value string
	// File holds the secret on its first non-empty line.
	File string
	// Env is the name of an environment variable holding the secret.
	Env string
}

// Load resolves the secret. The result is always trimmed.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	if v := strings.TrimSpace(src.Value); v != "" {
		return v, nil
	}

	if file := strings.TrimSpace(src.File); file != "" {
		v, err := firstLine(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		if v == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return v, nil
	}

	if env := strings.TrimSpace(src.Env); env != "" {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v, nil
		}
	}

	return "", fmt.Errorf("%s is %w", name, ErrNotConfigured)
}

func firstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line, nil
		}
	}
	return "", scanner.Err()
}
