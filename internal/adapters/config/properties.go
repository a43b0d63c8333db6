// Package config reads override files and the project file.
package config

import (
	"bufio"
	"errors"
	"io/fs"
	"strings"

	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/zerr"
)

const maxLineSize = 1 << 20

// PropertiesSource implements ports.ConfigSource over flat key=value files.
type PropertiesSource struct {
	fs FileSystem
}

// NewPropertiesSource creates a PropertiesSource reading from fsys.
func NewPropertiesSource(fsys FileSystem) *PropertiesSource {
	return &PropertiesSource{fs: fsys}
}

// Load reads each file in order into one override map.
// Missing files are skipped. A later file overwrites keys set by an earlier one.
func (s *PropertiesSource) Load(paths []string) (domain.Overrides, error) {
	overrides := make(domain.Overrides)
	for _, path := range paths {
		if err := s.loadFile(path, overrides); err != nil {
			return nil, err
		}
	}
	return overrides, nil
}

func (s *PropertiesSource) loadFile(path string, into domain.Overrides) error {
	f, err := s.fs.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "file", path)
	}
	defer func() { _ = f.Close() }()

	// Entries are collected first so a parse failure leaves into untouched.
	var entries []domain.Override

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		entry, ok, err := parseLine(line)
		if err != nil {
			err = zerr.With(err, "file", path)
			err = zerr.With(err, "line", lineNo)
			return zerr.With(err, "remedy", "write one key=value pair per line")
		}
		if !ok {
			continue
		}
		entry.File = path
		entry.Line = lineNo
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "file", path)
	}

	for _, e := range entries {
		into[e.Key] = e
	}
	return nil
}

// parseLine parses a single line. Blank lines and comments report ok=false.
func parseLine(raw string) (domain.Override, bool, error) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
		return domain.Override{}, false, nil
	}

	key, value, found := strings.Cut(line, "=")
	if !found {
		return domain.Override{}, false, zerr.Wrap(domain.ErrParse, "expected key=value")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.Override{}, false, zerr.Wrap(domain.ErrParse, "empty key")
	}

	return domain.Override{
		Key:   key,
		Value: strings.TrimSpace(value),
	}, true, nil
}
