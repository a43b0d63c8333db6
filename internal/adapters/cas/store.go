// Package cas implements the descriptor record store.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.DescriptorStore using a file-per-record strategy.
type Store struct{}

// NewStore creates a new DescriptorStore. Records live under <root>/.keel/store.
func NewStore() (*Store, error) {
	return &Store{}, nil
}

// Get retrieves the record for a variant, format and output path.
func (s *Store) Get(root string, variant domain.BuildVariant, format, outputPath string) (*domain.DescriptorRecord, error) {
	filename := s.getFilename(root, domain.RecordKey(variant, format, outputPath))
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	var record domain.DescriptorRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "path", filename)
	}

	return &record, nil
}

// Put stores the record, replacing any previous record for the same variant, format and output path.
func (s *Store) Put(root string, record domain.DescriptorRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	filename := s.getFilename(root, record.Key())
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	return nil
}

// Clean removes the store directory. A missing store is not an error.
func (s *Store) Clean(root string) error {
	dir := filepath.Join(root, domain.DefaultStorePath())
	if err := os.RemoveAll(dir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove descriptor store"), "path", dir)
	}
	return nil
}

func (s *Store) getFilename(root, key string) string {
	hash := sha256.Sum256([]byte(key))
	hexHash := hex.EncodeToString(hash[:])
	storeDir := filepath.Join(root, domain.DefaultStorePath())
	return filepath.Join(storeDir, hexHash+".json")
}
