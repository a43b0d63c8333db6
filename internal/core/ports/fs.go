package ports

// Hasher computes content fingerprints.
//
//go:generate go run go.uber.org/mock/mockgen -source=fs.go -destination=mocks/mock_fs.go -package=mocks
type Hasher interface {
	// Sum returns the fingerprint of data as a hex string.
	Sum(data []byte) string
	// SumFile returns the fingerprint of the file at path.
	SumFile(path string) (string, error)
}

// Writer writes files atomically.
type Writer interface {
	// WriteFile replaces the file at path with data. Readers never observe a partial file.
	WriteFile(path string, data []byte) error
}
