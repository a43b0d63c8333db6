package ports

import "go.trai.ch/keel/internal/core/domain"

// DescriptorStore records the last emitted descriptor per variant, format and output path.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type DescriptorStore interface {
	// Get retrieves the record for a variant, format and output path.
	// Returns nil, nil if not found.
	Get(root string, variant domain.BuildVariant, format, outputPath string) (*domain.DescriptorRecord, error)

	// Put stores the record.
	Put(root string, record domain.DescriptorRecord) error

	// Clean removes every record under root.
	Clean(root string) error
}
