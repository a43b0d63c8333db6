package domain

import (
	"path/filepath"
	"time"
)

// DescriptorRecord is the store entry written after a successful emit.
type DescriptorRecord struct {
	Variant     BuildVariant     `json:"variant,omitzero"`
	Format      string           `json:"format,omitzero"`
	OutputPath  string           `json:"output_path,omitzero"`
	Fingerprint string           `json:"fingerprint,omitzero"`
	Descriptor  *BuildDescriptor `json:"descriptor,omitzero"`
	Timestamp   time.Time        `json:"timestamp,omitzero"`
}

// Key returns the record's store key.
func (r DescriptorRecord) Key() string {
	return RecordKey(r.Variant, r.Format, r.OutputPath)
}

// RecordKey returns the store key for a variant, output format and output path.
// Equivalent spellings of the same path share a key.
func RecordKey(variant BuildVariant, format, outputPath string) string {
	return string(variant) + "/" + format + "/" + filepath.ToSlash(filepath.Clean(outputPath))
}
