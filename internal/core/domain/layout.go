package domain

import "path/filepath"

const (
	// KeelDirName is the name of the internal working directory.
	KeelDirName = ".keel"

	// StoreDirName is the name of the descriptor store directory.
	StoreDirName = "store"

	// ProjectFileName is the name of the optional project file.
	ProjectFileName = "keel.yaml"

	// LocalPropertiesFileName is the machine-local override file shared with the host build platform.
	LocalPropertiesFileName = "local.properties"

	// KeelPropertiesFileName is the keel-specific override file, applied after local.properties.
	KeelPropertiesFileName = "keel.local.properties"

	// DefaultOutputFileName is the default output path of the emit command.
	DefaultOutputFileName = "build.gradle"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultOverrideFiles returns the override files read when none are given,
// in precedence order (later wins).
func DefaultOverrideFiles() []string {
	return []string{LocalPropertiesFileName, KeelPropertiesFileName}
}

// DefaultStorePath returns the default path of the descriptor store.
// It joins .keel and store.
func DefaultStorePath() string {
	return filepath.Join(KeelDirName, StoreDirName)
}
