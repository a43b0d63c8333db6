package domain

import "go.trai.ch/zerr"

// Resolution failures. Callers wrap these with zerr.Wrap so errors.Is can
// identify the category while metadata carries the key, file and remedy.
var (
	// ErrMissingSDK is returned when the external SDK root is not configured or does not exist.
	ErrMissingSDK = zerr.New("missing SDK")

	// ErrParse is returned when an override file contains a malformed line.
	ErrParse = zerr.New("override parse error")

	// ErrResolution is returned when an explicit configuration value is invalid.
	ErrResolution = zerr.New("invalid configuration value")

	// ErrMissingSigningProfile is returned when a release build references an unknown signing profile.
	ErrMissingSigningProfile = zerr.New("missing signing profile")
)

var (
	// ErrConfigReadFailed is returned when an override or project file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the project file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnsupportedProjectVersion is returned when keel.yaml declares an unknown schema version.
	ErrUnsupportedProjectVersion = zerr.New("unsupported project file version")

	// ErrInvalidDescriptor is returned when a descriptor fails structural validation before emission.
	ErrInvalidDescriptor = zerr.New("invalid build descriptor")

	// ErrUnknownFormat is returned when no emitter is registered for the requested format.
	ErrUnknownFormat = zerr.New("unknown output format")

	// ErrEmitFailed is returned when a descriptor cannot be serialized.
	ErrEmitFailed = zerr.New("failed to emit descriptor")

	// ErrDescriptorDrift is returned when the emitted descriptor on disk differs from a fresh resolution.
	ErrDescriptorDrift = zerr.New("descriptor is out of date")

	// ErrWriteFailed is returned when the descriptor output cannot be written.
	ErrWriteFailed = zerr.New("failed to write descriptor")

	// ErrStoreCreateFailed is returned when the descriptor store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create descriptor store directory")

	// ErrStoreReadFailed is returned when a store record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read descriptor record")

	// ErrStoreUnmarshalFailed is returned when a store record cannot be decoded.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal descriptor record")

	// ErrStoreMarshalFailed is returned when a store record cannot be encoded.
	ErrStoreMarshalFailed = zerr.New("failed to marshal descriptor record")

	// ErrStoreWriteFailed is returned when a store record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write descriptor record")

	// ErrProbeFailed is returned when the platform probe cannot inspect an SDK directory.
	ErrProbeFailed = zerr.New("failed to probe platform")

	// ErrWatchFailed is returned when the file watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to watch files")
)
