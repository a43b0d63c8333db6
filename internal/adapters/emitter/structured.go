package emitter

import (
	"bytes"
	"encoding/json"

	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Structured output formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// YAMLEmitter renders a descriptor as a YAML document.
type YAMLEmitter struct{}

// NewYAMLEmitter creates a new YAMLEmitter.
func NewYAMLEmitter() *YAMLEmitter {
	return &YAMLEmitter{}
}

// Format returns the format name.
func (e *YAMLEmitter) Format() string {
	return FormatYAML
}

// Emit renders the descriptor.
func (e *YAMLEmitter) Emit(descriptor *domain.BuildDescriptor) ([]byte, error) {
	if err := validate(descriptor); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(descriptor); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrEmitFailed.Error()), "format", FormatYAML)
	}
	if err := enc.Close(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrEmitFailed.Error()), "format", FormatYAML)
	}
	return buf.Bytes(), nil
}

// JSONEmitter renders a descriptor as indented JSON.
type JSONEmitter struct{}

// NewJSONEmitter creates a new JSONEmitter.
func NewJSONEmitter() *JSONEmitter {
	return &JSONEmitter{}
}

// Format returns the format name.
func (e *JSONEmitter) Format() string {
	return FormatJSON
}

// Emit renders the descriptor.
func (e *JSONEmitter) Emit(descriptor *domain.BuildDescriptor) ([]byte, error) {
	if err := validate(descriptor); err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(descriptor, "", "  ")
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrEmitFailed.Error()), "format", FormatJSON)
	}
	return append(data, '\n'), nil
}
