package reference

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a reference set from path. The format is chosen by
// extension: .yaml/.yml, .toml or .json. Lists missing from the file keep
// their built-in values, so a file can override a single list.
func LoadFile(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reference data: %w", err)
	}

	// Decoders may reuse slice backing arrays, so start from a fresh copy.
	data := *Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("decode YAML reference data: %w", err)
		}
	case ".toml":
		md, err := toml.Decode(string(raw), &data)
		if err != nil {
			return nil, fmt.Errorf("decode TOML reference data: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown keys %v", ErrInvalidData, undecoded)
		}
	case ".json":
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("decode JSON reference data: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported file extension %q", ErrInvalidData, ext)
	}

	normalized := data.Normalize()
	if err := normalized.Validate(); err != nil {
		return nil, err
	}
	return normalized, nil
}

// Load returns the built-in set when path is empty, otherwise LoadFile(path).
func Load(path string) (*Data, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
