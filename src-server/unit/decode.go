package unit

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ParseFile reads and decodes one manifest.
func ParseFile(path string) (*Unit, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ParseFile: %w", err)
	}
	u, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("ParseFile: %s: %w", path, err)
	}
	u.Path = path
	return u, nil
}

// Parse decodes a manifest and validates its shape against the manifest
// schema. It does not check that the handler or the identifier are set,
// see (*Unit).Identifier.
func Parse(b []byte) (*Unit, error) {
	var raw map[string]any
	if err := toml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("can't decode toml: %w", err)
	}

	// the validator wants JSON-shaped values (json.Number, []any...)
	rawJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("can't marshal for validation: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(rawJSON))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("can't unmarshal for validation: %w", err)
	}
	sch, err := schema()
	if err != nil {
		return nil, fmt.Errorf("can't compile manifest schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}

	u := new(Unit)
	if err := toml.Unmarshal(b, u); err != nil {
		return nil, fmt.Errorf("can't decode toml: %w", err)
	}
	u.Hash = fmt.Sprintf("%x", sha256.Sum256(b))
	return u, nil
}
