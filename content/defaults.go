package content

import (
	"embed"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaultFiles embed.FS

// Default returns the bundled game content, unvalidated.
func Default() (Bundle, error) {
	names, err := fs.Glob(defaultFiles, "defaults/*.yaml")
	if err != nil {
		return Bundle{}, err
	}

	var b Bundle
	for _, name := range names {
		data, err := defaultFiles.ReadFile(name)
		if err != nil {
			return Bundle{}, fmt.Errorf("reading %s: %w", name, err)
		}
		part, err := DecodeYAML(data)
		if err != nil {
			return Bundle{}, fmt.Errorf("%s: %w", name, err)
		}
		b.Merge(part)
	}
	return b, nil
}

// LoadDefault validates the bundled content.
func LoadDefault() (*Parsed, error) {
	b, err := Default()
	if err != nil {
		return nil, err
	}
	res := Validate(b)
	if err := res.Err(); err != nil {
		return nil, err
	}
	return res.Parsed, nil
}

// DecodeYAML reads a bundle fragment. Categories absent from the document
// stay empty.
func DecodeYAML(data []byte) (Bundle, error) {
	var b Bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return Bundle{}, fmt.Errorf("parsing YAML: %w", err)
	}
	return b, nil
}
