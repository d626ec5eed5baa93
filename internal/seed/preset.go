package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ParsePreset decodes a YAML preset on top of base. Unknown keys are an error.
//
//	users: 50
//	posts: 200
//	likes: 800
//	follows: 300
//	comments: 400
func ParsePreset(data []byte, base Options) (Options, error) {
	opts := base
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return base, fmt.Errorf("invalid preset: %w", err)
	}
	for name, v := range map[string]int{"users": opts.Users, "posts": opts.Posts, "likes": opts.Likes, "follows": opts.Follows, "comments": opts.Comments, "max_days": opts.MaxDays} {
		if v < 0 {
			return base, fmt.Errorf("invalid preset: %s must not be negative", name)
		}
	}
	return opts, nil
}

// LoadPreset reads and parses the preset file at path.
func LoadPreset(path string, base Options) (Options, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- operator-supplied path
	if err != nil {
		return base, err
	}
	return ParsePreset(raw, base)
}
