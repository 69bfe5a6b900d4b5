package plan

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stitchline/stitchline/pkg/errors"
)

// Bulletin is a normalized operation bulletin: the operation list the
// ingestion collaborator produces from a spreadsheet, plus an optional
// embedded demand target. Column matching and spreadsheet parsing happen
// upstream; this type only decodes the already-normalized form.
type Bulletin struct {
	// Style optionally names the garment style the bulletin describes.
	Style string `json:"style,omitempty" yaml:"style,omitempty" bson:"style,omitempty"`

	Operations []Operation `json:"operations" yaml:"operations" bson:"operations"`

	// Demand is optional; CLI flags take precedence when set.
	Demand *Demand `json:"demand,omitempty" yaml:"demand,omitempty" bson:"demand,omitempty"`
}

// ReadBulletinFile reads an operation bulletin from a JSON or YAML file,
// dispatching on the file extension (.json, .yaml, .yml).
func ReadBulletinFile(path string) (*Bulletin, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "bulletin %s not found", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadBulletin(f, FormatJSON)
	case ".yaml", ".yml":
		return ReadBulletin(f, FormatYAML)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported bulletin extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// Bulletin encodings.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ReadBulletin decodes a bulletin from r using the given encoding.
func ReadBulletin(r io.Reader, format string) (*Bulletin, error) {
	var b Bulletin
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&b); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON bulletin")
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&b); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode YAML bulletin")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported bulletin format %q", format)
	}
	return &b, nil
}

// WriteBulletinFile writes a bulletin as pretty-printed JSON.
// Mostly useful for producing fixtures and round-trip testing.
func WriteBulletinFile(b *Bulletin, path string) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bulletin: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
