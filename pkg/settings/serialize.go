package settings

import (
	"bytes"
	"sort"

	"github.com/arthur-debert/wpstack/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Serialize renders s deterministically: known fields first in Fields order,
// then unknown keys sorted by name.
func Serialize(s Settings, format Format) ([]byte, error) {
	if format == FormatTOML {
		return serializeTOML(s)
	}
	return serializeYAML(s)
}

func serializeYAML(s Settings) ([]byte, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode}

	for _, f := range fieldOrder {
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: string(f)},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s.values[f]},
		)
	}

	for _, key := range sortedKeys(s.extra) {
		var value yaml.Node
		if err := value.Encode(s.extra[key]); err != nil {
			return nil, errors.Wrapf(err, errors.ErrInternal, "failed to encode setting %q", key)
		}
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			&value,
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{mapping}}); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode settings")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode settings")
	}
	return buf.Bytes(), nil
}

func serializeTOML(s Settings) ([]byte, error) {
	doc := make(map[string]interface{}, len(fieldOrder)+len(s.extra))
	for k, v := range s.extra {
		doc[k] = v
	}
	for _, f := range fieldOrder {
		doc[string(f)] = s.values[f]
	}

	out, err := toml.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode settings")
	}
	return out, nil
}

// WriteFile persists s at path, picking the encoding from the extension.
func WriteFile(fs afero.Fs, path string, s Settings) error {
	data, err := Serialize(s, FormatFromPath(path))
	if err != nil {
		return err
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write settings to %s", path).
			WithDetail("path", path)
	}
	return nil
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
