package settings

import (
	stderrors "errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/wpstack/pkg/errors"
	"github.com/arthur-debert/wpstack/pkg/logging"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override settings.
const EnvPrefix = "WPSTACK_"

// Format identifies a persisted settings encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the encoding by file extension. Anything that is not
// .toml is read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// ParseFormat parses a format name as given on the command line.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "yaml", "yml", "":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown settings format: %s", name)
	}
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Load parses a persisted settings blob. Missing keys fall back to the
// defaults; a blob that is not a key/value mapping fails with
// MALFORMED_CONFIG.
func Load(blob []byte, format Format) (Settings, error) {
	return load(&rawBytesProvider{bytes: blob}, format, "<blob>")
}

// LoadFile reads and parses the settings file at path. Unreadable files fail
// with MALFORMED_CONFIG, the same as unparseable ones.
func LoadFile(path string) (Settings, error) {
	return load(file.Provider(path), FormatFromPath(path), path)
}

func load(provider koanf.Provider, format Format, source string) (Settings, error) {
	logger := logging.GetLogger("settings")

	fileK := koanf.New(".")
	if err := fileK.Load(provider, parserFor(format)); err != nil {
		return Settings{}, errors.Wrapf(err, errors.ErrMalformedConfig,
			"failed to parse settings from %s", source).
			WithDetail("source", source)
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaultsMap(), ""), nil); err != nil {
		return Settings{}, errors.Wrap(err, errors.ErrInternal, "failed to load default settings")
	}
	if err := k.Load(confmap.Provider(normalizeKeys(fileK.Raw()), ""), nil); err != nil {
		return Settings{}, errors.Wrapf(err, errors.ErrMalformedConfig,
			"failed to merge settings from %s", source)
	}

	s, err := fromRaw(k.Raw(), source)
	if err != nil {
		return Settings{}, err
	}

	logger.Debug().
		Str("source", source).
		Str("format", string(format)).
		Int("unknown_keys", len(s.extra)).
		Msg("settings loaded")
	return s, nil
}

// ApplyEnv overrides fields from WPSTACK_<FIELD> environment variables.
// Blank values are ignored.
func ApplyEnv(s Settings) (Settings, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider(EnvPrefix, ".", func(key string) string {
		return strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	}), nil)
	if err != nil {
		return s, errors.Wrap(err, errors.ErrMalformedConfig, "failed to read environment overrides")
	}

	logger := logging.GetLogger("settings")
	for _, f := range fieldOrder {
		value := strings.TrimSpace(k.String(string(f)))
		if value == "" {
			continue
		}
		logger.Info().Str("field", string(f)).Msg("setting overridden from environment")
		s = s.Merge(f, value)
	}
	return s, nil
}

func parserFor(format Format) koanf.Parser {
	if format == FormatTOML {
		return toml.Parser()
	}
	return yaml.Parser()
}

func defaultsMap() map[string]interface{} {
	out := make(map[string]interface{}, len(fieldOrder))
	for k, v := range Defaults().Map() {
		out[k] = v
	}
	return out
}

// normalizeKeys maps ":field" keys onto their plain field name.
func normalizeKeys(raw map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(raw))
	for key, value := range raw {
		if f, ok := ParseField(key); ok {
			out[string(f)] = value
			continue
		}
		out[key] = value
	}
	return out
}

func fromRaw(raw map[string]interface{}, source string) (Settings, error) {
	s := Defaults()
	defaults := Defaults()
	logger := logging.GetLogger("settings")

	for key, value := range raw {
		f, ok := ParseField(key)
		if !ok {
			if s.extra == nil {
				s.extra = make(map[string]interface{})
			}
			s.extra[key] = value
			continue
		}

		str, err := scalarString(value)
		if err != nil {
			return Settings{}, errors.Wrapf(err, errors.ErrMalformedConfig,
				"setting %q in %s is not a plain value", key, source).
				WithDetail("field", key)
		}
		if strings.TrimSpace(str) == "" {
			logger.Warn().Str("field", key).Msg("blank setting replaced by its default")
			str = defaults.Get(f)
		}
		s.values[f] = str
	}

	return s, nil
}

func scalarString(value interface{}) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(v), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", value)
	}
}
