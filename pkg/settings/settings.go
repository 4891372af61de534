package settings

import (
	"reflect"
	"strings"

	"github.com/arthur-debert/wpstack/pkg/errors"
)

// Field names a single setting. The string value is the persisted key.
type Field string

const (
	ApplicationName Field = "application_name"
	CertbotActive   Field = "certbot_active"
	CertbotEmail    Field = "certbot_email"
	CertbotMode     Field = "certbot_mode"
	Domains         Field = "domains"
	MySQLImage      Field = "mysql_image"
	MySQLUsername   Field = "mysql_username"
	NginxImage      Field = "nginx_image"
	ServerDirectory Field = "server_directory"
	WordPressImage  Field = "wordpress_image"
)

// FileName is the name of the persisted settings file inside a project.
const FileName = "generator-settings.yml"

var fieldOrder = []Field{
	ApplicationName,
	CertbotActive,
	CertbotEmail,
	CertbotMode,
	Domains,
	MySQLImage,
	MySQLUsername,
	NginxImage,
	ServerDirectory,
	WordPressImage,
}

// Fields returns every known field in persisted order.
func Fields() []Field {
	out := make([]Field, len(fieldOrder))
	copy(out, fieldOrder)
	return out
}

// ParseField resolves a persisted key to a known field. A single leading
// colon is accepted for files written with symbol keys.
func ParseField(key string) (Field, bool) {
	key = strings.TrimPrefix(key, ":")
	for _, f := range fieldOrder {
		if string(f) == key {
			return f, true
		}
	}
	return "", false
}

// Settings is an immutable set of field values plus any unknown keys read
// from a persisted file.
type Settings struct {
	values map[Field]string
	extra  map[string]interface{}
}

// Defaults returns a fresh Settings holding the baked-in values.
func Defaults() Settings {
	return Settings{
		values: map[Field]string{
			ApplicationName: "production.example.com",
			CertbotActive:   "no",
			CertbotEmail:    "example@email.com",
			CertbotMode:     "sandbox",
			Domains:         "example.com,www.example.com",
			MySQLImage:      "mysql:8.0",
			MySQLUsername:   "wordpress",
			NginxImage:      "nginx:1.15.12-alpine",
			ServerDirectory: "/root/wordpress/",
			WordPressImage:  "wordpress:4.7-php7.1-fpm-alpine",
		},
	}
}

// Get returns the value of f, or "" for an unknown field.
func (s Settings) Get(f Field) string {
	return s.values[f]
}

// Merge returns a copy of s with f set to value. Every other field and every
// unknown key is carried over unchanged.
func (s Settings) Merge(f Field, value string) Settings {
	next := s.clone()
	next.values[f] = value
	return next
}

// Extra returns a copy of the unknown keys carried from a persisted file.
func (s Settings) Extra() map[string]interface{} {
	out := make(map[string]interface{}, len(s.extra))
	for k, v := range s.extra {
		out[k] = v
	}
	return out
}

// Equal reports whether both settings hold the same fields and unknown keys.
func (s Settings) Equal(other Settings) bool {
	for _, f := range fieldOrder {
		if s.values[f] != other.values[f] {
			return false
		}
	}
	if len(s.extra) == 0 && len(other.extra) == 0 {
		return true
	}
	return reflect.DeepEqual(s.extra, other.extra)
}

// Validate checks that every known field holds a non-blank value.
func (s Settings) Validate() error {
	for _, f := range fieldOrder {
		if strings.TrimSpace(s.values[f]) == "" {
			return errors.Newf(errors.ErrInvalidInput, "setting %q must not be empty", f).
				WithDetail("field", string(f))
		}
	}
	return nil
}

// Map returns the known fields as a persisted-key map.
func (s Settings) Map() map[string]string {
	out := make(map[string]string, len(fieldOrder))
	for _, f := range fieldOrder {
		out[string(f)] = s.values[f]
	}
	return out
}

func (s Settings) clone() Settings {
	values := make(map[Field]string, len(s.values))
	for k, v := range s.values {
		values[k] = v
	}
	return Settings{values: values, extra: s.Extra()}
}
