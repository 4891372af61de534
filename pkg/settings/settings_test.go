// pkg/settings/settings_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test defaults, merge isolation and validation of Settings values

package settings_test

import (
	"testing"

	"github.com/arthur-debert/wpstack/pkg/errors"
	"github.com/arthur-debert/wpstack/pkg/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	s := settings.Defaults()

	assert.Equal(t, "production.example.com", s.Get(settings.ApplicationName))
	assert.Equal(t, "no", s.Get(settings.CertbotActive))
	assert.Equal(t, "sandbox", s.Get(settings.CertbotMode))
	assert.Equal(t, "example.com,www.example.com", s.Get(settings.Domains))
	assert.Equal(t, "/root/wordpress/", s.Get(settings.ServerDirectory))
	require.NoError(t, s.Validate())
}

func TestDefaultsAreIndependent(t *testing.T) {
	first := settings.Defaults()
	_ = first.Merge(settings.Domains, "changed.example")

	second := settings.Defaults()
	assert.Equal(t, "example.com,www.example.com", second.Get(settings.Domains))
	assert.Equal(t, "example.com,www.example.com", first.Get(settings.Domains))
}

func TestMergeChangesOnlyTargetField(t *testing.T) {
	base := settings.Defaults()

	for _, field := range settings.Fields() {
		t.Run(string(field), func(t *testing.T) {
			merged := base.Merge(field, "new-value")

			assert.Equal(t, "new-value", merged.Get(field))
			for _, other := range settings.Fields() {
				if other == field {
					continue
				}
				assert.Equal(t, base.Get(other), merged.Get(other), "field %s changed", other)
			}
			assert.NotEqual(t, "new-value", base.Get(field), "merge mutated its input")
		})
	}
}

func TestMergeKeepsUnknownKeys(t *testing.T) {
	s, err := settings.Load([]byte("future_option: enabled\n"), settings.FormatYAML)
	require.NoError(t, err)

	merged := s.Merge(settings.MySQLImage, "mysql:8.4")
	assert.Equal(t, map[string]interface{}{"future_option": "enabled"}, merged.Extra())
}

func TestFieldsOrder(t *testing.T) {
	fields := settings.Fields()
	require.Len(t, fields, 10)
	assert.Equal(t, settings.ApplicationName, fields[0])
	assert.Equal(t, settings.WordPressImage, fields[9])

	fields[0] = "mutated"
	assert.Equal(t, settings.ApplicationName, settings.Fields()[0])
}

func TestParseField(t *testing.T) {
	tests := []struct {
		key    string
		want   settings.Field
		wantOK bool
	}{
		{"domains", settings.Domains, true},
		{":domains", settings.Domains, true},
		{"::domains", "", false},
		{"unknown", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := settings.ParseField(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	s := settings.Defaults().Merge(settings.CertbotEmail, "   ")

	err := s.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Equal(t, "certbot_email", errors.GetErrorDetails(err)["field"])
}

func TestEqual(t *testing.T) {
	a := settings.Defaults()
	b := settings.Defaults()
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(b.Merge(settings.Domains, "other.example")))
}
