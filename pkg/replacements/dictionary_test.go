package replacements_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/wpstack/pkg/errors"
	"github.com/arthur-debert/wpstack/pkg/project"
	"github.com/arthur-debert/wpstack/pkg/replacements"
	"github.com/arthur-debert/wpstack/pkg/settings"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingReader yields 0x00, 0x01, 0x02, ... so every secret differs.
type countingReader struct{ next byte }

func (r *countingReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = r.next
		r.next++
	}
	return len(p), nil
}

func build(t *testing.T, s settings.Settings, fs afero.Fs) *replacements.Dictionary {
	t.Helper()
	if fs == nil {
		fs = afero.NewMemMapFs()
	}
	return replacements.Build(replacements.Input{
		Settings:      s,
		OutputRoot:    "/work/applications",
		GeneratorDir:  "/opt/wpstack",
		GeneratorFile: "/opt/wpstack/wpstack",
		FS:            fs,
		Random:        &countingReader{},
	})
}

func resolve(t *testing.T, d *replacements.Dictionary, token string) string {
	t.Helper()
	v, err := d.NewPass().Resolve(token)
	require.NoError(t, err)
	return v
}

func TestTokens(t *testing.T) {
	d := build(t, settings.Defaults(), nil)

	assert.Equal(t, []string{
		"__CERTBOT_DOMAINS__",
		"__CERTBOT_EMAIL__",
		"__CERTBOT_MODE__",
		"__GENERATOR_DIRECTORY__",
		"__GENERATOR_FILE__",
		"__MYSQL_IMAGE__",
		"__MYSQL_USER__",
		"__NGINX_BASIC_AUTH__",
		"__NGINX_DOMAINS__",
		"__NGINX_IMAGE__",
		"__NGINX_SSL_CERTS__",
		"__PROJECT_DIRECTORY__",
		"__RANDOM_PASSWORD__",
		"__RANDOM_ROOT_PASSWORD__",
		"__SERVER_DIRECTORY__",
		"__WORDPRESS_IMAGE__",
	}, d.Tokens())

	for _, token := range d.Tokens() {
		assert.True(t, strings.HasPrefix(token, "__") && strings.HasSuffix(token, "__"), token)
	}
}

func TestEntryKinds(t *testing.T) {
	d := build(t, settings.Defaults(), nil)

	tests := []struct {
		token  string
		kind   replacements.Kind
		source string
	}{
		{replacements.TokenMySQLImage, replacements.Field, "mysql_image"},
		{replacements.TokenGeneratorFile, replacements.Constant, "/opt/wpstack/wpstack"},
		{replacements.TokenCertbotMode, replacements.Derived, "certbot-mode"},
		{replacements.TokenNginxBasicAuth, replacements.Probe, "nginx-auth/.htpasswd"},
		{replacements.TokenRandomPassword, replacements.Secret, "16 random bytes, hex"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			e, ok := d.Entry(tt.token)
			require.True(t, ok)
			assert.Equal(t, tt.kind, e.Kind)
			assert.Equal(t, tt.source, e.Source())
		})
	}

	_, ok := d.Entry("__NOPE__")
	assert.False(t, ok)
}

func TestPassthroughTokens(t *testing.T) {
	s := settings.Defaults().
		Merge(settings.MySQLImage, "mysql:8.4").
		Merge(settings.MySQLUsername, "wp").
		Merge(settings.NginxImage, "nginx:1.27").
		Merge(settings.WordPressImage, "wordpress:6").
		Merge(settings.ServerDirectory, "/srv/wp/").
		Merge(settings.CertbotEmail, "ops@example.org")
	d := build(t, s, nil)

	assert.Equal(t, "mysql:8.4", resolve(t, d, replacements.TokenMySQLImage))
	assert.Equal(t, "wp", resolve(t, d, replacements.TokenMySQLUser))
	assert.Equal(t, "nginx:1.27", resolve(t, d, replacements.TokenNginxImage))
	assert.Equal(t, "wordpress:6", resolve(t, d, replacements.TokenWordPressImage))
	assert.Equal(t, "/srv/wp/", resolve(t, d, replacements.TokenServerDirectory))
	assert.Equal(t, "ops@example.org", resolve(t, d, replacements.TokenCertbotEmail))
	assert.Equal(t, "/opt/wpstack", resolve(t, d, replacements.TokenGeneratorDirectory))
	assert.Equal(t, "/opt/wpstack/wpstack", resolve(t, d, replacements.TokenGeneratorFile))
}

func TestDomainDerivations(t *testing.T) {
	tests := []struct {
		name     string
		domains  string
		servers  string
		certbot  string
		sslLines int
	}{
		{"comma space", "a.com, b.com", "a.com b.com", "-d a.com -d b.com", 4},
		{"comma only", "example.com,www.example.com", "example.com www.example.com", "-d example.com -d www.example.com", 4},
		{"several spaces", "a.com,   b.com,c.com", "a.com b.com c.com", "-d a.com -d b.com -d c.com", 6},
		{"single", "solo.org", "solo.org", "-d solo.org", 2},
		{"trailing comma", "a.com,", "a.com", "-d a.com", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := build(t, settings.Defaults().Merge(settings.Domains, tt.domains), nil)

			assert.Equal(t, tt.servers, resolve(t, d, replacements.TokenNginxDomains))
			assert.Equal(t, tt.certbot, resolve(t, d, replacements.TokenCertbotDomains))
			assert.Len(t, strings.Split(resolve(t, d, replacements.TokenNginxSSLCerts), "\n"), tt.sslLines)
		})
	}
}

func TestSSLCertificates(t *testing.T) {
	d := build(t, settings.Defaults().Merge(settings.Domains, "a.com, b.com"), nil)

	expected := "        ssl_certificate /etc/letsencrypt/live/a.com/fullchain.pem;\n" +
		"        ssl_certificate_key /etc/letsencrypt/live/a.com/privkey.pem;\n" +
		"        ssl_certificate /etc/letsencrypt/live/b.com/fullchain.pem;\n" +
		"        ssl_certificate_key /etc/letsencrypt/live/b.com/privkey.pem;"
	assert.Equal(t, expected, resolve(t, d, replacements.TokenNginxSSLCerts))
}

func TestCertbotMode(t *testing.T) {
	tests := []struct {
		mode string
		want string
	}{
		{"live", "--force-renewal"},
		{"sandbox", "--staging"},
		{"Live", "--staging"},
		{"production", "--staging"},
		{" live", "--staging"},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			d := build(t, settings.Defaults().Merge(settings.CertbotMode, tt.mode), nil)
			assert.Equal(t, tt.want, resolve(t, d, replacements.TokenCertbotMode))
		})
	}
}

func TestProjectDirectory(t *testing.T) {
	s := settings.Defaults().Merge(settings.ApplicationName, "shop.example.net")
	d := build(t, s, nil)

	assert.Equal(t, filepath.Join("/work/applications", "shop-example-net"), resolve(t, d, replacements.TokenProjectDirectory))
}

func TestBasicAuthProbe(t *testing.T) {
	s := settings.Defaults().Merge(settings.ApplicationName, "members.example.com")
	dir := project.Directory("/work/applications", s)

	t.Run("absent", func(t *testing.T) {
		d := build(t, s, afero.NewMemMapFs())
		assert.Equal(t, "", resolve(t, d, replacements.TokenNginxBasicAuth))
	})

	t.Run("present", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, "nginx-auth", ".htpasswd"), []byte("u:p"), 0600))
		d := build(t, s, fs)

		assert.Equal(t,
			"        auth_basic \"members.example.com\";\n"+
				"        auth_basic_user_file /etc/nginx/auth/.htpasswd;",
			resolve(t, d, replacements.TokenNginxBasicAuth))
	})

	t.Run("reads filesystem at resolve time", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		d := build(t, s, fs)
		pass := d.NewPass()

		v, err := pass.Resolve(replacements.TokenNginxBasicAuth)
		require.NoError(t, err)
		assert.Empty(t, v)

		require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, "nginx-auth", ".htpasswd"), []byte("u:p"), 0600))
		v, err = pass.Resolve(replacements.TokenNginxBasicAuth)
		require.NoError(t, err)
		assert.Contains(t, v, "auth_basic_user_file")
	})
}

func TestSecretsMemoizedPerPass(t *testing.T) {
	d := build(t, settings.Defaults(), nil)

	first := d.NewPass()
	a, err := first.Resolve(replacements.TokenRandomPassword)
	require.NoError(t, err)
	again, err := first.Resolve(replacements.TokenRandomPassword)
	require.NoError(t, err)
	root, err := first.Resolve(replacements.TokenRandomRootPassword)
	require.NoError(t, err)

	assert.Len(t, a, 2*replacements.SecretBytes)
	assert.Equal(t, a, again)
	assert.NotEqual(t, a, root)

	second := d.NewPass()
	b, err := second.Resolve(replacements.TokenRandomPassword)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSecretUsesRandomSource(t *testing.T) {
	d := replacements.Build(replacements.Input{
		Settings: settings.Defaults(),
		FS:       afero.NewMemMapFs(),
		Random:   bytes.NewReader(bytes.Repeat([]byte{0xab}, replacements.SecretBytes)),
	})

	v, err := d.NewPass().Resolve(replacements.TokenRandomPassword)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("ab", replacements.SecretBytes), v)

	_, err = d.NewPass().Resolve(replacements.TokenRandomPassword)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInternal))
}

func TestResolveUnknownToken(t *testing.T) {
	_, err := build(t, settings.Defaults(), nil).NewPass().Resolve("__UNKNOWN__")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestResolveDoesNotMutateSettings(t *testing.T) {
	s := settings.Defaults()
	d := build(t, s, nil)
	pass := d.NewPass()
	for _, token := range d.Tokens() {
		_, err := pass.Resolve(token)
		require.NoError(t, err)
	}
	assert.True(t, s.Equal(settings.Defaults()))
}

func TestSplitDomains(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, replacements.SplitDomains("a, b"))
	assert.Equal(t, []string{"a", "", "b"}, replacements.SplitDomains("a,,b"))
	assert.Empty(t, replacements.SplitDomains(""))
	assert.Equal(t, []string{" a"}, replacements.SplitDomains(" a"))
}
