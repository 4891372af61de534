package testutil

import (
	"testing"
	"testing/fstest"

	"github.com/spf13/afero"
)

// ProjectRoot is the output root used by memory filesystem tests.
const ProjectRoot = "/work/applications"

// TemplateTree returns a fresh template tree shaped like the embedded one.
func TemplateTree() fstest.MapFS {
	return fstest.MapFS{
		".env": {Data: []byte(
			"MYSQL_USER=__MYSQL_USER__\n" +
				"MYSQL_PASSWORD=__RANDOM_PASSWORD__\n" +
				"MYSQL_ROOT_PASSWORD=__RANDOM_ROOT_PASSWORD__\n"), Mode: 0644},
		"docker-compose.yml": {Data: []byte(
			"services:\n" +
				"  db:\n    image: __MYSQL_IMAGE__\n" +
				"  wordpress:\n    image: __WORDPRESS_IMAGE__\n" +
				"  webserver:\n    image: __NGINX_IMAGE__\n" +
				"  certbot:\n    command: certonly --email __CERTBOT_EMAIL__ __CERTBOT_MODE__ __CERTBOT_DOMAINS__\n"), Mode: 0644},
		"nginx-conf/nginx.conf": {Data: []byte(
			"server {\n        server_name __NGINX_DOMAINS__;\n__NGINX_BASIC_AUTH__\n}\n"), Mode: 0644},
		"nginx-conf/nginx-ssl.conf": {Data: []byte(
			"server {\n        server_name __NGINX_DOMAINS__;\n__NGINX_SSL_CERTS__\n__NGINX_BASIC_AUTH__\n}\n"), Mode: 0644},
		"instructions.txt": {Data: []byte(
			"Copy __PROJECT_DIRECTORY__ to __SERVER_DIRECTORY__.\n" +
				"Re-run: __GENERATOR_FILE__ (from __GENERATOR_DIRECTORY__)\n"), Mode: 0644},
		"static/README": {Data: []byte("no placeholders here\n"), Mode: 0644},
	}
}

// NewMemoryFS returns a memory filesystem holding the given files.
func NewMemoryFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to seed %s: %v", path, err)
		}
	}
	return fs
}
