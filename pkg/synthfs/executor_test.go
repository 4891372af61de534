// pkg/synthfs/executor_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (temp dir)
// PURPOSE: Verify batches run through the synthfs pipeline on disk

package synthfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/wpstack/pkg/errors"
	"github.com/arthur-debert/wpstack/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutorAppliesBatch(t *testing.T) {
	root := t.TempDir()
	project := filepath.Join(root, "applications", "site")
	require.NoError(t, os.MkdirAll(filepath.Join(project, "nginx-conf"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(project, "docker-compose.yml"), []byte("stale"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(project, "nginx-conf", "nginx.conf"), []byte("plain"), 0644))

	var b filesystem.Batch
	b.Mkdir(filepath.Join(project, "wordpress"))
	b.Write(filepath.Join(project, "docker-compose.yml"), []byte("fresh"), 0644)
	b.Write(filepath.Join(project, "nginx-conf", "nginx-ssl.conf"), []byte("ssl"), 0644)
	b.Write(filepath.Join(project, "certbot", "conf", "README"), []byte("new dir"), 0644)
	b.Remove(filepath.Join(project, "nginx-conf", "nginx.conf"))

	require.NoError(t, NewExecutor().Apply(b))

	assert.DirExists(t, filepath.Join(project, "wordpress"))
	data, err := os.ReadFile(filepath.Join(project, "docker-compose.yml"))
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(data))
	data, err = os.ReadFile(filepath.Join(project, "certbot", "conf", "README"))
	require.NoError(t, err)
	assert.Equal(t, "new dir", string(data))
	assert.FileExists(t, filepath.Join(project, "nginx-conf", "nginx-ssl.conf"))
	assert.NoFileExists(t, filepath.Join(project, "nginx-conf", "nginx.conf"))
}

func TestExecutorEmptyBatch(t *testing.T) {
	assert.NoError(t, NewExecutor().Apply(filesystem.Batch{}))
}

func TestExecutorResolvesRelativePaths(t *testing.T) {
	root := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	var b filesystem.Batch
	b.Write(filepath.Join("applications", "site", ".env"), []byte("A=1\n"), 0600)
	require.NoError(t, NewExecutor().Apply(b))

	data, err := os.ReadFile(filepath.Join(root, "applications", "site", ".env"))
	require.NoError(t, err)
	assert.Equal(t, "A=1\n", string(data))
}

func TestExecutorUnknownOp(t *testing.T) {
	err := NewExecutor().Apply(filesystem.Batch{Ops: []filesystem.Op{{Kind: "chmod", Path: "/tmp/x"}}})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInternal))
}

func TestOpIDsAreUnique(t *testing.T) {
	a := opID(0, filesystem.Op{Kind: filesystem.OpWrite, Path: "/p/.env"})
	b := opID(1, filesystem.Op{Kind: filesystem.OpWrite, Path: "/q/.env"})
	assert.NotEqual(t, a, b)
	assert.Equal(t, "write_000_.env", a)
}
