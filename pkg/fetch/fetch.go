// Package fetch downloads third-party boilerplate into a project.
package fetch

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/arthur-debert/wpstack/pkg/errors"
	"github.com/arthur-debert/wpstack/pkg/logging"
	"github.com/spf13/afero"
)

// TLSOptionsURL is the certbot-maintained nginx TLS parameters file.
const TLSOptionsURL = "https://raw.githubusercontent.com/certbot/certbot/master/certbot-nginx/certbot_nginx/_internal/tls_configs/options-ssl-nginx.conf"

// DefaultTimeout bounds a single download.
const DefaultTimeout = 30 * time.Second

// Downloader handles HTTP downloads onto an afero filesystem.
type Downloader struct {
	client *http.Client
	fs     afero.Fs
}

// NewDownloader creates a downloader writing to fsys with the given timeout.
func NewDownloader(fsys afero.Fs, timeout time.Duration) *Downloader {
	return &Downloader{
		client: &http.Client{Timeout: timeout},
		fs:     fsys,
	}
}

// DefaultDownloader returns a downloader with DefaultTimeout.
func DefaultDownloader(fsys afero.Fs) *Downloader {
	return NewDownloader(fsys, DefaultTimeout)
}

// Download fetches url and writes it to destPath. The body goes to a
// temporary file next to destPath first, so a failed download never
// replaces an existing file.
func (d *Downloader) Download(ctx context.Context, url, destPath string) error {
	logger := logging.GetLogger("fetch")

	dir := filepath.Dir(destPath)
	if err := d.fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", dir)
	}

	tmpFile, err := afero.TempFile(d.fs, dir, ".download-*")
	if err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to create temp file")
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			_ = tmpFile.Close()
			_ = d.fs.Remove(tmpPath)
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrFetch, "failed to create request").WithDetail("url", url)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFetch, "failed to download %s", url).WithDetail("url", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errors.Newf(errors.ErrFetch, "download failed: %s returned %s", url, resp.Status).
			WithDetail("url", url).
			WithDetail("status", resp.StatusCode)
	}

	n, err := io.Copy(tmpFile, resp.Body)
	if err != nil {
		return errors.Wrap(err, errors.ErrFetch, "failed to write download").WithDetail("url", url)
	}
	if err := tmpFile.Close(); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to close temp file")
	}
	if err := d.fs.Rename(tmpPath, destPath); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to move download to %s", destPath)
	}
	if err := d.fs.Chmod(destPath, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to set mode on %s", destPath)
	}

	success = true
	logger.Debug().Str("url", url).Str("path", destPath).Int64("bytes", n).Msg("downloaded")
	return nil
}
